package epd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"chess-core/attacks"
	"chess-core/board"
)

// Config controls a suite run.
type Config struct {
	MaxDepth int            // expectations deeper than this are skipped; 0 keeps all
	Workers  int            // positions searched in parallel; 0 means one
	Logger   zerolog.Logger // the zero value logs nothing
	// Verify, when set, is called once per position with the deepest
	// depth checked, for example to cross-check against another generator.
	Verify func(b *board.Board, depth int) error
}

// Failure is an expectation that did not hold.
type Failure struct {
	Entry Entry
	Depth int
	Want  uint64
	Got   uint64
	Err   error // set when the position could not be parsed or Verify failed
}

func (f Failure) String() string {
	if f.Err != nil {
		return fmt.Sprintf("line %d: %v", f.Entry.Line, f.Err)
	}
	return fmt.Sprintf("line %d: %s depth %d: got %d want %d", f.Entry.Line, f.Entry.FEN, f.Depth, f.Got, f.Want)
}

// Summary totals a suite run.
type Summary struct {
	Positions int
	Checks    int
	Nodes     uint64
	Elapsed   time.Duration
	Failures  []Failure
}

// Run checks every entry's expectations with board.Perft. Positions are
// shared out to cfg.Workers goroutines, each with its own board. Run stops
// early only when ctx is cancelled; mismatches are collected in the summary.
func Run(ctx context.Context, entries []Entry, cfg Config) (Summary, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	log := cfg.Logger
	tab := attacks.Default()
	start := time.Now()

	var (
		mu  sync.Mutex
		sum Summary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, e := range entries {
		if gctx.Err() != nil {
			break
		}
		e := e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			nodes, checks, fails := runEntry(tab, e, cfg, log)
			mu.Lock()
			sum.Positions++
			sum.Checks += checks
			sum.Nodes += nodes
			sum.Failures = append(sum.Failures, fails...)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	sum.Elapsed = time.Since(start)
	slices.SortStableFunc(sum.Failures, func(a, b Failure) bool { return a.Entry.Line < b.Entry.Line })
	log.Info().
		Int("positions", sum.Positions).
		Int("checks", sum.Checks).
		Int("failures", len(sum.Failures)).
		Uint64("nodes", sum.Nodes).
		Dur("elapsed", sum.Elapsed).
		Msg("suite finished")
	return sum, err
}

func runEntry(tab *attacks.Tables, e Entry, cfg Config, log zerolog.Logger) (nodes uint64, checks int, fails []Failure) {
	b, err := board.ParseFENWithTables(tab, e.FEN)
	if err != nil {
		log.Warn().Int("line", e.Line).Err(err).Msg("skipping position")
		return 0, 0, []Failure{{Entry: e, Err: err}}
	}
	deepest := 0
	for _, x := range e.Expects {
		if cfg.MaxDepth > 0 && x.Depth > cfg.MaxDepth {
			continue
		}
		t0 := time.Now()
		got := board.Perft(b, x.Depth)
		checks++
		nodes += got
		deepest = x.Depth
		ev := log.Debug()
		if got != x.Nodes {
			ev = log.Error()
			fails = append(fails, Failure{Entry: e, Depth: x.Depth, Want: x.Nodes, Got: got})
		}
		ev.Int("line", e.Line).
			Int("depth", x.Depth).
			Uint64("nodes", got).
			Uint64("want", x.Nodes).
			Dur("elapsed", time.Since(t0)).
			Msg(e.FEN)
	}
	if cfg.Verify != nil && deepest > 0 {
		if err := cfg.Verify(b, deepest); err != nil {
			log.Error().Int("line", e.Line).Err(err).Msg("verification failed")
			fails = append(fails, Failure{Entry: e, Depth: deepest, Err: err})
		}
	}
	return nodes, checks, fails
}
