package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"

	"chess-core/board"
	"chess-core/internal/epd"
	"chess-core/internal/logx"
	"chess-core/internal/oracle"
	"chess-core/render"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required unless -suite is given)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	suite := flag.String("suite", "", "Run an EPD perft suite (\"FEN ;D1 n ;D2 m\", optionally zstd-compressed)")
	workers := flag.Int("workers", 1, "Suite positions searched in parallel")
	verify := flag.Bool("verify", false, "Cross-check move sets against dragontoothmg")
	svgOut := flag.String("svg", "", "Write an SVG diagram of the root position to file")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	lvl, err := logx.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := logx.NewLogger(os.Stderr, lvl)

	if *suite != "" {
		os.Exit(runSuite(log, *suite, *depth, *workers, *verify))
	}

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		log.Error().Err(err).Msg("ParseFEN")
		os.Exit(2)
	}

	if *svgOut != "" {
		if err := writeSVG(*svgOut, b); err != nil {
			log.Error().Err(err).Str("file", *svgOut).Msg("writing diagram")
			os.Exit(2)
		}
	}

	if *verify {
		if err := oracle.Compare(b, *depth); err != nil {
			log.Error().Err(err).Msg("verification failed")
			os.Exit(1)
		}
		log.Info().Int("depth", *depth).Msg("move sets match dragontoothmg")
	}

	if *divide {
		printDivide(b, *depth, *verify)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			log.Error().Err(err).Msg("creating cpuprofile")
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Error().Err(err).Msg("start cpu profile")
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += board.Perft(b, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			log.Error().Err(err).Msg("creating memprofile")
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Error().Err(err).Msg("write heap profile")
			os.Exit(2)
		}
		_ = f.Close()
	}
}

// printDivide prints the root moves in UCI order; with check it also prints
// the reference count for every move that disagrees.
func printDivide(b *board.Board, depth int, check bool) {
	div := board.PerftDivide(b, depth)
	byName := make(map[string]uint64, len(div))
	var sum uint64
	for m, n := range div {
		byName[m.String()] = n
		sum += n
	}
	for _, k := range oracle.SortedKeys(byName) {
		fmt.Printf("%s: %d\n", k, byName[k])
	}
	fmt.Printf("Total: %d\n", sum)

	if !check {
		return
	}
	diff := oracle.DivideDiff(div, oracle.NewReference(b.FEN()).Divide(depth))
	for _, k := range oracle.SortedKeys(diff) {
		fmt.Printf("MISMATCH %s: ours %d reference %d\n", k, diff[k][0], diff[k][1])
	}
}

func runSuite(log zerolog.Logger, path string, maxDepth, workers int, verify bool) int {
	entries, err := epd.Open(path)
	if err != nil {
		log.Error().Err(err).Str("suite", path).Msg("reading suite")
		return 2
	}
	cfg := epd.Config{MaxDepth: maxDepth, Workers: workers, Logger: log}
	if verify {
		cfg.Verify = oracle.Compare
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	sum, err := epd.Run(ctx, entries, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("suite interrupted")
	}
	for _, f := range sum.Failures {
		fmt.Println("FAIL", f)
	}
	if len(sum.Failures) > 0 || err != nil {
		return 1
	}
	fmt.Printf("ok \t%d positions \t%d checks \t%d nodes \t%s\n", sum.Positions, sum.Checks, sum.Nodes, sum.Elapsed)
	return 0
}

func writeSVG(path string, b *board.Board) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.Board(f, b, render.Options{
		Highlight:   b.Checkers() | b.Pinned(b.SideToMove()),
		Coordinates: true,
		Title:       b.FEN(),
	}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
