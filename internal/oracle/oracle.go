// Package oracle cross-checks the board package against dragontoothmg, an
// independent legal move generator.
package oracle

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-core/board"
)

// Reference is a position held by the reference generator.
type Reference struct {
	b dragontoothmg.Board
}

// NewReference parses fen with the reference generator. The FEN should be
// complete; b.FEN() always is.
func NewReference(fen string) *Reference {
	return &Reference{b: dragontoothmg.ParseFen(fen)}
}

// LegalMoves returns the reference's legal moves as sorted UCI strings.
func (r *Reference) LegalMoves() []string {
	moves := r.b.GenerateLegalMoves()
	out := make([]string, len(moves))
	for i := range moves {
		out[i] = moves[i].String()
	}
	slices.Sort(out)
	return out
}

// Perft counts leaf nodes with the reference generator.
func (r *Reference) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := r.b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := r.b.Apply(m)
		nodes += r.Perft(depth - 1)
		undo()
	}
	return nodes
}

// Divide returns the reference perft count below each root move.
func (r *Reference) Divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range r.b.GenerateLegalMoves() {
		undo := r.b.Apply(m)
		out[m.String()] = r.Perft(depth - 1)
		undo()
	}
	return out
}

// Mismatch is the first node where the two generators disagree.
type Mismatch struct {
	FEN     string
	Path    []string // moves from the root
	Missing []string // generated by the reference only
	Extra   []string // generated by board only
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("oracle: move sets differ at %s after [%s]: missing %v extra %v",
		m.FEN, strings.Join(m.Path, " "), m.Missing, m.Extra)
}

// UCIMoves returns the legal moves of b as sorted UCI strings.
func UCIMoves(b *board.Board) []string {
	var list board.MoveList
	b.GenMoves(board.GenLegal, &list)
	out := make([]string, 0, list.Len())
	for _, m := range list.Slice() {
		out = append(out, m.String())
	}
	slices.Sort(out)
	return out
}

// Compare walks the move tree of b to depth alongside the reference and
// returns a *Mismatch for the first node whose legal move sets differ.
// b is restored before Compare returns.
func Compare(b *board.Board, depth int) error {
	ref := NewReference(b.FEN())
	return compare(b, ref, depth, nil)
}

func compare(b *board.Board, ref *Reference, depth int, path []string) error {
	ours, theirs := UCIMoves(b), ref.LegalMoves()
	if !slices.Equal(ours, theirs) {
		return &Mismatch{
			FEN:     b.FEN(),
			Path:    slices.Clone(path),
			Missing: difference(theirs, ours),
			Extra:   difference(ours, theirs),
		}
	}
	if depth <= 1 {
		return nil
	}

	refMoves := ref.b.GenerateLegalMoves()
	for i := range refMoves {
		name := refMoves[i].String()
		m, err := b.ParseUCI(name)
		if err != nil {
			return err
		}
		b.MakeMove(m)
		undo := ref.b.Apply(refMoves[i])
		err = compare(b, ref, depth-1, append(path, name))
		undo()
		b.UnmakeMove()
		if err != nil {
			return err
		}
	}
	return nil
}

func difference(a, b []string) []string {
	var out []string
	for _, s := range a {
		if !slices.Contains(b, s) {
			out = append(out, s)
		}
	}
	return out
}

// DivideDiff compares per-move perft counts and returns ours and theirs for
// every move whose counts differ. A move missing on one side counts as zero.
func DivideDiff(ours map[board.Move]uint64, theirs map[string]uint64) map[string][2]uint64 {
	mine := make(map[string]uint64, len(ours))
	for m, n := range ours {
		mine[m.String()] = n
	}
	diff := make(map[string][2]uint64)
	for _, k := range append(maps.Keys(mine), maps.Keys(theirs)...) {
		if mine[k] != theirs[k] {
			diff[k] = [2]uint64{mine[k], theirs[k]}
		}
	}
	return diff
}

// SortedKeys returns the keys of a divide result in UCI order.
func SortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
