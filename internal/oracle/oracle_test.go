package oracle

import (
	"errors"
	"testing"

	"chess-core/board"
)

var positions = []struct {
	name  string
	fen   string
	depth int
}{
	{"initial", board.StartFEN, 3},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2},
	{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 3},
	{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 2},
	{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 2},
}

func TestCompareWithReference(t *testing.T) {
	for _, p := range positions {
		b := board.MustParseFEN(p.fen)
		if err := Compare(b, p.depth); err != nil {
			var mm *Mismatch
			if errors.As(err, &mm) {
				t.Logf("ours:   %v", UCIMoves(board.MustParseFEN(mm.FEN)))
				t.Logf("theirs: %v", NewReference(mm.FEN).LegalMoves())
			}
			t.Fatalf("%s: %v", p.name, err)
		}
		if b.Ply() != 0 || b.FEN() != board.MustParseFEN(p.fen).FEN() {
			t.Fatalf("%s: Compare left the board at %s", p.name, b.FEN())
		}
	}
}

func TestReferencePerftAgrees(t *testing.T) {
	for _, p := range positions {
		b := board.MustParseFEN(p.fen)
		ref := NewReference(b.FEN())
		if got, want := board.Perft(b, p.depth), ref.Perft(p.depth); got != want {
			diff := DivideDiff(board.PerftDivide(b, p.depth), ref.Divide(p.depth))
			for _, k := range SortedKeys(diff) {
				t.Logf("  %s: ours %d theirs %d", k, diff[k][0], diff[k][1])
			}
			t.Fatalf("%s perft %d: ours %d reference %d", p.name, p.depth, got, want)
		}
	}
}

func TestDivideDiff(t *testing.T) {
	b := board.New()
	ours := board.PerftDivide(b, 1)
	theirs := map[string]uint64{}
	for _, m := range UCIMoves(b) {
		theirs[m] = 1
	}
	if diff := DivideDiff(ours, theirs); len(diff) != 0 {
		t.Fatalf("identical divides differ: %v", diff)
	}
	delete(theirs, "e2e4")
	theirs["e2e5"] = 1
	diff := DivideDiff(ours, theirs)
	if len(diff) != 2 || diff["e2e4"] != [2]uint64{1, 0} || diff["e2e5"] != [2]uint64{0, 1} {
		t.Fatalf("unexpected diff %v", diff)
	}
	if keys := SortedKeys(diff); keys[0] != "e2e4" || keys[1] != "e2e5" {
		t.Fatalf("keys not sorted: %v", keys)
	}
}

func TestMismatchError(t *testing.T) {
	err := error(&Mismatch{FEN: board.StartFEN, Path: []string{"e2e4"}, Missing: []string{"a7a5"}})
	var mm *Mismatch
	if !errors.As(err, &mm) || mm.Missing[0] != "a7a5" {
		t.Fatal("Mismatch does not unwrap with errors.As")
	}
	if err.Error() == "" {
		t.Fatal("empty error text")
	}
}
