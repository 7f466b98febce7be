package board

import (
	"testing"

	bb "chess-core/bitboard"
)

func playUCI(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := b.ParseUCI(s)
		if err != nil {
			t.Fatalf("%s in %s: %v", s, b.FEN(), err)
		}
		b.MakeMove(m)
	}
}

func TestZobristTransposition(t *testing.T) {
	a, b := New(), New()
	playUCI(t, a, "g1f3", "g8f6", "b1c3", "b8c6")
	playUCI(t, b, "b1c3", "b8c6", "g1f3", "g8f6")
	if a.Hash() != b.Hash() || a.PawnHash() != b.PawnHash() {
		t.Fatalf("transposed positions hash differently: %x vs %x", a.Hash(), b.Hash())
	}
	if a.Hash() != MustParseFEN(a.FEN()).Hash() {
		t.Fatal("incremental key differs from a freshly parsed board")
	}
	if a.PawnHash() != New().PawnHash() {
		t.Fatal("knight moves changed the pawn key")
	}
	if a.NonPawnHash(White) == New().NonPawnHash(White) {
		t.Fatal("knight moves left the white non-pawn key unchanged")
	}
}

func TestZobristDistinguishes(t *testing.T) {
	base := MustParseFEN("r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	variants := []string{
		"r3k2r/8/8/3pP3/8/8/8/R3K2R b KQkq - 0 1",
		"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQk d6 0 1",
		"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq - 0 1",
		"r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 5 9",
	}
	for i, fen := range variants {
		same := i == len(variants)-1
		if got := MustParseFEN(fen).Hash() == base.Hash(); got != same {
			t.Fatalf("%s: equal hash %v, want %v", fen, got, same)
		}
	}
}

func TestZobristIncrementalAlongGame(t *testing.T) {
	b := MustParseFEN(kiwipeteFEN)
	playUCI(t, b, "e1g1", "e8c8", "d5e6", "b4c3", "e6f7", "h3g2", "f7f8q")
	for b.Ply() > 0 {
		key, pawnKey, nonPawn := b.st().computeKeys()
		if key != b.Hash() || pawnKey != b.PawnHash() || nonPawn != [2]uint64{b.NonPawnHash(White), b.NonPawnHash(Black)} {
			t.Fatalf("keys drifted at ply %d (%s)", b.Ply(), b.FEN())
		}
		b.UnmakeMove()
	}
	if b.PieceAt(bb.E1) != WhiteKing {
		t.Fatal("unwound to the wrong position")
	}
}
