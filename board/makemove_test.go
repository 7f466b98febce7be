package board

import (
	"testing"

	bb "chess-core/bitboard"
)

var roundTripFENs = []string{
	StartFEN,
	kiwipeteFEN,
	pos3FEN,
	pos4FEN,
	pos4MirFEN,
	pos5FEN,
	pos6FEN,
	"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
	"8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1",
	"r3k2r/8/3Q4/8/8/5q2/8/R3K2R b KQkq - 0 1",
}

// walk makes and unmakes every legal move to the given depth, checking that
// each unmake restores the snapshot bit for bit and each make keeps the
// derived state consistent.
func walk(t *testing.T, b *Board, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	var list MoveList
	b.GenMoves(GenLegal, &list)
	for _, m := range list.Slice() {
		before := *b.st()
		b.MakeMove(m)
		if err := b.Validate(); err != nil {
			b.UnmakeMove()
			t.Fatalf("after %v from %s: %v", m, b.FEN(), err)
		}
		walk(t, b, depth-1)
		b.UnmakeMove()
		if *b.st() != before {
			t.Fatalf("unmake of %v did not restore %s (now %s)", m, before.fen(), b.FEN())
		}
	}
}

// fen is a debugging helper for snapshots that are not on a board.
func (s *State) fen() string {
	var tmp Board
	tmp.stack[0] = *s
	return tmp.FEN()
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	depth := 2
	if testing.Short() {
		depth = 1
	}
	for _, fen := range roundTripFENs {
		b := MustParseFEN(fen)
		walk(t, b, depth)
		if b.Ply() != 0 {
			t.Fatalf("%s: ply %d after walk", fen, b.Ply())
		}
	}
}

func TestMakeMoveSpecials(t *testing.T) {
	t.Run("castle moves rook and clears rights", func(t *testing.T) {
		b := MustParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 3 10")
		b.MakeMove(NewCastle(bb.E1, bb.G1))
		if b.PieceAt(bb.G1) != WhiteKing || b.PieceAt(bb.F1) != WhiteRook || b.PieceAt(bb.H1) != NoPiece {
			t.Fatalf("white short castle placed pieces wrong:\n%s", b)
		}
		if b.CastlingRights() != CastlingBlackK|CastlingBlackQ {
			t.Fatalf("castling rights after O-O: got %v want kq", b.CastlingRights())
		}
		if b.HalfmoveClock() != 4 {
			t.Fatalf("halfmove after castle: got %d want 4", b.HalfmoveClock())
		}
		b.MakeMove(NewCastle(bb.E8, bb.C8))
		if b.PieceAt(bb.C8) != BlackKing || b.PieceAt(bb.D8) != BlackRook || b.PieceAt(bb.A8) != NoPiece {
			t.Fatalf("black long castle placed pieces wrong:\n%s", b)
		}
		if b.CastlingRights() != CastlingNone || b.FullmoveNumber() != 11 {
			t.Fatalf("after O-O-O: rights %v fullmove %d", b.CastlingRights(), b.FullmoveNumber())
		}
	})

	t.Run("en passant removes the passed pawn", func(t *testing.T) {
		b := MustParseFEN("k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
		b.MakeMove(NewEnPassant(bb.E5, bb.D6))
		if b.PieceAt(bb.D5) != NoPiece || b.PieceAt(bb.D6) != WhitePawn || b.Captured() != BlackPawn {
			t.Fatalf("en passant left the board as\n%s", b)
		}
		if b.Pieces(Black, Pawn) != 0 {
			t.Fatalf("black pawn bitboard not cleared:\n%s", b.Pieces(Black, Pawn))
		}
	})

	t.Run("promotion capture revokes the rook's right", func(t *testing.T) {
		b := MustParseFEN("r3k2r/1P6/8/8/8/8/8/4K3 w kq - 0 1")
		b.MakeMove(NewPromotion(bb.B7, bb.A8, Knight))
		if b.PieceAt(bb.A8) != WhiteKnight || b.Pieces(White, Pawn) != 0 {
			t.Fatalf("promotion placed pieces wrong:\n%s", b)
		}
		if b.CastlingRights() != CastlingBlackK {
			t.Fatalf("rights after capturing a8 rook: got %v want k", b.CastlingRights())
		}
		if b.HalfmoveClock() != 0 {
			t.Fatalf("capture should reset the halfmove clock")
		}
	})

	t.Run("double push sets ep only when capturable", func(t *testing.T) {
		b := New()
		b.MakeMove(NewMove(bb.E2, bb.E4))
		if b.EnPassant() != bb.NoSquare {
			t.Fatalf("ep square %v set with no black pawn able to capture", b.EnPassant())
		}
		b = MustParseFEN("4k3/8/8/8/3p4/8/4P3/4K3 w - - 0 1")
		b.MakeMove(NewMove(bb.E2, bb.E4))
		if b.EnPassant() != bb.E3 {
			t.Fatalf("ep square: got %v want e3", b.EnPassant())
		}
		b.MakeNullMove()
		if b.EnPassant() != bb.NoSquare {
			t.Fatalf("null move kept ep square %v", b.EnPassant())
		}
	})
}

func TestNullMove(t *testing.T) {
	b := MustParseFEN(kiwipeteFEN)
	before := *b.st()
	b.MakeNullMove()
	if b.SideToMove() != Black || b.PliesFromNull() != 0 || b.LastMove() != NullMove {
		t.Fatalf("null move: side %v plies %d", b.SideToMove(), b.PliesFromNull())
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("after null move: %v", err)
	}
	if b.Hash() != before.key^zobristSide {
		t.Fatalf("null move hash should only flip the side key")
	}
	b.UnmakeNullMove()
	if *b.st() != before {
		t.Fatal("unmake null move did not restore the snapshot")
	}
}

func TestStackMisusePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("UnmakeMove on the root position should panic")
		}
	}()
	New().UnmakeMove()
}

func TestStackOverflowPanics(t *testing.T) {
	b := MustParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when the snapshot stack is full")
		}
		if b.Ply() != MaxPly-1 {
			t.Fatalf("overflow at ply %d, want %d", b.Ply(), MaxPly-1)
		}
	}()
	for i := 0; i <= MaxPly; i++ {
		b.MakeNullMove()
	}
}

func TestClone(t *testing.T) {
	b := MustParseFEN(kiwipeteFEN)
	b.MakeMove(NewCastle(bb.E1, bb.G1))
	c := b.Clone()
	c.UnmakeMove()
	if b.Ply() != 1 || c.Ply() != 0 {
		t.Fatalf("clone shares the stack: b ply %d c ply %d", b.Ply(), c.Ply())
	}
	if c.FEN() != MustParseFEN(kiwipeteFEN).FEN() {
		t.Fatalf("clone history wrong: %s", c.FEN())
	}
}
