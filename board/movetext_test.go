package board

import (
	"errors"
	"testing"

	bb "chess-core/bitboard"
)

func TestMoveEncoding(t *testing.T) {
	cases := []struct {
		m     Move
		from  bb.Square
		to    bb.Square
		kind  MoveKind
		promo PieceType
		uci   string
	}{
		{NewMove(bb.E2, bb.E4), bb.E2, bb.E4, Normal, PieceTypeNone, "e2e4"},
		{NewPromotion(bb.A7, bb.B8, Knight), bb.A7, bb.B8, Promotion, Knight, "a7b8n"},
		{NewPromotion(bb.H2, bb.H1, Queen), bb.H2, bb.H1, Promotion, Queen, "h2h1q"},
		{NewEnPassant(bb.E5, bb.D6), bb.E5, bb.D6, EnPassant, PieceTypeNone, "e5d6"},
		{NewCastle(bb.E8, bb.C8), bb.E8, bb.C8, Castle, PieceTypeNone, "e8c8"},
	}
	for _, tc := range cases {
		if tc.m.From() != tc.from || tc.m.To() != tc.to || tc.m.Kind() != tc.kind || tc.m.Promotion() != tc.promo {
			t.Fatalf("%s decoded as %v %v kind %d promo %d", tc.uci, tc.m.From(), tc.m.To(), tc.m.Kind(), tc.m.Promotion())
		}
		if tc.m.String() != tc.uci {
			t.Fatalf("String: got %s want %s", tc.m, tc.uci)
		}
	}
	if NullMove.String() != "0000" {
		t.Fatalf("null move prints as %s", NullMove)
	}
}

func TestParseUCI(t *testing.T) {
	b := MustParseFEN(kiwipeteFEN)
	m, err := b.ParseUCI("e1c1")
	if err != nil || m.Kind() != Castle {
		t.Fatalf("e1c1: %v kind %d", err, m.Kind())
	}
	if _, err := b.ParseUCI("e1e3"); !errors.Is(err, ErrMoveNotFound) {
		t.Fatalf("e1e3: got %v want ErrMoveNotFound", err)
	}
	for _, s := range []string{"", "e2", "e2e4e5", "i2e4", "e2e9", "e7e8x"} {
		if _, err := b.ParseUCI(s); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("%q: got %v want ErrInvalidMove", s, err)
		}
	}

	b = MustParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	m, err = b.ParseUCI("a7b8r")
	if err != nil || m != NewPromotion(bb.A7, bb.B8, Rook) {
		t.Fatalf("a7b8r: %v %v", m, err)
	}
	if _, err := b.ParseUCI("a7a8"); !errors.Is(err, ErrMoveNotFound) {
		t.Fatalf("promotion without a piece: got %v", err)
	}
}

func TestSAN(t *testing.T) {
	cases := []struct {
		fen string
		uci string
		san string
	}{
		{StartFEN, "g1f3", "Nf3"},
		{StartFEN, "e2e4", "e4"},
		{kiwipeteFEN, "e1g1", "O-O"},
		{kiwipeteFEN, "e1c1", "O-O-O"},
		{kiwipeteFEN, "d5e6", "dxe6"},
		{kiwipeteFEN, "e5f7", "Nxf7"},
		{kiwipeteFEN, "c3b1", "Nb1"},
		{kiwipeteFEN, "e2a6", "Bxa6"},
		{"k7/8/8/3pP3/8/8/8/7K w - d6 0 2", "e5d6", "exd6"},
		{"1n5k/P7/8/8/8/8/8/7K w - - 0 1", "a7b8q", "axb8=Q+"},
		{"1n5k/P7/8/8/8/8/8/7K w - - 0 1", "a7a8n", "a8=N"},
		// Rooks on the same file need the rank.
		{"4k3/8/8/R7/8/8/8/R3K3 w - - 0 1", "a1a3", "R1a3"},
		// Knights on the same rank need the file.
		{"4k3/8/8/8/8/8/8/1N3NK1 w - - 0 1", "b1d2", "Nbd2"},
		// Three queens: file and rank together.
		{"6k1/8/8/8/8/Q7/8/Q1Q4K w - - 0 1", "a1b2", "Qa1b2"},
		{"7k/6pp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
		{"7k/8/8/8/8/8/R7/6K1 w - - 0 1", "a2a8", "Ra8+"},
	}
	for _, tc := range cases {
		b := MustParseFEN(tc.fen)
		m, err := b.ParseUCI(tc.uci)
		if err != nil {
			t.Fatalf("%s %s: %v", tc.fen, tc.uci, err)
		}
		if got := b.SAN(m); got != tc.san {
			t.Fatalf("%s %s: SAN %s want %s", tc.fen, tc.uci, got, tc.san)
		}
		back, err := b.ParseSAN(tc.san)
		if err != nil || back != m {
			t.Fatalf("ParseSAN(%s) = %v, %v want %v", tc.san, back, err, m)
		}
	}
}

func TestParseSANRoundTrip(t *testing.T) {
	for _, fen := range genFENs {
		b := MustParseFEN(fen)
		for _, m := range b.LegalMoves() {
			san := b.SAN(m)
			got, err := b.ParseSAN(san)
			if err != nil || got != m {
				t.Fatalf("%s: ParseSAN(%s) = %v, %v want %v", fen, san, got, err, m)
			}
		}
	}
}

func TestParseSANLenient(t *testing.T) {
	b := MustParseFEN(kiwipeteFEN)
	for text, uci := range map[string]string{
		"0-0":    "e1g1",
		"0-0-0":  "e1c1",
		"Nf7":    "e5f7",
		"Ne5xf7": "e5f7",
		"de6":    "d5e6",
		"Bxa6!?": "e2a6",
	} {
		want, err := b.ParseUCI(uci)
		if err != nil {
			t.Fatal(err)
		}
		if got, err := b.ParseSAN(text); err != nil || got != want {
			t.Fatalf("ParseSAN(%q) = %v, %v want %v", text, got, err, want)
		}
	}
	b = MustParseFEN("1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if m, err := b.ParseSAN("axb8R"); err != nil || m != NewPromotion(bb.A7, bb.B8, Rook) {
		t.Fatalf("promotion without '=': %v %v", m, err)
	}
}

func TestParseSANErrors(t *testing.T) {
	b := MustParseFEN("4k3/8/8/R7/8/8/8/R3K3 w - - 0 1")
	if _, err := b.ParseSAN("Ra3"); !errors.Is(err, ErrAmbiguousMove) {
		t.Fatalf("Ra3: got %v want ErrAmbiguousMove", err)
	}
	b = MustParseFEN(kiwipeteFEN)
	if _, err := b.ParseSAN("Qh8"); !errors.Is(err, ErrMoveNotFound) {
		t.Fatalf("Qh8: got %v want ErrMoveNotFound", err)
	}
	for _, text := range []string{"", "Z4", "Ke", "Nb1=Q", "exd9"} {
		if _, err := b.ParseSAN(text); !errors.Is(err, ErrInvalidMove) {
			t.Fatalf("%q: got %v want ErrInvalidMove", text, err)
		}
	}
}
