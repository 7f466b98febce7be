package board

import "testing"

func benchGen(b *testing.B, fen string, kind GenKind) {
	board, err := ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	var list MoveList
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.GenMoves(kind, &list)
	}
}

func BenchmarkGenLegal_Initial(b *testing.B)  { benchGen(b, StartFEN, GenLegal) }
func BenchmarkGenLegal_Kiwipete(b *testing.B) { benchGen(b, kiwipeteFEN, GenLegal) }
func BenchmarkGenLegal_Pos6(b *testing.B)     { benchGen(b, pos6FEN, GenLegal) }

func BenchmarkGenNoisy_EP(b *testing.B) {
	benchGen(b, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", GenNoisy)
}

func BenchmarkGenQuiet_Initial(b *testing.B) { benchGen(b, StartFEN, GenQuiet) }

func BenchmarkMakeUnmake_AllMoves_Kiwipete(b *testing.B) {
	board := MustParseFEN(kiwipeteFEN)
	moves := board.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			board.MakeMove(m)
			board.UnmakeMove()
		}
	}
}

func benchPerft(b *testing.B, fen string, depth int) {
	board, err := ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Perft(board, depth)
	}
}

func BenchmarkPerft_Initial_D4(b *testing.B)  { benchPerft(b, StartFEN, 4) }
func BenchmarkPerft_Kiwipete_D3(b *testing.B) { benchPerft(b, kiwipeteFEN, 3) }
