package board

// Perft counts the leaf nodes of the legal move tree to the given depth.
// The last ply is counted in bulk without making the moves.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	var list MoveList
	n := b.GenMoves(GenLegal, &list)
	if depth == 1 {
		return uint64(n)
	}
	var nodes uint64
	for _, m := range list.Slice() {
		b.MakeMove(m)
		nodes += Perft(b, depth-1)
		b.UnmakeMove()
	}
	return nodes
}

// PerftDivide returns the perft count below each legal root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	var list MoveList
	b.GenMoves(GenLegal, &list)
	for _, m := range list.Slice() {
		b.MakeMove(m)
		result[m] = Perft(b, depth-1)
		b.UnmakeMove()
	}
	return result
}
