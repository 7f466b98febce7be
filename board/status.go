package board

import bb "chess-core/bitboard"

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.st().checkers != 0 }

// HasLegalMoves reports whether the side to move has any legal move.
func (b *Board) HasLegalMoves() bool {
	var list MoveList
	return b.GenMoves(GenLegal, &list) > 0
}

// IsCheckmate reports whether the side to move is checkmated.
func (b *Board) IsCheckmate() bool { return b.InCheck() && !b.HasLegalMoves() }

// IsStalemate reports whether the side to move has no legal move and is not in check.
func (b *Board) IsStalemate() bool { return !b.InCheck() && !b.HasLegalMoves() }

// IsDrawBy50 reports a 50-move rule draw (the clock counts half-moves).
func (b *Board) IsDrawBy50() bool { return b.st().halfmove >= 100 }

// IsRepetition reports whether the current position has occurred count
// times, itself included. Only positions since the last capture, pawn move
// or null move are considered, and only those with the same side to move.
func (b *Board) IsRepetition(count int) bool {
	s := b.st()
	window := s.halfmove
	if s.pliesFromNull < window {
		window = s.pliesFromNull
	}
	seen := 1
	for i := b.top - 2; i >= 0 && b.top-i <= window; i -= 2 {
		if b.stack[i].key == s.key {
			seen++
			if seen >= count {
				return true
			}
		}
	}
	return seen >= count
}

// IsInsufficientMaterial reports positions where neither side can mate:
// bare kings, a single minor piece, or bishops that all stand on one colour.
func (b *Board) IsInsufficientMaterial() bool {
	s := b.st()
	if s.byType[Pawn]|s.byType[Rook]|s.byType[Queen] != 0 {
		return false
	}
	minors := s.byType[Knight] | s.byType[Bishop]
	if minors.PopCount() <= 1 {
		return true
	}
	if s.byType[Knight] != 0 {
		return false
	}
	const light = bb.Bitboard(0x55AA55AA55AA55AA)
	bishops := s.byType[Bishop]
	return bishops&light == 0 || bishops&^light == 0
}

// IsDraw reports a draw by the fifty-move rule, threefold repetition or
// insufficient material. Checkmate on the hundredth half-move takes precedence.
func (b *Board) IsDraw() bool {
	if b.IsDrawBy50() && !b.IsCheckmate() {
		return true
	}
	return b.IsRepetition(3) || b.IsInsufficientMaterial()
}
