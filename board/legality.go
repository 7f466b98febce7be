package board

import bb "chess-core/bitboard"

// IsPseudoLegal reports whether m describes a move the piece on its origin
// could make in this position, ignoring the safety of the mover's king.
// Moves from a hash table or killer slot should pass IsLegal before MakeMove.
func (b *Board) IsPseudoLegal(m Move) bool {
	s := b.st()
	tab := b.tab
	us := s.side
	from, to := m.From(), m.To()
	p := s.pieces[from]

	if m == NullMove || from == to || p == NoPiece || p.Color() != us || s.byColor[us].Has(to) {
		return false
	}
	if m.Kind() != Promotion && m>>movePromoShift&3 != 0 {
		return false
	}

	occ := s.occupied()
	switch m.Kind() {
	case Castle:
		return p.Type() == King && b.castlePathClear(s, from, to)
	case EnPassant:
		return p.Type() == Pawn && to == s.ep && tab.Pawn(int(us), from).Has(to)
	}

	if p.Type() == Pawn {
		lastRank := bb.Rank8
		if us == Black {
			lastRank = bb.Rank1
		}
		if lastRank.Has(to) != (m.Kind() == Promotion) {
			return false
		}
		return b.pawnReaches(s, from, to)
	}
	if m.Kind() == Promotion {
		return false
	}

	var att bb.Bitboard
	switch p.Type() {
	case Knight:
		att = tab.Knight(from)
	case Bishop:
		att = tab.Bishop(from, occ)
	case Rook:
		att = tab.Rook(from, occ)
	case Queen:
		att = tab.Queen(from, occ)
	case King:
		att = tab.King(from)
	}
	return att.Has(to)
}

func (b *Board) pawnReaches(s *State, from, to bb.Square) bool {
	occ := s.occupied()
	forward, startRank := bb.Square(8), bb.Rank2
	if s.side == Black {
		forward, startRank = -8, bb.Rank7
	}
	switch to {
	case from + forward:
		return !occ.Has(to)
	case from + 2*forward:
		return startRank.Has(from) && !occ.Has(from+forward) && !occ.Has(to)
	}
	return b.tab.Pawn(int(s.side), from).Has(to) && s.byColor[s.side.Other()].Has(to)
}

// castlePathClear checks the right and the empty squares for a castling
// king step; attacked squares are left to IsLegal.
func (b *Board) castlePathClear(s *State, from, to bb.Square) bool {
	var right CastlingRights
	var empty bb.Bitboard
	switch {
	case s.side == White && from == bb.E1 && to == bb.G1:
		right, empty = CastlingWhiteK, bb.F1.Bitboard()|bb.G1.Bitboard()
	case s.side == White && from == bb.E1 && to == bb.C1:
		right, empty = CastlingWhiteQ, bb.B1.Bitboard()|bb.C1.Bitboard()|bb.D1.Bitboard()
	case s.side == Black && from == bb.E8 && to == bb.G8:
		right, empty = CastlingBlackK, bb.F8.Bitboard()|bb.G8.Bitboard()
	case s.side == Black && from == bb.E8 && to == bb.C8:
		right, empty = CastlingBlackQ, bb.B8.Bitboard()|bb.C8.Bitboard()|bb.D8.Bitboard()
	default:
		return false
	}
	return s.castling&right != 0 && s.occupied()&empty == 0
}

// IsLegal reports whether m is one of the moves GenMoves(GenLegal) returns.
func (b *Board) IsLegal(m Move) bool {
	if !b.IsPseudoLegal(m) {
		return false
	}
	s := b.st()
	tab := b.tab
	us := s.side
	from, to := m.From(), m.To()
	ksq := s.kingSquare(us)

	if m.Kind() == Castle {
		return s.checkers == 0 && s.threats&(tab.Between(from, to)|to.Bitboard()) == 0
	}
	if from == ksq {
		return !s.threats.Has(to)
	}
	if s.checkers.MoreThanOne() {
		return false
	}
	if s.pinned[us].Has(from) && !tab.Line(ksq, from).Has(to) {
		return false
	}

	if m.Kind() == EnPassant {
		capSq := to ^ 8
		if s.checkers != 0 && !s.checkers.Has(capSq) && !tab.Between(ksq, s.checkers.LSB()).Has(to) {
			return false
		}
		return !b.epExposesKing(s, from, capSq)
	}
	if s.checkers != 0 {
		return (s.checkers | tab.Between(ksq, s.checkers.LSB())).Has(to)
	}
	return true
}

// GivesCheck reports whether the legal move m checks the opponent, directly
// or by discovery.
func (b *Board) GivesCheck(m Move) bool {
	s := b.st()
	tab := b.tab
	us, them := s.side, s.side.Other()
	ksq := s.kingSquare(them)
	from, to := m.From(), m.To()

	pt := s.pieces[from].Type()
	if m.Kind() == Promotion {
		pt = m.Promotion()
	}
	occ := s.occupied()&^from.Bitboard() | to.Bitboard()
	diag := (s.of(us, Bishop) | s.of(us, Queen)) &^ from.Bitboard()
	orth := (s.of(us, Rook) | s.of(us, Queen)) &^ from.Bitboard()

	switch m.Kind() {
	case EnPassant:
		occ &^= (to ^ 8).Bitboard()
	case Castle:
		rookFrom, rookTo := castleRookSquares(to)
		occ = occ&^rookFrom.Bitboard() | rookTo.Bitboard()
		orth = orth&^rookFrom.Bitboard() | rookTo.Bitboard()
	}

	var direct bb.Bitboard
	switch pt {
	case Pawn:
		direct = tab.Pawn(int(us), to)
	case Knight:
		direct = tab.Knight(to)
	case Bishop:
		direct = tab.Bishop(to, occ)
	case Rook:
		direct = tab.Rook(to, occ)
	case Queen:
		direct = tab.Queen(to, occ)
	}
	if direct.Has(ksq) {
		return true
	}
	return tab.Bishop(ksq, occ)&diag != 0 || tab.Rook(ksq, occ)&orth != 0
}
