package board

import bb "chess-core/bitboard"

// GenKind selects which legal moves GenMoves produces.
type GenKind uint8

const (
	// GenLegal produces every legal move.
	GenLegal GenKind = iota
	// GenNoisy produces captures, en-passant captures and queen promotions.
	GenNoisy
	// GenQuiet produces the legal moves GenNoisy leaves out.
	GenQuiet
	// GenNoisyQuiet produces the noisy moves followed by the quiet ones.
	GenNoisyQuiet
)

// GenMoves fills list with the legal moves of the given kind and returns
// how many there are. The list is reset first.
func (b *Board) GenMoves(kind GenKind, list *MoveList) int {
	list.Reset()
	if kind == GenNoisyQuiet {
		b.generate(GenNoisy, list)
		b.generate(GenQuiet, list)
	} else {
		b.generate(kind, list)
	}
	return list.Len()
}

// LegalMoves is a convenience wrapper returning a fresh slice.
func (b *Board) LegalMoves() []Move {
	var list MoveList
	b.GenMoves(GenLegal, &list)
	return append([]Move(nil), list.Slice()...)
}

func (b *Board) generate(kind GenKind, list *MoveList) {
	s := b.st()
	tab := b.tab
	us, them := s.side, s.side.Other()
	own, enemy := s.byColor[us], s.byColor[them]
	occ := own | enemy
	ksq := s.kingSquare(us)

	var targets bb.Bitboard
	switch kind {
	case GenNoisy:
		targets = enemy
	case GenQuiet:
		targets = ^occ
	default:
		targets = ^own
	}

	for t := tab.King(ksq) & targets &^ s.threats; t != 0; {
		list.Add(NewMove(ksq, t.PopLSB()))
	}
	if s.checkers.MoreThanOne() {
		return
	}

	moveMask := bb.Full
	if s.checkers != 0 {
		moveMask = s.checkers | tab.Between(ksq, s.checkers.LSB())
	} else if kind != GenNoisy {
		b.genCastling(s, list)
	}

	pinned := s.pinned[us]
	for n := s.of(us, Knight) &^ pinned; n != 0; {
		from := n.PopLSB()
		for t := tab.Knight(from) & targets & moveMask; t != 0; {
			list.Add(NewMove(from, t.PopLSB()))
		}
	}
	for p := (s.of(us, Bishop) | s.of(us, Queen)); p != 0; {
		from := p.PopLSB()
		t := tab.Bishop(from, occ) & targets & moveMask
		if pinned.Has(from) {
			t &= tab.Line(ksq, from)
		}
		for t != 0 {
			list.Add(NewMove(from, t.PopLSB()))
		}
	}
	for p := (s.of(us, Rook) | s.of(us, Queen)); p != 0; {
		from := p.PopLSB()
		t := tab.Rook(from, occ) & targets & moveMask
		if pinned.Has(from) {
			t &= tab.Line(ksq, from)
		}
		for t != 0 {
			list.Add(NewMove(from, t.PopLSB()))
		}
	}

	b.genPawns(s, kind, moveMask, list)
}

func (b *Board) genCastling(s *State, list *MoveList) {
	occ := s.occupied()
	if s.side == White {
		if s.castling&CastlingWhiteK != 0 && occ&(bb.F1.Bitboard()|bb.G1.Bitboard()) == 0 &&
			s.threats&(bb.F1.Bitboard()|bb.G1.Bitboard()) == 0 {
			list.Add(NewCastle(bb.E1, bb.G1))
		}
		if s.castling&CastlingWhiteQ != 0 && occ&(bb.B1.Bitboard()|bb.C1.Bitboard()|bb.D1.Bitboard()) == 0 &&
			s.threats&(bb.C1.Bitboard()|bb.D1.Bitboard()) == 0 {
			list.Add(NewCastle(bb.E1, bb.C1))
		}
		return
	}
	if s.castling&CastlingBlackK != 0 && occ&(bb.F8.Bitboard()|bb.G8.Bitboard()) == 0 &&
		s.threats&(bb.F8.Bitboard()|bb.G8.Bitboard()) == 0 {
		list.Add(NewCastle(bb.E8, bb.G8))
	}
	if s.castling&CastlingBlackQ != 0 && occ&(bb.B8.Bitboard()|bb.C8.Bitboard()|bb.D8.Bitboard()) == 0 &&
		s.threats&(bb.C8.Bitboard()|bb.D8.Bitboard()) == 0 {
		list.Add(NewCastle(bb.E8, bb.C8))
	}
}

func addPromotions(list *MoveList, from, to bb.Square, queen, under bool) {
	if queen {
		list.Add(NewPromotion(from, to, Queen))
	}
	if under {
		list.Add(NewPromotion(from, to, Knight))
		list.Add(NewPromotion(from, to, Rook))
		list.Add(NewPromotion(from, to, Bishop))
	}
}

func (b *Board) genPawns(s *State, kind GenKind, moveMask bb.Bitboard, list *MoveList) {
	tab := b.tab
	us := s.side
	occ := s.occupied()
	enemy := s.byColor[us.Other()]
	ksq := s.kingSquare(us)
	quiets, noisies := kind != GenNoisy, kind != GenQuiet

	forward, startRank, lastRank := bb.Square(8), bb.Rank2, bb.Rank8
	if us == Black {
		forward, startRank, lastRank = -8, bb.Rank7, bb.Rank1
	}

	for pawns := s.of(us, Pawn); pawns != 0; {
		from := pawns.PopLSB()
		allowed := moveMask
		if s.pinned[us].Has(from) {
			allowed &= tab.Line(ksq, from)
		}

		if one := from + forward; !occ.Has(one) {
			if allowed.Has(one) {
				if lastRank.Has(one) {
					addPromotions(list, from, one, noisies, quiets)
				} else if quiets {
					list.Add(NewMove(from, one))
				}
			}
			if two := one + forward; quiets && startRank.Has(from) && !occ.Has(two) && allowed.Has(two) {
				list.Add(NewMove(from, two))
			}
		}

		if !noisies {
			continue
		}
		for t := tab.Pawn(int(us), from) & enemy & allowed; t != 0; {
			to := t.PopLSB()
			if lastRank.Has(to) {
				addPromotions(list, from, to, true, true)
			} else {
				list.Add(NewMove(from, to))
			}
		}

		if s.ep != bb.NoSquare && tab.Pawn(int(us), from).Has(s.ep) {
			capSq := s.ep - forward
			if (moveMask.Has(s.ep) || s.checkers.Has(capSq)) &&
				(!s.pinned[us].Has(from) || tab.Line(ksq, from).Has(s.ep)) &&
				!b.epExposesKing(s, from, capSq) {
				list.Add(NewEnPassant(from, s.ep))
			}
		}
	}
}

// epExposesKing reports whether capturing en passant from `from` would leave
// the mover's king attacked. Two pawns leave the capture rank at once, which
// the pin bitboards cannot see, so the rank is scanned with both removed.
func (b *Board) epExposesKing(s *State, from, capSq bb.Square) bool {
	tab := b.tab
	us, them := s.side, s.side.Other()
	ksq := s.kingSquare(us)
	occ := s.occupied()&^from.Bitboard()&^capSq.Bitboard() | s.ep.Bitboard()

	if ksq.Rank() == from.Rank() {
		rank := bb.RankMask[from.Rank()]
		if tab.Rook(ksq, occ)&rank&(s.of(them, Rook)|s.of(them, Queen)) != 0 {
			return true
		}
	}
	// A diagonal through the captured pawn may open as well.
	return tab.Bishop(ksq, occ)&(s.of(them, Bishop)|s.of(them, Queen)) != 0
}
