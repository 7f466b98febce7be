package board

import (
	"chess-core/attacks"
	bb "chess-core/bitboard"
)

// attackersTo returns the pieces of either side attacking sq under occupancy occ.
func (s *State) attackersTo(tab *attacks.Tables, sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return tab.Pawn(int(White), sq)&s.of(Black, Pawn) |
		tab.Pawn(int(Black), sq)&s.of(White, Pawn) |
		tab.Knight(sq)&s.byType[Knight] |
		tab.King(sq)&s.byType[King] |
		tab.Bishop(sq, occ)&(s.byType[Bishop]|s.byType[Queen]) |
		tab.Rook(sq, occ)&(s.byType[Rook]|s.byType[Queen])
}

// attacksBy returns every square attacked by side c under occupancy occ.
func (s *State) attacksBy(tab *attacks.Tables, c Color, occ bb.Bitboard) bb.Bitboard {
	pawns := s.of(c, Pawn)
	var att bb.Bitboard
	if c == White {
		att = pawns.NorthEast() | pawns.NorthWest()
	} else {
		att = pawns.SouthEast() | pawns.SouthWest()
	}
	for n := s.of(c, Knight); n != 0; {
		att |= tab.Knight(n.PopLSB())
	}
	for d := s.of(c, Bishop) | s.of(c, Queen); d != 0; {
		att |= tab.Bishop(d.PopLSB(), occ)
	}
	for o := s.of(c, Rook) | s.of(c, Queen); o != 0; {
		att |= tab.Rook(o.PopLSB(), occ)
	}
	return att | tab.King(s.kingSquare(c))
}

// pinnersBlockers casts a ray from ksq in each direction. A slider of the
// attacking side met first is a checker; a lone defender piece with such a
// slider behind it is pinned.
func (s *State) pinnersBlockers(tab *attacks.Tables, ksq bb.Square, attacker Color) (checkers, pinned, pinners bb.Bitboard) {
	occ := s.occupied()
	defenders := s.byColor[attacker.Other()]
	orth := s.of(attacker, Rook) | s.of(attacker, Queen)
	diag := s.of(attacker, Bishop) | s.of(attacker, Queen)

	for d := bb.North; d < bb.NumDirections; d++ {
		sliders := orth
		if d.Diagonal() {
			sliders = diag
		}
		ray := tab.Ray(ksq, d)
		if ray&sliders == 0 {
			continue
		}
		first := (ray & occ).Nearest(d)
		if sliders.Has(first) {
			checkers |= first.Bitboard()
			continue
		}
		if !defenders.Has(first) {
			continue
		}
		beyond := tab.Ray(first, d) & occ
		if beyond == 0 {
			continue
		}
		if second := beyond.Nearest(d); sliders.Has(second) {
			pinned |= first.Bitboard()
			pinners |= second.Bitboard()
		}
	}
	return checkers, pinned, pinners
}

// updateCheckInfo recomputes checkers, pins and threats from the current
// occupancy. It runs after every make and after FEN setup.
func (s *State) updateCheckInfo(tab *attacks.Tables) {
	us, them := s.side, s.side.Other()
	ksq := s.kingSquare(us)

	sliderCheckers, pinnedUs, pinnersThem := s.pinnersBlockers(tab, ksq, them)
	_, pinnedThem, pinnersUs := s.pinnersBlockers(tab, s.kingSquare(them), us)

	s.checkers = sliderCheckers |
		tab.Pawn(int(us), ksq)&s.of(them, Pawn) |
		tab.Knight(ksq)&s.of(them, Knight)
	s.pinned[us], s.pinned[them] = pinnedUs, pinnedThem
	s.pinners[us], s.pinners[them] = pinnersUs, pinnersThem

	// Sliders see through the king so it cannot step back along the check ray.
	s.threats = s.attacksBy(tab, them, s.occupied()&^ksq.Bitboard())
}

// AttackersTo returns the pieces of both sides attacking sq when the board
// has occupancy occ.
func (b *Board) AttackersTo(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return b.st().attackersTo(b.tab, sq, occ)
}

// IsSquareAttacked reports whether side by attacks sq in the current position.
func (b *Board) IsSquareAttacked(sq bb.Square, by Color) bool {
	s := b.st()
	return s.attackersTo(b.tab, sq, s.occupied())&s.byColor[by] != 0
}

// AttacksBy returns every square attacked by side c.
func (b *Board) AttacksBy(c Color) bb.Bitboard {
	s := b.st()
	return s.attacksBy(b.tab, c, s.occupied())
}
