package board

import (
	"errors"
	"fmt"

	bb "chess-core/bitboard"
)

var ErrCorrupt = errors.New("board: inconsistent state")

// Validate recomputes every derived field of the current snapshot from the
// square array and reports the first disagreement. It is meant for tests and
// debugging, not for the search loop.
func (b *Board) Validate() error {
	s := b.st()

	var byType [King + 1]bb.Bitboard
	var byColor [2]bb.Bitboard
	for sq := bb.A1; sq <= bb.H8; sq++ {
		p := s.pieces[sq]
		if p == NoPiece {
			continue
		}
		if p.Type() == PieceTypeNone || p.Type() > King {
			return fmt.Errorf("%w: bad piece code %d on %v", ErrCorrupt, p, sq)
		}
		byType[p.Type()] |= sq.Bitboard()
		byColor[p.Color()] |= sq.Bitboard()
	}
	if byType != s.byType {
		return fmt.Errorf("%w: piece bitboards disagree with the square array", ErrCorrupt)
	}
	if byColor != s.byColor {
		return fmt.Errorf("%w: color bitboards disagree with the square array", ErrCorrupt)
	}
	if s.byColor[White]&s.byColor[Black] != 0 {
		return fmt.Errorf("%w: colors overlap", ErrCorrupt)
	}
	for _, c := range []Color{White, Black} {
		if s.of(c, King).PopCount() != 1 {
			return fmt.Errorf("%w: %v has %d kings", ErrCorrupt, c, s.of(c, King).PopCount())
		}
	}

	key, pawnKey, nonPawn := s.computeKeys()
	if key != s.key || pawnKey != s.pawnKey || nonPawn != s.nonPawnKey {
		return fmt.Errorf("%w: zobrist keys drifted", ErrCorrupt)
	}

	fresh := *s
	fresh.updateCheckInfo(b.tab)
	if fresh.checkers != s.checkers || fresh.pinned != s.pinned || fresh.pinners != s.pinners || fresh.threats != s.threats {
		return fmt.Errorf("%w: check info is stale", ErrCorrupt)
	}
	if s.checkers != s.attackersTo(b.tab, s.kingSquare(s.side), s.occupied())&s.byColor[s.side.Other()] {
		return fmt.Errorf("%w: checkers disagree with attackers of the king", ErrCorrupt)
	}

	normalized := *s
	normalized.normalize(b.tab)
	if normalized.castling != s.castling {
		return fmt.Errorf("%w: castling rights %v without king and rook at home", ErrCorrupt, s.castling)
	}
	if normalized.ep != s.ep {
		return fmt.Errorf("%w: en passant square %v cannot be used", ErrCorrupt, s.ep)
	}
	return nil
}
