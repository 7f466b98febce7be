package board

import bb "chess-core/bitboard"

// castlingMask[sq] holds the rights that survive a move touching sq.
var castlingMask = func() (m [64]CastlingRights) {
	for sq := range m {
		m[sq] = CastlingAll
	}
	m[bb.A1] &^= CastlingWhiteQ
	m[bb.H1] &^= CastlingWhiteK
	m[bb.E1] &^= CastlingWhiteK | CastlingWhiteQ
	m[bb.A8] &^= CastlingBlackQ
	m[bb.H8] &^= CastlingBlackK
	m[bb.E8] &^= CastlingBlackK | CastlingBlackQ
	return m
}()

// castleRookSquares maps a castling king destination to the rook's move.
func castleRookSquares(kingTo bb.Square) (from, to bb.Square) {
	switch kingTo {
	case bb.G1:
		return bb.H1, bb.F1
	case bb.C1:
		return bb.A1, bb.D1
	case bb.G8:
		return bb.H8, bb.F8
	default:
		return bb.A8, bb.D8
	}
}

// MakeMove plays m, which must be legal in the current position (see IsLegal).
func (b *Board) MakeMove(m Move) {
	s := b.push()
	us, them := s.side, s.side.Other()
	from, to := m.From(), m.To()
	moved := s.pieces[from]
	captured := NoPiece

	s.move = m
	s.halfmove++
	s.pliesFromNull++
	if s.ep != bb.NoSquare {
		s.key ^= zobristEnPassant[s.ep.File()]
		s.ep = bb.NoSquare
	}

	switch m.Kind() {
	case Castle:
		rookFrom, rookTo := castleRookSquares(to)
		s.movePiece(from, to)
		s.movePiece(rookFrom, rookTo)
	case EnPassant:
		captured = s.removePiece(to ^ 8)
		s.movePiece(from, to)
	case Promotion:
		if s.pieces[to] != NoPiece {
			captured = s.removePiece(to)
		}
		s.removePiece(from)
		s.addPiece(to, NewPiece(us, m.Promotion()))
	default:
		if s.pieces[to] != NoPiece {
			captured = s.removePiece(to)
		}
		s.movePiece(from, to)
	}

	if captured != NoPiece || moved.Type() == Pawn {
		s.halfmove = 0
	}

	// Record the en-passant square only when an enemy pawn can take there.
	if moved.Type() == Pawn && (to^from) == 16 {
		epSq := (from + to) / 2
		if b.tab.Pawn(int(us), epSq)&s.of(them, Pawn) != 0 {
			s.ep = epSq
			s.key ^= zobristEnPassant[epSq.File()]
		}
	}

	if s.castling != 0 {
		if cr := s.castling & castlingMask[from] & castlingMask[to]; cr != s.castling {
			s.key ^= zobristCastle[s.castling] ^ zobristCastle[cr]
			s.castling = cr
		}
	}

	if us == Black {
		s.fullmove++
	}
	s.side = them
	s.key ^= zobristSide
	s.captured = captured

	s.updateCheckInfo(b.tab)
}

// UnmakeMove takes back the last MakeMove. It panics when there is nothing to undo.
func (b *Board) UnmakeMove() { b.pop() }

// MakeNullMove passes the turn. It must not be called while in check.
func (b *Board) MakeNullMove() {
	s := b.push()
	if s.ep != bb.NoSquare {
		s.key ^= zobristEnPassant[s.ep.File()]
		s.ep = bb.NoSquare
	}
	if s.side == Black {
		s.fullmove++
	}
	s.halfmove++
	s.pliesFromNull = 0
	s.side = s.side.Other()
	s.key ^= zobristSide
	s.move = NullMove
	s.captured = NoPiece
	s.updateCheckInfo(b.tab)
}

func (b *Board) UnmakeNullMove() { b.pop() }
