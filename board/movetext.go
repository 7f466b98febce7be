package board

import (
	"fmt"
	"strings"

	bb "chess-core/bitboard"
)

// ParseUCI resolves a long-algebraic move such as "e2e4" or "e7e8q" against
// the legal moves of the position. Castling is written as the king's step.
func (b *Board) ParseUCI(s string) (Move, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	if len(str) < 4 || len(str) > 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := bb.ParseSquare(str[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	to, err := bb.ParseSquare(str[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	promo := PieceTypeNone
	if len(str) == 5 {
		switch str[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NullMove, fmt.Errorf("%w: bad promotion piece in %q", ErrInvalidMove, s)
		}
	}

	var list MoveList
	b.GenMoves(GenLegal, &list)
	for _, m := range list.Slice() {
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %s in %s", ErrMoveNotFound, str, b.FEN())
}

const sanPieces = "  NBRQK"

// SAN returns the standard algebraic notation of the legal move m, including
// the check or mate suffix.
func (b *Board) SAN(m Move) string {
	s := b.st()
	from, to := m.From(), m.To()
	p := s.pieces[from]
	var sb strings.Builder

	switch {
	case m.Kind() == Castle:
		if to.File() == 6 {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	case p.Type() == Pawn:
		if from.File() != to.File() {
			sb.WriteByte('a' + byte(from.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if pt := m.Promotion(); pt != PieceTypeNone {
			sb.WriteByte('=')
			sb.WriteByte(sanPieces[pt])
		}
	default:
		sb.WriteByte(sanPieces[p.Type()])
		sb.WriteString(b.disambiguation(m))
		if s.pieces[to] != NoPiece {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
	}

	b.MakeMove(m)
	if b.InCheck() {
		if b.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	b.UnmakeMove()
	return sb.String()
}

// disambiguation names the origin file, rank or both when another piece of
// the same kind can reach the same square.
func (b *Board) disambiguation(m Move) string {
	s := b.st()
	from, to := m.From(), m.To()
	var list MoveList
	b.GenMoves(GenLegal, &list)

	var others, sameFile, sameRank bool
	for _, o := range list.Slice() {
		if o.To() != to || o.From() == from || s.pieces[o.From()] != s.pieces[from] {
			continue
		}
		others = true
		if o.From().File() == from.File() {
			sameFile = true
		}
		if o.From().Rank() == from.Rank() {
			sameRank = true
		}
	}
	var out []byte
	if sameRank || (others && !sameFile) {
		out = append(out, 'a'+byte(from.File()))
	}
	if sameFile {
		out = append(out, '1'+byte(from.Rank()))
	}
	return string(out)
}

type sanQuery struct {
	piece    PieceType
	fromFile int
	fromRank int
	to       bb.Square
	promo    PieceType
	castle   bb.Square // king destination, or NoSquare
}

func parseSANText(text string) (sanQuery, bool) {
	q := sanQuery{fromFile: -1, fromRank: -1, castle: bb.NoSquare}
	str := strings.TrimRight(strings.TrimSpace(text), "+#!?")

	switch str {
	case "O-O", "0-0":
		q.piece, q.castle = King, bb.G1
		return q, true
	case "O-O-O", "0-0-0":
		q.piece, q.castle = King, bb.C1
		return q, true
	}

	if n := len(str); n >= 3 && strings.IndexByte("NBRQ", str[n-1]) >= 0 {
		q.promo = PieceType(strings.IndexByte(sanPieces, str[n-1]))
		str = strings.TrimSuffix(str[:n-1], "=")
	}
	if len(str) < 2 {
		return q, false
	}
	to, err := bb.ParseSquare(str[len(str)-2:])
	if err != nil {
		return q, false
	}
	q.to = to
	rest := str[:len(str)-2]

	q.piece = Pawn
	if len(rest) > 0 && strings.IndexByte("NBRQK", rest[0]) >= 0 {
		q.piece = PieceType(strings.IndexByte(sanPieces, rest[0]))
		rest = rest[1:]
	}
	rest = strings.TrimSuffix(rest, "x")
	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; {
		case c >= 'a' && c <= 'h' && q.fromFile < 0:
			q.fromFile = int(c - 'a')
		case c >= '1' && c <= '8' && q.fromRank < 0:
			q.fromRank = int(c - '1')
		default:
			return q, false
		}
	}
	if q.promo != PieceTypeNone && q.piece != Pawn {
		return q, false
	}
	return q, true
}

// ParseSAN resolves a move in standard algebraic notation. Check and
// annotation suffixes are ignored and the capture mark is optional.
// It returns ErrMoveNotFound or ErrAmbiguousMove when the text matches
// no legal move or several.
func (b *Board) ParseSAN(text string) (Move, error) {
	q, ok := parseSANText(text)
	if !ok {
		return NullMove, fmt.Errorf("%w: %q", ErrInvalidMove, text)
	}
	s := b.st()
	var list MoveList
	b.GenMoves(GenLegal, &list)

	found, matches := NullMove, 0
	for _, m := range list.Slice() {
		from := m.From()
		if q.castle != bb.NoSquare {
			if m.Kind() != Castle || m.To().File() != q.castle.File() {
				continue
			}
		} else {
			if m.Kind() == Castle || m.To() != q.to || s.pieces[from].Type() != q.piece || m.Promotion() != q.promo {
				continue
			}
			if q.fromFile >= 0 && from.File() != q.fromFile || q.fromRank >= 0 && from.Rank() != q.fromRank {
				continue
			}
		}
		found = m
		matches++
	}
	switch matches {
	case 0:
		return NullMove, fmt.Errorf("%w: %s in %s", ErrMoveNotFound, text, b.FEN())
	case 1:
		return found, nil
	default:
		return NullMove, fmt.Errorf("%w: %s matches %d moves", ErrAmbiguousMove, text, matches)
	}
}
