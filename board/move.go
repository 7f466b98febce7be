package board

import bb "chess-core/bitboard"

// Move packs a move into 16 bits:
//
//	bits 0-5   from square
//	bits 6-11  to square
//	bits 12-13 promotion piece (knight, bishop, rook, queen)
//	bits 14-15 kind
//
// A move carries no board data; castling is encoded as the king's two-square step.
type Move uint16

type MoveKind uint8

const (
	Normal MoveKind = iota
	EnPassant
	Promotion
	Castle
)

// NullMove is the zero move, printed as "0000".
const NullMove Move = 0

const (
	moveToShift    = 6
	movePromoShift = 12
	moveKindShift  = 14
)

func newMove(from, to bb.Square, kind MoveKind) Move {
	return Move(from) | Move(to)<<moveToShift | Move(kind)<<moveKindShift
}

// NewMove builds a normal move.
func NewMove(from, to bb.Square) Move { return newMove(from, to, Normal) }

// NewPromotion builds a promotion to pt, which must be Knight..Queen.
func NewPromotion(from, to bb.Square, pt PieceType) Move {
	return newMove(from, to, Promotion) | Move(pt-Knight)<<movePromoShift
}

func NewEnPassant(from, to bb.Square) Move { return newMove(from, to, EnPassant) }

// NewCastle builds a castling move from the king's origin and destination.
func NewCastle(from, to bb.Square) Move { return newMove(from, to, Castle) }

func (m Move) From() bb.Square { return bb.Square(m & 0x3F) }
func (m Move) To() bb.Square   { return bb.Square(m >> moveToShift & 0x3F) }
func (m Move) Kind() MoveKind  { return MoveKind(m >> moveKindShift) }

// Promotion returns the promotion piece type, or PieceTypeNone.
func (m Move) Promotion() PieceType {
	if m.Kind() != Promotion {
		return PieceTypeNone
	}
	return PieceType(m>>movePromoShift&3) + Knight
}

// String returns the UCI form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if pt := m.Promotion(); pt != PieceTypeNone {
		s += string(NewPiece(Black, pt).Char())
	}
	return s
}

// MaxMoves bounds the number of legal moves in any position.
const MaxMoves = 256

// MoveList is a fixed-capacity move buffer filled by GenMoves.
type MoveList struct {
	moves [MaxMoves]Move
	n     int
}

func (l *MoveList) Len() int      { return l.n }
func (l *MoveList) At(i int) Move { return l.moves[i] }
func (l *MoveList) Reset()        { l.n = 0 }
func (l *MoveList) Slice() []Move { return l.moves[:l.n] }

// Add appends m. It panics when the list is full.
func (l *MoveList) Add(m Move) {
	l.moves[l.n] = m
	l.n++
}

// Contains reports whether m is in the list.
func (l *MoveList) Contains(m Move) bool {
	for _, x := range l.moves[:l.n] {
		if x == m {
			return true
		}
	}
	return false
}
