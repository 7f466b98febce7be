package board

// Piece encodes a colored piece. Black pieces carry bit 3 so that
// p&7 gives the type and p&8 the side.
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless piece kind used for table lookups.
type PieceType uint8

const (
	PieceTypeNone PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// NewPiece combines a side and a type. PieceTypeNone yields NoPiece.
func NewPiece(c Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	return Piece(pt) | Piece(c)<<3
}

func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the owner of the piece. NoPiece reports White.
func (p Piece) Color() Color { return Color(p >> 3 & 1) }

const pieceChars = " PNBRQK  pnbrqk"

// Char returns the FEN letter of the piece, or ' ' for NoPiece.
func (p Piece) Char() byte { return pieceChars[p] }

func (p Piece) String() string {
	if p == NoPiece {
		return "-"
	}
	return string(p.Char())
}

func pieceFromChar(ch byte) Piece {
	switch ch {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	}
	return NoPiece
}

// CastlingRights is a bitmask of the four castling options.
type CastlingRights uint8

const (
	CastlingWhiteK CastlingRights = 1 << iota
	CastlingWhiteQ
	CastlingBlackK
	CastlingBlackQ

	CastlingNone CastlingRights = 0
	CastlingAll                 = CastlingWhiteK | CastlingWhiteQ | CastlingBlackK | CastlingBlackQ
)

func (cr CastlingRights) String() string {
	if cr == 0 {
		return "-"
	}
	buf := make([]byte, 0, 4)
	for i, ch := range []byte("KQkq") {
		if cr&(1<<i) != 0 {
			buf = append(buf, ch)
		}
	}
	return string(buf)
}
