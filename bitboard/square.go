package bitboard

import "errors"

// Square represents a board position (0-63).
type Square int

const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

var ErrInvalidSquare = errors.New("invalid square")

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

func (sq Square) File() int { return int(sq) % 8 }
func (sq Square) Rank() int { return int(sq) / 8 }

// Valid reports whether sq lies on the board.
func (sq Square) Valid() bool { return sq >= A1 && sq <= H8 }

// Bitboard returns the singleton set holding sq.
func (sq Square) Bitboard() Bitboard { return 1 << uint(sq) }

// FlipRank mirrors the square vertically (a1 <-> a8).
func (sq Square) FlipRank() Square { return sq ^ 56 }

// String returns the algebraic name, e.g. "e4", or "-" for NoSquare.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare converts an algebraic name such as "e4" to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, ErrInvalidSquare
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, ErrInvalidSquare
	}
	return NewSquare(int(file-'a'), int(rank-'1')), nil
}

// Direction is one of the eight ray directions.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	NumDirections
)

// Rising reports whether squares along d have increasing indices.
func (d Direction) Rising() bool {
	return d == North || d == NorthEast || d == East || d == NorthWest
}

// Diagonal reports whether d is a bishop direction.
func (d Direction) Diagonal() bool { return d&1 == 1 }

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction { return (d + 4) % NumDirections }

// Step returns the (rank, file) delta of one step along d.
func (d Direction) Step() (dr, df int) {
	switch d {
	case North:
		return 1, 0
	case NorthEast:
		return 1, 1
	case East:
		return 0, 1
	case SouthEast:
		return -1, 1
	case South:
		return -1, 0
	case SouthWest:
		return -1, -1
	case West:
		return 0, -1
	case NorthWest:
		return 1, -1
	}
	return 0, 0
}

// Nearest returns the member of a non-empty subset of a ray in direction d
// that lies closest to the ray's origin.
func (b Bitboard) Nearest(d Direction) Square {
	if d.Rising() {
		return b.LSB()
	}
	return b.MSB()
}
