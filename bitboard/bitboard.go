// Package bitboard provides the 64-bit square set used by the attack tables,
// the board state and the move generator.
//
// Bit i denotes square i, with a1 = 0, h1 = 7, a8 = 56 and h8 = 63.
package bitboard

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of board squares, one bit per square.
type Bitboard uint64

const (
	Empty Bitboard = 0
	Full  Bitboard = ^Empty
)

const (
	FileA Bitboard = 0x0101010101010101 << iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Bitboard = 0xFF << (8 * iota)
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

// Edges is the board border.
const Edges = FileA | FileH | Rank1 | Rank8

var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&sq.Bitboard() != 0 }

// With returns the set with sq added.
func (b Bitboard) With(sq Square) Bitboard { return b | sq.Bitboard() }

// Without returns the set with sq removed.
func (b Bitboard) Without(sq Square) Bitboard { return b &^ sq.Bitboard() }

// PopCount returns the number of squares in the set.
func (b Bitboard) PopCount() int { return bits.OnesCount64(uint64(b)) }

// MoreThanOne reports whether the set holds at least two squares.
func (b Bitboard) MoreThanOne() bool { return b&(b-1) != 0 }

// LSB returns the lowest square in the set. The result is undefined for an empty set.
func (b Bitboard) LSB() Square { return Square(bits.TrailingZeros64(uint64(b))) }

// MSB returns the highest square in the set. The result is undefined for an empty set.
func (b Bitboard) MSB() Square { return Square(63 - bits.LeadingZeros64(uint64(b))) }

// PopLSB removes and returns the lowest square of a non-empty set.
func (b *Bitboard) PopLSB() Square {
	sq := Square(bits.TrailingZeros64(uint64(*b)))
	*b &= *b - 1
	return sq
}

// Squares lists the set members in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	for b != 0 {
		out = append(out, b.PopLSB())
	}
	return out
}

func (b Bitboard) North() Bitboard     { return b << 8 }
func (b Bitboard) South() Bitboard     { return b >> 8 }
func (b Bitboard) East() Bitboard      { return (b &^ FileH) << 1 }
func (b Bitboard) West() Bitboard      { return (b &^ FileA) >> 1 }
func (b Bitboard) NorthEast() Bitboard { return (b &^ FileH) << 9 }
func (b Bitboard) NorthWest() Bitboard { return (b &^ FileA) << 7 }
func (b Bitboard) SouthEast() Bitboard { return (b &^ FileH) >> 7 }
func (b Bitboard) SouthWest() Bitboard { return (b &^ FileA) >> 9 }

// Shift moves every square one step in direction d, dropping squares that
// would leave the board.
func (b Bitboard) Shift(d Direction) Bitboard {
	switch d {
	case North:
		return b.North()
	case NorthEast:
		return b.NorthEast()
	case East:
		return b.East()
	case SouthEast:
		return b.SouthEast()
	case South:
		return b.South()
	case SouthWest:
		return b.SouthWest()
	case West:
		return b.West()
	case NorthWest:
		return b.NorthWest()
	}
	return Empty
}

// String draws the set as an 8x8 grid, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
