// Package attacks builds the immutable attack tables shared by every board:
// ray sets, leaper attacks, between/line sets and the fancy magic tables
// for bishops and rooks.
package attacks

import (
	"fmt"
	"sync"

	bb "chess-core/bitboard"
)

// Magic holds the hashing parameters of one slider on one square.
type Magic struct {
	Mask   bb.Bitboard // relevant occupancy, edges removed
	Magic  uint64
	Shift  uint8
	Offset uint32 // start of this square's block in the shared table
}

// Index maps a full-board occupancy to a slot in the shared table.
func (m *Magic) Index(occ bb.Bitboard) uint32 {
	return m.Offset + uint32((uint64(occ&m.Mask)*m.Magic)>>m.Shift)
}

const (
	rookTableSize   = 102400
	bishopTableSize = 5248
)

// Tables is read-only after New returns and may be shared between goroutines.
type Tables struct {
	rays    [64][bb.NumDirections]bb.Bitboard
	knight  [64]bb.Bitboard
	king    [64]bb.Bitboard
	pawn    [2][64]bb.Bitboard
	between [64][64]bb.Bitboard
	line    [64][64]bb.Bitboard

	rookMagics   [64]Magic
	bishopMagics [64]Magic
	rookTable    [rookTableSize]bb.Bitboard
	bishopTable  [bishopTableSize]bb.Bitboard
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the process-wide tables, building them on first use.
func Default() *Tables {
	defaultOnce.Do(func() { defaultTables = New() })
	return defaultTables
}

// New builds a fresh set of tables from the compiled-in magic numbers.
// It panics if a magic number maps two different attack sets to one slot.
func New() *Tables {
	t := &Tables{}
	t.initRays()
	t.initLeapers()
	t.initLines()
	if err := t.initSliders(&t.rookMagics, t.rookTable[:], &rookMagicNumbers, false); err != nil {
		panic(err)
	}
	if err := t.initSliders(&t.bishopMagics, t.bishopTable[:], &bishopMagicNumbers, true); err != nil {
		panic(err)
	}
	return t
}

func (t *Tables) initRays() {
	for sq := bb.A1; sq <= bb.H8; sq++ {
		for d := bb.North; d < bb.NumDirections; d++ {
			dr, df := d.Step()
			var ray bb.Bitboard
			r, f := sq.Rank()+dr, sq.File()+df
			for r >= 0 && r < 8 && f >= 0 && f < 8 {
				ray = ray.With(bb.NewSquare(f, r))
				r, f = r+dr, f+df
			}
			t.rays[sq][d] = ray
		}
	}
}

func (t *Tables) initLeapers() {
	for sq := bb.A1; sq <= bb.H8; sq++ {
		b := sq.Bitboard()

		var k bb.Bitboard
		for d := bb.North; d < bb.NumDirections; d++ {
			k |= b.Shift(d)
		}
		t.king[sq] = k

		n := b.North().North().East() | b.North().North().West() |
			b.South().South().East() | b.South().South().West() |
			b.East().East().North() | b.East().East().South() |
			b.West().West().North() | b.West().West().South()
		t.knight[sq] = n

		t.pawn[0][sq] = b.NorthEast() | b.NorthWest()
		t.pawn[1][sq] = b.SouthEast() | b.SouthWest()
	}
}

func (t *Tables) initLines() {
	for a := bb.A1; a <= bb.H8; a++ {
		for d := bb.North; d < bb.NumDirections; d++ {
			ray := t.rays[a][d]
			for r := ray; r != 0; {
				b := r.PopLSB()
				t.between[a][b] = ray & t.rays[b][d.Opposite()]
				t.line[a][b] = ray | t.rays[a][d.Opposite()] | a.Bitboard()
			}
		}
	}
}

func (t *Tables) initSliders(magics *[64]Magic, table []bb.Bitboard, numbers *[64]uint64, bishop bool) error {
	var offset uint32
	for sq := bb.A1; sq <= bb.H8; sq++ {
		mask := t.relevantMask(sq, bishop)
		bits := mask.PopCount()
		m := Magic{
			Mask:   mask,
			Magic:  numbers[sq],
			Shift:  uint8(64 - bits),
			Offset: offset,
		}
		// Carry-rippler: walks every subset of mask, ending back at zero.
		subset := bb.Empty
		for {
			att := t.slowAttacks(sq, subset, bishop)
			idx := m.Index(subset)
			if int(idx) >= len(table) {
				return fmt.Errorf("attacks: table overflow at %v", sq)
			}
			if table[idx] != 0 && table[idx] != att {
				return fmt.Errorf("attacks: magic collision for %v (bishop=%t)", sq, bishop)
			}
			table[idx] = att
			subset = (subset - mask) & mask
			if subset == 0 {
				break
			}
		}
		magics[sq] = m
		offset += 1 << bits
	}
	return nil
}

func (t *Tables) relevantMask(sq bb.Square, bishop bool) bb.Bitboard {
	if bishop {
		return (t.rays[sq][bb.NorthEast] | t.rays[sq][bb.SouthEast] |
			t.rays[sq][bb.SouthWest] | t.rays[sq][bb.NorthWest]) &^ bb.Edges
	}
	return t.rays[sq][bb.North]&^bb.Rank8 |
		t.rays[sq][bb.South]&^bb.Rank1 |
		t.rays[sq][bb.East]&^bb.FileH |
		t.rays[sq][bb.West]&^bb.FileA
}

// slowAttacks casts each ray and cuts it behind the first blocker.
func (t *Tables) slowAttacks(sq bb.Square, occ bb.Bitboard, bishop bool) bb.Bitboard {
	var att bb.Bitboard
	for d := bb.North; d < bb.NumDirections; d++ {
		if d.Diagonal() != bishop {
			continue
		}
		ray := t.rays[sq][d]
		if blockers := ray & occ; blockers != 0 {
			ray ^= t.rays[blockers.Nearest(d)][d]
		}
		att |= ray
	}
	return att
}

// SlowRook computes rook attacks by ray casting. Tests and the magic search use it.
func (t *Tables) SlowRook(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return t.slowAttacks(sq, occ, false)
}

// SlowBishop computes bishop attacks by ray casting.
func (t *Tables) SlowBishop(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return t.slowAttacks(sq, occ, true)
}

func (t *Tables) Rook(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return t.rookTable[t.rookMagics[sq].Index(occ)]
}

func (t *Tables) Bishop(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return t.bishopTable[t.bishopMagics[sq].Index(occ)]
}

func (t *Tables) Queen(sq bb.Square, occ bb.Bitboard) bb.Bitboard {
	return t.Rook(sq, occ) | t.Bishop(sq, occ)
}

func (t *Tables) Knight(sq bb.Square) bb.Bitboard { return t.knight[sq] }
func (t *Tables) King(sq bb.Square) bb.Bitboard   { return t.king[sq] }

// Pawn returns the capture targets of a pawn on sq; side 0 is white, 1 is black.
func (t *Tables) Pawn(side int, sq bb.Square) bb.Bitboard { return t.pawn[side][sq] }

// Ray returns the squares from sq (exclusive) to the edge in direction d.
func (t *Tables) Ray(sq bb.Square, d bb.Direction) bb.Bitboard { return t.rays[sq][d] }

// Between returns the squares strictly between a and b, or Empty when they
// do not share a rank, file or diagonal.
func (t *Tables) Between(a, b bb.Square) bb.Bitboard { return t.between[a][b] }

// Line returns the full board line through a and b, or Empty when they are
// not aligned.
func (t *Tables) Line(a, b bb.Square) bb.Bitboard { return t.line[a][b] }

func (t *Tables) RookMagic(sq bb.Square) Magic   { return t.rookMagics[sq] }
func (t *Tables) BishopMagic(sq bb.Square) Magic { return t.bishopMagics[sq] }

// RelevantMask exposes the occupancy mask used to index a slider on sq.
func (t *Tables) RelevantMask(sq bb.Square, bishop bool) bb.Bitboard {
	return t.relevantMask(sq, bishop)
}
