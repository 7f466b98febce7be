package board

import (
	"math/rand"

	bb "chess-core/bitboard"
)

// Zobrist keys, indexed by piece code and square.
var (
	zobristPiece     [15][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	// Fixed seed so keys are stable across runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for p := 0; p < 15; p++ {
		for sq := 0; sq < 64; sq++ {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// computeKeys rebuilds the three hash keys of s from scratch.
func (s *State) computeKeys() (key, pawnKey uint64, nonPawn [2]uint64) {
	for sq := bb.A1; sq <= bb.H8; sq++ {
		p := s.pieces[sq]
		if p == NoPiece {
			continue
		}
		k := zobristPiece[p][sq]
		key ^= k
		if p.Type() == Pawn {
			pawnKey ^= k
		} else {
			nonPawn[p.Color()] ^= k
		}
	}
	if s.side == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[s.castling]
	if s.ep != bb.NoSquare {
		key ^= zobristEnPassant[s.ep.File()]
	}
	return key, pawnKey, nonPawn
}
