package attacks

import (
	"errors"
	"math/rand"

	bb "chess-core/bitboard"
)

var ErrNoMagic = errors.New("attacks: no magic found")

// FindMagic searches for a multiplier that hashes every relevant occupancy of
// a slider on sq into popcount(mask) index bits without harmful collisions.
// Two subsets may share a slot only when their attack sets are equal.
func (t *Tables) FindMagic(sq bb.Square, bishop bool, rng *rand.Rand, tries int) (uint64, error) {
	mask := t.relevantMask(sq, bishop)
	bits := mask.PopCount()
	shift := 64 - bits

	n := 1 << bits
	occs := make([]bb.Bitboard, 0, n)
	atts := make([]bb.Bitboard, 0, n)
	subset := bb.Empty
	for {
		occs = append(occs, subset)
		atts = append(atts, t.slowAttacks(sq, subset, bishop))
		subset = (subset - mask) & mask
		if subset == 0 {
			break
		}
	}

	used := make([]bb.Bitboard, n)
	epoch := make([]int, n)
	for try := 1; try <= tries; try++ {
		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()
		if bb.Bitboard((uint64(mask)*magic)&0xFF00000000000000).PopCount() < 6 {
			continue
		}
		ok := true
		for i, occ := range occs {
			idx := (uint64(occ) * magic) >> shift
			if epoch[idx] != try {
				epoch[idx] = try
				used[idx] = atts[i]
			} else if used[idx] != atts[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic, nil
		}
	}
	return 0, ErrNoMagic
}
