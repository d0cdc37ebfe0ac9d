package core

import "math/rand"

// sampler draws piece types from a probability distribution.
type sampler struct {
	rng        *rand.Rand
	cumulative []float64
	last       PieceType // last type with a non-zero probability
}

func newSampler(rng *rand.Rand, dist []float64) *sampler {
	s := &sampler{rng: rng, cumulative: make([]float64, len(dist))}
	sum := 0.0
	for i, p := range dist {
		sum += p
		s.cumulative[i] = sum
		if p > 0 {
			s.last = PieceType(i)
		}
	}
	return s
}

// next picks the first type whose cumulative probability exceeds a uniform
// draw, falling back to the last possible type when rounding leaves a gap.
func (s *sampler) next() PieceType {
	r := s.rng.Float64()
	for i, c := range s.cumulative {
		if r < c {
			return PieceType(i)
		}
	}
	return s.last
}
