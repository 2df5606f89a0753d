package entropy

import (
	"math/rand/v2"
)

// Pseudo returns a non-secure source backed by the math/rand/v2 global
// generator. It is safe for concurrent use and is reseeded by the runtime on
// every process start.
func Pseudo() Source {
	return pseudoSource{}
}

// NewDeterministic returns a non-secure source that replays the same byte
// stream for the same seed. Not safe for concurrent use.
func NewDeterministic(seed uint64) Source {
	return pseudoSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type pseudoSource struct {
	rng *rand.Rand
}

func (s pseudoSource) uint64() uint64 {
	if s.rng != nil {
		return s.rng.Uint64()
	}
	return rand.Uint64()
}

func (s pseudoSource) Read(p []byte) error {
	for i := 0; i < len(p); i += 8 {
		v := s.uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return nil
}

func (s pseudoSource) Secure() bool { return false }
