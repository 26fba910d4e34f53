package recommend

import (
	"math/rand/v2"
	"sync"

	"github.com/HendryAvila/cadence/internal/catalog"
)

// sampler draws songs without replacement. rand.Rand is not safe for
// concurrent use, so draws are serialized.
type sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSampler(rng *rand.Rand) *sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &sampler{rng: rng}
}

// pick returns n distinct songs in random order. When fewer than n are
// available every song is returned, shuffled.
func (s *sampler) pick(songs []catalog.Song, n int) []catalog.Song {
	out := append([]catalog.Song(nil), songs...)
	if n > len(out) {
		n = len(out)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(out)-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:n]
}
