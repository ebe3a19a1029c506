package picker

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/heropick/internal/roster"
)

// Selector draws uniformly random entries from a pool.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector returns a Selector seeded with the current time.
func NewSelector() *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSelectorWithSource returns a Selector backed by src.
func NewSelectorWithSource(src rand.Source) *Selector {
	return &Selector{rnd: rand.New(src)}
}

// Pick returns one entry of pool with probability 1/len(pool). It has no side
// effects, so it serves both discardable preview picks and the committing
// pick. An empty pool yields the zero Entry.
func (s *Selector) Pick(pool []roster.Entry) roster.Entry {
	if len(pool) == 0 {
		return roster.Entry{}
	}
	return pool[s.rnd.Intn(len(pool))]
}
