package core

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDGenerator produces note identifiers.
//
// The primary source is a random (v4) UUID. When the secure source fails,
// the generator falls back to "<unix-ms>-<6 base36 chars>", which carries a
// small collision risk for notes created within the same millisecond.
// The store re-rolls any ID that already exists, so the risk only matters
// across separate collections.
type IDGenerator struct {
	Random func() (uuid.UUID, error)
	Now    func() time.Time
}

// NewIDGenerator returns a generator backed by uuid.NewRandom and the wall clock.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{Random: uuid.NewRandom, Now: time.Now}
}

// NewID returns a fresh identifier.
func (g *IDGenerator) NewID() string {
	if g.Random != nil {
		if id, err := g.Random(); err == nil {
			return id.String()
		}
	}
	return g.fallback()
}

func (g *IDGenerator) fallback() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return strconv.FormatInt(now().UnixMilli(), 10) + "-" + string(suffix)
}
