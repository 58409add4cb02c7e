package generator

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// RandomSource supplies the random half of generated identifiers.
type RandomSource func() uint64

// NewObjectID returns a 24 hex character identifier: eight characters of Unix
// seconds followed by sixteen random characters, both zero padded. Uniqueness
// is best effort.
func NewObjectID(now time.Time, random RandomSource) string {
	if random == nil {
		random = rand.Uint64
	}
	return fmt.Sprintf("%08x%016x", uint32(now.Unix()), random())
}
