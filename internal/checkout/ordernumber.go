package checkout

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const orderNumberSuffixLen = 3

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber builds a human-readable order number from the last six
// digits of the millisecond timestamp plus a short random suffix. Collisions
// are possible within the same millisecond; the scheme trades uniqueness
// guarantees for readability.
func GenerateOrderNumber(now time.Time, rng *rand.Rand) string {
	millis := now.UnixMilli()
	stamp := millis % 1_000_000

	var suffix strings.Builder
	for i := 0; i < orderNumberSuffixLen; i++ {
		suffix.WriteByte(base36Upper[rng.Intn(len(base36Upper))])
	}

	return fmt.Sprintf("ORD%06d%s", stamp, suffix.String())
}
