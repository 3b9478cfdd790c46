package deck

import (
	"math"

	"github.com/JanBanasik/PokerGame/internal/rng"
)

var seedSource rng.Generator = rng.Crypto{}

// randomSeed returns a positive seed from the crypto source
func randomSeed() int64 {
	return 1 + int64(seedSource.Intn(math.MaxInt64-1))
}
