package randx

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	omwrandx "github.com/sw965/omw/mathx/randx"
	"github.com/sw965/kbandit"
	"gonum.org/v1/gonum/stat/distuv"
)

// New returns a PCG-backed generator. The same seed always yields the same stream.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func NewFromGlobalSeed() *rand.Rand {
	return omwrandx.NewPCGFromGlobalSeed()
}

// Child derives an independent generator from rng.
// Drawing a child consumes two values of rng.
func Child(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
}

// Categorical draws an index with probability proportional to ws[i].
func Categorical(ws []float64, rng *rand.Rand) (int, error) {
	if len(ws) == 0 {
		return 0, errors.Wrap(kbandit.ErrInvalidParameter, "categorical weights are empty")
	}
	sum := 0.0
	for i, w := range ws {
		if w < 0 || w != w {
			return 0, errors.Wrapf(kbandit.ErrInvalidParameter, "categorical weight ws[%d]=%.6g", i, w)
		}
		sum += w
	}
	if sum <= 0 {
		return 0, errors.Wrap(kbandit.ErrInvalidParameter, "categorical weights sum to zero")
	}
	c := distuv.NewCategorical(ws, rng)
	return int(c.Rand()), nil
}
