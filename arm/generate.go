package arm

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
	"github.com/sw965/kbandit/mathx/randx"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generated parameters are compared after rounding to this many decimal digits.
const Digits = 2

const maxAttemptsPerArm = 1000

const (
	DefaultBinomialNMin = 1
	DefaultBinomialNMax = 10
	DefaultNormalMuMin  = 1.0
	DefaultNormalMuMax  = 10.0
	DefaultNormalSigma  = 1.0
)

// gridSize is the number of distinct values [min, max] takes after rounding.
// Ranges wider than math.MaxInt32 grid points saturate at math.MaxInt.
func gridSize(min, max float64) int {
	p := math.Pow(10, Digits)
	span := math.Round(max*p) - math.Round(min*p)
	if !(span < math.MaxInt32) {
		return math.MaxInt
	}
	return int(span) + 1
}

// uniqueDraws draws k distinct keys with draw and rejects repeats.
// It fails fast when k exceeds capacity and gives up after a bounded number of attempts.
func uniqueDraws[K comparable](k, capacity int, draw func() K) ([]K, error) {
	if k <= 0 {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "number of arms k=%d must be > 0", k)
	}
	if k > capacity {
		return nil, errors.Wrapf(kbandit.ErrGeneration, "k=%d exceeds the %d distinct values the range allows", k, capacity)
	}

	seen := make(map[K]struct{}, k)
	keys := make([]K, 0, k)
	for attempt := 0; len(keys) < k; attempt++ {
		if attempt >= maxAttemptsPerArm*k {
			return nil, errors.Wrapf(kbandit.ErrGeneration, "found only %d of %d distinct arms after %d attempts", len(keys), k, attempt)
		}
		key := draw()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}

// GenerateBernoullis returns k Bernoulli arms with pairwise distinct rounded p.
func GenerateBernoullis(k int, rng *rand.Rand) (Arms, error) {
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "generator needs a random source")
	}
	u := distuv.Uniform{Min: 0.0, Max: 1.0, Src: rng}
	ps, err := uniqueDraws(k, gridSize(0.0, 1.0), func() float64 {
		return mathx.Round(u.Rand(), Digits)
	})
	if err != nil {
		return nil, err
	}

	arms := make(Arms, k)
	for i, p := range ps {
		a, err := NewBernoulli(p, randx.Child(rng))
		if err != nil {
			return nil, err
		}
		arms[i] = a
	}
	return arms, nil
}

type binomialKey struct {
	n int
	p float64
}

// GenerateBinomials returns k Binomial arms with pairwise distinct (n, rounded p).
// n is drawn uniformly from [nMin, nMax].
func GenerateBinomials(k, nMin, nMax int, rng *rand.Rand) (Arms, error) {
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "generator needs a random source")
	}
	if nMin < 0 || nMin > nMax {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "binomial range nMin=%d nMax=%d must satisfy 0 <= nMin <= nMax", nMin, nMax)
	}

	u := distuv.Uniform{Min: 0.0, Max: 1.0, Src: rng}
	width := uint64(nMax - nMin)
	grid := gridSize(0.0, 1.0)
	capacity := math.MaxInt
	if width < uint64(math.MaxInt/grid) {
		capacity = int(width+1) * grid
	}
	keys, err := uniqueDraws(k, capacity, func() binomialKey {
		n := nMin + int(rng.Uint64N(width+1))
		p := mathx.Round(u.Rand(), Digits)
		return binomialKey{n: n, p: p}
	})
	if err != nil {
		return nil, err
	}

	arms := make(Arms, k)
	for i, key := range keys {
		a, err := NewBinomial(key.n, key.p, randx.Child(rng))
		if err != nil {
			return nil, err
		}
		arms[i] = a
	}
	return arms, nil
}

// GenerateNormals returns k Normal arms with pairwise distinct rounded mu drawn
// from [muMin, muMax]. Every arm shares sigma.
func GenerateNormals(k int, muMin, muMax, sigma float64, rng *rand.Rand) (Arms, error) {
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "generator needs a random source")
	}
	if !mathx.IsFinite(muMin) || !mathx.IsFinite(muMax) || muMin > muMax {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "normal range muMin=%.6g muMax=%.6g", muMin, muMax)
	}

	u := distuv.Uniform{Min: muMin, Max: muMax, Src: rng}
	mus, err := uniqueDraws(k, gridSize(muMin, muMax), func() float64 {
		return mathx.Round(u.Rand(), Digits)
	})
	if err != nil {
		return nil, err
	}

	arms := make(Arms, k)
	for i, mu := range mus {
		a, err := NewNormal(mu, sigma, randx.Child(rng))
		if err != nil {
			return nil, err
		}
		arms[i] = a
	}
	return arms, nil
}
