package arm

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"gonum.org/v1/gonum/stat/distuv"
)

type Binomial struct {
	n    int
	dist distuv.Binomial
}

func NewBinomial(n int, p float64, rng *rand.Rand) (*Binomial, error) {
	if n < 0 {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "binomial trials n=%d is negative", n)
	}
	if err := validateProb(p); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "binomial arm needs a random source")
	}
	return &Binomial{n: n, dist: distuv.Binomial{N: float64(n), P: p, Src: rng}}, nil
}

func (b *Binomial) N() int {
	return b.n
}

func (b *Binomial) P() float64 {
	return b.dist.P
}

func (b *Binomial) Pull() float64 {
	switch {
	case b.n == 0 || b.dist.P == 0.0:
		return 0.0
	case b.dist.P == 1.0:
		return float64(b.n)
	}
	return b.dist.Rand()
}

func (b *Binomial) ExpectedValue() float64 {
	return float64(b.n) * b.dist.P
}

func (b *Binomial) String() string {
	return fmt.Sprintf("Binomial(n=%d, p=%g)", b.n, b.dist.P)
}
