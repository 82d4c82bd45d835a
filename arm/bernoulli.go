package arm

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"gonum.org/v1/gonum/stat/distuv"
)

type Bernoulli struct {
	dist distuv.Bernoulli
}

func NewBernoulli(p float64, rng *rand.Rand) (*Bernoulli, error) {
	if err := validateProb(p); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "bernoulli arm needs a random source")
	}
	return &Bernoulli{dist: distuv.Bernoulli{P: p, Src: rng}}, nil
}

func (b *Bernoulli) P() float64 {
	return b.dist.P
}

func (b *Bernoulli) Pull() float64 {
	return b.dist.Rand()
}

func (b *Bernoulli) ExpectedValue() float64 {
	return b.dist.P
}

func (b *Bernoulli) String() string {
	return fmt.Sprintf("Bernoulli(p=%g)", b.dist.P)
}

func validateProb(p float64) error {
	if !(p >= 0.0 && p <= 1.0) {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "probability p=%.6g is outside [0, 1]", p)
	}
	return nil
}
