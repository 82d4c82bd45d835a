package arm

import (
	"fmt"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
	"gonum.org/v1/gonum/stat/distuv"
)

type Normal struct {
	dist distuv.Normal
}

func NewNormal(mu, sigma float64, rng *rand.Rand) (*Normal, error) {
	if !mathx.IsFinite(mu) {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "normal mean mu=%.6g is not finite", mu)
	}
	if !mathx.IsFinite(sigma) || sigma < 0 {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "normal deviation sigma=%.6g must be finite and >= 0", sigma)
	}
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "normal arm needs a random source")
	}
	return &Normal{dist: distuv.Normal{Mu: mu, Sigma: sigma, Src: rng}}, nil
}

func (n *Normal) Mu() float64 {
	return n.dist.Mu
}

func (n *Normal) Sigma() float64 {
	return n.dist.Sigma
}

func (n *Normal) Pull() float64 {
	return n.dist.Rand()
}

// ExpectedValue returns mu without touching the random source.
func (n *Normal) ExpectedValue() float64 {
	return n.dist.Mu
}

func (n *Normal) String() string {
	return fmt.Sprintf("Normal(mu=%g, sigma=%g)", n.dist.Mu, n.dist.Sigma)
}
