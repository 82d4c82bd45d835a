package algorithm

import (
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
	"github.com/sw965/kbandit/mathx/randx"
)

// Softmax samples arm i with probability exp(values[i]/tau) / sum_j exp(values[j]/tau).
type Softmax struct {
	Estimator
	tau   float64
	rng   *rand.Rand
	probs []float64
}

func NewSoftmax(k int, tau float64, rng *rand.Rand) (*Softmax, error) {
	e, err := newEstimator(k)
	if err != nil {
		return nil, err
	}
	if !(tau > 0.0) || !mathx.IsFinite(tau) {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "softmax temperature tau=%.6g must be finite and > 0", tau)
	}
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "softmax needs a random source")
	}
	s := &Softmax{Estimator: e, tau: tau, rng: rng, probs: make([]float64, k)}
	s.resetProbs()
	return s, nil
}

func (s *Softmax) Tau() float64 {
	return s.tau
}

// Probabilities returns the distribution used by the latest selection.
func (s *Softmax) Probabilities() []float64 {
	return slices.Clone(s.probs)
}

func (s *Softmax) SelectArm(t int) (Selection, error) {
	if err := validateStep(t); err != nil {
		return Selection{}, err
	}
	s.probs = mathx.Softmax(s.probs, s.values, s.tau)
	arm, err := randx.Categorical(s.probs, s.rng)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Arm: arm, Pulls: 1}, nil
}

func (s *Softmax) Reset() {
	s.reset()
	s.resetProbs()
}

func (s *Softmax) resetProbs() {
	p := 1.0 / float64(s.k)
	for i := range s.probs {
		s.probs[i] = p
	}
}

func (s *Softmax) Kind() Kind {
	return KindSoftmax
}

func (s *Softmax) Label() string {
	return Label(s)
}
