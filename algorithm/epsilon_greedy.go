package algorithm

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
)

// EpsilonGreedy explores a uniformly random arm with probability epsilon
// and otherwise exploits the arm with the highest estimated value.
type EpsilonGreedy struct {
	Estimator
	epsilon float64
	rng     *rand.Rand
}

func NewEpsilonGreedy(k int, epsilon float64, rng *rand.Rand) (*EpsilonGreedy, error) {
	e, err := newEstimator(k)
	if err != nil {
		return nil, err
	}
	if !(epsilon >= 0.0 && epsilon <= 1.0) {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "epsilon=%.6g is outside [0, 1]", epsilon)
	}
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "epsilon-greedy needs a random source")
	}
	return &EpsilonGreedy{Estimator: e, epsilon: epsilon, rng: rng}, nil
}

func (eg *EpsilonGreedy) Epsilon() float64 {
	return eg.epsilon
}

func (eg *EpsilonGreedy) SelectArm(t int) (Selection, error) {
	if err := validateStep(t); err != nil {
		return Selection{}, err
	}
	if eg.rng.Float64() < eg.epsilon {
		return Selection{Arm: eg.rng.IntN(eg.k), Pulls: 1}, nil
	}
	return Selection{Arm: mathx.ArgMax(eg.values), Pulls: 1}, nil
}

func (eg *EpsilonGreedy) Reset() {
	eg.reset()
}

func (eg *EpsilonGreedy) Kind() Kind {
	return KindEpsilonGreedy
}

func (eg *EpsilonGreedy) Label() string {
	return Label(eg)
}
