package algorithm

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
)

// UCB1 pulls every arm once, then picks the arm with the highest
// values[i] + c*sqrt(2*ln(t+1)/counts[i]).
type UCB1 struct {
	Estimator
	c      float64
	bonus  []float64
	bounds []float64
}

func NewUCB1(k int, c float64) (*UCB1, error) {
	e, err := newEstimator(k)
	if err != nil {
		return nil, err
	}
	if !(c >= 0.0 && c <= 1.0) {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "ucb1 coefficient c=%.6g is outside [0, 1]", c)
	}
	return &UCB1{
		Estimator: e,
		c:         c,
		bonus:     make([]float64, k),
		bounds:    make([]float64, k),
	}, nil
}

func (u *UCB1) C() float64 {
	return u.c
}

func (u *UCB1) SelectArm(t int) (Selection, error) {
	if err := validateStep(t); err != nil {
		return Selection{}, err
	}
	if i := u.unpulled(); i >= 0 {
		return Selection{Arm: i, Pulls: 1}, nil
	}

	lnT := math.Log(float64(t + 1))
	for i, n := range u.counts {
		u.bonus[i] = math.Sqrt(2.0 * lnT / float64(n))
		u.bounds[i] = u.values[i] + u.c*u.bonus[i]
	}
	return Selection{Arm: mathx.ArgMax(u.bounds), Pulls: 1}, nil
}

func (u *UCB1) Reset() {
	u.reset()
	clear(u.bonus)
	clear(u.bounds)
}

func (u *UCB1) Kind() Kind {
	return KindUCB1
}

func (u *UCB1) Label() string {
	return Label(u)
}
