package algorithm

import (
	"math"
	"slices"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
)

// UCB2 plays arms in epochs of geometrically growing length.
// Each selection returns how many times the chosen arm must be pulled
// before SelectArm is called again.
type UCB2 struct {
	Estimator
	alpha  float64
	epochs []int
	bonus  []float64
	bounds []float64
}

func NewUCB2(k int, alpha float64) (*UCB2, error) {
	e, err := newEstimator(k)
	if err != nil {
		return nil, err
	}
	if !(alpha > 0.0 && alpha < 1.0) {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "ucb2 alpha=%.6g is outside (0, 1)", alpha)
	}
	return &UCB2{
		Estimator: e,
		alpha:     alpha,
		epochs:    make([]int, k),
		bonus:     make([]float64, k),
		bounds:    make([]float64, k),
	}, nil
}

func (u *UCB2) Alpha() float64 {
	return u.alpha
}

// Epochs returns how many epochs each arm has started.
func (u *UCB2) Epochs() []int {
	return slices.Clone(u.epochs)
}

// Tau returns (1+alpha)^epoch.
func (u *UCB2) Tau(epoch int) float64 {
	return math.Pow(1.0+u.alpha, float64(epoch))
}

// EpochLength is the number of pulls an arm gets when it starts epoch+1.
func (u *UCB2) EpochLength(epoch int) int {
	n := int(math.Ceil(u.Tau(epoch+1) - u.Tau(epoch)))
	return max(n, 1)
}

func (u *UCB2) SelectArm(t int) (Selection, error) {
	if err := validateStep(t); err != nil {
		return Selection{}, err
	}

	chosen := u.unpulled()
	if chosen < 0 {
		for i := range u.counts {
			v := math.Ceil(u.Tau(u.epochs[i]))
			radicand := (1.0 + u.alpha) * math.Log(math.E*float64(t+1)/v) / (2.0 * v)
			u.bonus[i] = math.Sqrt(math.Max(radicand, 0.0))
			u.bounds[i] = u.values[i] + u.bonus[i]
		}
		chosen = mathx.ArgMax(u.bounds)
	}

	pulls := u.EpochLength(u.epochs[chosen])
	u.epochs[chosen]++
	return Selection{Arm: chosen, Pulls: pulls}, nil
}

func (u *UCB2) Reset() {
	u.reset()
	clear(u.epochs)
	clear(u.bonus)
	clear(u.bounds)
}

func (u *UCB2) Kind() Kind {
	return KindUCB2
}

func (u *UCB2) Label() string {
	return Label(u)
}
