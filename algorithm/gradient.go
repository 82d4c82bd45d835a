package algorithm

import (
	"math/rand/v2"
	"slices"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
	"github.com/sw965/kbandit/mathx/randx"
)

// Gradient is the softmax-preference bandit with an average-reward baseline.
// It samples arms from softmax(hs) and nudges hs along the REINFORCE gradient.
type Gradient struct {
	Estimator
	alpha    float64
	rng      *rand.Rand
	hs       []float64
	probs    []float64
	baseline float64
}

func NewGradient(k int, alpha float64, rng *rand.Rand) (*Gradient, error) {
	e, err := newEstimator(k)
	if err != nil {
		return nil, err
	}
	if !(alpha >= 0.0) || !mathx.IsFinite(alpha) {
		return nil, errors.Wrapf(kbandit.ErrInvalidParameter, "gradient learning rate alpha=%.6g must be finite and >= 0", alpha)
	}
	if rng == nil {
		return nil, errors.Wrap(kbandit.ErrInvalidParameter, "gradient needs a random source")
	}
	g := &Gradient{
		Estimator: e,
		alpha:     alpha,
		rng:       rng,
		hs:        make([]float64, k),
		probs:     make([]float64, k),
	}
	g.Reset()
	return g, nil
}

func (g *Gradient) Alpha() float64 {
	return g.alpha
}

func (g *Gradient) Baseline() float64 {
	return g.baseline
}

func (g *Gradient) Preferences() []float64 {
	return slices.Clone(g.hs)
}

// Probabilities returns the distribution computed by the latest selection.
func (g *Gradient) Probabilities() []float64 {
	return slices.Clone(g.probs)
}

func (g *Gradient) SelectArm(t int) (Selection, error) {
	if err := validateStep(t); err != nil {
		return Selection{}, err
	}
	g.probs = mathx.Softmax(g.probs, g.hs, 1.0)
	arm, err := randx.Categorical(g.probs, g.rng)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Arm: arm, Pulls: 1}, nil
}

// Update applies, in order: the baseline update with step t, the preference
// update against the fresh baseline using the probabilities from selection
// time, and finally the per-arm count and value update.
func (g *Gradient) Update(arm int, reward float64, t int) error {
	if err := g.validateUpdate(arm, reward, t); err != nil {
		return err
	}

	g.baseline = mathx.IncrementalMean(g.baseline, reward, t+1)
	advantage := reward - g.baseline
	for i := range g.hs {
		indicator := 0.0
		if i == arm {
			indicator = 1.0
		}
		g.hs[i] += g.alpha * advantage * (indicator - g.probs[i])
	}

	g.update(arm, reward)
	return nil
}

func (g *Gradient) Reset() {
	g.reset()
	clear(g.hs)
	g.probs = mathx.Softmax(g.probs, g.hs, 1.0)
	g.baseline = 0.0
}

func (g *Gradient) Kind() Kind {
	return KindGradient
}

func (g *Gradient) Label() string {
	return Label(g)
}
