package algorithm

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
	"github.com/sw965/kbandit/mathx"
)

// Estimator holds the pull counts and sample-mean rewards that every policy shares.
type Estimator struct {
	k      int
	counts []int
	values []float64
}

func newEstimator(k int) (Estimator, error) {
	if k <= 0 {
		return Estimator{}, errors.Wrapf(kbandit.ErrInvalidParameter, "number of arms k=%d must be > 0", k)
	}
	return Estimator{
		k:      k,
		counts: make([]int, k),
		values: make([]float64, k),
	}, nil
}

func (e *Estimator) K() int {
	return e.k
}

func (e *Estimator) Counts() []int {
	return slices.Clone(e.counts)
}

func (e *Estimator) Values() []float64 {
	return slices.Clone(e.values)
}

// Update increments the count of arm and folds reward into its running mean.
// t is accepted so that every policy shares one signature. It is ignored here.
func (e *Estimator) Update(arm int, reward float64, t int) error {
	if err := e.validateUpdate(arm, reward, t); err != nil {
		return err
	}
	e.update(arm, reward)
	return nil
}

func (e *Estimator) validateArm(arm int) error {
	if arm < 0 || arm >= e.k {
		return errors.Wrapf(kbandit.ErrInvalidArmIndex, "arm=%d is outside [0, %d)", arm, e.k)
	}
	return nil
}

func (e *Estimator) validateUpdate(arm int, reward float64, t int) error {
	if err := e.validateArm(arm); err != nil {
		return err
	}
	if !mathx.IsFinite(reward) {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "reward=%.6g is not finite", reward)
	}
	return validateStep(t)
}

func (e *Estimator) update(arm int, reward float64) {
	e.counts[arm]++
	e.values[arm] = mathx.IncrementalMean(e.values[arm], reward, e.counts[arm])
}

// unpulled returns the lowest-index arm that has never been pulled, or -1.
func (e *Estimator) unpulled() int {
	return slices.Index(e.counts, 0)
}

func (e *Estimator) reset() {
	clear(e.counts)
	clear(e.values)
}
