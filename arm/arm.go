// Package arm provides reward distributions for the k-armed bandit problem.
//
// An arm never changes after construction. Pull consumes its own random
// source and ExpectedValue never does.
package arm

import (
	"fmt"
	"strings"

	"github.com/sw965/kbandit/mathx"
)

type Arm interface {
	// Pull draws one stochastic reward.
	Pull() float64
	// ExpectedValue is the true mean of the reward distribution.
	ExpectedValue() float64
	String() string
}

type Arms []Arm

func (as Arms) ExpectedValues() []float64 {
	vs := make([]float64, len(as))
	for i, a := range as {
		vs[i] = a.ExpectedValue()
	}
	return vs
}

// Optimal returns the index and expected value of the best arm.
// Ties resolve to the lowest index.
func (as Arms) Optimal() (int, float64) {
	if len(as) == 0 {
		return -1, 0.0
	}
	vs := as.ExpectedValues()
	idx := mathx.ArgMax(vs)
	return idx, vs[idx]
}

func (as Arms) String() string {
	ss := make([]string, len(as))
	for i, a := range as {
		ss[i] = fmt.Sprintf("%d: %s", i, a)
	}
	return strings.Join(ss, "\n")
}
