// Package algorithm implements action-selection policies for the k-armed bandit problem.
//
// Every policy is driven by a strictly sequential loop:
//
//	sel, err := p.SelectArm(t)
//	for j := 0; j < sel.Pulls; j++ {
//		r := arms[sel.Arm].Pull()
//		err = p.Update(sel.Arm, r, t)
//		t++
//	}
//
// Pulls is 1 for every policy except UCB2, which asks for the same arm to be
// pulled for a whole epoch before it selects again. The driver must finish the
// epoch before calling SelectArm again.
//
// A policy is not safe for concurrent use. Independent policies share nothing
// and may run on separate goroutines.
package algorithm

import (
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
	"github.com/sw965/kbandit"
)

type Kind int

const (
	KindEpsilonGreedy Kind = iota
	KindUCB1
	KindUCB2
	KindSoftmax
	KindGradient
)

func (k Kind) String() string {
	switch k {
	case KindEpsilonGreedy:
		return "EpsilonGreedy"
	case KindUCB1:
		return "UCB1"
	case KindUCB2:
		return "UCB2"
	case KindSoftmax:
		return "Softmax"
	case KindGradient:
		return "Gradient"
	}
	return "Unknown"
}

// ParseKind accepts the case-insensitive names used in experiment configs,
// e.g. "ucb1" or "epsilon_greedy".
func ParseKind(name string) (Kind, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "epsilon_greedy", "epsilongreedy":
		return KindEpsilonGreedy, nil
	case "ucb1":
		return KindUCB1, nil
	case "ucb2":
		return KindUCB2, nil
	case "softmax":
		return KindSoftmax, nil
	case "gradient":
		return KindGradient, nil
	}
	return 0, errors.Wrapf(kbandit.ErrInvalidParameter, "unknown algorithm %q", name)
}

// New builds the policy of the given kind. param is its key hyperparameter:
// epsilon, c, alpha, tau or alpha respectively. rng is ignored by the UCB policies.
func New(kind Kind, k int, param float64, rng *rand.Rand) (Policy, error) {
	var p Policy
	var err error
	switch kind {
	case KindEpsilonGreedy:
		p, err = asPolicy(NewEpsilonGreedy(k, param, rng))
	case KindUCB1:
		p, err = asPolicy(NewUCB1(k, param))
	case KindUCB2:
		p, err = asPolicy(NewUCB2(k, param))
	case KindSoftmax:
		p, err = asPolicy(NewSoftmax(k, param, rng))
	case KindGradient:
		p, err = asPolicy(NewGradient(k, param, rng))
	default:
		err = errors.Wrapf(kbandit.ErrInvalidParameter, "unknown algorithm kind %d", int(kind))
	}
	return p, err
}

// asPolicy keeps a failed constructor from leaking a typed nil into the interface.
func asPolicy[P Policy](p P, err error) (Policy, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Selection is the answer to SelectArm: pull Arm Pulls times.
type Selection struct {
	Arm   int
	Pulls int
}

type Policy interface {
	K() int
	// SelectArm returns the arm to pull at 0-based step t.
	SelectArm(t int) (Selection, error)
	// Update records reward observed from arm at step t.
	Update(arm int, reward float64, t int) error
	// Reset returns the policy to its freshly constructed state.
	Reset()
	Counts() []int
	Values() []float64
	Kind() Kind
	Label() string
}

var (
	_ Policy = (*EpsilonGreedy)(nil)
	_ Policy = (*UCB1)(nil)
	_ Policy = (*UCB2)(nil)
	_ Policy = (*Softmax)(nil)
	_ Policy = (*Gradient)(nil)
)

func validateStep(t int) error {
	if t < 0 {
		return errors.Wrapf(kbandit.ErrInvalidParameter, "step t=%d is negative", t)
	}
	return nil
}
