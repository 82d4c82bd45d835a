package algorithm

import (
	"fmt"
)

// Label names a policy together with its key hyperparameter, e.g. "UCB1 (c=1)".
func Label(p Policy) string {
	name := p.Kind().String()
	switch a := p.(type) {
	case *EpsilonGreedy:
		return fmt.Sprintf("%s (ε=%g)", name, a.epsilon)
	case *UCB1:
		return fmt.Sprintf("%s (c=%g)", name, a.c)
	case *UCB2:
		return fmt.Sprintf("%s (α=%g)", name, a.alpha)
	case *Softmax:
		return fmt.Sprintf("%s (τ=%g)", name, a.tau)
	case *Gradient:
		return fmt.Sprintf("%s (α=%g)", name, a.alpha)
	}
	return name
}
