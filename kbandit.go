// Package kbandit provides k-armed bandit action-selection algorithms,
// reward arms and an experiment driver for comparing them.
//
// The subpackages do the work. This package only holds the error kinds they share.
package kbandit

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidParameter reports a construction or call argument outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidArmIndex reports an arm index outside [0, k).
	ErrInvalidArmIndex = errors.New("invalid arm index")

	// ErrGeneration reports that an arm set cannot satisfy its uniqueness constraint.
	ErrGeneration = errors.New("arm generation failed")
)
