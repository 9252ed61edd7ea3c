package states

import (
	"errors"
	"strings"
)

var (
	// Startup errors

	ErrRegistration      = errors.New("state registration failed")
	ErrCyclicDependency  = errors.New("cyclic state dependency")
	ErrRegistryNotFrozen = errors.New("state registry is not frozen")
	ErrSnapshotMismatch  = errors.New("snapshot taken against a different state catalog")
	ErrSnapshotCorrupted = errors.New("snapshot is corrupted")

	// Lookup errors

	ErrUnknownState   = errors.New("unknown state")
	ErrUnknownAbility = errors.New("unknown ability")

	// Instantiation errors

	ErrInvalidStateClass = errors.New("invalid state class")
	ErrDuplicateState    = errors.New("duplicate state")
)

// RegistrationError collects every problem found while registering or freezing
// a registry.
type RegistrationError struct {
	Problems []string
}

func (e *RegistrationError) Error() string {
	return ErrRegistration.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *RegistrationError) Unwrap() error { return ErrRegistration }

func registrationError(problems ...string) error {
	return &RegistrationError{Problems: problems}
}

// CyclicDependencyError reports the shortest dependency cycle found. The cycle
// starts at its lexically smallest member and the closing edge back to Cycle[0]
// is implied.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	if len(e.Cycle) == 0 {
		return ErrCyclicDependency.Error()
	}
	return ErrCyclicDependency.Error() + ": " + strings.Join(e.Cycle, " -> ") + " -> " + e.Cycle[0]
}

func (e *CyclicDependencyError) Unwrap() error { return ErrCyclicDependency }
