package lattice

import "github.com/pkg/errors"

var (
	// ErrInvalidParameter is returned when an input is out of its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateLattice is returned when the up and down factors collapse
	// or when the induction produces a non finite value.
	ErrDegenerateLattice = errors.New("degenerate lattice")

	// ErrInvalidProbability is returned when the risk-neutral probability of
	// an up move falls outside [0, 1]: d <= exp(r*dt) <= u does not hold.
	ErrInvalidProbability = errors.New("invalid risk-neutral probability")
)
