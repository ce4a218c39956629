package lattice

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// ParseKind accepts call and put, case insensitive. The empty string is a call.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", Call:
		return Call, nil
	case Put:
		return Put, nil
	}
	return "", errors.Wrapf(ErrInvalidParameter, "unknown option kind %q", s)
}

func (k Kind) String() string {
	if k == "" {
		return string(Call)
	}
	return string(k)
}

// Params are the contract and market inputs of a single pricing call.
type Params struct {
	Spot       float64
	Strike     float64
	Rate       float64
	Maturity   float64
	Volatility float64
	Steps      int

	Kind Kind
}

func (p Params) String() string {
	return fmt.Sprintf("%s S=%g K=%g r=%g T=%g vol=%g N=%d", p.Kind, p.Spot, p.Strike, p.Rate, p.Maturity, p.Volatility, p.Steps)
}

// Payoff is the intrinsic value of the option for an underlying price.
func (p Params) Payoff(price float64) float64 {
	if p.Kind == Put {
		return math.Max(0, p.Strike-price)
	}
	return math.Max(0, price-p.Strike)
}

// Validate rejects parameters before any lattice is allocated.
func (p Params) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"spot", p.Spot},
		{"strike", p.Strike},
		{"maturity", p.Maturity},
		{"volatility", p.Volatility},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return errors.Wrapf(ErrInvalidParameter, "%s must be a finite number > 0, got %g", f.name, f.value)
		}
	}
	if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
		return errors.Wrapf(ErrInvalidParameter, "rate must be finite, got %g", p.Rate)
	}
	if p.Steps < 0 {
		return errors.Wrapf(ErrInvalidParameter, "steps must be >= 0, got %d", p.Steps)
	}
	if p.Kind != "" && p.Kind != Call && p.Kind != Put {
		return errors.Wrapf(ErrInvalidParameter, "unknown option kind %q", p.Kind)
	}
	return nil
}
