package lattice

import (
	"math"

	"github.com/pkg/errors"
)

// Constants are derived once per pricing call.
type Constants struct {
	Dt       float64 `json:"dt"`
	Up       float64 `json:"up"`
	Down     float64 `json:"down"`
	Prob     float64 `json:"probability"`
	Discount float64 `json:"discount"`
}

// NewConstants validates p and derives the lattice constants.
// A zero step lattice has no move: Up, Down and Discount are 1.
func NewConstants(p Params) (Constants, error) {
	err := p.Validate()
	if err != nil {
		return Constants{}, err
	}
	return newConstants(p)
}

func newConstants(p Params) (Constants, error) {
	if p.Steps == 0 {
		return Constants{Up: 1, Down: 1, Prob: 1, Discount: 1}, nil
	}
	dt := p.Maturity / float64(p.Steps)
	u := math.Exp(p.Volatility * math.Sqrt(dt))
	d := 1 / u
	if u-d == 0 || math.IsInf(u, 0) {
		return Constants{}, errors.Wrapf(ErrDegenerateLattice, "up factor %g and down factor %g for vol=%g dt=%g", u, d, p.Volatility, dt)
	}
	growth := math.Exp(p.Rate * dt)
	return Constants{
		Dt:       dt,
		Up:       u,
		Down:     d,
		Prob:     (growth - d) / (u - d),
		Discount: math.Exp(-p.Rate * dt),
	}, nil
}

// CheckProbability returns ErrInvalidProbability when Prob is outside [0, 1].
func (c Constants) CheckProbability() error {
	if c.Prob < 0 || c.Prob > 1 || math.IsNaN(c.Prob) {
		return errors.Wrapf(ErrInvalidProbability, "p=%g with d=%g u=%g", c.Prob, c.Down, c.Up)
	}
	return nil
}
