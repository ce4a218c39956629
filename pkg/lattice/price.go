package lattice

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Price returns the CRR value of the European option described by p.
// The forward and backward passes share one buffer of Steps+1 values:
// backward induction only ever reads the step below.
func Price(p Params) (float64, error) {
	c, err := prepare(p, false)
	if err != nil {
		return 0, err
	}
	values := make([]float64, p.Steps+1)
	forward(values, p, c)
	terminal(values, p)
	q := 1 - c.Prob
	for i := p.Steps - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			values[j] = c.Discount * (c.Prob*values[j] + q*values[j+1])
		}
	}
	v := values[0]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, degenerate(p, v)
	}
	return v, nil
}

// PriceCall prices a European call from the six scalar inputs.
func PriceCall(spot, strike, rate, maturity, volatility float64, steps int) (float64, error) {
	return Price(Params{
		Spot:       spot,
		Strike:     strike,
		Rate:       rate,
		Maturity:   maturity,
		Volatility: volatility,
		Steps:      steps,
		Kind:       Call,
	})
}

// prepare validates p and derives its constants. An out of range
// probability is only logged when allowInvalid is set.
func prepare(p Params, allowInvalid bool) (Constants, error) {
	c, err := NewConstants(p)
	if err != nil {
		return c, err
	}
	if p.Steps == 0 {
		return c, nil
	}
	err = c.CheckProbability()
	if err == nil {
		return c, nil
	}
	if !allowInvalid {
		return c, err
	}
	zap.L().Warn("pricing with an invalid risk-neutral probability",
		zap.Stringer("params", p),
		zap.Float64("probability", c.Prob),
	)
	return c, nil
}

// forward leaves the step N prices in values, rolling one row at a time:
// node (i, j) is node (i-1, j-1) times d, the all-up edge is times u.
func forward(values []float64, p Params, c Constants) {
	values[0] = p.Spot
	for i := 1; i <= p.Steps; i++ {
		for j := i; j >= 1; j-- {
			values[j] = values[j-1] * c.Down
		}
		values[0] *= c.Up
	}
}

func terminal(values []float64, p Params) {
	for j, price := range values {
		values[j] = p.Payoff(price)
	}
}

func degenerate(p Params, v float64) error {
	return errors.Wrapf(ErrDegenerateLattice, "non finite option value %g for %s", v, p)
}
