// Package blackscholes is the closed-form limit of the binomial lattice,
// used to measure the discretisation error of a lattice price.
package blackscholes

import (
	"math"

	"github.com/JulienBalestra/binomial/pkg/lattice"
	"gonum.org/v1/gonum/stat/distuv"
)

// Price returns the Black-Scholes value of the European option in p.
// p.Steps is ignored.
func Price(p lattice.Params) (float64, error) {
	p.Steps = 0
	err := p.Validate()
	if err != nil {
		return 0, err
	}
	sqrtT := math.Sqrt(p.Maturity)
	d1 := (math.Log(p.Spot/p.Strike) + (p.Rate+0.5*p.Volatility*p.Volatility)*p.Maturity) / (p.Volatility * sqrtT)
	d2 := d1 - p.Volatility*sqrtT
	discounted := p.Strike * math.Exp(-p.Rate*p.Maturity)

	n := distuv.UnitNormal
	if p.Kind == lattice.Put {
		return discounted*n.CDF(-d2) - p.Spot*n.CDF(-d1), nil
	}
	return p.Spot*n.CDF(d1) - discounted*n.CDF(d2), nil
}

// Error is the signed distance between a lattice price and its limit.
func Error(p lattice.Params, latticePrice float64) (float64, error) {
	bs, err := Price(p)
	if err != nil {
		return 0, err
	}
	return latticePrice - bs, nil
}
