package lattice

import "math"

// Lattice holds the full triangular price and value lattices of one call.
// Node (i, j) is the state after i moves with j of them down.
type Lattice struct {
	params    Params
	constants Constants

	prices []float64
	values []float64
}

func index(i, j int) int {
	return i*(i+1)/2 + j
}

// Build runs the forward and backward passes keeping every node.
// Use Price when only value(0,0) is needed.
func Build(p Params) (*Lattice, error) {
	c, err := prepare(p, false)
	if err != nil {
		return nil, err
	}
	n := p.Steps
	size := index(n+1, 0)
	l := &Lattice{
		params:    p,
		constants: c,
		prices:    make([]float64, size),
		values:    make([]float64, size),
	}

	l.prices[0] = p.Spot
	for i := 1; i <= n; i++ {
		l.prices[index(i, 0)] = l.prices[index(i-1, 0)] * c.Up
		for j := 1; j <= i; j++ {
			l.prices[index(i, j)] = l.prices[index(i-1, j-1)] * c.Down
		}
	}

	for j := 0; j <= n; j++ {
		l.values[index(n, j)] = p.Payoff(l.prices[index(n, j)])
	}
	q := 1 - c.Prob
	for i := n - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			l.values[index(i, j)] = c.Discount * (c.Prob*l.values[index(i+1, j)] + q*l.values[index(i+1, j+1)])
		}
	}
	if v := l.values[0]; math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, degenerate(p, v)
	}
	return l, nil
}

func (l *Lattice) Steps() int { return l.params.Steps }

func (l *Lattice) Params() Params { return l.params }

func (l *Lattice) Constants() Constants { return l.constants }

// Price returns the underlying price at node (i, j).
func (l *Lattice) Price(i, j int) float64 {
	return l.prices[index(i, j)]
}

// Value returns the option value at node (i, j).
func (l *Lattice) Value(i, j int) float64 {
	return l.values[index(i, j)]
}

// Prices returns a copy of the underlying prices of step i.
func (l *Lattice) Prices(i int) []float64 {
	return append([]float64(nil), l.prices[index(i, 0):index(i+1, 0)]...)
}

// Values returns a copy of the option values of step i.
func (l *Lattice) Values(i int) []float64 {
	return append([]float64(nil), l.values[index(i, 0):index(i+1, 0)]...)
}

// OptionPrice is value(0,0).
func (l *Lattice) OptionPrice() float64 {
	return l.values[0]
}
