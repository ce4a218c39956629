package lattice

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricerMatchesSequential(t *testing.T) {
	for name, conf := range map[string]*Config{
		"sequential": {Workers: 1},
		"parallel":   {Workers: 4, ParallelThreshold: 8},
		"odd chunks": {Workers: 7, ParallelThreshold: 2},
	} {
		t.Run(name, func(t *testing.T) {
			pr := NewPricer(conf)
			for _, n := range []int{0, 1, 2, 9, 500} {
				for _, kind := range []Kind{Call, Put} {
					p := newParams(n)
					p.Kind = kind
					exp, err := Price(p)
					require.NoError(t, err)
					res, err := pr.Price(context.TODO(), p)
					require.NoError(t, err)
					assert.Equal(t, exp, res.Price, p.String())
				}
			}
		})
	}
}

func TestPricerGreeks(t *testing.T) {
	pr := NewPricer(NewDefaultConfig())
	res, err := pr.Price(context.TODO(), newParams(500))
	require.NoError(t, err)

	// closed-form values for S=100 K=105 r=5% T=1 vol=20%
	assert.InDelta(t, 0.5422, res.Delta, 0.005)
	assert.InDelta(t, 0.01985, res.Gamma, 0.001)
	assert.InDelta(t, -6.277, res.Theta, 0.05)
	assert.InDelta(t, 0.002, res.Constants.Dt, 1e-15)
}

func TestPricerOneStepDelta(t *testing.T) {
	pr := NewPricer(&Config{})
	p := Params{Spot: 100, Strike: 100, Maturity: 1, Volatility: 0.2, Steps: 1}
	res, err := pr.Price(context.TODO(), p)
	require.NoError(t, err)

	u := math.Exp(0.2)
	assert.InDelta(t, (100*u-100)/(100*u-100/u), res.Delta, 1e-12)
	assert.Zero(t, res.Gamma)
	assert.Zero(t, res.Theta)
}

func TestPricerInvalidProbability(t *testing.T) {
	p := Params{Spot: 100, Strike: 100, Rate: 0.5, Maturity: 1, Volatility: 0.01, Steps: 10}

	_, err := NewPricer(&Config{}).Price(context.TODO(), p)
	assert.ErrorIs(t, err, ErrInvalidProbability)

	res, err := NewPricer(&Config{AllowInvalidProbability: true}).Price(context.TODO(), p)
	require.NoError(t, err)
	assert.Greater(t, res.Constants.Prob, 1.0)
	assert.False(t, math.IsNaN(res.Price))
}

func TestNewPricerConfig(t *testing.T) {
	conf := &Config{Workers: 2}
	pr := NewPricer(conf)
	assert.Equal(t, &Config{Workers: 2}, conf)
	assert.Equal(t, DefaultParallelThreshold, pr.conf.ParallelThreshold)

	conf.AllowInvalidProbability = true
	assert.False(t, pr.conf.AllowInvalidProbability)

	res, err := NewPricer(nil).Price(context.TODO(), newParams(100))
	require.NoError(t, err)
	assert.InDelta(t, 8.021, res.Price, 0.01)
}

func TestPricerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewPricer(&Config{}).Price(ctx, newParams(10))
	assert.ErrorIs(t, err, context.Canceled)
}
