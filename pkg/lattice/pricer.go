package lattice

import (
	"context"
	"math"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

const (
	DefaultParallelThreshold = 4096
)

type Config struct {
	// Workers splits each row of the backward induction, <= 1 is sequential.
	Workers int
	// ParallelThreshold is the minimal row width worth splitting.
	ParallelThreshold int
	// AllowInvalidProbability prices with p outside [0, 1] instead of failing.
	AllowInvalidProbability bool
}

func NewDefaultConfig() *Config {
	return &Config{
		Workers:           runtime.NumCPU(),
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// Result is the option value and the sensitivities read off the lattice.
type Result struct {
	Params    Params    `json:"-"`
	Constants Constants `json:"-"`

	Price float64 `json:"price"`
	// Delta needs one step, Gamma and Theta two.
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
}

type Pricer struct {
	conf *Config
}

// NewPricer copies conf, a nil conf is NewDefaultConfig.
func NewPricer(conf *Config) *Pricer {
	if conf == nil {
		conf = NewDefaultConfig()
	}
	c := *conf
	if c.ParallelThreshold <= 0 {
		c.ParallelThreshold = DefaultParallelThreshold
	}
	return &Pricer{conf: &c}
}

// Price gives the same value as the package level Price; rows wider than
// the threshold are split across workers. ctx is checked between rows.
func (pr *Pricer) Price(ctx context.Context, p Params) (*Result, error) {
	c, err := prepare(p, pr.conf.AllowInvalidProbability)
	if err != nil {
		return nil, err
	}
	n := p.Steps
	cur := make([]float64, n+1)
	next := make([]float64, n+1)
	forward(cur, p, c)
	terminal(cur, p)

	var step1, step2 [3]float64
	capture := func(i int, row []float64) {
		switch i {
		case 1:
			copy(step1[:], row[:2])
		case 2:
			copy(step2[:], row[:3])
		}
	}
	capture(n, cur)
	for i := n - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		pr.induct(next, cur, i+1, c)
		cur, next = next, cur
		capture(i, cur)
	}

	v := cur[0]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, degenerate(p, v)
	}
	res := &Result{
		Params:    p,
		Constants: c,
		Price:     v,
	}
	if n >= 1 {
		su, sd := p.Spot*c.Up, p.Spot*c.Down
		res.Delta = (step1[0] - step1[1]) / (su - sd)
	}
	if n >= 2 {
		suu, sud, sdd := p.Spot*c.Up*c.Up, p.Spot*c.Up*c.Down, p.Spot*c.Down*c.Down
		deltaUp := (step2[0] - step2[1]) / (suu - sud)
		deltaDown := (step2[1] - step2[2]) / (sud - sdd)
		res.Gamma = (deltaUp - deltaDown) / ((suu - sdd) / 2)
		res.Theta = (step2[1] - v) / (2 * c.Dt)
	}
	zap.L().Debug("option priced",
		zap.Stringer("params", p),
		zap.Float64("price", res.Price),
		zap.Float64("probability", c.Prob),
	)
	return res, nil
}

// induct writes the width values of the row above src into dst.
func (pr *Pricer) induct(dst, src []float64, width int, c Constants) {
	workers := pr.conf.Workers
	if workers <= 1 || width < pr.conf.ParallelThreshold {
		inductRange(dst, src, 0, width, c)
		return
	}
	chunk := (width + workers - 1) / workers
	wg := sync.WaitGroup{}
	for lo := 0; lo < width; lo += chunk {
		hi := lo + chunk
		if hi > width {
			hi = width
		}
		wg.Add(1)
		go func(lo, hi int) {
			inductRange(dst, src, lo, hi, c)
			wg.Done()
		}(lo, hi)
	}
	wg.Wait()
}

func inductRange(dst, src []float64, lo, hi int, c Constants) {
	q := 1 - c.Prob
	for j := lo; j < hi; j++ {
		dst[j] = c.Discount * (c.Prob*src[j] + q*src[j+1])
	}
}
