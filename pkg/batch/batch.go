package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/JulienBalestra/binomial/pkg/fnv"
	"github.com/JulienBalestra/binomial/pkg/lattice"
	"github.com/JulienBalestra/binomial/pkg/scenario"
	"go.uber.org/zap"
)

type Config struct {
	// Workers is the number of scenarios priced at once.
	Workers int
	Pricer  *lattice.Config
}

func NewDefaultConfig() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
		Pricer: &lattice.Config{
			Workers:           1,
			ParallelThreshold: lattice.DefaultParallelThreshold,
		},
	}
}

// Outcome is the pricing of one scenario: Result or Err is set.
type Outcome struct {
	Name   string
	Params lattice.Params
	Result *lattice.Result
	Err    error
}

// Hash keys a parameter set, kind "" and call share the same key.
func Hash(p lattice.Params) uint64 {
	h := fnv.NewHash()
	h = fnv.AddString(h, p.Kind.String())
	h = fnv.AddFloat64(h, p.Spot)
	h = fnv.AddFloat64(h, p.Strike)
	h = fnv.AddFloat64(h, p.Rate)
	h = fnv.AddFloat64(h, p.Maturity)
	h = fnv.AddFloat64(h, p.Volatility)
	h = fnv.AddUint64(h, uint64(p.Steps))
	return h
}

var hash = Hash

type job struct {
	key     uint64
	params  lattice.Params
	indexes []int
}

// same compares p with the job parameters, kind "" and call are equal.
func (j *job) same(p lattice.Params) bool {
	a, b := j.params, p
	a.Kind, b.Kind = lattice.Kind(a.Kind.String()), lattice.Kind(b.Kind.String())
	return a == b
}

// Run prices every scenario and returns the outcomes in input order.
// A failing scenario only fails its own outcome; identical parameter sets
// are priced once.
func Run(ctx context.Context, conf *Config, scenarios []scenario.Named) ([]Outcome, error) {
	outcomes := make([]Outcome, len(scenarios))
	jobs := make([]*job, 0, len(scenarios))
	byKey := make(map[uint64][]*job, len(scenarios))
	for i, s := range scenarios {
		outcomes[i] = Outcome{Name: s.Name, Params: s.Params}
		key := hash(s.Params)
		var j *job
		for _, candidate := range byKey[key] {
			if candidate.same(s.Params) {
				j = candidate
				break
			}
		}
		if j == nil {
			j = &job{key: key, params: s.Params}
			byKey[key] = append(byKey[key], j)
			jobs = append(jobs, j)
		}
		j.indexes = append(j.indexes, i)
	}

	workers := conf.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	zctx := zap.L().With(
		zap.Int("scenarios", len(scenarios)),
		zap.Int("unique", len(jobs)),
		zap.Int("workers", workers),
	)
	zctx.Info("starting batch")
	start := time.Now()

	pricer := lattice.NewPricer(conf.Pricer)
	jobsCh := make(chan *job)
	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobsCh {
				res, err := pricer.Price(ctx, j.params)
				// each index is owned by one job
				for _, i := range j.indexes {
					outcomes[i].Result = res
					outcomes[i].Err = err
				}
				if err != nil {
					zap.L().Warn("failed to price scenario",
						zap.String("scenario", outcomes[j.indexes[0]].Name),
						zap.Error(err),
					)
				}
			}
		}()
	}

	var err error
dispatch:
	for _, j := range jobs {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobsCh <- j:
		}
	}
	close(jobsCh)
	wg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		zctx.Warn("batch interrupted", zap.Error(err))
		return nil, err
	}
	zctx.Info("batch done", zap.Duration("duration", time.Since(start)))
	return outcomes, nil
}
