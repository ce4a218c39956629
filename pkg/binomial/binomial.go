package binomial

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/JulienBalestra/binomial/pkg/batch"
	"github.com/JulienBalestra/binomial/pkg/blackscholes"
	"github.com/JulienBalestra/binomial/pkg/lattice"
	"github.com/JulienBalestra/binomial/pkg/report"
	"github.com/JulienBalestra/binomial/pkg/scenario"
	"github.com/JulienBalestra/dry/pkg/zapconfig"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	MaxTreeSteps = 64
)

func NewDefaultConfig() *Config {
	zc := zapconfig.NewZapConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return &Config{
		Params: lattice.Params{
			Spot:       100,
			Strike:     100,
			Maturity:   1,
			Volatility: 0.2,
			Steps:      100,
		},
		Kind:      string(lattice.Call),
		Output:    report.FormatText,
		Pricer:    lattice.NewDefaultConfig(),
		Batch:     batch.NewDefaultConfig(),
		ZapConfig: zc,
		ZapLevel:  "info",
	}
}

type Config struct {
	Params  lattice.Params
	Kind    string
	Compare bool
	Output  string

	ScenarioFile string

	Pricer *lattice.Config
	Batch  *batch.Config

	ZapConfig *zap.Config
	ZapLevel  string
}

type Binomial struct {
	conf   *Config
	params lattice.Params
}

// NewBinomial checks the configuration and installs the global logger.
// The pricing parameters are only validated by the pricer.
func NewBinomial(conf *Config) (*Binomial, error) {
	kind, err := lattice.ParseKind(conf.Kind)
	if err != nil {
		return nil, err
	}
	valid := false
	for _, f := range report.Formats() {
		if conf.Output == f {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("invalid output %q, expected one of %s", conf.Output, report.Formats())
	}
	err = SetupLogger(conf)
	if err != nil {
		return nil, err
	}
	conf.Batch.Pricer.AllowInvalidProbability = conf.Pricer.AllowInvalidProbability
	p := conf.Params
	p.Kind = kind
	return &Binomial{
		conf:   conf,
		params: p,
	}, nil
}

func SetupLogger(conf *Config) error {
	err := conf.ZapConfig.Level.UnmarshalText([]byte(conf.ZapLevel))
	if err != nil {
		return err
	}
	logger, err := conf.ZapConfig.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	zap.RedirectStdLog(logger)
	return nil
}

type quote struct {
	report.Record
	BlackScholes *float64 `json:"black_scholes,omitempty"`
	LatticeError *float64 `json:"lattice_error,omitempty"`
}

// Price writes the value of the configured option to w.
func (b *Binomial) Price(ctx context.Context, w io.Writer) error {
	zctx := zap.L().With(zap.Stringer("params", b.params))
	res, err := lattice.NewPricer(b.conf.Pricer).Price(ctx, b.params)
	if err != nil {
		zctx.Error("failed to price option", zap.Error(err))
		return err
	}
	q := quote{
		Record: report.NewRecord(batch.Outcome{Name: "cli", Params: b.params, Result: res}),
	}
	if b.conf.Compare {
		bs, err := blackscholes.Price(b.params)
		if err != nil {
			return err
		}
		diff := res.Price - bs
		q.BlackScholes, q.LatticeError = &bs, &diff
		zctx.Debug("compared to black-scholes", zap.Float64("blackScholes", bs), zap.Float64("error", diff))
	}

	switch b.conf.Output {
	case report.FormatText:
		_, err = fmt.Fprintln(w, res.Price)
		if err != nil || q.BlackScholes == nil {
			return err
		}
		_, err = fmt.Fprintf(w, "black-scholes: %v\nlattice error: %v\n", *q.BlackScholes, *q.LatticeError)
		return err
	case report.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(q)
	}
	return report.Write(w, b.conf.Output, []batch.Outcome{{Name: "cli", Params: b.params, Result: res}})
}

// Tree writes every node of the price and value lattices to w.
func (b *Binomial) Tree(w io.Writer) error {
	if b.params.Steps > MaxTreeSteps {
		return errors.Wrapf(lattice.ErrInvalidParameter, "tree is limited to %d steps, got %d", MaxTreeSteps, b.params.Steps)
	}
	l, err := lattice.Build(b.params)
	if err != nil {
		return err
	}
	if b.conf.Output == report.FormatJSON {
		tree := struct {
			Constants lattice.Constants `json:"constants"`
			Prices    [][]float64       `json:"prices"`
			Values    [][]float64       `json:"values"`
		}{Constants: l.Constants()}
		for i := 0; i <= l.Steps(); i++ {
			tree.Prices = append(tree.Prices, l.Prices(i))
			tree.Values = append(tree.Values, l.Values(i))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	}
	c := l.Constants()
	_, err = fmt.Fprintf(w, "dt=%g u=%g d=%g p=%g discount=%g\n", c.Dt, c.Up, c.Down, c.Prob, c.Discount)
	if err != nil {
		return err
	}
	for i := 0; i <= l.Steps(); i++ {
		_, err = fmt.Fprintf(w, "step %d\n  prices: %.4f\n  values: %.4f\n", i, l.Prices(i), l.Values(i))
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, l.OptionPrice())
	return err
}

// Batch prices the scenario file and writes the outcomes to w.
// It fails when at least one scenario could not be priced.
func (b *Binomial) Batch(ctx context.Context, w io.Writer) error {
	f, err := scenario.ParseFile(b.conf.ScenarioFile)
	if err != nil {
		return err
	}
	scenarios, err := f.Params()
	if err != nil {
		return err
	}
	outcomes, err := batch.Run(ctx, b.conf.Batch, scenarios)
	if err != nil {
		return err
	}
	err = report.Write(w, b.conf.Output, outcomes)
	if err != nil {
		return err
	}
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d scenarios failed", failed, len(outcomes))
	}
	return nil
}
