package flags

import (
	"fmt"

	"github.com/JulienBalestra/binomial/pkg/binomial"
	"github.com/JulienBalestra/binomial/pkg/report"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	SpotFlag       = "spot"
	StrikeFlag     = "strike"
	RateFlag       = "rate"
	MaturityFlag   = "maturity"
	VolatilityFlag = "volatility"
	StepsFlag      = "steps"
	KindFlag       = "kind"

	ScenarioFileFlag = "file"

	RateEnv         = "BINOMIAL_RISK_FREE_RATE"
	ScenarioFileEnv = "BINOMIAL_SCENARIO_FILE"
)

// AddFlags registers the contract and market flags shared by the price and tree commands.
func AddFlags(fs *pflag.FlagSet, conf *binomial.Config) {
	fs.Float64VarP(&conf.Params.Spot, SpotFlag, "s", conf.Params.Spot, "spot price of the underlying, > 0")
	fs.Float64VarP(&conf.Params.Strike, StrikeFlag, "k", conf.Params.Strike, "strike price, > 0")
	fs.Float64VarP(&conf.Params.Rate, RateFlag, "r", conf.Params.Rate, "annualized continuously compounded risk-free rate, defaults to $"+RateEnv)
	fs.Float64VarP(&conf.Params.Maturity, MaturityFlag, "t", conf.Params.Maturity, "time to maturity in years, > 0")
	fs.Float64VarP(&conf.Params.Volatility, VolatilityFlag, "v", conf.Params.Volatility, "annualized volatility, > 0")
	fs.IntVarP(&conf.Params.Steps, StepsFlag, "n", conf.Params.Steps, "number of lattice steps, 0 is the intrinsic value")
	fs.StringVar(&conf.Kind, KindFlag, conf.Kind, "option kind - call put")
	fs.BoolVar(&conf.Pricer.AllowInvalidProbability, "allow-invalid-probability", false, "price even when the risk-neutral probability is outside [0, 1]")
}

func AddPriceFlags(fs *pflag.FlagSet, conf *binomial.Config) {
	fs.BoolVar(&conf.Compare, "compare", false, "also print the Black-Scholes price and the lattice error")
	fs.IntVar(&conf.Pricer.Workers, "lattice-workers", conf.Pricer.Workers, "goroutines splitting each lattice row")
	fs.IntVar(&conf.Pricer.ParallelThreshold, "lattice-parallel-threshold", conf.Pricer.ParallelThreshold, "minimal row width split across lattice workers")
}

func AddBatchFlags(fs *pflag.FlagSet, conf *binomial.Config) {
	fs.StringVarP(&conf.ScenarioFile, ScenarioFileFlag, "f", "", "scenario file, defaults to $"+ScenarioFileEnv)
	fs.IntVar(&conf.Batch.Workers, "workers", conf.Batch.Workers, "scenarios priced concurrently")
	fs.BoolVar(&conf.Pricer.AllowInvalidProbability, "allow-invalid-probability", false, "price even when the risk-neutral probability is outside [0, 1]")
}

func AddOutputFlag(fs *pflag.FlagSet, conf *binomial.Config, formats ...string) {
	fs.StringVarP(&conf.Output, "output", "o", report.FormatText, fmt.Sprintf("output format - %s", formats))
}

func AddLogFlags(fs *pflag.FlagSet, conf *binomial.Config) {
	fs.StringVar(&conf.ZapLevel, "log-level", conf.ZapLevel, fmt.Sprintf("log level - %s %s %s %s %s %s %s", zap.DebugLevel, zap.InfoLevel, zap.WarnLevel, zap.ErrorLevel, zap.DPanicLevel, zap.PanicLevel, zap.FatalLevel))
	fs.StringSliceVar(&conf.ZapConfig.OutputPaths, "log-output", conf.ZapConfig.OutputPaths, "log output")
}
