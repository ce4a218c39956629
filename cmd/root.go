package root

import (
	"context"
	"sync"

	"github.com/JulienBalestra/binomial/cmd/batch"
	"github.com/JulienBalestra/binomial/cmd/env"
	"github.com/JulienBalestra/binomial/cmd/flags"
	"github.com/JulienBalestra/binomial/cmd/signals"
	"github.com/JulienBalestra/binomial/cmd/tree"
	"github.com/JulienBalestra/binomial/cmd/version"
	"github.com/JulienBalestra/binomial/pkg/binomial"
	"github.com/JulienBalestra/binomial/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewRootCommand(ctx context.Context) *cobra.Command {
	conf := binomial.NewDefaultConfig()

	root := &cobra.Command{
		Short: "European option pricing on a Cox-Ross-Rubinstein binomial lattice",
		Long: `European option pricing on a Cox-Ross-Rubinstein binomial lattice.

Without sub command, prices the option described by the flags and prints its value:
  binomial --spot 100 --strike 105 --rate 0.05 --maturity 1 --volatility 0.2 --steps 100`,
		Use:           "binomial",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	flags.AddLogFlags(root.PersistentFlags(), conf)

	// shared by the root and the tree commands
	contract := &pflag.FlagSet{}
	flags.AddFlags(contract, conf)

	fs := &pflag.FlagSet{}
	flags.AddPriceFlags(fs, conf)
	flags.AddOutputFlag(fs, conf, report.FormatText, report.FormatJSON, report.FormatPrometheus, report.FormatProtobuf)
	root.Flags().AddFlagSet(contract)
	root.Flags().AddFlagSet(fs)

	root.PreRunE = func(cmd *cobra.Command, args []string) error {
		return env.FloatFromEnv(contract, &conf.Params.Rate, flags.RateFlag, flags.RateEnv)
	}
	root.RunE = func(cmd *cobra.Command, args []string) error {
		b, err := binomial.NewBinomial(conf)
		if err != nil {
			return err
		}
		return WithSignals(ctx, func(ctx context.Context) error {
			return b.Price(ctx, cmd.OutOrStdout())
		})
	}

	root.AddCommand(
		version.NewCommand(),
		tree.NewCommand(conf, contract),
		batch.NewCommand(ctx, conf, WithSignals),
	)
	return root
}

// WithSignals runs fn with a context cancelled on SIGINT or SIGTERM.
func WithSignals(ctx context.Context, fn func(context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		signals.NotifySignals(runCtx, cancel)
		wg.Done()
	}()
	err := fn(runCtx)
	cancel()
	wg.Wait()
	return err
}
