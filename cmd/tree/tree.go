package tree

import (
	"fmt"

	"github.com/JulienBalestra/binomial/cmd/env"
	"github.com/JulienBalestra/binomial/cmd/flags"
	"github.com/JulienBalestra/binomial/pkg/binomial"
	"github.com/JulienBalestra/binomial/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewCommand(conf *binomial.Config, contract *pflag.FlagSet) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print every node of the price and value lattices",
		Long:  fmt.Sprintf("Print every node of the price and value lattices, up to %d steps.", binomial.MaxTreeSteps),
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return env.FloatFromEnv(contract, &conf.Params.Rate, flags.RateFlag, flags.RateEnv)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := binomial.NewBinomial(conf)
			if err != nil {
				return err
			}
			return b.Tree(cmd.OutOrStdout())
		},
	}
	cmd.Flags().AddFlagSet(contract)
	flags.AddOutputFlag(cmd.Flags(), conf, report.FormatText, report.FormatJSON)
	return cmd
}
