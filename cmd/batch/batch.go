package batch

import (
	"context"

	"github.com/JulienBalestra/binomial/cmd/env"
	"github.com/JulienBalestra/binomial/cmd/flags"
	"github.com/JulienBalestra/binomial/pkg/binomial"
	"github.com/JulienBalestra/binomial/pkg/report"
	"github.com/JulienBalestra/binomial/pkg/scenario"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewCommand(ctx context.Context, conf *binomial.Config, run func(context.Context, func(context.Context) error) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Price every scenario of a YAML file",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return env.DefaultFromEnv(&conf.ScenarioFile, flags.ScenarioFileFlag, flags.ScenarioFileEnv)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := binomial.NewBinomial(conf)
			if err != nil {
				return err
			}
			return run(ctx, func(ctx context.Context) error {
				return b.Batch(ctx, cmd.OutOrStdout())
			})
		},
	}
	flags.AddBatchFlags(cmd.Flags(), conf)
	flags.AddOutputFlag(cmd.Flags(), conf, report.Formats()...)

	generatePath := ""
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Write an example scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := binomial.SetupLogger(conf)
			if err != nil {
				return err
			}
			err = scenario.GenerateFile(generatePath)
			if err != nil {
				return err
			}
			zap.L().Info("scenario file generated", zap.String("path", generatePath))
			return nil
		},
	}
	generate.Flags().StringVarP(&generatePath, flags.ScenarioFileFlag, "f", "scenarios.yaml", "path of the generated file")
	cmd.AddCommand(generate)
	return cmd
}
