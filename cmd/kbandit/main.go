package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/sw965/kbandit/experiment"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		seed       uint64
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "kbandit",
		Short: "Compare k-armed bandit policies on a generated arm set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := experiment.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = experiment.LoadConfig(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			runner, err := cfg.Runner(logger)
			if err != nil {
				return err
			}
			logger.Debug("arms generated", slog.String("arms", runner.Arms.String()))

			res, err := runner.Run()
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "experiment YAML file (defaults are used when empty)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "override the seed from the config (unseeded when neither is set)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func printSummary(w io.Writer, res *experiment.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "optimal arm %d (expected %.4f), %d steps x %d runs\n", res.OptimalArm, res.OptimalValue, res.Steps, res.Runs)
	fmt.Fprintln(tw, "POLICY\tMEAN REWARD\tFINAL REGRET\tOPTIMAL %")
	for _, row := range res.Summary() {
		fmt.Fprintf(tw, "%s\t%.4f\t%.2f\t%.1f\n", row.Label, row.MeanReward, row.FinalRegret, row.FinalOptimalPercent)
	}
	return tw.Flush()
}
