package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ThiagoScutari/sgp-costura/internal/engine"
)

func newBatchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Batch planning helpers",
	}

	cmd.AddCommand(
		newBatchPreviewCmd(),
		newBatchSuggestCmd(app),
	)

	return cmd
}

func newBatchPreviewCmd() *cobra.Command {
	var total, size int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Split a quantity into numbered batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := engine.GenerateBatches(total, size)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SEQ\tQTY")
			for _, p := range plans {
				fmt.Fprintf(w, "%d\t%d\n", p.Sequence, p.Quantity)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d batches, %d pieces\n", len(plans), total)
			return nil
		},
	}

	cmd.Flags().IntVar(&total, "total", 0, "Total pieces of the production order")
	cmd.Flags().IntVar(&size, "size", 0, "Pieces per batch")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}

func newBatchSuggestCmd(app *App) *cobra.Command {
	var operators, pulse int
	var times []float64
	var factor float64

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a batch size from crew, pulse and operation times",
		RunE: func(cmd *cobra.Command, args []string) error {
			if operators <= 0 {
				return fmt.Errorf("--operators must be positive")
			}
			if pulse <= 0 {
				cfg, err := app.config()
				if err != nil {
					return err
				}
				pulse = cfg.Production.DefaultPulseMinutes
			}

			piece := engine.PieceMinutes(times, factor)
			if piece <= 0 {
				return fmt.Errorf("operation times sum to zero, nothing to derive a batch size from")
			}
			size := engine.SuggestBatchSize(operators, pulse, piece)
			if size < 1 {
				size = 1
			}

			fmt.Fprintf(cmd.OutOrStdout(), "piece minutes: %.3f\npulse: %d min\nbatch size: %d\n", piece, pulse, size)
			return nil
		},
	}

	cmd.Flags().IntVar(&operators, "operators", 0, "Operators on the line")
	cmd.Flags().IntVar(&pulse, "pulse", 0, "Pulse duration in minutes (default from config)")
	cmd.Flags().Float64SliceVar(&times, "times", nil, "Final operation times in minutes, comma separated")
	cmd.Flags().Float64Var(&factor, "factor", 1, "Efficiency factor of the sequence version")
	_ = cmd.MarkFlagRequired("operators")
	_ = cmd.MarkFlagRequired("times")

	return cmd
}
