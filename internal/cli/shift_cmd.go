package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ThiagoScutari/sgp-costura/internal/engine"
)

func newShiftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Inspect the configured shift calendar",
	}

	cmd.AddCommand(newShiftMinutesCmd(app))

	return cmd
}

func newShiftMinutesCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "minutes",
		Short: "Working minutes between two instants under the bootstrap shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.config()
			if err != nil {
				return err
			}

			breaks := make([]engine.BreakSpec, 0, len(cfg.Shift.Breaks))
			for _, b := range cfg.Shift.Breaks {
				breaks = append(breaks, engine.BreakSpec{Start: b.Start, End: b.End})
			}
			shift, err := engine.NewShift(cfg.Shift.StartTime, cfg.Shift.EndTime, cfg.Shift.Timezone, breaks)
			if err != nil {
				return err
			}

			start, err := time.Parse(time.RFC3339, from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := time.Parse(time.RFC3339, to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%.1f working minutes\n", engine.NetMinutes(start, end, shift, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start instant, RFC3339")
	cmd.Flags().StringVar(&to, "to", "", "End instant, RFC3339")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
