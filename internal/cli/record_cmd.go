package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/lapse/internal/cli/formatter"
	"github.com/alexanderramin/lapse/internal/recorder"
	"github.com/alexanderramin/lapse/internal/service"
	"github.com/spf13/cobra"
)

func newRecordCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "record DURATION...",
		Short: "Save already-timed sessions as one set",
		Long: "Record one session per DURATION and save them as a single set.\n\n" +
			"Durations use Go syntax, e.g. 45s, 1m30s or 1h2m3.5s.",
		Example: "  lapse record 25m 25m 10m --yes",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec := recorder.New()
			for _, arg := range args {
				d, err := time.ParseDuration(arg)
				if err != nil {
					return fmt.Errorf("invalid duration %q: %w", arg, err)
				}
				if d < time.Millisecond {
					return fmt.Errorf("invalid duration %q: must be at least 1ms", arg)
				}
				rec.RecordStop(d.Milliseconds())
			}

			result, err := app.Sets(app.confirmer()).SaveBatch(cmd.Context(), rec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch result.Outcome {
			case service.OutcomeApplied:
				fmt.Fprintf(out, "Saved %q (%s, %s)\n", result.Set.Name,
					formatter.Plural(result.Set.SessionCount(), "session", "sessions"),
					formatter.Elapsed(result.Set.TotalTime))
				fmt.Fprintln(out, formatter.Dim("id: "+result.Set.ID))
			case service.OutcomeDeclined:
				fmt.Fprintln(out, formatter.Dim("Cancelled."))
			default:
				fmt.Fprintln(out, "Nothing to save.")
			}
			return nil
		},
	}
}
