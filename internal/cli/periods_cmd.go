package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/lapse/internal/cli/formatter"
	"github.com/alexanderramin/lapse/internal/report"
	"github.com/alexanderramin/lapse/internal/service"
	"github.com/spf13/cobra"
)

func newPeriodsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Summarize saved sets by half-month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			periods, err := app.Sets(app.confirmer()).Periods(cmd.Context())
			if err := warnOnUnreadable(cmd.ErrOrStderr(), err); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPeriodList(periods))
			return nil
		},
	}

	cmd.AddCommand(newPeriodsShowCmd(app))

	return cmd
}

func newPeriodsShowCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show [KEY]",
		Short: "Show the daily breakdown of a period (latest by default)",
		Long: "Show the daily breakdown of a half-month period.\n\n" +
			"KEY is the selector printed by \"lapse periods\", e.g. 2025-01a for\n" +
			"January 1-15 and 2025-01b for January 16-31. Without KEY or --date\n" +
			"the most recent period is shown.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sets := app.Sets(app.confirmer())

			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			if date != "" {
				if key != "" {
					return fmt.Errorf("use either KEY or --date, not both")
				}
				resolved, err := periodKeyForDate(ctx, sets, date, app.Location)
				if err != nil {
					return err
				}
				key = resolved
			}

			b, err := sets.Breakdown(ctx, key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBreakdown(b.Label, b.Period, b.Days))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Show the period containing this date (YYYY-MM-DD)")

	return cmd
}

// periodKeyForDate returns the key of the saved period containing date.
func periodKeyForDate(ctx context.Context, sets service.SessionSetService, date string, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(time.DateOnly, date, loc)
	if err != nil {
		return "", fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
	}

	periods, err := sets.Periods(ctx)
	if err != nil {
		return "", err
	}
	p, ok := report.PeriodContaining(periods, day)
	if !ok {
		return "", fmt.Errorf("no saved sets on %s: %w", date, service.ErrPeriodNotFound)
	}
	return report.PeriodKey(p), nil
}
