package cli

import (
	"fmt"

	"github.com/alexanderramin/lapse/internal/cli/formatter"
	"github.com/alexanderramin/lapse/internal/recorder"
	"github.com/alexanderramin/lapse/internal/service"
	"github.com/alexanderramin/lapse/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timer",
		Short: "Open the interactive stopwatch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, app)
		},
	}
}

func runTimer(cmd *cobra.Command, app *App) error {
	if !app.interactive() {
		return fmt.Errorf("the stopwatch needs a terminal; use \"lapse record\" to save sessions from scripts")
	}

	sched := app.Scheduler
	if sched == nil {
		sched = timer.TickerScheduler{}
	}
	clock := timer.New(sched)
	defer clock.Stop()
	rec := recorder.New()

	// The model asks for confirmation itself before saving.
	m := newTimerModel(cmd.Context(), clock, rec, app.Sets(service.AutoConfirm), app.Location)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running stopwatch: %w", err)
	}

	if n := rec.Len(); n > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(fmt.Sprintf("Discarded %s (%s) that were not saved.",
			formatter.Plural(n, "session", "sessions"), formatter.Elapsed(rec.TotalTime()))))
	}
	return nil
}
