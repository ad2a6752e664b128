package cli

import (
	"time"

	"github.com/alexanderramin/lapse/internal/service"
	"github.com/alexanderramin/lapse/internal/timer"
	"github.com/spf13/cobra"
)

// App holds the dependencies shared by CLI commands.
type App struct {
	Store    service.SetStore
	Location *time.Location
	Observer service.UseCaseObserver

	// AssumeYes skips confirmation prompts. Bound to --yes.
	AssumeYes bool
	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
	// Prompt asks the user a yes/no question. Defaults to a huh form.
	Prompt service.ConfirmFunc
	// Scheduler drives the stopwatch. Defaults to timer.TickerScheduler.
	Scheduler timer.Scheduler
}

// Sets builds the session set use cases with the given confirmer.
func (a *App) Sets(confirm service.Confirmer) service.SessionSetService {
	return service.NewSessionSetService(a.Store, confirm, a.Location, a.Observer)
}

// confirmer resolves how state-changing commands are approved: --yes
// approves everything, a terminal gets a prompt, anything else is refused.
func (a *App) confirmer() service.Confirmer {
	if a.AssumeYes {
		return service.AutoConfirm
	}
	if !a.interactive() {
		return service.ConfirmFunc(refuseConfirm)
	}
	if a.Prompt != nil {
		return a.Prompt
	}
	return service.ConfirmFunc(huhConfirm)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lapse" command and registers all
// subcommands against the provided App. Running it without a subcommand
// opens the stopwatch.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lapse",
		Short:         "Stopwatch sessions, saved sets and half-month summaries",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimer(cmd, app)
		},
	}

	root.PersistentFlags().BoolVarP(&app.AssumeYes, "yes", "y", app.AssumeYes, "Skip confirmation prompts")
	root.SetGlobalNormalizationFunc(aliasNormalizer(yesFlagAliases))

	root.AddCommand(
		newTimerCmd(app),
		newSetsCmd(app),
		newPeriodsCmd(app),
		newRecordCmd(app),
	)

	return root
}
