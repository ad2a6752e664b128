package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/lapse/internal/cli/formatter"
	"github.com/alexanderramin/lapse/internal/importer"
	"github.com/alexanderramin/lapse/internal/service"
	"github.com/spf13/cobra"
)

func newSetsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "Manage saved session sets",
	}

	cmd.AddCommand(
		newSetsListCmd(app),
		newSetsShowCmd(app),
		newSetsDeleteCmd(app),
		newSetsClearCmd(app),
		newSetsImportCmd(app),
		newSetsExportCmd(app),
	)

	return cmd
}

func newSetsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved sets, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := app.Sets(app.confirmer()).Load(cmd.Context())
			if err := warnOnUnreadable(cmd.ErrOrStderr(), err); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSetList(sets, app.Location))
			return nil
		},
	}
}

func newSetsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the sessions of a saved set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sets := app.Sets(app.confirmer())
			id, err := resolveSetID(ctx, sets, args[0])
			if err != nil {
				return err
			}
			set, err := sets.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSetDetail(set, app.Location))
			return nil
		},
	}
}

func newSetsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved set",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sets := app.Sets(app.confirmer())
			id, err := resolveSetID(ctx, sets, args[0])
			if err != nil {
				return err
			}
			outcome, err := sets.DeleteSet(ctx, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch outcome {
			case service.OutcomeApplied:
				fmt.Fprintf(out, "Deleted set %s\n", id)
			case service.OutcomeDeclined:
				fmt.Fprintln(out, formatter.Dim("Cancelled."))
			default:
				fmt.Fprintf(out, "Set %s was already gone\n", id)
			}
			return nil
		},
	}
}

func newSetsClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome, err := app.Sets(app.confirmer()).ClearAll(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch outcome {
			case service.OutcomeApplied:
				fmt.Fprintln(out, "Cleared all saved sets")
			case service.OutcomeDeclined:
				fmt.Fprintln(out, formatter.Dim("Cancelled."))
			default:
				fmt.Fprintln(out, "No saved sets.")
			}
			return nil
		},
	}
}

func newSetsImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import saved sets from an archive or a raw savedSessionSets dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return fmt.Errorf("loading import file: %w", err)
			}
			result, err := app.Sets(app.confirmer()).ImportArchive(cmd.Context(), schema)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch result.Outcome {
			case service.OutcomeApplied:
				fmt.Fprintf(out, "Imported %s", formatter.Plural(result.Added, "set", "sets"))
				if result.Skipped > 0 {
					fmt.Fprintf(out, " (%d already present)", result.Skipped)
				}
				fmt.Fprintln(out)
			case service.OutcomeDeclined:
				fmt.Fprintln(out, formatter.Dim("Cancelled."))
			default:
				fmt.Fprintln(out, "Nothing new to import.")
			}
			return nil
		},
	}
}

func newSetsExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write all saved sets to a JSON archive (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := app.Sets(app.confirmer()).ExportArchive(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return importer.WriteArchive(cmd.OutOrStdout(), schema)
			}

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			if err := importer.WriteArchive(f, schema); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", formatter.Plural(len(schema.Sets), "set", "sets"), args[0])
			return nil
		},
	}
}
