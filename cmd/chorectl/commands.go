package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/henleyisabel12/teaco-chores/api"
	"github.com/henleyisabel12/teaco-chores/chores"
	"github.com/henleyisabel12/teaco-chores/factory"
	"github.com/henleyisabel12/teaco-chores/recurrence"
)

// =============================================================================
// IMPORT / EXPORT
// =============================================================================

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the schedule with a household export or schedule file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			household, err := factory.NewTaskFactory().ParseHousehold(data)
			if err != nil {
				return err
			}

			svc, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if err := svc.ReplaceSchedule(ctx, household.Tasks, household.Completions); err != nil {
				return err
			}
			if len(household.Users) > 0 {
				if _, err := svc.SaveUsers(ctx, household.Users); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks, %d completions\n", len(household.Tasks), len(household.Completions))
			return nil
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the household as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			snap, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}
			users, err := svc.Users(ctx)
			if err != nil {
				return err
			}
			data, err := factory.NewTaskFactory().EncodeHousehold(factory.Household{
				Tasks:       snap.Tasks,
				Completions: snap.Completions,
				Users:       users,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newScenarioCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [id]",
		Short: "Replace the schedule with a starter scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, ok := api.ScenarioSchedule(args[0])
			if !ok {
				return fmt.Errorf("unknown scenario %q", args[0])
			}
			tasks, err := factory.NewTaskFactory().ParseSchedule(data)
			if err != nil {
				return err
			}

			svc, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if err := store.Reset(ctx); err != nil {
				return err
			}
			if err := svc.ReplaceSchedule(ctx, tasks, nil); err != nil {
				return err
			}
			if _, err := svc.SaveUsers(ctx, chores.DefaultUsers()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s: %d tasks\n", args[0], len(tasks))
			return nil
		},
	}
}

// =============================================================================
// VIEWS
// =============================================================================

func newAgendaCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "agenda [date]",
		Short: "Show chores due on a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			date, err := dateArg(svc, args, 0)
			if err != nil {
				return err
			}
			agenda, err := svc.Agenda(cmd.Context(), date)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %d/%d done (%s%%)\n", agenda.Date, len(agenda.Done), agenda.Total, agenda.Progress.String())
			if agenda.Total == 0 {
				fmt.Fprintln(out, "Nothing due.")
				return nil
			}
			for _, g := range agenda.Pending {
				fmt.Fprintf(out, "\n%s\n", g.Category)
				for _, t := range g.Tasks {
					fmt.Fprintf(out, "  [ ] %s  (%s, %s)\n", t.Description, t.ID, chores.Label(t.Frequency))
				}
			}
			if len(agenda.Done) > 0 {
				fmt.Fprintln(out, "\nDone")
				for _, t := range agenda.Done {
					fmt.Fprintf(out, "  [x] %s  (%s)\n", t.Description, t.ID)
				}
			}
			return nil
		},
	}
}

func newUpcomingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming",
		Short: "List every task by next due date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			rows, err := svc.Upcoming(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DUE IN\tNEXT\tTASK\tFREQUENCY\tCATEGORIES\tLAST DONE")
			for _, row := range rows {
				due := fmt.Sprintf("%dd", row.DaysUntilDue)
				if row.CompletedNow {
					due = "done"
				}
				last := "-"
				if row.Completion != nil {
					last = fmt.Sprintf("%s by %s", row.Completion.Date, row.Completion.Actor)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					due, row.NextDue, row.Task.Description, row.Label,
					strings.Join(row.Task.Categories, ","), last)
			}
			return w.Flush()
		},
	}
}

// =============================================================================
// EDITS
// =============================================================================

func newDoneCmd(opts *options) *cobra.Command {
	var actor string
	cmd := &cobra.Command{
		Use:   "done [task-id] [date]",
		Short: "Toggle a task's completion on a date (default today)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, store, err := opts.open()
			if err != nil {
				return err
			}
			defer store.Close()

			date, err := dateArg(svc, args, 1)
			if err != nil {
				return err
			}
			done, err := svc.ToggleCompletion(cmd.Context(), recurrence.TaskID(args[0]), date, actor)
			if err != nil {
				return err
			}
			state := "not done"
			if done {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s on %s\n", args[0], state, date)
			return nil
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "A", "User id completing the task")
	return cmd
}

func dateArg(svc *chores.Service, args []string, i int) (recurrence.Date, error) {
	if len(args) <= i {
		return svc.Today(), nil
	}
	d, ok := recurrence.ParseDate(args[i])
	if !ok {
		return recurrence.Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", args[i])
	}
	return d, nil
}
