package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database  string
	Execution string // optional - show one craft's events
	Phase     string // optional - filter events to one phase
}

// ExecutionTrace is one craft with its events.
type ExecutionTrace struct {
	Execution journal.Execution `json:"execution"`
	Events    []crafting.Event  `json:"events"`
}

// JournalOverview lists every craft in a journal.
type JournalOverview struct {
	Executions []journal.Execution `json:"executions"`
	Summary    journal.Summary     `json:"summary"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect a craft journal",
		Long: `Inspect crafts recorded in a SQLite journal.

Without --execution, lists every craft with counts by status and by
outcome. With --execution, prints that craft's events in order.

Examples:
  craftkit trace --db ./craft.db
  craftkit trace --db ./craft.db --execution 01928c1e-...
  craftkit trace --db ./craft.db --execution 01928c1e-... --phase start`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (required)")
	cmd.Flags().StringVar(&opts.Execution, "execution", "", "execution id to show")
	cmd.Flags().StringVar(&opts.Phase, "phase", "", "only show events of this phase")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	// Open would create a missing file.
	if _, err := os.Stat(opts.Database); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("journal not found: %s", opts.Database))
	}
	store, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer store.Close()

	if opts.Execution == "" {
		execs, err := store.ListExecutions(ctx)
		if err != nil {
			return err
		}
		sum, err := store.Summarize(ctx)
		if err != nil {
			return err
		}
		overview := JournalOverview{Executions: execs, Summary: sum}
		if out.JSON() {
			return out.Respond(overview, nil)
		}
		printOverview(out, overview)
		return nil
	}

	exec, err := store.ReadExecution(ctx, opts.Execution)
	if errors.Is(err, sql.ErrNoRows) {
		if out.JSON() {
			_ = out.Respond(nil, &CLIError{Code: "E_NOT_FOUND", Message: fmt.Sprintf("execution %q not found", opts.Execution)})
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("execution %q not found", opts.Execution))
	}
	if err != nil {
		return err
	}
	events, err := store.ReadEvents(ctx, exec.ID)
	if err != nil {
		return err
	}
	events = filterPhase(events, opts.Phase)

	tr := ExecutionTrace{Execution: exec, Events: events}
	if out.JSON() {
		return out.Respond(tr, nil)
	}
	printExecution(out, tr)
	return nil
}

func filterPhase(events []crafting.Event, phase string) []crafting.Event {
	if phase == "" {
		return events
	}
	out := []crafting.Event{}
	for _, ev := range events {
		if string(ev.Phase) == phase {
			out = append(out, ev)
		}
	}
	return out
}

func printOverview(out *OutputFormatter, o JournalOverview) {
	if len(o.Executions) == 0 {
		out.Printf("Journal is empty.\n")
		return
	}
	for _, e := range o.Executions {
		end := "-"
		if e.EndTick != nil {
			end = fmt.Sprintf("%d", *e.EndTick)
		}
		out.Printf("%s  %-20s %-10s %-9s end=%s\n", e.ID, e.RecipeID, e.Machine, e.Status, end)
	}
	out.Printf("\n%d craft(s):", o.Summary.Executions)
	for _, status := range sortedNames(o.Summary.ByStatus) {
		out.Printf(" %s=%d", status, o.Summary.ByStatus[status])
	}
	out.Printf("\n%d event(s):", o.Summary.Events)
	for _, outcome := range sortedNames(o.Summary.ByOutcome) {
		out.Printf(" %s=%d", outcome, o.Summary.ByOutcome[outcome])
	}
	out.Printf("\n")
}

func printExecution(out *OutputFormatter, tr ExecutionTrace) {
	e := tr.Execution
	out.Printf("Execution: %s\n", e.ID)
	out.Printf("Recipe:    %s\n", e.RecipeID)
	if e.RecipeDigest != "" {
		out.VerboseLog("digest %s", e.RecipeDigest)
	}
	out.Printf("Status:    %s\n", e.Status)
	out.Printf("\nEvents (%d):\n", len(tr.Events))
	for _, ev := range tr.Events {
		out.Printf("  %s\n", formatEvent(ev))
	}
}
