package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/harness"
	"github.com/roach88/craftkit/internal/journal"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Database string // journal path; empty for in-memory
	Trace    bool   // print every event
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate <scenario>",
		Short: "Run one scenario and report the machine state",
		Long: `Run a scenario file tick by tick and print the resulting stats,
container contents, and crafts.

With --db the crafts are appended to a SQLite journal that can be
inspected later with "craftkit trace". Execution ids are then UUIDv7 so
runs never collide.

Exit codes:
  0 - Scenario ran and every assertion held
  1 - One or more assertions failed
  2 - Command error (scenario not found, invalid scenario, etc.)

Examples:
  craftkit simulate ./scenarios/gear_repeat.yaml
  craftkit simulate ./scenarios/gear_repeat.yaml --db ./craft.db
  craftkit simulate ./scenarios/gear_repeat.yaml --trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to journal database (default: in-memory)")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print every event")

	return cmd
}

func runSimulate(opts *SimulateOptions, path string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	if _, err := os.Stat(path); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenario not found: %s", path))
	}
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid scenario", err)
	}

	hopts := harness.Options{Logger: out.Logger()}
	if opts.Database != "" {
		store, err := journal.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open journal", err)
		}
		defer store.Close()
		hopts.Journal = store
		hopts.IDs = crafting.UUIDv7Generator{}
		out.VerboseLog("journal: %s", opts.Database)
	}

	result, err := harness.Run(cmd.Context(), scenario, hopts)
	if err != nil {
		return WrapExitError(ExitCommandError, "simulation failed", err)
	}

	if out.JSON() {
		var cliErr *CLIError
		if !result.Pass {
			cliErr = &CLIError{
				Code:    "E_SCENARIO_FAILED",
				Message: fmt.Sprintf("%d assertion(s) failed", len(result.Errors)),
				Details: result.Errors,
			}
		}
		if err := out.Respond(result, cliErr); err != nil {
			return err
		}
	} else {
		printSimulation(out, scenario, result, opts.Trace)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertion(s) failed", len(result.Errors)))
	}
	return nil
}

func printSimulation(out *OutputFormatter, s *harness.Scenario, r *harness.Result, trace bool) {
	st := r.Stats
	out.Printf("Scenario: %s (%d ticks)\n", s.Name, s.Ticks)
	out.Printf("Probes: %d  Started: %d  Completed: %d  Aborted: %d  Stalls: %d\n",
		st.Probes, st.Started, st.Completed, st.Aborted, st.Stalls)
	if r.Aborted != "" {
		out.Printf("Aborted: %s\n", r.Aborted)
	}

	if len(r.Energy) > 0 {
		out.Printf("\nEnergy:\n")
		for _, name := range sortedNames(r.Energy) {
			out.Printf("  %-16s %d\n", name, r.Energy[name])
		}
	}
	if len(r.Stock) > 0 {
		out.Printf("\nStock:\n")
		for _, name := range sortedNames(r.Stock) {
			keys := r.Stock[name]
			if len(keys) == 0 {
				out.Printf("  %-16s (empty)\n", name)
				continue
			}
			for _, k := range sortedNames(keys) {
				out.Printf("  %-16s %s=%d\n", name, k, keys[k])
			}
		}
	}
	if len(r.Executions) > 0 {
		out.Printf("\nCrafts:\n")
		for _, e := range r.Executions {
			out.Printf("  %s %s %s\n", e.ID, e.RecipeID, e.Status)
		}
	}
	if trace {
		out.Printf("\nTrace:\n")
		for _, ev := range r.Trace {
			out.Printf("  %s\n", formatEvent(ev))
		}
	}
	if !r.Pass {
		out.Printf("\n")
		for _, e := range r.Errors {
			out.Printf("✗ %s\n", e)
		}
	}
}

func formatEvent(ev crafting.Event) string {
	component := ev.Component
	if component == "" {
		component = "-"
	}
	return fmt.Sprintf("#%d tick=%d %-6s [%d] %s on %s: %s",
		ev.Seq, ev.Tick, ev.Phase, ev.Index, ev.Requirement, component, ev.Outcome)
}

func sortedNames[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
