package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/craftkit/internal/recipe"
)

// RecipeSummary describes one loaded recipe.
type RecipeSummary struct {
	ID           string `json:"id"`
	TimeTicks    int64  `json:"time_ticks"`
	Requirements int    `json:"requirements"`
	Digest       string `json:"digest"`
}

// CheckResult holds the outcome of loading a recipe directory.
type CheckResult struct {
	Recipes []RecipeSummary `json:"recipes"`
	Errors  []string        `json:"errors,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <recipes-dir>",
		Short: "Validate recipe definitions",
		Long: `Load every YAML and CUE recipe in a directory and validate it.

All problems are reported, not just the first.

Exit codes:
  0 - All recipes valid
  1 - One or more recipes invalid
  2 - Command error (directory not found, etc.)

Examples:
  craftkit check ./recipes
  craftkit check ./recipes --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}
}

func runCheck(opts *RootOptions, dir string, cmd *cobra.Command) error {
	out := newFormatter(opts, cmd)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("recipes directory not found: %s", dir))
	}

	reg, errs := recipe.LoadDir(dir)
	result := CheckResult{Recipes: []RecipeSummary{}}
	for _, id := range reg.IDs() {
		r, _ := reg.Get(id)
		result.Recipes = append(result.Recipes, RecipeSummary{
			ID:           r.ID(),
			TimeTicks:    r.TotalTicks(),
			Requirements: len(r.Requirements()),
			Digest:       r.Digest(),
		})
	}
	for _, err := range errs {
		result.Errors = append(result.Errors, err.Error())
	}

	if out.JSON() {
		var cliErr *CLIError
		if len(errs) > 0 {
			cliErr = &CLIError{Code: "E_RECIPE_INVALID", Message: fmt.Sprintf("%d problem(s) found", len(errs))}
		}
		if err := out.Respond(result, cliErr); err != nil {
			return err
		}
	} else {
		for _, r := range result.Recipes {
			out.Printf("✓ %s (%d ticks, %d requirements)\n", r.ID, r.TimeTicks, r.Requirements)
			out.VerboseLog("  %s digest %s", r.ID, r.Digest)
		}
		for _, e := range result.Errors {
			out.Printf("✗ %s\n", e)
		}
	}

	if len(errs) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", len(errs)))
	}
	out.Printf("%d recipe(s) valid\n", len(result.Recipes))
	return nil
}
