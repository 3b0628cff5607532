package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/craftkit/internal/crafting"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string           // Assertion type for categorization
	Expected string           // Human-readable expected outcome
	Actual   string           // Human-readable actual outcome
	Trace    []crafting.Event // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s tick=%d #%d %s -> %s %s\n",
				ev.Seq, ev.Phase, ev.Tick, ev.Index, ev.Requirement, ev.Component, ev.Outcome)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns the
// failure messages in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %s", i, err.Error()))
		}
	}
	return errs
}

func evaluate(r *Result, a Assertion) error {
	switch a.Type {
	case AssertProbe:
		if r.FirstProbe != a.Expect {
			return &AssertionError{Type: a.Type, Expected: a.Expect, Actual: r.FirstProbe, Trace: r.Trace}
		}
	case AssertCraftsCompleted:
		return assertCount(a, r.Stats.Completed)
	case AssertCraftsAborted:
		return assertCount(a, r.Stats.Aborted)
	case AssertStalls:
		return assertCount(a, r.Stats.Stalls)
	case AssertStock:
		stock, ok := r.Stock[a.Component]
		if !ok {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("inventory component %q", a.Component),
				Actual:   "not an inventory",
			}
		}
		if got := stock[a.Key]; got != *a.Amount {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s holds %d %s", a.Component, *a.Amount, a.Key),
				Actual:   fmt.Sprintf("%d (contents %v)", got, formatStock(stock)),
			}
		}
	case AssertEnergy:
		got, ok := r.Energy[a.Component]
		if !ok {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("energy component %q", a.Component),
				Actual:   "not an energy component",
			}
		}
		if got != *a.Amount {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s stores %d", a.Component, *a.Amount),
				Actual:   fmt.Sprintf("%d", got),
			}
		}
	case AssertTraceCount:
		n := 0
		for _, ev := range r.Trace {
			if string(ev.Phase) != a.Phase {
				continue
			}
			if a.Outcome != "" && ev.Outcome != a.Outcome {
				continue
			}
			n++
		}
		if n != *a.Count {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%d %s events with outcome %q", *a.Count, a.Phase, a.Outcome),
				Actual:   fmt.Sprintf("%d", n),
				Trace:    r.Trace,
			}
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func assertCount(a Assertion, got int) error {
	if got != *a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d", *a.Count),
			Actual:   fmt.Sprintf("%d", got),
		}
	}
	return nil
}

func formatStock(stock map[string]int64) string {
	parts := make([]string, 0, len(stock))
	for _, k := range sortedKeys(stock) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, stock[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
