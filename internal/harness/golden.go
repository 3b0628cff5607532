package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/machine"
)

// TraceSnapshot captures the trace and counters of a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	Stats        machine.Stats
	Trace        []crafting.Event
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for canonical
// JSON serialization. ir.MarshalCanonical only handles maps, slices and
// primitives.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		eventMap := map[string]any{
			"seq":         ev.Seq,
			"execution":   ev.ExecutionID,
			"tick":        ev.Tick,
			"phase":       string(ev.Phase),
			"index":       ev.Index,
			"requirement": ev.Requirement,
			"outcome":     ev.Outcome,
			"seed":        ev.Seed,
		}
		if ev.Component != "" {
			eventMap["component"] = ev.Component
		}
		traceList[i] = eventMap
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"stats": map[string]any{
			"probes":    s.Stats.Probes,
			"started":   s.Stats.Started,
			"completed": s.Stats.Completed,
			"aborted":   s.Stats.Aborted,
			"stalls":    s.Stats.Stalls,
		},
		"trace": traceList,
	}
}

// MarshalTrace returns the canonical JSON snapshot of result.
func MarshalTrace(scenarioName string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Stats:        result.Stats,
		Trace:        result.Trace,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can check Pass separately.
// Test failure (via goldie) occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalTrace(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
