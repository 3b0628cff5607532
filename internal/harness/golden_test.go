package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/craftkit/internal/crafting"
)

func TestRunWithGolden_SimpleCraft(t *testing.T) {
	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden_SimpleCraft -update
	result, err := RunWithGolden(t, loadTestScenario(t, "simple_craft"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestMarshalTrace_OmitsEmptyComponent(t *testing.T) {
	result := NewResult()
	result.Trace = append(result.Trace, loadEvent("probe", ""))

	got, err := MarshalTrace("x", result)
	require.NoError(t, err)
	assert.NotContains(t, string(got), `"component"`)
	assert.Contains(t, string(got), `"scenario_name":"x"`)
}

func loadEvent(phase, component string) crafting.Event {
	return crafting.Event{
		Seq:         1,
		ExecutionID: "x-1",
		Phase:       crafting.Phase(phase),
		Requirement: "item input iron_ingot x1",
		Component:   component,
		Outcome:     "FAILURE_MISSING_INPUT",
	}
}
