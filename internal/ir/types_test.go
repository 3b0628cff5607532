package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceTypeCanonical(t *testing.T) {
	tests := []struct {
		in   ResourceType
		want ResourceType
	}{
		{"gas", ResourceFluid},
		{"GAS", ResourceFluid},
		{" Gas ", ResourceFluid},
		{"fluid", ResourceFluid},
		{"energy", ResourceEnergy},
		{"Item", ResourceItem},
		{"mana", "mana"},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Canonical())
		})
	}
}

func TestResourceTypeIs(t *testing.T) {
	assert.True(t, ResourceGas.Is(ResourceFluid))
	assert.True(t, ResourceFluid.Is(ResourceGas))
	assert.False(t, ResourceItem.Is(ResourceFluid))
}

func TestResourceTypeKnown(t *testing.T) {
	assert.True(t, ResourceGas.Known())
	assert.True(t, ResourceEnergy.Known())
	assert.False(t, ResourceType("mana").Known())
}

func TestParseIOType(t *testing.T) {
	tests := []struct {
		in   string
		want IOType
	}{
		{"input", IOInput},
		{"OUTPUT", IOOutput},
		{"any", IOAny},
		{"", IOAny},
	}
	for _, tt := range tests {
		got, err := ParseIOType(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseIOType("sideways")
	assert.Error(t, err)
}

func TestIOTypePhases(t *testing.T) {
	assert.True(t, IOInput.IsInput())
	assert.False(t, IOInput.IsOutput())
	assert.False(t, IOOutput.IsInput())
	assert.True(t, IOOutput.IsOutput())
	assert.True(t, IOAny.IsInput())
	assert.True(t, IOAny.IsOutput())
}

func TestCraftCheckString(t *testing.T) {
	assert.Equal(t, "SUCCESS", Success.String())
	assert.Equal(t, "PARTIAL_SUCCESS", PartialSuccess.String())
	assert.Equal(t, "FAILURE_MISSING_INPUT", FailureMissingInput.String())
	assert.Equal(t, "INVALID_SKIP", InvalidSkip.String())
	assert.Equal(t, "CraftCheck(9)", CraftCheck(9).String())
}
