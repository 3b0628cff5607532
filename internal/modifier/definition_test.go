package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/craftkit/internal/ir"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		in   string
		want Op
	}{
		{"add", OpAdd},
		{"ADD", OpAdd},
		{"multiply", OpMultiply},
		{"mul", OpMultiply},
		{"0", OpAdd},
		{"1", OpMultiply},
		{"5", Op(5)},
	}
	for _, tt := range tests {
		got, err := ParseOp(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseOp("divide")
	assert.Error(t, err)
}

func TestDefinitionsFromYAML(t *testing.T) {
	src := `
- target: duration
  op: add
  amount: 10
- target: energy
  io: input
  op: multiply
  amount: 0.5
- target: item
  io: output
  op: multiply
  amount: 0.25
  chance: true
`
	var defs []Definition
	require.NoError(t, yaml.Unmarshal([]byte(src), &defs))

	mods, err := FromDefinitions(defs)
	require.NoError(t, err)
	require.Len(t, mods, 3)

	assert.Equal(t, Modifier{Target: "duration", IO: ir.IOAny, Op: OpAdd, Amount: 10}, mods[0])
	assert.Equal(t, Modifier{Target: "energy", IO: ir.IOInput, Op: OpMultiply, Amount: 0.5}, mods[1])
	assert.True(t, mods[2].AffectsChance)
}

func TestFromDefinitionsErrors(t *testing.T) {
	_, err := FromDefinitions([]Definition{{Target: "", Op: "add"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modifiers[0]")

	_, err = FromDefinitions([]Definition{{Target: "item", IO: "up", Op: "add"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown io type")
}
