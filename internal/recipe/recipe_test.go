package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/requirement"
)

var _ crafting.Recipe = (*Recipe)(nil)

func gearDefinition() Definition {
	return Definition{
		ID:        "craftkit:gear",
		TimeTicks: 20,
		Requirements: []RequirementDefinition{
			{Type: "energy", IO: "input", PerTick: 10},
			{Type: "item", IO: "input", Key: "iron_ingot", Amount: 2},
			{Type: "item", IO: "output", Key: "gear", Amount: 1},
		},
	}
}

func TestBuild(t *testing.T) {
	r, err := Build(gearDefinition())
	require.NoError(t, err)

	assert.Equal(t, "craftkit:gear", r.ID())
	assert.Equal(t, int64(20), r.TotalTicks())
	require.Len(t, r.Requirements(), 3)

	energy, ok := r.Requirements()[0].(*requirement.Energy)
	require.True(t, ok)
	assert.Equal(t, int64(10), energy.PerTick)
	assert.Equal(t, ir.IOInput, energy.IO)

	out, ok := r.Requirements()[2].(*requirement.Stock)
	require.True(t, ok)
	assert.Equal(t, "gear", out.Key)
	assert.Equal(t, ir.IOOutput, out.IO)
	assert.Equal(t, 1.0, out.Chance, "chance defaults to 1")
}

func TestBuildRequirementsStable(t *testing.T) {
	r := MustBuild(gearDefinition())
	assert.Equal(t, r.Requirements(), r.Requirements())
	assert.Same(t, r.Requirements()[0], r.Requirements()[0])
}

func TestBuildInvalid(t *testing.T) {
	d := gearDefinition()
	d.TimeTicks = 0

	_, err := Build(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrRecipeDuration)
	assert.Panics(t, func() { MustBuild(d) })
}

func TestValidate(t *testing.T) {
	half := 0.5
	tooLikely := 1.5

	tests := []struct {
		name  string
		def   Definition
		codes []string
	}{
		{"valid", gearDefinition(), nil},
		{
			name:  "empty",
			def:   Definition{},
			codes: []string{ErrRecipeIDEmpty, ErrRecipeDuration, ErrRecipeNoReqs},
		},
		{
			name: "unknown type and direction",
			def: Definition{ID: "x", TimeTicks: 1, Requirements: []RequirementDefinition{
				{Type: "mana", IO: "sideways", Key: "k", Amount: 1},
			}},
			codes: []string{ErrUnknownResource, ErrInvalidDirection},
		},
		{
			name: "energy without per_tick",
			def: Definition{ID: "x", TimeTicks: 1, Requirements: []RequirementDefinition{
				{Type: "energy", IO: "input", Amount: 3},
			}},
			codes: []string{ErrInvalidAmount, ErrMisplacedField},
		},
		{
			name: "item problems",
			def: Definition{ID: "x", TimeTicks: 1, Requirements: []RequirementDefinition{
				{Type: "item", IO: "output", PerTick: 3, Chance: &tooLikely},
			}},
			codes: []string{ErrMissingKey, ErrInvalidAmount, ErrMisplacedField, ErrInvalidChance},
		},
		{
			name: "missing direction",
			def: Definition{ID: "x", TimeTicks: 1, Requirements: []RequirementDefinition{
				{Type: "item", Key: "iron_ingot", Amount: 2},
			}},
			codes: []string{ErrInvalidDirection},
		},
		{
			name: "explicit any direction",
			def: Definition{ID: "x", TimeTicks: 1, Requirements: []RequirementDefinition{
				{Type: "item", IO: "any", Key: "catalyst", Amount: 1},
			}},
		},
		{
			name: "gas with chance",
			def: Definition{ID: "x", TimeTicks: 1, Requirements: []RequirementDefinition{
				{Type: "gas", IO: "output", Key: "steam", Amount: 5, Chance: &half},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.def)
			var codes []string
			for _, e := range errs {
				codes = append(codes, e.Code)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestValidationErrorFormat(t *testing.T) {
	errs := Validate(Definition{TimeTicks: 1, Requirements: []RequirementDefinition{{Type: "item", IO: "input", Key: "k", Amount: 1}}})
	require.Len(t, errs, 1)
	assert.Equal(t, "[E201] id: id is required", errs[0].Error())
}

func TestDigestStable(t *testing.T) {
	a, err := gearDefinition().Digest()
	require.NoError(t, err)
	b, err := gearDefinition().Digest()
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestDigestNormalizesSpelling(t *testing.T) {
	one := 1.0
	d := gearDefinition()
	d.Requirements[0].Type = "ENERGY"
	d.Requirements[1].IO = "in"
	d.Requirements[2].Chance = &one

	a, err := d.Digest()
	require.NoError(t, err)
	b, err := gearDefinition().Digest()
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestDigestChangesWithContent(t *testing.T) {
	d := gearDefinition()
	d.Requirements[1].Amount = 3

	a, err := d.Digest()
	require.NoError(t, err)
	b, err := gearDefinition().Digest()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDigestOnRecipe(t *testing.T) {
	r := MustBuild(gearDefinition())
	want, err := gearDefinition().Digest()
	require.NoError(t, err)
	assert.Equal(t, want, r.Digest())
	assert.Equal(t, gearDefinition(), r.Definition())
}

func TestDecodeYAMLRoundTrip(t *testing.T) {
	data, err := MarshalYAML(gearDefinition())
	require.NoError(t, err)

	got, err := DecodeYAML(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, gearDefinition(), got)
}

func TestBuildRejectsYAMLWithoutDirection(t *testing.T) {
	d, err := DecodeYAML(strings.NewReader("id: dupe\ntime_ticks: 5\nrequirements: [{type: item, key: iron, amount: 2}]\n"))
	require.NoError(t, err)

	_, err = Build(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInvalidDirection)
	assert.Contains(t, err.Error(), "requirements[0].io")
}
