package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckValidRecipes(t *testing.T) {
	out, err := execute(t, "check", "testdata/recipes")
	require.NoError(t, err)

	assert.Contains(t, out, "✓ craftkit:press (1 ticks, 2 requirements)")
	assert.Contains(t, out, "✓ craftkit:smelt (3 ticks, 3 requirements)")
	assert.Contains(t, out, "2 recipe(s) valid")
}

func TestCheckReportsInvalidRecipes(t *testing.T) {
	out, err := execute(t, "check", "testdata/broken")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✓ craftkit:press")
	assert.Contains(t, out, "✗ ")
	assert.Contains(t, out, "time_ticks must be positive")
}

func TestCheckJSON(t *testing.T) {
	out, err := execute(t, "check", "testdata/recipes", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   CheckResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data.Recipes, 2)
	assert.Equal(t, "craftkit:press", resp.Data.Recipes[0].ID)
	assert.NotEmpty(t, resp.Data.Recipes[0].Digest)
	assert.Empty(t, resp.Data.Errors)
}

func TestCheckJSONErrors(t *testing.T) {
	out, err := execute(t, "check", "testdata/broken", "--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_RECIPE_INVALID", resp.Error.Code)
}

func TestCheckMissingDir(t *testing.T) {
	_, err := execute(t, "check", "/nonexistent/recipes")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "recipes directory not found")
}

func TestCheckMissingArgs(t *testing.T) {
	_, err := execute(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}
