package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad path")))

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitFailure, "inner"))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
}

func TestWrapExitError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to open journal", cause)

	assert.Equal(t, "failed to open journal: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad", NewExitError(ExitFailure, "bad").Error())
}

func TestRespondSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Respond(map[string]int{"recipes": 2}, nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"recipes": float64(2)}, resp.Data)
}

func TestRespondError(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Respond(nil, &CLIError{Code: "E_TEST_FAILED", Message: "1 scenario(s) failed"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
}

func TestPrintfSilentInJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}
	f.Printf("hello %d\n", 1)
	assert.Empty(t, buf.String())

	f.Format = "text"
	f.Printf("hello %d\n", 1)
	assert.Equal(t, "hello 1\n", buf.String())
}

func TestVerboseLogGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}

	f.VerboseLog("quiet")
	assert.Empty(t, errOut.String())

	f.Verbose = true
	f.VerboseLog("loud %s", "now")
	assert.Equal(t, "loud now\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestLoggerLevel(t *testing.T) {
	errOut := &bytes.Buffer{}
	f := &OutputFormatter{Writer: &bytes.Buffer{}, ErrWriter: errOut}

	f.Logger().Debug("hidden")
	assert.Empty(t, errOut.String())

	f.Verbose = true
	f.Logger().Debug("shown", "tick", 3)
	assert.Contains(t, errOut.String(), "msg=shown")
	assert.Contains(t, errOut.String(), "tick=3")
}
