package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("WEALTHIFY_API_URL", "https://api.example.com/api/v1")
	t.Setenv("SESSION_BACKEND", "file")
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.json"))
	t.Setenv("AMQP_URL", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
}

func TestRunWritesErrorsToStderr(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"incomes", "delete"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "missing income id")
}

func TestRunWritesOutputToStdout(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"status"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Not logged in.")
	assert.Empty(t, stderr.String())
}

func TestRunUnknownCommand(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"nope"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `unknown command "nope"`)
}
