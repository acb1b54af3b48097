package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/garyjia/coffee-machine/internal/domain/workflow"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	// Keep logs out of the test output
	args = append([]string{"--log-level=error"}, args...)
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"defaults brew", nil, exitOK, "Coffee Brewed\n"},
		{"no water", []string{"--water=false"}, exitBrewFailed, "Fill water tank!\n"},
		{"bin full", []string{"--bin-empty=false"}, exitBrewFailed, "Capsule Bin is full!\n"},
		{"no capsule", []string{"--capsule=false"}, exitBrewFailed, "Coffee capsule has not been inserted!\n"},
		{"repeated", []string{"--capsule=false", "--times=2"}, exitBrewFailed,
			"Coffee capsule has not been inserted!\nCoffee capsule has not been inserted!\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOut, out)
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("machine:\n  capsule_bin_empty: false\n  brew_attempts: 3\n"), 0644))

	code, out, _ := runCLI(t, "--config", path)
	assert.Equal(t, exitBrewFailed, code)
	assert.Equal(t, 3, strings.Count(out, "Capsule Bin is full!"))

	code, out, _ = runCLI(t, "--config", path, "--bin-empty=true", "--times=1")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Coffee Brewed\n", out)
}

func TestRun_ConfigErrors(t *testing.T) {
	code, _, stderr := runCLI(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, exitConfigError, code)
	assert.Contains(t, stderr, "Failed to load configuration")

	code, _, _ = runCLI(t, "--times=0")
	assert.Equal(t, exitConfigError, code)

	code, _, _ = runCLI(t, "--no-such-flag")
	assert.Equal(t, exitConfigError, code)
}

func TestRun_Describe(t *testing.T) {
	code, out, _ := runCLI(t, "--describe")
	require.Equal(t, exitOK, code)

	var table []workflow.TransitionRule
	require.NoError(t, yaml.Unmarshal([]byte(out), &table))
	require.Len(t, table, 8)
	assert.Contains(t, table, workflow.TransitionRule{
		From:    workflow.StateIdle,
		Trigger: workflow.TriggerBrew,
		To:      workflow.StateCheckWater,
	})
	assert.Contains(t, table, workflow.TransitionRule{
		From:    workflow.StateCheckCapsule,
		Trigger: workflow.TriggerProceed,
		To:      workflow.StateBrewing,
		Guarded: true,
	})
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "--describe")
}
