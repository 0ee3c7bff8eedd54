// Package main provides tests for the planportal CLI.
package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/planportal/internal/cli"
	"github.com/leapstack-labs/planportal/internal/cli/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.Contains(output, "planportal v") {
		t.Errorf("version output should contain 'planportal v', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := execute(t, "--help")
	if err != nil {
		t.Fatalf("help command error = %v", err)
	}

	expectedCommands := []string{"assess", "assessments", "documents", "regulations", "seed", "verify", "fetch", "query", "ui"}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestSeedCommand(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")

	output, err := execute(t, "seed", "--state", statePath, "--output", "json")
	if err != nil {
		t.Fatalf("seed command error = %v", err)
	}

	var got struct {
		Documents int `json:"documents"`
	}
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("seed output is not JSON: %v\n%s", err, output)
	}
	if got.Documents == 0 {
		t.Errorf("seed should add documents, got: %s", output)
	}
}

func TestAssessCommand(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")

	output, err := execute(t,
		"assess",
		"--state", statePath,
		"--output", "markdown",
		"--name", "Bjørvika Nord",
		"--type", "commercial",
		"--height", "60",
		"--parking", "250",
		"--zoning-change",
	)
	if err != nil {
		t.Fatalf("assess command error = %v", err)
	}

	for _, want := range []string{"# Bjørvika Nord", "## Risiko", "## Gjeldende regelverk"} {
		if !strings.Contains(output, want) {
			t.Errorf("assess output should contain %q, got: %s", want, output)
		}
	}
}

func TestInvalidOutputFlag(t *testing.T) {
	statePath := filepath.Join(t.TempDir(), "state.db")

	_, err := execute(t, "documents", "list", "--state", statePath, "--output", "yaml")
	if err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
}
