// Package main provides tests for the Injaz CLI.
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/injaz-app/injaz/internal/cli"
)

func TestVersionCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("version command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "Injaz") {
		t.Errorf("version output should contain 'Injaz', got: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("help command error = %v", err)
	}

	output := buf.String()
	for _, expected := range []string{"serve", "migrate", "steps", "breakdown", "version"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestStepsCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"steps",
		"--project-type", "villa",
		"--villa-category", "residential",
		"--contract-type", "new",
		"--locale", "en",
	})

	if err := cmd.Execute(); err != nil {
		t.Errorf("steps command error = %v", err)
	}

	output := buf.String()
	for _, expected := range []string{"setup", "siteplan", "license", "contract", "award"} {
		if !strings.Contains(output, expected) {
			t.Errorf("steps output should contain '%s', got: %s", expected, output)
		}
	}
}

func TestBreakdownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{
		"breakdown",
		"--total", "121000",
		"--design-pct", "6",
		"--supervision-pct", "4",
	})

	if err := cmd.Execute(); err != nil {
		t.Errorf("breakdown command error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "11000") {
		t.Errorf("breakdown output should contain the extracted fee, got: %s", output)
	}
}

func TestMigrateCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"migrate", "--database", ":memory:"})

	if err := cmd.Execute(); err != nil {
		t.Errorf("migrate command error = %v", err)
	}

	if !strings.Contains(buf.String(), "migration version") {
		t.Errorf("migrate output should report the migration version, got: %s", buf.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			cmd := cli.NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"completion", shell})

			if err := cmd.Execute(); err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"unknown-command"})

	if err := cmd.Execute(); err == nil {
		t.Error("unknown command should return an error")
	}
}
