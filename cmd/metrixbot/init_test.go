package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/tfk-discgolf/metrixbot/internal/config"
)

// TestNewInitCmd tests the init command wiring.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	if cmd.Use != "init" {
		t.Errorf("expected use 'init', got %q", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected non-empty short description")
	}

	flags := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "output", shorthand: "o", defValue: configFileName},
		{name: "force", shorthand: "f", defValue: "false"},
	}

	for _, want := range flags {
		t.Run("has "+want.name+" flag", func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(want.name)
			if flag == nil {
				t.Fatalf("expected %s flag", want.name)
			}
			if flag.Shorthand != want.shorthand {
				t.Errorf("expected shorthand %q, got %q", want.shorthand, flag.Shorthand)
			}
			if flag.DefValue != want.defValue {
				t.Errorf("expected default %q, got %q", want.defValue, flag.DefValue)
			}
		})
	}
}

// runInit executes the init command with the given args and returns
// its error and captured output.
func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewInitCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// TestRunInitCmd runs the init command end to end against temp dirs.
func TestRunInitCmd(t *testing.T) {
	t.Run("creates config file and prints guidance", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), ".metrixbot.yaml")

		out, err := runInit(t, "-o", outputPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("expected config file to be created: %v", err)
		}
		if !strings.Contains(string(content), "series:") {
			t.Error("expected config to contain 'series:'")
		}

		if !strings.Contains(out, "Created configuration file") {
			t.Errorf("expected guidance output, got %q", out)
		}
		if !strings.Contains(out, "FB_PAGE_ID") {
			t.Errorf("expected guidance to name the credential variables, got %q", out)
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), ".metrixbot.yaml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := runInit(t, "-o", outputPath)
		if err == nil {
			t.Fatal("expected error when file exists")
		}
		if !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) != "existing" {
			t.Error("expected existing file to be left untouched")
		}
	})

	t.Run("overwrites with force flag", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), ".metrixbot.yaml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		if _, err := runInit(t, "-o", outputPath, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		outputPath := filepath.Join(t.TempDir(), "subdir", "nested", ".metrixbot.yaml")

		if _, err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(outputPath); err != nil {
			t.Errorf("expected config file in nested directory: %v", err)
		}
	})

	t.Run("written file is private", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("no Unix permissions on Windows")
		}

		outputPath := filepath.Join(t.TempDir(), ".metrixbot.yaml")

		if _, err := runInit(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}

// TestConfigTemplate checks that the embedded template documents every
// option and loads cleanly.
func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	content, err := configTemplate.ReadFile("templates/metrixbot.yaml")
	if err != nil {
		t.Fatalf("failed to read template: %v", err)
	}

	t.Run("documents every section the loader knows", func(t *testing.T) {
		t.Parallel()

		for _, want := range []string{
			"series:", "timezone:", "schedule:", "facebook:", "http:", "run:",
			"FB_PAGE_ID", "FB_PAGE_TOKEN", "#",
		} {
			if !strings.Contains(string(content), want) {
				t.Errorf("expected template to contain %q", want)
			}
		}
	})

	t.Run("loads into a valid configuration", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".metrixbot.yaml")
		if err := os.WriteFile(path, content, 0600); err != nil {
			t.Fatalf("failed to write template copy: %v", err)
		}

		file, err := config.LoadConfigFile(path)
		if err != nil {
			t.Fatalf("template does not parse: %v", err)
		}

		cfg := config.NewConfig()
		file.Apply(cfg)
		if err := cfg.Validate(); err != nil {
			t.Errorf("template yields an invalid configuration: %v", err)
		}
	})
}
