package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/tfk-discgolf/metrixbot/internal/config"
)

// TestNewWatchCmd tests the watch command creation.
func TestNewWatchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewWatchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "watch" {
			t.Errorf("expected use 'watch', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has at flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("at")
		if flag == nil {
			t.Fatal("expected at flag")
		}
		if flag.Shorthand != "a" {
			t.Errorf("expected shorthand 'a', got %q", flag.Shorthand)
		}
		if flag.DefValue != "" {
			t.Errorf("expected empty default, got %q", flag.DefValue)
		}
	})
}

// TestRunWatchCmd tests the watch command's startup validation.
func TestRunWatchCmd(t *testing.T) {
	t.Run("requires the page ID up front", func(t *testing.T) {
		t.Setenv(config.EnvPageID, "")
		t.Setenv(config.EnvPageToken, "")

		cfgPath := writeTestConfig(t, "http://127.0.0.1:1", t.TempDir())

		root := NewRootCmd()
		root.SetArgs([]string{"watch", "-c", cfgPath})

		err := root.Execute()
		if !errors.Is(err, config.ErrMissingPageID) {
			t.Errorf("expected ErrMissingPageID, got %v", err)
		}
	})

	t.Run("requires the page token up front", func(t *testing.T) {
		t.Setenv(config.EnvPageID, "123456789")
		t.Setenv(config.EnvPageToken, "")

		cfgPath := writeTestConfig(t, "http://127.0.0.1:1", t.TempDir())

		root := NewRootCmd()
		root.SetArgs([]string{"watch", "-c", cfgPath})

		err := root.Execute()
		if !errors.Is(err, config.ErrMissingPageToken) {
			t.Errorf("expected ErrMissingPageToken, got %v", err)
		}
	})

	t.Run("rejects an invalid at override", func(t *testing.T) {
		t.Setenv(config.EnvPageID, "123456789")
		t.Setenv(config.EnvPageToken, "EAATestToken1234567890")

		cfgPath := writeTestConfig(t, "http://127.0.0.1:1", t.TempDir())

		root := NewRootCmd()
		root.SetArgs([]string{"watch", "--at", "25:99", "-c", cfgPath})

		err := root.Execute()
		if !errors.Is(err, config.ErrInvalidScheduleTime) {
			t.Errorf("expected ErrInvalidScheduleTime, got %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "25:99") {
			t.Errorf("expected the offending value in the error, got %v", err)
		}
	})
}
