package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build metadata injected via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=abc1234 -X main.date=2026-01-02"
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildMetadata is the resolved version information the version command
// prints. Fields are never empty after resolveBuildMetadata.
type buildMetadata struct {
	Version string
	Commit  string
	Date    string
	Go      string
}

// resolveBuildMetadata fills whatever ldflags left empty from
// debug.ReadBuildInfo, so plain `go install` builds still report their
// module version and VCS revision.
func resolveBuildMetadata() buildMetadata {
	meta := buildMetadata{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if meta.Version == "" {
			meta.Version = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if meta.Commit == "" {
					meta.Commit = shortRevision(s.Value)
				}
			case "vcs.time":
				if meta.Date == "" {
					meta.Date = s.Value
				}
			}
		}
	}

	if meta.Version == "" {
		meta.Version = "(devel)"
	}
	if meta.Commit == "" {
		meta.Commit = "unknown"
	}
	if meta.Date == "" {
		meta.Date = "unknown"
	}

	return meta
}

// shortRevision truncates a full VCS revision to the usual seven
// characters. Shorter input passes through unchanged.
func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// NewVersionCmd builds the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of metrixbot.`,
		Run: func(cmd *cobra.Command, _ []string) {
			meta := resolveBuildMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "metrixbot version %s\n", meta.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", meta.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", meta.Date)
			fmt.Fprintf(cmd.OutOrStdout(), "  go:     %s\n", meta.Go)
		},
	}
}
