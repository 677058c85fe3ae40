package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/metrixbot.yaml
var configTemplate embed.FS

// configFileName is where init writes unless -o says otherwise.
const configFileName = ".metrixbot.yaml"

// NewInitCmd builds the init command, which writes a commented
// starter configuration file.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter metrixbot configuration file",
		Long: `Initialize creates a new .metrixbot.yaml configuration file in the
current directory.

The generated file includes:
- The series ID and timezone the bot announces for
- The daily schedule for watch mode
- Commented documentation for every available option

Facebook credentials never live in this file; export FB_PAGE_ID and
FB_PAGE_TOKEN instead (a .env file works too).

Examples:
  # Create .metrixbot.yaml in current directory
  metrixbot init

  # Create config file at a specific path
  metrixbot init -o myconfig.yaml

  # Force overwrite existing file
  metrixbot init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Where to write the configuration file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite an existing configuration file")

	return cmd
}

// runInitCmd reads the flags, writes the template, and prints the
// follow-up guidance.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := writeConfigTemplate(outputPath, force); err != nil {
		return err
	}

	printInitGuidance(cmd.OutOrStdout(), outputPath)
	return nil
}

// writeConfigTemplate materializes the embedded template at path,
// creating parent directories as needed. Without force an existing
// file is left untouched and reported as an error.
func writeConfigTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
	}

	content, err := configTemplate.ReadFile("templates/metrixbot.yaml")
	if err != nil {
		return fmt.Errorf("read config template: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	// 0600: the file is personal configuration, not a shared asset.
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("write configuration file: %w", err)
	}

	return nil
}

// printInitGuidance tells the user what to do after init.
func printInitGuidance(w io.Writer, path string) {
	fmt.Fprintf(w, "Created configuration file: %s\n", path)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit this file to configure settings such as:")
	fmt.Fprintln(w, "  - The DiscGolfMetrix series ID to announce")
	fmt.Fprintln(w, "  - The daily schedule for watch mode")
	fmt.Fprintln(w, "  - The announcement headline and description length")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Then export FB_PAGE_ID and FB_PAGE_TOKEN to enable publishing.")
}
