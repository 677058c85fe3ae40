package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tfk-discgolf/metrixbot/internal/config"
)

// NewRootCmd builds the metrixbot root command with all subcommands
// and persistent flags attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrixbot",
		Short: "Facebook announcement bot for DiscGolfMetrix series rounds",
		Long: `Metrixbot announces upcoming rounds of a DiscGolfMetrix series on a
Facebook page.

It reads the public series page, picks the round scheduled for tomorrow,
composes a Norwegian announcement, and publishes it to the club page via
the Graph API. A local ledger remembers what has been posted so a round
is never announced twice.

Credentials are read from the FB_PAGE_ID and FB_PAGE_TOKEN environment
variables. A .env file in the working directory is honored.`,
		Version:       resolveBuildMetadata().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .metrixbot.yaml in current or home directory)")

	cmd.AddCommand(NewPostCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag reads the verbose flag, falling back to the root
// command's persistent flags.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config path flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// loadConfig resolves the configuration from persistent flags, the
// config file, and the environment, then validates it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getConfigFlag(cmd))
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}
