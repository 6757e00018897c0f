// Package cli implements the hammeroverlay commands.
package cli

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/hammeroverlay/hammeroverlay/internal/desktop"
	"github.com/hammeroverlay/hammeroverlay/internal/config"
	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

var (
	options   *models.Options
	logCloser io.Closer
	runFlags  desktop.Flags
)

var rootCmd = &cobra.Command{
	Use:   "hammeroverlay",
	Short: "Tray overlay that converts text into Discord timestamps",
	Long: `HammerOverlay lives in the system tray and opens a converter window on a
global hotkey (ctrl+shift+h by default). Run without a subcommand to start it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return desktop.Run(options, runFlags)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads runtime options and configures logging for every command.
// Only the main command refuses to start on invalid options; subcommands
// fall back to the defaults so they stay usable for recovery.
func setup(cmd *cobra.Command, args []string) error {
	opts, err := config.LoadOptions()
	if err != nil {
		if cmd == rootCmd {
			return err
		}
		log.Printf("Ignoring invalid options, using defaults: %v", err)
		opts = config.DefaultOptions()
	}
	options = opts

	if opts.DataDir != "" {
		config.SetDir(opts.DataDir)
	}

	closer, err := config.SetupLogging(opts.LogFile)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return nil
	}
	logCloser = closer
	return nil
}

func init() {
	rootCmd.Flags().BoolVar(&runFlags.Minimized, "minimized", false, "Start hidden in the tray (used by launch at login)")
	rootCmd.Flags().BoolVar(&runFlags.Show, "show", false, "Show the window once started")
	rootCmd.MarkFlagsMutuallyExclusive("minimized", "show")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(autostartCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}
