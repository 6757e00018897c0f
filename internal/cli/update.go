package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammeroverlay/hammeroverlay/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for and install updates",
	RunE:  runUpdateCheck,
}

var updateCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether a newer release exists",
	Args:  cobra.NoArgs,
	RunE:  runUpdateCheck,
}

var updateInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download and install the latest release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Checking for updates...")

		result, err := newChecker().Install(cmd.Context())
		if errors.Is(err, updater.ErrNoUpdate) {
			fmt.Printf("Already up to date (%s).\n", styleVersion.Render(result.CurrentVersion))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to install update: %w", err)
		}

		fmt.Println(styleSuccess.Render(fmt.Sprintf("Updated to v%s.", result.LatestVersion)))
		fmt.Println(styleWarning.Render("Restart HammerOverlay to use the new version."))
		return nil
	},
}

func init() {
	updateCmd.AddCommand(updateCheckCmd)
	updateCmd.AddCommand(updateInstallCmd)
}

func newChecker() *updater.Checker {
	return updater.NewChecker(options.ReleasesURL, time.Duration(options.UpdateTimeout)*time.Second)
}

func runUpdateCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("Checking for updates...")
	result, err := newChecker().Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if !result.Available {
		fmt.Printf("Already up to date (%s).\n", styleVersion.Render(result.CurrentVersion))
		return nil
	}

	fmt.Printf("%s %s → %s\n", styleUpdate.Render("Update available:"), result.CurrentVersion, result.LatestVersion)
	printField("Release", result.ReleaseURL)
	fmt.Println(styleHint.Render("Run 'hammeroverlay update install' to install it."))
	return nil
}
