package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammeroverlay/hammeroverlay/internal/autolaunch"
	"github.com/hammeroverlay/hammeroverlay/internal/config"
)

var autostartCmd = &cobra.Command{
	Use:   "autostart",
	Short: "Manage launch at login",
	RunE:  runAutostartStatus,
}

var autostartStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether launch at login is enabled",
	Args:  cobra.NoArgs,
	RunE:  runAutostartStatus,
}

var autostartEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Launch HammerOverlay at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAutostart(true)
	},
}

var autostartDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop launching HammerOverlay at login",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAutostart(false)
	},
}

func init() {
	autostartCmd.AddCommand(autostartDisableCmd)
	autostartCmd.AddCommand(autostartEnableCmd)
	autostartCmd.AddCommand(autostartStatusCmd)
}

func runAutostartStatus(cmd *cobra.Command, args []string) error {
	l, err := autolaunch.New()
	if err != nil {
		return err
	}
	fmt.Printf("Launch at login: %s\n", onOff(l.IsEnabled()))
	return nil
}

// setAutostart changes the login item and keeps the auto_start setting in
// step with it.
func setAutostart(enabled bool) error {
	l, err := autolaunch.New()
	if err != nil {
		return err
	}
	if err := autolaunch.Set(l, enabled); err != nil {
		return err
	}

	store, err := config.OpenStore()
	if err != nil {
		return err
	}
	s := store.Load()
	if s.AutoStart != enabled {
		s.AutoStart = enabled
		if err := store.Save(s); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}

	fmt.Printf("Launch at login: %s\n", onOff(enabled))
	return nil
}

