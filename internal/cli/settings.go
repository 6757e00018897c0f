package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammeroverlay/hammeroverlay/internal/config"
	"github.com/hammeroverlay/hammeroverlay/internal/hotkey"
	"github.com/hammeroverlay/hammeroverlay/internal/instance"
	"github.com/hammeroverlay/hammeroverlay/internal/models"
	"github.com/hammeroverlay/hammeroverlay/internal/tui"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "View and change settings",
	Long: `View and change HammerOverlay settings.

Changes made here are picked up by a running instance; a new hotkey is
bound immediately.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.OpenStore()
		if err != nil {
			return err
		}
		fmt.Println(store.Path())
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.OpenStore()
		if err != nil {
			return err
		}
		if err := store.Reset(); err != nil {
			return fmt.Errorf("failed to reset settings: %w", err)
		}
		fmt.Println(styleSuccess.Render("Settings reset to defaults."))
		runningHint()
		return nil
	},
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit settings interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.OpenStore()
		if err != nil {
			return err
		}
		saved, err := tui.EditSettings(store)
		if err != nil {
			return err
		}
		if !saved {
			fmt.Println(styleHint.Render("No changes made."))
			return nil
		}
		fmt.Println(styleSuccess.Render("Settings saved."))
		runningHint()
		return nil
	},
}

var settingsSetHotkeyCmd = &cobra.Command{
	Use:   "set-hotkey <combo>",
	Short: "Set the global hotkey, e.g. ctrl+shift+h",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		combo, err := hotkey.Parse(args[0])
		if err != nil {
			return err
		}
		return updateSettings(func(s *models.AppSettings) {
			s.GlobalHotkey = combo.String()
		})
	},
}

var settingsSetThemeCmd = &cobra.Command{
	Use:       "set-theme <theme>",
	Short:     "Set the theme: dark, light or system",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(models.ThemeDark), string(models.ThemeLight), string(models.ThemeSystem)},
	RunE: func(cmd *cobra.Command, args []string) error {
		theme := models.Theme(strings.ToLower(args[0]))
		if !theme.Valid() {
			return fmt.Errorf("invalid theme %q (expected dark, light or system)", args[0])
		}
		return updateSettings(func(s *models.AppSettings) {
			s.Theme = theme
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsEditCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsSetHotkeyCmd)
	settingsCmd.AddCommand(settingsSetThemeCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, err := config.OpenStore()
	if err != nil {
		return err
	}
	s := store.Load()

	fmt.Println(styleBrand.Render("Settings") + " " + styleHint.Render(store.Path()))
	printField("Global hotkey", s.GlobalHotkey)
	printField("Theme", string(s.Theme))
	printField("Launch at login", onOff(s.AutoStart))
	printField("Close on focus loss", onOff(s.AutoCloseOnFocusLoss))
	printField("Load clipboard", onOff(s.AutoLoadClipboard))
	printField("LLM parsing", onOff(s.UseLLMParsing))
	return nil
}

// updateSettings loads, mutates and saves the settings.
func updateSettings(mutate func(*models.AppSettings)) error {
	store, err := config.OpenStore()
	if err != nil {
		return err
	}
	s := store.Load()
	mutate(s)
	if err := store.Save(s); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println(styleSuccess.Render("Settings saved."))
	runningHint()
	return nil
}

func runningHint() {
	if running, _, err := instance.Status(); err == nil && running {
		fmt.Println(styleHint.Render("The running instance will pick up the change."))
	}
}
