package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammeroverlay/hammeroverlay/internal/instance"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether HammerOverlay is running",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	running, info, err := instance.Status()
	if err != nil {
		return fmt.Errorf("failed to check instance status: %w", err)
	}

	if !running {
		fmt.Println(styleHint.Render("HammerOverlay is not running."))
		return nil
	}

	fmt.Println(styleSuccess.Render("HammerOverlay is running."))
	if info == nil {
		return nil
	}

	printField("PID", fmt.Sprintf("%d", info.PID))
	printField("Version", info.AppVer)
	printField("Session", info.SessionID)
	printField("Uptime", time.Since(info.StartedAt).Truncate(time.Second).String())
	return nil
}
