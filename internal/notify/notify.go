// Package notify posts desktop notifications.
package notify

import (
	"log"

	"github.com/gen2brain/beeep"
)

const title = "HammerOverlay"

// send is swapped in tests.
var send = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

func init() {
	beeep.AppName = title
}

// Post shows a notification. Failures are logged only.
func Post(message string) {
	if err := send(title, message); err != nil {
		log.Printf("[notify] Failed to post notification: %v", err)
	}
}

// AlreadyRunning tells the user the launch was refused.
func AlreadyRunning() {
	Post("HammerOverlay is already running. Use the tray icon or the hotkey to open it.")
}

// UpdateInstalled tells the user a restart is needed.
func UpdateInstalled(version string) {
	Post("Update " + version + " installed. Restart HammerOverlay to apply it.")
}
