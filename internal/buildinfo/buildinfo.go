// Package buildinfo holds version information injected at build time via
// -ldflags "-X github.com/hammeroverlay/hammeroverlay/internal/buildinfo.Version=1.2.3".
package buildinfo

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// UserAgent identifies this build in outgoing HTTP requests.
func UserAgent() string {
	return fmt.Sprintf("hammeroverlay/%s (%s)", Version, CommitHash)
}
