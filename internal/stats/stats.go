// Package stats is the format-usage statistics stub. Counters are not
// persisted; every query reports zero.
package stats

import (
	"log"

	"github.com/hammeroverlay/hammeroverlay/internal/models"
)

// InitDB prepares the statistics store. There is nothing to prepare.
func InitDB() error {
	return nil
}

// FormatStats returns the usage counters, all zero.
func FormatStats() models.FormatStats {
	return models.FormatStats{}
}

// IncrementUsage records a use of format. It only logs.
func IncrementUsage(format string) {
	log.Printf("[stats] Incrementing usage for format: %s", format)
}
