// Package main is the entry point for HammerOverlay.
package main

import (
	"os"

	"github.com/hammeroverlay/hammeroverlay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
