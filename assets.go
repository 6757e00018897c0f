// Package hammeroverlay embeds the webview frontend.
package hammeroverlay

import "embed"

// Assets is the built frontend served to the webview.
//
//go:embed all:frontend/dist
var Assets embed.FS
