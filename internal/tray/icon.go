package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

const iconSize = 32

// renderIcon draws a hammer: a rounded head across the top and a handle
// running down the middle. White on transparent, antialiased edges.
func renderIcon() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, iconSize, iconSize))

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			fx := float64(x) + 0.5
			fy := float64(y) + 0.5

			alpha := math.Max(
				roundedRect(fx, fy, 5, 5, 27, 13, 2.5),
				roundedRect(fx, fy, 14, 12, 18, 29, 1.5),
			)
			if alpha > 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)})
			}
		}
	}
	return img
}

// roundedRect returns the coverage of point (x, y) by the rectangle
// (x0, y0)-(x1, y1) with corner radius r.
func roundedRect(x, y, x0, y0, x1, y1, r float64) float64 {
	cx := math.Max(x0+r, math.Min(x, x1-r))
	cy := math.Max(y0+r, math.Min(y, y1-r))
	d := math.Hypot(x-cx, y-cy) - r
	switch {
	case d <= 0:
		return 1
	case d < 0.8:
		return (0.8 - d) / 0.8
	}
	return 0
}

// iconBytes returns the tray icon as PNG.
func iconBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, renderIcon()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
