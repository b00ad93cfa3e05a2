package raster

import "image/color"

// Color is an alias for color.RGBA for convenience. A zero alpha means no
// color, so the terminal default shows through.
type Color = color.RGBA

// Colors for convenience
var (
	ColorNone    = Color{}
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
	ColorOrange  = color.RGBA{255, 165, 0, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// Shade scales the RGB channels of c by k, clamped to [0, 1]. Alpha is
// kept.
func Shade(c Color, k float64) Color {
	k = max(0, min(1, k))
	return color.RGBA{
		uint8(float64(c.R) * k),
		uint8(float64(c.G) * k),
		uint8(float64(c.B) * k),
		c.A,
	}
}

// blend mixes a over b by t in [0, 1].
func blend(a, b Color, t float64) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x)*t + float64(y)*(1-t))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}
