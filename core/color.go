package core

import "image/color"

// RGB stores explicit 8-bit color channels, decoupled from display backends
type RGB struct {
	R, G, B uint8
}

// Game palette
var (
	RGBBlack  = RGB{0, 0, 0}
	RGBWhite  = RGB{255, 255, 255}
	RGBBlue   = RGB{0, 0, 255}
	RGBRed    = RGB{255, 0, 0}
	RGBOrange = RGB{255, 165, 0}
	RGBYellow = RGB{255, 255, 0}
	RGBGreen  = RGB{0, 200, 0}
)

// RGBA converts to the image/color representation used by framebuffers
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
