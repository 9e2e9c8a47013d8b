package raster

import "image/color"

// Palette holds the colors of the terminal and card scenes.
type Palette struct {
	Background color.RGBA
	Bar        color.RGBA
	Card       color.RGBA
	Green      color.RGBA
	Gold       color.RGBA
	Amber      color.RGBA
	Dim        color.RGBA
	Bright     color.RGBA
	White      color.RGBA
	Lights     [3]color.RGBA // window buttons, left to right
}

var DefaultPalette = Palette{
	Background: hex(0x1a1b26),
	Bar:        hex(0x0c0d14),
	Card:       hex(0x0a0a0f),
	Green:      hex(0x4ade80),
	Gold:       hex(0xffab01),
	Amber:      hex(0xc4813a),
	Dim:        hex(0x505a79),
	Bright:     hex(0xe0e8ff),
	White:      hex(0xffffff),
	Lights:     [3]color.RGBA{hex(0xff5f57), hex(0xfebc2e), hex(0x28c840)},
}

func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// fade returns c with its alpha scaled by a, as a non-premultiplied color.
func fade(c color.RGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A)*a + 0.5)}
}
