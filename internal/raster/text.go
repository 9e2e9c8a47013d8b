package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

const glyphH = 13

// textWidth is the width of s in pixels at the given scale.
func textWidth(s string, scale float64) int {
	return int(float64(font.MeasureString(face, s).Ceil()) * scale)
}

func textHeight(scale float64) int {
	return int(glyphH * scale)
}

// drawText draws s with its top-left corner at (x, y). The bitmap face is
// rendered at its native size and scaled up, so every size shares one font.
func drawText(dst *image.RGBA, s string, x, y int, scale float64, c color.Color) {
	if s == "" || scale <= 0 {
		return
	}
	w := font.MeasureString(face, s).Ceil()
	if w <= 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, glyphH))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)

	target := image.Rect(x, y, x+int(float64(w)*scale), y+textHeight(scale))
	if target.Empty() {
		return
	}
	scaled := image.NewAlpha(image.Rect(0, 0, target.Dx(), target.Dy()))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), mask, mask.Bounds(), draw.Src, nil)
	draw.DrawMask(dst, target, image.NewUniform(c), image.Point{}, scaled, image.Point{}, draw.Over)
}

// drawTextCentered centers s horizontally on cx.
func drawTextCentered(dst *image.RGBA, s string, cx, y int, scale float64, c color.Color) {
	drawText(dst, s, cx-textWidth(s, scale)/2, y, scale, c)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// drawImage scales src into r with a uniform opacity.
func drawImage(dst *image.RGBA, r image.Rectangle, src image.Image, alpha float64) {
	if src == nil || r.Empty() || alpha <= 0 {
		return
	}
	opts := &draw.Options{
		SrcMask: image.NewUniform(color.Alpha{A: uint8(clamp01(alpha)*255 + 0.5)}),
	}
	draw.ApproxBiLinear.Scale(dst, r, src, src.Bounds(), draw.Over, opts)
}

// fitBox returns the largest rectangle with src's aspect ratio inside a
// size×size square centered on (cx, cy).
func fitBox(src image.Image, cx, cy, size int) image.Rectangle {
	b := src.Bounds()
	w, h := size, size
	if b.Dx() > b.Dy() {
		h = size * b.Dy() / b.Dx()
	} else if b.Dy() > b.Dx() {
		w = size * b.Dx() / b.Dy()
	}
	return image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
