package raster

import (
	"image"
	"image/color"
	"strings"

	"github.com/ivlev/scenereel/internal/scene"
)

// cardStyle is how one role looks on a title or outro card.
type cardStyle struct {
	scale float64 // text scale in units
	color color.RGBA
	alpha float64
	box   float64 // image box in design pixels
	gap   float64 // space below, design pixels
}

func (r *Rasterizer) cardStyle(role scene.Role) cardStyle {
	p := r.Palette
	switch role {
	case scene.RoleImage:
		return cardStyle{box: 120, gap: 24}
	case scene.RoleKicker:
		return cardStyle{scale: 1, color: p.Amber, alpha: 1, gap: 16}
	case scene.RoleHeading:
		return cardStyle{scale: 3, color: p.White, alpha: 1, gap: 12}
	case scene.RoleSubtitle:
		return cardStyle{scale: 1.5, color: p.White, alpha: 0.5, gap: 20}
	case scene.RoleLink:
		return cardStyle{scale: 1.2, color: p.Gold, alpha: 1, gap: 16}
	default:
		return cardStyle{scale: 1, color: p.White, alpha: 0.4, gap: 0}
	}
}

func (r *Rasterizer) drawCard(dst *image.RGBA, l scene.Layer) {
	u := r.unit()
	px := u / 2
	fillRect(dst, dst.Bounds(), fade(r.Palette.Card, l.Opacity))

	var stack []scene.Element
	var mascot *scene.Element
	for i, e := range l.Elements {
		if e.ID == "mascot" {
			mascot = &l.Elements[i]
			continue
		}
		stack = append(stack, e)
	}

	withQR := l.Scene == scene.Outro
	height := 0
	for _, e := range stack {
		height += r.elementHeight(e, u, px, withQR)
	}

	cx := r.Width / 2
	y := (r.Height - height) / 2
	for _, e := range stack {
		r.drawElement(dst, e, cx, y, u, px, l.Opacity, withQR)
		y += r.elementHeight(e, u, px, withQR)
	}

	if mascot != nil {
		if img := r.asset(mascot.Asset); img != nil {
			size := int(200 * px * mascot.Scale)
			mx := r.Width - int(40*px) - int(100*px)
			my := r.Height - int(40*px) - int(100*px) + int(mascot.OffsetY*px)
			drawImage(dst, fitBox(img, mx, my, size), img, l.Opacity*mascot.Opacity)
		}
	}
}

func (r *Rasterizer) elementHeight(e scene.Element, u, px float64, withQR bool) int {
	st := r.cardStyle(e.Role)
	h := int(st.gap * px)
	if e.Role == scene.RoleImage {
		return h + int(st.box*px)
	}
	h += textHeight(st.scale * u)
	if e.Role == scene.RoleLink && withQR {
		h += int(qrSize*px) + int(12*px)
	}
	return h
}

const qrSize = 160

func (r *Rasterizer) drawElement(dst *image.RGBA, e scene.Element, cx, y int, u, px, layerAlpha float64, withQR bool) {
	st := r.cardStyle(e.Role)
	a := layerAlpha * e.Opacity
	if a <= 0 {
		return
	}
	y += int(e.OffsetY * px)
	scale := e.Scale
	if scale <= 0 {
		scale = 1
	}

	if e.Role == scene.RoleImage {
		img := r.asset(e.Asset)
		if img == nil {
			return
		}
		box := int(st.box * px)
		drawImage(dst, fitBox(img, cx, y+box/2, int(float64(box)*scale)), img, a)
		return
	}

	if e.Role == scene.RoleLink && withQR {
		size := int(qrSize * px)
		if code := r.qr(linkURL(e.Text), size); code != nil {
			box := image.Rect(cx-size/2, y, cx-size/2+size, y+size)
			drawImage(dst, box, code, a)
		}
		y += size + int(12*px)
	}

	drawTextCentered(dst, e.Text, cx, y, st.scale*u*scale, fade(st.color, a*st.alpha))
}

// linkURL turns a displayed link into something a phone camera opens.
func linkURL(text string) string {
	if strings.Contains(text, "://") {
		return text
	}
	return "https://" + text
}
