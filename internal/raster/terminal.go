package raster

import (
	"image"
	"image/color"

	"github.com/ivlev/scenereel/internal/scene"
)

func (r *Rasterizer) roleColor(role scene.Role) color.RGBA {
	p := r.Palette
	switch role {
	case scene.RolePrompt:
		return p.Green
	case scene.RoleBright:
		return p.Bright
	case scene.RoleError:
		return p.Amber
	case scene.RoleSound:
		return p.Gold
	default:
		return p.Dim
	}
}

func (r *Rasterizer) drawTerminal(dst *image.RGBA, l scene.Layer) {
	u := r.unit()
	px := u / 2
	pad := int(12 * u)
	footer := int(24 * u)
	alpha := l.Opacity

	win := image.Rect(pad, pad, r.Width-pad, r.Height-pad-footer)
	fillRect(dst, win, fade(r.Palette.Background, alpha))

	bar := image.Rect(win.Min.X, win.Min.Y, win.Max.X, win.Min.Y+int(16*u))
	fillRect(dst, bar, fade(r.Palette.Bar, alpha))
	dot := int(6 * u)
	for i, c := range r.Palette.Lights {
		x := win.Min.X + int(8*u) + i*int(10*u)
		y := bar.Min.Y + (bar.Dy()-dot)/2
		fillRect(dst, image.Rect(x, y, x+dot, y+dot), fade(c, alpha))
	}
	drawTextCentered(dst, l.Status, (win.Min.X+win.Max.X)/2, bar.Min.Y+(bar.Dy()-textHeight(u))/2, u, fade(r.Palette.Dim, alpha))

	scale := u * 1.25
	lh := int(float64(textHeight(scale)) * 1.35)
	x0 := win.Min.X + int(12*u)
	y0 := bar.Max.Y + int(10*u)

	lines := l.Lines
	if rows := (win.Max.Y - int(10*u) - y0) / lh; rows > 0 && len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i, line := range lines {
		y := y0 + i*lh + int(line.OffsetY*px)
		r.drawLine(dst, line, x0, y, scale, px, alpha*line.Opacity)
	}

	r.drawBranding(dst, l.Elements, pad, r.Height-pad-footer/2, px, alpha)
}

func (r *Rasterizer) drawLine(dst *image.RGBA, line scene.Line, x, y int, scale, px, alpha float64) {
	if alpha <= 0 {
		return
	}
	c := fade(r.roleColor(line.Role), alpha)
	drawText(dst, line.Text, x, y, scale, c)
	end := x + textWidth(line.Text, scale)

	block := image.Rect(end+int(px), y, end+int(px)+int(10*px), y+textHeight(scale))
	if line.Caret || (line.Cursor && line.CursorVisible) {
		fillRect(dst, block, fade(r.Palette.Green, alpha))
	}

	if b := line.Badge; b != nil && b.Label != "" {
		bs := scale * 0.8 * b.Scale
		bx := end + int(12*px)
		by := y + (textHeight(scale)-textHeight(bs))/2
		drawText(dst, b.Label, bx, by, bs, fade(r.Palette.Dim, alpha*clamp01(b.Opacity)))
	}
}

// drawBranding lays out the small portrait and handle left to right,
// vertically centered on cy.
func (r *Rasterizer) drawBranding(dst *image.RGBA, elems []scene.Element, x, cy int, px, alpha float64) {
	for _, e := range elems {
		a := alpha * e.Opacity
		switch e.Role {
		case scene.RoleImage:
			size := int(36 * px)
			if img := r.asset(e.Asset); img != nil {
				box := fitBox(img, x+size/2, cy, size)
				drawImage(dst, box, img, a)
			}
			x += size + int(10*px)
		default:
			s := px * 1.5
			drawText(dst, e.Text, x, cy-textHeight(s)/2, s, fade(r.Palette.White, a*0.4))
			x += textWidth(e.Text, s) + int(10*px)
		}
	}
}
