// Package raster turns composed scene layers into RGBA frames.
package raster

import (
	"image"
	"image/color"
	"sync"

	"github.com/ivlev/scenereel/internal/assets"
	"github.com/ivlev/scenereel/internal/scene"
	"github.com/skip2/go-qrcode"
)

// Rasterizer draws layers onto a fixed-size canvas. It keeps no per-frame
// state, so one Rasterizer can serve many goroutines.
type Rasterizer struct {
	Width, Height int
	Palette       Palette
	Assets        *assets.Store

	mu  sync.Mutex
	qrs map[qrKey]image.Image
}

type qrKey struct {
	url  string
	size int
}

func New(width, height int, store *assets.Store) *Rasterizer {
	return &Rasterizer{
		Width:   width,
		Height:  height,
		Palette: DefaultPalette,
		Assets:  store,
		qrs:     make(map[qrKey]image.Image),
	}
}

// Bounds is the canvas rectangle.
func (r *Rasterizer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// unit is the text scale: one basicfont pixel per 360 lines of output.
func (r *Rasterizer) unit() float64 {
	u := float64(min(r.Width, r.Height)) / 360
	if u < 1 {
		u = 1
	}
	return u
}

// Draw paints layers bottom first onto dst, clearing it to black.
func (r *Rasterizer) Draw(dst *image.RGBA, layers []scene.Layer) {
	fillRect(dst, dst.Bounds(), color.Black)
	for _, l := range layers {
		if l.Opacity <= 0 {
			continue
		}
		switch l.Scene {
		case scene.Terminal:
			r.drawTerminal(dst, l)
		case scene.Title, scene.Outro:
			r.drawCard(dst, l)
		}
	}
}

// Frame allocates a canvas and draws layers onto it.
func (r *Rasterizer) Frame(layers []scene.Layer) *image.RGBA {
	dst := image.NewRGBA(r.Bounds())
	r.Draw(dst, layers)
	return dst
}

func (r *Rasterizer) asset(id string) image.Image {
	if r.Assets == nil {
		return nil
	}
	return r.Assets.Get(id)
}

// qr returns a cached QR code for url at the given size.
func (r *Rasterizer) qr(url string, size int) image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := qrKey{url, size}
	if img, ok := r.qrs[key]; ok {
		return img
	}
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		r.qrs[key] = nil
		return nil
	}
	code.DisableBorder = true
	code.BackgroundColor = r.Palette.Card
	code.ForegroundColor = r.Palette.Gold
	img := code.Image(size)
	r.qrs[key] = img
	return img
}
