package assets

import (
	"image"
	"image/color"
	"math"
)

// DefaultEdgeThreshold is the Sobel gradient magnitude counted as an edge.
const DefaultEdgeThreshold = 30.0

// ContentBounds finds the smallest rectangle holding every contrast edge of
// img composited over black. Transparent margins and flat borders fall
// outside it. An image without edges keeps its full bounds.
func ContentBounds(img image.Image, threshold float64) image.Rectangle {
	gray := toGrayscale(img)
	b := gray.Bounds()

	var box image.Rectangle
	found := false
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		for x := b.Min.X + 1; x < b.Max.X-1; x++ {
			if sobel(gray, x, y) <= threshold {
				continue
			}
			r := image.Rect(x-1, y-1, x+2, y+2)
			if found {
				box = box.Union(r)
			} else {
				box, found = r, true
			}
		}
	}

	if !found {
		return b
	}
	return box.Intersect(b)
}

// trim crops img to its content when the image type allows it.
func trim(img image.Image) image.Image {
	r := ContentBounds(img, DefaultEdgeThreshold)
	if r == img.Bounds() || r.Empty() {
		return img
	}
	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return img
	}
	return sub.SubImage(r)
}

// toGrayscale uses premultiplied values, so transparent pixels come out black.
func toGrayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}

	return gray
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// sobel is the gradient magnitude at (x, y). The caller keeps x and y one
// pixel inside the bounds.
func sobel(gray *image.Gray, x, y int) float64 {
	var sumX, sumY float64
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			pixel := float64(gray.GrayAt(x+kx, y+ky).Y)
			sumX += pixel * sobelX[ky+1][kx+1]
			sumY += pixel * sobelY[ky+1][kx+1]
		}
	}
	return math.Sqrt(sumX*sumX + sumY*sumY)
}
