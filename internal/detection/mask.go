package detection

import (
	"image"

	"github.com/ironsheep/shape-census/internal/imaging"
)

// WhiteDistanceThreshold is the Euclidean distance from pure white, on the
// 0-255 channel scale, that a pixel must strictly exceed to be foreground.
const WhiteDistanceThreshold = 25

// Mask is a binary foreground/background classification of an image.
// Cells are stored row-major; (0,0) is the top-left pixel.
type Mask struct {
	Width  int
	Height int
	cells  []bool
}

// NewMask creates an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// At reports whether (x, y) is foreground. Out-of-range coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.cells[y*m.Width+x]
}

// Set marks (x, y) as foreground or background.
// No bounds checking is performed; caller must ensure coordinates are valid.
func (m *Mask) Set(x, y int, v bool) {
	m.cells[y*m.Width+x] = v
}

// Count returns the number of foreground cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.cells {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.Width, m.Height)
	copy(c.cells, m.cells)
	return c
}

// ForegroundMask classifies every pixel of img as foreground when its
// Euclidean distance from pure white is strictly greater than
// WhiteDistanceThreshold.
//
// The comparison is done on squared distances in int arithmetic, so
// 255 minus a small channel value never wraps and the boundary is exact.
func ForegroundMask(img *image.NRGBA) *Mask {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	mask := NewMask(width, height)

	const limit = WhiteDistanceThreshold * WhiteDistanceThreshold
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if whiteDistanceSq(imaging.PixelAt(img, x+bounds.Min.X, y+bounds.Min.Y)) > limit {
				mask.Set(x, y, true)
			}
		}
	}

	return mask
}

func whiteDistanceSq(c imaging.RGBColor) int {
	dr := int(c.R) - 255
	dg := int(c.G) - 255
	db := int(c.B) - 255
	return dr*dr + dg*dg + db*db
}
