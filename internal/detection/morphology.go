package detection

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// kernelRadius selects a 3x3 square structuring element. bild pads the image
// by repeating its edge pixels, so cells outside the mask never change the
// result: the image border neither erodes a shape nor grows one.
const kernelRadius = 1

// Erode keeps a cell foreground only if every in-bounds cell of its 3x3
// neighborhood is foreground.
func Erode(m *Mask) *Mask {
	if m.empty() {
		return m.Clone()
	}
	return maskFromImage(effect.Erode(m.toImage(), kernelRadius))
}

// Dilate marks a cell foreground if any in-bounds cell of its 3x3
// neighborhood is foreground.
func Dilate(m *Mask) *Mask {
	if m.empty() {
		return m.Clone()
	}
	return maskFromImage(effect.Dilate(m.toImage(), kernelRadius))
}

// Open is erosion followed by dilation. It removes foreground specks
// smaller than the 3x3 neighborhood.
func Open(m *Mask) *Mask {
	return Dilate(Erode(m))
}

// Close is dilation followed by erosion. It fills background holes and
// gaps smaller than the 3x3 neighborhood.
func Close(m *Mask) *Mask {
	return Erode(Dilate(m))
}

// Clean applies one opening then one closing.
func Clean(m *Mask) *Mask {
	return Close(Open(m))
}

func (m *Mask) empty() bool {
	return m.Width <= 0 || m.Height <= 0
}

// toImage renders the mask as grayscale: foreground white, background black.
func (m *Mask) toImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.cells {
		if v {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// maskFromImage reads a rendered mask back; a pixel is foreground when its
// red channel is in the upper half.
func maskFromImage(img *image.RGBA) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if img.Pix[img.PixOffset(x+bounds.Min.X, y+bounds.Min.Y)] >= 0x80 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
