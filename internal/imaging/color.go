package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// White is the background color the analysis measures against.
var White = RGBColor{R: 255, G: 255, B: 255}

// String formats the color as a tuple, e.g. "(255, 0, 0)".
func (c RGBColor) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the color as "#rrggbb".
func (c RGBColor) Hex() string {
	return c.Colorful().Hex()
}

// Colorful converts the color to go-colorful's float representation,
// which provides the perceptual color spaces.
func (c RGBColor) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// HSL returns the color in HSL space, truncated to whole units.
func (c RGBColor) HSL() HSLColor {
	h, s, l := c.Colorful().Hsl()
	return HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}

// ColorResult contains a color value in the representations reported to users.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// Describe expands the color into all reported representations.
func (c RGBColor) Describe() ColorResult {
	return ColorResult{Hex: c.Hex(), RGB: c, HSL: c.HSL()}
}

// PixelAt returns the RGB channels of an NRGBA pixel, ignoring alpha.
// No bounds checking is performed; caller must ensure coordinates are valid.
func PixelAt(img *image.NRGBA, x, y int) RGBColor {
	i := img.PixOffset(x, y)
	return RGBColor{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// FromColor converts any color.Color to 8-bit straight RGB.
func FromColor(c color.Color) RGBColor {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBColor{R: n.R, G: n.G, B: n.B}
}
