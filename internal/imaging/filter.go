package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

// Denoise applies a median filter of the given radius.
//
// A median keeps flat fills flat while removing salt-and-pepper and JPEG
// ringing near shape edges. A radius <= 0 returns an unmodified copy.
//
// Alpha is ignored throughout the pipeline, so pixels are made opaque before
// filtering; otherwise the filter's premultiplied output would change the
// straight RGB values of translucent pixels.
func Denoise(img image.Image, radius float64) *image.NRGBA {
	if radius <= 0 {
		return imaging.Clone(img)
	}
	return imaging.Clone(effect.Median(opaque(img), radius))
}

// opaque returns a copy of img with its straight RGB values kept and every
// alpha set to 255.
func opaque(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
