package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrDecode is matched by every error returned from Load.
var ErrDecode = errors.New("failed to open image")

// DecodeError reports a path that does not resolve to a readable, decodable image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to open image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) succeed for any *DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Load reads an image file and returns it with a normalized channel layout.
//
// Parameters:
//   - path: Absolute or relative file path to the image. Supported formats are
//     PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// Returns:
//   - *image.NRGBA: The decoded image, translated so its bounds start at (0,0).
//     EXIF orientation tags are applied, matching what a viewer displays.
//   - error: A *DecodeError if the file cannot be opened or decoded.
//
// Load does not cache. Each call owns the returned image exclusively.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return imaging.Clone(img), nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format guessed from the file extension: "png", "jpeg",
	// "gif", "bmp", "tiff", "webp" or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	// Zero if the file could not be stat'd.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Describe returns metadata about an already loaded image.
//
// The format is determined by file extension, not by sniffing contents,
// so a PNG saved as "x.jpg" is reported as "jpeg".
func Describe(path string, img image.Image) *ImageInfo {
	bounds := img.Bounds()

	var size int64
	if stat, err := os.Stat(path); err == nil {
		size = stat.Size()
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        formatFromExt(path),
		FileSizeBytes: size,
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	}
	return "unknown"
}
