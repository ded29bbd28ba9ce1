// Package imaging provides image loading and pixel-level helpers for the
// shape census pipeline.
//
// This package decodes raster files into a normalized in-memory form and
// offers the small set of image operations the analysis needs before it
// starts classifying pixels: region cropping, median denoising and color
// formatting. All operations work with standard Go image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Pixel Representation
//
// Every loaded image is converted to *image.NRGBA so that callers can read
// straight (non-premultiplied) 8-bit red, green and blue channels in a fixed
// order, whatever the source format stored. The alpha channel is carried but
// ignored by the analysis.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Error Handling
//
// A file that cannot be opened or decoded produces a *DecodeError, which
// matches ErrDecode with errors.Is. Invalid region strings are
// reported with descriptive errors.
package imaging
