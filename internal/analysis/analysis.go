// Package analysis wires image loading and shape detection into the single
// pass that counts shapes and their distinct colors.
package analysis

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/ironsheep/shape-census/internal/detection"
	"github.com/ironsheep/shape-census/internal/imaging"
)

// Default parameter values.
const (
	DefaultMinArea  = 300
	DefaultColorTol = 45.0
)

// Options tunes one analysis run.
type Options struct {
	// MinArea is the smallest pixel area a component needs to count as a shape.
	MinArea int

	// ColorTol is the largest distance at which two shape colors are the same.
	ColorTol float64

	// Metric selects the color distance; the zero value means RGB.
	Metric detection.Metric

	// Region restricts analysis to a sub-rectangle. Nil analyzes the whole image.
	Region *imaging.Region

	// MedianRadius applies a median pre-filter when > 0.
	MedianRadius float64
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MinArea:  DefaultMinArea,
		ColorTol: DefaultColorTol,
		Metric:   detection.MetricRGB,
	}
}

// Shape describes one component that survived the area filter.
type Shape struct {
	ID      int                 `json:"id"`
	Area    int                 `json:"area"`
	Bounds  detection.Bounds    `json:"bounds"`
	Color   imaging.ColorResult `json:"color"`
	Cluster int                 `json:"cluster"` // Index into Result.Clusters
}

// Result is the outcome of one analysis.
type Result struct {
	// Image describes the analyzed file. Nil when analyzing an in-memory image.
	Image *imaging.ImageInfo `json:"image,omitempty"`

	// ShapeCount is the number of components with area >= MinArea.
	ShapeCount int `json:"shape_count"`

	// ColorCount is the number of color clusters.
	ColorCount int `json:"color_count"`

	// Colors holds the cluster anchors in creation order.
	Colors []imaging.RGBColor `json:"colors"`

	// Clusters holds the anchors together with member counts.
	Clusters []detection.ColorCluster `json:"clusters"`

	// Shapes lists the surviving components in discovery order.
	Shapes []Shape `json:"shapes"`
}

// Analyzer runs the shape census pipeline. Each call owns its own image and
// intermediate buffers; an Analyzer keeps no state between calls.
type Analyzer struct {
	opts   Options
	logger *log.Logger
}

// New creates an Analyzer. A nil logger discards debug output.
func New(opts Options, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.Metric == "" {
		opts.Metric = detection.MetricRGB
	}
	return &Analyzer{opts: opts, logger: logger}
}

// Options returns the options the analyzer runs with.
func (a *Analyzer) Options() Options {
	return a.opts
}

// AnalyzeFile loads the image at path and analyzes it.
//
// If the file cannot be opened or decoded, the *imaging.DecodeError from
// the loader is returned unchanged and no analysis is attempted.
func (a *Analyzer) AnalyzeFile(path string) (*Result, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}

	info := imaging.Describe(path, img)
	a.logger.Printf("Loaded %s: %dx%d %s, %d bytes", path, info.Width, info.Height, info.Format, info.FileSizeBytes)

	res, err := a.Analyze(img)
	if err != nil {
		return nil, err
	}
	res.Image = info
	return res, nil
}

// Analyze counts shapes and distinct colors in img.
//
// # Pipeline
//
//  1. Optional region crop and median pre-filter
//  2. Foreground mask: distance from white > detection.WhiteDistanceThreshold
//  3. Cleaning: 3x3 opening then closing
//  4. Labeling: 8-connected components, area >= MinArea
//  5. Averaging: mean color per component
//  6. Deduplication: greedy anchor clustering within ColorTol
//
// The only error comes from an invalid Region.
func (a *Analyzer) Analyze(img image.Image) (*Result, error) {
	src := img
	if a.opts.Region != nil {
		cropped, err := imaging.Crop(img, *a.opts.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to crop image: %w", err)
		}
		a.logger.Printf("Cropped to region %s", a.opts.Region)
		src = cropped
	}
	rgb := imaging.Denoise(src, a.opts.MedianRadius)

	mask := detection.ForegroundMask(rgb)
	a.logger.Printf("Foreground pixels: %d", mask.Count())

	mask = detection.Clean(mask)
	a.logger.Printf("Foreground pixels after cleaning: %d", mask.Count())

	all := detection.LabelComponents(mask)
	components := detection.FilterByArea(all, a.opts.MinArea)
	a.logger.Printf("Components: %d labeled, %d with area >= %d", len(all), len(components), a.opts.MinArea)

	colors := detection.MeanColors(rgb, components)
	clusters, assignment := detection.Assign(colors, a.opts.ColorTol, a.opts.Metric)
	a.logger.Printf("Colors: %d clusters within %s tolerance %g", len(clusters), a.opts.Metric, a.opts.ColorTol)

	shapes := make([]Shape, len(components))
	for i, c := range components {
		shapes[i] = Shape{
			ID:      c.ID,
			Area:    c.Area,
			Bounds:  c.Bounds,
			Color:   colors[i].Describe(),
			Cluster: assignment[i],
		}
	}

	return &Result{
		ShapeCount: len(components),
		ColorCount: len(clusters),
		Colors:     detection.Anchors(clusters),
		Clusters:   clusters,
		Shapes:     shapes,
	}, nil
}
