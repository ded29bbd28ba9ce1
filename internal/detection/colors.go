package detection

import (
	"fmt"
	"image"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/shape-census/internal/imaging"
)

// MeanColor computes the per-channel arithmetic mean of a component's
// pixels in img, rounded to the nearest integer (halves to even).
//
// Component coordinates are relative to img's bounds. A component with no
// pixels yields black.
func MeanColor(img *image.NRGBA, c Component) imaging.RGBColor {
	if len(c.Pixels) == 0 {
		return imaging.RGBColor{}
	}

	bounds := img.Bounds()
	rs := make([]float64, len(c.Pixels))
	gs := make([]float64, len(c.Pixels))
	bs := make([]float64, len(c.Pixels))
	for i, p := range c.Pixels {
		px := imaging.PixelAt(img, p.X+bounds.Min.X, p.Y+bounds.Min.Y)
		rs[i] = float64(px.R)
		gs[i] = float64(px.G)
		bs[i] = float64(px.B)
	}

	return imaging.RGBColor{
		R: roundChannel(stat.Mean(rs, nil)),
		G: roundChannel(stat.Mean(gs, nil)),
		B: roundChannel(stat.Mean(bs, nil)),
	}
}

// MeanColors returns MeanColor for each component, in component order.
func MeanColors(img *image.NRGBA, components []Component) []imaging.RGBColor {
	colors := make([]imaging.RGBColor, len(components))
	for i, c := range components {
		colors[i] = MeanColor(img, c)
	}
	return colors
}

func roundChannel(v float64) uint8 {
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Metric selects how the distance between two colors is measured.
type Metric string

const (
	// MetricRGB is the Euclidean distance over 0-255 R, G and B channels.
	MetricRGB Metric = "rgb"

	// MetricLab is the CIE76 ΔE, Euclidean distance in CIE L*a*b* with
	// L* on a 0-100 scale.
	MetricLab Metric = "lab"

	// MetricCIEDE2000 is the CIEDE2000 ΔE on the same scale as MetricLab.
	MetricCIEDE2000 Metric = "ciede2000"
)

// ParseMetric converts a case-insensitive metric name. The empty string
// selects MetricRGB.
func ParseMetric(name string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(name))) {
	case "", MetricRGB:
		return MetricRGB, nil
	case MetricLab:
		return MetricLab, nil
	case MetricCIEDE2000:
		return MetricCIEDE2000, nil
	}
	return "", fmt.Errorf("unknown color metric %q (want rgb, lab or ciede2000)", name)
}

// Distance measures how far apart two colors are under metric m.
// Unknown metrics fall back to MetricRGB.
func (m Metric) Distance(a, b imaging.RGBColor) float64 {
	switch m {
	case MetricLab:
		return a.Colorful().DistanceLab(b.Colorful()) * 100
	case MetricCIEDE2000:
		return a.Colorful().DistanceCIEDE2000(b.Colorful()) * 100
	}
	// Square root of an exact integer sum: correctly rounded, so integer
	// distances come out exact and ties at the tolerance compare equal.
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}

// ColorCluster is a group of shape colors represented by its first member.
type ColorCluster struct {
	// Anchor is the first color that created the cluster. It is never
	// re-centered as later colors join.
	Anchor imaging.RGBColor `json:"anchor"`

	// Members is the number of input colors assigned to this cluster,
	// including the anchor.
	Members int `json:"members"`
}

// DedupColors greedily clusters colors in input order.
//
// Each color is compared with every existing anchor. If the smallest
// distance is strictly greater than tol, the color becomes a new anchor;
// otherwise it joins the nearest cluster (first one on ties) and the anchor
// stays as is. A distance exactly equal to tol therefore merges.
//
// Parameters:
//   - colors: Shape colors in component discovery order.
//   - tol: Maximum distance for two colors to count as the same.
//   - metric: Distance function; see Metric.
//
// Returns the clusters in creation order. len(result) <= len(colors).
func DedupColors(colors []imaging.RGBColor, tol float64, metric Metric) []ColorCluster {
	clusters, _ := Assign(colors, tol, metric)
	return clusters
}

// Assign runs the same clustering as DedupColors and also returns, for each
// input color, the index of the cluster it was placed in.
func Assign(colors []imaging.RGBColor, tol float64, metric Metric) ([]ColorCluster, []int) {
	clusters := make([]ColorCluster, 0)
	assignment := make([]int, len(colors))

	for j, c := range colors {
		if len(clusters) == 0 {
			clusters = append(clusters, ColorCluster{Anchor: c, Members: 1})
			continue
		}

		nearest := 0
		minDist := math.Inf(1)
		for i, cl := range clusters {
			if d := metric.Distance(c, cl.Anchor); d < minDist {
				minDist = d
				nearest = i
			}
		}

		if minDist > tol {
			clusters = append(clusters, ColorCluster{Anchor: c, Members: 1})
			assignment[j] = len(clusters) - 1
		} else {
			clusters[nearest].Members++
			assignment[j] = nearest
		}
	}

	return clusters, assignment
}

// Anchors returns the anchor colors of clusters, in order.
func Anchors(clusters []ColorCluster) []imaging.RGBColor {
	out := make([]imaging.RGBColor, len(clusters))
	for i, cl := range clusters {
		out[i] = cl.Anchor
	}
	return out
}
