package detection

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive)
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Component is a maximal 8-connected set of foreground mask cells.
//
// Components are created by LabelComponents and never modified afterwards.
type Component struct {
	// ID is the 1-based discovery index within one labeling run.
	// 0 is reserved for background.
	ID int `json:"id"`

	// Area is the number of member pixels.
	Area int `json:"area"`

	// Bounds is the bounding box enclosing all member pixels.
	Bounds Bounds `json:"bounds"`

	// Pixels lists the member coordinates in flood-fill visiting order.
	Pixels []Point `json:"-"`
}

// LabelComponents finds all 8-connected foreground regions of a mask.
//
// The mask is scanned row-major and a region is labeled when its first
// (topmost, then leftmost) pixel is reached, so IDs increase in that order.
// Every foreground cell belongs to exactly one returned component.
//
// # Algorithm
//
//  1. Scan: visit cells top to bottom, left to right
//  2. Fill: on an unvisited foreground cell, flood-fill its region with
//     8-connectivity (edges and corners)
//  3. Measure: record area and bounding box while filling
func LabelComponents(m *Mask) []Component {
	visited := make([]bool, m.Width*m.Height)
	components := make([]Component, 0)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.cells[y*m.Width+x] && !visited[y*m.Width+x] {
				pixels := floodFill(m, visited, x, y)
				components = append(components, Component{
					ID:     len(components) + 1,
					Area:   len(pixels),
					Bounds: boundsOf(pixels),
					Pixels: pixels,
				})
			}
		}
	}

	return components
}

// FilterByArea keeps the components whose area is at least minArea,
// preserving order. Components below the threshold are treated as noise.
func FilterByArea(components []Component, minArea int) []Component {
	kept := make([]Component, 0, len(components))
	for _, c := range components {
		if c.Area >= minArea {
			kept = append(kept, c)
		}
	}
	return kept
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large regions. Marks visited cells and returns the region's pixels.
// Uses 8-connectivity (includes diagonal neighbors).
func floodFill(m *Mask, visited []bool, startX, startY int) []Point {
	pixels := make([]Point, 0)
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= m.Width || p.Y < 0 || p.Y >= m.Height {
			continue
		}
		i := p.Y*m.Width + p.X
		if visited[i] || !m.cells[i] {
			continue
		}

		visited[i] = true
		pixels = append(pixels, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return pixels
}

func boundsOf(pixels []Point) Bounds {
	if len(pixels) == 0 {
		return Bounds{}
	}
	b := Bounds{X1: pixels[0].X, Y1: pixels[0].Y, X2: pixels[0].X + 1, Y2: pixels[0].Y + 1}
	for _, p := range pixels[1:] {
		if p.X < b.X1 {
			b.X1 = p.X
		}
		if p.X+1 > b.X2 {
			b.X2 = p.X + 1
		}
		if p.Y < b.Y1 {
			b.Y1 = p.Y
		}
		if p.Y+1 > b.Y2 {
			b.Y2 = p.Y + 1
		}
	}
	return b
}
