package pixel

import (
	"math"
	"sort"
)

// FillPolygon rasterizes points as a filled polygon using a standard
// even-odd scanline fill: for each row, find the x-intersections with
// every edge, sort them, and fill the spans between alternating pairs.
// The original computed only the polygon's bounding box in rencache
// (ren_poly_cbox) and deferred the actual fill to the platform renderer;
// this is that fill, implemented directly against a Surface since there
// is no separate platform backend here.
func FillPolygon(s *Surface, points []Point, color Color) {
	if len(points) < 3 {
		return
	}
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	clip := s.Clip()
	startY := int(math.Max(math.Floor(minY), float64(clip.Y)))
	endY := int(math.Min(math.Ceil(maxY), float64(clip.Bottom())))

	n := len(points)
	var xs []float64
	for y := startY; y < endY; y++ {
		scanY := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < n; i++ {
			a, b := points[i], points[(i+1)%n]
			if (a.Y <= scanY && b.Y > scanY) || (b.Y <= scanY && a.Y > scanY) {
				t := (scanY - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Round(xs[i]))
			x1 := int(math.Round(xs[i+1]))
			if x1 > x0 {
				s.FillRect(Rect{X: x0, Y: y, W: x1 - x0, H: 1}, color, false)
			}
		}
	}
}

// PolyBounds returns the integer bounding box of points, the value
// draw_poly returns to its caller alongside performing the fill —
// ren_poly_cbox's original role, kept as a standalone helper so the
// frame pipeline can compute it for hashing without re-deriving the fill.
func PolyBounds(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
