package pixel

// Point is a floating-point 2D coordinate, used for polygon vertices
// recorded by DrawPoly.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned integer rectangle: origin (X, Y) plus a
// non-negative (W, H). A rect with W==0 or H==0 is Empty.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers zero area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns X+W.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns Y+H.
func (r Rect) Bottom() int { return r.Y + r.H }

// Overlaps reports whether r and o share any area or touch along an edge
// or corner, using the same inclusive-edge test as the original
// rencache.c rects_overlap.
func (r Rect) Overlaps(o Rect) bool {
	return o.X+o.W >= r.X && o.X <= r.X+r.W &&
		o.Y+o.H >= r.Y && o.Y <= r.Y+r.H
}

// Intersect returns the intersection of r and o. The result is Empty
// (zero W or H) when they don't overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.W, o.X+o.W)
	y2 := min(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: max(0, x2-x1), H: max(0, y2-y1)}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	x1 := min(r.X, o.X)
	y1 := min(r.Y, o.Y)
	x2 := max(r.X+r.W, o.X+o.W)
	y2 := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Contains reports whether the point (x, y) lies within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
