package pixel

import "testing"

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 10, 10}, false},
		{"touching edge", Rect{0, 0, 10, 10}, Rect{10, 10, 10, 10}, true},
		{"contained", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, true},
		{"identical", Rect{5, 5, 5, 5}, Rect{5, 5, 5, 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() symmetric = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{5, 5, 10, 10}
	got := a.Intersect(b)
	want := Rect{5, 5, 5, 5}
	if got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}

	disjoint := a.Intersect(Rect{100, 100, 10, 10})
	if !disjoint.Empty() {
		t.Errorf("Intersect() of disjoint rects should be Empty, got %+v", disjoint)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	b := Rect{20, 20, 10, 10}
	got := a.Union(b)
	want := Rect{0, 0, 30, 30}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	if !r.Contains(0, 0) {
		t.Error("expected origin to be contained")
	}
	if r.Contains(10, 10) {
		t.Error("Contains should be exclusive of the far edge")
	}
	if r.Contains(-1, 0) {
		t.Error("expected negative coordinate to be outside")
	}
}
