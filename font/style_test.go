package font

import "testing"

func TestStyleHas(t *testing.T) {
	s := StyleBold | StyleItalic
	if !s.Has(StyleBold) {
		t.Error("expected StyleBold to be set")
	}
	if !s.Has(StyleItalic) {
		t.Error("expected StyleItalic to be set")
	}
	if s.Has(StyleUnderline) {
		t.Error("did not expect StyleUnderline to be set")
	}
	if !s.Has(StyleBold | StyleItalic) {
		t.Error("expected the combined mask to be reported as set")
	}
}

func TestAntialiasingPhases(t *testing.T) {
	if got := AntialiasNone.phases(); got != 1 {
		t.Errorf("AntialiasNone.phases() = %d, want 1", got)
	}
	if got := AntialiasGrayscale.phases(); got != 1 {
		t.Errorf("AntialiasGrayscale.phases() = %d, want 1", got)
	}
	if got := AntialiasSubpixel.phases(); got != subpixelPhases {
		t.Errorf("AntialiasSubpixel.phases() = %d, want %d", got, subpixelPhases)
	}
}

func TestApplyStyleItalicShearsProportionallyToY(t *testing.T) {
	x, y := applyStyle(0, 100, StyleItalic, 1000)
	if y != 100 {
		t.Errorf("italic shear should not alter y, got %v", y)
	}
	if x != 25 {
		t.Errorf("applyStyle(0, 100, italic) x = %v, want 25 (0.25 shear)", x)
	}
}

func TestApplyStyleBoldEmboldensXOnly(t *testing.T) {
	x, y := applyStyle(64, 64, StyleBold, 1000)
	if y != 64 {
		t.Errorf("bold should not alter y, got %v", y)
	}
	if x <= 64 {
		t.Errorf("bold should widen x beyond its input, got %v", x)
	}
}

func TestApplyStyleSmoothEmboldensBothAxes(t *testing.T) {
	x, y := applyStyle(64, 64, StyleSmooth, 1000)
	if x <= 64 || y <= 64 {
		t.Errorf("smooth should widen both axes, got x=%v y=%v", x, y)
	}
}

func TestApplyStyleNoneIsIdentity(t *testing.T) {
	x, y := applyStyle(42, 17, 0, 1000)
	if x != 42 || y != 17 {
		t.Errorf("applyStyle with no style bits should be the identity, got x=%v y=%v", x, y)
	}
}

func TestTabDefaultSize(t *testing.T) {
	var tab Tab
	if tab.Size != 0 {
		t.Errorf("zero-value Tab.Size = %d, want 0 (caller substitutes the group default)", tab.Size)
	}
}
