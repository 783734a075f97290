package pixel

import "testing"

func TestBlendFullyTransparentIsNoop(t *testing.T) {
	dst := Color{R: 10, G: 20, B: 30, A: 255}
	src := Color{R: 255, G: 255, B: 255, A: 0}
	if got := Blend(dst, src, 255); got != dst {
		t.Errorf("Blend() = %+v, want unchanged dst %+v", got, dst)
	}
}

func TestBlendFullyOpaqueReplacesDst(t *testing.T) {
	dst := Color{R: 10, G: 20, B: 30, A: 255}
	src := Color{R: 200, G: 100, B: 50, A: 255}
	if got := Blend(dst, src, 255); got != src {
		t.Errorf("Blend() = %+v, want src %+v", got, src)
	}
}

func TestBlendHalfAlphaAveragesRoughly(t *testing.T) {
	dst := Color{R: 0, G: 0, B: 0, A: 255}
	src := Color{R: 200, G: 200, B: 200, A: 128}
	got := Blend(dst, src, 255)
	if got.R < 90 || got.R > 110 {
		t.Errorf("Blend() R = %d, want roughly half of 200", got.R)
	}
}

func TestOpaqueSetsFullAlpha(t *testing.T) {
	c := Opaque(1, 2, 3)
	if c.A != 255 {
		t.Errorf("Opaque() A = %d, want 255", c.A)
	}
}
