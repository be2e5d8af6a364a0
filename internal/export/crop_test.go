package export

import (
	"math"
	"testing"
)

func TestCenterCropRect_WiderSource(t *testing.T) {
	// 4000x3000 into a 1080x1080 frame: trim the sides, keep full height.
	r := CenterCropRect(4000, 3000, 1080, 1080)
	if r.Height != 3000 || r.Width != 3000 {
		t.Fatalf("expected 3000x3000 sample, got %gx%g", r.Width, r.Height)
	}
	if r.X != 500 || r.Y != 0 {
		t.Fatalf("expected offset (500, 0), got (%g, %g)", r.X, r.Y)
	}
}

func TestCenterCropRect_TallerSource(t *testing.T) {
	// 1000x2000 into a 1920x1080 frame: trim top/bottom, keep full width.
	r := CenterCropRect(1000, 2000, 1920, 1080)
	if r.Width != 1000 {
		t.Fatalf("expected full width 1000, got %g", r.Width)
	}
	wantH := 1000 / (1920.0 / 1080.0)
	if math.Abs(r.Height-wantH) > 1e-9 {
		t.Fatalf("expected height %g, got %g", wantH, r.Height)
	}
	if r.X != 0 {
		t.Fatalf("expected no horizontal offset, got %g", r.X)
	}
	if math.Abs(r.Y-(2000-wantH)/2) > 1e-9 {
		t.Fatalf("expected centered vertical offset, got %g", r.Y)
	}
}

func TestCenterCropRect_EqualRatios(t *testing.T) {
	r := CenterCropRect(2000, 1000, 200, 100)
	if r.X != 0 || r.Y != 0 || r.Width != 2000 || r.Height != 1000 {
		t.Fatalf("expected full source rectangle, got %+v", r)
	}
}

// The crop is always centered: margins on opposing edges are symmetric.
func TestCenterCropRect_Centered(t *testing.T) {
	sources := []struct{ w, h float64 }{
		{4000, 3000}, {3000, 4000}, {1234, 567}, {567, 1234}, {1080, 1080},
	}
	targets := []struct{ w, h float64 }{
		{1080, 1080}, {1080, 1920}, {1920, 1080}, {500, 333},
	}
	for _, s := range sources {
		for _, d := range targets {
			r := CenterCropRect(s.w, s.h, d.w, d.h)
			if math.Abs(r.X-(s.w-r.Width)/2) > 1e-9 {
				t.Fatalf("src %gx%g dst %gx%g: x offset %g not centered", s.w, s.h, d.w, d.h, r.X)
			}
			if math.Abs(r.Y-(s.h-r.Height)/2) > 1e-9 {
				t.Fatalf("src %gx%g dst %gx%g: y offset %g not centered", s.w, s.h, d.w, d.h, r.Y)
			}
			if r.Width > s.w+1e-9 || r.Height > s.h+1e-9 {
				t.Fatalf("crop rectangle exceeds source bounds: %+v", r)
			}
		}
	}
}

func TestRectBounds_RoundsToPixels(t *testing.T) {
	r := Rect{X: 499.6, Y: 0.4, Width: 3000.2, Height: 2999.5}
	b := r.Bounds()
	if b.Min.X != 500 || b.Min.Y != 0 {
		t.Fatalf("expected min (500, 0), got %v", b.Min)
	}
	if b.Max.X != 3500 || b.Max.Y != 3000 {
		t.Fatalf("expected max (3500, 3000), got %v", b.Max)
	}
}
