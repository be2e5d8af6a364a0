package export

import (
	"errors"
	"math"
	"testing"

	"github.com/pixstudio/photo-studio/internal/models"
)

func intptr(v int) *int { return &v }

func TestResolveTarget_Original(t *testing.T) {
	target, err := ResolveTarget(4000, 3000, models.ResolutionSettings{Preset: models.ResolutionOriginal})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Width != 4000 || target.Height != 3000 || target.RequiresCrop {
		t.Fatalf("expected 4000x3000 no crop, got %+v", target)
	}
}

func TestResolveTarget_LongEdgePresets(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		preset     string
		wantW      int
		wantH      int
	}{
		{"hd landscape", 4000, 3000, models.ResolutionHD, 1920, 1440},
		{"hd portrait", 1000, 2000, models.ResolutionHD, 960, 1920},
		{"hd square", 500, 500, models.ResolutionHD, 1920, 1920},
		{"4k landscape", 4000, 3000, models.Resolution4K, 3840, 2880},
		{"4k portrait", 3000, 4000, models.Resolution4K, 2880, 3840},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := ResolveTarget(tt.srcW, tt.srcH, models.ResolutionSettings{Preset: tt.preset})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.Width != tt.wantW || target.Height != tt.wantH {
				t.Fatalf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, target.Width, target.Height)
			}
			if target.RequiresCrop {
				t.Fatal("long-edge presets must not require cropping")
			}
		})
	}
}

// Long-edge presets must preserve the source aspect ratio within floating
// tolerance and put the preset's long edge on the larger dimension.
func TestResolveTarget_LongEdgePreservesAspectRatio(t *testing.T) {
	sources := []struct{ w, h int }{
		{4000, 3000}, {3000, 4000}, {1920, 1080}, {1080, 1920},
		{500, 500}, {7680, 4320}, {123, 4567},
	}
	presets := map[string]int{
		models.ResolutionHD: 1920,
		models.Resolution4K: 3840,
	}
	for preset, edge := range presets {
		for _, src := range sources {
			target, err := ResolveTarget(src.w, src.h, models.ResolutionSettings{Preset: preset})
			if err != nil {
				t.Fatalf("%s %dx%d: unexpected error: %v", preset, src.w, src.h, err)
			}
			long := target.Width
			if target.Height > long {
				long = target.Height
			}
			if long != edge {
				t.Fatalf("%s %dx%d: long edge %d, want %d", preset, src.w, src.h, long, edge)
			}

			srcAR := float64(src.w) / float64(src.h)
			var wantW, wantH float64
			if srcAR >= 1 {
				wantW, wantH = float64(edge), float64(edge)/srcAR
			} else {
				wantW, wantH = float64(edge)*srcAR, float64(edge)
			}
			if math.Abs(float64(target.Width)-wantW) > 0.5+1e-6 ||
				math.Abs(float64(target.Height)-wantH) > 0.5+1e-6 {
				t.Fatalf("%s %dx%d: got %dx%d, want ~%gx%g",
					preset, src.w, src.h, target.Width, target.Height, wantW, wantH)
			}
		}
	}
}

func TestResolveTarget_FixedFramePresets(t *testing.T) {
	tests := []struct {
		preset string
		wantW  int
		wantH  int
	}{
		{models.ResolutionSquare, 1080, 1080},
		{models.ResolutionPortrait, 1080, 1920},
		{models.ResolutionLandscape, 1920, 1080},
	}
	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			target, err := ResolveTarget(4000, 3000, models.ResolutionSettings{Preset: tt.preset})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if target.Width != tt.wantW || target.Height != tt.wantH {
				t.Fatalf("expected %dx%d, got %dx%d", tt.wantW, tt.wantH, target.Width, target.Height)
			}
			if !target.RequiresCrop {
				t.Fatal("fixed-frame presets always require cropping")
			}
		})
	}
}

// Fixed-frame presets take the crop path even when the source already
// matches the frame exactly.
func TestResolveTarget_SquareSourceStillCrops(t *testing.T) {
	target, err := ResolveTarget(1080, 1080, models.ResolutionSettings{Preset: models.ResolutionSquare})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !target.RequiresCrop {
		t.Fatal("expected crop path for square preset on square source")
	}
}

func TestResolveTarget_CustomLockedDerivesHeight(t *testing.T) {
	target, err := ResolveTarget(3000, 2000, models.ResolutionSettings{
		Preset:            models.ResolutionCustom,
		Width:             intptr(800),
		AspectRatioLocked: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Width != 800 || target.Height != 533 {
		t.Fatalf("expected 800x533, got %dx%d", target.Width, target.Height)
	}
	if target.RequiresCrop {
		t.Fatal("derived aspect ratio matches the source, no crop expected")
	}
}

func TestResolveTarget_CustomLockedWidthPrecedence(t *testing.T) {
	target, err := ResolveTarget(2000, 1000, models.ResolutionSettings{
		Preset:            models.ResolutionCustom,
		Width:             intptr(600),
		Height:            intptr(999),
		AspectRatioLocked: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Width != 600 || target.Height != 300 {
		t.Fatalf("width should drive the derivation, got %dx%d", target.Width, target.Height)
	}
}

func TestResolveTarget_CustomLockedDerivesWidth(t *testing.T) {
	target, err := ResolveTarget(1000, 2000, models.ResolutionSettings{
		Preset:            models.ResolutionCustom,
		Height:            intptr(400),
		AspectRatioLocked: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Width != 200 || target.Height != 400 {
		t.Fatalf("expected 200x400, got %dx%d", target.Width, target.Height)
	}
}

func TestResolveTarget_CustomUnlocked(t *testing.T) {
	target, err := ResolveTarget(4000, 3000, models.ResolutionSettings{
		Preset: models.ResolutionCustom,
		Width:  intptr(500),
		Height: intptr(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Width != 500 || target.Height != 500 {
		t.Fatalf("expected 500x500, got %dx%d", target.Width, target.Height)
	}
	if !target.RequiresCrop {
		t.Fatal("target aspect ratio differs from source, crop expected")
	}
}

func TestResolveTarget_CustomUnlockedMissingDimensionsFallBack(t *testing.T) {
	target, err := ResolveTarget(640, 480, models.ResolutionSettings{
		Preset: models.ResolutionCustom,
		Width:  intptr(320),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Width != 320 || target.Height != 480 {
		t.Fatalf("height should fall back to the source, got %dx%d", target.Width, target.Height)
	}
}

func TestResolveTarget_CustomWithinTolerance(t *testing.T) {
	// 400/300 vs 4000/3000: identical ratios, no crop.
	target, err := ResolveTarget(4000, 3000, models.ResolutionSettings{
		Preset: models.ResolutionCustom,
		Width:  intptr(400),
		Height: intptr(300),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.RequiresCrop {
		t.Fatal("matching aspect ratio must not require cropping")
	}
}

func TestResolveTarget_InvalidSource(t *testing.T) {
	_, err := ResolveTarget(0, 100, models.ResolutionSettings{Preset: models.ResolutionOriginal})
	if !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("expected ErrInvalidDimension, got %v", err)
	}
}

func TestResolveTarget_UnknownPreset(t *testing.T) {
	_, err := ResolveTarget(100, 100, models.ResolutionSettings{Preset: "cinema"})
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
