package export

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/pixstudio/photo-studio/internal/models"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestExport_OriginalKeepsDimensions(t *testing.T) {
	src := encodePNG(t, testGradient(64, 48))
	settings := models.DefaultExportSettings()
	settings.Format = models.FormatPNG

	res, err := Export(bytes.NewReader(src), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Width != 64 || res.Height != 48 {
		t.Fatalf("expected 64x48, got %dx%d", res.Width, res.Height)
	}
}

func TestExport_SquarePresetCenterCrops(t *testing.T) {
	// Wider-than-square source: the square preset must sample a centered
	// square and fill the 1080 frame.
	src := encodePNG(t, testGradient(400, 300))
	settings := models.DefaultExportSettings()
	settings.Format = models.FormatPNG
	settings.Resolution = models.ResolutionSettings{Preset: models.ResolutionSquare}

	res, err := Export(bytes.NewReader(src), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Width != 1080 || res.Height != 1080 {
		t.Fatalf("expected 1080x1080, got %dx%d", res.Width, res.Height)
	}
}

func TestExport_CustomLockedScenario(t *testing.T) {
	src := encodePNG(t, testGradient(300, 200))
	settings := models.DefaultExportSettings()
	settings.Format = models.FormatPNG
	settings.Resolution = models.ResolutionSettings{
		Preset:            models.ResolutionCustom,
		Width:             intptr(90),
		AspectRatioLocked: true,
	}

	res, err := Export(bytes.NewReader(src), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Width != 90 || res.Height != 60 {
		t.Fatalf("expected 90x60, got %dx%d", res.Width, res.Height)
	}
}

func TestExport_DecodeFailure(t *testing.T) {
	_, err := Export(strings.NewReader("definitely not an image"), models.DefaultExportSettings())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

func TestExport_Deterministic(t *testing.T) {
	src := encodePNG(t, testGradient(120, 80))
	settings := models.DefaultExportSettings()
	settings.ColorGrading = models.GradingForPreset(models.GradingWarm)
	settings.Resolution = models.ResolutionSettings{Preset: models.ResolutionCustom,
		Width: intptr(60), Height: intptr(60)}

	first, err := Export(bytes.NewReader(src), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Export(bytes.NewReader(src), settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatal("export is deterministic; repeated runs must match byte for byte")
	}
}
