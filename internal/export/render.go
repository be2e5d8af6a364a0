package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/pixstudio/photo-studio/internal/models"
)

// Base name of the suggested download; only the extension is contractual.
const exportBaseName = "photo-studio"

// maxCanvasPixels caps the off-screen canvas a single export may allocate.
// 128 megapixels covers 4k and any sane custom target with wide margin.
const maxCanvasPixels = int64(128 << 20)

// Render draws the source into a fresh canvas of target dimensions and
// encodes it. When crop is non-nil only that source sub-rectangle is
// sampled, stretched to fill the whole canvas. Steps run in a fixed order:
// allocate, crop, resample, grade, encode.
func Render(src image.Image, t Target, crop *Rect, grading models.ColorGradingSettings, format string, quality int) (*models.ExportResult, error) {
	if t.Width < 1 || t.Height < 1 {
		return nil, fmt.Errorf("%w: resolved target is %dx%d", ErrInvalidDimension, t.Width, t.Height)
	}
	if int64(t.Width)*int64(t.Height) > maxCanvasPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the canvas limit", ErrSurfaceUnavailable, t.Width, t.Height)
	}

	canvas := src
	if crop != nil {
		canvas = imaging.Crop(canvas, crop.Bounds())
		if canvas.Bounds().Empty() {
			return nil, fmt.Errorf("%w: crop rectangle is empty", ErrSurfaceUnavailable)
		}
	}
	canvas = imaging.Resize(canvas, t.Width, t.Height, imaging.Lanczos)

	for _, stage := range GradingStages(grading) {
		canvas = stage.Apply(canvas)
	}

	buf := &bytes.Buffer{}
	switch format {
	case models.FormatJPEG:
		if err := jpeg.Encode(buf, canvas, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	case models.FormatPNG:
		// Quality does not apply; PNG is lossless.
		if err := png.Encode(buf, canvas); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrEncode, format)
	}

	return &models.ExportResult{
		Format:   format,
		Filename: fmt.Sprintf("%s.%s", exportBaseName, format),
		Width:    t.Width,
		Height:   t.Height,
		FileSize: int64(buf.Len()),
		Data:     buf.Bytes(),
	}, nil
}
