// Package export implements the deterministic image export pipeline:
// resolve the target canvas from a resolution selection, center-crop when
// the aspect ratios differ, then rasterize with the color-grading filter
// stack and encode. Every stage is synchronous and keeps no state across
// calls; the same source and settings always produce identical bytes.
package export

import (
	"fmt"
	"io"

	"github.com/disintegration/imaging"

	// Uploads may arrive as webp; imaging registers the other decoders.
	_ "golang.org/x/image/webp"

	"github.com/pixstudio/photo-studio/internal/models"
)

// Export runs the full pipeline for one source image and one settings
// record. Settings are taken by value and never mutated. Callers must
// validate the settings first; Export assumes format and quality are in
// range.
func Export(r io.Reader, settings models.ExportSettings) (*models.ExportResult, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	target, err := ResolveTarget(bounds.Dx(), bounds.Dy(), settings.Resolution)
	if err != nil {
		return nil, err
	}

	var crop *Rect
	if target.RequiresCrop {
		rect := CenterCropRect(
			float64(bounds.Dx()), float64(bounds.Dy()),
			float64(target.Width), float64(target.Height),
		)
		crop = &rect
	}

	return Render(src, target, crop, settings.ColorGrading, settings.Format, settings.Quality)
}
