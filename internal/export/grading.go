package export

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/pixstudio/photo-studio/internal/models"
)

// Stage is one color-grading filter applied to the full canvas.
type Stage struct {
	Name  string
	Apply func(image.Image) *image.NRGBA
}

// GradingStages builds the filter list for a grading record. The order is
// an invariant: saturate, then contrast, then brightness, then warmth.
// Reordering the stages changes the visual output. Identity stages are
// skipped entirely.
func GradingStages(g models.ColorGradingSettings) []Stage {
	var stages []Stage

	if g.Saturation != 100 {
		pct := relativePercent(g.Saturation)
		stages = append(stages, Stage{
			Name: "saturate",
			Apply: func(img image.Image) *image.NRGBA {
				return imaging.AdjustSaturation(img, pct)
			},
		})
	}
	if g.Contrast != 100 {
		pct := relativePercent(g.Contrast)
		stages = append(stages, Stage{
			Name: "contrast",
			Apply: func(img image.Image) *image.NRGBA {
				return imaging.AdjustContrast(img, pct)
			},
		})
	}
	if g.Brightness != 100 {
		pct := relativePercent(g.Brightness)
		stages = append(stages, Stage{
			Name: "brightness",
			Apply: func(img image.Image) *image.NRGBA {
				return imaging.AdjustBrightness(img, pct)
			},
		})
	}
	if g.Warmth > 0 {
		amount := math.Min(g.Warmth/100, 1)
		stages = append(stages, Stage{
			Name: "warmth",
			Apply: func(img image.Image) *image.NRGBA {
				return tintWarmth(img, amount)
			},
		})
	}

	return stages
}

// relativePercent maps a CSS-style percentage (100 = identity) onto the
// imaging library's -100..100 adjustment range.
func relativePercent(pct float64) float64 {
	v := pct - 100
	if v < -100 {
		return -100
	}
	if v > 100 {
		return 100
	}
	return v
}

// tintWarmth blends each pixel toward its sepia value. amount is in [0, 1];
// 1 is a full sepia tint.
func tintWarmth(img image.Image, amount float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r := float64(c.R)
		g := float64(c.G)
		b := float64(c.B)

		sr := 0.393*r + 0.769*g + 0.189*b
		sg := 0.349*r + 0.686*g + 0.168*b
		sb := 0.272*r + 0.534*g + 0.131*b

		c.R = clampChannel(r + (sr-r)*amount)
		c.G = clampChannel(g + (sg-g)*amount)
		c.B = clampChannel(b + (sb-b)*amount)
		return c
	})
}

func clampChannel(v float64) uint8 {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return uint8(v + 0.5)
}
