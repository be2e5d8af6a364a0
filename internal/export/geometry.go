package export

import (
	"fmt"
	"math"

	"github.com/pixstudio/photo-studio/internal/models"
)

const (
	longEdgeHD = 1920
	longEdge4K = 3840

	// Aspect ratios within this distance are treated as equal, absorbing
	// floating-point rounding in custom dimension math.
	cropTolerance = 0.01
)

// Target is the resolved export canvas. Dimensions are rounded to integers
// exactly once, at the point they are handed to the rasterizer.
type Target struct {
	Width        int
	Height       int
	RequiresCrop bool
}

// ResolveTarget computes the export canvas for a source image and a
// resolution selection.
//
// The fixed-frame presets (square, portrait, landscape) always take the
// crop path, even when the source already matches the target aspect ratio.
func ResolveTarget(srcW, srcH int, res models.ResolutionSettings) (Target, error) {
	if srcW <= 0 || srcH <= 0 {
		return Target{}, fmt.Errorf("%w: source is %dx%d", ErrInvalidDimension, srcW, srcH)
	}
	sourceAR := float64(srcW) / float64(srcH)

	switch res.Preset {
	case models.ResolutionOriginal, "":
		return Target{Width: srcW, Height: srcH}, nil
	case models.ResolutionHD:
		return fitLongEdge(sourceAR, longEdgeHD), nil
	case models.Resolution4K:
		return fitLongEdge(sourceAR, longEdge4K), nil
	case models.ResolutionSquare:
		return Target{Width: 1080, Height: 1080, RequiresCrop: true}, nil
	case models.ResolutionPortrait:
		return Target{Width: 1080, Height: 1920, RequiresCrop: true}, nil
	case models.ResolutionLandscape:
		return Target{Width: 1920, Height: 1080, RequiresCrop: true}, nil
	case models.ResolutionCustom:
		return resolveCustom(srcW, srcH, sourceAR, res)
	default:
		return Target{}, fmt.Errorf("unknown resolution preset %q", res.Preset)
	}
}

// fitLongEdge scales the source so its longer edge matches edge, keeping
// the source aspect ratio. Square sources are treated as landscape.
func fitLongEdge(sourceAR, edge float64) Target {
	if sourceAR >= 1 {
		return Target{Width: round(edge), Height: round(edge / sourceAR)}
	}
	return Target{Width: round(edge * sourceAR), Height: round(edge)}
}

func resolveCustom(srcW, srcH int, sourceAR float64, res models.ResolutionSettings) (Target, error) {
	var tw, th float64

	if res.AspectRatioLocked {
		switch {
		// Width takes precedence when both dimensions are provided.
		case res.Width != nil:
			tw = float64(*res.Width)
			th = tw / sourceAR
		case res.Height != nil:
			th = float64(*res.Height)
			tw = th * sourceAR
		default:
			tw, th = float64(srcW), float64(srcH)
		}
	} else {
		tw, th = float64(srcW), float64(srcH)
		if res.Width != nil {
			tw = float64(*res.Width)
		}
		if res.Height != nil {
			th = float64(*res.Height)
		}
	}

	if tw <= 0 || th <= 0 {
		return Target{}, fmt.Errorf("%w: custom target is %gx%g", ErrInvalidDimension, tw, th)
	}

	// Compared before rounding so derived dimensions never trip the
	// tolerance on their own.
	requiresCrop := math.Abs(tw/th-sourceAR) > cropTolerance

	return Target{Width: round(tw), Height: round(th), RequiresCrop: requiresCrop}, nil
}

func round(v float64) int {
	return int(math.Round(v))
}
