package models

import "fmt"

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"
)

const (
	ResolutionOriginal  = "original"
	ResolutionHD        = "hd"
	Resolution4K        = "4k"
	ResolutionSquare    = "square"
	ResolutionPortrait  = "portrait"
	ResolutionLandscape = "landscape"
	ResolutionCustom    = "custom"
)

const (
	GradingNone  = "none"
	GradingVivid = "vivid"
	GradingWarm  = "warm"
	GradingFaded = "faded"
	GradingMono  = "mono"
)

const (
	MinQuality     = 10
	MaxQuality     = 100
	DefaultQuality = 92
)

// ColorGradingSettings holds CSS-style percentages: 100 is identity for
// saturation/contrast/brightness, 0 is identity for warmth. Values are
// non-negative and intentionally unclamped here; range mapping is the
// rasterizer's concern.
type ColorGradingSettings struct {
	Preset     string  `json:"preset"`
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"contrast"`
	Brightness float64 `json:"brightness"`
	Warmth     float64 `json:"warmth"`
}

// IsIdentity reports whether the grading leaves pixels untouched.
func (g ColorGradingSettings) IsIdentity() bool {
	return g.Saturation == 100 && g.Contrast == 100 && g.Brightness == 100 && g.Warmth == 0
}

func (g ColorGradingSettings) Validate() error {
	switch g.Preset {
	case GradingNone, GradingVivid, GradingWarm, GradingFaded, GradingMono:
	default:
		return fmt.Errorf("unknown color grading preset %q", g.Preset)
	}
	for name, v := range map[string]float64{
		"saturation": g.Saturation,
		"contrast":   g.Contrast,
		"brightness": g.Brightness,
		"warmth":     g.Warmth,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", name, v)
		}
	}
	return nil
}

// GradingForPreset returns the grading values a named preset stands for.
// Unknown names map to the identity grading.
func GradingForPreset(name string) ColorGradingSettings {
	switch name {
	case GradingVivid:
		return ColorGradingSettings{Preset: GradingVivid, Saturation: 130, Contrast: 110, Brightness: 100, Warmth: 0}
	case GradingWarm:
		return ColorGradingSettings{Preset: GradingWarm, Saturation: 105, Contrast: 100, Brightness: 105, Warmth: 30}
	case GradingFaded:
		return ColorGradingSettings{Preset: GradingFaded, Saturation: 80, Contrast: 90, Brightness: 110, Warmth: 10}
	case GradingMono:
		return ColorGradingSettings{Preset: GradingMono, Saturation: 0, Contrast: 110, Brightness: 100, Warmth: 0}
	default:
		return ColorGradingSettings{Preset: GradingNone, Saturation: 100, Contrast: 100, Brightness: 100, Warmth: 0}
	}
}

// ResolutionSettings selects the export canvas. Width/Height apply to the
// custom preset only; nil means "fall back to the source dimension".
type ResolutionSettings struct {
	Preset            string `json:"preset"`
	Width             *int   `json:"width,omitempty"`
	Height            *int   `json:"height,omitempty"`
	AspectRatioLocked bool   `json:"aspect_ratio_locked"`
}

func (r ResolutionSettings) Validate() error {
	switch r.Preset {
	case ResolutionOriginal, ResolutionHD, Resolution4K,
		ResolutionSquare, ResolutionPortrait, ResolutionLandscape:
	case ResolutionCustom:
		if r.Width != nil && *r.Width <= 0 {
			return fmt.Errorf("custom width must be a positive integer, got %d", *r.Width)
		}
		if r.Height != nil && *r.Height <= 0 {
			return fmt.Errorf("custom height must be a positive integer, got %d", *r.Height)
		}
	default:
		return fmt.Errorf("unknown resolution preset %q", r.Preset)
	}
	return nil
}

// ExportSettings is passed by value into the export pipeline and never
// mutated by it.
type ExportSettings struct {
	Format       string               `json:"format"`
	Quality      int                  `json:"quality"`
	ColorGrading ColorGradingSettings `json:"color_grading"`
	Resolution   ResolutionSettings   `json:"resolution"`
}

func (s ExportSettings) Validate() error {
	switch s.Format {
	case FormatJPEG, FormatPNG:
	default:
		return fmt.Errorf("unsupported export format %q", s.Format)
	}
	if s.Quality < MinQuality || s.Quality > MaxQuality {
		return fmt.Errorf("quality must be within [%d, %d], got %d", MinQuality, MaxQuality, s.Quality)
	}
	if err := s.ColorGrading.Validate(); err != nil {
		return err
	}
	return s.Resolution.Validate()
}

// DefaultExportSettings is the fallback whenever no valid persisted record
// exists: jpeg at quality 92, identity grading, original resolution.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Format:       FormatJPEG,
		Quality:      DefaultQuality,
		ColorGrading: GradingForPreset(GradingNone),
		Resolution: ResolutionSettings{
			Preset:            ResolutionOriginal,
			AspectRatioLocked: true,
		},
	}
}
