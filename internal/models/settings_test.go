package models

import "testing"

func intptr(v int) *int { return &v }

func TestDefaultExportSettings(t *testing.T) {
	s := DefaultExportSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if s.Format != FormatJPEG || s.Quality != DefaultQuality {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if !s.ColorGrading.IsIdentity() {
		t.Fatalf("default grading must be identity: %+v", s.ColorGrading)
	}
	if s.Resolution.Preset != ResolutionOriginal || !s.Resolution.AspectRatioLocked {
		t.Fatalf("unexpected default resolution: %+v", s.Resolution)
	}
}

func TestExportSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExportSettings)
		wantErr bool
	}{
		{"valid defaults", func(s *ExportSettings) {}, false},
		{"png", func(s *ExportSettings) { s.Format = FormatPNG }, false},
		{"bmp format", func(s *ExportSettings) { s.Format = "bmp" }, true},
		{"empty format", func(s *ExportSettings) { s.Format = "" }, true},
		{"quality below range", func(s *ExportSettings) { s.Quality = 5 }, true},
		{"quality above range", func(s *ExportSettings) { s.Quality = 101 }, true},
		{"quality lower bound", func(s *ExportSettings) { s.Quality = 10 }, false},
		{"quality upper bound", func(s *ExportSettings) { s.Quality = 100 }, false},
		{"negative saturation", func(s *ExportSettings) { s.ColorGrading.Saturation = -1 }, true},
		{"unknown grading preset", func(s *ExportSettings) { s.ColorGrading.Preset = "noir" }, true},
		{"unknown resolution preset", func(s *ExportSettings) { s.Resolution.Preset = "imax" }, true},
		{"custom zero width", func(s *ExportSettings) {
			s.Resolution.Preset = ResolutionCustom
			s.Resolution.Width = intptr(0)
		}, true},
		{"custom both nil", func(s *ExportSettings) {
			s.Resolution.Preset = ResolutionCustom
		}, false},
		{"high saturation allowed", func(s *ExportSettings) { s.ColorGrading.Saturation = 350 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultExportSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestGradingForPreset(t *testing.T) {
	if g := GradingForPreset(GradingMono); g.Saturation != 0 {
		t.Fatalf("mono preset should zero saturation, got %+v", g)
	}
	if g := GradingForPreset("unknown"); !g.IsIdentity() {
		t.Fatalf("unknown preset should map to identity, got %+v", g)
	}
	for _, name := range []string{GradingNone, GradingVivid, GradingWarm, GradingFaded, GradingMono} {
		if err := GradingForPreset(name).Validate(); err != nil {
			t.Fatalf("preset %q must validate: %v", name, err)
		}
	}
}
