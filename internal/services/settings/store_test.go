package settings

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pixstudio/photo-studio/internal/models"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, zap.NewNop()), mr
}

func TestLoad_MissingRecordFallsBackToDefaults(t *testing.T) {
	store, _ := newTestStore(t)
	got := store.Load(context.Background(), "nobody")
	if got != models.DefaultExportSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	want := models.DefaultExportSettings()
	want.Format = models.FormatPNG
	want.Quality = 80
	want.ColorGrading = models.GradingForPreset(models.GradingVivid)
	want.Resolution.Preset = models.ResolutionSquare

	if err := store.Save(ctx, "alice", want); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := store.Load(ctx, "alice"); got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoad_MalformedJSONFallsBackToDefaults(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set(settingsKey("bob"), "{not json")

	if got := store.Load(context.Background(), "bob"); got != models.DefaultExportSettings() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

// A record with an unsupported format fails the whole acceptance check,
// even though its other fields would merge cleanly.
func TestLoad_BadFormatRejectsWholeRecord(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set(settingsKey("carol"), `{"format":"bmp"}`)

	if got := store.Load(context.Background(), "carol"); got != models.DefaultExportSettings() {
		t.Fatalf("expected full fallback to defaults, got %+v", got)
	}
}

func TestLoad_OutOfRangeQualityRejected(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set(settingsKey("dave"), `{"format":"jpeg","quality":5}`)

	got := store.Load(context.Background(), "dave")
	if got.Quality != models.DefaultQuality {
		t.Fatalf("out-of-range quality must not reach the encoder, got %d", got.Quality)
	}
}

// Fields absent from the persisted record inherit their defaults.
func TestLoad_PartialRecordMergesDefaults(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Set(settingsKey("erin"), `{"format":"png","quality":50,"color_grading":{"preset":"none","saturation":100,"contrast":100,"brightness":100,"warmth":0}}`)

	got := store.Load(context.Background(), "erin")
	if got.Format != models.FormatPNG || got.Quality != 50 {
		t.Fatalf("explicit fields must survive, got %+v", got)
	}
	if got.Resolution.Preset != models.ResolutionOriginal {
		t.Fatalf("missing resolution must default to original, got %+v", got.Resolution)
	}
}

func TestSave_RejectsInvalidSettings(t *testing.T) {
	store, _ := newTestStore(t)
	bad := models.DefaultExportSettings()
	bad.Quality = 200
	if err := store.Save(context.Background(), "frank", bad); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSave_StorageFailureSurfaced(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()
	if err := store.Save(context.Background(), "gina", models.DefaultExportSettings()); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
