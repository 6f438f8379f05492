package pipeline

import (
	"bytes"
	"context"
	"image"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/willbeason/newton-fractal/pkg/cache"
	"github.com/willbeason/newton-fractal/pkg/config"
	"github.com/willbeason/newton-fractal/pkg/errors"
)

func smallJob() config.Config {
	cfg := config.Default()
	cfg.Width = 16
	cfg.Height = 12
	cfg.Output = "out.png"
	return cfg
}

func newTestRunner(t *testing.T, logs *bytes.Buffer) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	logger := log.NewWithOptions(logs, log.Options{Level: log.DebugLevel})
	return NewRunner(c, nil, logger)
}

func TestExecuteCaches(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRunner(t, &logs)
	ctx := context.Background()

	first, err := r.Execute(ctx, smallJob(), Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if first.CacheHit {
		t.Error("first Execute should miss the cache")
	}
	if first.Format != "png" {
		t.Errorf("Format = %q, want png", first.Format)
	}
	if len(first.Stats.Roots) != 3 {
		t.Errorf("len(Roots) = %d, want 3", len(first.Stats.Roots))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(first.Data))
	if err != nil {
		t.Fatalf("DecodeConfig error: %v", err)
	}
	if format != "png" || cfg.Width != 16 || cfg.Height != 12 {
		t.Errorf("decoded %s %dx%d, want png 16x12", format, cfg.Width, cfg.Height)
	}

	second, err := r.Execute(ctx, smallJob(), Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second Execute should hit the cache")
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("cached data differs from rendered data")
	}
	if first.ID == second.ID {
		t.Error("executions should have distinct ids")
	}

	if !strings.Contains(logs.String(), "rendered fractal") {
		t.Errorf("logs missing render summary:\n%s", logs.String())
	}
}

func TestExecuteRefresh(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRunner(t, &logs)
	ctx := context.Background()

	if _, err := r.Execute(ctx, smallJob(), Options{}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	res, err := r.Execute(ctx, smallJob(), Options{Refresh: true})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.CacheHit {
		t.Error("Refresh should skip the cache")
	}
}

func TestExecuteKeyIncludesParams(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRunner(t, &logs)
	ctx := context.Background()

	if _, err := r.Execute(ctx, smallJob(), Options{}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	other := smallJob()
	other.Color.Palette = "pastel"
	res, err := r.Execute(ctx, other, Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.CacheHit {
		t.Error("different palette should not hit the cache")
	}

	res, err = r.Execute(ctx, smallJob(), Options{Format: "bmp"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.CacheHit || res.Format != "bmp" {
		t.Errorf("bmp Execute = hit %v, format %q", res.CacheHit, res.Format)
	}

	// The output path does not affect the pixels.
	renamed := smallJob()
	renamed.Output = "elsewhere/fractal.png"
	res, err = r.Execute(ctx, renamed, Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.CacheHit {
		t.Error("changing only the output path should hit the cache")
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := NewRunner(nil, nil, log.New(&bytes.Buffer{}))

	cfg := smallJob()
	cfg.Width = 0
	if _, err := r.Execute(context.Background(), cfg, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Execute error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	if _, err := r.Execute(context.Background(), smallJob(), Options{Format: "gif"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Execute error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}
