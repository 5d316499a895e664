package renderer

import (
	"context"
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/google/go-cmp/cmp"
)

// testLogger discards renderer output
type testLogger struct{}

func (testLogger) Printf(format string, args ...interface{}) {}

func createTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.NewSphereScene()
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	return s
}

func TestRender_EndToEndSphere(t *testing.T) {
	camera, err := geometry.NewCamera(geometry.CameraConfig{
		Position:    core.NewPoint(0, 0, 0),
		LookAt:      core.NewPoint(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		FOV:         45,
		AspectRatio: 800.0 / 600.0,
	})
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}
	red := material.MustNew(core.NewVec3(0.2, 0, 0), core.NewVec3(0.8, 0, 0), core.NewVec3(0.5, 0.5, 0.5), 10)
	shapes := []geometry.Shape{geometry.NewSphere(core.NewPoint(0, 0, -5), 1, red)}
	light, err := lights.NewPointLight(core.NewPoint(0, 0, 0), core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatalf("Failed to create light: %v", err)
	}

	config := MergeRenderConfig(DefaultRenderConfig(), RenderConfig{AASamples: 1})
	raster, err := Render(context.Background(), 800, 600, camera, shapes, light, config)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if raster.Width != 800 || raster.Height != 600 || len(raster.Pix) != 800*600*3 {
		t.Fatalf("Unexpected raster shape %dx%d (%d bytes)", raster.Width, raster.Height, len(raster.Pix))
	}
	if center := raster.At(400, 300); center == core.Black {
		t.Errorf("Center pixel should hit the sphere")
	}
	for _, corner := range [][2]int{{0, 0}, {799, 0}, {0, 599}, {799, 599}} {
		if c := raster.At(corner[0], corner[1]); c != core.Black {
			t.Errorf("Corner %v should miss the sphere, got %v", corner, c)
		}
	}
}

func TestRender_ProgressUpdates(t *testing.T) {
	const width, height = 40, 30
	r, err := NewRenderer(createTestScene(t), width, height, RenderConfig{MaxDepth: 5, AASamples: 2, NumWorkers: 4}, testLogger{})
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	seen := make(map[int]bool)
	lastProcessed := 0
	var updates []RowUpdate
	raster, stats, err := r.Render(context.Background(), func(u RowUpdate) {
		if seen[u.Y] {
			t.Errorf("Row %d reported twice", u.Y)
		}
		seen[u.Y] = true
		if u.ProcessedPixels != lastProcessed+width {
			t.Errorf("Expected processed count %d, got %d", lastProcessed+width, u.ProcessedPixels)
		}
		lastProcessed = u.ProcessedPixels
		if u.TotalPixels != width*height {
			t.Errorf("Expected total %d, got %d", width*height, u.TotalPixels)
		}
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(updates) != height {
		t.Errorf("Expected %d row updates, got %d", height, len(updates))
	}
	if stats.ProcessedPixels != width*height || stats.TotalPixels != width*height {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.PrimaryRays != width*height*4 {
		t.Errorf("Expected %d primary rays, got %d", width*height*4, stats.PrimaryRays)
	}
	for _, u := range updates {
		if diff := cmp.Diff(raster.RowPixels(u.Y), u.Pixels); diff != "" {
			t.Errorf("Row %d update differs from final raster (-want +got):\n%s", u.Y, diff)
		}
	}
}

func TestRender_WorkerCountDoesNotChangeImage(t *testing.T) {
	s := createTestScene(t)
	render := func(workers int) *Raster {
		r, err := NewRenderer(s, 64, 48, RenderConfig{MaxDepth: 5, AASamples: 2, NumWorkers: workers}, testLogger{})
		if err != nil {
			t.Fatalf("Failed to create renderer: %v", err)
		}
		raster, _, err := r.Render(context.Background(), nil)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return raster
	}

	if diff := cmp.Diff(render(1).Pix, render(8).Pix); diff != "" {
		t.Errorf("Parallel render differs from serial render (-serial +parallel):\n%s", diff)
	}
}

func TestRender_CancelledBeforeStart(t *testing.T) {
	r, err := NewRenderer(createTestScene(t), 32, 24, DefaultRenderConfig(), testLogger{})
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	raster, stats, err := r.Render(ctx, func(RowUpdate) {
		t.Error("No rows should be rendered after cancellation")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if raster == nil || raster.Width != 32 || raster.Height != 24 {
		t.Fatalf("Expected a full-size partial raster, got %+v", raster)
	}
	if stats.ProcessedPixels != 0 {
		t.Errorf("Expected no processed pixels, got %d", stats.ProcessedPixels)
	}
	for _, b := range raster.Pix {
		if b != 0 {
			t.Fatal("Unrendered raster should be black")
		}
	}
}

func TestRender_CancelMidway(t *testing.T) {
	const width, height = 40, 60
	r, err := NewRenderer(createTestScene(t), width, height, RenderConfig{MaxDepth: 5, AASamples: 1, NumWorkers: 1}, testLogger{})
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rendered := make(map[int]bool)
	raster, stats, err := r.Render(ctx, func(u RowUpdate) {
		rendered[u.Y] = true
		cancel()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if stats.ProcessedPixels < width || stats.ProcessedPixels >= width*height {
		t.Errorf("Expected a partial render, processed %d of %d pixels", stats.ProcessedPixels, width*height)
	}
	if stats.ProcessedPixels != len(rendered)*width {
		t.Errorf("Stats disagree with progress: %d pixels vs %d rows", stats.ProcessedPixels, len(rendered))
	}

	// Rows that were never reported stay black
	for y := 0; y < height; y++ {
		if rendered[y] {
			continue
		}
		for _, b := range raster.Row(y) {
			if b != 0 {
				t.Fatalf("Row %d was not rendered but is not black", y)
			}
		}
	}
}

func TestNewRenderer_Validation(t *testing.T) {
	s := createTestScene(t)
	tests := []struct {
		name          string
		width, height int
		config        RenderConfig
	}{
		{"zero width", 0, 10, DefaultRenderConfig()},
		{"negative height", 10, -1, DefaultRenderConfig()},
		{"zero depth", 10, 10, RenderConfig{MaxDepth: 0, AASamples: 1}},
		{"zero aa", 10, 10, RenderConfig{MaxDepth: 5, AASamples: 0}},
		{"negative workers", 10, 10, RenderConfig{MaxDepth: 5, AASamples: 1, NumWorkers: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRenderer(s, tt.width, tt.height, tt.config, testLogger{}); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if _, err := NewRenderer(&scene.Scene{}, 10, 10, DefaultRenderConfig(), testLogger{}); !errors.Is(err, scene.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestRenderConfig_Merge(t *testing.T) {
	got := MergeRenderConfig(DefaultRenderConfig(), RenderConfig{AASamples: 3})
	want := RenderConfig{MaxDepth: 5, AASamples: 3, NumWorkers: 0}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_UsesWhittedDepth(t *testing.T) {
	r, err := NewRenderer(createTestScene(t), 8, 6, RenderConfig{MaxDepth: 3, AASamples: 1}, testLogger{})
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	if got := r.integrator.GetConfig(); got != (integrator.Config{MaxDepth: 3}) {
		t.Errorf("Expected integrator depth 3, got %+v", got)
	}
}
