package renderer

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RowUpdate is delivered to the progress callback after each finished row
type RowUpdate struct {
	Y               int          // Row that just finished
	Pixels          []core.Color // Copy of the row's pixels
	ProcessedPixels int          // Pixels finished so far, including this row
	TotalPixels     int
	Stats           RenderStats // Snapshot at the time of the update
}

// Renderer renders a scene into a raster using a pool of row workers
type Renderer struct {
	scene         *scene.Scene
	width, height int
	config        RenderConfig
	integrator    *integrator.WhittedIntegrator
	sampler       *Sampler
	logger        core.Logger
}

// NewRenderer validates the inputs and creates a renderer. A nil logger
// selects the default glog-backed logger.
func NewRenderer(s *scene.Scene, width, height int, config RenderConfig, logger core.Logger) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidConfig, width, height)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	integ := integrator.NewWhittedIntegrator(integrator.Config{MaxDepth: config.MaxDepth})
	return &Renderer{
		scene:      s,
		width:      width,
		height:     height,
		config:     config,
		integrator: integ,
		sampler:    NewSampler(s, integ, width, height, config.AASamples),
		logger:     logger,
	}, nil
}

// Render renders every row in parallel. progress, if not nil, is called from
// a single goroutine once per finished row, in completion order. When ctx is
// cancelled, rows already started are finished, no new rows are started, and
// the partial raster is returned together with ctx.Err(); unrendered rows
// stay black.
func (r *Renderer) Render(ctx context.Context, progress func(RowUpdate)) (*Raster, RenderStats, error) {
	tracer := otel.Tracer("go-whitted-raytracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Render")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("width", int64(r.width)),
		attribute.Int64("height", int64(r.height)),
		attribute.Int64("aa_samples", int64(r.config.AASamples)),
		attribute.Int64("max_depth", int64(r.config.MaxDepth)),
	)

	startTime := time.Now()
	raster := NewRaster(r.width, r.height)
	stats := RenderStats{TotalPixels: r.width * r.height}

	pool := NewWorkerPool(ctx, r.config.NumWorkers, r.height)
	r.logger.Printf("Rendering %dx%d with %d workers (%dx%d AA, max depth %d)...\n",
		r.width, r.height, pool.GetNumWorkers(), r.config.AASamples, r.config.AASamples, r.config.MaxDepth)

	renderRow := func(task RowTask) RowResult {
		r.sampler.RenderRow(task.Y, raster)
		return RowResult{Y: task.Y, PrimaryRays: r.width * r.sampler.SamplesPerPixel()}
	}

	go func() {
		for y := 0; y < r.height; y++ {
			if err := pool.SubmitTask(RowTask{Y: y}, renderRow); err != nil {
				break
			}
		}
		pool.Stop()
	}()

	// Single-goroutine dispatch of progress callbacks
	for result := range pool.Results() {
		stats.ProcessedPixels += r.width
		stats.PrimaryRays += result.PrimaryRays
		stats.Elapsed = time.Since(startTime)

		if progress != nil {
			progress(RowUpdate{
				Y:               result.Y,
				Pixels:          raster.RowPixels(result.Y),
				ProcessedPixels: stats.ProcessedPixels,
				TotalPixels:     stats.TotalPixels,
				Stats:           stats,
			})
		}
	}
	stats.Elapsed = time.Since(startTime)

	span.SetAttributes(
		attribute.Int64("processed_pixels", int64(stats.ProcessedPixels)),
		attribute.Int64("primary_rays", int64(stats.PrimaryRays)),
	)

	if stats.ProcessedPixels < stats.TotalPixels {
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		r.logger.Printf("Render cancelled after %d/%d rows in %v\n",
			stats.ProcessedPixels/r.width, r.height, stats.Elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return raster, stats, err
	}

	r.logger.Printf("Render completed in %v (%.0f pixels/s, %d primary rays)\n",
		stats.Elapsed, stats.PixelsPerSecond(), stats.PrimaryRays)
	span.SetStatus(codes.Ok, "")
	return raster, stats, nil
}

// Render is the one-call entrypoint: it assembles a scene from its parts and
// renders it without progress reporting
func Render(ctx context.Context, width, height int, camera *geometry.Camera, shapes []geometry.Shape, light *lights.PointLight, config RenderConfig) (*Raster, error) {
	s, err := scene.New(camera, shapes, light)
	if err != nil {
		return nil, err
	}
	r, err := NewRenderer(s, width, height, config, nil)
	if err != nil {
		return nil, err
	}
	raster, _, err := r.Render(ctx, nil)
	return raster, err
}
