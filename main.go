// whitted renders the built-in scenes with a recursive Whitted-style ray
// tracer and writes the result as a PNG file.
package main

import (
	"context"
	goflag "flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

type options struct {
	sceneName     string
	objPath       string
	objScale      float64
	objOffset     []float64
	width         int
	height        int
	maxDepth      int
	aaSamples     int
	workers       int
	out           string
	progressEvery int
	list          bool
	modelsDir     string
}

var opts = options{}

var cmdRoot = &cobra.Command{
	Use:   "whitted",
	Short: "Render a scene with a recursive Whitted-style ray tracer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if opts.list {
			return listScenes(cmd)
		}
		return run(ctx, opts)
	},
}

func init() {
	defaults := renderer.DefaultRenderConfig()
	cmdRoot.Flags().StringVar(&opts.sceneName, "scene", "default", "Scene to render: default, sphere, mesh or obj:<name> from --models-dir")
	cmdRoot.Flags().StringVar(&opts.objPath, "obj", "", "OBJ model added to the mesh scene")
	cmdRoot.Flags().Float64Var(&opts.objScale, "obj-scale", 1, "Uniform scale applied to the OBJ model")
	cmdRoot.Flags().Float64SliceVar(&opts.objOffset, "obj-offset", []float64{0, 0, 0}, "x,y,z translation applied to the OBJ model")
	cmdRoot.Flags().IntVar(&opts.width, "width", 800, "Image width in pixels")
	cmdRoot.Flags().IntVar(&opts.height, "height", 600, "Image height in pixels")
	cmdRoot.Flags().IntVar(&opts.maxDepth, "max-depth", defaults.MaxDepth, "Maximum reflection/refraction depth")
	cmdRoot.Flags().IntVar(&opts.aaSamples, "aa", defaults.AASamples, "Anti-aliasing grid size per axis (1 disables AA)")
	cmdRoot.Flags().IntVar(&opts.workers, "workers", defaults.NumWorkers, "Parallel row workers (0 = CPU count)")
	cmdRoot.Flags().StringVar(&opts.out, "out", "output.png", "Output PNG path")
	cmdRoot.Flags().IntVar(&opts.progressEvery, "progress-every", 50, "Log progress every N finished rows (0 disables)")
	cmdRoot.Flags().BoolVar(&opts.list, "list", false, "List the available scenes and OBJ models, then exit")
	cmdRoot.Flags().StringVar(&opts.modelsDir, "models-dir", "models", "Directory holding the OBJ models named by obj:<name> scenes")
}

func listScenes(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Built-in scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(out, "  %-8s %s\n", info.ID, info.Description)
	}

	models, err := scene.ListOBJModels(opts.modelsDir)
	if err != nil {
		return fmt.Errorf("while listing OBJ models: %w", err)
	}
	if len(models) > 0 {
		fmt.Fprintf(out, "OBJ models in %s:\n", opts.modelsDir)
		for _, m := range models {
			fmt.Fprintf(out, "  %-20s %s\n", m.ID, m.DisplayName)
		}
	}
	return nil
}

// createScene builds the named scene with a camera aspect ratio matching the output size
func createScene(ctx context.Context, o options) (*scene.Scene, error) {
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("image size %dx%d must be positive", o.width, o.height)
	}
	if o.objPath != "" && o.sceneName != "mesh" {
		return nil, fmt.Errorf("--obj is only supported with --scene mesh")
	}

	buildOpts := scene.BuildOptions{
		Camera:    geometry.CameraConfig{AspectRatio: float64(o.width) / float64(o.height)},
		OBJPath:   o.objPath,
		OBJScale:  o.objScale,
		ModelsDir: o.modelsDir,
	}
	if len(o.objOffset) > 0 {
		if len(o.objOffset) != 3 {
			return nil, fmt.Errorf("--obj-offset needs 3 components, got %d", len(o.objOffset))
		}
		buildOpts.OBJOffset = core.NewVec3(o.objOffset[0], o.objOffset[1], o.objOffset[2])
	}

	return scene.Build(ctx, o.sceneName, buildOpts)
}

func run(ctx context.Context, o options) error {
	s, err := createScene(ctx, o)
	if err != nil {
		return fmt.Errorf("while creating scene %q: %w", o.sceneName, err)
	}
	glog.Infof("Scene %q: %d primitives", o.sceneName, s.GetPrimitiveCount())

	config := renderer.MergeRenderConfig(renderer.DefaultRenderConfig(), renderer.RenderConfig{
		MaxDepth:   o.maxDepth,
		AASamples:  o.aaSamples,
		NumWorkers: o.workers,
	})
	r, err := renderer.NewRenderer(s, o.width, o.height, config, renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("while creating renderer: %w", err)
	}

	rowsDone := 0
	raster, stats, renderErr := r.Render(ctx, func(u renderer.RowUpdate) {
		rowsDone++
		if o.progressEvery > 0 && rowsDone%o.progressEvery == 0 {
			glog.Infof("%d/%d rows (%.1f%%), %.0f pixels/s, ETA %v",
				rowsDone, o.height, 100*u.Stats.Progress(), u.Stats.PixelsPerSecond(), u.Stats.ETA())
		}
	})
	if renderErr != nil && ctx.Err() == nil {
		return fmt.Errorf("while rendering: %w", renderErr)
	}

	if dir := filepath.Dir(o.out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}
	if err := loaders.SavePNG(o.out, raster.ToImage()); err != nil {
		return fmt.Errorf("while saving %s: %w", o.out, err)
	}

	if renderErr != nil {
		glog.Warningf("Render interrupted after %d of %d pixels; partial image saved as %s",
			stats.ProcessedPixels, stats.TotalPixels, o.out)
		return nil
	}
	glog.Infof("Render saved as %s (%v, %d primary rays)", o.out, stats.Elapsed, stats.PrimaryRays)
	return nil
}

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// glog complains unless the standard flag set has been parsed
	goflag.CommandLine.Parse([]string{})

	if err := cmdRoot.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
