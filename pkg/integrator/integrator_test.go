package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// quarterMaterial has exactly representable coefficients so expected colors are exact
func quarterMaterial(opts ...material.Option) *material.Material {
	q := core.NewVec3(0.25, 0.25, 0.25)
	return material.MustNew(q, q, q, 1, opts...)
}

// createTestScene builds a scene with an overhead white light and the given shapes
func createTestScene(t *testing.T, shapes ...geometry.Shape) *scene.Scene {
	t.Helper()
	camera, err := geometry.NewCamera(geometry.DefaultCameraConfig())
	if err != nil {
		t.Fatalf("Failed to create camera: %v", err)
	}
	light, err := lights.NewPointLight(core.NewPoint(0, 10, 0), core.NewVec3(1, 1, 1))
	if err != nil {
		t.Fatalf("Failed to create light: %v", err)
	}
	s, err := scene.New(camera, shapes, light)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	return s
}

func TestPhongShade(t *testing.T) {
	light, _ := lights.NewPointLight(core.NewPoint(0, 10, 0), core.NewVec3(1, 1, 1))
	up := core.NewVec3(0, 1, 0)
	origin := core.NewPoint(0, 0, 0)

	tests := []struct {
		name     string
		normal   core.Vec3
		viewDir  core.Vec3
		inShadow bool
		want     core.Color
	}{
		// ambient + diffuse + specular = 0.75 * 255 = 191.25
		{"fully lit head-on", up, up, false, core.NewColor(191, 191, 191)},
		// ambient only: 0.25 * 255 = 63.75 rounds up
		{"in shadow", up, up, true, core.NewColor(64, 64, 64)},
		// normal facing away from the light: no diffuse and no highlight
		{"facing away", up.Negate(), up.Negate(), false, core.NewColor(64, 64, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PhongShade(origin, tt.normal, tt.viewDir, light, quarterMaterial(), tt.inShadow)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestPhongShade_ClampsBrightMaterials(t *testing.T) {
	light, _ := lights.NewPointLight(core.NewPoint(0, 10, 0), core.NewVec3(1, 1, 1))
	one := core.NewVec3(1, 1, 1)
	bright := material.MustNew(one, one, one, 1)

	up := core.NewVec3(0, 1, 0)
	got := PhongShade(core.NewPoint(0, 0, 0), up, up, light, bright, false)
	if got != core.NewColor(255, 255, 255) {
		t.Errorf("Expected saturated white, got %v", got)
	}
}

func TestInShadow(t *testing.T) {
	floor := geometry.NewPlane(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0), quarterMaterial())
	occluder := geometry.NewSphere(core.NewPoint(0, 5, 0), 1, quarterMaterial())
	behindLight := geometry.NewSphere(core.NewPoint(0, 15, 0), 1, quarterMaterial())

	up := core.NewVec3(0, 1, 0)
	origin := core.NewPoint(0, 0, 0)

	if InShadow(createTestScene(t, floor), origin, up) {
		t.Error("Surface should not shadow itself thanks to the bias")
	}
	if !InShadow(createTestScene(t, floor, occluder), origin, up) {
		t.Error("Sphere between point and light should cast a shadow")
	}
	if InShadow(createTestScene(t, floor, behindLight), origin, up) {
		t.Error("Objects beyond the light must not cast shadows")
	}
}

func TestTrace_OccluderForcesAmbientOnly(t *testing.T) {
	floor := geometry.NewPlane(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0), quarterMaterial())
	occluder := geometry.NewSphere(core.NewPoint(0, 5, 0), 1, quarterMaterial())
	ray := core.NewRay(core.NewPoint(0, 2, 2), core.NewVec3(0, -1, -1))
	wi := NewWhittedIntegrator(DefaultConfig())

	lit := wi.Trace(ray, createTestScene(t, floor), 0)
	shadowed := wi.Trace(ray, createTestScene(t, floor, occluder), 0)

	if want := core.NewColor(64, 64, 64); shadowed != want {
		t.Errorf("Expected ambient-only %v, got %v", want, shadowed)
	}
	if lit.R <= shadowed.R {
		t.Errorf("Lit color %v should be brighter than shadowed %v", lit, shadowed)
	}
}

func TestTrace_CubeTopFaceIsLit(t *testing.T) {
	cube := geometry.NewCube(core.NewPoint(0, 0, 0), 2, quarterMaterial())
	s := createTestScene(t, cube)
	wi := NewWhittedIntegrator(DefaultConfig())

	// Straight down onto the top face with the light directly overhead
	got := wi.Trace(core.NewRay(core.NewPoint(0, 5, 0), core.NewVec3(0, -1, 0)), s, 0)
	if want := core.NewColor(191, 191, 191); got != want {
		t.Errorf("Expected fully lit top face %v, got %v", want, got)
	}
}

func TestTrace_MissIsBlack(t *testing.T) {
	sphere := geometry.NewSphere(core.NewPoint(0, 0, -5), 1, quarterMaterial())
	cube := geometry.NewCube(core.NewPoint(0, 0, 5), 1, quarterMaterial())
	s := createTestScene(t, sphere, cube)
	wi := NewWhittedIntegrator(DefaultConfig())

	got := wi.Trace(core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(1, 0, 0)), s, 0)
	if got != core.Black {
		t.Errorf("Expected black for a miss, got %v", got)
	}
}

func TestTrace_MaxDepthIsBlack(t *testing.T) {
	mirror := quarterMaterial(material.WithReflectivity(0.5))
	sphere := geometry.NewSphere(core.NewPoint(0, 0, -5), 1, mirror)
	s := createTestScene(t, sphere)
	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(0, 0, -1))

	for _, maxDepth := range []int{1, 5, 10} {
		wi := NewWhittedIntegrator(Config{MaxDepth: maxDepth})
		if got := wi.Trace(ray, s, maxDepth); got != core.Black {
			t.Errorf("MaxDepth %d: expected black at the depth limit, got %v", maxDepth, got)
		}
		if got := wi.Trace(ray, s, maxDepth+3); got != core.Black {
			t.Errorf("MaxDepth %d: expected black beyond the depth limit, got %v", maxDepth, got)
		}
		if got := wi.Trace(ray, s, 0); got == core.Black {
			t.Errorf("MaxDepth %d: expected a lit color at depth 0", maxDepth)
		}
	}
}

func TestTrace_MirrorBlend(t *testing.T) {
	mirror := quarterMaterial(material.WithReflectivity(0.5))
	floor := geometry.NewPlane(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0), mirror)
	s := createTestScene(t, floor)
	ray := core.NewRay(core.NewPoint(0, 1, 1), core.NewVec3(0, -1, -1))

	isect, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("Expected the ray to hit the floor")
	}
	local := PhongShade(isect.Hit.Point, isect.Normal(), ray.Direction.Negate(), s.Light, mirror, false)

	// The reflected ray escapes to black, so the result is half the local color
	want := core.ColorFromVec(local.Vec().Multiply(0.5))
	if got := NewWhittedIntegrator(DefaultConfig()).Trace(ray, s, 0); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTrace_ReflectionPicksUpColor(t *testing.T) {
	mirror := material.MustNew(core.Vec3{}, core.Vec3{}, core.Vec3{}, 1, material.WithReflectivity(1))
	floor := geometry.NewPlane(core.NewPoint(0, 0, 0), core.NewVec3(0, 1, 0), mirror)
	red := material.MustNew(core.NewVec3(1, 0, 0), core.Vec3{}, core.Vec3{}, 1)
	// Sits where the reflected ray ends up: (0,0,0) + t*(0,1,-1)
	target := geometry.NewSphere(core.NewPoint(0, 3, -3), 0.5, red)

	s := createTestScene(t, floor, target)
	got := NewWhittedIntegrator(DefaultConfig()).Trace(core.NewRay(core.NewPoint(0, 1, 1), core.NewVec3(0, -1, -1)), s, 0)
	if got != core.NewColor(255, 0, 0) {
		t.Errorf("Perfect mirror should show the red sphere, got %v", got)
	}
}

func TestTrace_TransparentSphereShowsBackground(t *testing.T) {
	// Index 1 means no bending; with no other objects the back hit escapes to black
	clear := material.MustNew(core.Vec3{}, core.Vec3{}, core.Vec3{}, 1,
		material.WithTransparency(1), material.WithRefractiveIndex(1))
	bright := material.MustNew(core.NewVec3(1, 1, 1), core.Vec3{}, core.Vec3{}, 1)

	glass := geometry.NewSphere(core.NewPoint(0, 0, -5), 1, clear)
	wall := geometry.NewPlane(core.NewPoint(0, 0, -20), core.NewVec3(0, 0, 1), bright)
	ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(0, 0, -1))
	wi := NewWhittedIntegrator(DefaultConfig())

	withWall := wi.Trace(ray, createTestScene(t, glass, wall), 0)
	withoutWall := wi.Trace(ray, createTestScene(t, glass), 0)

	if withoutWall != core.Black {
		t.Errorf("Black material with nothing behind it should stay black, got %v", withoutWall)
	}
	// Head-on Fresnel weight is 0.1 at each surface: 255*0.9 truncates to 229,
	// then 229*0.9 truncates to 206
	if want := core.NewColor(206, 206, 206); withWall != want {
		t.Errorf("Expected %v through two surfaces, got %v", want, withWall)
	}
}

func TestReflect(t *testing.T) {
	d := core.NewVec3(1, -1, 0).Normalize()
	got := Reflect(d, core.NewVec3(0, 1, 0))
	if diff := cmp.Diff(core.NewVec3(1, 1, 0).Normalize(), got, approx); diff != "" {
		t.Errorf("Reflect mismatch (-want +got):\n%s", diff)
	}
}

func TestRefract(t *testing.T) {
	t.Run("normal incidence does not bend", func(t *testing.T) {
		d := core.NewVec3(0, 0, -1)
		got, ok := Refract(d, core.NewVec3(0, 0, 1), 1.0, 1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		if diff := cmp.Diff(d, got, approx); diff != "" {
			t.Errorf("Direction changed (-want +got):\n%s", diff)
		}
	})

	t.Run("snell's law", func(t *testing.T) {
		theta := math.Pi / 6
		d := core.NewVec3(math.Sin(theta), 0, -math.Cos(theta))
		got, ok := Refract(d, core.NewVec3(0, 0, 1), 1.0, 1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		sinT := got.X / got.Length()
		if math.Abs(sinT-math.Sin(theta)/1.5) > 1e-9 {
			t.Errorf("Expected sin(theta_t)=%f, got %f", math.Sin(theta)/1.5, sinT)
		}
		if math.Abs(got.Length()-1) > 1e-9 {
			t.Errorf("Refracted direction should be unit length, got %f", got.Length())
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		d := core.NewVec3(0.9, 0, -math.Sqrt(1-0.81))
		if _, ok := Refract(d, core.NewVec3(0, 0, 1), 1.5, 1.0); ok {
			t.Error("Expected total internal reflection")
		}
	})
}

func TestFresnelWeight(t *testing.T) {
	n := core.NewVec3(0, 0, 1)
	tests := []struct {
		name    string
		viewDir core.Vec3
		want    float64
	}{
		{"head-on", core.NewVec3(0, 0, 1), 0.1},
		{"from behind", core.NewVec3(0, 0, -1), 0.1},
		{"grazing", core.NewVec3(1, 0, 0), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FresnelWeight(tt.viewDir, n); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}
