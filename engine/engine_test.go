package engine

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/pipeline"
	"github.com/verdant-engine/verdant-go/engine/tessellation"
)

// headless builds an engine without touching a window or the GPU, enough to
// exercise draw registration and option application.
func headless(options ...Option) *engine {
	e := &engine{
		draws: make(map[int]registeredDraw),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func markerDraw(x float32) pipeline.Draw {
	return pipeline.Draw{
		Vertices:      []geometry.Input{{Position: mgl32.Vec4{x, 0, 0, 1}}},
		BaseTransform: mgl32.Ident4(),
		PrevTransform: mgl32.Ident4(),
	}
}

func TestDrawsRenderInKeyOrder(t *testing.T) {
	e := headless()
	e.AddDraw(10, markerDraw(10))
	e.AddDraw(-3, markerDraw(-3))
	e.AddDraw(0, markerDraw(0))

	ordered := e.orderedDraws()
	if len(ordered) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(ordered))
	}
	want := []float32{-3, 0, 10}
	for i, rd := range ordered {
		if got := rd.draw.Vertices[0].Position.X(); got != want[i] {
			t.Errorf("draw %d: expected marker %v, got %v", i, want[i], got)
		}
	}
}

func TestAddDrawReplacesExistingKey(t *testing.T) {
	e := headless()
	e.AddDraw(1, markerDraw(1))
	e.AddDraw(1, markerDraw(2))

	ordered := e.orderedDraws()
	if len(ordered) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(ordered))
	}
	if got := ordered[0].draw.Vertices[0].Position.X(); got != 2 {
		t.Errorf("expected replacement draw marker 2, got %v", got)
	}
}

func TestRemoveDraw(t *testing.T) {
	e := headless()
	e.AddDraw(1, markerDraw(1))
	e.AddDraw(2, markerDraw(2))
	e.RemoveDraw(1)

	ordered := e.orderedDraws()
	if len(ordered) != 1 {
		t.Fatalf("expected 1 draw after removal, got %d", len(ordered))
	}
	if got := ordered[0].draw.Vertices[0].Position.X(); got != 2 {
		t.Errorf("expected remaining draw marker 2, got %v", got)
	}

	e.RemoveDraw(42) // missing key is a no-op
	if len(e.orderedDraws()) != 1 {
		t.Error("removing a missing key changed the draw set")
	}
}

func TestAddPatchDrawKeepsPatches(t *testing.T) {
	e := headless()
	patches := [][tessellation.ControlPoints]uint32{{0, 1, 2}}
	e.AddPatchDraw(5, markerDraw(5), patches)

	ordered := e.orderedDraws()
	if len(ordered) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(ordered))
	}
	if len(ordered[0].patches) != 1 || ordered[0].patches[0] != [3]uint32{0, 1, 2} {
		t.Errorf("expected patch indices {0 1 2}, got %v", ordered[0].patches)
	}
}

func TestProfilingOptions(t *testing.T) {
	e := headless(WithProfiling(), WithStatsAddr(":9999"))
	if !e.profilingEnabled {
		t.Error("WithProfiling did not enable profiling")
	}
	if e.statsAddr != ":9999" {
		t.Errorf("expected stats address :9999, got %q", e.statsAddr)
	}

	e.DisableProfiler()
	if e.profilingEnabled {
		t.Error("DisableProfiler left profiling enabled")
	}
	e.EnableProfiler()
	if !e.profilingEnabled {
		t.Error("EnableProfiler did not enable profiling")
	}
}

func TestWithGeometryPass(t *testing.T) {
	pass := pipeline.NewGeometryPass(pipeline.PassDepthOnly, pipeline.WithWorkers(1))
	e := headless(WithGeometryPass(pass))
	if e.pass != pass {
		t.Error("WithGeometryPass did not set the pass")
	}
	if e.pass.Kind() != pipeline.PassDepthOnly {
		t.Errorf("expected depth-only pass, got %v", e.pass.Kind())
	}
}
