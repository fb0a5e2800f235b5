package pipeline

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/engine/frame"
	"github.com/verdant-engine/verdant-go/engine/geometry"
	"github.com/verdant-engine/verdant-go/engine/surface"
	"github.com/verdant-engine/verdant-go/engine/tessellation"
)

const eps = 1e-5

func gridInputs(n int) []geometry.Input {
	inputs := make([]geometry.Input, 0, n*n)
	for i := range n {
		for j := range n {
			inputs = append(inputs, geometry.Input{
				Position: mgl32.Vec4{float32(i) * 0.5, 0, float32(j) * 0.5, 1},
				UV:       mgl32.Vec2{float32(i) / float32(n), float32(j) / float32(n)},
				Normal:   mgl32.Vec3{0, 1, 0},
				Tangent:  mgl32.Vec3{1, 0, 0},
			})
		}
	}
	return inputs
}

func testDraw(flags surface.Flags, inputs []geometry.Input) Draw {
	return Draw{
		Vertices:      inputs,
		BaseTransform: mgl32.Translate3D(1, 0, -2),
		PrevTransform: mgl32.Translate3D(0.5, 0, -2),
		Material: surface.Params{
			Tiling:      mgl32.Vec2{1, 1},
			LocalWidth:  1,
			LocalHeight: 1,
			Flags:       flags,
		},
	}
}

func testFrame() frame.Constants {
	return frame.New(
		frame.WithTime(4),
		frame.WithDeltaTime(1.0/60.0),
		frame.WithWind(mgl32.Vec3{1, 0, 0}),
		frame.WithCameraPosition(mgl32.Vec3{0, 2, 8}),
		frame.WithLastMovementTime(3.5),
		frame.WithViewProjection(mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)),
		frame.WithViewProjectionUnjittered(mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 200)),
	)
}

func vertexEqual(t *testing.T, got, want geometry.Vertex, context string) {
	t.Helper()
	for i := range 3 {
		if math.Abs(float64(got.WorldPosition[i]-want.WorldPosition[i])) > eps {
			t.Fatalf("%s: world position got %v, want %v", context, got.WorldPosition, want.WorldPosition)
		}
	}
	for i := range 4 {
		if math.Abs(float64(got.ClipPosition[i]-want.ClipPosition[i])) > eps {
			t.Fatalf("%s: clip position got %v, want %v", context, got.ClipPosition, want.ClipPosition)
		}
		if math.Abs(float64(got.PrevClipPosition[i]-want.PrevClipPosition[i])) > eps {
			t.Fatalf("%s: prev clip position got %v, want %v", context, got.PrevClipPosition, want.PrevClipPosition)
		}
	}
}

func TestPassKindsProduceIdenticalVertices(t *testing.T) {
	// Depth-only and g-buffer passes run the same stages over the same
	// inputs; only the downstream consumer differs.
	inputs := gridInputs(8)
	draw := testDraw(surface.FlagAnimateWind, inputs)
	fc := testFrame()

	depth := NewGeometryPass(PassDepthOnly, WithWorkers(1)).Process(draw, fc)
	gbuffer := NewGeometryPass(PassGBuffer, WithWorkers(1)).Process(draw, fc)

	if len(depth) != len(gbuffer) {
		t.Fatalf("pass outputs differ in length: %d vs %d", len(depth), len(gbuffer))
	}
	for i := range depth {
		vertexEqual(t, depth[i], gbuffer[i], "pass kind")
	}
}

func TestProcessParallelMatchesSerial(t *testing.T) {
	// Chunked parallel dispatch must be invisible in the output: same
	// records, same order.
	inputs := gridInputs(32)
	draw := testDraw(surface.FlagAnimateWind, inputs)
	fc := testFrame()

	serial := NewGeometryPass(PassGBuffer, WithWorkers(1)).Process(draw, fc)
	parallel := NewGeometryPass(PassGBuffer, WithWorkers(4)).Process(draw, fc)

	if len(serial) != len(parallel) {
		t.Fatalf("outputs differ in length: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		vertexEqual(t, serial[i], parallel[i], "parallel dispatch")
	}
}

func TestProcessMatchesDirectStages(t *testing.T) {
	inputs := gridInputs(4)
	draw := testDraw(0, inputs)
	draw.FetchPreviousTransform = true
	fc := testFrame()

	out := NewGeometryPass(PassGBuffer, WithWorkers(1)).Process(draw, fc)

	surf := draw.Material.Surface()
	for i, in := range inputs {
		want := geometry.TransformVertex(in, draw.BaseTransform, draw.PrevTransform, draw.Material, fc)
		geometry.Project(&want, surf, fc)
		vertexEqual(t, out[i], want, "direct stage composition")
	}
}

func TestPreviousTransformFallback(t *testing.T) {
	// Without the fetch flag the previous path reuses the current transform,
	// so a static surface has zero transform motion even when the host left a
	// stale PrevTransform in the draw.
	inputs := gridInputs(2)
	draw := testDraw(0, inputs)
	fc := testFrame()

	out := NewGeometryPass(PassGBuffer, WithWorkers(1)).Process(draw, fc)
	for i, v := range out {
		for c := range 3 {
			if math.Abs(float64(v.WorldPosition[c]-v.PrevWorldPosition[c])) > eps {
				t.Fatalf("vertex %d: expected no motion, got world %v prev %v", i, v.WorldPosition, v.PrevWorldPosition)
			}
		}
	}

	draw.FetchPreviousTransform = true
	moved := NewGeometryPass(PassGBuffer, WithWorkers(1)).Process(draw, fc)
	if moved[0].PrevWorldPosition == moved[0].WorldPosition {
		t.Fatal("expected transform motion when fetching the previous transform")
	}
}

func TestTransparentDrawUsesUnjitteredMatrices(t *testing.T) {
	inputs := gridInputs(2)
	opaque := testDraw(0, inputs)
	transparent := testDraw(0, inputs)
	transparent.Transparent = true
	fc := testFrame()

	pass := NewGeometryPass(PassGBuffer, WithWorkers(1))
	opaqueOut := pass.Process(opaque, fc)
	transparentOut := pass.Process(transparent, fc)

	wantOpaque := fc.ViewProjection.Mul4x1(opaqueOut[0].WorldPosition.Vec4(1))
	wantTransparent := fc.ViewProjectionUnjittered.Mul4x1(transparentOut[0].WorldPosition.Vec4(1))
	for i := range 4 {
		if math.Abs(float64(opaqueOut[0].ClipPosition[i]-wantOpaque[i])) > eps {
			t.Fatalf("opaque clip got %v, want %v", opaqueOut[0].ClipPosition, wantOpaque)
		}
		if math.Abs(float64(transparentOut[0].ClipPosition[i]-wantTransparent[i])) > eps {
			t.Fatalf("transparent clip got %v, want %v", transparentOut[0].ClipPosition, wantTransparent)
		}
	}
}

func TestProcessPatchesMatchesDirectStages(t *testing.T) {
	inputs := gridInputs(3)
	draw := testDraw(0, inputs)
	fc := testFrame()
	patches := [][tessellation.ControlPoints]uint32{{0, 1, 3}, {1, 4, 3}}

	out := NewGeometryPass(PassGBuffer, WithWorkers(1)).ProcessPatches(draw, patches, fc)

	var want []geometry.Vertex
	for _, indices := range patches {
		var control [tessellation.ControlPoints]geometry.Vertex
		for c, idx := range indices {
			control[c] = geometry.TransformVertex(inputs[idx], draw.BaseTransform, draw.BaseTransform, draw.Material, fc)
		}
		patch := tessellation.Control(control, fc.CameraPosition)
		points := DomainPoints(patch.InsideFactor)
		evaluated := make([]geometry.Vertex, len(points))
		for p, bary := range points {
			evaluated[p] = tessellation.Evaluate(patch, bary, draw.Material, nil, fc)
		}
		for _, tri := range DomainTriangles(patch.InsideFactor) {
			want = append(want, evaluated[tri[0]], evaluated[tri[1]], evaluated[tri[2]])
		}
	}

	if len(out) != len(want) {
		t.Fatalf("outputs differ in length: %d vs %d", len(out), len(want))
	}
	for i := range out {
		vertexEqual(t, out[i], want[i], "patch stage composition")
	}
}

func TestProcessPatchesParallelMatchesSerial(t *testing.T) {
	inputs := gridInputs(20)
	draw := testDraw(0, inputs)
	fc := testFrame()
	// A close camera drives every patch toward the maximum factor and the
	// emitted vertex count explodes. Hover high above the grid center so
	// factors land in the mid single digits while patches stay subdivided.
	fc.CameraPosition = mgl32.Vec3{5.75, 28, 2.75}

	var patches [][tessellation.ControlPoints]uint32
	for row := range 19 {
		for col := range 19 {
			a := uint32(row*20 + col)
			patches = append(patches, [tessellation.ControlPoints]uint32{a, a + 1, a + 20})
			patches = append(patches, [tessellation.ControlPoints]uint32{a + 1, a + 21, a + 20})
		}
	}

	var control [tessellation.ControlPoints]geometry.Vertex
	for c, idx := range patches[0] {
		control[c] = geometry.TransformVertex(inputs[idx], draw.BaseTransform, draw.BaseTransform, draw.Material, fc)
	}
	sampleFactor := tessellation.Control(control, fc.CameraPosition).InsideFactor
	if sampleFactor <= 1 || sampleFactor > 16 {
		t.Fatalf("inside factor %v outside the intended range (1, 16]", sampleFactor)
	}

	serial := NewGeometryPass(PassGBuffer, WithWorkers(1)).ProcessPatches(draw, patches, fc)
	parallel := NewGeometryPass(PassGBuffer, WithWorkers(4)).ProcessPatches(draw, patches, fc)

	if len(serial) != len(parallel) {
		t.Fatalf("outputs differ in length: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		vertexEqual(t, serial[i], parallel[i], "parallel patch dispatch")
	}
}

func TestDomainPoints(t *testing.T) {
	tests := []struct {
		factor float32
		count  int
	}{
		{0, 3},
		{1, 3},
		{2, 6},
		{4, 15},
		{8, 45},
	}
	for _, tt := range tests {
		points := DomainPoints(tt.factor)
		if len(points) != tt.count {
			t.Fatalf("factor %v: got %d points, want %d", tt.factor, len(points), tt.count)
		}
		for _, p := range points {
			sum := p[0] + p[1] + p[2]
			if math.Abs(float64(sum-1)) > eps {
				t.Fatalf("factor %v: weights %v sum to %v", tt.factor, p, sum)
			}
		}
	}
}

func TestDomainTriangles(t *testing.T) {
	for _, factor := range []float32{1, 2, 3, 8} {
		n := int(factor)
		points := DomainPoints(factor)
		triangles := DomainTriangles(factor)
		if len(triangles) != n*n {
			t.Fatalf("factor %v: got %d triangles, want %d", factor, len(triangles), n*n)
		}

		seen := make(map[int]bool)
		for _, tri := range triangles {
			for _, idx := range tri {
				if idx < 0 || idx >= len(points) {
					t.Fatalf("factor %v: index %d out of range", factor, idx)
				}
				seen[idx] = true
			}
		}
		// Every lattice point belongs to at least one triangle.
		if len(seen) != len(points) {
			t.Fatalf("factor %v: %d of %d points referenced", factor, len(seen), len(points))
		}
	}
}

func TestStatsAccumulate(t *testing.T) {
	inputs := gridInputs(4)
	draw := testDraw(0, inputs)
	fc := testFrame()

	pass := NewGeometryPass(PassDepthOnly, WithWorkers(1))
	pass.Process(draw, fc)
	pass.Process(draw, fc)
	out := pass.ProcessPatches(draw, [][tessellation.ControlPoints]uint32{{0, 1, 4}}, fc)

	stats := pass.Stats()
	if stats.Vertices != uint64(2*len(inputs)) {
		t.Fatalf("vertices: got %d, want %d", stats.Vertices, 2*len(inputs))
	}
	if stats.Patches != 1 {
		t.Fatalf("patches: got %d, want 1", stats.Patches)
	}
	if stats.Generated != uint64(len(out)) {
		t.Fatalf("generated: got %d, want %d", stats.Generated, len(out))
	}
}
