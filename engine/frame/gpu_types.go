package frame

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFrameConstantsSource is the canonical WGSL definition of the FrameConstants struct.
// Matches GPUFrameConstants layout exactly (304 bytes, std430 aligned).
//
//go:embed assets/frame_constants.wgsl
var GPUFrameConstantsSource string

// GPUFrameConstants is the GPU-aligned representation of the frame constant
// uniform buffer. Matches the WGSL FrameConstants struct layout exactly (see
// GPUFrameConstantsSource).
// Size: 304 bytes (4 × mat4x4<f32> + 3 × 16-byte tail blocks, std430 aligned).
type GPUFrameConstants struct {
	ViewProjection               [16]float32 // offset   0: jittered view-projection matrix (64 bytes)
	PrevViewProjection           [16]float32 // offset  64: previous jittered view-projection matrix (64 bytes)
	ViewProjectionUnjittered     [16]float32 // offset 128: unjittered view-projection matrix (64 bytes)
	PrevViewProjectionUnjittered [16]float32 // offset 192: previous unjittered view-projection matrix (64 bytes)
	CameraPosition               [3]float32  // offset 256: world-space camera position (12 bytes)
	Time                         float32     // offset 268: frame time in seconds (4 bytes)
	Wind                         [3]float32  // offset 272: world-space wind vector (12 bytes)
	DeltaTime                    float32     // offset 284: frame delta time in seconds (4 bytes)
	LastMovementTime             float32     // offset 288: camera last-movement timestamp (4 bytes)
	_pad                         [3]float32  // offset 292: padding to 304 bytes
}

// Size returns the size of the GPUFrameConstants struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUFrameConstants) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrameConstants struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 304-byte buffer ready for GPU upload.
func (g *GPUFrameConstants) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
	}
	for i := range 16 {
		put(i*4, g.ViewProjection[i])
		put(64+i*4, g.PrevViewProjection[i])
		put(128+i*4, g.ViewProjectionUnjittered[i])
		put(192+i*4, g.PrevViewProjectionUnjittered[i])
	}
	for i := range 3 {
		put(256+i*4, g.CameraPosition[i])
		put(272+i*4, g.Wind[i])
	}
	put(268, g.Time)
	put(284, g.DeltaTime)
	put(288, g.LastMovementTime)
	return buf
}

// Pack converts a frame Constants snapshot into its GPU-aligned representation.
//
// Parameters:
//   - c: the frame constant block to pack
//
// Returns:
//   - GPUFrameConstants: the GPU-aligned uniform data
func Pack(c Constants) GPUFrameConstants {
	return GPUFrameConstants{
		ViewProjection:               [16]float32(c.ViewProjection),
		PrevViewProjection:           [16]float32(c.PrevViewProjection),
		ViewProjectionUnjittered:     [16]float32(c.ViewProjectionUnjittered),
		PrevViewProjectionUnjittered: [16]float32(c.PrevViewProjectionUnjittered),
		CameraPosition:               [3]float32(c.CameraPosition),
		Time:                         c.Time,
		Wind:                         [3]float32(c.Wind),
		DeltaTime:                    c.DeltaTime,
		LastMovementTime:             c.LastMovementTime,
	}
}
