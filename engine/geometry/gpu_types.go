package geometry

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexInputSource is the canonical WGSL definition of the VertexInput struct.
// Matches GPUVertexInput layout exactly (48 bytes, std430 aligned).
//
//go:embed assets/vertex_input.wgsl
var GPUVertexInputSource string

// GPUVertexInput is the GPU-aligned representation of one object-space vertex
// as bound by the host draw call. Matches the WGSL VertexInput struct layout
// exactly (see GPUVertexInputSource).
// Size: 48 bytes (std430 aligned, no padding required).
type GPUVertexInput struct {
	Position [4]float32 // offset  0: homogeneous object-space position (16 bytes)
	UV       [2]float32 // offset 16: texture coordinate (8 bytes)
	Normal   [3]float32 // offset 24: object-space normal (12 bytes)
	Tangent  [3]float32 // offset 36: object-space tangent (12 bytes)
}

// Size returns the size of the GPUVertexInput struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertexInput) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertexInput struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUVertexInput) Marshal() []byte {
	buf := make([]byte, 48)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.UV[0]))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.UV[1]))
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[24+i*4:], math.Float32bits(g.Normal[i]))
		binary.LittleEndian.PutUint32(buf[36+i*4:], math.Float32bits(g.Tangent[i]))
	}
	return buf
}

// GPUInstanceTransformSource is the canonical WGSL definition of the InstanceTransform struct.
// Matches GPUInstanceTransform layout exactly (64 bytes, std430 aligned).
//
//go:embed assets/instance_transform.wgsl
var GPUInstanceTransformSource string

// GPUInstanceTransform is the GPU-aligned representation of one per-instance
// transform. Matches the WGSL InstanceTransform struct layout exactly (see
// GPUInstanceTransformSource).
// Size: 64 bytes (mat4x4<f32>, std430 aligned, no padding required).
type GPUInstanceTransform struct {
	Transform [16]float32 // offset 0: per-instance object transform (64 bytes)
}

// Size returns the size of the GPUInstanceTransform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUInstanceTransform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstanceTransform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUInstanceTransform) Marshal() []byte {
	buf := make([]byte, 64)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Transform[i]))
	}
	return buf
}

// GPUShadedVertex is the GPU-aligned representation of one CPU-evaluated
// output vertex for the preview renderer: animated world position plus vertex
// color, with the projection left to the preview shader.
// Size: 32 bytes (vec3<f32> + pad + vec4<f32>, std430 aligned).
type GPUShadedVertex struct {
	Position [3]float32 // offset  0: animated world-space position (12 bytes)
	_pad     float32    // offset 12: padding to 16-byte color alignment
	Color    [4]float32 // offset 16: vertex RGBA color (16 bytes)
}

// Size returns the size of the GPUShadedVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUShadedVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUShadedVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUShadedVertex) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	return buf
}

// ShadedVertex packs a finished vertex record into its preview-renderer form.
//
// Parameters:
//   - v: the finished vertex record
//
// Returns:
//   - GPUShadedVertex: the GPU-aligned preview vertex
func ShadedVertex(v Vertex) GPUShadedVertex {
	return GPUShadedVertex{
		Position: [3]float32(v.WorldPosition),
		Color:    [4]float32(v.Color),
	}
}
