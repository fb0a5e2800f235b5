package surface

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParamsSource is the canonical WGSL definition of the MaterialParams struct.
// Matches GPUMaterialParams layout exactly (32 bytes, std430 aligned).
//
//go:embed assets/material_params.wgsl
var GPUMaterialParamsSource string

// GPUMaterialParams is the GPU-aligned representation of the per-draw material
// parameter uniform. Matches the WGSL MaterialParams struct layout exactly
// (see GPUMaterialParamsSource).
// Size: 32 bytes (2 × vec2<f32> + 3 × f32 + u32, std430 aligned).
type GPUMaterialParams struct {
	Tiling         [2]float32 // offset  0: UV tiling (8 bytes)
	Offset         [2]float32 // offset  8: UV offset (8 bytes)
	LocalWidth     float32    // offset 16: local-space width extent (4 bytes)
	LocalHeight    float32    // offset 20: local-space height extent (4 bytes)
	HeightStrength float32    // offset 24: height displacement strength (4 bytes)
	Flags          uint32     // offset 28: capability bitmask (4 bytes)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Tiling[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Tiling[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Offset[0]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Offset[1]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.LocalWidth))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.LocalHeight))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.HeightStrength))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(g.Flags))
	return buf
}

// PackParams converts material Params into their GPU-aligned representation.
//
// Parameters:
//   - p: the material parameters to pack
//
// Returns:
//   - GPUMaterialParams: the GPU-aligned uniform data
func PackParams(p Params) GPUMaterialParams {
	return GPUMaterialParams{
		Tiling:         [2]float32(p.Tiling),
		Offset:         [2]float32(p.Offset),
		LocalWidth:     p.LocalWidth,
		LocalHeight:    p.LocalHeight,
		HeightStrength: p.HeightStrength,
		Flags:          uint32(p.Flags),
	}
}
