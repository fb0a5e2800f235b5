// package texture provides the sampling service consumed by the tessellation
// evaluation stage. The geometry core only ever reads the alpha channel of a
// height texture, but the Sampler interface returns the full filtered texel so
// other pipeline stages can share implementations.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/verdant-engine/verdant-go/common"
)

// Sampler returns a filtered texel for a UV coordinate and mip level.
// Implementations must be safe for concurrent use: the tessellation stages
// sample from many invocations at once.
type Sampler interface {
	// Sample returns the filtered RGBA texel at uv for the given mip level.
	// UV coordinates outside [0, 1] wrap (repeat addressing).
	//
	// Parameters:
	//   - uv: the texture coordinate
	//   - mip: the mip level (implementations may ignore it)
	//
	// Returns:
	//   - mgl32.Vec4: the filtered RGBA texel, each channel in [0, 1]
	Sample(uv mgl32.Vec2, mip float32) mgl32.Vec4
}

// imageSampler is a bilinear, repeat-addressed Sampler over a decoded RGBA image.
type imageSampler struct {
	pixels        []byte
	width, height int
}

// Ensure imageSampler implements Sampler.
var _ Sampler = &imageSampler{}

// NewImageSampler creates a Sampler over an already-decoded RGBA pixel buffer
// (4 bytes per pixel, row-major).
//
// Parameters:
//   - pixels: RGBA pixel data, len must be width*height*4
//   - width: image width in pixels
//   - height: image height in pixels
//
// Returns:
//   - Sampler: the image-backed sampler
//   - error: error if the buffer does not match the dimensions
func NewImageSampler(pixels []byte, width, height int) (Sampler, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid sampler dimensions %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel buffer is %d bytes, want %d", len(pixels), width*height*4)
	}
	return &imageSampler{pixels: pixels, width: width, height: height}, nil
}

// NewFileSampler decodes a PNG or JPEG image from disk and wraps it in a Sampler.
//
// Parameters:
//   - path: the image file path
//
// Returns:
//   - Sampler: the image-backed sampler
//   - error: error if the file cannot be opened or decoded
func NewFileSampler(path string) (Sampler, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture file %s: %w", path, err)
	}
	return newSamplerFromImage(img)
}

// NewBytesSampler decodes PNG or JPEG bytes and wraps them in a Sampler.
//
// Parameters:
//   - data: raw encoded image bytes
//
// Returns:
//   - Sampler: the image-backed sampler
//   - error: error if the bytes cannot be decoded
func NewBytesSampler(data []byte) (Sampler, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded image: %w", err)
	}
	return newSamplerFromImage(img)
}

func newSamplerFromImage(img image.Image) (Sampler, error) {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return NewImageSampler(rgba.Pix, bounds.Dx(), bounds.Dy())
}

// texel returns the RGBA value at integer pixel coordinates with repeat wrapping.
func (s *imageSampler) texel(x, y int) mgl32.Vec4 {
	x = ((x % s.width) + s.width) % s.width
	y = ((y % s.height) + s.height) % s.height
	i := (y*s.width + x) * 4
	return mgl32.Vec4{
		float32(s.pixels[i]) / 255,
		float32(s.pixels[i+1]) / 255,
		float32(s.pixels[i+2]) / 255,
		float32(s.pixels[i+3]) / 255,
	}
}

func (s *imageSampler) Sample(uv mgl32.Vec2, _ float32) mgl32.Vec4 {
	// Bilinear filter with texel centers at half-pixel offsets.
	fx := uv.X()*float32(s.width) - 0.5
	fy := uv.Y()*float32(s.height) - 0.5
	x0 := int(common.Floor(fx))
	y0 := int(common.Floor(fy))
	tx := fx - common.Floor(fx)
	ty := fy - common.Floor(fy)

	c00 := s.texel(x0, y0)
	c10 := s.texel(x0+1, y0)
	c01 := s.texel(x0, y0+1)
	c11 := s.texel(x0+1, y0+1)

	top := common.MixVec4(c00, c10, tx)
	bottom := common.MixVec4(c01, c11, tx)
	return common.MixVec4(top, bottom, ty)
}

// Constant is a Sampler returning the same texel for every coordinate.
// Useful in tests and as a neutral height map.
type Constant mgl32.Vec4

// Ensure Constant implements Sampler.
var _ Sampler = Constant{}

// Sample returns the constant texel.
func (c Constant) Sample(_ mgl32.Vec2, _ float32) mgl32.Vec4 {
	return mgl32.Vec4(c)
}
