package compute

import (
	"errors"
	"fmt"
)

// Pixel is an 8-bit RGB sample.
type Pixel [3]uint8

// Vector returns the pixel as a floating point colour vector.
func (p Pixel) Vector() Vector3 {
	return Vector3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Vector3 is a colour vector in the floating domain.
type Vector3 [3]float64

// Add returns the component-wise sum of v and o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Div returns v with every component divided by d.
func (v Vector3) Div(d float64) Vector3 {
	return Vector3{v[0] / d, v[1] / d, v[2] / d}
}

// CentroidSet is an ordered list of cluster means. The index of a centroid is
// the identity of its cluster and never changes between iterations.
type CentroidSet []Vector3

// Clone returns an independent copy of the set.
func (c CentroidSet) Clone() CentroidSet {
	if c == nil {
		return nil
	}
	out := make(CentroidSet, len(c))
	copy(out, c)
	return out
}

// PixelBuffer is a row-major image of Width*Height pixels.
type PixelBuffer struct {
	Pixels []Pixel
	Width  int
	Height int
}

// ErrShape is returned when the pixel count does not match the image dimensions.
var ErrShape = errors.New("pixel count does not match image dimensions")

// NewPixelBuffer validates the shape and wraps the pixels.
func NewPixelBuffer(pixels []Pixel, width, height int) (PixelBuffer, error) {
	if width < 0 || height < 0 || width*height != len(pixels) {
		return PixelBuffer{}, errors.Join(ErrShape, fmt.Errorf("%dx%d != %d", width, height, len(pixels)))
	}
	return PixelBuffer{
		Pixels: pixels,
		Width:  width,
		Height: height,
	}, nil
}

func (b PixelBuffer) Len() int {
	return len(b.Pixels)
}
