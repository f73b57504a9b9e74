package compute

import "math"

// Quantize rounds value half away from zero and clamps it to a single colour channel.
func Quantize[T float32 | float64](value T) (valueQuantized uint8) {
	rounded := math.Round(float64(value))
	if rounded < 0 || math.IsNaN(rounded) {
		return 0
	} else if rounded > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(rounded)
}

// QuantizeVector converts a centroid back into a displayable pixel.
func QuantizeVector(vector Vector3) (pixel Pixel) {
	for i, value := range vector {
		pixel[i] = Quantize(value)
	}
	return pixel
}

// QuantizeSet converts every centroid of the set into a pixel.
func QuantizeSet(centroids CentroidSet) (palette []Pixel) {
	palette = make([]Pixel, len(centroids))
	for i, centroid := range centroids {
		palette[i] = QuantizeVector(centroid)
	}
	return palette
}
