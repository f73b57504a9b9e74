package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/expki/go-colorquant/compute"
	"github.com/expki/go-colorquant/config"
	"github.com/expki/go-colorquant/logger"
)

// Load decodes the image at path into a row-major 8-bit RGB buffer. Alpha is dropped.
func Load(path string) (compute.PixelBuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return compute.PixelBuffer{}, errors.Join(errors.New("failed to open image"), err)
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads any registered image format (PNG, JPEG, GIF).
func Decode(r io.Reader) (compute.PixelBuffer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return compute.PixelBuffer{}, errors.Join(errors.New("failed to decode image"), err)
	}
	bounds := img.Bounds()
	logger.Sugar().Debugf("Decoded %s image %dx%d", format, bounds.Dx(), bounds.Dy())

	pixels := make([]compute.Pixel, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			pixels = append(pixels, compute.Pixel{c.R, c.G, c.B})
		}
	}
	return compute.NewPixelBuffer(pixels, bounds.Dx(), bounds.Dy())
}

// Save encodes buffer to path. The format follows the extension: ".jpg" and
// ".jpeg" write JPEG, anything else writes PNG.
func Save(path string, buffer compute.PixelBuffer) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return errors.Join(errors.New("failed to create output directory"), err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Join(errors.New("failed to create image"), err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = errors.Join(errors.New("failed to close image"), closeErr)
		}
	}()
	return Encode(file, buffer, Format(path))
}

// Format returns "jpeg" or "png" for the extension of path.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return "png"
	}
}

// Encode writes buffer as a PNG or JPEG image.
func Encode(w io.Writer, buffer compute.PixelBuffer, format string) error {
	if buffer.Width*buffer.Height != len(buffer.Pixels) {
		return fmt.Errorf("%w: %dx%d buffer holds %d pixels", compute.ErrShape, buffer.Width, buffer.Height, len(buffer.Pixels))
	}
	img := ToImage(buffer)
	var err error
	switch format {
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: config.JPEG_QUALITY})
	case "png":
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return errors.Join(fmt.Errorf("failed to encode %s image", format), err)
	}
	return nil
}

// ToImage converts a pixel buffer into an opaque RGBA image.
func ToImage(buffer compute.PixelBuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))
	for i, pixel := range buffer.Pixels {
		offset := i * 4
		img.Pix[offset] = pixel[0]
		img.Pix[offset+1] = pixel[1]
		img.Pix[offset+2] = pixel[2]
		img.Pix[offset+3] = 0xff
	}
	return img
}
