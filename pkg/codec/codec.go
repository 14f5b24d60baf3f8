package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/disintegration/imaging"
)

var (
	// ErrCodecUnavailable means the image codec failed its startup self-check.
	ErrCodecUnavailable = errors.New("image codec unavailable")
	// ErrUnsupportedFormat means the decoded data is not in the codec's format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Codec decodes and encodes one raster format
type Codec interface {
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
	// Extension is the lowercase file extension, without the dot.
	Extension() string
}

// PNG reads and writes PNG images, the only supported format with alpha
type PNG struct {
	level png.CompressionLevel
}

// NewPNG creates a PNG codec that writes with the best lossless compression
func NewPNG() *PNG {
	return &PNG{level: png.BestCompression}
}

// NewPNGWithLevel creates a PNG codec with a custom compression level
func NewPNGWithLevel(level png.CompressionLevel) *PNG {
	return &PNG{level: level}
}

// Extension returns "png"
func (c *PNG) Extension() string {
	return "png"
}

// Decode decodes a PNG image and converts it to NRGBA
func (c *PNG) Decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if !strings.EqualFold(format, c.Extension()) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return imaging.Clone(img), nil
}

// Encode writes img as PNG
func (c *PNG) Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(c.level)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Check round-trips a tiny image through c. A failure means the codec
// cannot be used at all and the caller should stop.
func Check(c Codec) error {
	if c == nil {
		return fmt.Errorf("%w: no codec configured", ErrCodecUnavailable)
	}
	sample := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	sample.Pix[3] = 0xff

	var buf bytes.Buffer
	if err := c.Encode(&buf, sample); err != nil {
		return fmt.Errorf("%w: %v", ErrCodecUnavailable, err)
	}
	img, err := c.Decode(&buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCodecUnavailable, err)
	}
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		return fmt.Errorf("%w: round trip produced %dx%d", ErrCodecUnavailable, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return nil
}

// InstallHint is printed when Check fails
const InstallHint = "rebuild with the image codecs available:\n  go mod download github.com/disintegration/imaging golang.org/x/image"
