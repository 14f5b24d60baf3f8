package analyzer

import (
	"fmt"
	"image"

	"github.com/menta2k/logo-normalizer/pkg/types"
)

// ImageAnalyzer inspects decoded images for size and visible content
type ImageAnalyzer struct {
	config Config
}

// Config holds configuration for the image analyzer
type Config struct {
	// AlphaThreshold is the alpha value a pixel must exceed to count as content.
	AlphaThreshold uint8
	MinImageSize   int
}

// New creates a new ImageAnalyzer with default configuration
func New() *ImageAnalyzer {
	return &ImageAnalyzer{
		config: Config{
			AlphaThreshold: 0,
			MinImageSize:   1,
		},
	}
}

// NewWithConfig creates a new ImageAnalyzer with custom configuration
func NewWithConfig(config Config) *ImageAnalyzer {
	return &ImageAnalyzer{config: config}
}

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int
	Height      int
	AspectRatio float64
	Area        int
}

// GetImageInfo returns basic information about an image
func (a *ImageAnalyzer) GetImageInfo(img image.Image) ImageInfo {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	info := ImageInfo{
		Width:  width,
		Height: height,
		Area:   width * height,
	}
	if height > 0 {
		info.AspectRatio = float64(width) / float64(height)
	}
	return info
}

// ValidateImage checks if an image meets minimum requirements
func (a *ImageAnalyzer) ValidateImage(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() < a.config.MinImageSize || bounds.Dy() < a.config.MinImageSize {
		return fmt.Errorf("image too small: %dx%d (minimum: %d)",
			bounds.Dx(), bounds.Dy(), a.config.MinImageSize)
	}
	return nil
}

// ContentBounds returns the smallest box containing every pixel whose alpha
// exceeds the configured threshold. ok is false when no such pixel exists.
func (a *ImageAnalyzer) ContentBounds(img image.Image) (box types.BoundingBox, ok bool) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return types.BoundingBox{}, false
	}

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	visit := func(x, y int) {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	switch src := img.(type) {
	case *image.NRGBA:
		a.scanPix(src.Pix, bounds, src.PixOffset, visit)
	case *image.RGBA:
		a.scanPix(src.Pix, bounds, src.PixOffset, visit)
	default:
		threshold := uint32(a.config.AlphaThreshold) * 0x101
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if _, _, _, alpha := img.At(x, y).RGBA(); alpha > threshold {
					visit(x, y)
				}
			}
		}
	}

	if maxX < minX || maxY < minY {
		return types.BoundingBox{}, false
	}
	return types.BoundingBox{Left: minX, Top: minY, Right: maxX + 1, Bottom: maxY + 1}, true
}

// scanPix walks 4-byte-per-pixel buffers whose alpha sits in the last byte.
func (a *ImageAnalyzer) scanPix(pix []uint8, bounds image.Rectangle, offset func(x, y int) int, visit func(x, y int)) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		i := offset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if pix[i+3] > a.config.AlphaThreshold {
				visit(x, y)
			}
			i += 4
		}
	}
}
