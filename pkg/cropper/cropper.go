package cropper

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/logo-normalizer/pkg/analyzer"
	"github.com/menta2k/logo-normalizer/pkg/types"
)

// Cropper trims transparent padding from images
type Cropper struct {
	analyzer *analyzer.ImageAnalyzer
}

// New creates a new Cropper with the default analyzer
func New() *Cropper {
	return &Cropper{analyzer: analyzer.New()}
}

// SetAnalyzer allows setting a custom analyzer
func (c *Cropper) SetAnalyzer(a *analyzer.ImageAnalyzer) {
	c.analyzer = a
}

// CropResult contains the result of an autocrop
type CropResult struct {
	Image *image.NRGBA
	// Content is the cropped region in the source image coordinates.
	Content types.BoundingBox
	// Found is false when the source had no visible pixel and was left uncropped.
	Found bool
}

// Autocrop crops img to the bounding box of its visible pixels. When no pixel
// is visible the whole image is returned as the content region.
func (c *Cropper) Autocrop(img image.Image) CropResult {
	box, ok := c.analyzer.ContentBounds(img)
	if !ok {
		return CropResult{
			Image:   imaging.Clone(img),
			Content: types.BoxFromRect(img.Bounds()),
		}
	}
	return CropResult{
		Image:   imaging.Crop(img, box.Rect()),
		Content: box,
		Found:   true,
	}
}
