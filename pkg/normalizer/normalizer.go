// Package normalizer places logo content on a fixed-size transparent square.
//
// Normalize runs the whole transform on one decoded image:
//
//  1. Autocrop to the bounding box of pixels with non-zero alpha.
//  2. Fit the content inside the margin box, floor(CanvasSize*MaxLogoScale)
//     pixels per side, scaling uniformly so the longer side touches it.
//  3. Center the resized content on a transparent CanvasSize x CanvasSize
//     canvas and composite it with its own alpha as the mask.
//
// Every division in the geometry truncates; Plan exposes that geometry
// without touching pixels.
package normalizer

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/menta2k/logo-normalizer/pkg/cropper"
	"github.com/menta2k/logo-normalizer/pkg/resample"
	"github.com/menta2k/logo-normalizer/pkg/types"
)

var (
	// ErrDegenerateContent means the content region has zero width or height.
	ErrDegenerateContent = errors.New("invalid image size")
	// ErrEmptyContent means the image has no pixel with non-zero alpha.
	ErrEmptyContent = errors.New("image has no visible content")
	// ErrInvalidOptions means the canvas size or scale cannot produce a canvas.
	ErrInvalidOptions = errors.New("invalid normalization options")
)

const (
	DefaultCanvasSize   = 400
	DefaultMaxLogoScale = 0.95
)

// Options holds the geometry parameters of the transform
type Options struct {
	CanvasSize   int
	MaxLogoScale float64
}

// DefaultOptions returns a 400px canvas with content filling at most 95% of it
func DefaultOptions() Options {
	return Options{
		CanvasSize:   DefaultCanvasSize,
		MaxLogoScale: DefaultMaxLogoScale,
	}
}

// Margin returns the longest edge the content may occupy on the canvas
func (o Options) Margin() int {
	return int(math.Floor(float64(o.CanvasSize) * o.MaxLogoScale))
}

// Validate checks that the options describe a usable canvas
func (o Options) Validate() error {
	if o.CanvasSize <= 0 {
		return fmt.Errorf("%w: canvas size must be positive, got %d", ErrInvalidOptions, o.CanvasSize)
	}
	if math.IsNaN(o.MaxLogoScale) || o.MaxLogoScale <= 0 || o.MaxLogoScale > 1 {
		return fmt.Errorf("%w: max logo scale must be in (0, 1], got %g", ErrInvalidOptions, o.MaxLogoScale)
	}
	if o.Margin() < 1 {
		return fmt.Errorf("%w: margin box for canvas %d at scale %g is empty", ErrInvalidOptions, o.CanvasSize, o.MaxLogoScale)
	}
	return nil
}

// Plan computes where content of the given size lands on the canvas.
//
// The longer side is set to the margin exactly and the shorter side is
// floor(short*margin/long) in integer arithmetic, which is the truncated
// value of short*scale without floating point drift. A shorter side that
// would truncate to zero is kept at one pixel.
func Plan(contentWidth, contentHeight int, opts Options) (types.Placement, error) {
	if contentWidth <= 0 || contentHeight <= 0 {
		return types.Placement{}, fmt.Errorf("%w: %dx%d", ErrDegenerateContent, contentWidth, contentHeight)
	}
	if err := opts.Validate(); err != nil {
		return types.Placement{}, err
	}

	margin := opts.Margin()
	scale := math.Min(float64(margin)/float64(contentWidth), float64(margin)/float64(contentHeight))

	var width, height int
	if contentWidth >= contentHeight {
		width = margin
		height = contentHeight * margin / contentWidth
	} else {
		height = margin
		width = contentWidth * margin / contentHeight
	}
	width = max(width, 1)
	height = max(height, 1)

	return types.Placement{
		ContentWidth:  contentWidth,
		ContentHeight: contentHeight,
		CanvasSize:    opts.CanvasSize,
		Margin:        margin,
		Scale:         scale,
		Width:         width,
		Height:        height,
		OffsetX:       (opts.CanvasSize - width) / 2,
		OffsetY:       (opts.CanvasSize - height) / 2,
	}, nil
}

// Result is a normalized image together with the geometry that produced it
type Result struct {
	Image *image.NRGBA
	// Content is the autocropped region in the source image coordinates.
	Content   types.BoundingBox
	Placement types.Placement
}

// Normalizer applies the transform with fixed options
type Normalizer struct {
	opts      Options
	cropper   *cropper.Cropper
	resampler resample.Resampler
}

// New creates a Normalizer that resamples with the default Lanczos filter
func New(opts Options) (*Normalizer, error) {
	r, err := resample.ByName(resample.Default)
	if err != nil {
		return nil, err
	}
	return NewWithResampler(opts, r)
}

// NewWithResampler creates a Normalizer using r for resizing and compositing
func NewWithResampler(opts Options, r resample.Resampler) (*Normalizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: no resampler", ErrInvalidOptions)
	}
	return &Normalizer{
		opts:      opts,
		cropper:   cropper.New(),
		resampler: r,
	}, nil
}

// Options returns the options the normalizer was built with
func (n *Normalizer) Options() Options {
	return n.opts
}

// Normalize maps img onto a transparent square canvas. It returns
// ErrDegenerateContent for zero-sized images and ErrEmptyContent for images
// without a single visible pixel.
func (n *Normalizer) Normalize(img image.Image) (Result, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return Result{}, fmt.Errorf("%w: %dx%d", ErrDegenerateContent, bounds.Dx(), bounds.Dy())
	}

	crop := n.cropper.Autocrop(img)
	if !crop.Found {
		return Result{}, ErrEmptyContent
	}

	cb := crop.Image.Bounds()
	placement, err := Plan(cb.Dx(), cb.Dy(), n.opts)
	if err != nil {
		return Result{}, err
	}

	resized := n.resampler.Resize(crop.Image, placement.Width, placement.Height)
	canvas := image.NewNRGBA(image.Rect(0, 0, n.opts.CanvasSize, n.opts.CanvasSize))
	out := n.resampler.Composite(canvas, resized, image.Pt(placement.OffsetX, placement.OffsetY))

	return Result{
		Image:     out,
		Content:   crop.Content,
		Placement: placement,
	}, nil
}
