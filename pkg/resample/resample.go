// Package resample provides the resize and composite primitives used to
// place logo content on a canvas.
//
// Two backends are available: one built on github.com/disintegration/imaging
// (Lanczos or box filtering, the default) and one built on
// golang.org/x/image/draw (Catmull-Rom). Nearest-neighbor filters are not
// offered because they alias badly when shrinking logos.
package resample

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resampler resizes images and composites them onto a canvas
type Resampler interface {
	// Resize returns img scaled to exactly width x height.
	Resize(img image.Image, width, height int) *image.NRGBA
	// Composite returns a copy of dst with src drawn over it at the given point,
	// using src's alpha channel as the mask.
	Composite(dst *image.NRGBA, src image.Image, at image.Point) *image.NRGBA
}

// Default filter name
const Default = "lanczos"

var registry = map[string]func() Resampler{
	"lanczos":    func() Resampler { return NewImaging(imaging.Lanczos) },
	"box":        func() Resampler { return NewImaging(imaging.Box) },
	"catmullrom": func() Resampler { return NewXDraw(draw.CatmullRom) },
}

// ByName returns the resampler registered under name. An empty name selects Default.
func ByName(name string) (Resampler, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = Default
	}
	factory, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("unknown resample filter %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names lists the registered filter names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Imaging resamples with github.com/disintegration/imaging
type Imaging struct {
	filter imaging.ResampleFilter
}

// NewImaging creates an imaging-backed resampler using filter
func NewImaging(filter imaging.ResampleFilter) *Imaging {
	return &Imaging{filter: filter}
}

// Resize scales img to width x height
func (r *Imaging) Resize(img image.Image, width, height int) *image.NRGBA {
	if width <= 0 || height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}
	return imaging.Resize(img, width, height, r.filter)
}

// Composite draws src over dst at the given point
func (r *Imaging) Composite(dst *image.NRGBA, src image.Image, at image.Point) *image.NRGBA {
	return imaging.Overlay(dst, src, at, 1.0)
}

// XDraw resamples with golang.org/x/image/draw
type XDraw struct {
	interp draw.Interpolator
}

// NewXDraw creates an x/image/draw backed resampler using interp
func NewXDraw(interp draw.Interpolator) *XDraw {
	return &XDraw{interp: interp}
}

// Resize scales img to width x height
func (r *XDraw) Resize(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if dst.Bounds().Empty() {
		return dst
	}
	r.interp.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Composite draws src over dst at the given point
func (r *XDraw) Composite(dst *image.NRGBA, src image.Image, at image.Point) *image.NRGBA {
	out := image.NewNRGBA(dst.Bounds())
	draw.Draw(out, out.Bounds(), dst, dst.Bounds().Min, draw.Src)
	sb := src.Bounds()
	target := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(out, target, src, sb.Min, draw.Over)
	return out
}
