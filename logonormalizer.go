// Package logonormalizer normalizes directories of transparent PNG logos onto
// a uniform square canvas.
//
// Every logo is autocropped to its visible pixels, scaled uniformly so its
// longer side fills a margin box (95% of the canvas by default), centered on
// a transparent canvas and written back over the original file.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"log"
//
//		logonormalizer "github.com/menta2k/logo-normalizer"
//	)
//
//	func main() {
//		ln, err := logonormalizer.New()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		summary, err := ln.NormalizeDir(context.Background(), "public/logos")
//		if err != nil {
//			log.Fatal(err)
//		}
//		log.Printf("normalized %d logo(s)", len(summary.Results))
//	}
//
// The package consists of these components:
//
//  1. Analyzer (pkg/analyzer): image info and the bounding box of visible pixels
//  2. Cropper (pkg/cropper): autocrop to that bounding box
//  3. Resample (pkg/resample): resize and alpha-aware composite backends
//  4. Normalizer (pkg/normalizer): the canvas geometry and the full transform
//  5. Codec (pkg/codec): PNG decoding and optimized encoding
//  6. Processing (pkg/processing): the sequential in-place directory run
package logonormalizer

import (
	"context"
	"fmt"
	"image"

	"github.com/spf13/afero"

	"github.com/menta2k/logo-normalizer/pkg/codec"
	"github.com/menta2k/logo-normalizer/pkg/normalizer"
	"github.com/menta2k/logo-normalizer/pkg/processing"
	"github.com/menta2k/logo-normalizer/pkg/resample"
	"github.com/menta2k/logo-normalizer/pkg/types"
)

// Version of the logo normalizer library
const Version = "1.0.0"

// LogoNormalizer provides a high-level interface over the normalization pipeline
type LogoNormalizer struct {
	codec      codec.Codec
	normalizer *normalizer.Normalizer
	processor  *processing.Processor
}

// New creates a LogoNormalizer with default options working on the OS filesystem
func New() (*LogoNormalizer, error) {
	return NewWithConfig(afero.NewOsFs(), normalizer.DefaultOptions(), resample.Default)
}

// NewWithConfig creates a LogoNormalizer with custom options and resample filter
func NewWithConfig(fs afero.Fs, opts normalizer.Options, filter string) (*LogoNormalizer, error) {
	c := codec.NewPNG()
	if err := codec.Check(c); err != nil {
		return nil, err
	}

	r, err := resample.ByName(filter)
	if err != nil {
		return nil, err
	}

	n, err := normalizer.NewWithResampler(opts, r)
	if err != nil {
		return nil, fmt.Errorf("failed to create normalizer: %w", err)
	}

	return &LogoNormalizer{
		codec:      c,
		normalizer: n,
		processor:  processing.NewProcessor(fs, c, n),
	}, nil
}

// NormalizeImage normalizes a decoded image in memory
func (ln *LogoNormalizer) NormalizeImage(img image.Image) (normalizer.Result, error) {
	return ln.normalizer.Normalize(img)
}

// NormalizeFile normalizes one file in place
func (ln *LogoNormalizer) NormalizeFile(ctx context.Context, path string) types.FileResult {
	return ln.processor.ProcessFile(ctx, path)
}

// NormalizeDir normalizes every PNG directly inside dir in place
func (ln *LogoNormalizer) NormalizeDir(ctx context.Context, dir string) (*types.Summary, error) {
	return ln.processor.Run(ctx, dir)
}

// Options returns the geometry options in use
func (ln *LogoNormalizer) Options() normalizer.Options {
	return ln.normalizer.Options()
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
