package processing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/menta2k/logo-normalizer/internal/logger"
	"github.com/menta2k/logo-normalizer/internal/utils"
	"github.com/menta2k/logo-normalizer/pkg/analyzer"
	"github.com/menta2k/logo-normalizer/pkg/codec"
	"github.com/menta2k/logo-normalizer/pkg/normalizer"
	"github.com/menta2k/logo-normalizer/pkg/types"
)

var (
	// ErrDirectoryNotFound means the logo directory does not exist. Nothing was touched.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNoMatchingFiles means the directory holds no file with the codec's extension.
	ErrNoMatchingFiles = errors.New("no matching files")
)

// Processor normalizes image files in place, one at a time
type Processor struct {
	fs         afero.Fs
	codec      codec.Codec
	normalizer *normalizer.Normalizer
	analyzer   *analyzer.ImageAnalyzer
}

// NewProcessor creates a processor working on fs
func NewProcessor(fs afero.Fs, c codec.Codec, n *normalizer.Normalizer) *Processor {
	return &Processor{
		fs:         fs,
		codec:      c,
		normalizer: n,
		analyzer:   analyzer.New(),
	}
}

// LoadImage decodes the image stored at path
func (p *Processor) LoadImage(path string) (image.Image, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.codec.Decode(f)
}

// SaveImage encodes img over path through a temporary file and returns the bytes written
func (p *Processor) SaveImage(img image.Image, path string) (int64, error) {
	return utils.WriteFileAtomic(p.fs, path, func(f afero.File) error {
		return p.codec.Encode(f, img)
	})
}

// ProcessFile normalizes one file. Failures are reported as a skip; the
// file is only written when normalization succeeded.
func (p *Processor) ProcessFile(ctx context.Context, path string) types.FileResult {
	log := logger.FromContext(ctx)
	name := filepath.Base(path)
	result := types.FileResult{Name: name, Path: path}

	skip := func(format string, args ...any) types.FileResult {
		result.Status = types.StatusSkip
		result.Reason = fmt.Sprintf(format, args...)
		log.Warn(result.String())
		return result
	}

	img, err := p.LoadImage(path)
	if err != nil {
		return skip("could not open: %v", err)
	}
	info := p.analyzer.GetImageInfo(img)
	log.Debug("decoded "+name, "width", info.Width, "height", info.Height)
	if err := p.analyzer.ValidateImage(img); err != nil {
		return skip("invalid image size %dx%d", info.Width, info.Height)
	}

	normalized, err := p.normalizer.Normalize(img)
	switch {
	case errors.Is(err, normalizer.ErrEmptyContent):
		return skip("no visible content")
	case errors.Is(err, normalizer.ErrDegenerateContent):
		return skip("invalid image size %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	case err != nil:
		return skip("normalize failed: %v", err)
	}

	written, err := p.SaveImage(normalized.Image, path)
	if err != nil {
		return skip("write failed: %v", err)
	}

	pl := normalized.Placement
	result.Status = types.StatusOK
	result.Content = normalized.Content
	result.Placement = &pl
	result.Bytes = written

	log.Info(result.String(),
		"content", fmt.Sprintf("%dx%d", pl.Width, pl.Height),
		"offset", fmt.Sprintf("%d,%d", pl.OffsetX, pl.OffsetY),
		"bytes", utils.FormatFileSize(written),
	)
	return result
}

// Run normalizes every matching file directly inside dir in name order.
// Per-file failures never stop the run. A missing directory or an empty
// match set returns ErrDirectoryNotFound or ErrNoMatchingFiles after
// logging a diagnostic. Cancelling ctx stops the run between files.
func (p *Processor) Run(ctx context.Context, dir string) (*types.Summary, error) {
	log := logger.FromContext(ctx)
	summary := &types.Summary{Dir: dir}

	if !utils.DirExists(p.fs, dir) {
		log.Warn("directory not found", "dir", dir)
		return summary, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	ext := p.codec.Extension()
	files, err := utils.ListFilesWithExtension(p.fs, dir, ext)
	if err != nil {
		return summary, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(files) == 0 {
		log.Warn(fmt.Sprintf("no .%s files found", ext), "dir", dir)
		return summary, fmt.Errorf("%w: no .%s files in %s", ErrNoMatchingFiles, ext, dir)
	}

	opts := p.normalizer.Options()
	log.Info(fmt.Sprintf("normalizing %d logo(s)", len(files)),
		"dir", dir,
		"canvas", opts.CanvasSize,
		"max_scale", opts.MaxLogoScale,
	)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			log.Warn("normalization interrupted", "processed", len(summary.Results), "remaining", len(files)-len(summary.Results))
			return summary, err
		}
		summary.Results = append(summary.Results, p.ProcessFile(ctx, path))
	}

	log.Info("done", "ok", summary.Count(types.StatusOK), "skipped", summary.Count(types.StatusSkip))
	return summary, nil
}
