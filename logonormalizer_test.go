package logonormalizer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/logo-normalizer/pkg/codec"
	"github.com/menta2k/logo-normalizer/pkg/normalizer"
	"github.com/menta2k/logo-normalizer/pkg/processing"
	"github.com/menta2k/logo-normalizer/pkg/types"
)

// createTestImage creates a transparent image with an opaque block in the middle third
func createTestImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := height / 3; y < 2*height/3; y++ {
		for x := width / 3; x < 2*width/3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestNew(t *testing.T) {
	ln, err := New()
	require.NoError(t, err)
	require.NotNil(t, ln)

	assert.NotNil(t, ln.codec)
	assert.NotNil(t, ln.normalizer)
	assert.NotNil(t, ln.processor)
	assert.Equal(t, normalizer.DefaultOptions(), ln.Options())
}

func TestNewWithConfig(t *testing.T) {
	opts := normalizer.Options{CanvasSize: 256, MaxLogoScale: 0.5}

	ln, err := NewWithConfig(afero.NewMemMapFs(), opts, "catmullrom")
	require.NoError(t, err)
	assert.Equal(t, opts, ln.Options())

	_, err = NewWithConfig(afero.NewMemMapFs(), opts, "nearest")
	assert.Error(t, err)

	_, err = NewWithConfig(afero.NewMemMapFs(), normalizer.Options{CanvasSize: 0, MaxLogoScale: 1}, "")
	assert.ErrorIs(t, err, normalizer.ErrInvalidOptions)
}

func TestNormalizeImage(t *testing.T) {
	ln, err := New()
	require.NoError(t, err)

	result, err := ln.NormalizeImage(createTestImage(300, 300))
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 400, 400), result.Image.Bounds())
	assert.Equal(t, 100, result.Placement.ContentWidth)
	assert.Equal(t, image.Rect(10, 10, 390, 390), result.Placement.Rect())
}

func TestNormalizeDirAndFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	ln, err := NewWithConfig(fs, normalizer.Options{CanvasSize: 64, MaxLogoScale: 1}, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, codec.NewPNG().Encode(&buf, createTestImage(90, 30)))
	require.NoError(t, afero.WriteFile(fs, "/logos/acme.png", buf.Bytes(), 0o644))

	ctx := context.Background()
	summary, err := ln.NormalizeDir(ctx, "/logos")
	require.NoError(t, err)
	require.Len(t, summary.Results, 1)
	assert.Equal(t, types.StatusOK, summary.Results[0].Status)
	assert.Equal(t, "[ok] acme.png -> 64x64 centered (autocropped)", summary.Results[0].String())

	again := ln.NormalizeFile(ctx, "/logos/acme.png")
	assert.Equal(t, types.StatusOK, again.Status)
	assert.Equal(t, summary.Results[0].Placement.Rect(), again.Placement.Rect())

	_, err = ln.NormalizeDir(ctx, "/missing")
	assert.ErrorIs(t, err, processing.ErrDirectoryNotFound)
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
