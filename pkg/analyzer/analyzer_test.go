package analyzer

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/logo-normalizer/pkg/types"
)

// createTestImage creates a transparent image with an opaque block at rect
func createTestImage(width, height int, rect image.Rectangle) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, color.NRGBA{200, 40, 40, 255})
		}
	}
	return img
}

func TestNew(t *testing.T) {
	analyzer := New()
	require.NotNil(t, analyzer)
	assert.Equal(t, uint8(0), analyzer.config.AlphaThreshold)
	assert.Equal(t, 1, analyzer.config.MinImageSize)
}

func TestNewWithConfig(t *testing.T) {
	analyzer := NewWithConfig(Config{AlphaThreshold: 16, MinImageSize: 10})
	require.NotNil(t, analyzer)
	assert.Equal(t, uint8(16), analyzer.config.AlphaThreshold)
	assert.Equal(t, 10, analyzer.config.MinImageSize)
}

func TestGetImageInfo(t *testing.T) {
	analyzer := New()
	info := analyzer.GetImageInfo(createTestImage(400, 300, image.Rectangle{}))

	assert.Equal(t, 400, info.Width)
	assert.Equal(t, 300, info.Height)
	assert.Equal(t, float64(400)/float64(300), info.AspectRatio)
	assert.Equal(t, 120000, info.Area)

	empty := analyzer.GetImageInfo(image.NewNRGBA(image.Rectangle{}))
	assert.Zero(t, empty.AspectRatio)
}

func TestValidateImage(t *testing.T) {
	analyzer := NewWithConfig(Config{MinImageSize: 100})

	assert.NoError(t, analyzer.ValidateImage(createTestImage(200, 200, image.Rectangle{})))
	assert.Error(t, analyzer.ValidateImage(createTestImage(50, 50, image.Rectangle{})))
}

func TestContentBounds(t *testing.T) {
	analyzer := New()

	t.Run("Should find the block inside a transparent border", func(t *testing.T) {
		img := createTestImage(100, 100, image.Rect(20, 20, 80, 80))

		box, ok := analyzer.ContentBounds(img)

		require.True(t, ok)
		assert.Equal(t, types.BoundingBox{Left: 20, Top: 20, Right: 80, Bottom: 80}, box)
		assert.Equal(t, 60, box.Width())
		assert.Equal(t, 60, box.Height())
	})

	t.Run("Should cover the whole image when fully opaque", func(t *testing.T) {
		img := createTestImage(80, 20, image.Rect(0, 0, 80, 20))

		box, ok := analyzer.ContentBounds(img)

		require.True(t, ok)
		assert.Equal(t, img.Bounds(), box.Rect())
	})

	t.Run("Should report no content for a fully transparent image", func(t *testing.T) {
		_, ok := analyzer.ContentBounds(createTestImage(30, 30, image.Rectangle{}))
		assert.False(t, ok)
	})

	t.Run("Should count a single faint pixel as content", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		img.SetNRGBA(7, 3, color.NRGBA{0, 0, 0, 1})

		box, ok := analyzer.ContentBounds(img)

		require.True(t, ok)
		assert.Equal(t, types.BoundingBox{Left: 7, Top: 3, Right: 8, Bottom: 4}, box)
	})

	t.Run("Should honor image bounds that do not start at the origin", func(t *testing.T) {
		base := createTestImage(50, 50, image.Rect(10, 15, 20, 25))
		sub := base.SubImage(image.Rect(5, 5, 45, 45))

		box, ok := analyzer.ContentBounds(sub)

		require.True(t, ok)
		assert.Equal(t, types.BoundingBox{Left: 10, Top: 15, Right: 20, Bottom: 25}, box)
	})

	t.Run("Should handle premultiplied and generic images", func(t *testing.T) {
		rgba := image.NewRGBA(image.Rect(0, 0, 10, 10))
		rgba.Set(2, 4, color.RGBA{10, 10, 10, 128})
		box, ok := analyzer.ContentBounds(rgba)
		require.True(t, ok)
		assert.Equal(t, types.BoundingBox{Left: 2, Top: 4, Right: 3, Bottom: 5}, box)

		gray := image.NewGray(image.Rect(0, 0, 6, 4))
		box, ok = analyzer.ContentBounds(gray)
		require.True(t, ok)
		assert.Equal(t, types.BoundingBox{Left: 0, Top: 0, Right: 6, Bottom: 4}, box)
	})

	t.Run("Should ignore pixels at or below the alpha threshold", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		img.SetNRGBA(1, 1, color.NRGBA{0, 0, 0, 8})
		img.SetNRGBA(5, 6, color.NRGBA{0, 0, 0, 200})

		box, ok := NewWithConfig(Config{AlphaThreshold: 8}).ContentBounds(img)

		require.True(t, ok)
		assert.Equal(t, types.BoundingBox{Left: 5, Top: 6, Right: 6, Bottom: 7}, box)
	})
}

func BenchmarkContentBounds(b *testing.B) {
	analyzer := New()
	img := createTestImage(1920, 1080, image.Rect(300, 200, 1600, 900))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		analyzer.ContentBounds(img)
	}
}
