package engine

import (
	"testing"

	"github.com/piwi3910/CircleMosaic/internal/model"
	"github.com/piwi3910/CircleMosaic/internal/raster"
	"github.com/stretchr/testify/require"
)

// grayRamp builds a single-channel image whose k-th pixel is k%255+1, so
// every pixel of a small image has a distinct nonzero value.
func grayRamp(t *testing.T, w, h int) *raster.Buffer {
	t.Helper()
	b, err := raster.New(w, h, 1)
	require.NoError(t, err)
	for k := range b.Pix {
		b.Pix[k] = byte(k%255 + 1)
	}
	return b
}

// rgbPattern builds a three-channel image with a smooth gradient.
func rgbPattern(t *testing.T, w, h int) *raster.Buffer {
	t.Helper()
	b, err := raster.New(w, h, 3)
	require.NoError(t, err)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			px := b.At(model.Point{I: i, J: j})
			px[0] = byte(i * 255 / h)
			px[1] = byte(j * 255 / w)
			px[2] = byte((i + j) % 256)
		}
	}
	return b
}

// fastSettings is the dense profile with sampling trimmed for quick tests.
func fastSettings() model.Settings {
	s := model.DefaultSettings()
	s.MaxRadius = 8
	s.MaxDepth = 6
	s.Seed = 1
	return s
}

// fastSparseSettings is the sparse profile with coarse test rays.
func fastSparseSettings() model.Settings {
	s := model.GetProfile("sparse")
	s.MaxRadius = 12
	s.Likelihood = 0.3
	s.AngleStep = 0.05
	s.Seed = 1
	return s
}

func newTestCanvas(t *testing.T, original *raster.Buffer, mode model.CanvasMode) *Canvas {
	t.Helper()
	c, err := NewCanvas(original, mode, 0)
	require.NoError(t, err)
	return c
}
