package scaler

import (
	"image"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, w, h int, pix astiav.PixelFormat) *astiav.Frame {
	t.Helper()

	f := astiav.AllocFrame()
	t.Cleanup(f.Free)
	f.SetWidth(w)
	f.SetHeight(h)
	f.SetPixelFormat(pix)
	require.NoError(t, f.AllocBuffer(1))
	return f
}

func TestConvertToYCbCr(t *testing.T) {
	s := New()
	defer s.Close()

	img, err := s.Convert(frame(t, 64, 48, astiav.PixelFormatRgba))
	require.NoError(t, err)

	ycc, ok := img.(*image.YCbCr)
	require.True(t, ok, "got %T", img)
	assert.Equal(t, image.Rect(0, 0, 64, 48), ycc.Bounds())
	assert.Equal(t, image.YCbCrSubsampleRatio420, ycc.SubsampleRatio)
}

func TestConvertReturnsFreshImages(t *testing.T) {
	s := New()
	defer s.Close()

	src := frame(t, 32, 32, astiav.PixelFormatYuv420P)

	a, err := s.Convert(src)
	require.NoError(t, err)
	b, err := s.Convert(src)
	require.NoError(t, err)

	assert.NotSame(t, a, b)
}

func TestConvertRebuildsOnSizeChange(t *testing.T) {
	s := New()
	defer s.Close()

	_, err := s.Convert(frame(t, 32, 32, astiav.PixelFormatYuv420P))
	require.NoError(t, err)
	first := s.ssc

	img, err := s.Convert(frame(t, 64, 16, astiav.PixelFormatYuv420P))
	require.NoError(t, err)

	assert.NotSame(t, first, s.ssc)
	assert.Equal(t, image.Rect(0, 0, 64, 16), img.Bounds())
}
