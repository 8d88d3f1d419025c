package display

import (
	"image"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestNewWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := New(a, "clip", 320, 240)

	assert.Equal(t, "clip", w.win.Title())
	assert.Same(t, w.texture, w.win.Content())
	assert.Nil(t, w.texture.Image)
}

func TestShowReplacesTexture(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := New(a, "clip", 16, 16)

	first := image.NewYCbCr(image.Rect(0, 0, 16, 16), image.YCbCrSubsampleRatio420)
	second := image.NewYCbCr(image.Rect(0, 0, 16, 16), image.YCbCrSubsampleRatio420)

	w.show(first)
	assert.Same(t, first, w.texture.Image)

	w.show(second)
	assert.Same(t, second, w.texture.Image)
}

func TestClosedOnWindowClose(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	w := New(a, "clip", 16, 16)

	select {
	case <-w.Closed():
		t.Fatal("closed before the window was closed")
	default:
	}

	w.win.Close()

	select {
	case <-w.Closed():
	default:
		t.Fatal("window close did not signal")
	}

	assert.NotPanics(t, w.markClosed)
}
