package display

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// Window shows one image at a time. The image is replaced on every
// Present, which makes it the streaming texture of the player.
type Window struct {
	app fyne.App
	win fyne.Window

	texture *canvas.Image

	closed    chan struct{}
	closeOnce sync.Once
}

func New(a fyne.App, title string, width, height int) *Window {
	w := &Window{
		app:    a,
		win:    a.NewWindow(title),
		closed: make(chan struct{}),
	}

	w.texture = canvas.NewImageFromImage(nil)
	w.texture.FillMode = canvas.ImageFillContain
	w.texture.ScaleMode = canvas.ImageScaleFastest

	w.win.SetContent(w.texture)
	w.win.Resize(fyne.NewSize(float32(width), float32(height)))
	w.win.CenterOnScreen()
	w.win.SetOnClosed(w.markClosed)

	return w
}

func (w *Window) markClosed() {
	w.closeOnce.Do(func() { close(w.closed) })
}

// Present hands img to the UI goroutine. img must not be modified afterwards.
func (w *Window) Present(img image.Image) {
	fyne.Do(func() { w.show(img) })
}

func (w *Window) show(img image.Image) {
	w.texture.Image = img
	w.texture.Refresh()
}

// Closed is closed once the user closes the window.
func (w *Window) Closed() <-chan struct{} {
	return w.closed
}

// Run shows the window and blocks on the UI loop. It must be called from
// the main goroutine.
func (w *Window) Run() {
	w.win.ShowAndRun()
}

func (w *Window) Quit() {
	fyne.Do(w.app.Quit)
}
