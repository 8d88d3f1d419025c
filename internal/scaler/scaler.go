package scaler

import (
	"fmt"
	"image"

	"github.com/asticode/go-astiav"
)

var (
	PIXEL_FORMAT = astiav.PixelFormatYuv420P
	SCALE_FLAGS  = astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagLanczos)
)

// Scaler converts decoded frames to planar YUV 4:2:0 at their source size.
type Scaler struct {
	ssc *astiav.SoftwareScaleContext
	dst *astiav.Frame

	srcW, srcH int
	srcPix     astiav.PixelFormat
}

func New() *Scaler {
	return &Scaler{}
}

func (s *Scaler) Close() {
	if s.dst != nil {
		s.dst.Free()
		s.dst = nil
	}
	if s.ssc != nil {
		s.ssc.Free()
		s.ssc = nil
	}
}

func (s *Scaler) ensure(src *astiav.Frame) error {
	w, h, pix := src.Width(), src.Height(), src.PixelFormat()

	if s.ssc != nil && w == s.srcW && h == s.srcH && pix == s.srcPix {
		return nil
	}

	s.Close()

	ssc, err := astiav.CreateSoftwareScaleContext(w, h, pix, w, h, PIXEL_FORMAT, SCALE_FLAGS)
	if err != nil {
		return fmt.Errorf("scaler: creating scale context %dx%d %s failed: %w", w, h, pix, err)
	}

	dst := astiav.AllocFrame()
	dst.SetWidth(w)
	dst.SetHeight(h)
	dst.SetPixelFormat(PIXEL_FORMAT)
	if err := dst.AllocBuffer(1); err != nil {
		dst.Free()
		ssc.Free()
		return fmt.Errorf("scaler: allocating destination buffer failed: %w", err)
	}

	s.ssc = ssc
	s.dst = dst
	s.srcW, s.srcH, s.srcPix = w, h, pix

	return nil
}

// Convert scales src and returns the result as a new image the caller owns.
func (s *Scaler) Convert(src *astiav.Frame) (image.Image, error) {
	if err := s.ensure(src); err != nil {
		return nil, err
	}

	if err := s.ssc.ScaleFrame(src, s.dst); err != nil {
		return nil, fmt.Errorf("scaler: scaling frame failed: %w", err)
	}

	img, err := s.dst.Data().GuessImageFormat()
	if err != nil {
		return nil, fmt.Errorf("scaler: guessing image format failed: %w", err)
	}

	if err := s.dst.Data().ToImage(img); err != nil {
		return nil, fmt.Errorf("scaler: copying frame to image failed: %w", err)
	}

	return img, nil
}
