package decoder

import (
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
)

var (
	ErrNoVideo        = errors.New("decoder: no video stream")
	ErrNoAudio        = errors.New("decoder: no audio stream")
	ErrCodecNotFound  = errors.New("decoder: codec not found")
	ErrWrongMediaType = errors.New("decoder: wrong media type")
)

// FrameFunc receives a decoded frame. The frame is unreferenced once the
// callback returns.
type FrameFunc func(f *astiav.Frame) error

func openCodec(s *astiav.Stream, t astiav.MediaType, closer *astikit.Closer) (*astiav.CodecContext, error) {
	if s.CodecParameters().MediaType() != t {
		return nil, fmt.Errorf("%w: stream %d is %s", ErrWrongMediaType, s.Index(), s.CodecParameters().MediaType())
	}

	codec := astiav.FindDecoder(s.CodecParameters().CodecID())
	if codec == nil {
		return nil, fmt.Errorf("%w: %s", ErrCodecNotFound, s.CodecParameters().CodecID())
	}

	cc := astiav.AllocCodecContext(codec)
	if cc == nil {
		return nil, errors.New("opening codec: codec context is nil")
	}
	closer.Add(cc.Free)

	if err := s.CodecParameters().ToCodecContext(cc); err != nil {
		return nil, fmt.Errorf("opening codec: updating codec context failed: %w", err)
	}

	if err := cc.Open(codec, nil); err != nil {
		return nil, fmt.Errorf("opening codec: opening codec context failed: %w", err)
	}

	return cc, nil
}

// receive drains cc into f until the decoder asks for more input.
func receive(cc *astiav.CodecContext, f *astiav.Frame, fn FrameFunc) error {
	for {
		stop, err := receiveOne(cc, f, fn)
		if err != nil {
			return err
		}

		if stop {
			return nil
		}
	}
}

func receiveOne(cc *astiav.CodecContext, f *astiav.Frame, fn FrameFunc) (bool, error) {
	if err := cc.ReceiveFrame(f); err != nil {
		if errors.Is(err, astiav.ErrEof) || errors.Is(err, astiav.ErrEagain) {
			return true, nil
		}
		return true, fmt.Errorf("receiving frame failed: %w", err)
	}

	defer f.Unref()

	if err := fn(f); err != nil {
		return true, err
	}

	return false, nil
}
