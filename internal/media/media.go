package media

import (
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
)

var ErrStreamNotFound = errors.New("stream not found")

type Media struct {
	closer *astikit.Closer

	iformat *astiav.FormatContext
}

func Open(input string) (*Media, error) {
	m := &Media{
		closer: astikit.NewCloser(),
	}

	if m.iformat = astiav.AllocFormatContext(); m.iformat == nil {
		return nil, errors.New("media: format context is nil")
	}
	m.closer.Add(m.iformat.Free)

	if err := m.iformat.OpenInput(input, nil, nil); err != nil {
		m.closer.Close()
		return nil, fmt.Errorf("media: opening input failed: %w", err)
	}
	m.closer.Add(m.iformat.CloseInput)

	if err := m.iformat.FindStreamInfo(nil); err != nil {
		m.closer.Close()
		return nil, fmt.Errorf("media: finding stream info failed: %w", err)
	}

	return m, nil
}

func (m *Media) Close() {
	m.closer.Close()
}

// BestStream returns the stream libav ranks best for type t. related is the
// index of a stream the result should belong with, or -1.
func (m *Media) BestStream(t astiav.MediaType, related int) (*astiav.Stream, error) {
	s, _, err := m.iformat.FindBestStream(t, -1, related)
	if err != nil {
		if errors.Is(err, astiav.ErrStreamNotFound) {
			return nil, fmt.Errorf("media: %s: %w", t, ErrStreamNotFound)
		}
		return nil, fmt.Errorf("media: finding best %s stream failed: %w", t, err)
	}
	return s, nil
}

// ReadPacket fills pkt with the next packet and returns io.EOF at the end
// of the input.
func (m *Media) ReadPacket(pkt *astiav.Packet) error {
	if err := m.iformat.ReadFrame(pkt); err != nil {
		if errors.Is(err, astiav.ErrEof) {
			return io.EOF
		}
		return fmt.Errorf("media: reading packet failed: %w", err)
	}
	return nil
}

// FrameRate returns the nominal frame rate of a video stream, falling back
// from the decoder's rate to the container's guess.
func (m *Media) FrameRate(s *astiav.Stream, cc *astiav.CodecContext) astiav.Rational {
	if cc != nil {
		if r := cc.Framerate(); validRate(r) {
			return r
		}
	}
	if r := m.iformat.GuessFrameRate(s, nil); validRate(r) {
		return r
	}
	return s.AvgFrameRate()
}

func validRate(r astiav.Rational) bool {
	return r.Num() > 0 && r.Den() > 0
}
