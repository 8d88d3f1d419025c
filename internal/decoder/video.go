package decoder

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
)

type VideoStream struct {
	st *astiav.Stream
	cc *astiav.CodecContext

	df *astiav.Frame

	closer *astikit.Closer
}

func NewVideoStream() *VideoStream {
	vst := &VideoStream{
		closer: astikit.NewCloser(),
	}

	vst.df = astiav.AllocFrame()
	vst.closer.Add(vst.df.Free)

	return vst
}

func (vst *VideoStream) Close() {
	vst.closer.Close()
}

func (vst *VideoStream) Index() int {
	return vst.st.Index()
}

func (vst *VideoStream) CodecContext() *astiav.CodecContext {
	return vst.cc
}

func (vst *VideoStream) Width() int {
	return vst.cc.Width()
}

func (vst *VideoStream) Height() int {
	return vst.cc.Height()
}

func (vst *VideoStream) Load(s *astiav.Stream) error {
	if s == nil {
		return ErrNoVideo
	}

	cc, err := openCodec(s, astiav.MediaTypeVideo, vst.closer)
	if err != nil {
		return fmt.Errorf("video stream: %w", err)
	}

	vst.st = s
	vst.cc = cc

	return nil
}

func (vst *VideoStream) Decode(pkt *astiav.Packet, fn FrameFunc) error {
	if err := vst.cc.SendPacket(pkt); err != nil {
		return fmt.Errorf("video decode: sending packet to video decoder failed: %w", err)
	}

	if err := receive(vst.cc, vst.df, fn); err != nil {
		return fmt.Errorf("video decode: %w", err)
	}

	return nil
}

// Flush signals the end of input and hands the frames still buffered in
// the decoder to fn.
func (vst *VideoStream) Flush(fn FrameFunc) error {
	if err := vst.cc.SendPacket(nil); err != nil {
		return fmt.Errorf("video flush: sending eof failed: %w", err)
	}

	if err := receive(vst.cc, vst.df, fn); err != nil {
		return fmt.Errorf("video flush: %w", err)
	}

	return nil
}
