package decoder

import (
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
)

var (
	SAMPLE_RATE = 44100
	CHANNELS    = astiav.ChannelLayoutStereo.Channels()
)

// AudioStream opens the audio decoder for its output parameters. Its
// samples are never decoded.
type AudioStream struct {
	st *astiav.Stream
	cc *astiav.CodecContext

	closer *astikit.Closer
}

func NewAudioStream() *AudioStream {
	return &AudioStream{
		closer: astikit.NewCloser(),
	}
}

func (ast *AudioStream) Close() {
	ast.closer.Close()
}

func (ast *AudioStream) Index() int {
	return ast.st.Index()
}

func (ast *AudioStream) Load(s *astiav.Stream) error {
	if s == nil {
		return ErrNoAudio
	}

	cc, err := openCodec(s, astiav.MediaTypeAudio, ast.closer)
	if err != nil {
		return fmt.Errorf("audio stream: %w", err)
	}

	ast.st = s
	ast.cc = cc

	return nil
}

func (ast *AudioStream) SampleRate() int {
	if r := ast.cc.SampleRate(); r > 0 {
		return r
	}
	return SAMPLE_RATE
}

func (ast *AudioStream) Channels() int {
	if n := ast.cc.ChannelLayout().Channels(); n > 0 {
		return n
	}
	return CHANNELS
}
