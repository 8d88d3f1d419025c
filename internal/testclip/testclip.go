// Package testclip writes short AVI clips for tests: mpeg4 video at a fixed
// rate and, optionally, a PCM audio track.
package testclip

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/stretchr/testify/require"
)

const (
	Width      = 64
	Height     = 48
	SampleRate = 44100
	nbSamples  = 1024
)

var FrameRate = astiav.NewRational(25, 1)

type Options struct {
	Frames int
	Audio  bool
	// Channels of the audio track, stereo when zero.
	Channels int
}

type track struct {
	cc *astiav.CodecContext
	st *astiav.Stream
}

// Write encodes a clip into t.TempDir() and returns its path.
func Write(t testing.TB, o Options) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.avi")
	require.NoError(t, write(path, o))
	return path
}

func write(path string, o Options) error {
	closer := astikit.NewCloser()
	defer closer.Close()

	fc, err := astiav.AllocOutputFormatContext(nil, "avi", path)
	if err != nil {
		return fmt.Errorf("testclip: allocating output failed: %w", err)
	}
	closer.Add(fc.Free)

	video, err := addVideo(fc, closer)
	if err != nil {
		return err
	}

	var audio *track
	if o.Audio {
		if audio, err = addAudio(fc, o.Channels, closer); err != nil {
			return err
		}
	}

	ic, err := astiav.OpenIOContext(path, astiav.NewIOContextFlags(astiav.IOContextFlagWrite), nil, nil)
	if err != nil {
		return fmt.Errorf("testclip: opening io context failed: %w", err)
	}
	closer.AddWithError(ic.Close)
	fc.SetPb(ic)

	if err := fc.WriteHeader(nil); err != nil {
		return fmt.Errorf("testclip: writing header failed: %w", err)
	}

	pkt := astiav.AllocPacket()
	closer.Add(pkt.Free)

	f := astiav.AllocFrame()
	closer.Add(f.Free)
	f.SetWidth(Width)
	f.SetHeight(Height)
	f.SetPixelFormat(astiav.PixelFormatYuv420P)
	if err := f.AllocBuffer(0); err != nil {
		return fmt.Errorf("testclip: allocating video frame failed: %w", err)
	}
	if err := f.ImageFillBlack(); err != nil {
		return fmt.Errorf("testclip: filling video frame failed: %w", err)
	}

	for i := 0; i < o.Frames; i++ {
		if err := f.MakeWritable(); err != nil {
			return fmt.Errorf("testclip: making frame writable failed: %w", err)
		}
		f.SetPts(int64(i))
		if err := encode(fc, video, f, pkt); err != nil {
			return err
		}
	}
	if err := encode(fc, video, nil, pkt); err != nil {
		return err
	}

	if audio != nil {
		af := astiav.AllocFrame()
		closer.Add(af.Free)
		af.SetNbSamples(nbSamples)
		af.SetSampleFormat(astiav.SampleFormatS16)
		af.SetChannelLayout(audio.cc.ChannelLayout())
		af.SetSampleRate(SampleRate)
		if err := af.AllocBuffer(0); err != nil {
			return fmt.Errorf("testclip: allocating audio frame failed: %w", err)
		}
		if err := af.SamplesFillSilence(); err != nil {
			return fmt.Errorf("testclip: filling audio frame failed: %w", err)
		}

		for i := 0; i < 4; i++ {
			if err := af.MakeWritable(); err != nil {
				return fmt.Errorf("testclip: making frame writable failed: %w", err)
			}
			af.SetPts(int64(i * nbSamples))
			if err := encode(fc, audio, af, pkt); err != nil {
				return err
			}
		}
		if err := encode(fc, audio, nil, pkt); err != nil {
			return err
		}
	}

	if err := fc.WriteTrailer(); err != nil {
		return fmt.Errorf("testclip: writing trailer failed: %w", err)
	}

	return nil
}

func addVideo(fc *astiav.FormatContext, closer *astikit.Closer) (*track, error) {
	codec := astiav.FindEncoder(astiav.CodecIDMpeg4)
	if codec == nil {
		return nil, errors.New("testclip: mpeg4 encoder not found")
	}

	cc := astiav.AllocCodecContext(codec)
	closer.Add(cc.Free)
	cc.SetWidth(Width)
	cc.SetHeight(Height)
	cc.SetPixelFormat(astiav.PixelFormatYuv420P)
	cc.SetTimeBase(FrameRate.Invert())
	cc.SetFramerate(FrameRate)
	cc.SetGopSize(10)
	cc.SetMaxBFrames(0)

	return openTrack(fc, codec, cc)
}

func addAudio(fc *astiav.FormatContext, channels int, closer *astikit.Closer) (*track, error) {
	codec := astiav.FindEncoder(astiav.CodecIDPcmS16Le)
	if codec == nil {
		return nil, errors.New("testclip: pcm encoder not found")
	}

	layout := astiav.ChannelLayoutStereo
	switch channels {
	case 1:
		layout = astiav.ChannelLayoutMono
	case 6:
		layout = astiav.ChannelLayout5Point1
	}

	cc := astiav.AllocCodecContext(codec)
	closer.Add(cc.Free)
	cc.SetSampleFormat(astiav.SampleFormatS16)
	cc.SetSampleRate(SampleRate)
	cc.SetChannelLayout(layout)
	cc.SetTimeBase(astiav.NewRational(1, SampleRate))

	return openTrack(fc, codec, cc)
}

func openTrack(fc *astiav.FormatContext, codec *astiav.Codec, cc *astiav.CodecContext) (*track, error) {
	if fc.OutputFormat().Flags().Has(astiav.IOFormatFlagGlobalheader) {
		cc.SetFlags(cc.Flags().Add(astiav.CodecContextFlagGlobalHeader))
	}

	if err := cc.Open(codec, nil); err != nil {
		return nil, fmt.Errorf("testclip: opening %s encoder failed: %w", codec.Name(), err)
	}

	st := fc.NewStream(nil)
	if st == nil {
		return nil, errors.New("testclip: stream is nil")
	}
	if err := st.CodecParameters().FromCodecContext(cc); err != nil {
		return nil, fmt.Errorf("testclip: copying codec parameters failed: %w", err)
	}
	st.SetTimeBase(cc.TimeBase())
	st.SetAvgFrameRate(cc.Framerate())

	return &track{cc: cc, st: st}, nil
}

func encode(fc *astiav.FormatContext, tr *track, f *astiav.Frame, pkt *astiav.Packet) error {
	if err := tr.cc.SendFrame(f); err != nil {
		return fmt.Errorf("testclip: sending frame failed: %w", err)
	}

	for {
		if err := tr.cc.ReceivePacket(pkt); err != nil {
			if errors.Is(err, astiav.ErrEof) || errors.Is(err, astiav.ErrEagain) {
				return nil
			}
			return fmt.Errorf("testclip: receiving packet failed: %w", err)
		}

		pkt.SetStreamIndex(tr.st.Index())
		pkt.RescaleTs(tr.cc.TimeBase(), tr.st.TimeBase())
		err := fc.WriteInterleavedFrame(pkt)
		pkt.Unref()
		if err != nil {
			return fmt.Errorf("testclip: writing packet failed: %w", err)
		}
	}
}
