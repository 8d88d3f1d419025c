package playback

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/GoldenFealla/vidplay/internal/decoder"
	"github.com/GoldenFealla/vidplay/internal/logger"
	"github.com/asticode/go-astiav"
)

type Source interface {
	ReadPacket(pkt *astiav.Packet) error
}

type Decoder interface {
	Index() int
	Decode(pkt *astiav.Packet, fn decoder.FrameFunc) error
	Flush(fn decoder.FrameFunc) error
}

type Converter interface {
	Convert(f *astiav.Frame) (image.Image, error)
}

type Presenter interface {
	Present(img image.Image)
	Closed() <-chan struct{}
}

type Pauser interface {
	Pause()
}

// MAX_READ_ERRORS bounds consecutive unreadable packets before playback
// gives up on the input.
var MAX_READ_ERRORS = 32

type Stats struct {
	Packets    int
	Presented  int
	Flushed    int
	ReadErrors int
}

// Loop reads packets, decodes the video ones, converts every frame and
// presents it, then waits a fixed interval. It holds no frames between
// iterations.
type Loop struct {
	src  Source
	dec  Decoder
	conv Converter
	out  Presenter

	audio    Pauser
	interval time.Duration
	log      *logger.Logger

	sleep func(ctx context.Context, d time.Duration)

	readErrors int
	stats      Stats
}

func NewLoop(src Source, dec Decoder, conv Converter, out Presenter, interval time.Duration) *Loop {
	return &Loop{
		src:      src,
		dec:      dec,
		conv:     conv,
		out:      out,
		interval: interval,
		log:      logger.Nop(),
		sleep:    sleep,
	}
}

func (l *Loop) SetAudio(p Pauser) {
	l.audio = p
}

func (l *Loop) SetLogger(log *logger.Logger) {
	l.log = log
}

func (l *Loop) Stats() Stats {
	return l.stats
}

// Run plays until the input ends, the window is closed or ctx is done. The
// decoder is flushed in every case but flushed frames are not presented.
func (l *Loop) Run(ctx context.Context) error {
	pkt := astiav.AllocPacket()
	defer pkt.Free()

	defer l.pauseAudio()

	for {
		stop, err := l.step(ctx, pkt)
		if err != nil {
			return err
		}

		if stop {
			break
		}
	}

	if err := l.dec.Flush(l.discard); err != nil {
		return fmt.Errorf("playback: flushing decoder failed: %w", err)
	}

	l.log.Debug().
		Int("packets", l.stats.Packets).
		Int("presented", l.stats.Presented).
		Int("flushed", l.stats.Flushed).
		Int("read_errors", l.stats.ReadErrors).
		Msg("playback finished")

	return nil
}

func (l *Loop) step(ctx context.Context, pkt *astiav.Packet) (bool, error) {
	if err := l.src.ReadPacket(pkt); err != nil {
		if errors.Is(err, io.EOF) {
			return true, nil
		}

		l.stats.ReadErrors++
		if l.readErrors++; l.readErrors > MAX_READ_ERRORS {
			return true, fmt.Errorf("playback: %d read errors in a row: %w", l.readErrors, err)
		}
		l.log.Warn().Err(err).Msg("skipping unreadable packet")
		return l.quit(ctx), nil
	}

	defer pkt.Unref()
	l.readErrors = 0
	l.stats.Packets++

	if pkt.StreamIndex() == l.dec.Index() {
		if err := l.dec.Decode(pkt, l.present); err != nil {
			return true, fmt.Errorf("playback: %w", err)
		}
		l.sleep(ctx, l.interval)
	}

	return l.quit(ctx), nil
}

func (l *Loop) quit(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		l.log.Debug().Err(ctx.Err()).Msg("playback cancelled")
		return true
	case <-l.out.Closed():
		l.log.Debug().Msg("window closed")
		return true
	default:
		return false
	}
}

func (l *Loop) present(f *astiav.Frame) error {
	img, err := l.conv.Convert(f)
	if err != nil {
		return err
	}

	l.out.Present(img)
	l.stats.Presented++

	return nil
}

func (l *Loop) discard(f *astiav.Frame) error {
	if _, err := l.conv.Convert(f); err != nil {
		return err
	}

	l.stats.Flushed++

	return nil
}

func (l *Loop) pauseAudio() {
	if l.audio != nil {
		l.audio.Pause()
	}
}
