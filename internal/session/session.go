package session

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/GoldenFealla/vidplay/internal/audio"
	"github.com/GoldenFealla/vidplay/internal/config"
	"github.com/GoldenFealla/vidplay/internal/decoder"
	"github.com/GoldenFealla/vidplay/internal/display"
	"github.com/GoldenFealla/vidplay/internal/logger"
	"github.com/GoldenFealla/vidplay/internal/media"
	"github.com/GoldenFealla/vidplay/internal/playback"
	"github.com/GoldenFealla/vidplay/internal/scaler"
	"github.com/GoldenFealla/vidplay/internal/tone"
	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"golang.org/x/sync/errgroup"
)

const appID = "io.github.goldenfealla.vidplay"

type Session struct {
	closer *astikit.Closer
	log    *logger.Logger

	media  *media.Media
	video  *decoder.VideoStream
	audio  *decoder.AudioStream
	scaler *scaler.Scaler
	device *audio.Device
	window *display.Window

	loop *playback.Loop
}

func Open(cfg config.Config, log *logger.Logger) (_ *Session, err error) {
	start := time.Now()

	s := &Session{
		closer: astikit.NewCloser(),
		log:    log,
	}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if cfg.Debug {
		astiav.SetLogLevel(astiav.LogLevelVerbose)
	} else {
		astiav.SetLogLevel(astiav.LogLevelError)
	}

	if s.media, err = media.Open(cfg.Input); err != nil {
		return nil, err
	}
	s.closer.Add(s.media.Close)

	vs, err := s.media.BestStream(astiav.MediaTypeVideo, -1)
	if err != nil {
		return nil, err
	}
	as, err := s.media.BestStream(astiav.MediaTypeAudio, vs.Index())
	if err != nil {
		return nil, err
	}

	s.video = decoder.NewVideoStream()
	s.closer.Add(s.video.Close)
	if err = s.video.Load(vs); err != nil {
		return nil, err
	}

	s.audio = decoder.NewAudioStream()
	s.closer.Add(s.audio.Close)
	if err = s.audio.Load(as); err != nil {
		return nil, err
	}

	rate := s.media.FrameRate(vs, s.video.CodecContext())
	interval, err := playback.FrameInterval(rate.Num(), rate.Den())
	if err != nil {
		return nil, fmt.Errorf("session: video stream %d: %w", vs.Index(), err)
	}

	s.scaler = scaler.New()
	s.closer.Add(s.scaler.Close)

	wave := tone.New(config.ToneFrequency, s.audio.SampleRate(), float32(cfg.Volume))
	if s.device, err = audio.Open(s.audio.SampleRate(), s.audio.Channels(), wave); err != nil {
		return nil, err
	}
	s.closer.AddWithError(s.device.Close)

	s.window = display.New(app.NewWithID(appID), cfg.Title, s.video.Width(), s.video.Height())

	s.loop = playback.NewLoop(s.media, s.video, s.scaler, s.window, interval)
	s.loop.SetAudio(s.device)
	s.loop.SetLogger(log.Extend(log.With().Str("c", "playback")))

	log.Info().
		Str("input", cfg.Input).
		Int("video", s.video.Index()).
		Int("audio", s.audio.Index()).
		Int("width", s.video.Width()).
		Int("height", s.video.Height()).
		Str("rate", fmt.Sprintf("%d/%d", rate.Num(), rate.Den())).
		Dur("interval", interval).
		Int("sample_rate", s.audio.SampleRate()).
		Int("channels", s.audio.Channels()).
		Int("device_channels", s.device.Channels()).
		Msg("media opened")
	log.Since(start, "session ready")

	return s, nil
}

// Run blocks the calling goroutine on the window until the window is
// closed, the input is played out or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	s.device.Resume()

	g.Go(func() error {
		defer s.window.Quit()
		return s.loop.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		s.window.Quit()
		return nil
	})

	s.window.Run()
	cancel()

	if err := g.Wait(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	st := s.loop.Stats()
	s.log.Info().
		Int("packets", st.Packets).
		Int("presented", st.Presented).
		Msg("playback stopped")

	return nil
}

func (s *Session) Close() {
	if err := s.closer.Close(); err != nil {
		s.log.Error().Err(err).Msg("session: closing failed")
	}
}
