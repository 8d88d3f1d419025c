package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

var (
	BUFFER_SIZE  = 100 * time.Millisecond
	MAX_CHANNELS = 2
)

// Channels is the channel count the device opens for a stream with n
// channels. oto only drives mono and stereo output.
func Channels(n int) int {
	if n < 1 {
		return 1
	}
	return min(n, MAX_CHANNELS)
}

// Device plays whatever src produces on oto's own goroutine.
type Device struct {
	ctx      *oto.Context
	player   *oto.Player
	channels int
}

func Open(sampleRate, channels int, src io.Reader) (*Device, error) {
	channels = Channels(channels)

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   BUFFER_SIZE,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: creating context failed: %w", err)
	}
	<-ready

	return &Device{
		ctx:      ctx,
		player:   ctx.NewPlayer(src),
		channels: channels,
	}, nil
}

func (d *Device) Channels() int {
	return d.channels
}

func (d *Device) Resume() {
	d.player.Play()
}

func (d *Device) Pause() {
	d.player.Pause()
}

func (d *Device) Close() error {
	if err := d.player.Close(); err != nil {
		return fmt.Errorf("audio: closing player failed: %w", err)
	}
	return nil
}
