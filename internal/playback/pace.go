package playback

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidFrameRate = errors.New("playback: invalid frame rate")

// FrameInterval is the fixed delay between two video packets. Whole frame
// rates are truncated (30000/1001 paces at 29 fps); rates under one frame
// per second use the exact ratio.
func FrameInterval(num, den int) (time.Duration, error) {
	if num <= 0 || den <= 0 {
		return 0, fmt.Errorf("%w: %d/%d", ErrInvalidFrameRate, num, den)
	}

	if fps := num / den; fps >= 1 {
		return time.Second / time.Duration(fps), nil
	}

	return time.Duration(int64(time.Second) * int64(den) / int64(num)), nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
