package tone

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	w := New(440, 44100, 0.05)

	assert.InDelta(t, 440.0/44100.0, w.PhaseInc, 1e-9)
	assert.Zero(t, w.Phase)
	assert.Equal(t, float32(0.05), w.Volume)
}

func TestNextStartsHigh(t *testing.T) {
	w := New(440, 48000, 0.25)
	assert.Equal(t, float32(0.25), w.Next())
}

func TestNextAmplitudeAndPhase(t *testing.T) {
	w := New(440, 44100, 0.05)

	prevInc := w.PhaseInc
	for i := 0; i < 10000; i++ {
		v := w.Next()
		require.True(t, v == 0.05 || v == -0.05, "sample %d = %v", i, v)
		require.GreaterOrEqual(t, w.Phase, float32(0))
		require.Less(t, w.Phase, float32(1))
		require.GreaterOrEqual(t, w.PhaseInc, prevInc)
		prevInc = w.PhaseInc
	}
}

func TestNextFollowsPhase(t *testing.T) {
	w := &SquareWave{Phase: 0.75, PhaseInc: 0.01, Volume: 1}
	assert.Equal(t, float32(-1), w.Next())

	w = &SquareWave{Phase: 0.5, PhaseInc: 0.01, Volume: 1}
	assert.Equal(t, float32(1), w.Next())
}

func TestRead(t *testing.T) {
	w := New(440, 44100, 0.5)
	ref := New(440, 44100, 0.5)

	p := make([]byte, 4*8+3)
	n, err := w.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 32, n)

	for i := 0; i < n; i += SampleSize {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[i:]))
		assert.Equal(t, ref.Next(), got)
	}

	n, err = w.Read(nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = w.Read(make([]byte, 3))
	assert.ErrorIs(t, err, io.ErrShortBuffer)
	assert.Zero(t, n)

	// a short read does not advance the wave
	got := make([]byte, SampleSize)
	_, err = w.Read(got)
	require.NoError(t, err)
	assert.Equal(t, ref.Next(), math.Float32frombits(binary.LittleEndian.Uint32(got)))
}
