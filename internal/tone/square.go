// Package tone synthesizes the placeholder signal played while a video is
// shown. It never consumes decoded audio.
package tone

import (
	"encoding/binary"
	"io"
	"math"
)

const SampleSize = 4

// SquareWave is a square wave whose phase increment keeps growing, so the
// pitch sweeps upward while it plays.
type SquareWave struct {
	PhaseInc float32
	Phase    float32
	Volume   float32
}

func New(freq float32, sampleRate int, volume float32) *SquareWave {
	return &SquareWave{
		PhaseInc: freq / float32(sampleRate),
		Phase:    0,
		Volume:   volume,
	}
}

// Next returns one sample and advances the wave. Interleaved channels are
// advanced one value at a time.
func (w *SquareWave) Next() float32 {
	v := -w.Volume
	if w.Phase <= 0.5 {
		v = w.Volume
	}

	w.PhaseInc += float32(math.Atan2(float64(w.PhaseInc), math.Cosh(float64(w.Phase))))
	w.Phase = float32(math.Mod(float64(w.Phase+w.PhaseInc), 1))

	return v
}

// Read writes float32 little endian samples. Only whole samples are
// written, so a buffer shorter than SampleSize yields io.ErrShortBuffer.
func (w *SquareWave) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) < SampleSize {
		return 0, io.ErrShortBuffer
	}

	n := len(p) / SampleSize * SampleSize
	for i := 0; i < n; i += SampleSize {
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(w.Next()))
	}
	return n, nil
}
