package session

import (
	"path/filepath"
	"testing"

	"github.com/GoldenFealla/vidplay/internal/config"
	"github.com/GoldenFealla/vidplay/internal/logger"
	"github.com/GoldenFealla/vidplay/internal/media"
	"github.com/GoldenFealla/vidplay/internal/testclip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(input string) config.Config {
	cfg := config.Default()
	cfg.Input = input
	return cfg
}

func TestOpenWithoutAudio(t *testing.T) {
	path := testclip.Write(t, testclip.Options{Frames: 3})

	s, err := Open(newConfig(path), logger.Nop())
	require.ErrorIs(t, err, media.ErrStreamNotFound)
	assert.Nil(t, s)
}

func TestOpenMissingInput(t *testing.T) {
	s, err := Open(newConfig(filepath.Join(t.TempDir(), "missing.avi")), logger.Nop())
	require.Error(t, err)
	assert.Nil(t, s)
}
