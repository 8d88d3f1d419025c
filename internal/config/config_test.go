package config

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func parse(t *testing.T, args ...string) (Config, error) {
	t.Helper()

	var cfg Config
	app := &cli.App{
		Name:      "vidplay",
		Flags:     Flags(),
		Writer:    io.Discard,
		ErrWriter: io.Discard,
		Action: func(c *cli.Context) error {
			var err error
			cfg, err = FromContext(c)
			return err
		},
	}
	err := app.Run(append([]string{"vidplay"}, args...))
	return cfg, err
}

func TestFlagsDefaults(t *testing.T) {
	cfg, err := parse(t, "-i", "clip.mp4")
	require.NoError(t, err)

	assert.Equal(t, "clip.mp4", cfg.Input)
	assert.Equal(t, DefaultVolume, cfg.Volume)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.False(t, cfg.Debug)
}

func TestFlagsOverride(t *testing.T) {
	cfg, err := parse(t, "--input", "clip.mkv", "--volume", "0.2", "--title", "x", "--debug")
	require.NoError(t, err)

	assert.Equal(t, Config{Input: "clip.mkv", Volume: 0.2, Title: "x", Debug: true}, cfg)
}

func TestFlagsInputRequired(t *testing.T) {
	_, err := parse(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.Validate(), ErrNoInput)

	cfg.Input = "clip.mp4"
	assert.NoError(t, cfg.Validate())

	cfg.Volume = 1.5
	assert.ErrorIs(t, cfg.Validate(), ErrVolumeRange)

	cfg.Volume = -0.1
	assert.ErrorIs(t, cfg.Validate(), ErrVolumeRange)
}
