package config

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

const (
	DefaultTitle  = "Twitch player but better"
	DefaultVolume = 0.05
	ToneFrequency = 440
)

var (
	ErrNoInput     = errors.New("config: input is required")
	ErrVolumeRange = errors.New("config: volume must be between 0 and 1")
)

type Config struct {
	Input  string
	Volume float64
	Title  string
	Debug  bool
}

func Default() Config {
	return Config{
		Volume: DefaultVolume,
		Title:  DefaultTitle,
	}
}

func (c Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: got %v", ErrVolumeRange, c.Volume)
	}
	return nil
}

func Flags() []cli.Flag {
	d := Default()
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "input",
			Aliases:   []string{"i"},
			Usage:     "media file to play",
			Required:  true,
			TakesFile: true,
		},
		&cli.Float64Flag{
			Name:  "volume",
			Usage: "placeholder tone amplitude",
			Value: d.Volume,
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "window title",
			Value: d.Title,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
	}
}

func FromContext(c *cli.Context) (Config, error) {
	cfg := Config{
		Input:  c.String("input"),
		Volume: c.Float64("volume"),
		Title:  c.String("title"),
		Debug:  c.Bool("debug"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
