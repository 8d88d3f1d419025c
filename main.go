package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoldenFealla/vidplay/internal/config"
	"github.com/GoldenFealla/vidplay/internal/logger"
	"github.com/GoldenFealla/vidplay/internal/session"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "vidplay",
		Usage:  "play the video stream of a media file in a window",
		Flags:  config.Flags(),
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.FromContext(c)
	if err != nil {
		return err
	}

	log := logger.NewConsole(cfg.Debug, "vidplay")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := session.Open(cfg, log)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Run(ctx)
}
