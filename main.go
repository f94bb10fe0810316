package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"wolfcast/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		logrus.WithError(err).Fatal("configure logging")
	}
	if cfg.File != "" {
		logger.WithField("file", cfg.File).Info("config loaded")
	}

	g, err := NewGame(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("initialize game")
	}

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	ebiten.SetVsyncEnabled(cfg.Window.VSync)
	ebiten.SetTPS(cfg.Window.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.WithError(err).Fatal("run game")
	}
	g.Close()
	logger.Info("shutdown")
}

func newLogger(c config.LogConfig) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	l := logrus.New()
	l.SetLevel(level)
	if c.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
