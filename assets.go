package main

import (
	"embed"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"wolfcast/config"
	"wolfcast/level"
	"wolfcast/texture"
)

//go:embed assets
var assets embed.FS

const (
	embeddedLevelDir   = "assets/level1"
	embeddedTextureDir = "assets/textures"
	proceduralTexSize  = 64
)

func loadTextures(cfg config.TexturesConfig, log logrus.FieldLogger) (*texture.Table, error) {
	if cfg.Procedural {
		return texture.Procedural(proceduralTexSize), nil
	}
	if cfg.Dir == "" {
		return texture.LoadDir(assets, embeddedTextureDir, log)
	}
	return texture.LoadDir(os.DirFS(cfg.Dir), ".", log)
}

func loadLevel(cfg config.LevelConfig, halfWidth int, tex level.TextureSet, log logrus.FieldLogger) (*level.Level, error) {
	var fsys fs.FS = assets
	dir := embeddedLevelDir
	if cfg.Dir != "" {
		fsys, dir = os.DirFS(cfg.Dir), "."
	}

	files := level.Files{
		Dir:      dir,
		Wall:     cfg.Wall,
		Floor:    cfg.Floor,
		Ceiling:  cfg.Ceiling,
		Elements: cfg.Elements,
	}
	return level.Load(fsys, files, halfWidth, tex, log)
}
