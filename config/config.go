package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"wolfcast/model"
)

const EnvPrefix = "RAYCAST"

type ScreenConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type WindowConfig struct {
	VSync bool `mapstructure:"vsync"`
	TPS   int  `mapstructure:"tps"`
}

type RenderConfig struct {
	RayDensity      int  `mapstructure:"ray_density"`
	ShowRays        bool `mapstructure:"show_rays"`
	ShowSpriteBoxes bool `mapstructure:"show_sprite_boxes"`
}

type PlayerConfig struct {
	Speed         float64 `mapstructure:"speed"`
	RotationSpeed float64 `mapstructure:"rotation_speed"`
	Hitbox        float64 `mapstructure:"hitbox"`
	FOV           float64 `mapstructure:"fov"`
}

// Model converts to the player tunables.
func (p PlayerConfig) Model() model.PlayerConfig {
	return model.PlayerConfig{
		Speed:         p.Speed,
		RotationSpeed: p.RotationSpeed,
		Hitbox:        p.Hitbox,
		FovDegrees:    p.FOV,
	}
}

type LevelConfig struct {
	// Dir is a directory on disk, empty for the embedded level
	Dir      string `mapstructure:"dir"`
	Wall     string `mapstructure:"wall"`
	Floor    string `mapstructure:"floor"`
	Ceiling  string `mapstructure:"ceiling"`
	Elements string `mapstructure:"elements"`
}

type TexturesConfig struct {
	Dir        string `mapstructure:"dir"`
	Procedural bool   `mapstructure:"procedural"`
}

type HUDConfig struct {
	Font     string  `mapstructure:"font"`
	FontSize float64 `mapstructure:"font_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Screen   ScreenConfig   `mapstructure:"screen"`
	Window   WindowConfig   `mapstructure:"window"`
	Render   RenderConfig   `mapstructure:"render"`
	Player   PlayerConfig   `mapstructure:"player"`
	Level    LevelConfig    `mapstructure:"level"`
	Textures TexturesConfig `mapstructure:"textures"`
	HUD      HUDConfig      `mapstructure:"hud"`
	Log      LogConfig      `mapstructure:"log"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

type setting struct {
	key   string
	value any
	usage string
}

func defaults() []setting {
	p := model.DefaultPlayerConfig()
	return []setting{
		{"screen.width", 1024, "window width in pixels, the map and the 3D view get half each"},
		{"screen.height", 512, "window height in pixels"},
		{"screen.title", "wolfcast", "window title"},
		{"window.vsync", true, "enable vsync"},
		{"window.tps", 60, "updates per second"},
		{"render.ray_density", 1, "screen columns covered by each ray"},
		{"render.show_rays", true, "draw cast rays on the map"},
		{"render.show_sprite_boxes", false, "outline visible sprite runs"},
		{"player.speed", p.Speed, "movement speed in tiles per second"},
		{"player.rotation_speed", p.RotationSpeed, "rotation speed in radians per second"},
		{"player.hitbox", p.Hitbox, "collision half extent in tiles"},
		{"player.fov", p.FovDegrees, "horizontal field of view in degrees"},
		{"level.dir", "", "level directory, empty for the embedded level"},
		{"level.wall", "wall.txt", "wall grid file"},
		{"level.floor", "floor.txt", "floor grid file"},
		{"level.ceiling", "ceiling.txt", "ceiling grid file"},
		{"level.elements", "elements.txt", "spawn and sprite file"},
		{"textures.dir", "", "texture directory, empty for the embedded textures"},
		{"textures.procedural", false, "use generated textures instead of files"},
		{"hud.font", "", "TrueType font file, empty for Go Regular"},
		{"hud.font_size", 14.0, "HUD font size in points"},
		{"log.level", "info", "log level"},
		{"log.format", "text", "log format, text or json"},
	}
}

// Load resolves the configuration from flags, RAYCAST_* environment variables,
// an optional config.yaml and defaults, in that order of precedence.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("wolfcast", pflag.ContinueOnError)
	configFile := fs.String("config", "", "config file (default ./config.yaml or ./config/config.yaml)")

	v := viper.New()
	for _, s := range defaults() {
		v.SetDefault(s.key, s.value)
		switch d := s.value.(type) {
		case int:
			fs.Int(s.key, d, s.usage)
		case float64:
			fs.Float64(s.key, d, s.usage)
		case bool:
			fs.Bool(s.key, d, s.usage)
		case string:
			fs.String(s.key, d, s.usage)
		}
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if *configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the renderer cannot work with.
func (c Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	case c.Screen.Width%2 != 0:
		return fmt.Errorf("screen width %d must be even", c.Screen.Width)
	case c.Render.RayDensity < 1:
		return fmt.Errorf("render.ray_density %d must be at least 1", c.Render.RayDensity)
	case c.Player.FOV <= 0 || c.Player.FOV >= 180:
		return fmt.Errorf("player.fov %v must be between 0 and 180", c.Player.FOV)
	case c.Window.TPS <= 0:
		return fmt.Errorf("window.tps %d must be positive", c.Window.TPS)
	case c.Log.Format != "text" && c.Log.Format != "json":
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}
