// Package config loads viewer settings from defaults, an optional config file
// and EARTHVIEWER_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "EARTHVIEWER"

type Config struct {
	Window     WindowConfig     `mapstructure:"window"`
	Assets     AssetsConfig     `mapstructure:"assets"`
	Trajectory TrajectoryConfig `mapstructure:"trajectory"`
	Animation  AnimationConfig  `mapstructure:"animation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	GL         GLConfig         `mapstructure:"gl"`
	LogLevel   string           `mapstructure:"log_level"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type AssetsConfig struct {
	Dir    string `mapstructure:"dir"`
	Day    string `mapstructure:"day"`
	Night  string `mapstructure:"night"`
	Clouds string `mapstructure:"clouds"`
	Noise  string `mapstructure:"noise"`
}

func (a AssetsConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.Dir, name)
}

type TrajectoryConfig struct {
	Path string `mapstructure:"path"`
}

type AnimationConfig struct {
	Speed             float32 `mapstructure:"speed"`
	BodyRotationSpeed float32 `mapstructure:"body_rotation_speed"`
	TrailLength       int     `mapstructure:"trail_length"`
	AutoRotate        bool    `mapstructure:"auto_rotate"`
}

type MetricsConfig struct {
	// Empty disables the metrics endpoint
	Addr string `mapstructure:"addr"`
}

type GLConfig struct {
	Compatibility bool `mapstructure:"compatibility"`
	Debug         bool `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 1200)
	v.SetDefault("window.height", 900)
	v.SetDefault("window.title", "Earth Viewer")
	v.SetDefault("assets.dir", "assets/images")
	v.SetDefault("assets.day", "world.200405.3.png")
	v.SetDefault("assets.night", "BlackMarble.png")
	v.SetDefault("assets.clouds", "cloud_combined.png")
	v.SetDefault("assets.noise", "perlin_noise.png")
	v.SetDefault("trajectory.path", "trajectories.csv")
	v.SetDefault("animation.speed", 1.0)
	v.SetDefault("animation.body_rotation_speed", 0.08)
	v.SetDefault("animation.trail_length", 100)
	v.SetDefault("animation.auto_rotate", true)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("gl.compatibility", false)
	v.SetDefault("gl.debug", true)
	v.SetDefault("log_level", "info")
}

func Default() Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path. With an empty path earthviewer.toml,
// .yaml or .json is looked up in the working directory and is optional.
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("earthviewer")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Animation.Speed <= 0 {
		errs = append(errs, fmt.Errorf("animation.speed must be positive, got %v", c.Animation.Speed))
	}
	if c.Animation.BodyRotationSpeed <= 0 {
		errs = append(errs, fmt.Errorf("animation.body_rotation_speed must be positive, got %v", c.Animation.BodyRotationSpeed))
	}
	if c.Animation.TrailLength < 0 {
		errs = append(errs, fmt.Errorf("animation.trail_length must not be negative, got %d", c.Animation.TrailLength))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
