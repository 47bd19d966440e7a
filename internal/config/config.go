package config

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds paths, render settings and simulation options.
type Config struct {
	// Paths
	BaseDir    string `mapstructure:"base_dir"`
	DataFile   string `mapstructure:"data_file"`
	OutputDir  string `mapstructure:"output_dir"`
	TextureDir string `mapstructure:"texture_dir"` // optional material overrides

	LogLevel string `mapstructure:"log_level"`

	// Render settings
	Width       int     `mapstructure:"width"`
	Height      int     `mapstructure:"height"`
	Supersample int     `mapstructure:"supersample"`
	FPS         int     `mapstructure:"fps"`
	Duration    float64 `mapstructure:"duration"` // seconds of simulation
	Workers     int     `mapstructure:"workers"`

	// Materials
	TextureWidth  int    `mapstructure:"texture_width"`
	TextureHeight int    `mapstructure:"texture_height"`
	Seed          uint64 `mapstructure:"seed"`

	// Simulation
	Arrival string `mapstructure:"arrival"` // freeze, hide or continue
	Query   string `mapstructure:"query"`   // team=..&pitcher=..&view=..&trail=1
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("data_file", "pitch_data.json")
	v.SetDefault("output_dir", "renders")
	v.SetDefault("width", 960)
	v.SetDefault("height", 540)
	v.SetDefault("supersample", 2)
	v.SetDefault("fps", 30)
	v.SetDefault("duration", 1.0)
	v.SetDefault("texture_width", 1024)
	v.SetDefault("texture_height", 512)
	v.SetDefault("seed", 1)
	v.SetDefault("arrival", "freeze")
}

// Load reads a JSON, YAML or TOML config file (by extension) on top of
// the defaults. An empty path returns the defaults. BaseDir defaults to
// the file's directory.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		v.SetDefault("base_dir", filepath.Dir(path))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI overrides, resolves relative paths against BaseDir
// and fills anything still unset with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.DataFile != "" {
		c.DataFile = flags.DataFile
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Duration > 0 {
		c.Duration = flags.Duration
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Arrival != "" {
		c.Arrival = flags.Arrival
	}
	if flags.Query != "" {
		c.Query = flags.Query
	}

	if c.BaseDir != "" {
		c.DataFile = resolvePath(c.BaseDir, c.DataFile)
		c.OutputDir = resolvePath(c.BaseDir, c.OutputDir)
		c.TextureDir = resolvePath(c.BaseDir, c.TextureDir)
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Width <= 0 {
		c.Width = 960
	}
	if c.Height <= 0 {
		c.Height = c.Width * 9 / 16
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Duration <= 0 {
		c.Duration = 1.0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TextureWidth <= 0 {
		c.TextureWidth = 1024
	}
	if c.TextureHeight <= 0 {
		c.TextureHeight = c.TextureWidth / 2
	}
	if c.Arrival == "" {
		c.Arrival = "freeze"
	}
}

// FrameCount is the number of frames covering Duration at FPS, counting
// the frame at t=0.
func (c Config) FrameCount() int {
	return int(c.Duration*float64(c.FPS)+0.5) + 1
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataFile   string
	OutputDir  string
	TextureDir string
	LogLevel   string
	Width      int
	Height     int
	FPS        int
	Duration   float64
	Workers    int
	Arrival    string
	Query      string
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
