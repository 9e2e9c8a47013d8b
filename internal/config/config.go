package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ScenarioPath     string  `yaml:"scenario"`
	OutputVideo      string  `yaml:"output"`
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Preset           string  `yaml:"preset"`
	Workers          int     `yaml:"workers"`
	BatchSize        int     `yaml:"batchSize"` // frames rendered in parallel before they are written
	SoundsDir        string  `yaml:"sounds"`
	AssetsDir        string  `yaml:"assets"`
	Volume           float64 `yaml:"volume"`
	FallbackDuration int     `yaml:"fallbackDuration"` // frames; 0 disables the fallback
	StrictAudio      bool    `yaml:"strictAudio"`
	VideoEncoder     string  `yaml:"encoder"`
	Quality          int     `yaml:"quality"`
	ShowStats        bool    `yaml:"stats"`
	BuildVersion     string  `yaml:"-"`
}

// Default returns the settings used when neither a file nor flags say otherwise.
func Default() *Config {
	return &Config{
		Width:            1280,
		Height:           720,
		Workers:          runtime.NumCPU(),
		BatchSize:        32,
		SoundsDir:        "input/sounds",
		AssetsDir:        "input/assets",
		Volume:           0.9,
		FallbackDuration: 50,
	}
}

// LoadFile overlays a YAML file onto cfg. Keys missing from the file keep
// their current value.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyPreset replaces the frame size with a named aspect preset.
func (c *Config) ApplyPreset() error {
	switch c.Preset {
	case "":
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	// yuv420p needs even dimensions
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("frame size %dx%d must be even", c.Width, c.Height)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume %.2f outside [0, 1]", c.Volume)
	}
	if c.FallbackDuration < 0 {
		return fmt.Errorf("fallback duration must not be negative, got %d", c.FallbackDuration)
	}
	return nil
}
