// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	UI         bool `yaml:"ui"` // show the control panels
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	ShadowMapResolution int           `yaml:"shadow_map_resolution"`
	DepthMapResolution  int           `yaml:"depth_map_resolution"`
	FrameInterval       time.Duration `yaml:"frame_interval"`
	ShowMouseControl    bool          `yaml:"show_mouse_control"`
}

// DataConfig holds the files loaded at startup. Empty paths are skipped.
type DataConfig struct {
	Heightmap     string `yaml:"heightmap"`
	Albedo        string `yaml:"albedo"`
	Normal        string `yaml:"normal"`
	Water         string `yaml:"water"`
	ViewState     string `yaml:"view_state"`
	Watch         bool   `yaml:"watch"`          // reload files when they change on disk
	MaxResolution int    `yaml:"max_resolution"` // downsample larger heightmaps, 0 keeps full size
	AddSkirt      bool   `yaml:"add_skirt"`

	// WaterExcludeBelow drops water samples at or below this value.
	WaterExcludeBelow float32 `yaml:"water_exclude_below"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			UI:     true,
		},
		Render: RenderConfig{
			ShadowMapResolution: 1024,
			DepthMapResolution:  512,
			FrameInterval:       16 * time.Millisecond,
			ShowMouseControl:    true,
		},
		Data: DataConfig{
			MaxResolution: 2048,
			AddSkirt:      true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports settings the renderer cannot work with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	for name, res := range map[string]int{
		"shadow_map_resolution": c.Render.ShadowMapResolution,
		"depth_map_resolution":  c.Render.DepthMapResolution,
	} {
		if res < 16 || res > 16384 {
			return fmt.Errorf("render.%s %d out of range [16, 16384]", name, res)
		}
	}
	if c.Render.FrameInterval < 0 {
		return fmt.Errorf("render.frame_interval %v must not be negative", c.Render.FrameInterval)
	}
	if c.Data.MaxResolution < 0 {
		return fmt.Errorf("data.max_resolution %d must not be negative", c.Data.MaxResolution)
	}
	return nil
}
