package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagHeightmap  = flag.String("heightmap", "", "Heightmap image (PNG, TIFF, BMP or TGA)")
	flagAlbedo     = flag.String("albedo", "", "Albedo texture image")
	flagNormal     = flag.String("normal", "", "Detail normal map image")
	flagState      = flag.String("state", "", "View-state JSON to restore")
	flagWatch      = flag.Bool("watch", false, "Reload input files when they change")
	flagNoUI       = flag.Bool("no-ui", false, "Hide the control panels")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagHeightmap != "" {
		cfg.Data.Heightmap = *flagHeightmap
	}
	if *flagAlbedo != "" {
		cfg.Data.Albedo = *flagAlbedo
	}
	if *flagNormal != "" {
		cfg.Data.Normal = *flagNormal
	}
	if *flagState != "" {
		cfg.Data.ViewState = *flagState
	}
	if *flagWatch {
		cfg.Data.Watch = true
	}
	if *flagNoUI {
		cfg.Window.UI = false
	}
}
