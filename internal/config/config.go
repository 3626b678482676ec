// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// ViewerConfig holds map viewing settings.
type ViewerConfig struct {
	MapFile     string  `yaml:"map_file"`     // Path to the .emap map container
	TilesetFile string  `yaml:"tileset_file"` // Path to the tileset manifest
	ScrollSpeed float64 `yaml:"scroll_speed"` // Pixels per tick while a scroll key is held
	ShowFPS     bool    `yaml:"show_fps"`
	Weather     string  `yaml:"weather"` // none, rain, storm or snow
	WatchFiles  bool    `yaml:"watch_files"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Viewer: ViewerConfig{
			ScrollSpeed: 8,
			ShowFPS:     false,
			Weather:     "none",
			WatchFiles:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
