// Package config handles tumble configuration: defaults, an optional YAML
// file and command-line overrides.
package config

// Config holds all settings.
type Config struct {
	Render    RenderConfig    `yaml:"render"`
	Animation AnimationConfig `yaml:"animation"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RenderConfig holds frame and rasterization settings.
type RenderConfig struct {
	Columns     int     `yaml:"columns"` // 0 uses the terminal width
	Lines       int     `yaml:"lines"`   // 0 uses the terminal height
	Zoom        float64 `yaml:"zoom"`
	AspectRatio float64 `yaml:"aspect_ratio"`
	BorderWidth int     `yaml:"border_width"`
	Wireframe   bool    `yaml:"wireframe"`
	Fill        string  `yaml:"fill"`       // scanline or concentric
	Visibility  string  `yaml:"visibility"` // depth or painter
	Dithering   bool    `yaml:"dithering"`
	Gradient    string  `yaml:"gradient"` // empty picks one for the terminal
}

// AnimationConfig holds frame sequence settings.
type AnimationConfig struct {
	FrameRate  int         `yaml:"frame_rate"`
	FrameCount int         `yaml:"frame_count"` // ≤ 0 runs until interrupted
	SpinUp     bool        `yaml:"spin_up"`
	Rates      RatesConfig `yaml:"rates"`
}

// RatesConfig holds spin rates in turns per frame.
type RatesConfig struct {
	U float64 `yaml:"u"`
	V float64 `yaml:"v"`
	W float64 `yaml:"w"`
}

// OutputConfig selects where frames go. Neither set streams to stdout.
type OutputConfig struct {
	Script bool `yaml:"script"`
	Screen bool `yaml:"screen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Zoom:        1,
			AspectRatio: 1.5,
			Fill:        "scanline",
			Visibility:  "depth",
		},
		Animation: AnimationConfig{
			FrameRate: 60,
			Rates: RatesConfig{
				U: -0.0005,
				V: 0.005,
				W: 0.00005,
			},
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}
