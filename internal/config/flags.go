package config

import (
	"github.com/spf13/pflag"
)

// Flags holds command-line overrides. Only flags the user actually set are
// applied on top of the file.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string
	SaveConfig string
	Solid      string

	border     int
	frameRate  int
	frameCount int
	columns    int
	lines      int
	script     bool
	screen     bool
	wireframe  bool
	aspect     float64
	dithering  bool
	gradient   string
	zoom       float64
	visibility string
	fill       string
	spinUp     bool
	logLevel   string
	logFile    string
}

// RegisterFlags defines every tumble flag on fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	def := Default()

	fs.StringVar(&f.ConfigPath, "config", "", "path to a YAML config file")
	fs.StringVar(&f.SaveConfig, "save-config", "", "write the effective config to this path and exit")
	fs.StringVar(&f.Solid, "solid", "", "render a built-in solid instead of a file (tetrahedron, cube, octahedron, dodecahedron, icosahedron)")

	fs.IntVarP(&f.border, "borderwidth", "b", def.Render.BorderWidth, "nested border rings around the frame")
	fs.IntVarP(&f.frameRate, "framerate", "F", def.Animation.FrameRate, "frames per second")
	fs.IntVarP(&f.frameCount, "framecount", "f", def.Animation.FrameCount, "frames to render, 0 runs until interrupted")
	fs.IntVarP(&f.columns, "columns", "c", def.Render.Columns, "frame width, 0 uses the terminal width")
	fs.IntVarP(&f.lines, "lines", "l", def.Render.Lines, "frame height, 0 uses the terminal height")
	fs.BoolVarP(&f.script, "script", "s", def.Output.Script, "write a replayable shell script instead of animating")
	fs.BoolVar(&f.screen, "screen", def.Output.Screen, "draw on the alternate screen (q or esc quits)")
	fs.BoolVarP(&f.wireframe, "wireframe", "w", def.Render.Wireframe, "draw triangle edges only")
	fs.Float64VarP(&f.aspect, "aspectratio", "a", def.Render.AspectRatio, "terminal cell height/width ratio")
	fs.BoolVarP(&f.dithering, "dithering", "d", def.Render.Dithering, "error-diffusion dithering")
	fs.StringVarP(&f.gradient, "gradient", "g", def.Render.Gradient, "ascii, blocks, bars, gray256 or a custom glyph string")
	fs.Float64Var(&f.zoom, "zoom", def.Render.Zoom, "zoom factor")
	fs.StringVar(&f.visibility, "visibility", def.Render.Visibility, "hidden-surface strategy: depth or painter")
	fs.StringVar(&f.fill, "fill", def.Render.Fill, "face fill: scanline or concentric")
	fs.BoolVar(&f.spinUp, "spinup", def.Animation.SpinUp, "ease the spin in from rest")
	fs.StringVar(&f.logLevel, "log-level", def.Logging.Level, "log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", def.Logging.LogFile, "also log to this file")
	return f
}

// Apply copies every flag the user set into cfg.
func (f *Flags) Apply(cfg *Config) {
	set := f.fs.Changed

	if set("borderwidth") {
		cfg.Render.BorderWidth = f.border
	}
	if set("framerate") {
		cfg.Animation.FrameRate = f.frameRate
	}
	if set("framecount") {
		cfg.Animation.FrameCount = f.frameCount
	}
	if set("columns") {
		cfg.Render.Columns = f.columns
	}
	if set("lines") {
		cfg.Render.Lines = f.lines
	}
	if set("script") {
		cfg.Output.Script = f.script
	}
	if set("screen") {
		cfg.Output.Screen = f.screen
	}
	if set("wireframe") {
		cfg.Render.Wireframe = f.wireframe
	}
	if set("aspectratio") {
		cfg.Render.AspectRatio = f.aspect
	}
	if set("dithering") {
		cfg.Render.Dithering = f.dithering
	}
	if set("gradient") {
		cfg.Render.Gradient = f.gradient
	}
	if set("zoom") {
		cfg.Render.Zoom = f.zoom
	}
	if set("visibility") {
		cfg.Render.Visibility = f.visibility
	}
	if set("fill") {
		cfg.Render.Fill = f.fill
	}
	if set("spinup") {
		cfg.Animation.SpinUp = f.spinUp
	}
	if set("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if set("log-file") {
		cfg.Logging.LogFile = f.logFile
	}
}
