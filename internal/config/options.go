package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/colorprofile"

	"github.com/taigrr/tumble/internal/logger"
	"github.com/taigrr/tumble/pkg/anim"
	"github.com/taigrr/tumble/pkg/render"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Validate checks every setting and returns all problems found.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	r, a := c.Render, c.Animation
	check(r.Columns >= 0, "columns must not be negative, got %d", r.Columns)
	check(r.Lines >= 0, "lines must not be negative, got %d", r.Lines)
	check(r.Zoom > 0, "zoom must be positive, got %v", r.Zoom)
	check(r.AspectRatio > 0, "aspect ratio must be positive, got %v", r.AspectRatio)
	check(r.BorderWidth >= 0, "border width must not be negative, got %d", r.BorderWidth)
	check(a.FrameRate > 0, "frame rate must be positive, got %d", a.FrameRate)
	check(!(c.Output.Script && c.Output.Screen), "script and screen output are exclusive")

	if _, err := ParseFill(r.Fill); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseVisibility(r.Visibility); err != nil {
		errs = append(errs, err)
	}
	if r.Gradient != "" {
		if _, err := render.LookupGradient(r.Gradient); err != nil {
			errs = append(errs, fmt.Errorf("%w: gradient: %w", ErrInvalid, err))
		}
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// ParseFill resolves a fill mode name.
func ParseFill(name string) (render.FillMode, error) {
	switch strings.ToLower(name) {
	case "", "scanline":
		return render.FillScanline, nil
	case "concentric":
		return render.FillConcentric, nil
	}
	return 0, fmt.Errorf("%w: unknown fill %q", ErrInvalid, name)
}

// ParseVisibility resolves a hidden-surface strategy name.
func ParseVisibility(name string) (render.Visibility, error) {
	switch strings.ToLower(name) {
	case "", "depth":
		return render.VisibilityDepthBuffer, nil
	case "painter":
		return render.VisibilityPainter, nil
	}
	return 0, fmt.Errorf("%w: unknown visibility %q", ErrInvalid, name)
}

// Size returns the configured frame size, falling back to the given
// terminal size for unset dimensions.
func (c *Config) Size(termWidth, termHeight int) (width, height int) {
	width, height = termWidth, termHeight
	if c.Render.Columns > 0 {
		width = c.Render.Columns
	}
	if c.Render.Lines > 0 {
		height = c.Render.Lines
	}
	return width, height
}

// RenderOptions builds renderer options for a width×height frame. Without
// an explicit gradient the richest one profile supports is used.
func (c *Config) RenderOptions(width, height int, profile colorprofile.Profile) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Width, opts.Height = width, height
	opts.Zoom = c.Render.Zoom
	opts.AspectRatio = c.Render.AspectRatio
	opts.BorderWidth = c.Render.BorderWidth
	opts.Dithering = c.Render.Dithering
	if c.Render.Wireframe {
		opts.Mode = render.DrawWireframe
	}

	var err error
	if opts.Fill, err = ParseFill(c.Render.Fill); err != nil {
		return opts, err
	}
	if opts.Visibility, err = ParseVisibility(c.Render.Visibility); err != nil {
		return opts, err
	}

	if c.Render.Gradient == "" {
		opts.Gradient = render.GradientForProfile(profile)
		return opts, nil
	}
	if opts.Gradient, err = render.LookupGradient(c.Render.Gradient); err != nil {
		return opts, fmt.Errorf("%w: gradient: %w", ErrInvalid, err)
	}
	return opts, nil
}

// AnimOptions builds driver options.
func (c *Config) AnimOptions() anim.Options {
	return anim.Options{
		FrameRate:  c.Animation.FrameRate,
		FrameCount: c.Animation.FrameCount,
		SpinUp:     c.Animation.SpinUp,
		Rates: anim.Rates{
			U: c.Animation.Rates.U,
			V: c.Animation.Rates.V,
			W: c.Animation.Rates.W,
		},
	}
}
