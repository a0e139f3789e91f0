// tumble - Spin a 3D model in the terminal
// Renders OBJ, glTF or built-in Platonic solids as text, either animated in
// place, on the alternate screen, or compiled into a replayable shell script.
//
// Keys (--screen only):
//
//	q / Esc / Ctrl+C - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	uv "github.com/charmbracelet/ultraviolet"
	xterm "github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/config"
	"github.com/taigrr/tumble/internal/logger"
	"github.com/taigrr/tumble/pkg/anim"
	"github.com/taigrr/tumble/pkg/models"
	"github.com/taigrr/tumble/pkg/render"
)

var version = "dev"

// Frame size when the output is not a terminal.
const (
	fallbackWidth  = 80
	fallbackHeight = 20
)

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tumble [flags] [model.obj|model.glb]",
		Short: "Spin a 3D model in the terminal",
		Long: `tumble rasterizes a triangle mesh into text glyphs and spins it.
Brightness follows depth: nearer surfaces use later gradient glyphs.`,
		Example: `tumble teapot.obj
tumble --solid icosahedron -w
tumble -g blocks -b 1 --screen suzanne.glb
tumble -s -f 300 cube.obj > cube.sh`,
		Args: cobra.MaximumNArgs(1),
	}
	flags := config.RegisterFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cmd.OutOrStdout(), flags, args)
	}
	return cmd
}

func run(ctx context.Context, out io.Writer, flags *config.Flags, args []string) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	flags.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.SaveConfig != "" {
		return cfg.SaveTo(flags.SaveConfig)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	mesh, err := loadMesh(flags.Solid, args)
	if err != nil {
		return err
	}
	logger.Info("mesh ready",
		zap.String("name", mesh.Name),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Float64("drawDistMin", mesh.DrawDistMin),
		zap.Float64("drawDistMax", mesh.DrawDistMax))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		sink    anim.Sink
		term    *uv.Terminal
		profile = colorprofile.Detect(os.Stdout, os.Environ())
	)
	termWidth, termHeight := terminalSize()
	switch {
	case cfg.Output.Script:
		sink = anim.NewScriptSink(out, cfg.Animation.FrameRate)
	case cfg.Output.Screen:
		term = uv.DefaultTerminal()
		if w, h, err := term.GetSize(); err == nil {
			termWidth, termHeight = w, h
		}
		sink = anim.NewScreenSink(term, cancel)
	default:
		sink = anim.NewStreamSink(out)
	}

	width, height := cfg.Size(termWidth, termHeight)
	opts, err := cfg.RenderOptions(width, height, profile)
	if err != nil {
		return err
	}
	r, err := render.NewRenderer(mesh, opts)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	logger.Debug("renderer ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Stringer("mode", opts.Mode),
		zap.Stringer("fill", opts.Fill),
		zap.Stringer("visibility", opts.Visibility),
		zap.Int("glyphs", len(opts.Gradient)),
		zap.String("profile", profile.String()))

	return anim.NewDriver(r, sink, cfg.AnimOptions()).Run(ctx)
}

// loadMesh resolves the model from --solid or the file argument.
func loadMesh(solid string, args []string) (*models.Mesh, error) {
	switch {
	case solid != "" && len(args) > 0:
		return nil, errors.New("give either a model file or --solid, not both")
	case solid != "":
		return models.Solid(strings.ToLower(solid))
	case len(args) == 0:
		return nil, errors.New("missing model file (or use --solid)")
	}

	path := args[0]
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		return models.LoadGLB(path)
	case ".obj":
		return models.LoadOBJ(path)
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .obj, .glb or .gltf)", ext)
	}
}

// terminalSize returns the size of stdout, or 80×20 when it is not a
// terminal.
func terminalSize() (width, height int) {
	w, h, err := xterm.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 0 {
		logger.Debug("terminal size unavailable, using fallback", zap.Error(err))
		return fallbackWidth, fallbackHeight
	}
	return w, h
}
