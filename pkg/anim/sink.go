package anim

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/taigrr/tumble/internal/logger"
	"github.com/taigrr/tumble/pkg/render"
)

// StreamSink writes frames straight to a terminal: the screen is cleared
// once, then every frame is drawn from the home position.
type StreamSink struct {
	w *bufio.Writer
}

// NewStreamSink creates a sink writing to w.
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: bufio.NewWriter(w)}
}

// Begin clears the screen above the cursor and hides the cursor.
func (s *StreamSink) Begin() error {
	s.w.WriteString(ansi.EraseScreenAbove)
	s.w.WriteString(ansi.HideCursor)
	return s.w.Flush()
}

// Frame homes the cursor and writes fb.
func (s *StreamSink) Frame(fb *render.Framebuffer, _ int) error {
	s.w.WriteString(ansi.CursorHomePosition)
	s.w.WriteString(fb.String())
	return s.w.Flush()
}

// End shows the cursor again.
func (s *StreamSink) End() error {
	s.w.WriteString(ansi.ShowCursor)
	return s.w.Flush()
}

// Live is true: frames are paced in real time.
func (s *StreamSink) Live() bool { return true }

// ScriptSink writes a POSIX shell script that replays the animation. Each
// frame becomes a quoted heredoc followed by a sleep.
type ScriptSink struct {
	w      *bufio.Writer
	period float64 // seconds
}

// NewScriptSink creates a script writer. fps sets the sleep between frames.
func NewScriptSink(w io.Writer, fps int) *ScriptSink {
	if fps <= 0 {
		fps = DefaultOptions().FrameRate
	}
	return &ScriptSink{w: bufio.NewWriter(w), period: 1 / float64(fps)}
}

// Begin writes the shebang and the clear-screen preamble.
func (s *ScriptSink) Begin() error {
	s.w.WriteString("#!/bin/sh\n")
	s.w.WriteString("# Script generated with tumble\n\n\n")
	s.w.WriteString(`printf '\033[1J\033[?25l'` + "\n")
	return s.w.Flush()
}

// Frame writes fb as a heredoc followed by a sleep of one frame period.
func (s *ScriptSink) Frame(fb *render.Framebuffer, index int) error {
	delim := fmt.Sprintf("TUMBLE_FRAME_%d", index)
	fmt.Fprintf(s.w, "\ncat << '%s'\n", delim)
	s.w.WriteString(ansi.CursorHomePosition)
	s.w.WriteString(fb.String())
	fmt.Fprintf(s.w, "\n%s\n", delim)
	fmt.Fprintf(s.w, "sleep %f\n", s.period)
	return s.w.Flush()
}

// End writes the command that restores the cursor.
func (s *ScriptSink) End() error {
	s.w.WriteString("\n\n" + `printf '\033[?25h'` + "\n")
	return s.w.Flush()
}

// Live is false: the script is paced by its own sleeps.
func (s *ScriptSink) Live() bool { return false }

// ScreenSink draws frames through an ultraviolet terminal on the alternate
// screen. Key presses of q, escape or ctrl+c call cancel; window size
// changes are reported through PendingResize.
type ScreenSink struct {
	term   *uv.Terminal
	cancel context.CancelFunc

	mu      sync.Mutex
	width   int
	height  int
	resized bool
}

// NewScreenSink creates a sink on term. cancel stops the animation.
func NewScreenSink(term *uv.Terminal, cancel context.CancelFunc) *ScreenSink {
	return &ScreenSink{term: term, cancel: cancel}
}

// Begin enters the alternate screen and starts watching terminal events.
func (s *ScreenSink) Begin() error {
	width, height, err := s.term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := s.term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	s.term.EnterAltScreen()
	s.term.HideCursor()
	s.term.Resize(width, height)

	go s.watch()
	return nil
}

func (s *ScreenSink) watch() {
	for ev := range s.term.Events() {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			s.mu.Lock()
			s.width, s.height, s.resized = ev.Width, ev.Height, true
			s.mu.Unlock()
		case uv.KeyPressEvent:
			if ev.MatchString("ctrl+c", "q", "escape") {
				logger.Debug("quit requested", zap.String("key", ev.String()))
				s.cancel()
			}
		}
	}
}

// PendingResize returns the latest window size once per change. The
// terminal is resized before it returns.
func (s *ScreenSink) PendingResize() (width, height int, ok bool) {
	s.mu.Lock()
	width, height, ok = s.width, s.height, s.resized
	s.resized = false
	s.mu.Unlock()

	if ok {
		s.term.Erase()
		s.term.Resize(width, height)
	}
	return width, height, ok
}

// Frame draws fb and flushes the screen.
func (s *ScreenSink) Frame(fb *render.Framebuffer, _ int) error {
	s.term.Draw(fb)
	return s.term.Display()
}

// End leaves the alternate screen and shuts the terminal down.
func (s *ScreenSink) End() error {
	s.term.ExitAltScreen()
	s.term.ShowCursor()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return s.term.Shutdown(ctx)
}

// Live is true.
func (s *ScreenSink) Live() bool { return true }
