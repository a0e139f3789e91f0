package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Rates are per-axis spin rates in turns per frame.
type Rates struct {
	U, V, W float64
}

// DefaultRates is a slow tumble dominated by the V axis.
var DefaultRates = Rates{U: -0.0005, V: 0.005, W: 0.00005}

// Spinner produces the camera angles for each frame.
//
// Without spin-up frame n is at 2π·n·rate on every axis. With spin-up the
// rate multiplier starts at 0 and is pulled toward 1 by a critically damped
// spring, and the angles accumulate.
type Spinner struct {
	rates  Rates
	spinUp bool
	spring harmonica.Spring

	frame   int
	speed   float64 // rate multiplier, 0..1
	vel     float64 // spring velocity
	u, v, w float64 // accumulated angles
}

// NewSpinner creates a spinner for the given rates. fps sets the spring
// time step when spinUp is on.
func NewSpinner(rates Rates, fps int, spinUp bool) *Spinner {
	if fps <= 0 {
		fps = 60
	}
	return &Spinner{
		rates:  rates,
		spinUp: spinUp,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 2.0, 1.0),
	}
}

// Angles returns the angles of frame n at full speed.
func (s *Spinner) Angles(n int) (u, v, w float64) {
	t := 2 * math.Pi * float64(n)
	return t * s.rates.U, t * s.rates.V, t * s.rates.W
}

// Next returns the angles for the next frame. The first call returns the
// rest position.
func (s *Spinner) Next() (u, v, w float64) {
	n := s.frame
	s.frame++
	if !s.spinUp {
		return s.Angles(n)
	}

	if n > 0 {
		s.speed, s.vel = s.spring.Update(s.speed, s.vel, 1)
		du, dv, dw := s.Angles(1)
		s.u += du * s.speed
		s.v += dv * s.speed
		s.w += dw * s.speed
	}
	return s.u, s.v, s.w
}

// Speed returns the current rate multiplier.
func (s *Spinner) Speed() float64 {
	if !s.spinUp {
		return 1
	}
	return s.speed
}
