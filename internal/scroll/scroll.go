package scroll

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/i3sv/i3sv/internal/command"
	"github.com/i3sv/i3sv/internal/constants"
	"github.com/i3sv/i3sv/internal/message"
	"math"
)

// Scroller animates a normalized scroll position in [0, 1] with inertia. Inputs add to a velocity that decays
// every tick until it is negligible
type Scroller struct {
	Velocity float64
	Position float64
	running  bool
	id       string
}

// Add accumulates delta into the velocity. It returns the first tick of a new animation, or nil if one is
// already running
func (s *Scroller) Add(delta float64) tea.Cmd {
	s.Velocity = clamp(s.Velocity+delta, -constants.MaxScrollVelocity, constants.MaxScrollVelocity)
	if s.running {
		return nil
	}
	s.running = true
	s.id = uuid.NewString()
	return command.ScrollTickCmd(s.id, 0)
}

// Tick advances the animation by one step. moved reports whether Position changed. next schedules the following
// tick and is nil once the animation has stopped or when msg belongs to an earlier animation
func (s *Scroller) Tick(msg message.ScrollTickMsg) (position float64, moved bool, next tea.Cmd) {
	if !s.running || msg.ID != s.id {
		return s.Position, false, nil
	}
	moved, running := s.step()
	if !running {
		return s.Position, false, nil
	}
	return s.Position, moved, command.ScrollTickCmd(s.id, constants.ScrollTickInterval)
}

// Sync sets the position after the view was moved by something other than the animation
func (s *Scroller) Sync(position float64) {
	s.Position = clamp(position, 0, 1)
}

// Stop halts any running animation
func (s *Scroller) Stop() {
	s.Velocity = 0
	s.running = false
	s.id = ""
}

func (s Scroller) Running() bool {
	return s.running
}

// step applies one tick of motion and damping. It stops the animation, zeroing the velocity, once the velocity
// is below the stop threshold
func (s *Scroller) step() (moved, running bool) {
	if math.Abs(s.Velocity) < constants.ScrollStopThreshold {
		s.Stop()
		return false, false
	}
	next := clamp(s.Position+s.Velocity*constants.ScrollStepFactor, 0, 1)
	moved = next != s.Position
	s.Position = next
	s.Velocity *= constants.ScrollDamping
	return moved, true
}

// WheelDelta converts a wheel delta reported in multiples of 120 into a velocity increment
func WheelDelta(delta int) float64 {
	return constants.WheelDeltaFactor * float64(delta) / 120
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
