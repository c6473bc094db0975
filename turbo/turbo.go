// Package turbo holds the global speed modifier shared by both paddles and the ball.
package turbo

import "github.com/mo-shahab/pong-arena/config"

const Multiplier = 2.0

type Modifier struct {
	enabled bool
	base    config.Simulation
}

func New(base config.Simulation) *Modifier {
	return &Modifier{base: base}
}

func (m *Modifier) Enabled() bool { return m.enabled }

// Factor is 2 while turbo is on and 1 otherwise
func (m *Modifier) Factor() float64 {
	if m.enabled {
		return Multiplier
	}
	return 1
}

// Simulation returns the paddle constants for the current state, always
// derived from the stored base values.
func (m *Modifier) Simulation() config.Simulation {
	return m.base.Scale(m.Factor())
}

// Toggle flips turbo and returns the one-time factor to apply to the ball's
// live velocity.
func (m *Modifier) Toggle() float64 {
	m.enabled = !m.enabled
	if m.enabled {
		return Multiplier
	}
	return 1 / Multiplier
}
