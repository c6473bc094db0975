package paddle

import (
	"github.com/mo-shahab/pong-arena/arena"
	"github.com/mo-shahab/pong-arena/config"
)

// Step advances one paddle by one frame.
//
// While the paddle is clear of both walls a held direction snaps the velocity
// to the speed ceiling and then keeps adding acceleration. When only the far
// wall is touched the paddle is re-pinned next to that wall, offset by its
// velocity. With nothing applicable the paddle loses sim.Deceleration of speed
// per frame and is clamped to the walls.
func Step(p *Paddle, in Intent, a arena.Arena, sim config.Simulation) {
	h := p.HalfHeight()
	floor := a.Height - h
	topClear := p.Y-h > 0
	bottomClear := p.Y+h < a.Height

	switch {
	case in == Up && topClear && bottomClear:
		if p.V > -sim.MaxSpeed {
			p.V = -sim.MaxSpeed
		} else {
			p.V -= sim.Acceleration
		}
		p.Y = clamp(p.Y+p.V, h, floor)

	case in == Down && topClear && bottomClear:
		if p.V < sim.MaxSpeed {
			p.V = sim.MaxSpeed
		} else {
			p.V += sim.Acceleration
		}
		p.Y = clamp(p.Y+p.V, h, floor)

	// known quirk: leaving a wall repositions from the wall instead of integrating
	case in == Up && topClear:
		if p.V > 0 {
			p.V = -p.V
		}
		p.Y = floor + p.V

	case in == Down && bottomClear:
		if p.V < 0 {
			p.V = -p.V
		}
		p.Y = h + p.V

	default:
		coast(p, h, floor, sim.Deceleration)
	}
}

func coast(p *Paddle, h, floor, dec float64) {
	switch {
	case p.V > dec:
		p.V -= dec
		if p.Y+p.V < floor {
			p.Y += p.V
		} else {
			p.Y = floor
		}
	case p.V < -dec:
		p.V += dec
		if p.Y+p.V > h {
			p.Y += p.V
		} else {
			p.Y = h
		}
	}
}
