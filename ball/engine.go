package ball

import (
	"math"

	"github.com/mo-shahab/pong-arena/arena"
	"github.com/mo-shahab/pong-arena/paddle"
)

// Serve launches a resting ball from wherever it sits. Each axis gets
// speed plus 0..jitter extra and an independent random sign. Returns false
// and changes nothing if the ball is already moving.
func (b *Ball) Serve(rng Rand, speed float64, jitter int) bool {
	if b.InMotion {
		return false
	}
	b.VX = serveComponent(rng, speed, jitter)
	b.VY = serveComponent(rng, speed, jitter)
	b.InMotion = true
	return true
}

func serveComponent(rng Rand, speed float64, jitter int) float64 {
	positive := rng.IntN(2) == 1
	v := speed + float64(rng.IntN(jitter+1))
	if positive {
		return v
	}
	return -v
}

// BounceWalls reflects the ball off the top and bottom edges. Left and right
// are goals and never reflect.
func (b *Ball) BounceWalls(a arena.Arena) bool {
	switch {
	case b.Y-b.HalfSize <= 0:
		b.Y = b.HalfSize
		b.VY = math.Abs(b.VY)
		return true
	case b.Y+b.HalfSize >= a.Height:
		b.Y = a.Height - b.HalfSize
		b.VY = -math.Abs(b.VY)
		return true
	}
	return false
}

// Overlaps is an axis aligned box test between the ball and the paddle body
func (b *Ball) Overlaps(p *paddle.Paddle, a arena.Arena) bool {
	return b.X-b.HalfSize < p.X+a.PaddleHalfWidth &&
		b.X+b.HalfSize > p.X-a.PaddleHalfWidth &&
		b.Y-b.HalfSize < p.Bottom() &&
		b.Y+b.HalfSize > p.Top()
}

// Deflect returns the ball off an overlapping paddle. The horizontal
// direction is reflected away from the paddle and the ball is pushed out of its
// body so the same contact cannot fire twice. The further from the paddle's
// center the contact, the more vertical speed is added in that direction.
// Finally vx is scaled by 0.9, 1.0, 1.1, 1.2 or 1.3.
func (b *Ball) Deflect(p *paddle.Paddle, a arena.Arena, spin float64, rng Rand) {
	if p.Side == arena.SideLeft {
		b.VX = math.Abs(b.VX)
		b.X = p.X + a.PaddleHalfWidth + b.HalfSize
	} else {
		b.VX = -math.Abs(b.VX)
		b.X = p.X - a.PaddleHalfWidth - b.HalfSize
	}

	diff := b.Y - p.Y
	switch {
	case diff < 0:
		b.VY -= math.Abs(diff * spin)
	case diff > 0:
		b.VY += math.Abs(diff * spin)
	}

	b.VX *= ReturnFactor(rng)
}

// ReturnFactor is 1.1 + U{-2..2}/10
func ReturnFactor(rng Rand) float64 {
	return 1.1 + float64(rng.IntN(5)-2)/10
}
