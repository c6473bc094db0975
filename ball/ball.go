package ball

import (
	"time"

	"github.com/mo-shahab/pong-arena/arena"
)

// Rand is the random source used for serves and paddle returns.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Ball position is its center, velocity is in px per second
type Ball struct {
	X, Y     float64
	VX, VY   float64
	HalfSize float64
	InMotion bool
}

func New(a arena.Arena) *Ball {
	b := &Ball{HalfSize: a.BallHalfSize}
	b.Reset(a)
	return b
}

// Reset puts the ball back on the center spot at rest
func (b *Ball) Reset(a arena.Arena) {
	b.X = a.CenterX()
	b.Y = a.CenterY()
	b.VX = 0
	b.VY = 0
	b.InMotion = false
}

// Integrate moves the ball by its velocity over dt
func (b *Ball) Integrate(dt time.Duration) {
	s := dt.Seconds()
	b.X += b.VX * s
	b.Y += b.VY * s
}

// Scale multiplies the live velocity once, used by turbo toggles
func (b *Ball) Scale(f float64) {
	b.VX *= f
	b.VY *= f
}
