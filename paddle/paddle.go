package paddle

import "github.com/mo-shahab/pong-arena/arena"

// Intent is the logical direction a player holds during a frame
type Intent int

const (
	None Intent = iota
	Up
	Down
)

func (i Intent) String() string {
	switch i {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// IntentOf maps held keys to an intent, up wins when both are held
func IntentOf(up, down bool) Intent {
	if up {
		return Up
	}
	if down {
		return Down
	}
	return None
}

// ParseIntent accepts "up", "down" and anything else as None
func ParseIntent(s string) Intent {
	switch s {
	case "up":
		return Up
	case "down":
		return Down
	default:
		return None
	}
}

// Paddle is one player's bat. X is fixed, Y and V are per-frame values.
type Paddle struct {
	Side           arena.Side
	X, Y           float64
	V              float64
	BaseHalfHeight float64
	// Enlarged is sticky for the rest of the match
	Enlarged bool
}

func New(side arena.Side, a arena.Arena) *Paddle {
	return &Paddle{
		Side:           side,
		X:              a.PaddleX(side),
		Y:              a.CenterY(),
		BaseHalfHeight: a.PaddleHalfHeight,
	}
}

// HalfHeight is the base value or exactly twice it once enlarged
func (p *Paddle) HalfHeight() float64 {
	if p.Enlarged {
		return 2 * p.BaseHalfHeight
	}
	return p.BaseHalfHeight
}

func (p *Paddle) Top() float64    { return p.Y - p.HalfHeight() }
func (p *Paddle) Bottom() float64 { return p.Y + p.HalfHeight() }

// Enlarge doubles the paddle for the rest of the match and pulls it back
// inside the arena if the new size pokes out. Reports whether anything changed.
func (p *Paddle) Enlarge(a arena.Arena) bool {
	if p.Enlarged {
		return false
	}
	p.Enlarged = true
	p.Y = clamp(p.Y, p.HalfHeight(), a.Height-p.HalfHeight())
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
