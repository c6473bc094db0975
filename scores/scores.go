package scores

import (
	"fmt"

	"github.com/mo-shahab/pong-arena/arena"
)

type Scores struct {
	Left  int
	Right int
}

func (s Scores) String() string {
	return fmt.Sprintf("%d-%d", s.Left, s.Right)
}

func (s *Scores) Add(side arena.Side) {
	switch side {
	case arena.SideLeft:
		s.Left++
	case arena.SideRight:
		s.Right++
	}
}

func (s Scores) Of(side arena.Side) int {
	switch side {
	case arena.SideLeft:
		return s.Left
	case arena.SideRight:
		return s.Right
	default:
		return 0
	}
}

// Leader returns the side with the higher score, SideNone on a tie
func (s Scores) Leader() arena.Side {
	switch {
	case s.Left > s.Right:
		return arena.SideLeft
	case s.Right > s.Left:
		return arena.SideRight
	default:
		return arena.SideNone
	}
}

// Trailing returns the side behind by at least gap, SideNone otherwise
func (s Scores) Trailing(gap int) arena.Side {
	switch {
	case s.Left >= s.Right+gap:
		return arena.SideRight
	case s.Right >= s.Left+gap:
		return arena.SideLeft
	default:
		return arena.SideNone
	}
}

// Winner reports the side that reached minScore with a lead of at least
// lead, or SideNone while the match goes on.
func (s Scores) Winner(minScore, lead int) arena.Side {
	if (s.Left >= minScore && s.Left >= s.Right+lead) ||
		(s.Right >= minScore && s.Right >= s.Left+lead) {
		return s.Leader()
	}
	return arena.SideNone
}
