package arena

import (
	"errors"
	"fmt"
)

// Side identifies a player, the paddle they drive and the goal they defend
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Opponent returns the other player, SideNone stays SideNone
func (s Side) Opponent() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return SideNone
	}
}

var ErrInvalid = errors.New("invalid arena")

// Arena is the static playfield geometry, fixed for the whole match.
// All positions are centers, y grows downwards.
type Arena struct {
	Width            float64 `toml:"width"`
	Height           float64 `toml:"height"`
	GoalMargin       float64 `toml:"goal_margin"`
	PaddleHalfHeight float64 `toml:"paddle_half_height"`
	PaddleHalfWidth  float64 `toml:"paddle_half_width"`
	BallHalfSize     float64 `toml:"ball_half_size"`
	LeftPaddleX      float64 `toml:"left_paddle_x"`
	RightPaddleX     float64 `toml:"right_paddle_x"`
}

func Default() Arena {
	return Arena{
		Width:            1024,
		Height:           768,
		GoalMargin:       30,
		PaddleHalfHeight: 60,
		PaddleHalfWidth:  10,
		BallHalfSize:     10,
		LeftPaddleX:      50,
		RightPaddleX:     974,
	}
}

func (a Arena) CenterX() float64 { return a.Width / 2 }
func (a Arena) CenterY() float64 { return a.Height / 2 }

// PaddleX returns the fixed column of the paddle defending side
func (a Arena) PaddleX(s Side) float64 {
	if s == SideRight {
		return a.RightPaddleX
	}
	return a.LeftPaddleX
}

// GoalFor reports which side scores when the ball sits at x, SideNone while
// the ball is still in play.
func (a Arena) GoalFor(x float64) Side {
	if x < a.GoalMargin {
		return SideRight
	}
	if x > a.Width-a.GoalMargin {
		return SideLeft
	}
	return SideNone
}

func (a Arena) Validate() error {
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("%w: size %vx%v", ErrInvalid, a.Width, a.Height)
	}
	if a.GoalMargin < 0 || 2*a.GoalMargin >= a.Width {
		return fmt.Errorf("%w: goal margin %v", ErrInvalid, a.GoalMargin)
	}
	// an enlarged paddle must still fit
	if a.PaddleHalfHeight <= 0 || 4*a.PaddleHalfHeight >= a.Height {
		return fmt.Errorf("%w: paddle half height %v", ErrInvalid, a.PaddleHalfHeight)
	}
	if a.PaddleHalfWidth <= 0 || a.BallHalfSize <= 0 {
		return fmt.Errorf("%w: paddle half width %v, ball half size %v", ErrInvalid, a.PaddleHalfWidth, a.BallHalfSize)
	}
	if a.LeftPaddleX >= a.RightPaddleX || a.LeftPaddleX <= 0 || a.RightPaddleX >= a.Width {
		return fmt.Errorf("%w: paddle columns %v, %v", ErrInvalid, a.LeftPaddleX, a.RightPaddleX)
	}
	return nil
}
