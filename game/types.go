package game

import (
	"fmt"
	"time"

	"github.com/mo-shahab/pong-arena/arena"
	"github.com/mo-shahab/pong-arena/paddle"
	"github.com/mo-shahab/pong-arena/scores"
)

type Phase int

const (
	// PhaseIdle: ball resting on the center spot, waiting for a serve
	PhaseIdle Phase = iota
	PhaseRallying
	PhaseMatchOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRallying:
		return "rallying"
	case PhaseMatchOver:
		return "match_over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Inputs are the intents held by both players for one frame
type Inputs struct {
	Left  paddle.Intent
	Right paddle.Intent
}

type EventKind int

const (
	EventServe EventKind = iota + 1
	EventWallBounce
	EventPaddleHit
	EventGoal
	EventHandicap
	EventTurbo
	EventMatchOver
)

func (k EventKind) String() string {
	switch k {
	case EventServe:
		return "serve"
	case EventWallBounce:
		return "wall_bounce"
	case EventPaddleHit:
		return "paddle_hit"
	case EventGoal:
		return "goal"
	case EventHandicap:
		return "handicap"
	case EventTurbo:
		return "turbo"
	case EventMatchOver:
		return "match_over"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is something the presentation layer may want to react to.
// Side is the scorer for goals, the enlarged paddle for handicaps, the hit
// paddle for paddle hits and the winner for match over.
type Event struct {
	Kind  EventKind
	Side  arena.Side
	Score scores.Scores
	Turbo bool
}

type PaddleState struct {
	Side       arena.Side
	X, Y       float64
	HalfHeight float64
	Enlarged   bool
}

type BallState struct {
	X, Y     float64
	VX, VY   float64
	InMotion bool
}

// Snapshot is a point-in-time copy of everything a renderer needs
type Snapshot struct {
	MatchID string
	Phase   Phase
	Left    PaddleState
	Right   PaddleState
	Ball    BallState
	Score   scores.Scores
	Elapsed time.Duration
	Turbo   bool
	Winner  arena.Side
}

// Clock formats the elapsed match time as MM:SS
func (s Snapshot) Clock() string {
	return FormatClock(s.Elapsed)
}

func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
