package game

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/mo-shahab/pong-arena/arena"
	"github.com/mo-shahab/pong-arena/ball"
	"github.com/mo-shahab/pong-arena/config"
	"github.com/mo-shahab/pong-arena/paddle"
	"github.com/mo-shahab/pong-arena/scores"
	"github.com/mo-shahab/pong-arena/turbo"
)

// Rules are the match tunables not tied to the arena or the paddle speeds
type Rules struct {
	WinScore    int
	WinLead     int
	HandicapGap int
	ServeSpeed  float64
	ServeJitter int
	Spin        float64
}

func RulesFrom(cfg config.Config) Rules {
	return Rules{
		WinScore:    cfg.Match.WinScore,
		WinLead:     cfg.Match.WinLead,
		HandicapGap: cfg.Match.HandicapGap,
		ServeSpeed:  cfg.Ball.ServeSpeed,
		ServeJitter: cfg.Ball.ServeJitter,
		Spin:        cfg.Ball.Spin,
	}
}

// Match owns all simulation state of one game. It is not safe for
// concurrent use; Engine serialises access.
type Match struct {
	ID string

	arena arena.Arena
	rules Rules
	turbo *turbo.Modifier
	sim   config.Simulation
	rng   ball.Rand

	left  *paddle.Paddle
	right *paddle.Paddle
	ball  *ball.Ball
	score scores.Scores

	elapsed      time.Duration
	timerStarted bool
	over         bool
	winner       arena.Side

	// events raised by Serve and ToggleTurbo, flushed by the next Update
	pending []Event
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewMatch sets up a match with the ball resting at center. A nil rng uses
// the process wide source.
func NewMatch(cfg config.Config, rng ball.Rand) *Match {
	if rng == nil {
		rng = globalRand{}
	}
	t := turbo.New(cfg.Paddle)
	return &Match{
		ID:    uuid.New().String(),
		arena: cfg.Arena,
		rules: RulesFrom(cfg),
		turbo: t,
		sim:   t.Simulation(),
		rng:   rng,
		left:  paddle.New(arena.SideLeft, cfg.Arena),
		right: paddle.New(arena.SideRight, cfg.Arena),
		ball:  ball.New(cfg.Arena),
	}
}

func (m *Match) Phase() Phase {
	switch {
	case m.over:
		return PhaseMatchOver
	case m.ball.InMotion:
		return PhaseRallying
	default:
		return PhaseIdle
	}
}

func (m *Match) Over() bool { return m.over }
func (m *Match) Winner() arena.Side { return m.winner }
func (m *Match) Score() scores.Scores { return m.score }
func (m *Match) Simulation() config.Simulation { return m.sim }

// Serve launches the ball if it is resting and starts the match timer for
// good. Returns false when the ball was already moving or the match is over.
func (m *Match) Serve() bool {
	if m.over {
		return false
	}
	m.timerStarted = true
	if !m.serve() {
		return false
	}
	m.pending = append(m.pending, Event{Kind: EventServe, Score: m.score})
	return true
}

func (m *Match) serve() bool {
	speed := m.rules.ServeSpeed * m.turbo.Factor()
	return m.ball.Serve(m.rng, speed, m.rules.ServeJitter)
}

// ToggleTurbo flips turbo, swaps in the matching paddle constants and
// rescales the ball's live velocity once.
func (m *Match) ToggleTurbo() bool {
	if m.over {
		return false
	}
	m.ball.Scale(m.turbo.Toggle())
	m.sim = m.turbo.Simulation()
	m.pending = append(m.pending, Event{Kind: EventTurbo, Turbo: m.turbo.Enabled(), Score: m.score})
	return true
}

// Update advances the match by one frame and returns what happened during it.
// Once the match is over it does nothing.
func (m *Match) Update(dt time.Duration, in Inputs) []Event {
	if m.over {
		return nil
	}
	events := m.pending
	m.pending = nil

	if m.timerStarted {
		m.elapsed += dt
	}

	paddle.Step(m.left, in.Left, m.arena, m.sim)
	paddle.Step(m.right, in.Right, m.arena, m.sim)

	scored := arena.SideNone
	if m.ball.InMotion {
		scored = m.moveBall(dt, &events)
	}

	if side := m.score.Trailing(m.rules.HandicapGap); side != arena.SideNone {
		if m.paddle(side).Enlarge(m.arena) {
			events = append(events, Event{Kind: EventHandicap, Side: side, Score: m.score})
		}
	}

	if w := m.score.Winner(m.rules.WinScore, m.rules.WinLead); w != arena.SideNone {
		m.over = true
		m.winner = w
		return append(events, Event{Kind: EventMatchOver, Side: w, Score: m.score})
	}

	if scored != arena.SideNone && m.serve() {
		events = append(events, Event{Kind: EventServe, Score: m.score})
	}
	return events
}

// moveBall integrates the ball, resolves walls then paddles left before
// right, and reports the scoring side if a goal line was crossed.
func (m *Match) moveBall(dt time.Duration, events *[]Event) arena.Side {
	m.ball.Integrate(dt)
	if m.ball.BounceWalls(m.arena) {
		*events = append(*events, Event{Kind: EventWallBounce, Score: m.score})
	}

	for _, p := range []*paddle.Paddle{m.left, m.right} {
		if m.ball.Overlaps(p, m.arena) {
			m.ball.Deflect(p, m.arena, m.rules.Spin, m.rng)
			*events = append(*events, Event{Kind: EventPaddleHit, Side: p.Side, Score: m.score})
		}
	}

	side := m.arena.GoalFor(m.ball.X)
	if side == arena.SideNone {
		return side
	}
	m.score.Add(side)
	m.ball.Reset(m.arena)
	*events = append(*events, Event{Kind: EventGoal, Side: side, Score: m.score})
	return side
}

func (m *Match) paddle(side arena.Side) *paddle.Paddle {
	if side == arena.SideRight {
		return m.right
	}
	return m.left
}

func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		MatchID: m.ID,
		Phase:   m.Phase(),
		Left:    paddleState(m.left),
		Right:   paddleState(m.right),
		Ball: BallState{
			X:        m.ball.X,
			Y:        m.ball.Y,
			VX:       m.ball.VX,
			VY:       m.ball.VY,
			InMotion: m.ball.InMotion,
		},
		Score:   m.score,
		Elapsed: m.elapsed,
		Turbo:   m.turbo.Enabled(),
		Winner:  m.winner,
	}
}

func paddleState(p *paddle.Paddle) PaddleState {
	return PaddleState{
		Side:       p.Side,
		X:          p.X,
		Y:          p.Y,
		HalfHeight: p.HalfHeight(),
		Enlarged:   p.Enlarged,
	}
}
