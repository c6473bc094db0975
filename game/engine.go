// game/engine.go
package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// Broadcaster receives every committed frame
type Broadcaster interface {
	OnFrame(snap Snapshot, events []Event)
}

// Engine drives a Match from a ticker. Intents and commands coming from other
// goroutines are latched under the engine lock and therefore always land
// between two frames.
type Engine struct {
	match       *Match
	broadcaster Broadcaster
	tickRate    time.Duration

	mu      sync.Mutex
	inputs  Inputs
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewEngine(match *Match, tickRate time.Duration, broadcaster Broadcaster) *Engine {
	return &Engine{
		match:       match,
		broadcaster: broadcaster,
		tickRate:    tickRate,
		done:        make(chan struct{}),
	}
}

// Start begins the game loop, calling it again is a no-op
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	ctx, e.cancel = context.WithCancel(ctx)
	e.running = true
	e.mu.Unlock()

	log.Printf("Starting match %s, tick %v", e.match.ID, e.tickRate)
	go e.gameLoop(ctx)
}

// Stop halts the game loop and waits for it to exit
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	cancel := e.cancel
	e.mu.Unlock()

	cancel()
	<-e.done
}

// Done is closed once the loop has exited, either stopped or after match over
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

func (e *Engine) gameLoop(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.tickRate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Printf("Match %s stopped", e.match.ID)
			return
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if over := e.step(dt); over {
				return
			}
		}
	}
}

// step runs one frame and reports whether the match has ended
func (e *Engine) step(dt time.Duration) bool {
	e.mu.Lock()
	events := e.match.Update(dt, e.inputs)
	snap := e.match.Snapshot()
	e.mu.Unlock()

	for _, ev := range events {
		switch ev.Kind {
		case EventGoal:
			log.Printf("Match %s: %s player scored! Score: %s", snap.MatchID, ev.Side, ev.Score)
		case EventHandicap:
			log.Printf("Match %s: %s paddle enlarged at %s", snap.MatchID, ev.Side, ev.Score)
		case EventMatchOver:
			log.Printf("Match %s over: %s wins %s after %s", snap.MatchID, ev.Side, ev.Score, snap.Clock())
		}
	}

	if e.broadcaster != nil {
		e.broadcaster.OnFrame(snap, events)
	}
	return snap.Phase == PhaseMatchOver
}

// SetIntents latches the intents used by every following frame
func (e *Engine) SetIntents(in Inputs) {
	e.mu.Lock()
	e.inputs = in
	e.mu.Unlock()
}

func (e *Engine) Serve() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.Serve()
}

func (e *Engine) ToggleTurbo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.ToggleTurbo()
}

// Snapshot returns the current game state safely
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.Snapshot()
}
