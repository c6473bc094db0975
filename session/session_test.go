package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-shahab/pong-arena/ball"
	"github.com/mo-shahab/pong-arena/config"
	"github.com/mo-shahab/pong-arena/game"
)

type counter struct{ frames atomic.Int64 }

func (c *counter) OnFrame(game.Snapshot, []game.Event) { c.frames.Add(1) }

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Server.TickRate = config.Duration(time.Millisecond)
	return cfg
}

func TestCreateGetRemove(t *testing.T) {
	m := NewManager(testConfig())
	m.RandSource = func() ball.Rand { return rand.New(rand.NewPCG(1, 1)) }

	c := &counter{}
	s := m.Create(context.Background(), "client-1", c)
	assert.Len(t, s.ID, 6)
	assert.Equal(t, "client-1", s.ClientID)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	require.Eventually(t, func() bool { return c.frames.Load() > 0 }, time.Second, time.Millisecond)

	require.NoError(t, m.Remove(s.ID))
	assert.Equal(t, 0, m.Len())
	select {
	case <-s.Engine.Done():
	default:
		t.Fatal("engine still running after remove")
	}

	_, err = m.Get(s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(m.Remove(s.ID), ErrNotFound))
}

func TestShutdown(t *testing.T) {
	m := NewManager(testConfig())
	a := m.Create(context.Background(), "a", nil)
	b := m.Create(context.Background(), "b", nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, m.Len())

	m.Shutdown()
	assert.Equal(t, 0, m.Len())
	<-a.Engine.Done()
	<-b.Engine.Done()
}
