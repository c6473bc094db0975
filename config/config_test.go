package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pong.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 20.0, cfg.Paddle.MaxSpeed)
	assert.Equal(t, 0.5, cfg.Paddle.Acceleration)
	assert.Equal(t, 2.0, cfg.Paddle.Deceleration)
	assert.Equal(t, 150.0, cfg.Ball.ServeSpeed)
	assert.Equal(t, 16*time.Millisecond, cfg.Server.TickRate.Std())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[paddle]
max_speed = 30.0

[match]
win_score = 11

[server]
addr = "127.0.0.1:9000"
tick_rate = "20ms"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.Paddle.MaxSpeed)
	assert.Equal(t, 0.5, cfg.Paddle.Acceleration, "untouched keys keep defaults")
	assert.Equal(t, 11, cfg.Match.WinScore)
	assert.Equal(t, 3, cfg.Match.WinLead)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 20*time.Millisecond, cfg.Server.TickRate.Std())
	assert.Equal(t, 1024.0, cfg.Arena.Width)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("bad rules", func(t *testing.T) {
		path := writeFile(t, "[match]\nwin_score = 0\n")
		_, err := Load(path)
		assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
	})

	t.Run("bad arena", func(t *testing.T) {
		path := writeFile(t, "[arena]\nheight = 100.0\n")
		_, err := Load(path)
		assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeFile(t, "[server]\ntick_rate = \"fast\"\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}

func TestSimulationScale(t *testing.T) {
	base := DefaultSimulation()
	fast := base.Scale(2)

	assert.Equal(t, 40.0, fast.MaxSpeed)
	assert.Equal(t, 1.0, fast.Acceleration)
	assert.Equal(t, base.Deceleration, fast.Deceleration)
	assert.Equal(t, 20.0, base.MaxSpeed, "scale returns a copy")
}

func TestSampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "pong.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
