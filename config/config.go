package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mo-shahab/pong-arena/arena"
)

var ErrInvalid = errors.New("invalid config")

// Simulation holds the paddle speed constants read by every paddle step.
// Values are per frame. Turbo produces scaled copies, never mutates one in place.
type Simulation struct {
	MaxSpeed     float64 `toml:"max_speed"`
	Acceleration float64 `toml:"acceleration"`
	Deceleration float64 `toml:"deceleration"`
}

func DefaultSimulation() Simulation {
	return Simulation{
		MaxSpeed:     20,
		Acceleration: 0.5,
		Deceleration: 2,
	}
}

// Scale multiplies the speed ceiling and acceleration, deceleration is left alone
func (s Simulation) Scale(f float64) Simulation {
	s.MaxSpeed *= f
	s.Acceleration *= f
	return s
}

// Ball tuning, velocities in px per second
type Ball struct {
	ServeSpeed  float64 `toml:"serve_speed"`
	ServeJitter int     `toml:"serve_jitter"`
	Spin        float64 `toml:"spin"`
}

type Match struct {
	WinScore    int `toml:"win_score"`
	WinLead     int `toml:"win_lead"`
	HandicapGap int `toml:"handicap_gap"`
}

type Server struct {
	Addr      string   `toml:"addr"`
	TickRate  Duration `toml:"tick_rate"`
	SendQueue int      `toml:"send_queue"`
}

type Config struct {
	Arena  arena.Arena `toml:"arena"`
	Paddle Simulation  `toml:"paddle"`
	Ball   Ball        `toml:"ball"`
	Match  Match       `toml:"match"`
	Server Server      `toml:"server"`
}

func Default() Config {
	return Config{
		Arena:  arena.Default(),
		Paddle: DefaultSimulation(),
		Ball: Ball{
			ServeSpeed:  150,
			ServeJitter: 100,
			Spin:        5,
		},
		Match: Match{
			WinScore:    20,
			WinLead:     3,
			HandicapGap: 10,
		},
		Server: Server{
			Addr:      ":8080",
			TickRate:  Duration(16 * time.Millisecond),
			SendQueue: 100,
		},
	}
}

// Load reads a TOML file on top of Default. Keys missing from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("config %s: unknown key %s ignored", path, key)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Arena.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Paddle.MaxSpeed <= 0 || c.Paddle.Acceleration < 0 || c.Paddle.Deceleration <= 0 {
		return fmt.Errorf("%w: paddle speeds %+v", ErrInvalid, c.Paddle)
	}
	if c.Ball.ServeSpeed <= 0 || c.Ball.ServeJitter < 0 || c.Ball.Spin < 0 {
		return fmt.Errorf("%w: ball %+v", ErrInvalid, c.Ball)
	}
	if c.Match.WinScore <= 0 || c.Match.WinLead <= 0 || c.Match.HandicapGap <= 0 {
		return fmt.Errorf("%w: match rules %+v", ErrInvalid, c.Match)
	}
	if c.Server.TickRate.Std() <= 0 || c.Server.SendQueue <= 0 {
		return fmt.Errorf("%w: server tick %v, send queue %d", ErrInvalid, c.Server.TickRate, c.Server.SendQueue)
	}
	return nil
}

// Duration decodes TOML strings such as "16ms"
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }
