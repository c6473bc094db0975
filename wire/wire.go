// Package wire encodes frames for the presentation layer and decodes the
// commands it sends back. Every message is a protobuf Struct carrying a
// "type" field.
package wire

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mo-shahab/pong-arena/game"
	"github.com/mo-shahab/pong-arena/paddle"
)

var (
	ErrMalformed      = errors.New("malformed message")
	ErrUnknownCommand = errors.New("unknown command")
)

const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
	TypeError    = "error"

	TypeInput = "input"
	TypeServe = "serve"
	TypeTurbo = "turbo"
)

// Command is one decoded client message. Left and Right only matter for
// TypeInput.
type Command struct {
	Type  string
	Left  paddle.Intent
	Right paddle.Intent
}

func (c Command) Inputs() game.Inputs {
	return game.Inputs{Left: c.Left, Right: c.Right}
}

func EncodeSnapshot(s game.Snapshot) ([]byte, error) {
	return encode(map[string]any{
		"type":    TypeSnapshot,
		"matchId": s.MatchID,
		"phase":   s.Phase.String(),
		"left":    paddleFields(s.Left),
		"right":   paddleFields(s.Right),
		"ball": map[string]any{
			"x":        s.Ball.X,
			"y":        s.Ball.Y,
			"inMotion": s.Ball.InMotion,
		},
		"score": map[string]any{
			"left":  s.Score.Left,
			"right": s.Score.Right,
		},
		"clock":  s.Clock(),
		"turbo":  s.Turbo,
		"winner": s.Winner.String(),
	})
}

func paddleFields(p game.PaddleState) map[string]any {
	return map[string]any{
		"x":          p.X,
		"y":          p.Y,
		"halfHeight": p.HalfHeight,
		"enlarged":   p.Enlarged,
	}
}

func EncodeEvent(e game.Event) ([]byte, error) {
	return encode(map[string]any{
		"type":  TypeEvent,
		"kind":  e.Kind.String(),
		"side":  e.Side.String(),
		"turbo": e.Turbo,
		"score": map[string]any{
			"left":  e.Score.Left,
			"right": e.Score.Right,
		},
	})
}

func EncodeCommand(c Command) ([]byte, error) {
	fields := map[string]any{"type": c.Type}
	if c.Type == TypeInput {
		fields["left"] = c.Left.String()
		fields["right"] = c.Right.String()
	}
	return encode(fields)
}

func encode(fields map[string]any) ([]byte, error) {
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build message: %w", err)
	}
	b, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	return b, nil
}

func DecodeCommand(p []byte) (Command, error) {
	msg := &structpb.Struct{}
	if err := proto.Unmarshal(p, msg); err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	fields := msg.GetFields()

	typ := fields["type"].GetStringValue()
	switch typ {
	case TypeServe, TypeTurbo:
		return Command{Type: typ}, nil
	case TypeInput:
		return Command{
			Type:  typ,
			Left:  paddle.ParseIntent(fields["left"].GetStringValue()),
			Right: paddle.ParseIntent(fields["right"].GetStringValue()),
		}, nil
	case "":
		return Command{}, fmt.Errorf("%w: missing type", ErrMalformed)
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, typ)
	}
}

// Decode returns the raw fields of any message, used by clients and tests
func Decode(p []byte) (map[string]any, error) {
	msg := &structpb.Struct{}
	if err := proto.Unmarshal(p, msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return msg.AsMap(), nil
}

func EncodeError(msg string) ([]byte, error) {
	return encode(map[string]any{
		"type":  TypeError,
		"error": msg,
	})
}
