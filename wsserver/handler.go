// wsserver/handler.go

package wsserver

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mo-shahab/pong-arena/client"
	"github.com/mo-shahab/pong-arena/game"
	"github.com/mo-shahab/pong-arena/session"
	"github.com/mo-shahab/pong-arena/wire"
)

// WebSocketHandler bridges one presentation client per connection to its own
// match session.
type WebSocketHandler struct {
	Upgrader  websocket.Upgrader
	Sessions  *session.Manager
	QueueSize int

	// ctx bounds the lifetime of every engine started by this handler
	ctx context.Context
}

func NewWebSocketHandler(ctx context.Context, sessions *session.Manager, queueSize int) *WebSocketHandler {
	return &WebSocketHandler{
		Upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		Sessions:  sessions,
		QueueSize: queueSize,
		ctx:       ctx,
	}
}

// frameSender encodes committed frames onto a client's send queue
type frameSender struct {
	client *client.Client
}

func (fs frameSender) OnFrame(snap game.Snapshot, events []game.Event) {
	for _, ev := range events {
		encoded, err := wire.EncodeEvent(ev)
		if err != nil {
			log.Printf("Failed to encode %s event: %v", ev.Kind, err)
			continue
		}
		fs.client.Send(encoded)
	}

	encoded, err := wire.EncodeSnapshot(snap)
	if err != nil {
		log.Printf("Failed to encode snapshot: %v", err)
		return
	}
	fs.client.Send(encoded)
}

// ServeHTTP handles WebSocket connections
func (wsh *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := wsh.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error %s when connecting to the socket", err)
		return
	}

	c := client.New(conn, wsh.QueueSize)

	// Message queue goroutine
	go func() {
		defer conn.Close()
		if err := c.WritePump(); err != nil {
			log.Printf("Binary message write error for client %s: %v", c.ID, err)
		}
	}()

	s := wsh.Sessions.Create(wsh.ctx, c.ID, frameSender{client: c})
	c.SessionID = s.ID
	defer wsh.disconnect(c)

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Error reading message from client %s: %v", c.ID, err)
			}
			return
		}

		cmd, err := wire.DecodeCommand(p)
		if err != nil {
			log.Printf("Bad command from client %s: %v", c.ID, err)
			wsh.sendError(c, err.Error())
			continue
		}
		wsh.handleCommand(s.Engine, cmd)
	}
}

func (wsh *WebSocketHandler) handleCommand(engine *game.Engine, cmd wire.Command) {
	switch cmd.Type {
	case wire.TypeInput:
		engine.SetIntents(cmd.Inputs())
	case wire.TypeServe:
		engine.Serve()
	case wire.TypeTurbo:
		engine.ToggleTurbo()
	}
}

// disconnect stops the client's match before closing its queue so no frame is
// sent on a closed queue
func (wsh *WebSocketHandler) disconnect(c *client.Client) {
	if err := wsh.Sessions.Remove(c.SessionID); err != nil {
		log.Printf("Disconnect client %s: %v", c.ID, err)
	}
	c.Close()
	log.Printf("Client %s disconnected", c.ID)
}

func (wsh *WebSocketHandler) sendError(c *client.Client, errorMsg string) {
	encoded, err := wire.EncodeError(errorMsg)
	if err != nil {
		log.Printf("Failed to marshal error message: %v", err)
		return
	}
	c.Send(encoded)
}
