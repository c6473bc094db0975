package wsserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mo-shahab/pong-arena/config"
	"github.com/mo-shahab/pong-arena/paddle"
	"github.com/mo-shahab/pong-arena/session"
	"github.com/mo-shahab/pong-arena/wire"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	cfg := config.Default()
	cfg.Server.TickRate = config.Duration(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	sessions := session.NewManager(cfg)
	srv := httptest.NewServer(NewMux(NewWebSocketHandler(ctx, sessions, 256)))
	t.Cleanup(func() {
		srv.Close()
		cancel()
		sessions.Shutdown()
	})
	return srv, sessions
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, cmd wire.Command) {
	t.Helper()
	b, err := wire.EncodeCommand(cmd)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, b))
}

// readUntil reads messages until match returns true or the deadline passes
func readUntil(t *testing.T, conn *websocket.Conn, match func(map[string]any) bool) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, p, err := conn.ReadMessage()
		require.NoError(t, err)
		fields, err := wire.Decode(p)
		require.NoError(t, err)
		if match(fields) {
			return fields
		}
	}
}

func TestHandlerStreamsSnapshots(t *testing.T) {
	srv, sessions := newTestServer(t)
	conn := dial(t, srv)

	snap := readUntil(t, conn, func(f map[string]any) bool { return f["type"] == wire.TypeSnapshot })
	assert.Equal(t, "idle", snap["phase"])
	assert.NotEmpty(t, snap["matchId"])
	assert.Equal(t, 1, sessions.Len())

	send(t, conn, wire.Command{Type: wire.TypeServe})
	ev := readUntil(t, conn, func(f map[string]any) bool { return f["type"] == wire.TypeEvent })
	assert.Equal(t, "serve", ev["kind"])

	send(t, conn, wire.Command{Type: wire.TypeTurbo})
	snap = readUntil(t, conn, func(f map[string]any) bool {
		return f["type"] == wire.TypeSnapshot && f["turbo"] == true
	})
	assert.Equal(t, "rallying", snap["phase"])

	send(t, conn, wire.Command{Type: wire.TypeInput, Left: paddle.Up})
	snap = readUntil(t, conn, func(f map[string]any) bool {
		if f["type"] != wire.TypeSnapshot {
			return false
		}
		left := f["left"].(map[string]any)
		return left["y"].(float64) < 384
	})
	right := snap["right"].(map[string]any)
	assert.Equal(t, 384.0, right["y"])
}

func TestHandlerReportsBadCommands(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0xff, 0xff}))
	msg := readUntil(t, conn, func(f map[string]any) bool { return f["type"] == wire.TypeError })
	assert.Contains(t, msg["error"], "malformed")

	// the connection survives
	send(t, conn, wire.Command{Type: wire.TypeServe})
	readUntil(t, conn, func(f map[string]any) bool { return f["kind"] == "serve" })
}

func TestHandlerRemovesSessionOnDisconnect(t *testing.T) {
	srv, sessions := newTestServer(t)
	conn := dial(t, srv)
	readUntil(t, conn, func(f map[string]any) bool { return f["type"] == wire.TypeSnapshot })
	require.Equal(t, 1, sessions.Len())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return sessions.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok 0 sessions\n", string(body))
}
