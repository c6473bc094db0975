package wsserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mo-shahab/pong-arena/config"
	"github.com/mo-shahab/pong-arena/session"
)

const shutdownTimeout = 5 * time.Second

func NewMux(wsh *WebSocketHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/ws", wsh)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok %d sessions\n", wsh.Sessions.Len())
	})
	return mux
}

// Run serves the websocket endpoint until ctx is cancelled, then stops every
// running match.
func Run(ctx context.Context, cfg config.Config) error {
	sessions := session.NewManager(cfg)
	wsh := NewWebSocketHandler(ctx, sessions, cfg.Server.SendQueue)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: NewMux(wsh),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sessions.Shutdown()
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	sessions.Shutdown()
	log.Println("Server stopped")
	return nil
}
