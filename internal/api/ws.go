package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// handleWS attaches an observer to the progress stream. The observer
// receives every message published after it connected; nothing is
// replayed.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := s.hub.Subscribe()
	log.Info().Str("remote", r.RemoteAddr).Msg("observer connected")

	// reader: drains control frames and unsubscribes on disconnect,
	// which closes the subscription channel and stops the writer
	go func() {
		defer s.hub.Unsubscribe(sub)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				log.Info().Str("remote", r.RemoteAddr).Msg("observer disconnected")
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		for msg := range sub.C() {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
	}()
}
