package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"driprun/internal/broadcast"
	"driprun/internal/usecase"
)

type Server struct {
	router   *chi.Mux
	runner   *usecase.Runner
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
}

func NewServer(runner *usecase.Runner, hub *broadcast.Hub) *Server {
	s := &Server{
		runner: runner,
		hub:    hub,
		upgrader: websocket.Upgrader{
			// the control surface is unauthenticated; origin checks
			// would only break local dashboards
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	r := chi.NewRouter()
	r.Post("/upload", s.handleUpload)
	r.Get("/identities", s.handleIdentities)
	r.Post("/set-config", s.handleSetConfig)
	r.Get("/execute", s.handleExecute)
	r.Post("/abort", s.handleAbort)
	r.Get("/ws", s.handleWS)
	s.router = r
	return s
}

// Run method of the Server struct runs the HTTP server on the specified port. It initializes
// a new HTTP server instance with the specified port and the server's router.
func (s *Server) Run(port int) {
	addr := fmt.Sprintf(":%d", port)

	h := chainMiddleware(
		s.router,
		recoverHandler,
		loggerHandler(func(w http.ResponseWriter, r *http.Request) bool { return r.URL.Path == "/ws" }),
		realIPHandler,
		requestIDHandler,
		corsHandler,
	)

	// No Read/Write timeouts: /execute blocks for the whole run and /ws
	// connections live indefinitely.
	httpServer := http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("Server is shutting down...")
		s.runner.Abort()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("Server forced to shutdown")
		}

		close(done)
	}()

	log.Info().Msgf("server serving on port %d", port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to listen and serve")
	}

	<-done
	log.Info().Msg("Server stopped")
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
