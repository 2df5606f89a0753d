package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tools4freee/t4f/internal/log"
	"github.com/tools4freee/t4f/internal/model"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server for the local API.
type Server struct {
	httpServer *http.Server
	handler    *Handler
	watcher    *ConfigWatcher
	wsHub      *WebSocketHub
	listenMu   sync.Mutex
	listener   net.Listener
}

// NewServer creates a server listening on host:port. When configPath is set
// the config file is watched and reloaded on change.
func NewServer(handler *Handler, host string, port int, configPath string) *Server {
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	wsHub := NewWebSocketHub(handler.svc.Generator)
	mux.HandleFunc("GET /api/v1/ws", wsHub.ServeWS)

	s := &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(host, strconv.Itoa(port)),
			Handler:      Logging(Cors(mux)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		handler: handler,
		wsHub:   wsHub,
	}

	if configPath != "" {
		watcher, err := NewConfigWatcher(configPath)
		if err != nil {
			log.L().Warn().Err(err).Msg("config hot reload disabled")
		} else {
			watcher.Subscribe(s)
			s.watcher = watcher
		}
	}

	return s
}

// OnConfigChange implements ConfigWatcherSubscriber: reload, apply, notify.
func (s *Server) OnConfigChange(change ConfigChange) {
	logger := log.L().With().Str("path", change.Path).Logger()
	if change.Type == ConfigChangeRemoved {
		logger.Info().Msg("config file removed, keeping current settings")
		return
	}

	cfg, err := s.handler.Reload()
	if err != nil {
		logger.Warn().Err(err).Msg("config reload failed, keeping current settings")
		return
	}
	applyLogConfig(cfg)
	logger.Info().Msg("config reloaded")
	s.wsHub.ConfigReloaded(cfg)
}

func applyLogConfig(cfg *model.Config) {
	log.Init(log.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
}

// Start begins listening for HTTP requests. Blocks until shutdown.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.L().Warn().Err(err).Msg("failed to start config watcher")
		}
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	s.listenMu.Lock()
	s.listener = ln
	s.listenMu.Unlock()

	log.L().Info().Str("addr", ln.Addr().String()).Msg("server listening")
	return s.httpServer.Serve(ln)
}

// Run starts the server and shuts it down gracefully when ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.L().Info().Msg("shutting down")
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	s.wsHub.CloseAll()
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on, or the configured
// address before Start.
func (s *Server) Addr() string {
	s.listenMu.Lock()
	defer s.listenMu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}
