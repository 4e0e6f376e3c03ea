package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/voxtime/voxtime-core/internal/infrastructure/config"
	"github.com/voxtime/voxtime-core/internal/infrastructure/database"
	"github.com/voxtime/voxtime-core/internal/infrastructure/logging"
	"github.com/voxtime/voxtime-core/internal/infrastructure/mqtt"
	"github.com/voxtime/voxtime-core/internal/lang"
	"github.com/voxtime/voxtime-core/internal/satellite"
	"github.com/voxtime/voxtime-core/internal/timer"
	"github.com/voxtime/voxtime-core/internal/timespeech"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// TimerStore is the slice of the timer store the API consumes.
type TimerStore interface {
	Add(ctx context.Context, req timer.AddRequest) (*timer.FormattedTimer, string, error)
	Start(ctx context.Context, id string) error
	Snooze(ctx context.Context, id string, iv timespeech.Interval) (string, error)
	Cancel(ctx context.Context, req timer.CancelRequest) (int, error)
	Get(req timer.GetRequest) []timer.FormattedTimer
}

// SatelliteDirectory is the slice of the satellite registry the API consumes.
type SatelliteDirectory interface {
	Get(id string) (*satellite.Satellite, error)
	GetByEntityID(entityID string) (*satellite.Satellite, error)
	List() []*satellite.Satellite
	Create(ctx context.Context, s *satellite.Satellite) (*satellite.Satellite, error)
	Update(ctx context.Context, s *satellite.Satellite) (*satellite.Satellite, error)
	Delete(ctx context.Context, id string) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config      config.APIConfig
	WS          config.WebSocketConfig
	Security    config.SecurityConfig
	Logger      *logging.Logger
	Timers      TimerStore
	Satellites  SatelliteDirectory
	Languages   *lang.Registry
	MQTT        *mqtt.Client
	DB          *database.DB
	ExternalHub *Hub // If set, the server uses this hub instead of creating its own
	Version     string
}

// Server is the HTTP API server for VoxTime Core.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg        config.APIConfig
	wsCfg      config.WebSocketConfig
	secCfg     config.SecurityConfig
	logger     *logging.Logger
	timers     TimerStore
	satellites SatelliteDirectory
	languages  *lang.Registry
	mqtt       *mqtt.Client
	db         *database.DB
	version    string
	startTime  time.Time
	server     *http.Server
	hub        *Hub
	cancel     context.CancelFunc // cancels background goroutines on Close()
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, timer store, satellites)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Timers == nil {
		return nil, fmt.Errorf("timer store is required")
	}
	if deps.Satellites == nil {
		return nil, fmt.Errorf("satellite directory is required")
	}
	if deps.Languages == nil {
		return nil, fmt.Errorf("language registry is required")
	}
	// MQTT is optional — presence relay is lost without it but everything
	// else still functions.

	s := &Server{
		cfg:        deps.Config,
		wsCfg:      deps.WS,
		secCfg:     deps.Security,
		logger:     deps.Logger,
		timers:     deps.Timers,
		satellites: deps.Satellites,
		languages:  deps.Languages,
		mqtt:       deps.MQTT,
		db:         deps.DB,
		version:    deps.Version,
		startTime:  time.Now(),
	}

	// Use externally-provided hub if available (needed when the timer
	// store also broadcasts through it).
	if deps.ExternalHub != nil {
		s.hub = deps.ExternalHub
	}

	return s, nil
}

// Start begins listening for HTTP connections.
//
// It sets up the router, starts the WebSocket hub, subscribes to satellite
// presence topics for real-time WebSocket broadcast, and launches the HTTP
// listener in a background goroutine. The server can be stopped with Close().
//
// Parameters:
//   - ctx: Context for cancellation (not used for listener lifetime)
//
// Returns:
//   - error: If the server fails to start (port in use, etc.)
func (s *Server) Start(ctx context.Context) error {
	// Create internal context so Close() can stop background goroutines
	// independently of the parent context.
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	// Create WebSocket hub (unless one was injected externally). The
	// server owns the hub lifecycle either way.
	if s.hub == nil {
		s.hub = NewHub(s.wsCfg, s.logger)
	}
	go s.hub.Run(srvCtx)

	// Start periodic ticket cleanup to prevent memory leaks
	go s.cleanTicketsLoop(srvCtx)

	// Relay satellite presence updates to WebSocket clients
	if err := s.subscribePresenceUpdates(); err != nil {
		s.logger.Warn("failed to subscribe to presence updates for WebSocket", "error", err)
	}

	// Build router
	router := s.buildRouter()

	// Create HTTP server
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	// Start listening in background
	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// subscribePresenceUpdates subscribes to satellite presence topics and
// broadcasts changes to WebSocket clients subscribed to "satellite.presence".
func (s *Server) subscribePresenceUpdates() error {
	if s.mqtt == nil {
		return nil // MQTT not configured; presence relay disabled
	}

	topic := mqtt.Topics{}.AllSatellitePresence()
	s.logger.Info("subscribing to presence updates for WebSocket relay", "topic", topic)
	return s.mqtt.Subscribe(topic, 1, func(t string, payload []byte) error {
		if s.hub == nil {
			return nil // Hub not yet initialised
		}

		var presence map[string]any
		if err := json.Unmarshal(payload, &presence); err != nil {
			s.logger.Warn("failed to parse presence message for WebSocket broadcast", "error", err)
			return nil
		}

		// Topic shape: voxtime/satellite/{entity_id}/presence
		parts := strings.Split(t, "/")
		if len(parts) == 4 {
			presence["entity_id"] = parts[2]
		}

		s.hub.Broadcast("satellite.presence", presence)
		return nil
	})
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
//
// Returns:
//   - error: If shutdown encounters an error
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	// Cancel background goroutines (hub, ticket cleanup)
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running and responsive.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}

	return nil
}
