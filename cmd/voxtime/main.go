// VoxTime Core - Voice Timer Daemon
//
// This is the main entry point for the VoxTime Core daemon. VoxTime turns
// transcribed voice commands into alarms, reminders, timers, and command
// timers for voice satellites:
//   - Natural-language time decoding ("in five minutes", "at half past seven")
//   - Spoken confirmations and expiry announcements per satellite
//   - MQTT lifecycle events for automations
//   - Persistent timers that survive restarts
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/voxtime/voxtime-core/migrations"

	"github.com/voxtime/voxtime-core/internal/api"
	"github.com/voxtime/voxtime-core/internal/infrastructure/config"
	"github.com/voxtime/voxtime-core/internal/infrastructure/database"
	"github.com/voxtime/voxtime-core/internal/infrastructure/influxdb"
	"github.com/voxtime/voxtime-core/internal/infrastructure/logging"
	"github.com/voxtime/voxtime-core/internal/infrastructure/mqtt"
	"github.com/voxtime/voxtime-core/internal/lang"
	"github.com/voxtime/voxtime-core/internal/satellite"
	"github.com/voxtime/voxtime-core/internal/timer"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting VoxTime Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise satellite registry
	satelliteRepo := satellite.NewSQLiteRepository(db.DB)
	satellites := satellite.NewRegistry(satelliteRepo)
	satellites.SetLogger(log)
	if refreshErr := satellites.RefreshCache(ctx); refreshErr != nil {
		return fmt.Errorf("loading satellite registry: %w", refreshErr)
	}
	log.Info("satellite registry initialised", "satellites", len(satellites.List()))

	// Build language registry
	languages, err := lang.NewRegistry(lang.English(), lang.German())
	if err != nil {
		return fmt.Errorf("building language registry: %w", err)
	}
	log.Info("language packs loaded", "languages", languages.Codes())

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Set up MQTT logging callbacks
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// The hub is created before the timer store so the store can push
	// live timer snapshots to WebSocket clients. The API server adopts it
	// instead of creating its own.
	hub := api.NewHub(cfg.WebSocket, log)

	// Initialise timer store
	storeDeps := timer.Deps{
		Repository: timer.NewSQLiteRepository(db.DB),
		Languages:  languages,
		Events:     &mqttEventPublisher{client: mqttClient, qos: byte(cfg.MQTT.QoS)},
		Hub:        hub,
		Logger:     log,
		Config: timer.Config{
			DefaultPreExpireWarning: cfg.Timers.DefaultPreExpireWarning,
			ContextualTime:          cfg.Timers.ContextualTime,
			Use24Hour:               cfg.Timers.Use24Hour,
			DefaultLanguage:         lang.Code(cfg.Timers.DefaultLanguage),
		},
	}
	if influxClient != nil {
		storeDeps.Telemetry = influxClient
	}
	timers, err := timer.NewStore(storeDeps)
	if err != nil {
		return fmt.Errorf("creating timer store: %w", err)
	}
	defer func() {
		log.Info("stopping timer store")
		timers.Close()
	}()

	// Recover persisted timers
	if loadErr := timers.Load(ctx); loadErr != nil {
		return fmt.Errorf("recovering timers: %w", loadErr)
	}

	// Start the API server
	apiServer, err := api.New(api.Deps{
		Config:      cfg.API,
		WS:          cfg.WebSocket,
		Security:    cfg.Security,
		Logger:      log,
		Timers:      timers,
		Satellites:  satellites,
		Languages:   languages,
		MQTT:        mqttClient,
		DB:          db,
		ExternalHub: hub,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "host", cfg.API.Host, "port", cfg.API.Port)

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls run in reverse order:
	// 1. API server
	// 2. Timer store
	// 3. InfluxDB (if enabled)
	// 4. MQTT
	// 5. Database

	log.Info("VoxTime Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses VOXTIME_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("VOXTIME_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}

// mqttEventPublisher adapts the infrastructure MQTT client to the timer
// store's EventPublisher interface. Command timers publish under the
// command topic family so automations can subscribe without receiving
// user-facing announcement traffic.
type mqttEventPublisher struct {
	client *mqtt.Client
	qos    byte
}

// PublishTimerEvent implements timer.EventPublisher.
func (p *mqttEventPublisher) PublishTimerEvent(ev timer.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling timer event: %w", err)
	}

	topics := mqtt.Topics{}
	var topic string
	if ev.Class == timer.ClassCommand {
		topic = topics.CommandEvent(string(ev.Type))
	} else {
		topic = topics.TimerEvent(string(ev.Type))
	}
	return p.client.Publish(topic, payload, p.qos, false)
}
