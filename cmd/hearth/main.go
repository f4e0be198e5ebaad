// Hearth - Home Automation Core
//
// This is the main entry point for the Hearth daemon. Hearth drives a
// small household appliance roster (air conditioning, light, TV) through
// one-call whole-home operations, journals every walk, and exposes the
// results over REST, WebSocket and MQTT. It is designed for:
//   - Single-binary deployment (embedded broker, embedded migrations)
//   - Offline-first operation on a trusted LAN
//   - Uniform appliance control behind one coordinator
//
// Run with -demo for the canonical appliance walkthrough.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/hearthd/hearth-core/migrations"

	"github.com/hearthd/hearth-core/internal/announce"
	"github.com/hearthd/hearth-core/internal/api"
	"github.com/hearthd/hearth-core/internal/auth"
	"github.com/hearthd/hearth-core/internal/bridge"
	"github.com/hearthd/hearth-core/internal/device"
	"github.com/hearthd/hearth-core/internal/home"
	"github.com/hearthd/hearth-core/internal/infrastructure/broker"
	"github.com/hearthd/hearth-core/internal/infrastructure/config"
	"github.com/hearthd/hearth-core/internal/infrastructure/database"
	"github.com/hearthd/hearth-core/internal/infrastructure/influxdb"
	"github.com/hearthd/hearth-core/internal/infrastructure/logging"
	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
	"github.com/hearthd/hearth-core/internal/schedule"
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
	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	demo := flag.Bool("demo", false, "run the appliance walkthrough and exit")
	hashPassword := flag.String("hash-password", "", "print the Argon2id hash of a password and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("hearth %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	// This is the Go pattern for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *demo {
		if err := runDemo(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Run the daemon
	if err := run(ctx, *configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runDemo builds the default roster with a stdout sink, activates the
// whole home, then deactivates it. Stdout carries exactly the six
// announcement lines; logging goes to stderr at error level so the
// transcript stays clean.
func runDemo(ctx context.Context) error {
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"}, version)

	// The coordinator journals every walk, so the demo gets a throwaway
	// in-memory database rather than a special non-journalling path.
	db, err := database.Open(database.Config{Path: ":memory:", BusyTimeout: 5})
	if err != nil {
		return fmt.Errorf("opening demo database: %w", err)
	}
	defer db.Close() //nolint:errcheck // In-memory database, nothing to lose

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	appliances, err := device.FromSpecs(device.DefaultSpecs(), announce.NewWriterSink(os.Stdout))
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}

	coordinator := home.NewCoordinator(appliances, home.NewSQLiteRepository(db.DB), nil, nil, log)

	if _, err := coordinator.ActivateAll(ctx, "manual", "demo"); err != nil {
		return fmt.Errorf("activating home: %w", err)
	}
	if _, err := coordinator.DeactivateAll(ctx, "manual", "demo"); err != nil {
		return fmt.Errorf("deactivating home: %w", err)
	}
	return nil
}

// run is the actual daemon logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//   - configPath: Config file path from the -config flag (may be empty)
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context, configPath string) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Hearth",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	path := resolveConfigPath(configPath)
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", path)

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

	// Execution journal
	journal := home.NewSQLiteRepository(db.DB)

	// Start embedded MQTT broker (if enabled)
	if cfg.MQTT.Embedded.Enabled {
		embedded := broker.New(cfg.MQTT, log.Logger)
		if startErr := embedded.Start(); startErr != nil {
			return fmt.Errorf("starting embedded broker: %w", startErr)
		}
		defer func() {
			log.Info("stopping embedded broker")
			if closeErr := embedded.Close(); closeErr != nil {
				log.Error("error stopping embedded broker", "error", closeErr)
			}
		}()
		log.Info("embedded MQTT broker started", "port", cfg.MQTT.Broker.Port)
	}

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	mqttClient.SetLogger(log)
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
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
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

	// WebSocket hub (shared by the API server and the coordinator)
	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)

	// MQTT command bridge. The bridge is constructed before the
	// coordinator because the roster's announce sink includes the
	// bridge's publisher; the runner reference is filled in below,
	// before the bridge starts accepting commands.
	runner := &coordinatorRef{}
	cmdBridge := bridge.New(&mqttBridgeAdapter{client: mqttClient}, runner, byte(cfg.MQTT.QoS), log)

	// Announce fanout: every appliance transition goes to WebSocket
	// clients, the MQTT announce topics, and (when enabled) InfluxDB.
	sinks := []announce.Sink{hub.AnnounceSink(), cmdBridge.AnnounceSink()}
	var metrics home.Metrics
	if influxClient != nil {
		sinks = append(sinks, &influxAnnounceSink{client: influxClient})
		metrics = influxClient
	}
	announceSink := announce.NewFanout(sinks...)

	// Build the appliance roster
	appliances, err := device.FromSpecs(rosterSpecs(cfg.Devices), announceSink)
	if err != nil {
		return fmt.Errorf("building roster: %w", err)
	}
	log.Info("appliance roster built", "appliances", len(appliances))

	// Coordinator over the roster
	coordinator := home.NewCoordinator(appliances, journal,
		&executionEvents{hub: hub, bridge: cmdBridge, log: log}, metrics, log)
	runner.set(coordinator)

	// Start the command bridge
	if startErr := cmdBridge.Start(ctx); startErr != nil {
		return fmt.Errorf("starting MQTT bridge: %w", startErr)
	}
	defer func() {
		log.Info("stopping MQTT bridge")
		if closeErr := cmdBridge.Close(); closeErr != nil {
			log.Error("error closing MQTT bridge", "error", closeErr)
		}
	}()

	// Start scheduler (if any schedules are configured)
	var scheduler *schedule.Scheduler
	if len(cfg.Schedules) > 0 {
		scheduler = schedule.New(cfg.Schedules, coordinator, log)
		if startErr := scheduler.Start(ctx); startErr != nil {
			return fmt.Errorf("starting scheduler: %w", startErr)
		}
		defer func() {
			log.Info("stopping scheduler")
			scheduler.Stop()
		}()
		log.Info("scheduler started", "entries", scheduler.Entries())
	} else {
		log.Info("scheduler disabled, no schedules configured")
	}

	// Authenticator for the API
	authenticator := auth.NewAuthenticator(
		cfg.Security.Admin.Username,
		cfg.Security.Admin.PasswordHash,
		cfg.Security.JWT.Secret,
		cfg.Security.JWT.AccessTokenTTL,
	)

	// Start API server
	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Security: cfg.Security,
		Logger:   log,
		Home:     coordinator,
		Repo:     journal,
		Auth:     authenticator,
		Schedule: scheduler,
		MQTT:     mqttClient,
		Hub:      hub,
		Version:  version,
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
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient, apiServer); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. Scheduler (if enabled)
	// 3. MQTT bridge
	// 4. InfluxDB (if enabled)
	// 5. MQTT client
	// 6. Embedded broker (if enabled)
	// 7. Database

	log.Info("Hearth stopped")
	return nil
}

// resolveConfigPath returns the configuration file path.
// Precedence: -config flag, HEARTH_CONFIG environment variable, default.
func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if path := os.Getenv("HEARTH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// rosterSpecs converts configured device entries to factory specs,
// falling back to the default household roster when none are declared.
// Roster order is walk order, so config order is preserved.
func rosterSpecs(entries []config.DeviceConfig) []device.Spec {
	if len(entries) == 0 {
		return device.DefaultSpecs()
	}
	specs := make([]device.Spec, 0, len(entries))
	for _, e := range entries {
		specs = append(specs, device.Spec{Kind: device.Kind(e.Kind), Name: e.Name})
	}
	return specs
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//   - apiServer: API server to check
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client, apiServer *api.Server) error {
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

	if err := apiServer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}

// coordinatorRef defers the bridge's coordinator wiring. The bridge must
// exist before the roster is built (the roster's announce sink publishes
// through it), and the coordinator needs the finished roster, so main
// hands the bridge this reference and assigns the coordinator before the
// bridge starts accepting commands.
type coordinatorRef struct {
	c *home.Coordinator
}

// Run implements bridge.HomeRunner.
func (r *coordinatorRef) Run(ctx context.Context, op home.Op, triggerType, triggerSource string) (*home.Execution, error) {
	if r.c == nil {
		return nil, fmt.Errorf("coordinator not wired")
	}
	return r.c.Run(ctx, op, triggerType, triggerSource)
}

func (r *coordinatorRef) set(c *home.Coordinator) {
	r.c = c
}

// mqttBridgeAdapter adapts the infrastructure MQTT client to the command
// bridge's MQTTClient interface. The signatures differ only in the
// Subscribe handler type: the bridge declares the plain func form of
// mqtt.MessageHandler so it does not depend on the client package's
// named type.
type mqttBridgeAdapter struct {
	client *mqtt.Client
}

// Publish implements bridge.MQTTClient.
func (a *mqttBridgeAdapter) Publish(topic string, payload []byte, qos byte, retained bool) error {
	return a.client.Publish(topic, payload, qos, retained)
}

// Subscribe implements bridge.MQTTClient.
func (a *mqttBridgeAdapter) Subscribe(topic string, qos byte, handler func(topic string, payload []byte) error) error {
	return a.client.Subscribe(topic, qos, handler)
}

// Unsubscribe implements bridge.MQTTClient.
func (a *mqttBridgeAdapter) Unsubscribe(topic string) error {
	return a.client.Unsubscribe(topic)
}

// executionEvents satisfies home.WSHub. It forwards coordinator
// broadcasts to WebSocket clients and mirrors them onto the MQTT event
// topic so panels on either transport see the same stream.
type executionEvents struct {
	hub    *api.Hub
	bridge *bridge.Bridge
	log    *logging.Logger
}

// Broadcast implements home.WSHub.
func (e *executionEvents) Broadcast(channel string, payload any) {
	e.hub.Broadcast(channel, payload)
	if err := e.bridge.PublishEvent(payload); err != nil {
		e.log.Warn("publishing execution event", "error", err)
	}
}

// influxAnnounceSink records each appliance transition as an InfluxDB
// point. Writes are batched and asynchronous; a slow InfluxDB never
// stalls an appliance walk.
type influxAnnounceSink struct {
	client *influxdb.Client
}

// Announce implements announce.Sink.
func (s *influxAnnounceSink) Announce(_ context.Context, msg announce.Message) error {
	s.client.WriteTransition(msg.Kind, string(msg.State))
	return nil
}
