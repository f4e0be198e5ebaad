package broker

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	mochi "github.com/mochi-mqtt/server/v2"
	"github.com/mochi-mqtt/server/v2/hooks/auth"
	"github.com/mochi-mqtt/server/v2/listeners"

	"github.com/hearthd/hearth-core/internal/infrastructure/config"
)

// listenerID identifies the TCP listener within the mochi server.
const listenerID = "hearth-tcp"

// Sentinel errors for broker operations.
var (
	ErrAlreadyStarted = errors.New("broker: already started")
	ErrStartFailed    = errors.New("broker: start failed")
)

// Broker is the embedded MQTT broker, used when Hearth should not depend
// on an external Mosquitto instance. It serves plain TCP on the configured
// broker port; the Hearth core then connects to it like any other client.
type Broker struct {
	server *mochi.Server
	cfg    config.MQTTConfig

	mu      sync.Mutex
	started bool
}

// New creates an embedded broker from the MQTT configuration.
// The logger may be nil, in which case mochi uses its own default.
func New(cfg config.MQTTConfig, logger *slog.Logger) *Broker {
	server := mochi.New(&mochi.Options{
		Logger: logger,
	})
	return &Broker{
		server: server,
		cfg:    cfg,
	}
}

// Start attaches hooks and the TCP listener, then begins serving.
// Bind errors surface here, not later.
func (b *Broker) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return ErrAlreadyStarted
	}

	if err := b.server.AddHook(b.authHook()); err != nil {
		return fmt.Errorf("%w: adding auth hook: %w", ErrStartFailed, err)
	}

	tcp := listeners.NewTCP(listeners.Config{
		ID:      listenerID,
		Address: fmt.Sprintf(":%d", b.cfg.Broker.Port),
	})
	if err := b.server.AddListener(tcp); err != nil {
		return fmt.Errorf("%w: adding listener: %w", ErrStartFailed, err)
	}

	if err := b.server.Serve(); err != nil {
		return fmt.Errorf("%w: %w", ErrStartFailed, err)
	}

	b.started = true
	return nil
}

// authHook builds the broker's authentication hook. With credentials
// configured, only that account (plus local connections) may connect;
// without credentials the broker is open, matching a default Mosquitto.
func (b *Broker) authHook() (mochi.Hook, any) {
	if b.cfg.Auth.Username == "" {
		return new(auth.AllowHook), nil
	}

	return new(auth.Hook), &auth.Options{
		Ledger: &auth.Ledger{
			Auth: auth.AuthRules{
				{Username: auth.RString(b.cfg.Auth.Username), Password: auth.RString(b.cfg.Auth.Password), Allow: true},
				{Remote: "127.0.0.1:*", Allow: true},
				{Remote: "localhost:*", Allow: true},
			},
		},
	}
}

// Close shuts the broker down, disconnecting all clients.
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return nil
	}
	b.started = false

	if err := b.server.Close(); err != nil {
		return fmt.Errorf("broker: close: %w", err)
	}
	return nil
}
