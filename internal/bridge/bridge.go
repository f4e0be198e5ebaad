package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hearthd/hearth-core/internal/announce"
	"github.com/hearthd/hearth-core/internal/home"
	"github.com/hearthd/hearth-core/internal/infrastructure/mqtt"
)

// Bridge connects the home coordinator to the MQTT bus. It publishes
// appliance announcements and execution events outward, and turns inbound
// messages on the command topic into coordinator runs.
//
// Thread Safety: All methods are safe for concurrent use.
type Bridge struct {
	client MQTTClient
	home   HomeRunner
	qos    byte
	topics mqtt.Topics

	// runCtx is the context commands execute under. Set by Start; command
	// handlers fire from paho goroutines long after Start returns.
	runCtx context.Context
	ctxMu  sync.RWMutex

	stopOnce sync.Once

	logger Logger
}

// MQTTClient is the interface for MQTT operations.
// This allows mocking in tests and flexibility in implementation.
type MQTTClient interface {
	// Publish sends a message to a topic.
	Publish(topic string, payload []byte, qos byte, retained bool) error

	// Subscribe registers a handler for a topic pattern.
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte) error) error

	// Unsubscribe removes a subscription.
	Unsubscribe(topic string) error
}

// HomeRunner executes whole-home operations.
// This interface is satisfied by *home.Coordinator.
type HomeRunner interface {
	Run(ctx context.Context, op home.Op, triggerType, triggerSource string) (*home.Execution, error)
}

// Logger interface for optional logging support.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger discards all log output. Used when no logger is provided.
type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// New creates a Bridge over the given MQTT client and coordinator.
//
// Parameters:
//   - client: connected MQTT client (or a test double)
//   - home: the coordinator commands are dispatched to
//   - qos: QoS level for published messages (from mqtt.qos config)
//   - logger: optional logger (nil for silent operation)
func New(client MQTTClient, home HomeRunner, qos byte, logger Logger) *Bridge {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Bridge{
		client: client,
		home:   home,
		qos:    qos,
		logger: logger,
	}
}

// Start subscribes to the command topic. The given context bounds every
// command execution the bridge dispatches; cancel it to stop accepting
// work before Close.
func (b *Bridge) Start(ctx context.Context) error {
	b.ctxMu.Lock()
	b.runCtx = ctx
	b.ctxMu.Unlock()

	if err := b.client.Subscribe(b.topics.HomeCommand(), b.qos, b.handleCommand); err != nil {
		return fmt.Errorf("bridge: subscribing to commands: %w", err)
	}

	b.logger.Info("MQTT bridge started", "command_topic", b.topics.HomeCommand())
	return nil
}

// Close unsubscribes from the command topic. Safe to call more than once.
func (b *Bridge) Close() error {
	var err error
	b.stopOnce.Do(func() {
		err = b.client.Unsubscribe(b.topics.HomeCommand())
	})
	return err
}

// commandPayload is the expected JSON shape on hearth/command/home.
type commandPayload struct {
	Op string `json:"op"`
}

// handleCommand parses an inbound command and runs it on the coordinator.
// Errors are returned to the MQTT client, which logs them; a malformed
// command must never take the subscription down.
func (b *Bridge) handleCommand(topic string, payload []byte) error {
	var cmd commandPayload
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("bridge: parsing command: %w", err)
	}

	op, err := home.ParseOp(cmd.Op)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}

	b.ctxMu.RLock()
	ctx := b.runCtx
	b.ctxMu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}

	exec, err := b.home.Run(ctx, op, "command", topic)
	if err != nil {
		return fmt.Errorf("bridge: running %s: %w", op, err)
	}

	b.logger.Info("command executed",
		"op", string(op),
		"execution_id", exec.ID,
		"status", string(exec.Status),
	)
	return nil
}

// AnnounceSink returns an announce.Sink that publishes each transition
// retained to its kind's announcement topic, so late subscribers see the
// last known transition per appliance kind.
func (b *Bridge) AnnounceSink() announce.Sink {
	return &announceSink{bridge: b}
}

type announceSink struct {
	bridge *Bridge
}

func (s *announceSink) Announce(_ context.Context, msg announce.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("bridge: marshalling announcement: %w", err)
	}

	topic := s.bridge.topics.Announce(msg.Kind)
	if err := s.bridge.client.Publish(topic, payload, s.bridge.qos, true); err != nil {
		return fmt.Errorf("bridge: publishing announcement: %w", err)
	}
	return nil
}

// PublishEvent publishes an execution event payload to the event topic.
// Called via the broadcast fan-out whenever the coordinator finishes a run.
func (b *Bridge) PublishEvent(payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("bridge: marshalling event: %w", err)
	}

	if err := b.client.Publish(b.topics.ExecutionEvent(), data, b.qos, false); err != nil {
		return fmt.Errorf("bridge: publishing event: %w", err)
	}
	return nil
}
