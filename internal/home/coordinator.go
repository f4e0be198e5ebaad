package home

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthd/hearth-core/internal/device"
)

// Logger is the minimal logging interface the coordinator needs.
// Satisfied by *logging.Logger without importing the logging package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// WSHub is the interface for broadcasting WebSocket events.
type WSHub interface {
	// Broadcast sends an event to all clients subscribed to the given channel.
	Broadcast(channel string, payload any)
}

// Metrics is the interface for recording execution telemetry.
type Metrics interface {
	// WriteExecution records one finished bulk operation.
	WriteExecution(op, status string, total, failed, durationMS int)
}

// maxExecutionTime is the hard limit for a single bulk operation walk.
// Stub appliances respond instantly; even a roster of real networked
// appliances should finish well inside this window.
const maxExecutionTime = 30 * time.Second

// finaliseTimeout bounds the journal update that closes an execution.
const finaliseTimeout = 5 * time.Second

// Coordinator is the single entry point for whole-home control.
//
// It owns an ordered appliance roster and exposes one-call bulk
// operations: ActivateAll and DeactivateAll. Both walk the roster in
// declaration order, continue past individual appliance failures, and
// return an Execution summarising exactly which appliances responded.
// Every walk is journalled through the Repository.
//
// Thread Safety: ActivateAll and DeactivateAll are safe for concurrent
// use. The roster itself is fixed at construction.
type Coordinator struct {
	appliances []device.Appliance
	repo       Repository
	hub        WSHub
	metrics    Metrics
	logger     Logger
}

// NewCoordinator creates a coordinator over the given roster.
//
// Parameters:
//   - appliances: Ordered roster; the slice is copied for isolation
//   - repo: Repository for journalling executions (required)
//   - hub: WebSocket hub for execution events (may be nil)
//   - metrics: Telemetry writer for finished executions (may be nil)
//   - logger: Logger instance (nil for silent operation)
func NewCoordinator(appliances []device.Appliance, repo Repository, hub WSHub, metrics Metrics, logger Logger) *Coordinator {
	if logger == nil {
		logger = noopLogger{}
	}
	roster := make([]device.Appliance, len(appliances))
	copy(roster, appliances)
	return &Coordinator{
		appliances: roster,
		repo:       repo,
		hub:        hub,
		metrics:    metrics,
		logger:     logger,
	}
}

// Appliances returns a snapshot of the roster in walk order.
func (c *Coordinator) Appliances() []device.Appliance {
	out := make([]device.Appliance, len(c.appliances))
	copy(out, c.appliances)
	return out
}

// ActivateAll switches every appliance on, in roster order.
//
// Individual appliance failures do not stop the walk; they are collected
// into the returned Execution. An empty roster completes successfully
// with zero announcements.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - triggerType: How the operation was requested (manual, schedule, command)
//   - triggerSource: Where the trigger originated (api, cron spec, topic); may be empty
//
// Returns:
//   - *Execution: Summary of the walk, already journalled
//   - error: Only for infrastructure-level faults; appliance failures are
//     reported in the summary, not as an error
func (c *Coordinator) ActivateAll(ctx context.Context, triggerType, triggerSource string) (*Execution, error) {
	return c.run(ctx, OpActivate, triggerType, triggerSource)
}

// DeactivateAll switches every appliance off, in roster order.
// Semantics mirror ActivateAll.
func (c *Coordinator) DeactivateAll(ctx context.Context, triggerType, triggerSource string) (*Execution, error) {
	return c.run(ctx, OpDeactivate, triggerType, triggerSource)
}

// Run executes the named operation. It is the Op-parameterised form of
// ActivateAll/DeactivateAll used by the schedule and command bridges.
func (c *Coordinator) Run(ctx context.Context, op Op, triggerType, triggerSource string) (*Execution, error) {
	switch op {
	case OpActivate, OpDeactivate:
		return c.run(ctx, op, triggerType, triggerSource)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}

func (c *Coordinator) run(ctx context.Context, op Op, triggerType, triggerSource string) (*Execution, error) {
	// Bound the walk so a wedged appliance cannot hold the caller forever.
	ctx, cancel := context.WithTimeout(ctx, maxExecutionTime)
	defer cancel()

	now := time.Now().UTC()
	exec := &Execution{
		ID:              GenerateID(),
		Op:              op,
		TriggeredAt:     now,
		TriggerType:     triggerType,
		Status:          StatusPending,
		AppliancesTotal: len(c.appliances),
	}
	if triggerSource != "" {
		exec.TriggerSource = &triggerSource
	}

	// Persist the initial record. Switching appliances matters more than
	// the journal, so a write failure is logged and the walk continues.
	if createErr := c.repo.CreateExecution(ctx, exec); createErr != nil {
		c.logger.Error("failed to create execution record", "error", createErr)
	}

	started := time.Now().UTC()
	exec.StartedAt = &started
	exec.Status = StatusRunning

	c.logger.Info("bulk operation started",
		"op", op,
		"execution_id", exec.ID,
		"appliances", len(c.appliances),
	)

	var failures []ApplianceFailure
	completed := 0
	skipped := 0
	cancelled := false

	for i, appliance := range c.appliances {
		// Check cancellation before each appliance; the remainder of the
		// roster is skipped, never half-announced.
		select {
		case <-ctx.Done():
			skipped = len(c.appliances) - i
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		if err := apply(ctx, appliance, op); err != nil {
			failures = append(failures, ApplianceFailure{
				Index:     i,
				Kind:      string(appliance.Kind()),
				Appliance: appliance.Name(),
				ErrorCode: "APPLIANCE_FAILED",
				ErrorMsg:  err.Error(),
			})
			c.logger.Warn("appliance failed during bulk operation",
				"op", op,
				"kind", appliance.Kind(),
				"appliance", appliance.Name(),
				"error", err,
			)
			continue
		}
		completed++
	}

	completedAt := time.Now().UTC()
	exec.CompletedAt = &completedAt
	exec.AppliancesCompleted = completed
	exec.AppliancesFailed = len(failures)
	exec.AppliancesSkipped = skipped
	exec.Failures = failures
	duration := int(completedAt.Sub(started).Milliseconds())
	exec.DurationMS = &duration

	switch {
	case cancelled:
		exec.Status = StatusCancelled
	case len(failures) == 0:
		exec.Status = StatusCompleted
	case completed == 0:
		exec.Status = StatusFailed
	default:
		exec.Status = StatusPartial
	}

	// The closing journal write must survive caller cancellation; a
	// cancelled walk still gets its final status recorded.
	updateCtx, updateCancel := context.WithTimeout(context.WithoutCancel(ctx), finaliseTimeout)
	defer updateCancel()
	if updateErr := c.repo.UpdateExecution(updateCtx, exec); updateErr != nil {
		c.logger.Error("failed to update execution record", "error", updateErr)
	}

	c.logger.Info("bulk operation complete",
		"op", op,
		"execution_id", exec.ID,
		"status", exec.Status,
		"completed", completed,
		"failed", len(failures),
		"skipped", skipped,
		"duration_ms", duration,
	)

	// Announcements have already streamed through the appliance sinks;
	// the summary event always follows them.
	if c.hub != nil {
		c.hub.Broadcast("execution.finished", map[string]any{
			"execution_id": exec.ID,
			"op":           string(exec.Op),
			"status":       string(exec.Status),
			"total":        exec.AppliancesTotal,
			"completed":    exec.AppliancesCompleted,
			"failed":       exec.AppliancesFailed,
			"skipped":      exec.AppliancesSkipped,
			"duration_ms":  duration,
		})
	}

	if c.metrics != nil {
		c.metrics.WriteExecution(string(exec.Op), string(exec.Status), exec.AppliancesTotal, exec.AppliancesFailed, duration)
	}

	return exec, nil
}

// apply dispatches one operation to one appliance.
func apply(ctx context.Context, appliance device.Appliance, op Op) error {
	switch op {
	case OpActivate:
		return appliance.Activate(ctx)
	case OpDeactivate:
		return appliance.Deactivate(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}
