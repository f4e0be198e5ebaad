package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hearthd/hearth-core/internal/home"
	"github.com/hearthd/hearth-core/internal/infrastructure/config"
)

// stopTimeout bounds how long Stop waits for an in-flight run to finish.
const stopTimeout = 5 * time.Second

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

// Scheduler fires configured bulk operations on cron expressions.
//
// Each schedules entry in config.yaml becomes one cron job that runs
// the coordinator with trigger type "schedule" and the cron expression
// as the trigger source, so journal rows show which schedule fired.
//
// Thread Safety: All methods are safe for concurrent use.
type Scheduler struct {
	cron    *cron.Cron
	home    HomeRunner
	entries []config.ScheduleConfig
	logger  Logger

	// runCtx bounds every scheduled execution. Set by Start; jobs fire
	// from the cron goroutine long after Start returns.
	runCtx context.Context
	ctxMu  sync.RWMutex

	stopOnce sync.Once
}

// New creates a Scheduler for the given schedule entries.
//
// Parameters:
//   - entries: schedule declarations from config.yaml
//   - home: the coordinator scheduled operations are dispatched to
//   - logger: optional logger (nil for silent operation)
func New(entries []config.ScheduleConfig, home HomeRunner, logger Logger) *Scheduler {
	if logger == nil {
		logger = noopLogger{}
	}
	cl := cronLogger{logger}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
		home:    home,
		entries: entries,
		logger:  logger,
	}
}

// Start registers every entry and starts the cron loop. The given
// context bounds each scheduled execution; cancel it to stop new runs
// from doing work before Stop.
//
// Returns an error naming the first entry whose cron expression or
// operation does not parse.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctxMu.Lock()
	s.runCtx = ctx
	s.ctxMu.Unlock()

	for i, entry := range s.entries {
		op, err := home.ParseOp(entry.Op)
		if err != nil {
			return fmt.Errorf("schedule: entry %d: %w", i, err)
		}
		spec := entry.Cron
		if _, err := s.cron.AddFunc(spec, func() { s.fire(op, spec) }); err != nil {
			return fmt.Errorf("schedule: entry %d (%q): %w", i, spec, err)
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "entries", len(s.entries))
	return nil
}

// fire runs one scheduled operation on the coordinator.
func (s *Scheduler) fire(op home.Op, spec string) {
	s.ctxMu.RLock()
	ctx := s.runCtx
	s.ctxMu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		// Shutting down; leave the remaining ticks unfired.
		return
	}

	exec, err := s.home.Run(ctx, op, "schedule", spec)
	if err != nil {
		s.logger.Error("scheduled run failed", "op", string(op), "cron", spec, "error", err)
		return
	}

	s.logger.Info("scheduled run finished",
		"op", string(op),
		"cron", spec,
		"execution_id", exec.ID,
		"status", string(exec.Status),
	)
}

// Stop halts the cron loop and waits for any in-flight run, bounded by
// stopTimeout. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		done := s.cron.Stop().Done()
		select {
		case <-done:
		case <-time.After(stopTimeout):
			s.logger.Warn("scheduler stop timed out with a run still in flight")
		}
	})
}

// Entries returns the number of registered schedule jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// NextRun returns the soonest upcoming fire time across all jobs.
// The bool is false when no jobs are registered or the loop is stopped.
func (s *Scheduler) NextRun() (time.Time, bool) {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if e.Next.IsZero() {
			continue
		}
		if next.IsZero() || e.Next.Before(next) {
			next = e.Next
		}
	}
	return next, !next.IsZero()
}

// cronLogger adapts the package Logger to cron's logging interface.
// Per-tick chatter arrives at Info level and is dropped; job panics and
// scheduling errors are forwarded.
type cronLogger struct {
	l Logger
}

func (cronLogger) Info(string, ...interface{}) {}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
