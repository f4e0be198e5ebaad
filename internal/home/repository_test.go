package home

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the executions schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}

	// Create the executions table (matches migration)
	schema := `
		CREATE TABLE executions (
			id TEXT PRIMARY KEY,
			op TEXT NOT NULL,
			triggered_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			started_at TEXT,
			completed_at TEXT,
			trigger_type TEXT NOT NULL DEFAULT 'manual',
			trigger_source TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			appliances_total INTEGER NOT NULL DEFAULT 0,
			appliances_completed INTEGER NOT NULL DEFAULT 0,
			appliances_failed INTEGER NOT NULL DEFAULT 0,
			appliances_skipped INTEGER NOT NULL DEFAULT 0,
			failures TEXT,
			duration_ms INTEGER
		) STRICT;`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("creating schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testExecution creates a pending execution with the given ID and op.
func testExecution(id string, op Op) *Execution {
	return &Execution{
		ID:          id,
		Op:          op,
		TriggeredAt: time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC),
		TriggerType: "manual",
		Status:      StatusPending,
	}
}

func TestSQLiteRepository_CreateExecution(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	t.Run("minimal record", func(t *testing.T) {
		exec := testExecution("exec-01", OpActivate)

		if err := repo.CreateExecution(ctx, exec); err != nil {
			t.Fatalf("CreateExecution: %v", err)
		}

		got, err := repo.GetExecution(ctx, "exec-01")
		if err != nil {
			t.Fatalf("GetExecution: %v", err)
		}
		if got.Op != OpActivate {
			t.Errorf("Op = %q, want %q", got.Op, OpActivate)
		}
		if got.Status != StatusPending {
			t.Errorf("Status = %q, want %q", got.Status, StatusPending)
		}
		if got.StartedAt != nil || got.CompletedAt != nil {
			t.Error("expected nil StartedAt/CompletedAt on pending record")
		}
		if got.TriggerSource != nil {
			t.Errorf("TriggerSource = %v, want nil", got.TriggerSource)
		}
		if got.Failures != nil {
			t.Errorf("Failures = %v, want nil", got.Failures)
		}
	})

	t.Run("full record roundtrip", func(t *testing.T) {
		exec := testExecution("exec-02", OpDeactivate)
		started := exec.TriggeredAt.Add(5 * time.Millisecond)
		completed := started.Add(20 * time.Millisecond)
		source := "api"
		duration := 20
		exec.StartedAt = &started
		exec.CompletedAt = &completed
		exec.TriggerSource = &source
		exec.Status = StatusPartial
		exec.AppliancesTotal = 3
		exec.AppliancesCompleted = 2
		exec.AppliancesFailed = 1
		exec.Failures = []ApplianceFailure{
			{Index: 1, Kind: "light", Appliance: "light", ErrorCode: "APPLIANCE_FAILED", ErrorMsg: "bulb blown"},
		}
		exec.DurationMS = &duration

		if err := repo.CreateExecution(ctx, exec); err != nil {
			t.Fatalf("CreateExecution: %v", err)
		}

		got, err := repo.GetExecution(ctx, "exec-02")
		if err != nil {
			t.Fatalf("GetExecution: %v", err)
		}
		if got.Status != StatusPartial {
			t.Errorf("Status = %q, want %q", got.Status, StatusPartial)
		}
		if got.StartedAt == nil || !got.StartedAt.Equal(started.Truncate(time.Second)) {
			t.Errorf("StartedAt = %v, want %v", got.StartedAt, started.Truncate(time.Second))
		}
		if got.TriggerSource == nil || *got.TriggerSource != "api" {
			t.Errorf("TriggerSource = %v, want api", got.TriggerSource)
		}
		if got.AppliancesTotal != 3 || got.AppliancesCompleted != 2 || got.AppliancesFailed != 1 {
			t.Errorf("counts = %d/%d/%d, want 3/2/1",
				got.AppliancesTotal, got.AppliancesCompleted, got.AppliancesFailed)
		}
		if len(got.Failures) != 1 {
			t.Fatalf("len(Failures) = %d, want 1", len(got.Failures))
		}
		if got.Failures[0].Appliance != "light" || got.Failures[0].ErrorMsg != "bulb blown" {
			t.Errorf("Failures[0] = %+v", got.Failures[0])
		}
		if got.DurationMS == nil || *got.DurationMS != 20 {
			t.Errorf("DurationMS = %v, want 20", got.DurationMS)
		}
	})
}

func TestSQLiteRepository_UpdateExecution(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	exec := testExecution("exec-01", OpActivate)
	if err := repo.CreateExecution(ctx, exec); err != nil {
		t.Fatalf("CreateExecution: %v", err)
	}

	t.Run("update success", func(t *testing.T) {
		completed := exec.TriggeredAt.Add(30 * time.Millisecond)
		duration := 30
		exec.Status = StatusCompleted
		exec.CompletedAt = &completed
		exec.AppliancesTotal = 3
		exec.AppliancesCompleted = 3
		exec.DurationMS = &duration

		if err := repo.UpdateExecution(ctx, exec); err != nil {
			t.Fatalf("UpdateExecution: %v", err)
		}

		got, err := repo.GetExecution(ctx, "exec-01")
		if err != nil {
			t.Fatalf("GetExecution: %v", err)
		}
		if got.Status != StatusCompleted {
			t.Errorf("Status = %q, want %q", got.Status, StatusCompleted)
		}
		if got.CompletedAt == nil {
			t.Error("CompletedAt not persisted")
		}
		if got.AppliancesCompleted != 3 {
			t.Errorf("AppliancesCompleted = %d, want 3", got.AppliancesCompleted)
		}
	})

	t.Run("not found", func(t *testing.T) {
		missing := testExecution("exec-missing", OpActivate)
		if err := repo.UpdateExecution(ctx, missing); !errors.Is(err, ErrExecutionNotFound) {
			t.Errorf("expected ErrExecutionNotFound, got: %v", err)
		}
	})
}

func TestSQLiteRepository_GetExecution_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	if _, err := repo.GetExecution(context.Background(), "nope"); !errors.Is(err, ErrExecutionNotFound) {
		t.Errorf("expected ErrExecutionNotFound, got: %v", err)
	}
}

func TestSQLiteRepository_ListExecutions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	// Seed five executions a minute apart, alternating op and status.
	base := time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		exec := testExecution(fmt.Sprintf("exec-%02d", i), OpActivate)
		exec.TriggeredAt = base.Add(time.Duration(i) * time.Minute)
		exec.Status = StatusCompleted
		if i%2 == 1 {
			exec.Op = OpDeactivate
			exec.Status = StatusPartial
		}
		if err := repo.CreateExecution(ctx, exec); err != nil {
			t.Fatalf("seeding execution %d: %v", i, err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		got, err := repo.ListExecutions(ctx, ExecutionFilter{})
		if err != nil {
			t.Fatalf("ListExecutions: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("len = %d, want 5", len(got))
		}
		if got[0].ID != "exec-04" || got[4].ID != "exec-00" {
			t.Errorf("order = %s..%s, want exec-04..exec-00", got[0].ID, got[4].ID)
		}
	})

	t.Run("filter by op", func(t *testing.T) {
		got, err := repo.ListExecutions(ctx, ExecutionFilter{Op: OpDeactivate})
		if err != nil {
			t.Fatalf("ListExecutions: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		for _, e := range got {
			if e.Op != OpDeactivate {
				t.Errorf("Op = %q, want %q", e.Op, OpDeactivate)
			}
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		got, err := repo.ListExecutions(ctx, ExecutionFilter{Status: StatusPartial})
		if err != nil {
			t.Fatalf("ListExecutions: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
	})

	t.Run("limit applied", func(t *testing.T) {
		got, err := repo.ListExecutions(ctx, ExecutionFilter{Limit: 2})
		if err != nil {
			t.Fatalf("ListExecutions: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].ID != "exec-04" {
			t.Errorf("got[0].ID = %s, want exec-04", got[0].ID)
		}
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		got, err := repo.ListExecutions(ctx, ExecutionFilter{Limit: 10000})
		if err != nil {
			t.Fatalf("ListExecutions: %v", err)
		}
		if len(got) != 5 {
			t.Fatalf("len = %d, want 5", len(got))
		}
	})
}

func TestSQLiteRepository_CountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	statuses := []ExecutionStatus{StatusCompleted, StatusCompleted, StatusPartial, StatusFailed}
	for i, status := range statuses {
		exec := testExecution(fmt.Sprintf("exec-%02d", i), OpActivate)
		exec.Status = status
		if err := repo.CreateExecution(ctx, exec); err != nil {
			t.Fatalf("seeding execution %d: %v", i, err)
		}
	}

	counts, err := repo.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if counts[StatusCompleted] != 2 {
		t.Errorf("completed = %d, want 2", counts[StatusCompleted])
	}
	if counts[StatusPartial] != 1 {
		t.Errorf("partial = %d, want 1", counts[StatusPartial])
	}
	if counts[StatusFailed] != 1 {
		t.Errorf("failed = %d, want 1", counts[StatusFailed])
	}
	if counts[StatusCancelled] != 0 {
		t.Errorf("cancelled = %d, want 0", counts[StatusCancelled])
	}
}
