package home

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository defines the interface for execution journal persistence.
// This abstraction allows different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	CreateExecution(ctx context.Context, exec *Execution) error
	UpdateExecution(ctx context.Context, exec *Execution) error
	GetExecution(ctx context.Context, id string) (*Execution, error)
	ListExecutions(ctx context.Context, filter ExecutionFilter) ([]Execution, error)
	CountByStatus(ctx context.Context) (map[ExecutionStatus]int, error)
}

// ExecutionFilter narrows ListExecutions results.
// Zero values mean "no filter"; Limit is clamped to [1, 100] with a
// default of 20.
type ExecutionFilter struct {
	Op     Op
	Status ExecutionStatus
	Limit  int
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// executionColumns is the SELECT column list for execution queries.
const executionColumns = `id, op, triggered_at, started_at, completed_at,
			trigger_type, trigger_source, status,
			appliances_total, appliances_completed, appliances_failed, appliances_skipped,
			failures, duration_ms`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateExecution inserts a new execution record.
func (r *SQLiteRepository) CreateExecution(ctx context.Context, exec *Execution) error {
	failuresJSON, err := marshalFailures(exec.Failures)
	if err != nil {
		return fmt.Errorf("marshalling failures: %w", err)
	}

	query := `
		INSERT INTO executions (
			id, op, triggered_at, started_at, completed_at,
			trigger_type, trigger_source, status,
			appliances_total, appliances_completed, appliances_failed, appliances_skipped,
			failures, duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		exec.ID,
		string(exec.Op),
		exec.TriggeredAt.Format(time.RFC3339),
		nullableTime(exec.StartedAt),
		nullableTime(exec.CompletedAt),
		exec.TriggerType,
		nullableString(exec.TriggerSource),
		string(exec.Status),
		exec.AppliancesTotal,
		exec.AppliancesCompleted,
		exec.AppliancesFailed,
		exec.AppliancesSkipped,
		failuresJSON,
		nullableInt(exec.DurationMS),
	)
	if err != nil {
		return fmt.Errorf("inserting execution: %w", err)
	}
	return nil
}

// UpdateExecution updates an existing execution record.
func (r *SQLiteRepository) UpdateExecution(ctx context.Context, exec *Execution) error {
	failuresJSON, err := marshalFailures(exec.Failures)
	if err != nil {
		return fmt.Errorf("marshalling failures: %w", err)
	}

	query := `
		UPDATE executions SET
			started_at = ?, completed_at = ?, status = ?,
			appliances_total = ?, appliances_completed = ?, appliances_failed = ?, appliances_skipped = ?,
			failures = ?, duration_ms = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		nullableTime(exec.StartedAt),
		nullableTime(exec.CompletedAt),
		string(exec.Status),
		exec.AppliancesTotal,
		exec.AppliancesCompleted,
		exec.AppliancesFailed,
		exec.AppliancesSkipped,
		failuresJSON,
		nullableInt(exec.DurationMS),
		exec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating execution: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExecutionNotFound
	}
	return nil
}

// GetExecution retrieves an execution by ID.
func (r *SQLiteRepository) GetExecution(ctx context.Context, id string) (*Execution, error) {
	query := `SELECT ` + executionColumns + ` FROM executions WHERE id = ?`

	row := r.db.QueryRowContext(ctx, query, id)
	exec, err := scanExecutionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExecutionNotFound
		}
		return nil, fmt.Errorf("querying execution: %w", err)
	}
	return exec, nil
}

// ListExecutions retrieves recent executions, newest first.
func (r *SQLiteRepository) ListExecutions(ctx context.Context, filter ExecutionFilter) ([]Execution, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `SELECT ` + executionColumns + ` FROM executions`
	var clauses []string
	var args []any
	if filter.Op != "" {
		clauses = append(clauses, "op = ?")
		args = append(args, string(filter.Op))
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, string(filter.Status))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY triggered_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying executions: %w", err)
	}
	defer rows.Close()

	var executions []Execution
	for rows.Next() {
		exec, scanErr := scanExecutionRow(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scanning execution: %w", scanErr)
		}
		executions = append(executions, *exec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating executions: %w", err)
	}
	return executions, nil
}

// CountByStatus returns execution counts grouped by status.
func (r *SQLiteRepository) CountByStatus(ctx context.Context) (map[ExecutionStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM executions GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("querying execution counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[ExecutionStatus]int)
	for rows.Next() {
		var status string
		var count int
		if scanErr := rows.Scan(&status, &count); scanErr != nil {
			return nil, fmt.Errorf("scanning execution count: %w", scanErr)
		}
		counts[ExecutionStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating execution counts: %w", err)
	}
	return counts, nil
}

// ─── Row Scanning Helpers ───────────────────────────────────────────────────

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanExecutionRow(scanner rowScanner) (*Execution, error) {
	var e Execution
	var op, triggeredAt, status string
	var startedAt, completedAt, triggerSource, failuresJSON sql.NullString
	var durationMS sql.NullInt64

	err := scanner.Scan(
		&e.ID,
		&op,
		&triggeredAt,
		&startedAt,
		&completedAt,
		&e.TriggerType,
		&triggerSource,
		&status,
		&e.AppliancesTotal,
		&e.AppliancesCompleted,
		&e.AppliancesFailed,
		&e.AppliancesSkipped,
		&failuresJSON,
		&durationMS,
	)
	if err != nil {
		return nil, err
	}

	e.Op = Op(op)
	e.Status = ExecutionStatus(status)
	if t, parseErr := time.Parse(time.RFC3339, triggeredAt); parseErr == nil {
		e.TriggeredAt = t
	}

	if startedAt.Valid {
		if t, parseErr := time.Parse(time.RFC3339, startedAt.String); parseErr == nil {
			e.StartedAt = &t
		}
	}
	if completedAt.Valid {
		if t, parseErr := time.Parse(time.RFC3339, completedAt.String); parseErr == nil {
			e.CompletedAt = &t
		}
	}
	if triggerSource.Valid {
		e.TriggerSource = &triggerSource.String
	}
	if durationMS.Valid {
		d := int(durationMS.Int64)
		e.DurationMS = &d
	}

	// Unmarshal failures JSON
	if failuresJSON.Valid && failuresJSON.String != "" && failuresJSON.String != "null" {
		if jsonErr := json.Unmarshal([]byte(failuresJSON.String), &e.Failures); jsonErr != nil {
			return nil, fmt.Errorf("unmarshalling failures: %w", jsonErr)
		}
	}

	return &e, nil
}

// ─── SQL Helpers ────────────────────────────────────────────────────────────

func nullableString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}

func nullableInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func marshalFailures(failures []ApplianceFailure) (sql.NullString, error) {
	if len(failures) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(failures)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}
