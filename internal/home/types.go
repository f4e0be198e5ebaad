package home

import (
	"time"

	"github.com/google/uuid"
)

// Op identifies a bulk coordinator operation.
type Op string

const (
	// OpActivate switches every appliance on the roster on.
	OpActivate Op = "activate"

	// OpDeactivate switches every appliance on the roster off.
	OpDeactivate Op = "deactivate"
)

// ParseOp converts a wire string ("activate", "deactivate") to an Op.
//
// Returns:
//   - Op: The parsed operation
//   - error: ErrUnknownOp if the string is not a known operation
func ParseOp(s string) (Op, error) {
	switch Op(s) {
	case OpActivate:
		return OpActivate, nil
	case OpDeactivate:
		return OpDeactivate, nil
	default:
		return "", ErrUnknownOp
	}
}

// ExecutionStatus represents the state of a bulk operation execution.
type ExecutionStatus string

const (
	StatusPending   ExecutionStatus = "pending"
	StatusRunning   ExecutionStatus = "running"
	StatusCompleted ExecutionStatus = "completed"
	StatusPartial   ExecutionStatus = "partial"   // Some appliances failed, walk continued
	StatusFailed    ExecutionStatus = "failed"    // Every appliance failed
	StatusCancelled ExecutionStatus = "cancelled" // Context cancelled mid-walk
)

// Valid reports whether the status is one the journal can store.
func (s ExecutionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusRunning, StatusCompleted, StatusPartial, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Execution records one bulk operation walk across the appliance roster.
//
// The walk visits appliances in roster order and continues past
// individual failures; the counts and Failures list are the summary a
// caller reads to see exactly which appliances responded.
type Execution struct {
	ID          string     `json:"id"`
	Op          Op         `json:"op"`
	TriggeredAt time.Time  `json:"triggered_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// TriggerType is how the operation was requested: manual, schedule,
	// or command (MQTT).
	TriggerType string `json:"trigger_type"`

	// TriggerSource is where the trigger originated (api, wall panel,
	// cron spec, MQTT topic). Optional.
	TriggerSource *string `json:"trigger_source,omitempty"`

	Status ExecutionStatus `json:"status"`

	// Appliance counts
	AppliancesTotal     int `json:"appliances_total"`
	AppliancesCompleted int `json:"appliances_completed"`
	AppliancesFailed    int `json:"appliances_failed"`
	AppliancesSkipped   int `json:"appliances_skipped"`

	// Failure details (populated when appliances fail)
	Failures []ApplianceFailure `json:"failures,omitempty"`

	// Total walk duration in milliseconds
	DurationMS *int `json:"duration_ms,omitempty"`
}

// ApplianceFailure records one appliance that failed during a walk.
type ApplianceFailure struct {
	Index     int    `json:"index"` // roster position, 0-based
	Kind      string `json:"kind"`
	Appliance string `json:"appliance"` // display name
	ErrorCode string `json:"error_code"`
	ErrorMsg  string `json:"error_message"`
}

// GenerateID creates a new UUID for an execution.
func GenerateID() string {
	return uuid.New().String()
}
