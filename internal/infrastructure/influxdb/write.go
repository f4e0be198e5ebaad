package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteTransition records a single appliance transition.
//
// Every announcement an appliance emits lands here as one point, so
// dashboards can chart switch activity per kind over time. The write is
// non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - kind: Appliance kind (e.g., "light", "tv", "air_conditioning")
//   - state: The reported state ("on" or "off")
//
// Example:
//
//	client.WriteTransition("light", "on")
func (c *Client) WriteTransition(kind string, state string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"appliance_transitions",
		map[string]string{
			"kind":  kind,
			"state": state,
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteExecution records one finished bulk operation.
//
// Satisfies the coordinator's Metrics interface, so every activate-all
// and deactivate-all run shows up as a point tagged by operation and
// outcome.
//
// Parameters:
//   - op: The operation ("activate", "deactivate")
//   - status: Terminal status ("completed", "partial", "failed", "cancelled")
//   - total: Number of appliances on the roster
//   - failed: Number of appliances that failed during the walk
//   - durationMS: Wall-clock duration of the walk in milliseconds
func (c *Client) WriteExecution(op, status string, total, failed, durationMS int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"executions",
		map[string]string{
			"op":     op,
			"status": status,
		},
		map[string]interface{}{
			"appliances_total":  total,
			"appliances_failed": failed,
			"duration_ms":       durationMS,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "core-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
