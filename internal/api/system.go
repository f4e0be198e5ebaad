package api

import (
	"net/http"
	"runtime"
	"time"
)

// SystemStatus represents the complete system status response.
type SystemStatus struct {
	Timestamp     string           `json:"timestamp"`
	Version       string           `json:"version"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Runtime       RuntimeMetrics   `json:"runtime"`
	WebSocket     WSMetrics        `json:"websocket"`
	MQTT          MQTTMetrics      `json:"mqtt"`
	Appliances    ApplianceMetrics `json:"appliances"`
	Schedule      *ScheduleMetrics `json:"schedule,omitempty"`
}

// RuntimeMetrics contains Go runtime statistics.
type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

// WSMetrics contains WebSocket hub statistics.
type WSMetrics struct {
	ConnectedClients int `json:"connected_clients"`
}

// MQTTMetrics contains MQTT client statistics.
type MQTTMetrics struct {
	Connected bool `json:"connected"`
}

// ApplianceMetrics contains roster statistics.
type ApplianceMetrics struct {
	Total  int            `json:"total"`
	ByKind map[string]int `json:"by_kind"`
}

// ScheduleMetrics contains scheduler statistics.
type ScheduleMetrics struct {
	Entries int    `json:"entries"`
	NextRun string `json:"next_run,omitempty"`
}

// handleSystem returns system status and runtime statistics.
func (s *Server) handleSystem(w http.ResponseWriter, _ *http.Request) {
	// Collect runtime stats
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	appliances := s.home.Appliances()
	byKind := make(map[string]int)
	for _, a := range appliances {
		byKind[string(a.Kind())]++
	}

	status := SystemStatus{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Runtime: RuntimeMetrics{
			Goroutines:    runtime.NumGoroutine(),
			MemoryAllocMB: float64(memStats.Alloc) / 1024 / 1024,
			MemoryTotalMB: float64(memStats.TotalAlloc) / 1024 / 1024,
			NumGC:         memStats.NumGC,
		},
		WebSocket: WSMetrics{
			ConnectedClients: s.hub.ClientCount(),
		},
		Appliances: ApplianceMetrics{
			Total:  len(appliances),
			ByKind: byKind,
		},
	}

	// MQTT status (if wired)
	if s.mqtt != nil {
		status.MQTT = MQTTMetrics{
			Connected: s.mqtt.IsConnected(),
		}
	}

	// Scheduler status (if wired)
	if s.schedule != nil {
		sched := &ScheduleMetrics{
			Entries: s.schedule.Entries(),
		}
		if next, ok := s.schedule.NextRun(); ok {
			sched.NextRun = next.UTC().Format(time.RFC3339)
		}
		status.Schedule = sched
	}

	writeJSON(w, http.StatusOK, status)
}
