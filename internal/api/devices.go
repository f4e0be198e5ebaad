package api

import (
	"net/http"
)

// applianceView is the wire shape for one roster entry.
type applianceView struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// handleListDevices returns the appliance roster in walk order.
func (s *Server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	appliances := s.home.Appliances()

	views := make([]applianceView, 0, len(appliances))
	for _, a := range appliances {
		views = append(views, applianceView{
			Kind: string(a.Kind()),
			Name: a.Name(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"devices": views,
		"count":   len(views),
	})
}

// handleDeviceStats returns roster counts grouped by kind.
func (s *Server) handleDeviceStats(w http.ResponseWriter, _ *http.Request) {
	appliances := s.home.Appliances()

	byKind := make(map[string]int)
	for _, a := range appliances {
		byKind[string(a.Kind())]++
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":   len(appliances),
		"by_kind": byKind,
	})
}
