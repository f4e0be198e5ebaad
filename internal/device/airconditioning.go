package device

import (
	"context"

	"github.com/hearthd/hearth-core/internal/announce"
)

// The display name deliberately differs from the kind: announcements say
// "air condition", matching the wording panels have always shown.
const defaultAirConditioningName = "air condition"

// AirConditioning is an air conditioning unit.
type AirConditioning struct {
	name string
	sink announce.Sink
}

// NewAirConditioning creates an AirConditioning announcing through sink.
// An empty name selects the default display name.
func NewAirConditioning(name string, sink announce.Sink) *AirConditioning {
	if name == "" {
		name = defaultAirConditioningName
	}
	if sink == nil {
		sink = announce.Discard
	}
	return &AirConditioning{name: name, sink: sink}
}

// Kind implements Appliance.
func (a *AirConditioning) Kind() Kind { return KindAirConditioning }

// Name implements Appliance.
func (a *AirConditioning) Name() string { return a.name }

// Activate switches the air conditioning on.
func (a *AirConditioning) Activate(ctx context.Context) error {
	return emit(ctx, a.sink, KindAirConditioning, a.name, announce.StateOn)
}

// Deactivate switches the air conditioning off.
func (a *AirConditioning) Deactivate(ctx context.Context) error {
	return emit(ctx, a.sink, KindAirConditioning, a.name, announce.StateOff)
}
