package device

import (
	"context"

	"github.com/hearthd/hearth-core/internal/announce"
)

// defaultLightName is the display name used when config does not
// override it.
const defaultLightName = "light"

// Light is a switchable lamp.
type Light struct {
	name string
	sink announce.Sink
}

// NewLight creates a Light announcing through sink.
// An empty name selects the default display name.
func NewLight(name string, sink announce.Sink) *Light {
	if name == "" {
		name = defaultLightName
	}
	if sink == nil {
		sink = announce.Discard
	}
	return &Light{name: name, sink: sink}
}

// Kind implements Appliance.
func (l *Light) Kind() Kind { return KindLight }

// Name implements Appliance.
func (l *Light) Name() string { return l.name }

// Activate switches the light on.
func (l *Light) Activate(ctx context.Context) error {
	return emit(ctx, l.sink, KindLight, l.name, announce.StateOn)
}

// Deactivate switches the light off.
func (l *Light) Deactivate(ctx context.Context) error {
	return emit(ctx, l.sink, KindLight, l.name, announce.StateOff)
}
