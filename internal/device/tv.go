package device

import (
	"context"

	"github.com/hearthd/hearth-core/internal/announce"
)

const defaultTVName = "TV"

// TV is a television set.
type TV struct {
	name string
	sink announce.Sink
}

// NewTV creates a TV announcing through sink.
// An empty name selects the default display name.
func NewTV(name string, sink announce.Sink) *TV {
	if name == "" {
		name = defaultTVName
	}
	if sink == nil {
		sink = announce.Discard
	}
	return &TV{name: name, sink: sink}
}

// Kind implements Appliance.
func (t *TV) Kind() Kind { return KindTV }

// Name implements Appliance.
func (t *TV) Name() string { return t.name }

// Activate switches the TV on.
func (t *TV) Activate(ctx context.Context) error {
	return emit(ctx, t.sink, KindTV, t.name, announce.StateOn)
}

// Deactivate switches the TV off.
func (t *TV) Deactivate(ctx context.Context) error {
	return emit(ctx, t.sink, KindTV, t.name, announce.StateOff)
}
