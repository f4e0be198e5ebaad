package device

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthd/hearth-core/internal/announce"
)

// Kind identifies an appliance implementation.
type Kind string

// Appliance kinds.
const (
	KindLight           Kind = "light"
	KindTV              Kind = "tv"
	KindAirConditioning Kind = "air_conditioning"
)

// AllKinds returns every kind the factory can construct, in no
// particular order.
func AllKinds() []Kind {
	return []Kind{KindLight, KindTV, KindAirConditioning}
}

// Valid reports whether the kind is one the factory can construct.
func (k Kind) Valid() bool {
	switch k {
	case KindLight, KindTV, KindAirConditioning:
		return true
	}
	return false
}

// Appliance is the uniform control contract every household appliance
// implements. The coordinator, the API layer and the MQTT command bridge
// depend only on this interface, never on a concrete appliance type.
//
// Activate and Deactivate confirm the transition by announcing it through
// the appliance's sink. Implementations in this package are stateless
// stubs: the announcement is the entire observable effect.
type Appliance interface {
	// Kind returns the stable machine identity of the appliance.
	Kind() Kind

	// Name returns the human display name used in announcements.
	Name() string

	// Activate switches the appliance on.
	Activate(ctx context.Context) error

	// Deactivate switches the appliance off.
	Deactivate(ctx context.Context) error
}

// Sentence renders the announcement wording for a transition.
//
// The wording is part of Hearth's public behaviour: wall panels, event
// streams and the demo transcript all show it verbatim.
func Sentence(name string, state announce.State) string {
	return fmt.Sprintf("The %s is now turned %s!", name, state)
}

// emit delivers one transition announcement through the sink.
//
// A cancelled context is checked first: for stub appliances the
// announcement is the whole effect, so a cancelled transition must not
// reach the sink at all.
func emit(ctx context.Context, sink announce.Sink, kind Kind, name string, state announce.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return sink.Announce(ctx, announce.Message{
		Appliance: name,
		Kind:      string(kind),
		State:     state,
		Text:      Sentence(name, state),
		At:        time.Now().UTC(),
	})
}
