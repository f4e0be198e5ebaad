package device

import (
	"fmt"

	"github.com/hearthd/hearth-core/internal/announce"
)

// Spec declares one appliance to construct.
//
// Specs come from the devices section of config.yaml; the composition
// root converts config entries to Specs so this package stays free of
// config dependencies.
type Spec struct {
	Kind Kind
	Name string // optional display-name override
}

// DefaultSpecs returns the standard household roster in announcement
// order: air conditioning, light, TV.
func DefaultSpecs() []Spec {
	return []Spec{
		{Kind: KindAirConditioning},
		{Kind: KindLight},
		{Kind: KindTV},
	}
}

// New constructs a single appliance of the given kind.
//
// Adding a new appliance kind means adding its type file and one case
// here; existing appliances are untouched.
//
// Returns:
//   - Appliance: The constructed appliance
//   - error: ErrUnknownKind if the kind is not recognised
func New(kind Kind, name string, sink announce.Sink) (Appliance, error) {
	switch kind {
	case KindLight:
		return NewLight(name, sink), nil
	case KindTV:
		return NewTV(name, sink), nil
	case KindAirConditioning:
		return NewAirConditioning(name, sink), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// FromSpecs constructs the roster declared by specs, preserving order.
// Order matters: bulk operations walk the roster exactly as declared.
func FromSpecs(specs []Spec, sink announce.Sink) ([]Appliance, error) {
	appliances := make([]Appliance, 0, len(specs))
	for i, spec := range specs {
		appliance, err := New(spec.Kind, spec.Name, sink)
		if err != nil {
			return nil, fmt.Errorf("appliance %d: %w", i, err)
		}
		appliances = append(appliances, appliance)
	}
	return appliances, nil
}
