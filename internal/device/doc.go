// Package device provides the appliance contract and the stub appliances
// Hearth ships with.
//
// Every controllable appliance implements the Appliance interface: a
// stable Kind, a display Name, and Activate/Deactivate operations that
// confirm each transition by announcing it through an injected
// announce.Sink. The stubs in this package (Light, TV, AirConditioning)
// hold no state and talk to no hardware; the announcement is their
// entire observable effect.
//
// Construction goes through the factory: New builds one appliance by
// Kind, FromSpecs builds an ordered roster from declarative Specs. A new
// appliance kind is added by writing its type file and one factory case;
// nothing else in the system changes.
package device
