// Package announce defines the output channel for appliance transitions.
//
// Appliances never print directly; they hand a Message to an injected
// Sink. Which sinks are wired decides where announcements surface:
// stdout for the demo walkthrough, the WebSocket hub and MQTT for the
// running service, a buffer in tests. Fanout composes several sinks
// behind the single Sink interface the appliances see.
package announce
