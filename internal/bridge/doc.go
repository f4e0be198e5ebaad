// Package bridge connects the home coordinator to the MQTT bus.
//
// The coordinator itself has no transport dependencies; this package is the
// seam where its announcements, execution events, and inbound commands meet
// MQTT.
//
// # Architecture
//
//	┌─────────────────┐            ┌─────────────────┐
//	│      Home       │  in-proc   │   MQTT Bridge   │   MQTT
//	│   Coordinator   │◄──────────►│   (this pkg)    │◄────────► Broker
//	└─────────────────┘            └─────────────────┘
//
// # Key Responsibilities
//
//   - Publish appliance transitions retained to hearth/announce/{kind}
//   - Publish execution events to hearth/event/execution
//   - Subscribe to hearth/command/home and dispatch activate/deactivate
//     commands to the coordinator
//
// # Topics
//
// Topic names come from the shared mqtt.Topics builders, so the bridge,
// the broker ACLs, and external clients agree on the scheme.
//
// # Thread Safety
//
// All exported types are safe for concurrent use from multiple goroutines.
package bridge
