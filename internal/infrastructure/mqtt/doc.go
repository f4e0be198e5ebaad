// Package mqtt provides MQTT client connectivity for the Hearth core.
//
// This package manages:
//   - Connection to the broker (external or embedded) with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Hearth publishes appliance announcements and execution events onto MQTT
// so dashboards and external automations can observe the home, and listens
// for whole-home commands on its command topic:
//
//	hearth/announce/{kind}  retained announcements per appliance kind
//	hearth/event/execution  finished-execution events
//	hearth/command/home     inbound activate/deactivate commands
//	hearth/status/core      core online/offline status (LWT)
//
// The broker may be an external Mosquitto or the embedded one from the
// broker package; the client is identical either way.
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Listen for whole-home commands
//	err = client.Subscribe(mqtt.Topics{}.HomeCommand(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish an announcement
//	topic := mqtt.Topics{}.Announce("light")
//	client.Publish(topic, []byte(`{"state":"on"}`), 1, true)
package mqtt
