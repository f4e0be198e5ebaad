// Package broker runs an embedded MQTT broker inside the Hearth process.
//
// Small installations should not need to operate a separate Mosquitto just
// to see announcements or send commands. When mqtt.embedded.enabled is set,
// Hearth starts a mochi-mqtt server on the configured broker port and then
// connects to it with the same client it would use for an external broker,
// so the rest of the system cannot tell the difference.
//
// With mqtt.auth credentials configured the broker admits only that account
// (plus loopback connections); otherwise it is open like a default
// Mosquitto listener.
package broker
