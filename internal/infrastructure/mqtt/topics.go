package mqtt

import "fmt"

// Topic prefixes for the Hearth MQTT scheme.
//
// All topics live under a single hearth/ root:
//
//	hearth/announce/{kind}   retained appliance announcements
//	hearth/event/{type}      execution and lifecycle events
//	hearth/command/{target}  inbound commands
//	hearth/status/{service}  service status with LWT
const (
	// TopicPrefix is the root of all Hearth topics.
	TopicPrefix = "hearth"

	// TopicPrefixAnnounce is the base for appliance announcements.
	TopicPrefixAnnounce = "hearth/announce"

	// TopicPrefixEvent is the base for event topics.
	TopicPrefixEvent = "hearth/event"

	// TopicPrefixCommand is the base for inbound command topics.
	TopicPrefixCommand = "hearth/command"

	// TopicPrefixStatus is the base for service status topics.
	TopicPrefixStatus = "hearth/status"
)

// Topics provides builders for Hearth MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
//
//	topics := mqtt.Topics{}
//	lightTopic := topics.Announce("light")
//	// Returns: "hearth/announce/light"
type Topics struct{}

// Announce returns the topic for one appliance kind's announcements.
// Announcements are published retained, so late subscribers see the
// last transition.
//
// Example: hearth/announce/light
func (Topics) Announce(kind string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixAnnounce, kind)
}

// ExecutionEvent returns the topic for finished-execution events.
//
// Example: hearth/event/execution
func (Topics) ExecutionEvent() string {
	return fmt.Sprintf("%s/execution", TopicPrefixEvent)
}

// HomeCommand returns the topic Hearth listens on for whole-home commands.
// Payloads carry {"op":"activate"} or {"op":"deactivate"}.
//
// Example: hearth/command/home
func (Topics) HomeCommand() string {
	return fmt.Sprintf("%s/home", TopicPrefixCommand)
}

// CoreStatus returns the core service status topic. The broker publishes
// the Last Will here if the core disappears without a graceful shutdown.
//
// Example: hearth/status/core
func (Topics) CoreStatus() string {
	return fmt.Sprintf("%s/core", TopicPrefixStatus)
}

// AllAnnouncements returns a pattern matching every appliance announcement.
//
// Pattern: hearth/announce/+
func (Topics) AllAnnouncements() string {
	return fmt.Sprintf("%s/+", TopicPrefixAnnounce)
}

// AllEvents returns a pattern matching every event topic.
//
// Pattern: hearth/event/+
func (Topics) AllEvents() string {
	return fmt.Sprintf("%s/+", TopicPrefixEvent)
}

// AllCommands returns a pattern matching every command topic.
//
// Pattern: hearth/command/+
func (Topics) AllCommands() string {
	return fmt.Sprintf("%s/+", TopicPrefixCommand)
}

// All returns a pattern matching every Hearth topic.
// Use with caution - this receives ALL traffic.
//
// Pattern: hearth/#
func (Topics) All() string {
	return TopicPrefix + "/#"
}
