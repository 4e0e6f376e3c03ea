package mqtt

import "fmt"

// Topic prefixes for the VoxTime MQTT hierarchy.
//
// Announcement traffic uses the flat scheme: voxtime/event/{stream}/{type}
// so satellites can subscribe per stream without wildcarding the whole tree.
const (
	// TopicPrefix is the base for all VoxTime topics.
	TopicPrefix = "voxtime"

	// TopicPrefixEvent is the base for timer lifecycle events.
	TopicPrefixEvent = "voxtime/event"

	// TopicPrefixSatellite is the base for per-satellite announcement topics.
	TopicPrefixSatellite = "voxtime/satellite"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "voxtime/system"
)

// Topics provides builders for VoxTime MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	t := topics.TimerEvent("timer_expired")
//	// Returns: "voxtime/event/timer/timer_expired"
type Topics struct{}

// =============================================================================
// Timer Event Topics
// =============================================================================

// TimerEvent returns the topic for a timer lifecycle event.
//
// Example: voxtime/event/timer/timer_started
func (Topics) TimerEvent(eventType string) string {
	return fmt.Sprintf("%s/timer/%s", TopicPrefixEvent, eventType)
}

// CommandEvent returns the topic for a sentence command event.
//
// Example: voxtime/event/command/set_timer
func (Topics) CommandEvent(commandType string) string {
	return fmt.Sprintf("%s/command/%s", TopicPrefixEvent, commandType)
}

// =============================================================================
// Satellite Topics
// =============================================================================

// SatelliteAnnounce returns the announcement topic for a satellite.
// Expiry and warning notifications for a timer are published here so the
// owning device can speak them.
//
// Example: voxtime/satellite/media_player.kitchen/announce
func (Topics) SatelliteAnnounce(entityID string) string {
	return fmt.Sprintf("%s/%s/announce", TopicPrefixSatellite, entityID)
}

// SatellitePresence returns the presence topic for a satellite.
//
// Example: voxtime/satellite/media_player.kitchen/presence
func (Topics) SatellitePresence(entityID string) string {
	return fmt.Sprintf("%s/%s/presence", TopicPrefixSatellite, entityID)
}

// =============================================================================
// System Topics
// =============================================================================

// SystemStatus returns the service status topic.
//
// Example: voxtime/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// SystemShutdown returns the shutdown signal topic.
//
// Example: voxtime/system/shutdown
func (Topics) SystemShutdown() string {
	return fmt.Sprintf("%s/shutdown", TopicPrefixSystem)
}

// =============================================================================
// Wildcard Patterns for Subscriptions
// =============================================================================

// AllTimerEvents returns a pattern matching every timer lifecycle event.
//
// Pattern: voxtime/event/timer/+
func (Topics) AllTimerEvents() string {
	return fmt.Sprintf("%s/timer/+", TopicPrefixEvent)
}

// AllCommandEvents returns a pattern matching every command event.
//
// Pattern: voxtime/event/command/+
func (Topics) AllCommandEvents() string {
	return fmt.Sprintf("%s/command/+", TopicPrefixEvent)
}

// AllSatelliteAnnouncements returns a pattern matching every announcement.
//
// Pattern: voxtime/satellite/+/announce
func (Topics) AllSatelliteAnnouncements() string {
	return fmt.Sprintf("%s/+/announce", TopicPrefixSatellite)
}

// AllSatellitePresence returns a pattern matching every presence update.
//
// Pattern: voxtime/satellite/+/presence
func (Topics) AllSatellitePresence() string {
	return fmt.Sprintf("%s/+/presence", TopicPrefixSatellite)
}

// AllTopics returns a pattern matching all VoxTime topics.
// Use with caution - this receives ALL traffic.
//
// Pattern: voxtime/#
func (Topics) AllTopics() string {
	return "voxtime/#"
}
