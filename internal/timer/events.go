package timer

import "time"

// EventType names a timer lifecycle event.
type EventType string

// Lifecycle events published over MQTT and the WebSocket hub.
const (
	EventStarted   EventType = "started"
	EventWarning   EventType = "warning"
	EventExpired   EventType = "expired"
	EventSnoozed   EventType = "snoozed"
	EventCancelled EventType = "cancelled"
)

// Event is the payload published for every lifecycle transition. Command
// timers publish under the command topic family, all other classes under
// the timer family; the payload shape is identical.
type Event struct {
	Type      EventType      `json:"event"`
	TimerID   string         `json:"timer_id"`
	EntityID  string         `json:"entity_id"`
	Class     Class          `json:"timer_class"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	ExtraInfo map[string]any `json:"extra_info,omitempty"`
}

// newEvent snapshots a timer into an event payload.
func newEvent(typ EventType, t *Timer) Event {
	return Event{
		Type:      typ,
		TimerID:   t.ID,
		EntityID:  t.EntityID,
		Class:     t.Class,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		ExpiresAt: t.ExpiresAt,
		ExtraInfo: deepCopyMap(t.ExtraInfo),
	}
}

// EventPublisher delivers timer events to the outside world, typically the
// MQTT broker.
type EventPublisher interface {
	PublishTimerEvent(ev Event) error
}

// Broadcaster pushes live state updates to connected clients, typically
// the WebSocket hub.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// Telemetry records timer activity metrics. Implementations must be cheap;
// the store calls this on the event path.
type Telemetry interface {
	RecordTimerEvent(eventType string, class string, remainingSeconds float64)
}

// BroadcastChannel is the hub channel carrying timer list snapshots.
const BroadcastChannel = "timers"
