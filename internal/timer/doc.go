// Package timer manages the lifecycle of voice-created timers, alarms,
// reminders and command triggers.
//
// # Architecture
//
//	            ┌─────────────┐
//	 API/MQTT → │    Store    │ → EventPublisher (MQTT events)
//	            │  (in-memory │ → Broadcaster    (WebSocket pushes)
//	            │   state)    │ → Telemetry      (InfluxDB, optional)
//	            └──────┬──────┘
//	                   │ write-through
//	            ┌──────▼──────┐
//	            │ Repository  │ (SQLite)
//	            └─────────────┘
//
// The in-memory map is authoritative while the daemon runs. Every mutation
// is written through to the Repository before listeners are notified;
// persistence failures are logged and do not fail the mutation. On startup
// Load replays the persisted rows: already-expired timers are purged,
// everything else is re-armed without re-announcing it.
//
// Expiry is driven by one goroutine per running timer. Each goroutine
// captures the timer's update generation when armed; any later mutation
// bumps the generation, so a stale goroutine waking after a snooze or
// cancel finds the mismatch and exits without firing.
package timer
