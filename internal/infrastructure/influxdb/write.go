package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// RecordTimerEvent writes a timer lifecycle event to InfluxDB.
//
// This is the primary method for recording timer telemetry. The write is
// non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - eventType: The lifecycle event (e.g., "started", "expired", "snoozed")
//   - class: The timer class ("timer", "alarm", "reminder", "command")
//   - remainingSeconds: Seconds until expiry at the time of the event
//
// Example:
//
//	client.RecordTimerEvent("started", "timer", 300)
//	client.RecordTimerEvent("expired", "alarm", 0)
func (c *Client) RecordTimerEvent(eventType string, class string, remainingSeconds float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"timer_events",
		map[string]string{
			"event": eventType,
			"class": class,
		},
		map[string]interface{}{
			"remaining_seconds": remainingSeconds,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// RecordDecode writes a sentence decode outcome.
//
// Used for tracking how well spoken sentences resolve into timers,
// split by language and result kind.
//
// Parameters:
//   - language: Lexicon code used for the decode (e.g., "en", "de")
//   - kind: Decoded value kind ("interval", "absolute_time") or "failed"
//   - durationMs: Wall-clock decode time in milliseconds
func (c *Client) RecordDecode(language string, kind string, durationMs float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"decode",
		map[string]string{
			"language": language,
			"kind":     kind,
		},
		map[string]interface{}{
			"duration_ms": durationMs,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for custom measurements that don't fit the helper methods.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("system_stats",
//	    map[string]string{"host": "core-01"},
//	    map[string]interface{}{"cpu_percent": 45.2, "memory_mb": 512})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
