// Package mqtt provides MQTT client connectivity for VoxTime Core.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// VoxTime uses MQTT as the event bus connecting the Core to voice
// satellites and home-automation consumers. Every timer lifecycle
// transition is published as an event; satellites subscribe to their
// own announcement topic to speak warnings and expiries.
//
//	VoxTime Core ↔ MQTT Broker ↔ Voice Satellites / Automations
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to all timer lifecycle events
//	err = client.Subscribe(mqtt.Topics{}.AllTimerEvents(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish an event
//	topic := mqtt.Topics{}.TimerEvent("timer_expired")
//	client.Publish(topic, payload, 1, false)
package mqtt
