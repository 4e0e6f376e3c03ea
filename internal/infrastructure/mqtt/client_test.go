package mqtt

import (
	"testing"
)

// Broker-dependent connection, publish, and subscribe tests live in
// integration_test.go behind the integration build tag. The tests here
// run without a broker.

func TestCloseNil(t *testing.T) {
	client := &Client{}
	err := client.Close()
	if err != nil {
		t.Errorf("Close() on nil client error = %v, want nil", err)
	}
}

func TestIsConnected_InitialState(t *testing.T) {
	client := &Client{}

	if client.IsConnected() {
		t.Error("IsConnected() should be false for uninitialised client")
	}
}

func TestTopicBuilders(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() string
		expected string
	}{
		{
			name: "TimerEvent",
			builder: func() string {
				return Topics{}.TimerEvent("timer_started")
			},
			expected: "voxtime/event/timer/timer_started",
		},
		{
			name: "CommandEvent",
			builder: func() string {
				return Topics{}.CommandEvent("set_timer")
			},
			expected: "voxtime/event/command/set_timer",
		},
		{
			name: "SatelliteAnnounce",
			builder: func() string {
				return Topics{}.SatelliteAnnounce("media_player.kitchen")
			},
			expected: "voxtime/satellite/media_player.kitchen/announce",
		},
		{
			name: "SatellitePresence",
			builder: func() string {
				return Topics{}.SatellitePresence("media_player.kitchen")
			},
			expected: "voxtime/satellite/media_player.kitchen/presence",
		},
		{
			name: "SystemStatus",
			builder: func() string {
				return Topics{}.SystemStatus()
			},
			expected: "voxtime/system/status",
		},
		{
			name: "SystemShutdown",
			builder: func() string {
				return Topics{}.SystemShutdown()
			},
			expected: "voxtime/system/shutdown",
		},
		{
			name: "AllTimerEvents",
			builder: func() string {
				return Topics{}.AllTimerEvents()
			},
			expected: "voxtime/event/timer/+",
		},
		{
			name: "AllCommandEvents",
			builder: func() string {
				return Topics{}.AllCommandEvents()
			},
			expected: "voxtime/event/command/+",
		},
		{
			name: "AllSatelliteAnnouncements",
			builder: func() string {
				return Topics{}.AllSatelliteAnnouncements()
			},
			expected: "voxtime/satellite/+/announce",
		},
		{
			name: "AllSatellitePresence",
			builder: func() string {
				return Topics{}.AllSatellitePresence()
			},
			expected: "voxtime/satellite/+/presence",
		},
		{
			name: "AllTopics",
			builder: func() string {
				return Topics{}.AllTopics()
			},
			expected: "voxtime/#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder()
			if result != tt.expected {
				t.Errorf("%s() = %q, want %q", tt.name, result, tt.expected)
			}
		})
	}
}
