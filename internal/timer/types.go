package timer

import (
	"time"

	"github.com/voxtime/voxtime-core/internal/lang"
	"github.com/voxtime/voxtime-core/internal/timespeech"
)

// Class is the timer category. It decides the spoken confirmation and the
// event topic family; command timers fire automation events instead of
// user-facing announcements.
type Class string

// Timer classes.
const (
	ClassAlarm    Class = "alarm"
	ClassReminder Class = "reminder"
	ClassTimer    Class = "timer"
	ClassCommand  Class = "command"
)

// Classes lists every valid timer class.
func Classes() []Class {
	return []Class{ClassAlarm, ClassReminder, ClassTimer, ClassCommand}
}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	switch c {
	case ClassAlarm, ClassReminder, ClassTimer, ClassCommand:
		return true
	}
	return false
}

// Status is the lifecycle state of a timer.
type Status string

// Timer statuses. Valid transitions: inactive -> running -> expired ->
// snoozed -> running. Cancellation removes the timer from any state.
const (
	StatusInactive Status = "inactive"
	StatusRunning  Status = "running"
	StatusExpired  Status = "expired"
	StatusSnoozed  Status = "snoozed"
)

// Timer is one scheduled expiry. EntityID names the satellite (or other
// entity) the timer belongs to and is the target for its announcements.
type Timer struct {
	ID       string `json:"id"`
	Class    Class  `json:"class"`
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`

	// ExpiresAt is the current target; OriginalExpiresAt survives snoozes.
	ExpiresAt         time.Time `json:"expires_at"`
	OriginalExpiresAt time.Time `json:"original_expires_at"`

	// PreExpireWarning is the head start, in seconds, for the warning
	// event before expiry. Zero disables the warning.
	PreExpireWarning int `json:"pre_expire_warning"`

	Status   Status    `json:"status"`
	Language lang.Code `json:"language"`

	// Use24Hour renders this timer's spoken expiry on a 24-hour clock.
	// Resolved from the owning satellite's preference at creation.
	Use24Hour bool `json:"use_24_hour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ExtraInfo carries caller-supplied payload data returned verbatim in
	// events, plus the decoded sentence details.
	ExtraInfo map[string]any `json:"extra_info,omitempty"`
}

// DeepCopy returns an independent copy of the timer.
func (t *Timer) DeepCopy() *Timer {
	if t == nil {
		return nil
	}
	cp := *t
	cp.ExtraInfo = deepCopyMap(t.ExtraInfo)
	return &cp
}

// Remaining returns the time left until expiry, never negative.
func (t *Timer) Remaining(now time.Time) time.Duration {
	d := t.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			cp[k] = deepCopyMap(nested)
			continue
		}
		cp[k] = v
	}
	return cp
}

// FormattedTimer is the read-model view of a timer handed to API and
// WebSocket consumers: raw fields plus the humanized expiry.
type FormattedTimer struct {
	ID               string         `json:"id"`
	Class            Class          `json:"class"`
	EntityID         string         `json:"entity_id"`
	Name             string         `json:"name"`
	ExpiresAt        time.Time      `json:"expires_at"`
	Status           Status         `json:"status"`
	RemainingSeconds int64          `json:"remaining_seconds"`
	ExpiresSpeech    string         `json:"expires_speech"`
	ExtraInfo        map[string]any `json:"extra_info,omitempty"`
}

// AddRequest describes a new timer.
type AddRequest struct {
	Class    Class
	EntityID string
	Name     string
	Value    timespeech.TimeValue
	Sentence string

	// PreExpireWarning overrides the configured default when non-nil.
	PreExpireWarning *int
	Language         lang.Code

	// Use24Hour carries the owning satellite's clock style preference
	// and overrides the configured default when non-nil.
	Use24Hour *bool

	ExtraInfo map[string]any

	// Start arms the timer immediately. When false the timer stays
	// inactive until Start is called.
	Start bool
}

// CancelRequest selects timers to cancel: by id, by owning entity, or all.
type CancelRequest struct {
	TimerID  string
	EntityID string
	All      bool
}

// GetRequest filters the timer list. Zero-value fields match everything.
type GetRequest struct {
	TimerID        string
	EntityID       string
	Name           string
	IncludeExpired bool
}
