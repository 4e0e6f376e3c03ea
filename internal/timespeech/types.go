package timespeech

import "time"

// Kind discriminates decoded time values.
type Kind string

// Decoded value kinds.
const (
	KindInterval     Kind = "interval"
	KindAbsoluteTime Kind = "absolute_time"
)

// TimeValue is a decoded spoken time: either an Interval or an
// AbsoluteTime.
type TimeValue interface {
	Kind() Kind
}

// Interval is a relative duration ("in 5 minutes", "2 1/2 hours").
type Interval struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Kind implements TimeValue.
func (Interval) Kind() Kind { return KindInterval }

// Duration returns the interval as a time.Duration.
func (i Interval) Duration() time.Duration {
	return time.Duration(i.Days)*24*time.Hour +
		time.Duration(i.Hours)*time.Hour +
		time.Duration(i.Minutes)*time.Minute +
		time.Duration(i.Seconds)*time.Second
}

// IsZero reports whether every component is zero.
func (i Interval) IsZero() bool {
	return i.Days == 0 && i.Hours == 0 && i.Minutes == 0 && i.Seconds == 0
}

// AbsoluteTime is a wall-clock target ("at 10:30 am", "next tuesday at
// noon"). Day is the raw day phrase from the sentence ("tomorrow",
// "next tuesday") or empty. Meridiem is "am", "pm" or empty when the
// sentence did not specify one.
type AbsoluteTime struct {
	Day      string `json:"day,omitempty"`
	Hour     int    `json:"hour"`
	Minute   int    `json:"minute"`
	Second   int    `json:"second"`
	Meridiem string `json:"meridiem,omitempty"`
}

// Kind implements TimeValue.
func (AbsoluteTime) Kind() Kind { return KindAbsoluteTime }

// Clock abstracts time.Now for deterministic resolution in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
