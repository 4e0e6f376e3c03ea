package timespeech

import (
	"strings"
	"time"

	"github.com/voxtime/voxtime-core/internal/lang"
)

// ResolveInterval returns the expiry for a relative duration: now plus the
// interval, truncated to whole seconds.
func ResolveInterval(clock Clock, iv Interval) time.Time {
	return clock.Now().Truncate(time.Second).Add(iv.Duration())
}

// ResolveAbsoluteTime turns a decoded wall-clock target into the next
// matching point in time.
//
// An explicit pm meridiem shifts hours below 12 into the afternoon. A day
// phrase anchors the date: weekdays resolve to the next occurrence, rolling
// a full week when already past or qualified with "next". Without a day
// phrase a candidate already in the past rolls forward to the next
// occurrence: in whole days when a meridiem was spoken, otherwise in
// half-day steps so "4:30" said in the afternoon means this evening, not
// tomorrow morning.
//
// When contextual is true, a bare small-hours reading (before 6:00 with no
// meridiem and no day) is shifted twelve hours: "set an alarm for 3"
// almost never means 3 at night.
func ResolveAbsoluteTime(clock Clock, at AbsoluteTime, p lang.Pack, contextual bool) time.Time {
	now := clock.Now().Truncate(time.Second)

	hour := at.Hour
	if at.Meridiem == "pm" && hour < 12 {
		hour += 12
	}
	target := time.Date(now.Year(), now.Month(), now.Day(),
		hour, at.Minute, at.Second, 0, now.Location())

	if at.Day != "" {
		target = target.AddDate(0, 0, daysToAdd(at.Day, now, p))
		if target.Before(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target
	}

	step := 12 * time.Hour
	if at.Meridiem != "" {
		step = 24 * time.Hour
	}
	for !target.After(now) {
		target = target.Add(step)
	}

	if contextual && at.Meridiem == "" && target.Hour() < 6 {
		target = target.Add(12 * time.Hour)
	}
	return target
}

// daysToAdd converts a day phrase into a day offset from now. Unknown
// phrases resolve to zero.
func daysToAdd(day string, now time.Time, p lang.Pack) int {
	day = strings.ToLower(strings.TrimSpace(day))

	next := false
	if prefix := p.Next() + " "; strings.HasPrefix(day, prefix) {
		next = true
		day = strings.TrimPrefix(day, prefix)
	}

	if offset, ok := p.SpecialDays()[day]; ok {
		return offset
	}

	for i, w := range p.Weekdays() {
		if w != day {
			continue
		}
		// Weekday() is Sunday-based, the lexicon is Monday-based
		current := (int(now.Weekday()) + 6) % 7
		diff := i - current
		if diff < 0 || (next && diff == 0) {
			diff += 7
		} else if next && diff > 0 {
			// "next tuesday" said on a monday still means the following
			// week
			diff += 7
		}
		return diff
	}
	return 0
}
