package timespeech

import (
	"fmt"
	"strings"
	"time"

	"github.com/voxtime/voxtime-core/internal/lang"
)

// SpeechOptions controls how an expiry is phrased.
type SpeechOptions struct {
	// Use24Hour renders clock readings as "14:30" instead of "2:30 PM".
	Use24Hour bool
}

// DurationToSpeech renders the time remaining until target as a natural
// sentence: "1 day 2 hours and 30 minutes", "45 seconds". Remaining time
// is rounded up to whole seconds so a timer never announces less than is
// left.
func DurationToSpeech(clock Clock, target time.Time, p lang.Pack) string {
	remaining := target.Sub(clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	secs := int64((remaining + time.Second - 1) / time.Second)

	days := secs / 86400
	hours := (secs % 86400) / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	var parts []string
	add := func(n int64, u lang.UnitNames) {
		if n == 0 {
			return
		}
		name := u.Plural
		if n == 1 {
			name = u.Singular
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}
	add(days, p.Units(lang.UnitDay))
	add(hours, p.Units(lang.UnitHour))
	add(minutes, p.Units(lang.UnitMinute))
	add(seconds, p.Units(lang.UnitSecond))

	switch len(parts) {
	case 0:
		return fmt.Sprintf("0 %s", p.Units(lang.UnitSecond).Plural)
	case 1:
		return parts[0]
	default:
		head := strings.Join(parts[:len(parts)-1], " ")
		return head + " " + p.Conjunction() + " " + parts[len(parts)-1]
	}
}

// TimeToSpeech renders an expiry as a spoken date and clock reading:
// "Today at 2:30 PM", "Thursday at 7:00", "2 January at 9:15 AM". Days
// within the coming week are named; anything further gets a date.
func TimeToSpeech(clock Clock, target time.Time, p lang.Pack, opts SpeechOptions) string {
	label, _ := dayLabel(clock.Now(), target, p)
	return label + " " + p.At() + " " + clockLabel(target, opts)
}

// dayLabel names the target's day. named is true for relative and weekday
// labels and false for calendar dates; it picks the preposition joining a
// timer name to the phrase.
func dayLabel(now, target time.Time, p lang.Pack) (label string, named bool) {
	nd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	td := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, target.Location())
	diff := int(td.Sub(nd).Hours() / 24)

	switch {
	case diff <= 0:
		return p.TodayLabel(), true
	case diff == 1:
		return p.TomorrowLabel(), true
	case diff < 7:
		return p.WeekdayDisplay()[(int(target.Weekday())+6)%7], true
	default:
		return fmt.Sprintf("%d %s", target.Day(), p.MonthDisplay()[int(target.Month())-1]), false
	}
}

func clockLabel(target time.Time, opts SpeechOptions) string {
	if opts.Use24Hour {
		return fmt.Sprintf("%d:%02d", target.Hour(), target.Minute())
	}
	hour := target.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if target.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, target.Minute(), suffix)
}

// Confirmation phrases the response spoken back after a timer is set:
// "laundry in 10 minutes" for intervals, "wake up for Tomorrow at 7:00 AM"
// for absolute targets on a named day, "wake up on 2 January at 9:15 AM"
// for dates. An empty name yields just the time phrase.
func Confirmation(clock Clock, kind Kind, name string, target time.Time, p lang.Pack, opts SpeechOptions) string {
	var phrase string
	if kind == KindInterval {
		phrase = DurationToSpeech(clock, target, p)
	} else {
		phrase = TimeToSpeech(clock, target, p, opts)
	}
	if name == "" {
		return phrase
	}
	if kind == KindInterval {
		return name + " in " + phrase
	}
	joiner := p.On()
	if _, named := dayLabel(clock.Now(), target, p); named {
		joiner = p.For()
	}
	return name + " " + joiner + " " + phrase
}
