package timespeech

import (
	"reflect"
	"testing"

	"github.com/voxtime/voxtime-core/internal/lang"
)

func englishPatterns(t *testing.T) *lang.Compiled {
	t.Helper()
	c, err := lang.Compile(lang.English())
	if err != nil {
		t.Fatalf("compile english: %v", err)
	}
	return c
}

func TestDecodeInterval(t *testing.T) {
	c := englishPatterns(t)
	tests := []struct {
		name string
		in   string
		want Interval
	}{
		{"minutes", "set a timer for 5 minutes", Interval{Minutes: 5}},
		{"short unit", "5m", Interval{Minutes: 5}},
		{"spoken number", "set a timer for five minutes", Interval{Minutes: 5}},
		{"hours and minutes", "1 hour and 30 minutes", Interval{Hours: 1, Minutes: 30}},
		{"all units", "1 day 2 hours 3 minutes 4 seconds", Interval{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}},
		{"half an hour", "half an hour", Interval{Minutes: 30}},
		{"numeric fraction", "2 1/2 hours", Interval{Hours: 2, Minutes: 30}},
		{"hour and a half idiom", "an hour and a half", Interval{Hours: 1, Minutes: 30}},
		{"idiom mid sentence", "set a timer for an hour and a half", Interval{Hours: 1, Minutes: 30}},
		{"day and a half idiom", "a day and a half", Interval{Days: 1, Hours: 12}},
		{"three quarters", "three quarters of an hour", Interval{Minutes: 45}},
		{"half a minute", "half a minute", Interval{Seconds: 30}},
		{"minute and a half", "1 minute and a half", Interval{Minutes: 1, Seconds: 30}},
		{"hour and a quarter", "an hour and a quarter", Interval{Hours: 1, Minutes: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := Decode(tt.in, c)
			iv, ok := got.(Interval)
			if !ok {
				t.Fatalf("Decode(%q) = %#v, want Interval", tt.in, got)
			}
			if iv != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.in, iv, tt.want)
			}
		})
	}
}

func TestDecodeAbsoluteTime(t *testing.T) {
	c := englishPatterns(t)
	tests := []struct {
		name string
		in   string
		want AbsoluteTime
	}{
		{"plain time", "10:30", AbsoluteTime{Hour: 10, Minute: 30}},
		{"meridiem", "10:30 am", AbsoluteTime{Hour: 10, Minute: 30, Meridiem: "am"}},
		{"day and time", "monday at 10:00 am", AbsoluteTime{Day: "monday", Hour: 10, Meridiem: "am"}},
		{"next weekday", "next tuesday at 10:00 AM", AbsoluteTime{Day: "next tuesday", Hour: 10, Meridiem: "am"}},
		{"to phrasing", "20 to 4 PM", AbsoluteTime{Hour: 3, Minute: 40, Meridiem: "pm"}},
		{"quarter past", "quarter past 3", AbsoluteTime{Hour: 3, Minute: 15}},
		{"quarter to special hour", "quarter to midnight", AbsoluteTime{Hour: 23, Minute: 45, Meridiem: "am"}},
		{"special hour", "midnight", AbsoluteTime{Hour: 0, Meridiem: "am"}},
		{"day with special hour", "tomorrow at noon", AbsoluteTime{Day: "tomorrow", Hour: 12, Meridiem: "pm"}},
		{"special meridiem", "10:30 in the evening", AbsoluteTime{Hour: 10, Minute: 30, Meridiem: "pm"}},
		{"day found by fallback", "tomorrow morning at 7", AbsoluteTime{Day: "tomorrow", Hour: 7, Meridiem: ""}},
		{"seconds", "1:02:03", AbsoluteTime{Hour: 1, Minute: 2, Second: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := Decode(tt.in, c)
			at, ok := got.(AbsoluteTime)
			if !ok {
				t.Fatalf("Decode(%q) = %#v, want AbsoluteTime", tt.in, got)
			}
			if !reflect.DeepEqual(at, tt.want) {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.in, at, tt.want)
			}
		})
	}
}

func TestDecodeFailure(t *testing.T) {
	c := englishPatterns(t)
	for _, in := range []string{
		"",
		"   ",
		"feed the cat",
		"turn on the lights",
		"99:99",
	} {
		if _, got := Decode(in, c); got != nil {
			t.Errorf("Decode(%q) = %#v, want nil", in, got)
		}
	}
}

func TestDecodeNormalizesSentence(t *testing.T) {
	c := englishPatterns(t)
	norm, _ := Decode("Set A Timer For Five Minutes", c)
	if norm != "set a timer for 5 minutes" {
		t.Errorf("normalized = %q", norm)
	}
}

func TestDecodeGerman(t *testing.T) {
	de, err := lang.Compile(lang.German())
	if err != nil {
		t.Fatalf("compile german: %v", err)
	}

	_, got := Decode("stelle einen timer für 5 minuten", de)
	if iv, ok := got.(Interval); !ok || iv != (Interval{Minutes: 5}) {
		t.Errorf("Decode interval = %#v, want 5 minutes", got)
	}

	_, got = Decode("viertel vor 8 uhr abends", de)
	at, ok := got.(AbsoluteTime)
	if !ok {
		t.Fatalf("Decode = %#v, want AbsoluteTime", got)
	}
	want := AbsoluteTime{Hour: 7, Minute: 45, Meridiem: "pm"}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("Decode = %+v, want %+v", at, want)
	}
}
