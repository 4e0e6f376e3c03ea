package timespeech

import (
	"strconv"
	"strings"

	"github.com/voxtime/voxtime-core/internal/lang"
)

// Decode parses a transcribed time phrase against one language's compiled
// patterns. It returns the normalized sentence alongside the decoded value;
// the value is nil when no recognizable time phrase is present. Decoding
// never fails with an error: malformed speech is an expected input.
//
// The sentence is lowercased, the language's direct-replacement idioms are
// applied, and spoken number words are rewritten as digits before matching.
// Number-word conversion is skipped for sentences starting with the
// three-quarters phrase so the fraction is not mangled into a digit prefix.
func Decode(sentence string, c *lang.Compiled) (string, TimeValue) {
	p := c.Pack()
	s := strings.ToLower(strings.TrimSpace(sentence))
	if s == "" {
		return s, nil
	}
	s = applyReplacements(s, p.Replacements())
	if !strings.HasPrefix(s, p.ThreeQuarters()) {
		s = lang.NumbersToDigits(s, p)
	}

	// A number-plus-unit signature marks an interval. A fraction word
	// without to/past phrasing does too ("half an hour" carries no digits).
	if c.DetectInterval(s) || (c.ContainsFraction(s) && c.MatchTimeSuper(s) == nil) {
		return s, decodeInterval(s, c)
	}
	return s, decodeTime(s, c)
}

func applyReplacements(s string, rules []lang.Replacement) string {
	for _, r := range rules {
		switch {
		case !r.Prefix && s == r.Match:
			s = r.With
		case r.Prefix && strings.HasPrefix(s, r.Match):
			s = r.With + s[len(r.Match):]
		}
	}
	return s
}

// decodeInterval tries the interval templates in priority order. The base
// template is skipped when the sentence carries a fraction word: its plain
// numeric groups would misread super phrasing like "2 1/2 hours".
func decodeInterval(s string, c *lang.Compiled) TimeValue {
	p := c.Pack()

	if !c.ContainsFraction(s) {
		if g := c.MatchIntervalBase(s); g != nil {
			iv := Interval{
				Days:    atoi(g[0]),
				Hours:   atoi(g[1]),
				Minutes: atoi(g[2]),
				Seconds: atoi(g[3]),
			}
			if !iv.IsZero() {
				return iv
			}
		}
		return nil
	}

	if g := c.MatchIntervalSuperHour(s); g != nil {
		return Interval{
			Hours:   atoi(g[0]),
			Minutes: p.HourFractions()[strings.ToLower(g[1])],
		}
	}
	if g := c.MatchIntervalSuperMin(s); g != nil {
		return Interval{
			Minutes: atoi(g[0]),
			Seconds: p.HourFractions()[strings.ToLower(g[1])],
		}
	}
	if g := c.MatchIntervalAltSuper(s); g != nil {
		whole := atoi(g[0])
		if whole == 0 {
			// an article in the value slot means one unit
			whole = 1
		}
		iv := Interval{
			Hours:   whole,
			Minutes: p.HourFractions()[strings.ToLower(g[2])],
		}
		if c.IsMinuteUnit(g[1]) {
			// the template assumes the whole number names hours; shift
			// both components down when the spoken unit was minutes
			iv = Interval{Minutes: iv.Hours, Seconds: iv.Minutes}
		}
		return iv
	}
	return nil
}

// decodeTime tries the absolute-time templates: super ("20 to 4") first
// since its minute phrase would otherwise be misread as the hour, then the
// plain hh:mm form, then the special-hour form ("tomorrow at noon").
func decodeTime(s string, c *lang.Compiled) TimeValue {
	p := c.Pack()

	if g := c.MatchTimeSuper(s); g != nil {
		minute, ok := fractionOrInt(g[1], p)
		if !ok {
			return nil
		}
		hour, mer, ok := specialHourOrInt(g[3], p)
		if !ok {
			return nil
		}
		if m := canonicalMeridiem(g[4], p); m != "" {
			mer = m
		}
		if strings.EqualFold(g[2], p.To()) && minute > 0 {
			// "20 to 4" is 3:40
			hour--
			if hour < 0 {
				hour = 23
			}
			minute = 60 - minute
		}
		return finishTime(AbsoluteTime{
			Day:      g[0],
			Hour:     hour,
			Minute:   minute,
			Meridiem: mer,
		}, s, c)
	}

	if g := c.MatchTimeBase(s); g != nil {
		return finishTime(AbsoluteTime{
			Day:      g[0],
			Hour:     atoi(g[1]),
			Minute:   atoi(g[2]),
			Second:   atoi(g[3]),
			Meridiem: canonicalMeridiem(g[4], p),
		}, s, c)
	}

	if g := c.MatchTimeSpecial(s); g != nil {
		hour, mer, ok := specialHourOrInt(g[1], p)
		if !ok {
			return nil
		}
		return finishTime(AbsoluteTime{
			Day:      g[0],
			Hour:     hour,
			Meridiem: mer,
		}, s, c)
	}

	return nil
}

// finishTime fills in a day phrase found elsewhere in the sentence
// ("tomorrow morning at 7" captures the hour without the day) and rejects
// values that cannot be a clock reading.
func finishTime(at AbsoluteTime, s string, c *lang.Compiled) TimeValue {
	at.Day = strings.ToLower(at.Day)
	if at.Day == "" {
		at.Day = c.FindDay(s)
	}
	if at.Hour > 23 || at.Minute > 59 || at.Second > 59 {
		return nil
	}
	return at
}

func canonicalMeridiem(tok string, p lang.Pack) string {
	tok = strings.ToLower(tok)
	if tok == "" {
		return ""
	}
	for _, m := range p.Meridiems() {
		if tok == m {
			return m
		}
	}
	if m, ok := p.SpecialMeridiems()[tok]; ok {
		return m
	}
	return ""
}

func specialHourOrInt(tok string, p lang.Pack) (hour int, meridiem string, ok bool) {
	tok = strings.ToLower(tok)
	if sh, found := p.SpecialHours()[tok]; found {
		return sh.Hour, sh.Meridiem, true
	}
	n, err := strconv.Atoi(tok)
	return n, "", err == nil
}

func fractionOrInt(tok string, p lang.Pack) (int, bool) {
	tok = strings.ToLower(tok)
	if v, ok := p.HourFractions()[tok]; ok {
		return v, true
	}
	n, err := strconv.Atoi(tok)
	return n, err == nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
