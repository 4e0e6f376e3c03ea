package lang

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Compiled is a Pack with its pattern templates compiled. Build it once via
// Compile (or NewRegistry) and share it; all methods are safe for
// concurrent use.
type Compiled struct {
	pack Pack

	intervalDetect   *regexp.Regexp
	fractions        *regexp.Regexp
	intervalBase     *regexp.Regexp
	intervalSupHour  *regexp.Regexp
	intervalSupMin   *regexp.Regexp
	intervalAltSuper *regexp.Regexp
	timeBase         *regexp.Regexp
	timeSpecial      *regexp.Regexp
	timeSuper        *regexp.Regexp
	days             *regexp.Regexp
	minuteUnit       *regexp.Regexp
}

// Compile builds the pattern templates for one language.
func Compile(p Pack) (*Compiled, error) {
	day := alternation(p.Units(UnitDay))
	hour := alternation(p.Units(UnitHour))
	minute := alternation(p.Units(UnitMinute))
	second := alternation(p.Units(UnitSecond))
	anyUnit := day + "|" + hour + "|" + minute + "|" + second

	frac := wordAlternation(keys(p.HourFractions()))
	specialHour := wordAlternation(keys(p.SpecialHours()))
	meridiem := wordAlternation(append(p.Meridiems(), keys(p.SpecialMeridiems())...))
	dayWords := wordAlternation(dayAlternatives(p))

	sep := `[,\s]*(?:` + regexp.QuoteMeta(p.Conjunction()) + `\s+)?`
	at := `(?:` + regexp.QuoteMeta(p.At()) + `\s+)?`
	prep := `(` + regexp.QuoteMeta(p.To()) + `|` + regexp.QuoteMeta(p.Past()) + `)`
	article := optionalPhrase(p.Articles())
	partitive := optionalPhrase(p.Partitives())
	merPrefix := optionalPhrase(p.MeridiemPrefixes())
	hourSuffix := ""
	if s := p.HourSuffix(); s != "" {
		hourSuffix = `(?:` + regexp.QuoteMeta(s) + `\s*)?`
	}

	c := &Compiled{pack: p}
	var err error
	compile := func(dst **regexp.Regexp, expr string) {
		if err != nil {
			return
		}
		var re *regexp.Regexp
		re, err = regexp.Compile(expr)
		if err != nil {
			err = fmt.Errorf("lang: compile %s pattern: %w", p.Code(), err)
			return
		}
		*dst = re
	}

	compile(&c.intervalDetect, `(?i)\b\d+\s*(?:`+anyUnit+`)\b`)
	compile(&c.fractions, `(?i)\b(?:`+frac+`)\b`)
	compile(&c.intervalBase, `(?i)\b`+
		`(?:(\d+)\s*(?:`+day+`)\b)?`+sep+
		`(?:(\d+)\s*(?:`+hour+`)\b)?`+sep+
		`(?:(\d+)\s*(?:`+minute+`)\b)?`+sep+
		`(?:(\d+)\s*(?:`+second+`)\b)?`)
	compile(&c.intervalSupHour, `(?i)\b`+
		`(?:(\d+)\s+(?:`+regexp.QuoteMeta(p.Conjunction())+`\s+)?`+article+`)?`+
		`(`+frac+`)\s+`+partitive+article+`(?:`+hour+`)\b`)
	compile(&c.intervalSupMin, `(?i)\b`+
		`(?:(\d+)\s+(?:`+regexp.QuoteMeta(p.Conjunction())+`\s+)?`+article+`)?`+
		`(`+frac+`)\s+`+partitive+article+`(?:`+minute+`)\b`)
	compile(&c.intervalAltSuper, `(?i)\b`+
		`(\d+|`+wordAlternation(p.Articles())+`)\s+(`+hour+`|`+minute+`)\b\s+`+
		regexp.QuoteMeta(p.Conjunction())+`\s+`+article+`(`+frac+`)\b`)
	compile(&c.timeBase, `(?i)\b`+
		`(?:(`+dayWords+`)\s+)?`+at+
		`(\d{1,2})(?::(\d{1,2}))?(?::(\d{1,2}))?\s*`+hourSuffix+
		merPrefix+`(`+meridiem+`)?\b`)
	compile(&c.timeSpecial, `(?i)\b`+
		`(?:(`+dayWords+`)\s+)?`+at+`(`+specialHour+`)\b`)
	compile(&c.timeSuper, `(?i)\b`+
		`(?:(`+dayWords+`)\s+)?`+at+
		`(\d{1,2}|`+frac+`)\s+`+prep+`\s+(\d{1,2}|`+specialHour+`)\b`+
		`\s*`+hourSuffix+merPrefix+`(`+meridiem+`)?\b`)
	compile(&c.days, `(?i)\b(`+dayWords+`)\b`)
	compile(&c.minuteUnit, `(?i)\A(?:`+minute+`)\z`)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Pack returns the lexicon this pattern set was compiled from.
func (c *Compiled) Pack() Pack { return c.pack }

// DetectInterval reports whether the sentence contains a number followed by
// a duration unit.
func (c *Compiled) DetectInterval(s string) bool {
	return c.intervalDetect.MatchString(s)
}

// ContainsFraction reports whether the sentence contains an hour-fraction
// word or literal.
func (c *Compiled) ContainsFraction(s string) bool {
	return c.fractions.MatchString(s)
}

// FindDay returns the first day phrase in the sentence, or "".
func (c *Compiled) FindDay(s string) string {
	return strings.ToLower(c.days.FindString(s))
}

// IsMinuteUnit reports whether tok is a minutes unit token.
func (c *Compiled) IsMinuteUnit(tok string) bool {
	return c.minuteUnit.MatchString(tok)
}

// MatchIntervalBase returns (days, hours, minutes, seconds) capture strings,
// or nil if no component matched.
func (c *Compiled) MatchIntervalBase(s string) []string {
	return firstNonEmpty(c.intervalBase, s)
}

// MatchIntervalSuperHour returns (whole hours, fraction word), or nil.
func (c *Compiled) MatchIntervalSuperHour(s string) []string {
	return firstNonEmpty(c.intervalSupHour, s)
}

// MatchIntervalSuperMin returns (whole minutes, fraction word), or nil.
func (c *Compiled) MatchIntervalSuperMin(s string) []string {
	return firstNonEmpty(c.intervalSupMin, s)
}

// MatchIntervalAltSuper returns (value, unit token, fraction word), or nil.
func (c *Compiled) MatchIntervalAltSuper(s string) []string {
	return firstNonEmpty(c.intervalAltSuper, s)
}

// MatchTimeBase returns (day, hour, minute, second, meridiem), or nil.
func (c *Compiled) MatchTimeBase(s string) []string {
	return firstNonEmpty(c.timeBase, s)
}

// MatchTimeSpecial returns (day, special-hour word), or nil.
func (c *Compiled) MatchTimeSpecial(s string) []string {
	return firstNonEmpty(c.timeSpecial, s)
}

// MatchTimeSuper returns (day, minute part, preposition, hour part,
// meridiem), or nil.
func (c *Compiled) MatchTimeSuper(s string) []string {
	return firstNonEmpty(c.timeSuper, s)
}

// firstNonEmpty returns the capture groups of the first match in which at
// least one group captured text. Templates with all-optional groups match
// the empty string at every position, so a plain FindStringSubmatch would
// stop at the first zero-width match.
func firstNonEmpty(re *regexp.Regexp, s string) []string {
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		for _, g := range m[1:] {
			if g != "" {
				return m[1:]
			}
		}
	}
	return nil
}

// alternation builds a regex alternation of a unit's spoken forms, longest
// first.
func alternation(u UnitNames) string {
	return wordAlternation([]string{u.Plural, u.Singular, u.Short})
}

// wordAlternation quotes and joins words into an alternation, longest
// first so longer phrases win over their prefixes.
func wordAlternation(words []string) string {
	sorted := make([]string, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	quoted := make([]string, 0, len(sorted))
	for _, w := range sorted {
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	return strings.Join(quoted, "|")
}

// dayAlternatives returns every day phrase the day group should accept:
// "next <weekday>" forms, plain weekdays and the relative day words.
func dayAlternatives(p Pack) []string {
	out := make([]string, 0, len(p.Weekdays())*2+len(p.SpecialDays()))
	for _, w := range p.Weekdays() {
		out = append(out, p.Next()+" "+w)
	}
	out = append(out, p.Weekdays()...)
	out = append(out, keys(p.SpecialDays())...)
	return out
}

// optionalPhrase renders a list of spoken filler phrases as an optional
// non-capturing group.
func optionalPhrase(phrases []string) string {
	alt := wordAlternation(phrases)
	if alt == "" {
		return ""
	}
	return `(?:(?:` + alt + `)\s+)?`
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
