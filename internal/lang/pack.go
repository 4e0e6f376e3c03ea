package lang

// Code identifies a supported language.
type Code string

// Supported language codes.
const (
	CodeEN Code = "en"
	CodeDE Code = "de"
)

// Unit identifies one duration component.
type Unit int

// Duration components, largest first.
const (
	UnitDay Unit = iota
	UnitHour
	UnitMinute
	UnitSecond
)

// UnitNames holds the spoken forms of one duration unit.
type UnitNames struct {
	Singular string
	Plural   string
	Short    string
}

// SpecialHour maps a spoken hour word (midnight, noon) to its clock value
// and the meridiem it implies.
type SpecialHour struct {
	Hour     int
	Meridiem string
}

// Replacement is one ordered direct string replacement applied to a
// sentence before pattern matching. Exact replacements fire only when the
// whole sentence equals Match; prefix replacements fire only at the start
// of the sentence. Order matters: exact idioms must run before the prefix
// forms they contain.
type Replacement struct {
	Match  string
	With   string
	Prefix bool
}

// Pack is the lexicon of one language. All words are lowercase; matching
// is case-insensitive.
type Pack interface {
	// Code returns the language code.
	Code() Code

	// Weekdays returns the weekday names, Monday first.
	Weekdays() []string

	// WeekdayDisplay returns the weekday names capitalised for speech
	// output, Monday first.
	WeekdayDisplay() []string

	// SpecialDays maps relative day words (today, tomorrow) to their day
	// offsets from the current date.
	SpecialDays() map[string]int

	// SpecialHours maps spoken hour words (midnight, noon) to clock
	// values.
	SpecialHours() map[string]SpecialHour

	// HourFractions maps fraction words (quarter, half) and numeric
	// fraction literals (1/4, 1/2) to minute values.
	HourFractions() map[string]int

	// ThreeQuarters returns the spoken three-quarters phrase. Sentences
	// starting with it skip number-word conversion so the phrase is not
	// mangled into a digit prefix.
	ThreeQuarters() string

	// Meridiems returns the canonical meridiem tokens, am then pm.
	Meridiems() []string

	// SpecialMeridiems maps meridiem synonyms (morning, tonight) to the
	// canonical am/pm tokens.
	SpecialMeridiems() map[string]string

	// Units returns the spoken forms of one duration unit.
	Units(Unit) UnitNames

	// Replacements returns the ordered direct replacements.
	Replacements() []Replacement

	// NumberWords maps spoken number words to integer values.
	NumberWords() map[string]int

	// Articles returns the indefinite articles that may pad a fraction
	// phrase ("a quarter", "an hour").
	Articles() []string

	// Partitives returns the filler words linking a fraction to its unit
	// ("three quarters of an hour").
	Partitives() []string

	// MeridiemPrefixes returns the filler phrases that may precede a
	// meridiem word ("10:30 in the evening").
	MeridiemPrefixes() []string

	// HourSuffix returns the word that may trail a spoken hour ("8 uhr"),
	// or "" when the language has none.
	HourSuffix() string

	// To and Past return the prepositions used in "<minutes> to/past
	// <hour>" phrasing.
	To() string
	Past() string

	// Next returns the qualifier forcing a weekday into the following
	// week.
	Next() string

	// At returns the word joining a day label and a time of day in
	// speech output.
	At() string

	// For and On return the prepositions joining a timer name to an
	// absolute time phrase: For before named days (today, a weekday),
	// On before calendar dates.
	For() string
	On() string

	// Conjunction returns the word joining the final two duration
	// components in speech output.
	Conjunction() string

	// TodayLabel and TomorrowLabel return the display words for the
	// current and the following date.
	TodayLabel() string
	TomorrowLabel() string

	// MonthDisplay returns the month names capitalised for speech
	// output, January first.
	MonthDisplay() []string
}
