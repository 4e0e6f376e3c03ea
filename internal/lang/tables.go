package lang

// tablePack is the table-driven Pack implementation shared by all built-in
// languages.
type tablePack struct {
	code             Code
	weekdays         []string
	weekdayDisplay   []string
	specialDays      map[string]int
	specialHours     map[string]SpecialHour
	hourFractions    map[string]int
	threeQuarters    string
	meridiems        []string
	specialMeridiems map[string]string
	units            map[Unit]UnitNames
	replacements     []Replacement
	numberWords      map[string]int
	articles         []string
	partitives       []string
	meridiemPrefixes []string
	hourSuffix       string
	to               string
	past             string
	next             string
	at               string
	forWord          string
	onWord           string
	conjunction      string
	todayLabel       string
	tomorrowLabel    string
	monthDisplay     []string
}

func (p *tablePack) Code() Code                           { return p.code }
func (p *tablePack) Weekdays() []string                   { return p.weekdays }
func (p *tablePack) WeekdayDisplay() []string             { return p.weekdayDisplay }
func (p *tablePack) SpecialDays() map[string]int          { return p.specialDays }
func (p *tablePack) SpecialHours() map[string]SpecialHour { return p.specialHours }
func (p *tablePack) HourFractions() map[string]int        { return p.hourFractions }
func (p *tablePack) ThreeQuarters() string                { return p.threeQuarters }
func (p *tablePack) Meridiems() []string                  { return p.meridiems }
func (p *tablePack) SpecialMeridiems() map[string]string  { return p.specialMeridiems }
func (p *tablePack) Units(u Unit) UnitNames               { return p.units[u] }
func (p *tablePack) Replacements() []Replacement          { return p.replacements }
func (p *tablePack) NumberWords() map[string]int          { return p.numberWords }
func (p *tablePack) Articles() []string                   { return p.articles }
func (p *tablePack) Partitives() []string                 { return p.partitives }
func (p *tablePack) MeridiemPrefixes() []string           { return p.meridiemPrefixes }
func (p *tablePack) HourSuffix() string                   { return p.hourSuffix }
func (p *tablePack) To() string                           { return p.to }
func (p *tablePack) Past() string                         { return p.past }
func (p *tablePack) Next() string                         { return p.next }
func (p *tablePack) At() string                           { return p.at }
func (p *tablePack) For() string                          { return p.forWord }
func (p *tablePack) On() string                           { return p.onWord }
func (p *tablePack) Conjunction() string                  { return p.conjunction }
func (p *tablePack) TodayLabel() string                   { return p.todayLabel }
func (p *tablePack) TomorrowLabel() string                { return p.tomorrowLabel }
func (p *tablePack) MonthDisplay() []string               { return p.monthDisplay }
