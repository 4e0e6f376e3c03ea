package lang

// English returns the English lexicon.
func English() Pack {
	return &tablePack{
		code: CodeEN,
		weekdays: []string{
			"monday", "tuesday", "wednesday", "thursday",
			"friday", "saturday", "sunday",
		},
		weekdayDisplay: []string{
			"Monday", "Tuesday", "Wednesday", "Thursday",
			"Friday", "Saturday", "Sunday",
		},
		specialDays: map[string]int{
			"today":    0,
			"tomorrow": 1,
		},
		specialHours: map[string]SpecialHour{
			"midnight": {Hour: 0, Meridiem: "am"},
			"noon":     {Hour: 12, Meridiem: "pm"},
		},
		hourFractions: map[string]int{
			"1/4":            15,
			"quarter":        15,
			"1/2":            30,
			"half":           30,
			"3/4":            45,
			"three quarters": 45,
		},
		threeQuarters: "three quarters",
		meridiems:     []string{"am", "pm"},
		specialMeridiems: map[string]string{
			"morning":   "am",
			"afternoon": "pm",
			"evening":   "pm",
			"tonight":   "pm",
		},
		units: map[Unit]UnitNames{
			UnitDay:    {Singular: "day", Plural: "days", Short: "d"},
			UnitHour:   {Singular: "hour", Plural: "hours", Short: "h"},
			UnitMinute: {Singular: "minute", Plural: "minutes", Short: "m"},
			UnitSecond: {Singular: "second", Plural: "seconds", Short: "s"},
		},
		replacements: []Replacement{
			{Match: "an hour and a half", With: "1 hour and 30 minutes"},
			{Match: "a day and a half", With: "1 day and 12 hours"},
			{Match: "an hour", With: "1 hour", Prefix: true},
			{Match: "a day", With: "1 day", Prefix: true},
		},
		numberWords: map[string]int{
			"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
			"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
			"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
			"fifteen": 15, "sixteen": 16, "seventeen": 17,
			"eighteen": 18, "nineteen": 19, "twenty": 20, "thirty": 30,
			"forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
			"eighty": 80, "ninety": 90,
		},
		articles:         []string{"a", "an"},
		partitives:       []string{"of"},
		meridiemPrefixes: []string{"in the"},
		hourSuffix:       "",
		to:               "to",
		past:             "past",
		next:             "next",
		at:               "at",
		forWord:          "for",
		onWord:           "on",
		conjunction:      "and",
		todayLabel:       "Today",
		tomorrowLabel:    "Tomorrow",
		monthDisplay: []string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November",
			"December",
		},
	}
}
