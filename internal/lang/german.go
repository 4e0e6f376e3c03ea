package lang

// German returns the German lexicon. Uses the same template structure as
// the English tables; "halb zwölf" style half-hour phrasing is not covered.
func German() Pack {
	return &tablePack{
		code: CodeDE,
		weekdays: []string{
			"montag", "dienstag", "mittwoch", "donnerstag",
			"freitag", "samstag", "sonntag",
		},
		weekdayDisplay: []string{
			"Montag", "Dienstag", "Mittwoch", "Donnerstag",
			"Freitag", "Samstag", "Sonntag",
		},
		specialDays: map[string]int{
			"heute":  0,
			"morgen": 1,
		},
		specialHours: map[string]SpecialHour{
			"mitternacht": {Hour: 0, Meridiem: "am"},
			"mittag":      {Hour: 12, Meridiem: "pm"},
		},
		hourFractions: map[string]int{
			"1/4":          15,
			"viertel":      15,
			"1/2":          30,
			"halb":         30,
			"3/4":          45,
			"dreiviertel":  45,
			"drei viertel": 45,
		},
		threeQuarters: "drei viertel",
		meridiems:     []string{"am", "pm"},
		specialMeridiems: map[string]string{
			"morgens":     "am",
			"vormittags":  "am",
			"nachmittags": "pm",
			"abends":      "pm",
			"heute abend": "pm",
		},
		units: map[Unit]UnitNames{
			UnitDay:    {Singular: "Tag", Plural: "Tage", Short: "d"},
			UnitHour:   {Singular: "Stunde", Plural: "Stunden", Short: "h"},
			UnitMinute: {Singular: "Minute", Plural: "Minuten", Short: "m"},
			UnitSecond: {Singular: "Sekunde", Plural: "Sekunden", Short: "s"},
		},
		replacements: []Replacement{
			{Match: "eineinhalb stunden", With: "1 Stunde und 30 Minuten"},
			{Match: "anderthalb stunden", With: "1 Stunde und 30 Minuten"},
			{Match: "eineinhalb tage", With: "1 Tag und 12 Stunden"},
			{Match: "eine stunde", With: "1 Stunde", Prefix: true},
			{Match: "einen tag", With: "1 Tag", Prefix: true},
		},
		numberWords: map[string]int{
			"eins": 1, "eine": 1, "zwei": 2, "drei": 3, "vier": 4,
			"fünf": 5, "sechs": 6, "sieben": 7, "acht": 8, "neun": 9,
			"zehn": 10, "elf": 11, "zwölf": 12, "dreizehn": 13,
			"vierzehn": 14, "fünfzehn": 15, "sechzehn": 16,
			"siebzehn": 17, "achtzehn": 18, "neunzehn": 19,
			"zwanzig": 20, "dreißig": 30, "vierzig": 40, "fünfzig": 50,
			"sechzig": 60,
		},
		articles:         []string{"eine", "einer", "einen"},
		partitives:       nil,
		meridiemPrefixes: []string{"am"},
		hourSuffix:       "uhr",
		to:               "vor",
		past:             "nach",
		next:             "nächsten",
		at:               "um",
		forWord:          "für",
		onWord:           "am",
		conjunction:      "und",
		todayLabel:       "Heute",
		tomorrowLabel:    "Morgen",
		monthDisplay: []string{
			"Januar", "Februar", "März", "April", "Mai", "Juni",
			"Juli", "August", "September", "Oktober", "November",
			"Dezember",
		},
	}
}
