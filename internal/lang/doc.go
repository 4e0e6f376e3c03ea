// Package lang provides the language lexicons used by the spoken-time
// decoder and humanizer.
//
// Each language is a Pack: tables of weekday names, special day/hour words,
// hour-fraction words, meridiem synonyms and duration unit nouns, plus the
// ordered direct-replacement idioms applied before pattern matching.
//
// Packs are compiled once at startup into a Compiled pattern set (see
// Compile) and registered in a Registry. Compiled packs are immutable and
// safe for concurrent use.
//
// # Usage
//
//	registry, err := lang.NewRegistry(lang.English(), lang.German())
//	if err != nil {
//	    return err
//	}
//	pack, ok := registry.Get(lang.CodeEN)
//
// English is reference-complete; other languages follow the same template
// structure and may cover a smaller share of the grammar.
package lang
