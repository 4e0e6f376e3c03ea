// Package timespeech converts between spoken time phrases and concrete
// points in time.
//
// The package has three stages:
//
//	Decode    - turns a transcribed sentence ("set a timer for 5 minutes",
//	            "wake me at quarter to 8") into an Interval or AbsoluteTime
//	Resolve   - turns a decoded value into an absolute expiry time against
//	            an injectable clock
//	ToSpeech  - turns a duration or expiry back into a natural sentence for
//	            voice output ("1 hour and 30 minutes", "Thursday at 2:30 PM")
//
// Decoding is table-driven: all language knowledge lives in lang.Pack
// lexicons and their compiled pattern templates. A sentence that cannot be
// decoded yields a nil value, never an error; malformed speech input is an
// expected outcome, not a fault.
package timespeech
