// Package monitor provides the daily event monitor, a date-keyed record of
// headline observations persisted as a JSON object.
//
// The monitor maps calendar dates (YYYY-MM-DD, local time) to the headline
// observed that day. Re-running the job within the same day overwrites the
// day's entry rather than duplicating it, so the record holds at most one
// observation per date. Entries keep their insertion order across a
// load/mutate/save cycle, and saves are atomic: a reader of the backing file
// sees either the old complete content or the new complete content.
package monitor
