// Package domain models the predicted weather timeline of the Aelio region
// and implements the storm scanning logic over it.
//
// # Dataset Format
//
// The predicted dataset is a plain-text file produced by an external
// predictor, one event per line:
//
//	<kind> <ISO-8601 timestamp with offset> <HH:MM duration> <rerolls>
//
//	storm 2024-01-01T10:00:00+09:00 00:08 3
//
// Kind names are lowercase and case-sensitive: clear, cloudy, rain, storm.
// The timestamp is recorded in the source timezone of the predictor (the
// game server's clock, UTC+9). The duration column is hours:minutes. The
// trailing rerolls column is predictor bookkeeping and is ignored here.
//
// An unrecognized kind or a malformed field is a load-time error carrying
// the offending line; the bot refuses to start on a partial dataset.
//
// # Ordering
//
// The dataset is assumed to be pre-sorted ascending by start time and is
// never re-sorted: every "next n" and "first matching" result depends on
// that external guarantee. Use cmd/validate to check a file offline.
//
// # Interval Semantics
//
// An event occupies the half-open interval [start, start+duration): it is
// active at its exact start and no longer active at its exact end, so an
// event with zero duration is never active. The notification window ahead
// of a storm is likewise half-open, [lead, lead+1m) minutes before start,
// which yields exactly one qualifying tick when the tick period is one
// minute.
package domain
