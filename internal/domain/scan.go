package domain

import "time"

// notifyWindow is the width of the half-open notification window. With a
// one-minute tick period, exactly one tick lands inside the window.
const notifyWindow = time.Minute

// UpcomingStorms returns every storm event starting strictly after now, in
// dataset order. A storm starting exactly at now is not upcoming.
func (d Dataset) UpcomingStorms(now time.Time) []WeatherEvent {
	var storms []WeatherEvent
	for _, e := range d {
		if e.IsStorm() && e.Start.After(now) {
			storms = append(storms, e)
		}
	}
	return storms
}

// NotifyCandidate scans storms in order and returns the index and event of
// the first storm whose start falls within [lead, lead+1m) ahead of now.
// At most one candidate is selected per call; ties within the same minute
// resolve to dataset order. ok is false when no storm qualifies.
func NotifyCandidate(storms []WeatherEvent, now time.Time, lead time.Duration) (int, WeatherEvent, bool) {
	for i, e := range storms {
		delta := e.Start.Sub(now)
		if delta >= lead && delta < lead+notifyWindow {
			return i, e, true
		}
	}
	return 0, WeatherEvent{}, false
}

// ActiveEvent returns the first event whose [start, end) interval contains
// now. The interval is closed at start and open at end: an event is active
// at its exact start, not at its exact end. For well-formed datasets at
// most one event is active; with overlaps the first in order wins.
func (d Dataset) ActiveEvent(now time.Time) (int, WeatherEvent, bool) {
	for i, e := range d {
		if !e.Start.After(now) && now.Before(e.End()) {
			return i, e, true
		}
	}
	return 0, WeatherEvent{}, false
}

// TodayStorms returns the storms whose start, converted to the display
// timezone, falls on the same calendar date as now in that timezone.
// Bucketing by the display date means an event near midnight can belong to
// "today" in one timezone and not the other.
func (d Dataset) TodayStorms(now time.Time, displayTZ *time.Location) []WeatherEvent {
	year, month, day := now.In(displayTZ).Date()
	var storms []WeatherEvent
	for _, e := range d {
		y, m, dd := e.Start.In(displayTZ).Date()
		if e.IsStorm() && y == year && m == month && dd == day {
			storms = append(storms, e)
		}
	}
	return storms
}
