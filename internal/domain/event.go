package domain

import (
	"fmt"
	"time"
)

// Kind identifies one of the four predicted weather conditions.
type Kind int

const (
	Clear Kind = iota
	Cloudy
	Rain
	Storm
)

// kindTable maps dataset kind names to their Kind. Names are lowercase and
// case-sensitive; anything else is a load-time error, never coerced.
var kindTable = map[string]Kind{
	"clear":  Clear,
	"cloudy": Cloudy,
	"rain":   Rain,
	"storm":  Storm,
}

var kindNames = map[Kind]string{
	Clear:  "clear",
	Cloudy: "cloudy",
	Rain:   "rain",
	Storm:  "storm",
}

// ParseKind looks up a dataset kind name against the fixed table.
func ParseKind(name string) (Kind, error) {
	k, ok := kindTable[name]
	if !ok {
		return 0, fmt.Errorf("unknown weather kind %q", name)
	}
	return k, nil
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// WeatherEvent is one entry of the predicted timeline. Start carries the
// source timezone of the dataset; Duration is whole minutes in the source
// data but held as a time.Duration.
type WeatherEvent struct {
	Kind     Kind
	Start    time.Time
	Duration time.Duration
}

// End returns the instant the event stops, Start + Duration.
func (e WeatherEvent) End() time.Time {
	return e.Start.Add(e.Duration)
}

func (e WeatherEvent) IsStorm() bool {
	return e.Kind == Storm
}

// Dataset is the immutable, pre-sorted event timeline. It is built once at
// startup and shared by reference between the notifier loop and the query
// handlers; with no writers after construction, concurrent reads need no
// locking.
type Dataset []WeatherEvent
