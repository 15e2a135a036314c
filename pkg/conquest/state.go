package conquest

import (
	"errors"
	"fmt"
)

// Faction identifies who controls a planet or fleet. Zero is the unowned
// sentinel; faction 1 is reserved for our own side by protocol convention.
type Faction int

const (
	Neutral Faction = 0
	Self    Faction = 1
)

// IsNeutral reports whether the faction is the unowned sentinel.
func (f Faction) IsNeutral() bool { return f == Neutral }

// Planet is one planet in a turn snapshot. Names are the sole
// cross-reference key everywhere; there are no numeric planet ids.
type Planet struct {
	Name  string
	X, Y  float64
	Owner Faction
	Ships int
}

// Fleet is an in-flight expedition toward a planet. TurnsRemaining counts
// down each game turn; several fleets may share a destination.
type Fleet struct {
	ID             int
	Origin         string
	Destination    string
	TurnsRemaining int
	Owner          Faction
	Ships          int
}

// Move orders Ships from Origin to Destination this turn.
type Move struct {
	Origin      string
	Destination string
	Ships       int
}

// Snapshot is the full visible game state at decision time. The projector
// and planner read it without mutating it; one decision cycle consumes one
// snapshot.
type Snapshot struct {
	Planets []Planet
	Fleets  []Fleet
}

// ErrInvalidSnapshot is returned when a fleet references a planet name
// missing from the snapshot.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Planet returns the planet with the given name.
func (s *Snapshot) Planet(name string) (*Planet, error) {
	for i := range s.Planets {
		if s.Planets[i].Name == name {
			return &s.Planets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no planet named %q", ErrInvalidSnapshot, name)
}

// Validate checks that every fleet's origin and destination name a planet
// present in the snapshot.
func (s *Snapshot) Validate() error {
	names := make(map[string]bool, len(s.Planets))
	for i := range s.Planets {
		names[s.Planets[i].Name] = true
	}
	for i := range s.Fleets {
		f := &s.Fleets[i]
		if !names[f.Origin] {
			return fmt.Errorf("%w: fleet %d origin %q not in snapshot", ErrInvalidSnapshot, f.ID, f.Origin)
		}
		if !names[f.Destination] {
			return fmt.Errorf("%w: fleet %d destination %q not in snapshot", ErrInvalidSnapshot, f.ID, f.Destination)
		}
	}
	return nil
}
