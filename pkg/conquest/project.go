package conquest

import "sort"

// Projection is the computed future state of a planet after every
// currently-known incoming fleet has resolved. It says nothing about any
// fixed future turn; the timestamp is "when the last fleet lands".
type Projection struct {
	Owner Faction
	Ships int
}

// Project replays every fleet bound for target, earliest arrival first, and
// returns the planet's owner and garrison at the moment the last fleet
// resolves. Owned planets grow one ship per turn between events; neutral
// planets do not grow. A planet with no incoming fleets projects to its
// current state.
func Project(target Planet, s *Snapshot) Projection {
	var incoming []Fleet
	for _, f := range s.Fleets {
		if f.Destination == target.Name {
			incoming = append(incoming, f)
		}
	}
	// Stable: simultaneous arrivals resolve in input order.
	sort.SliceStable(incoming, func(i, j int) bool {
		return incoming[i].TurnsRemaining < incoming[j].TurnsRemaining
	})

	acc := Projection{Owner: target.Owner, Ships: target.Ships}
	lastTime := 0
	for _, f := range incoming {
		acc = arrive(grow(acc, f.TurnsRemaining-lastTime), f)
		lastTime = f.TurnsRemaining
	}
	return acc
}

// ProjectName looks up the named planet and projects it.
func ProjectName(name string, s *Snapshot) (Projection, error) {
	p, err := s.Planet(name)
	if err != nil {
		return Projection{}, err
	}
	return Project(*p, s), nil
}

// grow advances an owned garrison by one ship per elapsed turn.
func grow(p Projection, turns int) Projection {
	if !p.Owner.IsNeutral() {
		p.Ships += turns
	}
	return p
}

// arrive resolves one fleet landing on the projected planet. A friendly
// fleet reinforces; a hostile fleet either captures with its surplus,
// annihilates both sides back to neutral, or is absorbed by the garrison.
// The garrison stays non-negative in every branch.
func arrive(p Projection, f Fleet) Projection {
	if f.Owner == p.Owner {
		p.Ships += f.Ships
		return p
	}
	switch {
	case p.Ships < f.Ships:
		return Projection{Owner: f.Owner, Ships: f.Ships - p.Ships}
	case p.Ships == f.Ships:
		return Projection{Owner: Neutral, Ships: 0}
	default:
		p.Ships -= f.Ships
		return p
	}
}
