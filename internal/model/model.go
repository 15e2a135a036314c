package model

import "github.com/freeeve/mutual-annihilation/pkg/conquest"

// Planet is the wire representation of one planet. A null or absent owner
// means the planet is neutral; the implicit-zero convention lives only at
// this boundary.
type Planet struct {
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Owner     *int    `json:"owner"`
	ShipCount int     `json:"ship_count"`
}

// Expedition is an in-flight fleet between two planets.
type Expedition struct {
	ID             int    `json:"id"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	TurnsRemaining int    `json:"turns_remaining"`
	Owner          int    `json:"owner"`
	ShipCount      int    `json:"ship_count"`
}

// GameState is one full turn snapshot as sent by the game server.
type GameState struct {
	Planets     []Planet     `json:"planets"`
	Expeditions []Expedition `json:"expeditions"`
}

// Move orders ships from one planet to another.
type Move struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	ShipCount   int    `json:"ship_count"`
}

// Turn is the bot's answer for one game state.
type Turn struct {
	Moves []Move `json:"moves"`
}

// Snapshot converts the wire state into the decision core's snapshot type.
func (gs *GameState) Snapshot() *conquest.Snapshot {
	s := &conquest.Snapshot{
		Planets: make([]conquest.Planet, len(gs.Planets)),
		Fleets:  make([]conquest.Fleet, len(gs.Expeditions)),
	}
	for i, p := range gs.Planets {
		owner := conquest.Neutral
		if p.Owner != nil {
			owner = conquest.Faction(*p.Owner)
		}
		s.Planets[i] = conquest.Planet{
			Name:  p.Name,
			X:     p.X,
			Y:     p.Y,
			Owner: owner,
			Ships: p.ShipCount,
		}
	}
	for i, e := range gs.Expeditions {
		s.Fleets[i] = conquest.Fleet{
			ID:             e.ID,
			Origin:         e.Origin,
			Destination:    e.Destination,
			TurnsRemaining: e.TurnsRemaining,
			Owner:          conquest.Faction(e.Owner),
			Ships:          e.ShipCount,
		}
	}
	return s
}

// TurnFromMoves wraps core moves in a wire turn. Moves is always non-nil so
// an empty turn serializes as [] rather than null.
func TurnFromMoves(moves []conquest.Move) Turn {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		out = append(out, Move{
			Origin:      m.Origin,
			Destination: m.Destination,
			ShipCount:   m.Ships,
		})
	}
	return Turn{Moves: out}
}
