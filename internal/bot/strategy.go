package bot

import (
	"github.com/rs/zerolog/log"

	"github.com/freeeve/mutual-annihilation/internal/model"
	"github.com/freeeve/mutual-annihilation/pkg/conquest"
)

// Strategy produces one turn of moves for a game state.
type Strategy interface {
	Name() string
	NextTurn(gs *model.GameState) (model.Turn, error)
}

// StrategyForName returns the strategy with the given name. Unrecognized
// names fall back to greedy so a game can proceed.
func StrategyForName(name string) Strategy {
	switch name {
	case "hold":
		return HoldStrategy{}
	case "rush":
		return RushStrategy{}
	case "greedy", "":
		return GreedyStrategy{}
	default:
		log.Warn().Str("strategy", name).Msg("Unknown strategy, falling back to greedy")
		return GreedyStrategy{}
	}
}

// --- HoldStrategy ---

// HoldStrategy never launches anything. Useful as a test opponent and for
// protocol debugging.
type HoldStrategy struct{}

func (HoldStrategy) Name() string { return "hold" }

func (HoldStrategy) NextTurn(_ *model.GameState) (model.Turn, error) {
	return model.Turn{Moves: []model.Move{}}, nil
}

// --- RushStrategy ---

// RushStrategy throws all-but-one ships from our strongest planet at the
// strongest planet we don't hold. No projection, no cost ranking; a
// baseline to measure the greedy planner against.
type RushStrategy struct{}

func (RushStrategy) Name() string { return "rush" }

func (RushStrategy) NextTurn(gs *model.GameState) (model.Turn, error) {
	var src, dst *model.Planet
	for i := range gs.Planets {
		p := &gs.Planets[i]
		ours := p.Owner != nil && *p.Owner == int(conquest.Self)
		if ours {
			if src == nil || p.ShipCount > src.ShipCount {
				src = p
			}
		} else {
			if dst == nil || p.ShipCount > dst.ShipCount {
				dst = p
			}
		}
	}
	if src == nil || dst == nil || src.ShipCount < 2 {
		return model.Turn{Moves: []model.Move{}}, nil
	}
	return model.Turn{Moves: []model.Move{{
		Origin:      src.Name,
		Destination: dst.Name,
		ShipCount:   src.ShipCount - 1,
	}}}, nil
}

// --- GreedyStrategy ---

// GreedyStrategy runs the conquest planner: project every target's state at
// last fleet arrival, then greedily commit the cheapest profitable capture
// moves.
type GreedyStrategy struct{}

func (GreedyStrategy) Name() string { return "greedy" }

func (GreedyStrategy) NextTurn(gs *model.GameState) (model.Turn, error) {
	moves, err := conquest.Plan(gs.Snapshot())
	if err != nil {
		return model.Turn{}, err
	}
	return model.TurnFromMoves(moves), nil
}
