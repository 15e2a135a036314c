package conquest

import "math"

// Score evaluates sending a capture fleet from source to dest. It returns
// the minimum force that guarantees capture at arrival (one ship more than
// the projected defense) and the move's heuristic cost: ceil of the
// euclidean distance times the committed force, a proxy for ship-turns
// spent. ok is false when the pair is not profitable, either because the
// destination is already projected to end up ours or because the required
// force would strip the source bare.
func Score(source, dest Planet, s *Snapshot) (ships, cost int, ok bool) {
	return pairScore(source, dest, Project(dest, s))
}

func distance(a, b Planet) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Plan chooses this turn's moves: repeatedly commit the cheapest profitable
// (own planet, other planet) pair, retiring each source after its first
// move. Destinations stay eligible for further moves from other sources.
// Moves are returned in selection order. Plan fails only when the snapshot
// contains a fleet referencing an unknown planet.
func Plan(s *Snapshot) ([]Move, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var mine, others []Planet
	for _, p := range s.Planets {
		if p.Owner == Self {
			mine = append(mine, p)
		} else {
			others = append(others, p)
		}
	}
	if len(mine) == 0 || len(others) == 0 {
		return nil, nil
	}

	// Destination state cannot change within one cycle, so each projection
	// is computed once up front.
	projections := make([]Projection, len(others))
	for j := range others {
		projections[j] = Project(others[j], s)
	}

	used := make([]bool, len(mine))
	var moves []Move
	for {
		bestI, bestJ := -1, -1
		bestShips, bestCost := 0, 0
		for i := range mine {
			if used[i] {
				continue
			}
			for j := range others {
				ships, cost, ok := pairScore(mine[i], others[j], projections[j])
				if !ok {
					continue
				}
				// Strict comparison keeps the first-encountered pair on ties.
				if bestI == -1 || cost < bestCost {
					bestI, bestJ, bestShips, bestCost = i, j, ships, cost
				}
			}
		}
		if bestI == -1 {
			return moves, nil
		}
		used[bestI] = true
		moves = append(moves, Move{
			Origin:      mine[bestI].Name,
			Destination: others[bestJ].Name,
			Ships:       bestShips,
		})
	}
}

func pairScore(source, dest Planet, proj Projection) (ships, cost int, ok bool) {
	if proj.Owner == Self {
		return 0, 0, false
	}
	ships = proj.Ships + 1
	if ships >= source.Ships {
		return 0, 0, false
	}
	cost = int(math.Ceil(distance(source, dest))) * ships
	return ships, cost, true
}
