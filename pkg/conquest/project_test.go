package conquest

import (
	"errors"
	"testing"
)

func TestProject_NoIncomingFleets_Neutral(t *testing.T) {
	p := Planet{Name: "a", Owner: Neutral, Ships: 5}
	s := &Snapshot{Planets: []Planet{p}}

	proj := Project(p, s)
	if proj.Owner != Neutral || proj.Ships != 5 {
		t.Errorf("expected (Neutral, 5), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_NoIncomingFleets_Owned(t *testing.T) {
	// No fleets means no elapsed time; the garrison does not grow.
	p := Planet{Name: "a", Owner: 2, Ships: 7}
	s := &Snapshot{Planets: []Planet{p}}

	proj := Project(p, s)
	if proj.Owner != 2 || proj.Ships != 7 {
		t.Errorf("expected (2, 7), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_GrowthThenMutualAnnihilation(t *testing.T) {
	// Owned garrison of 3 grows to 5 over two turns, then meets a
	// hostile fleet of exactly 5: both sides are wiped out.
	p := Planet{Name: "a", Owner: Self, Ships: 3}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: 2, Ships: 1}},
		Fleets: []Fleet{
			{ID: 1, Origin: "b", Destination: "a", TurnsRemaining: 2, Owner: 2, Ships: 5},
		},
	}

	proj := Project(p, s)
	if proj.Owner != Neutral || proj.Ships != 0 {
		t.Errorf("expected (Neutral, 0), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_NeutralDoesNotGrow(t *testing.T) {
	p := Planet{Name: "a", Owner: Neutral, Ships: 5}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: 2, Ships: 1}},
		Fleets: []Fleet{
			{ID: 1, Origin: "b", Destination: "a", TurnsRemaining: 10, Owner: 2, Ships: 8},
		},
	}

	proj := Project(p, s)
	if proj.Owner != 2 || proj.Ships != 3 {
		t.Errorf("expected capture with surplus (2, 3), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_Reinforcement(t *testing.T) {
	p := Planet{Name: "a", Owner: Self, Ships: 3}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: Self, Ships: 1}},
		Fleets: []Fleet{
			{ID: 1, Origin: "b", Destination: "a", TurnsRemaining: 5, Owner: Self, Ships: 4},
		},
	}

	proj := Project(p, s)
	// 3 + 5 growth + 4 reinforcement
	if proj.Owner != Self || proj.Ships != 12 {
		t.Errorf("expected (Self, 12), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_DefenseAbsorbs(t *testing.T) {
	p := Planet{Name: "a", Owner: 2, Ships: 10}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: Self, Ships: 1}},
		Fleets: []Fleet{
			{ID: 1, Origin: "b", Destination: "a", TurnsRemaining: 2, Owner: Self, Ships: 4},
		},
	}

	proj := Project(p, s)
	// 10 + 2 growth - 4 attackers
	if proj.Owner != 2 || proj.Ships != 8 {
		t.Errorf("expected (2, 8), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_MultipleFleetsInArrivalOrder(t *testing.T) {
	// Fleets are listed out of arrival order; the replay must sort them.
	// t=1: enemy 5 captures the neutral 2 with surplus 3. The planet then
	// grows 3 turns under owner 2. t=4: our 6 annihilate the 6 defenders.
	p := Planet{Name: "a", Owner: Neutral, Ships: 2}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: 2, Ships: 1}, {Name: "c", Owner: Self, Ships: 1}},
		Fleets: []Fleet{
			{ID: 1, Origin: "c", Destination: "a", TurnsRemaining: 4, Owner: Self, Ships: 6},
			{ID: 2, Origin: "b", Destination: "a", TurnsRemaining: 1, Owner: 2, Ships: 5},
		},
	}

	proj := Project(p, s)
	if proj.Owner != Neutral || proj.Ships != 0 {
		t.Errorf("expected (Neutral, 0), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_SimultaneousArrivalsResolveInInputOrder(t *testing.T) {
	// Both fleets land on the same turn. Input order decides: faction 2
	// captures first, then faction 3 overruns the remnant. The reversed
	// order would end in mutual annihilation instead.
	p := Planet{Name: "a", Owner: Self, Ships: 1}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: 2, Ships: 1}, {Name: "c", Owner: 3, Ships: 1}},
		Fleets: []Fleet{
			{ID: 1, Origin: "b", Destination: "a", TurnsRemaining: 0, Owner: 2, Ships: 2},
			{ID: 2, Origin: "c", Destination: "a", TurnsRemaining: 0, Owner: 3, Ships: 3},
		},
	}

	proj := Project(p, s)
	if proj.Owner != 3 || proj.Ships != 2 {
		t.Errorf("expected (3, 2), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProject_GarrisonNeverNegative(t *testing.T) {
	p := Planet{Name: "a", Owner: Neutral, Ships: 0}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: 2, Ships: 1}},
		Fleets: []Fleet{
			{ID: 1, Origin: "b", Destination: "a", TurnsRemaining: 1, Owner: 2, Ships: 100},
			{ID: 2, Origin: "b", Destination: "a", TurnsRemaining: 2, Owner: 3, Ships: 100},
			{ID: 3, Origin: "b", Destination: "a", TurnsRemaining: 3, Owner: 2, Ships: 1},
		},
	}

	proj := Project(p, s)
	if proj.Ships < 0 {
		t.Errorf("projected garrison went negative: %d", proj.Ships)
	}
}

func TestProjectName(t *testing.T) {
	s := &Snapshot{Planets: []Planet{{Name: "a", Owner: 2, Ships: 4}}}

	proj, err := ProjectName("a", s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.Owner != 2 || proj.Ships != 4 {
		t.Errorf("expected (2, 4), got (%d, %d)", proj.Owner, proj.Ships)
	}
}

func TestProjectName_UnknownPlanet(t *testing.T) {
	s := &Snapshot{Planets: []Planet{{Name: "a"}}}

	_, err := ProjectName("nope", s)
	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot, got %v", err)
	}
}

func TestProject_DoesNotMutateSnapshot(t *testing.T) {
	p := Planet{Name: "a", Owner: Self, Ships: 3}
	s := &Snapshot{
		Planets: []Planet{p, {Name: "b", Owner: 2, Ships: 1}},
		Fleets: []Fleet{
			{ID: 2, Origin: "b", Destination: "a", TurnsRemaining: 3, Owner: 2, Ships: 9},
			{ID: 1, Origin: "b", Destination: "a", TurnsRemaining: 1, Owner: 2, Ships: 2},
		},
	}

	Project(p, s)
	if s.Planets[0].Ships != 3 || s.Fleets[0].ID != 2 || s.Fleets[1].ID != 1 {
		t.Error("Project mutated the snapshot")
	}
}
