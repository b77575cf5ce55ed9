package rooms_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/rooms"
)

// testCatalog returns a hub with an open door to a laser lab, which in turn
// has a laser-locked door to a vault and a door to the terminal room.
func testCatalog() rooms.MapCatalog {
	return rooms.MapCatalog{
		"hub": {
			ID:   "hub",
			Name: "Hub",
			Grid: laser.MustParseLayout(
				"#####",
				"#...D",
				"#####",
			),
			Connections: []laser.Connection{
				{Target: "lab", Requirement: laser.RequirementFromCode(0), Door: laser.C(4, 1)},
			},
		},
		"lab": {
			ID: "lab",
			Grid: laser.MustParseLayout(
				"###D##",
				"R..R.#",
				"D.F..#",
				"####D#",
			),
			Source: &laser.Beam{At: laser.C(0, 1), Dir: laser.DirRight},
			Connections: []laser.Connection{
				{Target: "hub", Requirement: laser.RequirementFromCode(0), Door: laser.C(0, 2)},
				{Target: "vault", Requirement: laser.RequirementFromCode(-2), Door: laser.C(3, 0)},
				{Target: "end", Requirement: laser.RequirementFromCode(1), Door: laser.C(4, 3)},
			},
		},
		"vault": {
			ID:   "vault",
			Grid: laser.MustParseLayout("#D#", "#.#", "###"),
			Connections: []laser.Connection{
				{Target: "lab", Requirement: laser.RequirementFromCode(0), Door: laser.C(1, 0)},
			},
		},
		"end": {ID: "end", Terminal: true},
	}
}

func TestEnterBuildsOnceAndCaches(t *testing.T) {
	ctx := context.Background()
	g := rooms.NewGraph(testCatalog())

	first, err := g.Enter(ctx, "lab", "")
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if g.Current() != first || !g.Visited("lab") {
		t.Error("lab should be current and visited")
	}
	if _, err := g.Enter(ctx, "hub", "lab"); err != nil {
		t.Fatal(err)
	}
	again, err := g.Enter(ctx, "lab", "hub")
	if err != nil {
		t.Fatal(err)
	}
	if again != first {
		t.Error("re-entering must reuse the cached instance")
	}
	if again.Visits() != 2 {
		t.Errorf("visits = %d, want 2", again.Visits())
	}
}

func TestEnterUnknownAndTerminal(t *testing.T) {
	ctx := context.Background()
	g := rooms.NewGraph(testCatalog())

	if _, err := g.Enter(ctx, "nowhere", ""); !errors.Is(err, rooms.ErrUnknownRoom) {
		t.Errorf("expected ErrUnknownRoom, got %v", err)
	}
	if _, err := g.Enter(ctx, "end", "lab"); !errors.Is(err, rooms.ErrSessionOver) {
		t.Errorf("expected ErrSessionOver, got %v", err)
	}
	if _, ok := g.Room("end"); ok {
		t.Error("terminal room must not be cached")
	}
}

func TestInitialTraceUnlocksAndLocksControls(t *testing.T) {
	g := rooms.NewGraph(testCatalog())
	lab, err := g.Enter(context.Background(), "lab", "")
	if err != nil {
		t.Fatal(err)
	}
	if !lab.Solved() {
		t.Fatalf("lab beam should reach the receiver: %v", lab.Trace().Segments)
	}
	if !lab.ControlsLocked() {
		t.Error("solving the room locks its controls")
	}
	if _, err := lab.Rotate(laser.C(2, 2), true); !errors.Is(err, rooms.ErrControlsLocked) {
		t.Errorf("expected ErrControlsLocked, got %v", err)
	}

	lab.ReleaseControls()
	if _, err := lab.Rotate(laser.C(1, 1), true); !errors.Is(err, rooms.ErrNotInteractable) {
		t.Errorf("rotating floor: expected ErrNotInteractable, got %v", err)
	}
	if _, err := lab.Rotate(laser.C(2, 2), true); err != nil {
		t.Errorf("rotate after release: %v", err)
	}
}

func TestMoveRequiresPassableConnection(t *testing.T) {
	ctx := context.Background()
	g := rooms.NewGraph(testCatalog())
	if _, err := g.Enter(ctx, "lab", ""); err != nil {
		t.Fatal(err)
	}

	if _, err := g.Move(ctx, "vault", 1); !errors.Is(err, rooms.ErrNoConnection) {
		t.Errorf("vault needs access 2, got %v", err)
	}
	vault, err := g.Move(ctx, "vault", 2)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if vault.ID() != "vault" || g.Current() != vault {
		t.Error("vault should be current")
	}
	if _, err := g.Move(ctx, "hub", 5); !errors.Is(err, rooms.ErrNoConnection) {
		t.Errorf("vault has no door to hub, got %v", err)
	}
}

func TestConnectionsFilteredByAccess(t *testing.T) {
	g := rooms.NewGraph(testCatalog())

	// Before the lab is built its declared vault door is still laser-locked.
	conns, err := g.Connections("lab", 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(conns) != 2 {
		t.Errorf("declared connections = %v, want hub and end", conns)
	}

	if _, err := g.Enter(context.Background(), "lab", ""); err != nil {
		t.Fatal(err)
	}
	conns, _ = g.Connections("lab", 0)
	if len(conns) != 1 || conns[0].Target != "hub" {
		t.Errorf("level 0 connections = %v, want only hub", conns)
	}
	conns, _ = g.Connections("lab", 2)
	if len(conns) != 3 {
		t.Errorf("level 2 connections = %v, want all three", conns)
	}
}

func TestEnterHooks(t *testing.T) {
	type call struct {
		room  string
		from  string
		first bool
	}
	var calls []call
	hook := rooms.EnterHookFunc(func(_ context.Context, r *rooms.Room, from string, first bool) error {
		calls = append(calls, call{r.ID(), from, first})
		return nil
	})

	ctx := context.Background()
	g := rooms.NewGraph(testCatalog(), rooms.WithHook(hook))
	g.Enter(ctx, "hub", "")
	g.Enter(ctx, "lab", "hub")
	g.Enter(ctx, "hub", "lab")

	want := []call{{"hub", "", true}, {"lab", "hub", true}, {"hub", "lab", false}}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d = %v, want %v", i, calls[i], want[i])
		}
	}

	failing := rooms.EnterHookFunc(func(context.Context, *rooms.Room, string, bool) error {
		return errors.New("boom")
	})
	g = rooms.NewGraph(testCatalog(), rooms.WithHook(failing))
	if _, err := g.Enter(ctx, "hub", ""); err == nil {
		t.Error("hook error should be returned")
	}
}

func TestSpawnPoint(t *testing.T) {
	g := rooms.NewGraph(testCatalog())
	lab, err := g.Enter(context.Background(), "lab", "hub")
	if err != nil {
		t.Fatal(err)
	}
	at, ok := lab.SpawnPoint("hub")
	if !ok || at != laser.C(1, 2) {
		t.Errorf("SpawnPoint(hub) = %v, %v; want (1,2)", at, ok)
	}
	if _, ok := lab.SpawnPoint("nowhere"); ok {
		t.Error("no spawn point for an unconnected room")
	}
}

func TestSubscribeReceivesEvents(t *testing.T) {
	g := rooms.NewGraph(testCatalog())
	lab, err := g.Enter(context.Background(), "lab", "")
	if err != nil {
		t.Fatal(err)
	}
	lab.ReleaseControls()

	var events []laser.Event
	lab.Subscribe(func(e laser.Event) { events = append(events, e) })

	// F at (2,2) is off the beam path: rotating it only changes its grid
	// kind, so the retrace reports nothing.
	if _, err := lab.Rotate(laser.C(2, 2), false); err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("unexpected events %v", events)
	}
}
