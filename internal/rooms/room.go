// Package rooms instantiates rooms from their definitions and links them
// into a graph the player moves through.
package rooms

import (
	"errors"
	"fmt"
	"maps"

	"github.com/vovakirdan/laserpunk/internal/laser"
)

var (
	ErrSessionOver     = errors.New("rooms: session over")
	ErrUnknownRoom     = errors.New("rooms: unknown room")
	ErrNoConnection    = errors.New("rooms: no passable connection")
	ErrControlsLocked  = errors.New("rooms: controls locked")
	ErrNotInteractable = errors.New("rooms: nothing to interact with")
)

// Definition is the static description of a room.
type Definition struct {
	ID          string
	Name        string
	Grid        *laser.Grid // template, cloned for every instance
	Source      *laser.Beam // nil for rooms without a laser
	Start       *laser.Coord
	Connections []laser.Connection
	Lockers     map[laser.Coord][]string
	GlassBoxes  map[laser.Coord]string
	OnEnter     string // on-enter script source
	Terminal    bool   // entering ends the session
}

// Build creates a fresh room instance and runs its first trace.
func (d *Definition) Build() (*Room, error) {
	if d.Grid == nil {
		return nil, fmt.Errorf("room %s: no grid", d.ID)
	}
	conns, err := laser.NewConnectionTable(d.Connections)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", d.ID, err)
	}
	grid := d.Grid.Clone()

	var src *laser.Beam
	if d.Source != nil {
		s := *d.Source
		src = &s
	}
	reg, err := laser.BuildRegistry(grid, laser.Setup{
		Source:      src,
		Connections: conns,
		Lockers:     maps.Clone(d.Lockers),
		GlassBoxes:  maps.Clone(d.GlassBoxes),
	})
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", d.ID, err)
	}

	r := &Room{
		def:    d,
		tracer: laser.NewTracer(grid, reg, conns, src),
	}
	r.Retrace()
	return r, nil
}

// Validate builds a throwaway instance to surface configuration errors.
func (d *Definition) Validate() error {
	_, err := d.Build()
	return err
}

// Room is a live room instance. It is not safe for concurrent use.
type Room struct {
	def       *Definition
	tracer    *laser.Tracer
	trace     laser.Trace
	solved    bool
	locked    bool
	visits    int
	observers []func(laser.Event)
}

// ID returns the room identifier.
func (r *Room) ID() string { return r.def.ID }

// Name returns the display name, falling back to the ID.
func (r *Room) Name() string {
	if r.def.Name != "" {
		return r.def.Name
	}
	return r.def.ID
}

// Definition returns the static data the room was built from.
func (r *Room) Definition() *Definition { return r.def }

// Grid returns the live grid.
func (r *Room) Grid() *laser.Grid { return r.tracer.Grid() }

// Registry returns the room's reactive objects.
func (r *Room) Registry() *laser.Registry { return r.tracer.Registry() }

// Connections returns the room's connection table.
func (r *Room) Connections() *laser.ConnectionTable { return r.tracer.Connections() }

// Trace returns the most recent beam trace.
func (r *Room) Trace() laser.Trace { return r.trace }

// IsLit reports whether the beam currently crosses c.
func (r *Room) IsLit(c laser.Coord) bool { return r.trace.IsLit(c) }

// Solved reports whether a regular receiver is currently lit.
func (r *Room) Solved() bool { return r.solved }

// ControlsLocked reports whether redirectors and blockers refuse input.
func (r *Room) ControlsLocked() bool { return r.locked }

// ReleaseControls lets the player rotate and toggle objects again.
func (r *Room) ReleaseControls() { r.locked = false }

// Visits returns how many times the room has been entered.
func (r *Room) Visits() int { return r.visits }

// Subscribe registers fn to receive every event of later traces.
func (r *Room) Subscribe(fn func(laser.Event)) {
	r.observers = append(r.observers, fn)
}

// Retrace recomputes the beam and notifies observers.
// Reaching a regular receiver locks the room's controls.
func (r *Room) Retrace() laser.Trace {
	r.trace = r.tracer.Retrace()
	if r.trace.Solved && !r.solved {
		r.locked = true
	}
	r.solved = r.trace.Solved
	for _, e := range r.trace.Events {
		for _, fn := range r.observers {
			fn(e)
		}
	}
	return r.trace
}

// Rotate turns the redirector at c and retraces.
func (r *Room) Rotate(c laser.Coord, left bool) (laser.Trace, error) {
	if r.locked {
		return r.trace, ErrControlsLocked
	}
	if !r.tracer.Rotate(c, left) {
		return r.trace, fmt.Errorf("rotate %v: %w", c, ErrNotInteractable)
	}
	return r.Retrace(), nil
}

// Toggle switches the blocker at c and retraces.
func (r *Room) Toggle(c laser.Coord) (laser.Trace, error) {
	if r.locked {
		return r.trace, ErrControlsLocked
	}
	if !r.tracer.Toggle(c) {
		return r.trace, fmt.Errorf("toggle %v: %w", c, ErrNotInteractable)
	}
	return r.Retrace(), nil
}

// SpawnPoint returns the floor tile in front of the door that leads to
// from. It is where a player arriving from that room appears.
func (r *Room) SpawnPoint(from string) (laser.Coord, bool) {
	conn, ok := r.Connections().Get(from)
	if !ok {
		return laser.Coord{}, false
	}
	d, ok := r.Grid().FloorNeighbor(conn.Door)
	if !ok {
		return laser.Coord{}, false
	}
	return conn.Door.Step(d), true
}

// StartPoint returns where a player starting the session in this room
// appears: the declared start tile, else the first floor tile.
func (r *Room) StartPoint() (laser.Coord, bool) {
	if r.def.Start != nil {
		return *r.def.Start, true
	}
	floors := r.Grid().Find(laser.Floor)
	if len(floors) == 0 {
		return laser.Coord{}, false
	}
	return floors[0], true
}

// Automata returns the automaton spawn tiles.
func (r *Room) Automata() []laser.Coord {
	return r.def.Grid.Find(laser.Automaton)
}
