package rooms

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/laserpunk/internal/laser"
)

// Catalog supplies room definitions by ID.
type Catalog interface {
	Definition(id string) (*Definition, error)
	IDs() []string
}

// EnterHook runs whenever the player enters a room. first is true on the
// room's first visit.
type EnterHook interface {
	OnEnter(ctx context.Context, room *Room, from string, first bool) error
}

// EnterHookFunc adapts a function to EnterHook.
type EnterHookFunc func(ctx context.Context, room *Room, from string, first bool) error

func (f EnterHookFunc) OnEnter(ctx context.Context, room *Room, from string, first bool) error {
	return f(ctx, room, from, first)
}

// Graph owns every room instance of a session. Rooms are built on first
// entry and cached afterwards.
type Graph struct {
	catalog Catalog
	rooms   map[string]*Room
	visited mapset.Set[string]
	current *Room
	hooks   []EnterHook
	logger  *log.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for room lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) { g.logger = l }
}

// WithHook appends an enter hook. Hooks run in registration order.
func WithHook(h EnterHook) Option {
	return func(g *Graph) { g.hooks = append(g.hooks, h) }
}

// NewGraph creates an empty graph over catalog.
func NewGraph(catalog Catalog, opts ...Option) *Graph {
	g := &Graph{
		catalog: catalog,
		rooms:   make(map[string]*Room),
		visited: mapset.New[string](),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Current returns the room the player is in, or nil before the first Enter.
func (g *Graph) Current() *Room {
	return g.current
}

// Visited reports whether the room has been entered this session.
func (g *Graph) Visited(id string) bool {
	return g.visited.Has(id)
}

// Room returns a cached room instance.
func (g *Graph) Room(id string) (*Room, bool) {
	r, ok := g.rooms[id]
	return r, ok
}

// Enter makes roomID the current room, building it on first visit, and runs
// the enter hooks. Entering a terminal room returns ErrSessionOver.
func (g *Graph) Enter(ctx context.Context, roomID, from string) (*Room, error) {
	room, ok := g.rooms[roomID]
	first := !ok
	if !ok {
		def, err := g.catalog.Definition(roomID)
		if err != nil {
			return nil, fmt.Errorf("enter %s: %w", roomID, err)
		}
		if def.Terminal {
			g.logger.Info("session over", "room", roomID, "from", from)
			return nil, ErrSessionOver
		}
		room, err = def.Build()
		if err != nil {
			return nil, fmt.Errorf("enter %s: %w", roomID, err)
		}
		g.rooms[roomID] = room
		g.logger.Debug("room built", "room", roomID, "objects", room.Registry().Len(),
			"segments", len(room.Trace().Segments))
	}

	room.visits++
	g.visited.Put(roomID)
	g.current = room
	g.logger.Debug("entered room", "room", roomID, "from", from, "visit", room.visits)

	for _, h := range g.hooks {
		if err := h.OnEnter(ctx, room, from, first); err != nil {
			return room, fmt.Errorf("enter %s: hook: %w", roomID, err)
		}
	}
	return room, nil
}

// Move leaves the current room through its connection to target.
// The connection must be passable at the given access level.
func (g *Graph) Move(ctx context.Context, target string, level int) (*Room, error) {
	if g.current == nil {
		return nil, fmt.Errorf("move to %s: %w", target, ErrNoConnection)
	}
	from := g.current.ID()
	if !g.current.Connections().Passable(target, level) {
		return nil, fmt.Errorf("move %s -> %s: %w", from, target, ErrNoConnection)
	}
	g.logger.Info("moving", "from", from, "to", target, "access", level)
	return g.Enter(ctx, target, from)
}

// Connections returns the neighbours of roomID the player may currently
// reach. Rooms not yet built report their declared connections.
func (g *Graph) Connections(roomID string, level int) ([]laser.Connection, error) {
	if room, ok := g.rooms[roomID]; ok {
		return room.Connections().Satisfied(level), nil
	}
	def, err := g.catalog.Definition(roomID)
	if err != nil {
		return nil, err
	}
	var out []laser.Connection
	for _, c := range def.Connections {
		if c.Requirement.Satisfied(level) {
			out = append(out, c)
		}
	}
	return out, nil
}
