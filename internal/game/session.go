// Package game runs a single-player laserpunk session: the player walks
// through the room graph, turns redirectors and toggles blockers, and
// collects items and access levels on the way out.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/laserpunk/internal/core"
	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/rooms"
	"github.com/vovakirdan/laserpunk/internal/script"
)

// Points awarded for progress.
const (
	PointsReceiver     = 100
	PointsGlassBox     = 100
	PointsRewardLocker = 80
)

// KeyItem opens reward lockers. It drops once every automaton of a solved
// room is disabled.
const KeyItem = "key"

const (
	accessPrefix = "access-"
	maxMessages  = 6
)

// Options configures a session.
type Options struct {
	Catalog     rooms.Catalog
	StartRoom   string
	StartAccess int
	MaxHealth   int
	Logger      *log.Logger
}

// Session is one playthrough. It is not safe for concurrent use.
type Session struct {
	opts   Options
	logger *log.Logger
	graph  *rooms.Graph
	room   *rooms.Room

	player laser.Coord
	facing laser.Dir

	access    int
	inventory []string
	score     int
	health    int
	visited   int
	objective string
	messages  []string
	pending   []string
	over      bool
	won       bool

	disabled   map[string]mapset.Set[laser.Coord] // automata per room
	keyDropped mapset.Set[string]
	scored     mapset.Set[string]
}

// New creates a session and enters the start room.
func New(opts Options) (*Session, error) {
	if opts.Catalog == nil {
		return nil, errors.New("game: no room catalog")
	}
	if opts.MaxHealth <= 0 {
		opts.MaxHealth = 3
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Session{opts: opts, logger: opts.Logger}
	if err := s.Reset(core.DefaultConfig()); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the game identifier used for score storage.
func (s *Session) ID() string { return "laserpunk" }

// Title returns the display name.
func (s *Session) Title() string { return "Laserpunk" }

// Reset discards all progress and enters the start room again.
func (s *Session) Reset(core.RuntimeConfig) error {
	*s = Session{
		opts:       s.opts,
		logger:     s.opts.Logger,
		access:     s.opts.StartAccess,
		health:     s.opts.MaxHealth,
		facing:     laser.DirDown,
		disabled:   make(map[string]mapset.Set[laser.Coord]),
		keyDropped: mapset.New[string](),
		scored:     mapset.New[string](),
	}
	s.graph = rooms.NewGraph(s.opts.Catalog,
		rooms.WithLogger(s.logger),
		rooms.WithHook(rooms.EnterHookFunc(s.onEnter)),
		rooms.WithHook(script.NewHook(s, s.logger)),
	)

	room, err := s.graph.Enter(context.Background(), s.opts.StartRoom, "")
	if err != nil {
		return fmt.Errorf("game: start room %q: %w", s.opts.StartRoom, err)
	}
	start, ok := room.StartPoint()
	if !ok {
		return fmt.Errorf("game: start room %q has no floor", s.opts.StartRoom)
	}
	s.player = start
	return nil
}

// onEnter subscribes to a room's events the first time it is entered.
func (s *Session) onEnter(_ context.Context, room *rooms.Room, _ string, first bool) error {
	s.room = room
	if first {
		s.visited++
		room.Subscribe(s.onEvent)
		for _, e := range room.Trace().Events {
			s.onEvent(e)
		}
	}
	s.say("You enter %s.", room.Name())
	return nil
}

func (s *Session) onEvent(e laser.Event) {
	switch e.Kind {
	case laser.EventReceiverActivated:
		if s.award(e.At, PointsReceiver) {
			s.say("A receiver hums to life. +%d", PointsReceiver)
		}
	case laser.EventGlassBoxUnlocked:
		if s.award(e.At, PointsGlassBox) {
			s.say("A glass box shatters. +%d", PointsGlassBox)
		}
	case laser.EventConnectionUnlocked:
		s.say("The door to %s unlocks.", e.Target)
	case laser.EventConnectionLocked:
		s.say("The door to %s locks.", e.Target)
	}
}

// award adds points for the object at c once per session.
func (s *Session) award(c laser.Coord, points int) bool {
	key := s.room.ID() + "@" + c.String()
	if s.scored.Has(key) {
		return false
	}
	s.scored.Put(key)
	s.score += points
	return true
}

// SetObjective implements script.Effects.
func (s *Session) SetObjective(text string) {
	if text == s.objective {
		return
	}
	s.objective = text
	s.say("New objective: %s", text)
}

// Step applies one frame of input.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	s.pending = s.pending[:0]
	if !s.over {
		switch {
		case in.Has(core.ActionUp):
			s.move(laser.DirUp)
		case in.Has(core.ActionDown):
			s.move(laser.DirDown)
		case in.Has(core.ActionLeft):
			s.move(laser.DirLeft)
		case in.Has(core.ActionRight):
			s.move(laser.DirRight)
		case in.Has(core.ActionRotateLeft):
			s.rotate(true)
		case in.Has(core.ActionRotateRight):
			s.rotate(false)
		case in.Has(core.ActionInteract):
			s.interact()
		}
		s.checkKeyDrop()
	}
	return core.StepResult{
		State:    s.State(),
		Messages: slices.Clone(s.pending),
	}
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		Rooms:    s.visited,
		GameOver: s.over,
		Won:      s.won,
	}
}

func (s *Session) move(d laser.Dir) {
	s.facing = d
	target := s.player.Step(d)
	k := s.room.Grid().KindAt(target)
	switch {
	case k == laser.Entrance:
		s.useDoor(target)
	case s.automatonAt(target):
		s.say("An automaton blocks the way.")
	case k.IsFloor():
		s.player = target
		if s.room.IsLit(target) {
			s.hurt()
		}
	}
}

func (s *Session) useDoor(door laser.Coord) {
	conn, ok := s.room.Connections().DoorAt(door)
	if !ok {
		s.say("The door won't budge.")
		return
	}
	from := s.room.ID()
	room, err := s.graph.Move(context.Background(), conn.Target, s.access)
	switch {
	case errors.Is(err, rooms.ErrSessionOver):
		s.over, s.won = true, true
		s.say("You step through the door. To be continued...")
		return
	case errors.Is(err, rooms.ErrNoConnection):
		s.say("The door to %s needs %s.", conn.Target, describe(conn.Requirement))
		return
	case err != nil && room == nil:
		s.logger.Error("moving between rooms failed", "from", from, "to", conn.Target, "err", err)
		s.say("The door is jammed.")
		return
	case err != nil:
		s.logger.Warn("enter hook failed", "room", room.ID(), "err", err)
	}

	spawn, ok := room.SpawnPoint(from)
	if !ok {
		spawn, _ = room.StartPoint()
	}
	s.player = spawn
	if back, ok := room.Connections().Get(from); ok {
		if d, ok := room.Grid().FloorNeighbor(back.Door); ok {
			s.facing = d
		}
	}
}

func (s *Session) hurt() {
	s.health--
	if s.health <= 0 {
		s.health = 0
		s.over = true
		s.say("The beam burns through you.")
		return
	}
	s.say("The beam burns! Health %d/%d.", s.health, s.opts.MaxHealth)
}

func (s *Session) rotate(left bool) {
	target := s.faced()
	if obj, ok := s.room.Registry().ObjectAt(target); !ok || !obj.Kind().IsRedirector() {
		s.say("There is nothing to rotate.")
		return
	}
	if _, err := s.room.Rotate(target, left); err != nil {
		s.controlError(err)
	}
}

func (s *Session) interact() {
	target := s.faced()
	if s.automatonAt(target) {
		s.automata().Put(target)
		s.say("You disable the automaton.")
		return
	}
	obj, ok := s.room.Registry().ObjectAt(target)
	if !ok {
		s.say("Nothing here.")
		return
	}

	switch o := obj.(type) {
	case *laser.Redirector:
		s.rotate(false)
	case *laser.Blocker:
		if _, err := s.room.Toggle(target); err != nil {
			s.controlError(err)
			return
		}
		if o.Active {
			s.say("The blocker slides up.")
		} else {
			s.say("The blocker slides down.")
		}
	case *laser.Locker:
		s.openLocker(o)
	case *laser.GlassCase:
		item, ok := o.Take()
		switch {
		case ok:
			s.pickUp(item)
		case !o.Unlocked:
			s.say("The glass is too thick to break by hand.")
		default:
			s.say("The glass box is empty.")
		}
	case *laser.Receiver:
		if o.Source {
			s.say("The emitter glows.")
		} else if o.Activated {
			s.say("The receiver hums.")
		} else {
			s.say("The receiver is cold.")
		}
	case *laser.Splitter:
		s.say("The splitter is bolted to the floor.")
	}
}

func (s *Session) openLocker(l *laser.Locker) {
	if !l.Unlocked {
		i := slices.Index(s.inventory, KeyItem)
		if i < 0 {
			s.say("The locker is locked.")
			return
		}
		s.inventory = slices.Delete(s.inventory, i, i+1)
		l.Unlocked = true
		s.score += PointsRewardLocker
		s.say("The key turns. +%d", PointsRewardLocker)
	}
	items := l.Take()
	if len(items) == 0 {
		s.say("The locker is empty.")
		return
	}
	for _, item := range items {
		s.pickUp(item)
	}
}

func (s *Session) pickUp(item string) {
	s.inventory = append(s.inventory, item)
	s.say("Picked up %s.", item)
	if n, ok := accessLevel(item); ok && n > s.access {
		s.access = n
		s.say("Access level %d granted.", n)
	}
}

// checkKeyDrop releases a solved room's controls once its automata are
// all disabled, and drops a key.
func (s *Session) checkKeyDrop() {
	r := s.room
	if r == nil || !r.Solved() || s.keyDropped.Has(r.ID()) {
		return
	}
	autos := r.Automata()
	if len(autos) == 0 {
		return
	}
	disabled := s.automata()
	for _, a := range autos {
		if !disabled.Has(a) {
			return
		}
	}
	s.keyDropped.Put(r.ID())
	s.inventory = append(s.inventory, KeyItem)
	r.ReleaseControls()
	s.say("The last automaton drops a %s. The controls unlock.", KeyItem)
}

func (s *Session) controlError(err error) {
	switch {
	case errors.Is(err, rooms.ErrControlsLocked):
		s.say("The controls are locked.")
	case errors.Is(err, rooms.ErrNotInteractable):
		s.say("Nothing happens.")
	default:
		s.logger.Error("room control failed", "room", s.room.ID(), "err", err)
	}
}

func (s *Session) automata() mapset.Set[laser.Coord] {
	set, ok := s.disabled[s.room.ID()]
	if !ok {
		set = mapset.New[laser.Coord]()
		s.disabled[s.room.ID()] = set
	}
	return set
}

// automatonAt reports whether a live automaton stands on c.
func (s *Session) automatonAt(c laser.Coord) bool {
	return s.room.Grid().KindAt(c) == laser.Automaton && !s.automata().Has(c)
}

func (s *Session) faced() laser.Coord {
	return s.player.Step(s.facing)
}

func (s *Session) say(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.pending = append(s.pending, msg)
	s.messages = append(s.messages, msg)
	if len(s.messages) > maxMessages {
		s.messages = s.messages[len(s.messages)-maxMessages:]
	}
}

// accessLevel parses items named access-N.
func accessLevel(item string) (int, bool) {
	rest, ok := strings.CutPrefix(item, accessPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func describe(r laser.Requirement) string {
	switch r.Kind {
	case laser.AccessLevel:
		return "access level " + strconv.Itoa(r.Level)
	case laser.LaserLocked:
		return "the laser"
	}
	return "nothing"
}

// Room returns the current room.
func (s *Session) Room() *rooms.Room { return s.room }

// Player returns the player tile and facing.
func (s *Session) Player() (laser.Coord, laser.Dir) { return s.player, s.facing }

// Access returns the player's access level.
func (s *Session) Access() int { return s.access }

// Inventory returns the carried items in pickup order.
func (s *Session) Inventory() []string { return slices.Clone(s.inventory) }

// Health returns current and maximum health.
func (s *Session) Health() (int, int) { return s.health, s.opts.MaxHealth }

// Objective returns the current objective text.
func (s *Session) Objective() string { return s.objective }

// Messages returns the most recent messages, oldest first.
func (s *Session) Messages() []string { return slices.Clone(s.messages) }
