package laser

import "github.com/zyedidia/generic/mapset"

// Tracer routes a room's beam through its grid. A Tracer is not safe for
// concurrent use.
type Tracer struct {
	grid   *Grid
	reg    *Registry
	conns  *ConnectionTable
	source *Beam
	last   Trace
}

// NewTracer creates a tracer for one room. source may be nil for rooms
// without a laser, in which case every trace is empty.
func NewTracer(g *Grid, reg *Registry, conns *ConnectionTable, source *Beam) *Tracer {
	if conns == nil {
		conns, _ = NewConnectionTable(nil)
	}
	return &Tracer{
		grid:   g,
		reg:    reg,
		conns:  conns,
		source: source,
		last:   Trace{Lit: mapset.New[Coord]()},
	}
}

// Last returns the result of the most recent Retrace.
func (t *Tracer) Last() Trace {
	return t.last
}

// Retrace resets every beam-derived state and walks the beam again from the
// source. The returned trace fully replaces the previous one. Its events
// describe what changed since the previous trace.
func (t *Tracer) Retrace() Trace {
	beforeLit := t.reg.litStates()
	beforeConns := t.conns.All()

	t.reg.ResetAll(t.conns)

	run := &traceRun{
		grid:  t.grid,
		reg:   t.reg,
		conns: t.conns,
		seen:  mapset.New[beamState](),
		lit:   mapset.New[Coord](),
	}
	var segs []Segment
	if t.source != nil {
		segs = run.walk(t.source.At, t.source.Dir)
	}

	t.last = Trace{
		Segments: segs,
		Lit:      run.lit,
		Visits:   run.visits,
		Solved:   run.solved,
		Events:   t.diff(beforeLit, beforeConns),
	}
	return t.last
}

// diff compares object and connection state against the pre-trace snapshot.
func (t *Tracer) diff(beforeLit []bool, beforeConns []Connection) []Event {
	var events []Event
	for i, c := range t.conns.conns {
		was, now := beforeConns[i].Requirement.Kind, c.Requirement.Kind
		switch {
		case was == LaserLocked && now == AccessLevel:
			events = append(events, Event{Kind: EventConnectionUnlocked, At: c.Door, Target: c.Target})
		case was == AccessLevel && now == LaserLocked:
			events = append(events, Event{Kind: EventConnectionLocked, At: c.Door, Target: c.Target})
		}
	}
	for i, obj := range t.reg.objects {
		lit := obj.Lit()
		if lit == beforeLit[i] {
			continue
		}
		events = append(events, Event{Kind: EventObjectChanged, At: obj.Position(), Lit: lit})
		if !lit {
			continue
		}
		switch obj.(type) {
		case *Receiver:
			events = append(events, Event{Kind: EventReceiverActivated, At: obj.Position()})
		case *GlassCase:
			events = append(events, Event{Kind: EventGlassBoxUnlocked, At: obj.Position()})
		}
	}
	return events
}

type beamState struct {
	At  Coord
	Dir Dir
}

// traceRun holds the scratch state of a single trace.
type traceRun struct {
	grid   *Grid
	reg    *Registry
	conns  *ConnectionTable
	seen   mapset.Set[beamState]
	lit    mapset.Set[Coord]
	visits int
	solved bool
}

// walk follows a beam leaving from in direction dir, through any number of
// redirections, and returns its segments followed by those of its branches.
func (r *traceRun) walk(from Coord, dir Dir) []Segment {
	var out []Segment
	for {
		seg, next := r.run(from, dir)
		out = append(out, seg)
		switch seg.End {
		case EndRedirect:
			from, dir = seg.To, next[0]
		case EndSplit:
			first := r.walk(seg.To, next[0])
			second := r.walk(seg.To, next[1])
			out = append(out, first...)
			return append(out, second...)
		default:
			return out
		}
	}
}

// run advances one straight run until something ends it.
func (r *traceRun) run(from Coord, dir Dir) (Segment, [2]Dir) {
	seg := Segment{From: from, Dir: dir}
	c := from
	for {
		c = c.Step(dir)
		seg.To = c

		k := r.grid.KindAt(c)
		if k == OutOfBounds {
			seg.End = EndBounds
			return seg, [2]Dir{}
		}
		st := beamState{At: c, Dir: dir}
		if r.seen.Has(st) {
			seg.End = EndLoop
			return seg, [2]Dir{}
		}
		r.seen.Put(st)
		r.visits++

		if k == Wall || k == Entrance {
			seg.End = EndWall
			return seg, [2]Dir{}
		}
		obj, ok := r.reg.ObjectAt(c)
		if !ok {
			r.lit.Put(c)
			seg.Length++
			continue
		}
		o := r.hit(obj, dir)
		if o.pass {
			if o.light {
				r.lit.Put(c)
				seg.Length++
			}
			continue
		}
		seg.End = o.end
		return seg, o.next
	}
}

type outcome struct {
	end   EndKind
	next  [2]Dir
	pass  bool // the beam carries on in the same direction
	light bool // the tile is lit while passing
}

// hit applies the effect of the beam entering obj while travelling in.
func (r *traceRun) hit(obj Object, in Dir) outcome {
	switch o := obj.(type) {
	case *Redirector:
		out, ok := Redirect(o.Orientation, in)
		if !ok {
			return outcome{end: EndStub}
		}
		r.reg.Activate(o.Pos)
		return outcome{end: EndRedirect, next: [2]Dir{out}}

	case *Blocker:
		if !Opposes(o.Facing, in) {
			return outcome{end: EndStub}
		}
		if o.Active {
			r.reg.Activate(o.Pos)
			return outcome{end: EndBlocked}
		}
		return outcome{pass: true, light: true}

	case *Splitter:
		pair, ok := Split(o.Facing, in)
		if !ok {
			return outcome{end: EndStub}
		}
		r.reg.Activate(o.Pos)
		return outcome{end: EndSplit, next: pair}

	case *Receiver:
		if o.Source {
			return outcome{end: EndReceiver}
		}
		r.reg.Activate(o.Pos)
		r.conns.unlock(o.Connection)
		if !o.Weak {
			r.reg.ForceActivateRedirectors()
			r.solved = true
		}
		return outcome{end: EndReceiver}

	case *GlassCase:
		r.reg.Activate(o.Pos)
		return outcome{end: EndStub}

	case *Locker:
		return outcome{pass: true, light: true}
	}
	return outcome{end: EndStub}
}

// Grid returns the grid the tracer walks.
func (t *Tracer) Grid() *Grid { return t.grid }

// Registry returns the objects the tracer drives.
func (t *Tracer) Registry() *Registry { return t.reg }

// Connections returns the connection table the tracer unlocks.
func (t *Tracer) Connections() *ConnectionTable { return t.conns }

// Source returns the beam origin, nil for rooms without a laser.
func (t *Tracer) Source() *Beam { return t.source }

// Rotate turns the redirector at c one step and mirrors the new orientation
// into the grid. It does not retrace.
func (t *Tracer) Rotate(c Coord, left bool) bool {
	obj, ok := t.reg.ObjectAt(c)
	if !ok {
		return false
	}
	rd, ok := obj.(*Redirector)
	if !ok {
		return false
	}
	rd.Rotate(left)
	t.grid.setRotation(c, rd.Orientation)
	return true
}

// Toggle flips the blocker at c. It does not retrace.
func (t *Tracer) Toggle(c Coord) bool {
	obj, ok := t.reg.ObjectAt(c)
	if !ok {
		return false
	}
	b, ok := obj.(*Blocker)
	if !ok {
		return false
	}
	b.Toggle()
	return true
}
