package laser

// Beam is a beam origin: the tile it leaves and its direction of travel.
type Beam struct {
	At  Coord
	Dir Dir
}

// Setup carries the per-room static data the registry is built from.
type Setup struct {
	// Source is the emitting receiver tile. Nil for rooms without a laser.
	Source      *Beam
	Connections *ConnectionTable
	// Lockers maps the primary (top-left) locker tile to its items.
	Lockers map[Coord][]string
	// GlassBoxes maps each glass box tile to its item.
	GlassBoxes map[Coord]string
}

// Registry maps grid coordinates to reactive objects and owns their state.
type Registry struct {
	byPos   map[Coord]Object
	objects []Object // unique objects in row-major order of their primary tile
}

// BuildRegistry creates an object for every reactive tile of g and
// validates the room. The returned error is a ValidationError.
func BuildRegistry(g *Grid, setup Setup) (*Registry, error) {
	if setup.Connections == nil {
		empty, _ := NewConnectionTable(nil)
		setup.Connections = empty
	}
	r := &Registry{byPos: make(map[Coord]Object)}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			if _, done := r.byPos[c]; done {
				continue
			}
			obj, err := newObject(g, c, setup)
			if err != nil {
				return nil, err
			}
			if obj != nil {
				r.add(obj)
			}
		}
	}

	if err := validate(g, r, setup); err != nil {
		return nil, err
	}
	return r, nil
}

func newObject(g *Grid, c Coord, setup Setup) (Object, error) {
	k := g.KindAt(c)
	switch {
	case k.IsRedirector():
		o, _ := k.Orientation()
		return &Redirector{Pos: c, Orientation: o}, nil
	case k.IsBlocker():
		f, _ := k.Facing()
		return &Blocker{Pos: c, Facing: f}, nil
	case k.IsSplitter():
		f, _ := k.Facing()
		return &Splitter{Pos: c, Facing: f}, nil
	case k.IsReceiver():
		src := setup.Source != nil && setup.Source.At == c
		return &Receiver{Pos: c, Weak: k == ReceiverWeak, Source: src}, nil
	case k == GlassBox:
		item, ok := setup.GlassBoxes[c]
		if !ok {
			return nil, invalid("MISSING_CONTENTS", "glass box at %s has no item entry", c)
		}
		return &GlassCase{Pos: c, Item: item}, nil
	case k.IsLocker():
		return newLocker(g, c, k, setup)
	}
	return nil, nil
}

// newLocker builds a locker whose primary tile is c. A locker covers c and
// optionally the same-kind tile to its right or below.
func newLocker(g *Grid, c Coord, k TileKind, setup Setup) (Object, error) {
	if g.KindAt(c.Step(DirLeft)) == k || g.KindAt(c.Step(DirUp)) == k {
		return nil, invalid("LOCKER_SHAPE", "locker tile %s is not part of a 1x1 or 1x2 locker", c)
	}
	l := &Locker{
		Pos:      c,
		Partner:  c,
		Variant:  LockerVariant(k - LockerBlue),
		Unlocked: k != LockerReward,
	}
	switch {
	case g.KindAt(c.Step(DirRight)) == k:
		l.Partner = c.Step(DirRight)
	case g.KindAt(c.Step(DirDown)) == k:
		l.Partner = c.Step(DirDown)
	}
	items, ok := setup.Lockers[c]
	if !ok {
		return nil, invalid("MISSING_CONTENTS", "locker at %s has no item entry", c)
	}
	if len(items) > LockerSlots {
		return nil, invalid("LOCKER_OVERFLOW", "locker at %s holds %d items, max %d", c, len(items), LockerSlots)
	}
	copy(l.Items[:], items)
	return l, nil
}

func (r *Registry) add(obj Object) {
	r.objects = append(r.objects, obj)
	r.byPos[obj.Position()] = obj
	if l, ok := obj.(*Locker); ok {
		r.byPos[l.Partner] = obj
	}
}

// ObjectAt returns the object covering c.
func (r *Registry) ObjectAt(c Coord) (Object, bool) {
	obj, ok := r.byPos[c]
	return obj, ok
}

// Objects returns every object once, ordered by primary tile.
func (r *Registry) Objects() []Object {
	out := make([]Object, len(r.objects))
	copy(out, r.objects)
	return out
}

// Len returns the number of objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Receivers returns every receiver in row-major order.
func (r *Registry) Receivers() []*Receiver {
	var out []*Receiver
	for _, obj := range r.objects {
		if rc, ok := obj.(*Receiver); ok {
			out = append(out, rc)
		}
	}
	return out
}

// ResetAll clears every beam-derived flag and relocks secondary connections.
// Blocker.Active, glass box and locker state are not beam-derived and are
// left alone.
func (r *Registry) ResetAll(conns *ConnectionTable) {
	for _, obj := range r.objects {
		switch o := obj.(type) {
		case *Redirector:
			o.Active = false
		case *Splitter:
			o.Active = false
		case *Blocker:
			o.Blocking = false
		case *Receiver:
			o.Activated = false
		}
	}
	if conns != nil {
		conns.relockSecondary()
	}
}

// Activate applies the beam transition of the object at c.
// It reports whether an object was found.
func (r *Registry) Activate(c Coord) bool {
	obj, ok := r.byPos[c]
	if !ok {
		return false
	}
	switch o := obj.(type) {
	case *Redirector:
		o.Active = true
	case *Splitter:
		o.Active = true
	case *Blocker:
		o.Blocking = true
	case *Receiver:
		o.Activated = true
	case *GlassCase:
		o.Unlocked = true
	case *Locker:
		// lockers ignore the beam
	}
	return true
}

// ForceActivateRedirectors lights every redirector and drops every blocker's
// blocking visual. This is the room-wide effect of a solved receiver.
func (r *Registry) ForceActivateRedirectors() {
	for _, obj := range r.objects {
		switch o := obj.(type) {
		case *Redirector:
			o.Active = true
		case *Blocker:
			o.Blocking = false
		}
	}
}

// litStates returns the visual state of every object in registry order.
func (r *Registry) litStates() []bool {
	out := make([]bool, len(r.objects))
	for i, obj := range r.objects {
		out[i] = obj.Lit()
	}
	return out
}
