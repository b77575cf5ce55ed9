package laser

// Orientation is the mirror shape of a redirector. The name lists the two
// directions the mirror sends a beam towards.
type Orientation uint8

const (
	UpLeft Orientation = iota
	DownLeft
	DownRight
	UpRight
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case UpLeft:
		return "UpLeft"
	case DownLeft:
		return "DownLeft"
	case DownRight:
		return "DownRight"
	case UpRight:
		return "UpRight"
	default:
		return "Unknown"
	}
}

// RotateLeft returns the next orientation, wrapping after UpRight.
func (o Orientation) RotateLeft() Orientation {
	return (o + 1) % 4
}

// RotateRight returns the previous orientation, wrapping before UpLeft.
func (o Orientation) RotateRight() Orientation {
	return (o + 3) % 4
}

// Kind returns the redirector tile kind for the orientation.
func (o Orientation) Kind() TileKind {
	return RedirectorUpLeft + TileKind(o%4)
}

// LockerVariant distinguishes the three locker colours.
type LockerVariant uint8

const (
	LockerVariantBlue LockerVariant = iota
	LockerVariantGreen
	LockerVariantReward
)

// LockerSlots is the number of item slots in a locker.
const LockerSlots = 4

// Object is a reactive object on the grid. The set of implementations is
// closed: Redirector, Blocker, Splitter, Receiver, GlassCase and Locker.
type Object interface {
	// Position returns the primary tile of the object.
	Position() Coord
	// Kind returns the tile kind the object currently presents.
	Kind() TileKind
	// Lit reports the beam-derived visual state: active, blocking,
	// activated or unlocked depending on the variant. Lockers ignore the
	// beam and always report false.
	Lit() bool

	sealed()
}

// Redirector is a rotatable one-sided mirror.
type Redirector struct {
	Pos         Coord
	Orientation Orientation
	Active      bool // set by the beam, cleared on every retrace
}

// Blocker stops a beam arriving against its face while the player has it
// switched on.
type Blocker struct {
	Pos      Coord
	Facing   Dir
	Active   bool // player state, survives retraces
	Blocking bool // set by the beam
}

// Splitter divides an incoming beam into two.
type Splitter struct {
	Pos    Coord
	Facing Dir
	Active bool // set by the beam, cleared on every retrace
}

// Receiver unlocks its connection when hit. The Source receiver emits the
// room's beam and has no connection.
type Receiver struct {
	Pos        Coord
	Weak       bool
	Source     bool
	Activated  bool
	Connection string // target room of the associated connection
}

// GlassCase is the object on a GlassBox tile. It holds an item and opens
// for good the first time the beam hits it.
type GlassCase struct {
	Pos      Coord
	Item     string
	Unlocked bool
	Taken    bool
}

// Locker stores up to four items. Only the reward locker starts locked.
type Locker struct {
	Pos      Coord
	Partner  Coord // second tile of the footprint, equal to Pos for 1x1 lockers
	Variant  LockerVariant
	Items    [LockerSlots]string
	Unlocked bool
}

func (r *Redirector) Position() Coord { return r.Pos }
func (b *Blocker) Position() Coord    { return b.Pos }
func (s *Splitter) Position() Coord   { return s.Pos }
func (r *Receiver) Position() Coord   { return r.Pos }
func (g *GlassCase) Position() Coord   { return g.Pos }
func (l *Locker) Position() Coord     { return l.Pos }

func (r *Redirector) Kind() TileKind { return r.Orientation.Kind() }
func (b *Blocker) Kind() TileKind    { return BlockerUp + TileKind(facingVariant(b.Facing)) }
func (s *Splitter) Kind() TileKind   { return SplitterUp + TileKind(facingVariant(s.Facing)) }
func (g *GlassCase) Kind() TileKind   { return GlassBox }
func (l *Locker) Kind() TileKind     { return LockerBlue + TileKind(l.Variant) }

func (r *Receiver) Kind() TileKind {
	if r.Weak {
		return ReceiverWeak
	}
	return ReceiverRegular
}

func (r *Redirector) Lit() bool { return r.Active }
func (b *Blocker) Lit() bool    { return b.Blocking }
func (s *Splitter) Lit() bool   { return s.Active }
func (r *Receiver) Lit() bool   { return r.Activated }
func (g *GlassCase) Lit() bool   { return g.Unlocked }
func (l *Locker) Lit() bool     { return false }

func (*Redirector) sealed() {}
func (*Blocker) sealed()    {}
func (*Splitter) sealed()   {}
func (*Receiver) sealed()   {}
func (*GlassCase) sealed()   {}
func (*Locker) sealed()     {}

// Rotate turns the redirector one step. left selects RotateLeft.
func (r *Redirector) Rotate(left bool) {
	if left {
		r.Orientation = r.Orientation.RotateLeft()
	} else {
		r.Orientation = r.Orientation.RotateRight()
	}
}

// Toggle flips the player-controlled state of the blocker.
func (b *Blocker) Toggle() {
	b.Active = !b.Active
}

// Take removes and returns the glass box item once the box is open.
func (g *GlassCase) Take() (string, bool) {
	if !g.Unlocked || g.Taken || g.Item == "" {
		return "", false
	}
	g.Taken = true
	return g.Item, true
}

// Take empties the locker and returns its items in slot order.
// A locked locker yields nothing.
func (l *Locker) Take() []string {
	if !l.Unlocked {
		return nil
	}
	var out []string
	for i, item := range l.Items {
		if item != "" {
			out = append(out, item)
			l.Items[i] = ""
		}
	}
	return out
}

// Empty reports whether every slot is empty.
func (l *Locker) Empty() bool {
	for _, item := range l.Items {
		if item != "" {
			return false
		}
	}
	return true
}

func facingVariant(d Dir) int {
	for i, f := range variantFacing {
		if f == d {
			return i
		}
	}
	return 0
}
