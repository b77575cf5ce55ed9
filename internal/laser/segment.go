package laser

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// EndKind records why a straight run of beam ended.
type EndKind uint8

const (
	EndBounds   EndKind = iota // left the grid
	EndWall                    // wall or door, no stub
	EndStub                    // struck an object from a side it ignores
	EndRedirect                // turned by a redirector
	EndSplit                   // replaced by two child runs
	EndReceiver                // absorbed by a receiver
	EndBlocked                 // stopped by an active blocker
	EndLoop                    // re-entered a tile in a direction already traced
)

// String returns the end kind name.
func (e EndKind) String() string {
	switch e {
	case EndBounds:
		return "Bounds"
	case EndWall:
		return "Wall"
	case EndStub:
		return "Stub"
	case EndRedirect:
		return "Redirect"
	case EndSplit:
		return "Split"
	case EndReceiver:
		return "Receiver"
	case EndBlocked:
		return "Blocked"
	case EndLoop:
		return "Loop"
	default:
		return "Unknown"
	}
}

// Segment is a straight run of beam. From is the emitting tile (the source,
// a redirector or a splitter) and To the tile the run ended on, which lies
// outside the grid for EndBounds. Length counts the tiles lit in between.
type Segment struct {
	From   Coord
	To     Coord
	Dir    Dir
	Length int
	End    EndKind
}

func (s Segment) String() string {
	return fmt.Sprintf("%s-%s %s len=%d end=%s", s.From, s.To, s.Dir, s.Length, s.End)
}

// EventKind classifies signals emitted by a trace.
type EventKind uint8

const (
	EventConnectionUnlocked EventKind = iota
	EventConnectionLocked
	EventReceiverActivated
	EventGlassBoxUnlocked
	EventObjectChanged
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventConnectionUnlocked:
		return "ConnectionUnlocked"
	case EventConnectionLocked:
		return "ConnectionLocked"
	case EventReceiverActivated:
		return "ReceiverActivated"
	case EventGlassBoxUnlocked:
		return "GlassBoxUnlocked"
	case EventObjectChanged:
		return "ObjectChanged"
	default:
		return "Unknown"
	}
}

// Event is a change caused by a trace, relative to the previous trace.
type Event struct {
	Kind   EventKind
	At     Coord  // object position, or door for connection events
	Target string // connection target for connection events
	Lit    bool   // new visual state for EventObjectChanged
}

// Trace is the result of one full beam computation.
type Trace struct {
	Segments []Segment
	Lit      mapset.Set[Coord]
	Events   []Event
	Visits   int  // in-bounds tile visits, at most 4*W*H
	Solved   bool // a regular receiver was reached
}

// IsLit reports whether the beam crosses tile c.
func (t *Trace) IsLit(c Coord) bool {
	return t.Lit.Has(c)
}

// Ended reports whether any run of the trace ended with kind.
func (t *Trace) Ended(kind EndKind) bool {
	for _, s := range t.Segments {
		if s.End == kind {
			return true
		}
	}
	return false
}
