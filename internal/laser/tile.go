package laser

// TileKind classifies one cell of a room grid.
type TileKind uint8

const (
	Void TileKind = iota
	Floor
	Entrance
	Wall
	RedirectorUpLeft
	RedirectorDownLeft
	RedirectorDownRight
	RedirectorUpRight
	ReceiverRegular
	ReceiverWeak
	BlockerUp
	BlockerLeft
	BlockerDown
	BlockerRight
	SplitterUp
	SplitterLeft
	SplitterDown
	SplitterRight
	LockerBlue
	LockerGreen
	LockerReward
	Automaton
	GlassBox

	// OutOfBounds is returned for coordinates outside the grid.
	// It is neither floor nor solid.
	OutOfBounds
)

var tileNames = [...]string{
	Void:                "Void",
	Floor:               "Floor",
	Entrance:            "Entrance",
	Wall:                "Wall",
	RedirectorUpLeft:    "RedirectorUpLeft",
	RedirectorDownLeft:  "RedirectorDownLeft",
	RedirectorDownRight: "RedirectorDownRight",
	RedirectorUpRight:   "RedirectorUpRight",
	ReceiverRegular:     "ReceiverRegular",
	ReceiverWeak:        "ReceiverWeak",
	BlockerUp:           "BlockerUp",
	BlockerLeft:         "BlockerLeft",
	BlockerDown:         "BlockerDown",
	BlockerRight:        "BlockerRight",
	SplitterUp:          "SplitterUp",
	SplitterLeft:        "SplitterLeft",
	SplitterDown:        "SplitterDown",
	SplitterRight:       "SplitterRight",
	LockerBlue:          "LockerBlue",
	LockerGreen:         "LockerGreen",
	LockerReward:        "LockerReward",
	Automaton:           "Automaton",
	GlassBox:            "GlassBox",
	OutOfBounds:         "OutOfBounds",
}

// tileCodes holds the level-authoring codes, where the fractional part
// selects the orientation or variant of a family.
var tileCodes = [...]string{
	Void:                "0",
	Floor:               "1",
	Entrance:            "2",
	Wall:                "3",
	RedirectorUpLeft:    "4.0",
	RedirectorDownLeft:  "4.1",
	RedirectorDownRight: "4.2",
	RedirectorUpRight:   "4.3",
	ReceiverRegular:     "5",
	ReceiverWeak:        "6",
	BlockerUp:           "7.0",
	BlockerLeft:         "7.1",
	BlockerDown:         "7.2",
	BlockerRight:        "7.3",
	SplitterUp:          "8.0",
	SplitterLeft:        "8.1",
	SplitterDown:        "8.2",
	SplitterRight:       "8.3",
	LockerBlue:          "9.0",
	LockerGreen:         "9.1",
	LockerReward:        "9.2",
	Automaton:           "10",
	GlassBox:            "11",
	OutOfBounds:         "-",
}

// String returns the kind name.
func (k TileKind) String() string {
	if int(k) < len(tileNames) {
		return tileNames[k]
	}
	return "Unknown"
}

// Code returns the level-authoring code of the kind, e.g. "4.2".
func (k TileKind) Code() string {
	if int(k) < len(tileCodes) {
		return tileCodes[k]
	}
	return "?"
}

// IsRedirector reports whether the kind is one of the four redirectors.
func (k TileKind) IsRedirector() bool {
	return k >= RedirectorUpLeft && k <= RedirectorUpRight
}

// IsReceiver reports whether the kind is a regular or weak receiver.
func (k TileKind) IsReceiver() bool {
	return k == ReceiverRegular || k == ReceiverWeak
}

// IsBlocker reports whether the kind is one of the four blockers.
func (k TileKind) IsBlocker() bool {
	return k >= BlockerUp && k <= BlockerRight
}

// IsSplitter reports whether the kind is one of the four splitters.
func (k TileKind) IsSplitter() bool {
	return k >= SplitterUp && k <= SplitterRight
}

// IsLocker reports whether the kind is one of the locker variants.
func (k TileKind) IsLocker() bool {
	return k >= LockerBlue && k <= LockerReward
}

// IsReactive reports whether a registry object lives on tiles of this kind.
func (k TileKind) IsReactive() bool {
	return k.IsRedirector() || k.IsReceiver() || k.IsBlocker() ||
		k.IsSplitter() || k.IsLocker() || k == GlassBox
}

// IsFloor reports whether the player can stand on the tile.
// Automatons spawn on floor, so their tile counts as floor.
func (k TileKind) IsFloor() bool {
	return k == Floor || k == Automaton
}

// IsSolid reports whether the tile blocks player movement.
func (k TileKind) IsSolid() bool {
	switch {
	case k == Entrance, k == Wall:
		return true
	case k.IsReactive():
		return true
	}
	return false
}

// variantFacing maps the fractional variant of a blocker or splitter to a direction.
// The authoring order is Up, Left, Down, Right.
var variantFacing = [4]Dir{DirUp, DirLeft, DirDown, DirRight}

// Facing returns the facing direction of a blocker or splitter kind.
func (k TileKind) Facing() (Dir, bool) {
	switch {
	case k.IsBlocker():
		return variantFacing[k-BlockerUp], true
	case k.IsSplitter():
		return variantFacing[k-SplitterUp], true
	}
	return DirUp, false
}

// Orientation returns the orientation of a redirector kind.
func (k TileKind) Orientation() (Orientation, bool) {
	if !k.IsRedirector() {
		return UpLeft, false
	}
	return Orientation(k - RedirectorUpLeft), true
}
