package laser

import "strconv"

// RequirementKind classifies what a player needs to pass a connection.
type RequirementKind uint8

const (
	Open RequirementKind = iota
	AccessLevel
	LaserLocked
)

// String returns the requirement kind name.
func (k RequirementKind) String() string {
	switch k {
	case Open:
		return "Open"
	case AccessLevel:
		return "AccessLevel"
	case LaserLocked:
		return "LaserLocked"
	default:
		return "Unknown"
	}
}

// Requirement is the unlock requirement of a connection.
type Requirement struct {
	Kind  RequirementKind
	Level int // meaningful for AccessLevel and LaserLocked
}

// RequirementFromCode decodes the authoring encoding: 0 is open, a positive
// value is an access level and a negative value a laser-locked access level.
func RequirementFromCode(code int) Requirement {
	switch {
	case code > 0:
		return Requirement{Kind: AccessLevel, Level: code}
	case code < 0:
		return Requirement{Kind: LaserLocked, Level: -code}
	}
	return Requirement{Kind: Open}
}

// Code returns the authoring encoding of the requirement.
func (r Requirement) Code() int {
	switch r.Kind {
	case AccessLevel:
		return r.Level
	case LaserLocked:
		return -r.Level
	}
	return 0
}

// Satisfied reports whether a player with the given access level may pass.
func (r Requirement) Satisfied(level int) bool {
	switch r.Kind {
	case Open:
		return true
	case AccessLevel:
		return level >= r.Level
	}
	return false
}

func (r Requirement) String() string {
	switch r.Kind {
	case Open:
		return "Open"
	case AccessLevel:
		return "AccessLevel(" + strconv.Itoa(r.Level) + ")"
	case LaserLocked:
		return "LaserLocked(" + strconv.Itoa(r.Level) + ")"
	}
	return "Unknown"
}

// Connection is a declared, conditionally passable link to another room.
type Connection struct {
	Target      string
	Requirement Requirement
	Door        Coord
	// Secondary connections are gated by a weak receiver and relock
	// whenever the beam stops reaching it.
	Secondary bool
}

// ConnectionTable holds the connections of one room in declaration order.
// Declaration order is the iteration order everywhere.
type ConnectionTable struct {
	conns []Connection
	index map[string]int
}

// NewConnectionTable builds a table, rejecting duplicate targets.
func NewConnectionTable(conns []Connection) (*ConnectionTable, error) {
	t := &ConnectionTable{
		conns: make([]Connection, 0, len(conns)),
		index: make(map[string]int, len(conns)),
	}
	for _, c := range conns {
		if c.Target == "" {
			return nil, invalid("EMPTY_TARGET", "connection at %s has no target room", c.Door)
		}
		if _, dup := t.index[c.Target]; dup {
			return nil, invalid("DUPLICATE_CONNECTION", "room %q is connected twice", c.Target)
		}
		t.index[c.Target] = len(t.conns)
		t.conns = append(t.conns, c)
	}
	return t, nil
}

// Len returns the number of connections.
func (t *ConnectionTable) Len() int {
	return len(t.conns)
}

// All returns a copy of the connections in declaration order.
func (t *ConnectionTable) All() []Connection {
	out := make([]Connection, len(t.conns))
	copy(out, t.conns)
	return out
}

// Get returns the connection leading to target.
func (t *ConnectionTable) Get(target string) (Connection, bool) {
	i, ok := t.index[target]
	if !ok {
		return Connection{}, false
	}
	return t.conns[i], true
}

// Passable reports whether a player with the given level may go to target.
func (t *ConnectionTable) Passable(target string, level int) bool {
	c, ok := t.Get(target)
	return ok && c.Requirement.Satisfied(level)
}

// Satisfied returns the connections the player may currently take.
func (t *ConnectionTable) Satisfied(level int) []Connection {
	var out []Connection
	for _, c := range t.conns {
		if c.Requirement.Satisfied(level) {
			out = append(out, c)
		}
	}
	return out
}

// DoorAt returns the connection whose door is at c.
func (t *ConnectionTable) DoorAt(c Coord) (Connection, bool) {
	for _, conn := range t.conns {
		if conn.Door == c {
			return conn, true
		}
	}
	return Connection{}, false
}

// unlock flips a laser-locked connection to its access level.
// It reports whether the requirement changed.
func (t *ConnectionTable) unlock(target string) bool {
	i, ok := t.index[target]
	if !ok || t.conns[i].Requirement.Kind != LaserLocked {
		return false
	}
	t.conns[i].Requirement.Kind = AccessLevel
	return true
}

// relockSecondary puts every secondary connection back to LaserLocked.
func (t *ConnectionTable) relockSecondary() {
	for i := range t.conns {
		if t.conns[i].Secondary && t.conns[i].Requirement.Kind != Open {
			t.conns[i].Requirement.Kind = LaserLocked
		}
	}
}
