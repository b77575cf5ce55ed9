package laser

// validate checks a freshly built registry against its room data.
// Checks:
//   - Beam source is an in-bounds receiver tile
//   - Every door is an in-bounds Entrance tile
//   - Contents tables only name object tiles
//   - Every laser-locked primary connection has exactly one adjacent
//     regular receiver owner, and no receiver owns two
//   - Weak receivers and secondary connections come in pairs
func validate(g *Grid, r *Registry, setup Setup) error {
	if err := validateSource(g, setup.Source); err != nil {
		return err
	}
	if err := validateDoors(g, setup.Connections); err != nil {
		return err
	}
	if err := validateContents(r, setup); err != nil {
		return err
	}
	if err := associateReceivers(r, setup.Connections); err != nil {
		return err
	}
	return associateWeakReceivers(r, setup.Connections)
}

func validateSource(g *Grid, src *Beam) error {
	if src == nil {
		return nil
	}
	if !g.InBounds(src.At) {
		return invalid("SOURCE_BOUNDS", "laser source %s is outside the %dx%d grid", src.At, g.W, g.H)
	}
	if k := g.KindAt(src.At); !k.IsReceiver() {
		return invalid("SOURCE_TILE", "laser source %s is on %s, want a receiver", src.At, k)
	}
	return nil
}

func validateDoors(g *Grid, conns *ConnectionTable) error {
	for _, c := range conns.conns {
		if !g.InBounds(c.Door) {
			return invalid("DOOR_BOUNDS", "door to %q at %s is outside the grid", c.Target, c.Door)
		}
		if k := g.KindAt(c.Door); k != Entrance {
			return invalid("DOOR_TILE", "door to %q at %s is on %s", c.Target, c.Door, k)
		}
	}
	return nil
}

func validateContents(r *Registry, setup Setup) error {
	for c := range setup.GlassBoxes {
		if _, ok := r.byPos[c].(*GlassCase); !ok {
			return invalid("STRAY_CONTENTS", "glass box item declared at %s but no glass box is there", c)
		}
	}
	for c := range setup.Lockers {
		l, ok := r.byPos[c].(*Locker)
		if !ok || l.Pos != c {
			return invalid("STRAY_CONTENTS", "locker items declared at %s but no locker starts there", c)
		}
	}
	return nil
}

// associateReceivers binds each regular receiver to the laser-locked primary
// connection whose door lies within one tile of it.
func associateReceivers(r *Registry, conns *ConnectionTable) error {
	owned := make(map[string]bool)
	for _, rc := range r.Receivers() {
		if rc.Weak || rc.Source {
			continue
		}
		var match []string
		for _, c := range conns.conns {
			if c.Secondary || c.Requirement.Kind != LaserLocked {
				continue
			}
			if c.Door.Chebyshev(rc.Pos) <= 1 {
				match = append(match, c.Target)
			}
		}
		switch len(match) {
		case 0:
			return invalid("ORPHAN_RECEIVER", "receiver at %s has no adjacent laser-locked door", rc.Pos)
		case 1:
			rc.Connection = match[0]
			owned[match[0]] = true
		default:
			return invalid("AMBIGUOUS_RECEIVER", "receiver at %s is adjacent to %d laser-locked doors %v",
				rc.Pos, len(match), match)
		}
	}
	for _, c := range conns.conns {
		if c.Secondary || c.Requirement.Kind != LaserLocked {
			continue
		}
		if !owned[c.Target] {
			return invalid("ORPHAN_CONNECTION", "laser-locked door to %q at %s has no adjacent receiver",
				c.Target, c.Door)
		}
	}
	return nil
}

// associateWeakReceivers binds every weak receiver to the first secondary
// connection in declaration order.
func associateWeakReceivers(r *Registry, conns *ConnectionTable) error {
	var secondary *Connection
	for i := range conns.conns {
		c := &conns.conns[i]
		if !c.Secondary {
			continue
		}
		if c.Requirement.Kind != LaserLocked {
			return invalid("SECONDARY_UNLOCKED", "secondary connection to %q must be laser-locked, got %s",
				c.Target, c.Requirement)
		}
		if secondary == nil {
			secondary = c
		}
	}

	weak := 0
	for _, rc := range r.Receivers() {
		if !rc.Weak || rc.Source {
			continue
		}
		if secondary == nil {
			return invalid("ORPHAN_RECEIVER", "weak receiver at %s has no secondary connection", rc.Pos)
		}
		rc.Connection = secondary.Target
		weak++
	}
	if secondary != nil && weak == 0 {
		return invalid("ORPHAN_CONNECTION", "secondary connection to %q has no weak receiver", secondary.Target)
	}
	return nil
}
