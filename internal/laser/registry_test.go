package laser_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/laserpunk/internal/laser"
)

func build(rows []string, src *laser.Beam, conns []laser.Connection, setup laser.Setup) error {
	table, err := laser.NewConnectionTable(conns)
	if err != nil {
		return err
	}
	setup.Source = src
	setup.Connections = table
	_, err = laser.BuildRegistry(laser.MustParseLayout(rows...), setup)
	return err
}

func TestBuildRegistryValidation(t *testing.T) {
	src := &laser.Beam{At: laser.C(0, 1), Dir: laser.DirRight}
	locked := func(target string, door laser.Coord) laser.Connection {
		return laser.Connection{Target: target, Requirement: laser.RequirementFromCode(-1), Door: door}
	}

	tests := []struct {
		name  string
		rows  []string
		src   *laser.Beam
		conns []laser.Connection
		setup laser.Setup
		code  string
	}{
		{
			name: "source off receiver",
			rows: []string{"###", "...", "###"},
			src:  src,
			code: "SOURCE_TILE",
		},
		{
			name: "source out of bounds",
			rows: []string{"###", "R..", "###"},
			src:  &laser.Beam{At: laser.C(9, 9)},
			code: "SOURCE_BOUNDS",
		},
		{
			name:  "door on wall",
			rows:  []string{"###", "R..", "###"},
			src:   src,
			conns: []laser.Connection{{Target: "x", Door: laser.C(1, 0)}},
			code:  "DOOR_TILE",
		},
		{
			name:  "door outside grid",
			rows:  []string{"###", "R..", "###"},
			src:   src,
			conns: []laser.Connection{{Target: "x", Door: laser.C(1, 7)}},
			code:  "DOOR_BOUNDS",
		},
		{
			name:  "locked door without receiver",
			rows:  []string{"#D#", "R..", "###"},
			src:   src,
			conns: []laser.Connection{locked("x", laser.C(1, 0))},
			code:  "ORPHAN_CONNECTION",
		},
		{
			name: "receiver without door",
			rows: []string{"###", "R.R", "###"},
			src:  src,
			code: "ORPHAN_RECEIVER",
		},
		{
			name:  "receiver between two locked doors",
			rows:  []string{"#D#", "R.R", "##D"},
			src:   src,
			conns: []laser.Connection{locked("x", laser.C(1, 0)), locked("y", laser.C(2, 2))},
			code:  "AMBIGUOUS_RECEIVER",
		},
		{
			name: "weak receiver without secondary connection",
			rows: []string{"###", "R.r", "###"},
			src:  src,
			code: "ORPHAN_RECEIVER",
		},
		{
			name:  "secondary connection without weak receiver",
			rows:  []string{"#D#", "R..", "###"},
			src:   src,
			conns: []laser.Connection{{Target: "x", Requirement: laser.RequirementFromCode(-2), Door: laser.C(1, 0), Secondary: true}},
			code:  "ORPHAN_CONNECTION",
		},
		{
			name:  "secondary connection not laser-locked",
			rows:  []string{"#D#", "R.r", "###"},
			src:   src,
			conns: []laser.Connection{{Target: "x", Requirement: laser.RequirementFromCode(2), Door: laser.C(1, 0), Secondary: true}},
			code:  "SECONDARY_UNLOCKED",
		},
		{
			name: "glass box without item",
			rows: []string{"###", "R.o", "###"},
			src:  src,
			code: "MISSING_CONTENTS",
		},
		{
			name:  "items for a missing glass box",
			rows:  []string{"###", "R..", "###"},
			src:   src,
			setup: laser.Setup{GlassBoxes: map[laser.Coord]string{laser.C(1, 1): "gem"}},
			code:  "STRAY_CONTENTS",
		},
		{
			name:  "locker row too long",
			rows:  []string{"####", "Rbbb", "####"},
			src:   src,
			setup: laser.Setup{Lockers: map[laser.Coord][]string{laser.C(1, 1): nil}},
			code:  "LOCKER_SHAPE",
		},
		{
			name:  "locker overflow",
			rows:  []string{"###", "R.b", "###"},
			src:   src,
			setup: laser.Setup{Lockers: map[laser.Coord][]string{laser.C(2, 1): {"a", "b", "c", "d", "e"}}},
			code:  "LOCKER_OVERFLOW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := build(tt.rows, tt.src, tt.conns, tt.setup)
			var ve laser.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Code != tt.code {
				t.Errorf("code = %s, want %s (%v)", ve.Code, tt.code, err)
			}
		})
	}
}

func TestDuplicateConnection(t *testing.T) {
	_, err := laser.NewConnectionTable([]laser.Connection{{Target: "a"}, {Target: "a"}})
	var ve laser.ValidationError
	if !errors.As(err, &ve) || ve.Code != "DUPLICATE_CONNECTION" {
		t.Errorf("expected DUPLICATE_CONNECTION, got %v", err)
	}
}

func TestLockerFootprint(t *testing.T) {
	g := laser.MustParseLayout(
		"#####",
		"#$$.#",
		"#..g#",
		"#..g#",
		"#####",
	)
	reg, err := laser.BuildRegistry(g, laser.Setup{Lockers: map[laser.Coord][]string{
		laser.C(1, 1): {"key-card"},
		laser.C(3, 2): {"fuse", "", "wire"},
	}})
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 lockers, got %d objects", reg.Len())
	}

	a, _ := reg.ObjectAt(laser.C(2, 1))
	reward := a.(*laser.Locker)
	if reward.Pos != laser.C(1, 1) || reward.Unlocked {
		t.Errorf("reward locker = %+v, want locked at (1,1)", reward)
	}
	if items := reward.Take(); items != nil {
		t.Errorf("locked locker gave %v", items)
	}

	b, _ := reg.ObjectAt(laser.C(3, 3))
	green := b.(*laser.Locker)
	if green.Partner != laser.C(3, 3) || !green.Unlocked {
		t.Errorf("green locker = %+v", green)
	}
	items := green.Take()
	if len(items) != 2 || items[0] != "fuse" || items[1] != "wire" {
		t.Errorf("Take() = %v", items)
	}
	if !green.Empty() {
		t.Error("locker should be empty after Take")
	}
}

func TestRequirementSatisfied(t *testing.T) {
	tests := []struct {
		code  int
		level int
		want  bool
	}{
		{0, 0, true},
		{3, 2, false},
		{3, 3, true},
		{-3, 99, false},
	}
	for _, tt := range tests {
		if got := laser.RequirementFromCode(tt.code).Satisfied(tt.level); got != tt.want {
			t.Errorf("RequirementFromCode(%d).Satisfied(%d) = %v, want %v", tt.code, tt.level, got, tt.want)
		}
	}
}

func TestSourceAtOriginNeedsReceiver(t *testing.T) {
	src := &laser.Beam{At: laser.C(0, 0), Dir: laser.DirRight}

	err := build([]string{"...#", "####"}, src, nil, laser.Setup{})
	var ve laser.ValidationError
	if !errors.As(err, &ve) || ve.Code != "SOURCE_TILE" {
		t.Fatalf("floor source: err = %v, want SOURCE_TILE", err)
	}

	// The source receiver needs no door.
	if err := build([]string{"R..#", "####"}, src, nil, laser.Setup{}); err != nil {
		t.Fatalf("receiver source: %v", err)
	}
}
