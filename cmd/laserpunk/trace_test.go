package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/rooms"
)

func TestParseOps(t *testing.T) {
	ops, err := parseOps([]string{"5,3", "2, 1:left"}, []string{"4,4"})
	if err != nil {
		t.Fatal(err)
	}
	want := []roomOp{
		{at: laser.C(5, 3)},
		{at: laser.C(2, 1), left: true},
		{at: laser.C(4, 4), toggle: true},
	}
	if len(ops) != len(want) {
		t.Fatalf("got %d ops, want %d", len(ops), len(want))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d = %+v, want %+v", i, ops[i], want[i])
		}
	}

	for _, bad := range []string{"5", "x,3", "1,2:up"} {
		if _, err := parseOps([]string{bad}, nil); err == nil {
			t.Errorf("parseOps(%q) should fail", bad)
		}
	}
}

func corridor() *rooms.Definition {
	src := laser.Beam{At: laser.C(0, 1), Dir: laser.DirRight}
	return &rooms.Definition{
		ID:   "corridor",
		Name: "Corridor",
		Grid: laser.MustParseLayout(
			"######",
			"R...7#",
			"####.#",
			"####RD",
			"######",
		),
		Source: &src,
		Connections: []laser.Connection{
			{Target: "out", Requirement: laser.RequirementFromCode(-1), Door: laser.C(5, 3)},
		},
	}
}

func TestTraceRoomPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := traceRoom(&buf, corridor(), nil, newDumper(true)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	lines := strings.Split(out, "\n")
	if lines[0] != "corridor  Corridor  6x5" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "R---7#" {
		t.Errorf("beam row = %q, want R---7#", lines[2])
	}
	if lines[3] != "####|#" {
		t.Errorf("drop row = %q, want ####|#", lines[3])
	}
	if !strings.Contains(out, "solved: yes") {
		t.Errorf("corridor should be solved:\n%s", out)
	}
	if !strings.Contains(out, "doors:") || !strings.Contains(out, "out") {
		t.Errorf("expected the door list:\n%s", out)
	}
	if !strings.Contains(out, "end=Receiver") {
		t.Errorf("expected a run ending on the receiver:\n%s", out)
	}
}

func TestTraceRoomSolvedLocksControls(t *testing.T) {
	var buf bytes.Buffer
	ops := []roomOp{{at: laser.C(4, 1)}}
	if err := traceRoom(&buf, corridor(), ops, newDumper(true)); err == nil {
		// The corridor is solved on build, so its controls are locked.
		t.Fatalf("rotating in a solved room should fail:\n%s", buf.String())
	}
}
