package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/rooms"
)

// dumper prints a room and its beam as coloured ASCII.
type dumper struct {
	plain bool

	colorWall   color.Style
	colorBeam   color.Style
	colorLit    color.Style
	colorObject color.Style
	colorDoor   color.Style
	colorLocker color.Style
	colorTitle  color.Style
	colorSubtle color.Style
}

func newDumper(plain bool) *dumper {
	return &dumper{
		plain:       plain,
		colorWall:   color.Style{color.FgGray},
		colorBeam:   color.Style{color.FgRed, color.OpBold},
		colorLit:    color.Style{color.FgGreen, color.OpBold},
		colorObject: color.Style{color.FgCyan},
		colorDoor:   color.Style{color.FgYellow, color.OpBold},
		colorLocker: color.Style{color.FgMagenta},
		colorTitle:  color.Style{color.FgWhite, color.OpBold},
		colorSubtle: color.Style{color.FgGray},
	}
}

func (d *dumper) paint(s color.Style, text string) string {
	if d.plain {
		return text
	}
	return s.Sprint(text)
}

// beamRunes marks the floor tiles crossed by each run: '-' for horizontal,
// '|' for vertical and '+' where both cross.
func beamRunes(g *laser.Grid, t laser.Trace) map[laser.Coord]rune {
	out := make(map[laser.Coord]rune)
	for _, s := range t.Segments {
		glyph := '|'
		if s.Dir.Horizontal() {
			glyph = '-'
		}
		for c := s.From.Step(s.Dir); c != s.To && g.InBounds(c); c = c.Step(s.Dir) {
			if !g.IsFloor(c) || !t.IsLit(c) {
				continue
			}
			if prev, ok := out[c]; ok && prev != glyph {
				out[c] = '+'
			} else {
				out[c] = glyph
			}
		}
	}
	return out
}

// Room prints the header, grid, runs and doors of room.
func (d *dumper) Room(w io.Writer, room *rooms.Room) {
	g := room.Grid()
	trace := room.Trace()
	beam := beamRunes(g, trace)

	fmt.Fprintf(w, "%s  %s  %dx%d\n",
		d.paint(d.colorTitle, room.ID()), room.Name(), g.W, g.H)

	var b strings.Builder
	for y := range g.H {
		for x := range g.W {
			b.WriteString(d.cell(room, laser.C(x, y), beam))
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())

	solved := "no"
	if room.Solved() {
		solved = d.paint(d.colorLit, "yes")
	}
	controls := "free"
	if room.ControlsLocked() {
		controls = "locked"
	}
	fmt.Fprintf(w, "solved: %s  controls: %s  lit: %d  visits: %d\n",
		solved, controls, trace.Lit.Size(), trace.Visits)

	if len(trace.Segments) > 0 {
		fmt.Fprintln(w, d.paint(d.colorSubtle, "runs:"))
		for _, s := range trace.Segments {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}

	conns := room.Connections().All()
	if len(conns) > 0 {
		fmt.Fprintln(w, d.paint(d.colorSubtle, "doors:"))
		for _, c := range conns {
			kind := ""
			if c.Secondary {
				kind = " secondary"
			}
			fmt.Fprintf(w, "  %-16s %-8s %s%s\n", c.Target, c.Door, c.Requirement, kind)
		}
	}
}

func (d *dumper) cell(room *rooms.Room, c laser.Coord, beam map[laser.Coord]rune) string {
	g := room.Grid()
	k := g.KindAt(c)
	if r, ok := beam[c]; ok {
		return d.paint(d.colorBeam, string(r))
	}
	glyph := string(laser.LayoutRune(k))

	if obj, ok := room.Registry().ObjectAt(c); ok {
		switch {
		case obj.Lit():
			return d.paint(d.colorLit, glyph)
		case k.IsLocker() || k == laser.GlassBox:
			return d.paint(d.colorLocker, glyph)
		default:
			return d.paint(d.colorObject, glyph)
		}
	}

	switch {
	case k == laser.Wall:
		return d.paint(d.colorWall, glyph)
	case k == laser.Entrance:
		if _, ok := room.Connections().DoorAt(c); ok {
			return d.paint(d.colorDoor, glyph)
		}
		return d.paint(d.colorWall, glyph)
	case k == laser.Automaton:
		return d.paint(d.colorLocker, glyph)
	}
	return glyph
}
