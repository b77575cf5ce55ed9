package game

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/laserpunk/internal/core"
	"github.com/vovakirdan/laserpunk/internal/laser"
)

// TileWidth is the number of screen columns per tile.
const TileWidth = 2

const (
	hudHeight = 3
	logHeight = 4
)

// beam orientation bits per tile
const (
	beamH = 1 << iota
	beamV
)

// Render draws the session into dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	s.renderHUD(dst)
	s.renderRoom(dst)
	s.renderLog(dst)

	switch {
	case s.won:
		s.renderOverlay(dst, "YOU ESCAPED", fmt.Sprintf("Score %d  -  R to restart", s.score), core.ColorGood)
	case s.over:
		s.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score %d  -  R to restart", s.score), core.ColorWarn)
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, "LASERPUNK", core.ColorBeam)
	dst.DrawText(12, 0, s.room.Name(), core.ColorText)

	hp, maxHP := s.Health()
	hearts := strings.Repeat("♥", hp) + strings.Repeat("♡", maxHP-hp)
	right := fmt.Sprintf("Score %d  Access %d  ", s.score, s.access)
	x := dst.Width() - len(right) - maxHP - 1
	dst.DrawText(x, 0, right, core.ColorText)
	dst.DrawText(x+len(right), 0, hearts, core.ColorWarn)

	if s.objective != "" {
		dst.DrawText(1, 1, "Objective: "+s.objective, core.ColorGood)
	}
	if s.room.ControlsLocked() {
		dst.DrawText(dst.Width()-17, 1, "[controls locked]", core.ColorDim)
	}
}

func (s *Session) renderRoom(dst *core.Screen) {
	g := s.room.Grid()
	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-logHeight)
	view := area.CenterIn(g.W*TileWidth, g.H)
	beams := beamMap(s.room.Trace())

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := laser.C(x, y)
			glyph, color := s.tileGlyph(c, beams[c])
			sx := view.X + x*TileWidth
			if !area.Contains(sx, view.Y+y) {
				continue
			}
			dst.DrawText(sx, view.Y+y, glyph, color)
		}
	}

	p, facing := s.Player()
	dst.DrawText(view.X+p.X*TileWidth, view.Y+p.Y, "@"+string(arrow(facing)), core.ColorPlayer)
}

func (s *Session) renderLog(dst *core.Screen) {
	y := dst.Height() - logHeight
	if len(s.inventory) > 0 {
		dst.DrawText(1, y, "Items: "+strings.Join(s.inventory, ", "), core.ColorText)
	}
	msgs := s.messages
	if n := logHeight - 1; len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	for i, m := range msgs {
		color := core.ColorDim
		if i == len(msgs)-1 {
			color = core.ColorText
		}
		dst.DrawText(1, y+1+i, m, color)
	}
}

func (s *Session) renderOverlay(dst *core.Screen, title, subtitle string, color core.Color) {
	w := max(len(title), len([]rune(subtitle))) + 6
	box := dst.Bounds().CenterIn(w, 5)
	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawText(box.X, y, strings.Repeat(" ", box.W), core.ColorDefault)
	}
	dst.DrawBox(box, color)
	dst.DrawTextCentered(box.Y+1, title, color)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorText)
}

// tileGlyph returns the two-column glyph of tile c.
func (s *Session) tileGlyph(c laser.Coord, beam int) (string, core.Color) {
	k := s.room.Grid().KindAt(c)
	obj, hasObj := s.room.Registry().ObjectAt(c)

	switch {
	case k == laser.Void:
		return "  ", core.ColorDefault
	case k == laser.Wall:
		return "██", core.ColorWall
	case k == laser.Entrance:
		if conn, ok := s.room.Connections().DoorAt(c); ok && conn.Requirement.Satisfied(s.access) {
			return "▒▒", core.ColorDoorOpen
		}
		return "▒▒", core.ColorDoor
	case hasObj:
		return objectGlyph(obj)
	case beam != 0:
		return beamGlyph(beam), core.ColorBeam
	case k == laser.Automaton && !s.automata().Has(c):
		return "&&", core.ColorAutomaton
	case k == laser.Automaton:
		return "x ", core.ColorDim
	}
	return "· ", core.ColorFloor
}

func objectGlyph(obj laser.Object) (string, core.Color) {
	switch o := obj.(type) {
	case *laser.Redirector:
		color := core.ColorRedirector
		if o.Active {
			color = core.ColorRedirectorLit
		}
		return string(redirectorRunes[o.Orientation]) + " ", color
	case *laser.Blocker:
		color := core.ColorBlocker
		if o.Blocking {
			color = core.ColorBlocking
		}
		state := "□"
		if o.Active {
			state = "■"
		}
		return string(arrow(o.Facing)) + state, color
	case *laser.Splitter:
		color := core.ColorSplitter
		if o.Active {
			color = core.ColorSplitterLit
		}
		return string(splitterRunes[o.Facing]) + " ", color
	case *laser.Receiver:
		color := core.ColorReceiver
		if o.Activated || o.Source {
			color = core.ColorReceiverLit
		}
		switch {
		case o.Source:
			return "◉ ", color
		case o.Weak:
			return "○ ", color
		}
		return "◎ ", color
	case *laser.GlassCase:
		switch {
		case o.Taken:
			return "◇ ", core.ColorDim
		case o.Unlocked:
			return "◆ ", core.ColorGlassLit
		}
		return "◇ ", core.ColorGlass
	case *laser.Locker:
		color := core.ColorLocker
		switch {
		case o.Empty():
			color = core.ColorDim
		case o.Kind() == laser.LockerReward:
			color = core.ColorReward
		}
		return "▣▣", color
	}
	return "??", core.ColorWarn
}

var redirectorRunes = map[laser.Orientation]rune{
	laser.UpLeft:    '┘',
	laser.DownLeft:  '┐',
	laser.DownRight: '┌',
	laser.UpRight:   '└',
}

var splitterRunes = map[laser.Dir]rune{
	laser.DirUp:    '┴',
	laser.DirLeft:  '┤',
	laser.DirDown:  '┬',
	laser.DirRight: '├',
}

func arrow(d laser.Dir) rune {
	switch d {
	case laser.DirUp:
		return '^'
	case laser.DirLeft:
		return '<'
	case laser.DirDown:
		return 'v'
	}
	return '>'
}

func beamGlyph(bits int) string {
	switch bits {
	case beamH:
		return "──"
	case beamV:
		return "│ "
	}
	return "┼─"
}

// beamMap records, per lit tile, whether horizontal or vertical runs cross it.
func beamMap(t laser.Trace) map[laser.Coord]int {
	out := make(map[laser.Coord]int)
	for _, seg := range t.Segments {
		bit := beamV
		if seg.Dir.Horizontal() {
			bit = beamH
		}
		for c := seg.From.Step(seg.Dir); c != seg.To; c = c.Step(seg.Dir) {
			if t.IsLit(c) {
				out[c] |= bit
			}
		}
	}
	return out
}
