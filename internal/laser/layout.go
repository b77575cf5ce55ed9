package laser

import (
	"fmt"
	"strings"
)

// layoutRunes is the ASCII legend for hand-written room layouts.
var layoutRunes = map[rune]TileKind{
	' ': Void,
	'.': Floor,
	'D': Entrance,
	'#': Wall,

	'J': RedirectorUpLeft,
	'7': RedirectorDownLeft,
	'F': RedirectorDownRight,
	'L': RedirectorUpRight,

	'R': ReceiverRegular,
	'r': ReceiverWeak,

	'^': BlockerUp,
	'<': BlockerLeft,
	'v': BlockerDown,
	'>': BlockerRight,

	'w': SplitterUp,
	'a': SplitterLeft,
	's': SplitterDown,
	'd': SplitterRight,

	'b': LockerBlue,
	'g': LockerGreen,
	'$': LockerReward,

	'm': Automaton,
	'o': GlassBox,
}

var kindRunes = func() map[TileKind]rune {
	out := make(map[TileKind]rune, len(layoutRunes))
	for r, k := range layoutRunes {
		out[k] = r
	}
	return out
}()

// ParseLayout builds a grid from ASCII rows. Short rows are padded with Void.
func ParseLayout(rows []string) (*Grid, error) {
	h := len(rows)
	w := 0
	for _, row := range rows {
		w = max(w, len([]rune(row)))
	}
	if w == 0 || h == 0 {
		return nil, invalid("EMPTY_LAYOUT", "layout has no tiles")
	}
	g := NewGrid(w, h)
	for y, row := range rows {
		for x, r := range []rune(row) {
			k, ok := layoutRunes[r]
			if !ok {
				return nil, invalid("UNKNOWN_RUNE", "layout rune %q at (%d,%d) is not in the legend", r, x, y)
			}
			g.Set(C(x, y), k)
		}
	}
	return g, nil
}

// ParseLayoutString splits s into rows, dropping one trailing newline.
func ParseLayoutString(s string) (*Grid, error) {
	s = strings.TrimSuffix(s, "\n")
	return ParseLayout(strings.Split(s, "\n"))
}

// Layout renders the grid with the ASCII legend.
func (g *Grid) Layout() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < g.W; x++ {
			sb.WriteRune(LayoutRune(g.KindAt(C(x, y))))
		}
	}
	return sb.String()
}

// LayoutRune returns the legend rune of a kind.
func LayoutRune(k TileKind) rune {
	if r, ok := kindRunes[k]; ok {
		return r
	}
	return '?'
}

// MustParseLayout is like ParseLayout but panics on error.
// Intended for tests and built-in fixtures.
func MustParseLayout(rows ...string) *Grid {
	g, err := ParseLayout(rows)
	if err != nil {
		panic(fmt.Sprintf("laser: %v", err))
	}
	return g
}
