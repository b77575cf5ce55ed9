package laser

import (
	"fmt"
	"image"
	"image/color"
)

// Palette maps room bitmap pixels to tile kinds.
// A palette is built once and shared read-only between loaders.
type Palette struct {
	kinds  map[color.RGBA]TileKind
	colors map[TileKind]color.RGBA
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// DefaultPalette returns the level-authoring palette.
func DefaultPalette() *Palette {
	return NewPalette(map[color.RGBA]TileKind{
		rgb(255, 255, 255): Void,
		rgb(0, 0, 0):       Floor,
		rgb(38, 128, 130):  Entrance,
		rgb(92, 0, 0):      Wall,

		rgb(179, 102, 255): RedirectorUpLeft,
		rgb(179, 102, 205): RedirectorDownLeft,
		rgb(179, 102, 155): RedirectorDownRight,
		rgb(179, 102, 105): RedirectorUpRight,

		rgb(162, 0, 0):   ReceiverRegular,
		rgb(163, 62, 62): ReceiverWeak,

		rgb(150, 92, 31): BlockerUp,
		rgb(140, 92, 31): BlockerLeft,
		rgb(130, 92, 31): BlockerDown,
		rgb(120, 92, 31): BlockerRight,

		rgb(128, 0, 255): SplitterUp,
		rgb(128, 0, 205): SplitterLeft,
		rgb(128, 0, 155): SplitterDown,
		rgb(128, 0, 105): SplitterRight,

		rgb(48, 96, 130):  LockerBlue,
		rgb(48, 130, 89):  LockerGreen,
		rgb(199, 149, 21): LockerReward,

		rgb(104, 104, 104): Automaton,
		rgb(255, 180, 100): GlassBox,
	})
}

// NewPalette builds a palette from an explicit table. The table is copied.
func NewPalette(table map[color.RGBA]TileKind) *Palette {
	p := &Palette{
		kinds:  make(map[color.RGBA]TileKind, len(table)),
		colors: make(map[TileKind]color.RGBA, len(table)),
	}
	for c, k := range table {
		p.kinds[c] = k
		p.colors[k] = c
	}
	return p
}

// Len returns the number of palette entries.
func (p *Palette) Len() int {
	return len(p.kinds)
}

// Classify returns the tile kind of a pixel.
func (p *Palette) Classify(c color.Color) (TileKind, error) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	k, ok := p.kinds[rgba]
	if !ok {
		return Void, ValidationError{
			Code: "UNKNOWN_COLOR",
			Message: fmt.Sprintf("pixel rgba(%d,%d,%d,%d) is not in the palette",
				rgba.R, rgba.G, rgba.B, rgba.A),
		}
	}
	return k, nil
}

// ColorOf returns the pixel colour of a tile kind.
func (p *Palette) ColorOf(k TileKind) (color.RGBA, bool) {
	c, ok := p.colors[k]
	return c, ok
}

// GridFromImage classifies every pixel of img into a new grid.
func GridFromImage(img image.Image, p *Palette) (*Grid, error) {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			k, err := p.Classify(img.At(x, y))
			if err != nil {
				return nil, fmt.Errorf("pixel (%d,%d): %w", x-b.Min.X, y-b.Min.Y, err)
			}
			g.Set(C(x-b.Min.X, y-b.Min.Y), k)
		}
	}
	return g, nil
}

// Image renders the grid back into a bitmap using the palette.
// Kinds missing from the palette are drawn transparent.
func (p *Palette) Image(g *Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if c, ok := p.colors[g.KindAt(C(x, y))]; ok {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}
