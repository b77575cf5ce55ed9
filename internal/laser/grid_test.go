package laser_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/vovakirdan/laserpunk/internal/laser"
)

func TestKindAtOutOfBounds(t *testing.T) {
	g := laser.MustParseLayout("#.", ".#")

	for _, c := range []laser.Coord{laser.C(-1, 0), laser.C(0, -1), laser.C(2, 0), laser.C(0, 2)} {
		k := g.KindAt(c)
		if k != laser.OutOfBounds {
			t.Errorf("KindAt(%v) = %v, want OutOfBounds", c, k)
		}
		if k.IsFloor() || k.IsSolid() {
			t.Errorf("OutOfBounds must be neither floor nor solid")
		}
	}
	if g.KindAt(laser.C(1, 0)) != laser.Floor {
		t.Error("expected floor at (1,0)")
	}
}

func TestFloorNeighbor(t *testing.T) {
	g := laser.MustParseLayout(
		"###",
		"#.#",
		"###",
	)
	tests := []struct {
		at   laser.Coord
		want laser.Dir
		ok   bool
	}{
		{laser.C(1, 0), laser.DirDown, true},
		{laser.C(0, 1), laser.DirRight, true},
		{laser.C(1, 2), laser.DirUp, true},
		{laser.C(2, 1), laser.DirLeft, true},
		{laser.C(0, 0), laser.DirUp, false},
	}
	for _, tt := range tests {
		d, ok := g.FloorNeighbor(tt.at)
		if ok != tt.ok || (ok && d != tt.want) {
			t.Errorf("FloorNeighbor(%v) = %v, %v; want %v, %v", tt.at, d, ok, tt.want, tt.ok)
		}
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	src := "#D###\nR.J7F\n^<v>L\nwasdr\nbg$mo"
	g, err := laser.ParseLayoutString(src + "\n")
	if err != nil {
		t.Fatalf("ParseLayoutString: %v", err)
	}
	if got := g.Layout(); got != src {
		t.Errorf("Layout() = %q, want %q", got, src)
	}
}

func TestParseLayoutRejectsUnknownRune(t *testing.T) {
	_, err := laser.ParseLayout([]string{"#?#"})
	var ve laser.ValidationError
	if !errors.As(err, &ve) || ve.Code != "UNKNOWN_RUNE" {
		t.Errorf("expected UNKNOWN_RUNE, got %v", err)
	}
}

func TestDefaultPaletteClassify(t *testing.T) {
	p := laser.DefaultPalette()
	if p.Len() != 23 {
		t.Errorf("palette has %d entries, want 23", p.Len())
	}

	tests := []struct {
		c    color.RGBA
		want laser.TileKind
	}{
		{color.RGBA{0, 0, 0, 255}, laser.Floor},
		{color.RGBA{92, 0, 0, 255}, laser.Wall},
		{color.RGBA{162, 0, 0, 255}, laser.ReceiverRegular},
		{color.RGBA{128, 0, 255, 255}, laser.SplitterUp},
		{color.RGBA{179, 102, 155, 255}, laser.RedirectorDownRight},
		{color.RGBA{120, 92, 31, 255}, laser.BlockerRight},
		{color.RGBA{199, 149, 21, 255}, laser.LockerReward},
		{color.RGBA{255, 180, 100, 255}, laser.GlassBox},
	}
	for _, tt := range tests {
		got, err := p.Classify(tt.c)
		if err != nil || got != tt.want {
			t.Errorf("Classify(%v) = %v, %v; want %v", tt.c, got, err, tt.want)
		}
	}

	_, err := p.Classify(color.RGBA{1, 2, 3, 255})
	var ve laser.ValidationError
	if !errors.As(err, &ve) || ve.Code != "UNKNOWN_COLOR" {
		t.Errorf("expected UNKNOWN_COLOR, got %v", err)
	}
}

func TestGridFromImage(t *testing.T) {
	p := laser.DefaultPalette()
	want := laser.MustParseLayout(
		"##D##",
		"R.J.#",
		"#####",
	)
	img := p.Image(want)

	got, err := laser.GridFromImage(img, p)
	if err != nil {
		t.Fatalf("GridFromImage: %v", err)
	}
	if got.Layout() != want.Layout() {
		t.Errorf("decoded layout:\n%s\nwant:\n%s", got.Layout(), want.Layout())
	}

	img.Set(1, 1, color.RGBA{9, 9, 9, 255})
	if _, err := laser.GridFromImage(img, p); err == nil {
		t.Error("expected an error for an unknown pixel")
	}
}

func TestGridFromImageOffsetBounds(t *testing.T) {
	p := laser.DefaultPalette()
	img := image.NewRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.RGBA{0, 0, 0, 255})
	img.Set(11, 10, color.RGBA{92, 0, 0, 255})

	g, err := laser.GridFromImage(img, p)
	if err != nil {
		t.Fatalf("GridFromImage: %v", err)
	}
	if g.W != 2 || g.H != 1 || g.KindAt(laser.C(1, 0)) != laser.Wall {
		t.Errorf("unexpected grid %dx%d %q", g.W, g.H, g.Layout())
	}
}
