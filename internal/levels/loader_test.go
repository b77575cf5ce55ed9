package levels_test

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/vovakirdan/laserpunk/internal/laser"
	"github.com/vovakirdan/laserpunk/internal/levels"
	"github.com/vovakirdan/laserpunk/internal/rooms"
)

// getTestdataPath returns path to testdata/<name>.
func getTestdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("rooms"))

	defs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(defs))
	}
	for i := 1; i < len(defs); i++ {
		if defs[i-1].ID >= defs[i].ID {
			t.Errorf("rooms not sorted: %s >= %s", defs[i-1].ID, defs[i].ID)
		}
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("rooms"))

	def, err := loader.LoadByID("corridor")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if def.Name != "Corridor" {
		t.Errorf("expected Name 'Corridor', got %q", def.Name)
	}
	if def.Grid.W != 7 || def.Grid.H != 4 {
		t.Errorf("expected 7x4, got %dx%d", def.Grid.W, def.Grid.H)
	}
	if def.Source == nil || def.Source.At != laser.C(0, 1) || def.Source.Dir != laser.DirRight {
		t.Errorf("unexpected source %+v", def.Source)
	}

	room, err := def.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !room.Solved() {
		t.Error("corridor beam should reach its receiver")
	}
	if !room.Connections().Passable("closet", 1) {
		t.Error("closet door should be unlocked by the receiver")
	}

	if _, err := loader.LoadByID("nonexistent"); !errors.Is(err, rooms.ErrUnknownRoom) {
		t.Errorf("expected ErrUnknownRoom, got %v", err)
	}
}

func TestLoaderReportsValidationErrors(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath("broken"))

	defs, err := loader.LoadAll()
	if err == nil {
		t.Fatal("expected an error for the misplaced door")
	}
	var ve laser.ValidationError
	if !errors.As(err, &ve) || ve.Code != "DOOR_TILE" {
		t.Errorf("expected DOOR_TILE, got %v", err)
	}
	if len(defs) != 1 || defs[0].ID != "fine" {
		t.Errorf("valid rooms should still load, got %d", len(defs))
	}
}

func TestLoaderBitmapRooms(t *testing.T) {
	grid := laser.MustParseLayout(
		"#####",
		"R.7.#",
		"#.R.#",
		"##D##",
	)
	img := laser.DefaultPalette().Image(grid)

	tests := []struct {
		name string
		file string
		enc  func(f *os.File) error
	}{
		{"png", "lab.png", func(f *os.File) error { return png.Encode(f, img) }},
		{"bmp", "lab.bmp", func(f *os.File) error { return bmp.Encode(f, img) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			f, err := os.Create(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatal(err)
			}
			if err := tt.enc(f); err != nil {
				t.Fatal(err)
			}
			f.Close()

			room := "id: lab\nbitmap: " + tt.file + "\n" +
				"laser: {x: 0, y: 1, dir: right}\n" +
				"connections:\n  - {room: out, access: -1, door: {x: 2, y: 3}}\n"
			if err := os.WriteFile(filepath.Join(dir, "lab.yaml"), []byte(room), 0o644); err != nil {
				t.Fatal(err)
			}

			def, err := levels.NewLoader(dir).LoadByID("lab")
			if err != nil {
				t.Fatalf("LoadByID: %v", err)
			}
			if got, want := def.Grid.Layout(), grid.Layout(); got != want {
				t.Errorf("decoded grid:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestLoaderCatalogReload(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.yaml", "id: a\nlayout: |\n  #D#\nconnections:\n  - {room: b, access: 0, door: {x: 1, y: 0}}\n")

	loader := levels.NewLoader(dir)
	if ids := loader.IDs(); len(ids) != 1 || ids[0] != "a" {
		t.Fatalf("IDs = %v, want [a]", ids)
	}
	if _, err := loader.Definition("b"); !errors.Is(err, rooms.ErrUnknownRoom) {
		t.Errorf("expected ErrUnknownRoom before reload, got %v", err)
	}

	write("b.yaml", "id: b\nterminal: true\n")
	if _, err := loader.Definition("b"); err == nil {
		t.Error("cache should hide new files until Reload")
	}
	loader.Reload()
	def, err := loader.Definition("b")
	if err != nil {
		t.Fatalf("Definition after reload: %v", err)
	}
	if !def.Terminal {
		t.Error("b should be terminal")
	}
}

func TestBuiltinCampaign(t *testing.T) {
	loader := levels.Builtin()

	defs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("builtin campaign failed to load: %v", err)
	}
	if len(defs) != 5 {
		t.Errorf("expected 5 rooms, got %d", len(defs))
	}

	ctx := context.Background()
	g := rooms.NewGraph(loader)
	first, err := g.Enter(ctx, levels.StartRoom, "")
	if err != nil {
		t.Fatalf("Enter(%s): %v", levels.StartRoom, err)
	}
	if at, ok := first.StartPoint(); !ok || at != laser.C(4, 2) {
		t.Errorf("StartPoint = %v, %v", at, ok)
	}

	lab, err := g.Move(ctx, "room_1", 0)
	if err != nil {
		t.Fatalf("Move(room_1): %v", err)
	}
	if lab.Solved() {
		t.Error("the lab must not start solved")
	}
	lab.Rotate(laser.C(5, 3), false)
	if !lab.Connections().Passable("room_1_5", 2) {
		t.Error("lighting the weak receiver opens the closet")
	}
	if _, err := lab.Rotate(laser.C(5, 3), false); err != nil {
		t.Fatal(err)
	}
	if !lab.Solved() || !lab.ControlsLocked() {
		t.Error("turning the redirector up solves the lab")
	}
	if _, err := g.Move(ctx, "to_be_continued", 1); !errors.Is(err, rooms.ErrSessionOver) {
		t.Errorf("expected ErrSessionOver, got %v", err)
	}
}
