// Package formats provides room file parsers.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/laserpunk/internal/laser"
)

// YAMLRoom represents the YAML structure for a room file.
type YAMLRoom struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Bitmap      string           `yaml:"bitmap,omitempty"`
	Layout      string           `yaml:"layout,omitempty"`
	Start       *YAMLPoint       `yaml:"start,omitempty"`
	Laser       *YAMLBeam        `yaml:"laser,omitempty"`
	Connections []YAMLConnection `yaml:"connections"`
	Lockers     []YAMLLocker     `yaml:"lockers,omitempty"`
	GlassBoxes  []YAMLGlassBox   `yaml:"glass_boxes,omitempty"`
	OnEnter     string           `yaml:"on_enter,omitempty"`
	Terminal    bool             `yaml:"terminal,omitempty"`
}

// YAMLPoint is a tile coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLBeam is the laser source tile and its initial direction.
type YAMLBeam struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// YAMLConnection links the room to a neighbour. Access uses the authoring
// encoding: 0 open, n > 0 access level, n < 0 laser-locked.
type YAMLConnection struct {
	Room      string    `yaml:"room"`
	Access    int       `yaml:"access"`
	Door      YAMLPoint `yaml:"door"`
	Secondary bool      `yaml:"secondary,omitempty"`
}

// YAMLLocker lists the items of the locker whose top-left tile is (X, Y).
type YAMLLocker struct {
	X     int      `yaml:"x"`
	Y     int      `yaml:"y"`
	Items []string `yaml:"items"`
}

// YAMLGlassBox names the item inside a glass box.
type YAMLGlassBox struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Item string `yaml:"item"`
}

// Room represents a parsed room file. The grid is not built yet: either
// Layout or Bitmap names its source.
type Room struct {
	ID          string
	Name        string
	Bitmap      string
	Layout      string
	Start       *laser.Coord
	Source      *laser.Beam
	Connections []laser.Connection
	Lockers     map[laser.Coord][]string
	GlassBoxes  map[laser.Coord]string
	OnEnter     string
	Terminal    bool
}

// ParseYAML parses a YAML room file.
func ParseYAML(data []byte) (Room, error) {
	var yr YAMLRoom
	if err := yaml.Unmarshal(data, &yr); err != nil {
		return Room{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yr.ID == "" {
		return Room{}, errors.New("room has no id")
	}
	if !yr.Terminal {
		if (yr.Layout == "") == (yr.Bitmap == "") {
			return Room{}, fmt.Errorf("room %s: exactly one of layout and bitmap is required", yr.ID)
		}
	}

	room := Room{
		ID:         yr.ID,
		Name:       yr.Name,
		Bitmap:     yr.Bitmap,
		Layout:     yr.Layout,
		OnEnter:    yr.OnEnter,
		Terminal:   yr.Terminal,
		Lockers:    make(map[laser.Coord][]string, len(yr.Lockers)),
		GlassBoxes: make(map[laser.Coord]string, len(yr.GlassBoxes)),
	}
	if yr.Start != nil {
		c := laser.C(yr.Start.X, yr.Start.Y)
		room.Start = &c
	}
	if yr.Laser != nil {
		d, err := laser.ParseDir(yr.Laser.Dir)
		if err != nil {
			return Room{}, fmt.Errorf("room %s: laser: %w", yr.ID, err)
		}
		room.Source = &laser.Beam{At: laser.C(yr.Laser.X, yr.Laser.Y), Dir: d}
	}
	for _, c := range yr.Connections {
		room.Connections = append(room.Connections, laser.Connection{
			Target:      c.Room,
			Requirement: laser.RequirementFromCode(c.Access),
			Door:        laser.C(c.Door.X, c.Door.Y),
			Secondary:   c.Secondary,
		})
	}
	for _, l := range yr.Lockers {
		at := laser.C(l.X, l.Y)
		if _, dup := room.Lockers[at]; dup {
			return Room{}, fmt.Errorf("room %s: locker %v declared twice", yr.ID, at)
		}
		room.Lockers[at] = l.Items
	}
	for _, g := range yr.GlassBoxes {
		at := laser.C(g.X, g.Y)
		if _, dup := room.GlassBoxes[at]; dup {
			return Room{}, fmt.Errorf("room %s: glass box %v declared twice", yr.ID, at)
		}
		room.GlassBoxes[at] = g.Item
	}
	return room, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
