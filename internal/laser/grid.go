package laser

// Grid represents a room as a rectangular grid of tile kinds.
// Cells are stored in row-major order: index = y*W + x.
// The shape never changes after construction.
type Grid struct {
	W     int        // Width of the grid
	H     int        // Height of the grid
	Kinds []TileKind // Flat array of kinds, length W*H
}

// NewGrid creates a grid of the given size filled with Void.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Kinds: make([]TileKind, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// KindAt returns the kind at the given coordinate.
// Returns OutOfBounds if the coordinate is outside the grid.
func (g *Grid) KindAt(c Coord) TileKind {
	if !g.InBounds(c) {
		return OutOfBounds
	}
	return g.Kinds[g.index(c)]
}

// Set stores a kind at the given coordinate. Used while building a grid.
func (g *Grid) Set(c Coord, k TileKind) {
	if g.InBounds(c) {
		g.Kinds[g.index(c)] = k
	}
}

// IsFloor returns true if the tile at c can be walked on.
func (g *Grid) IsFloor(c Coord) bool {
	return g.KindAt(c).IsFloor()
}

// floorNeighborOrder is the probe order used by FloorNeighbor.
var floorNeighborOrder = [4]Dir{DirDown, DirRight, DirUp, DirLeft}

// FloorNeighbor returns the first direction from c whose neighbour is floor.
// Renderers use it to decide which way a wall-mounted tile faces.
func (g *Grid) FloorNeighbor(c Coord) (Dir, bool) {
	for _, d := range floorNeighborOrder {
		if g.IsFloor(c.Step(d)) {
			return d, true
		}
	}
	return DirUp, false
}

// Find returns every coordinate holding kind k, in row-major order.
func (g *Grid) Find(k TileKind) []Coord {
	var out []Coord
	for i, kind := range g.Kinds {
		if kind == k {
			out = append(out, C(i%g.W, i/g.W))
		}
	}
	return out
}

// setRotation replaces the kind of a redirector tile to match o.
// The grid kind is cosmetic; the registry holds the authoritative orientation.
func (g *Grid) setRotation(c Coord, o Orientation) {
	if g.KindAt(c).IsRedirector() {
		g.Kinds[g.index(c)] = o.Kind()
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{W: g.W, H: g.H, Kinds: make([]TileKind, len(g.Kinds))}
	copy(out.Kinds, g.Kinds)
	return out
}
