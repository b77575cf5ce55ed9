package laser

// redirectTable maps orientation and incoming travel direction to the
// outgoing direction. Missing entries are incompatible.
var redirectTable = [4]map[Dir]Dir{
	UpLeft:    {DirRight: DirUp, DirDown: DirLeft},
	DownLeft:  {DirRight: DirDown, DirUp: DirLeft},
	DownRight: {DirLeft: DirDown, DirUp: DirRight},
	UpRight:   {DirLeft: DirUp, DirDown: DirRight},
}

// Redirect returns the direction a redirector with orientation o sends a
// beam travelling in direction in, or false if the beam hits its back.
func Redirect(o Orientation, in Dir) (Dir, bool) {
	out, ok := redirectTable[o%4][in]
	return out, ok
}

// splitTable maps splitter facing and incoming travel direction to the two
// child directions. Missing entries are incompatible.
var splitTable = map[Dir]map[Dir][2]Dir{
	DirUp: {
		DirUp:    {DirLeft, DirUp},
		DirDown:  {DirLeft, DirDown},
		DirRight: {DirUp, DirDown},
	},
	DirLeft: {
		DirUp:    {DirLeft, DirRight},
		DirLeft:  {DirLeft, DirDown},
		DirRight: {DirRight, DirDown},
	},
	DirDown: {
		DirUp:    {DirUp, DirRight},
		DirDown:  {DirDown, DirRight},
		DirLeft:  {DirUp, DirDown},
	},
	DirRight: {
		DirDown:  {DirLeft, DirRight},
		DirLeft:  {DirLeft, DirUp},
		DirRight: {DirRight, DirUp},
	},
}

// Split returns the two child directions a splitter facing f produces for a
// beam travelling in direction in, or false if the beam cannot enter.
func Split(f Dir, in Dir) ([2]Dir, bool) {
	out, ok := splitTable[f][in]
	return out, ok
}

// Opposes reports whether a blocker facing f meets a beam travelling in
// direction in head-on.
func Opposes(f Dir, in Dir) bool {
	return f == in.Opposite()
}
