package core

// Color is the semantic colour of a screen cell. The platform layer maps
// each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorDim
	ColorFloor
	ColorWall
	ColorDoor
	ColorDoorOpen
	ColorBeam
	ColorRedirector
	ColorRedirectorLit
	ColorReceiver
	ColorReceiverLit
	ColorBlocker
	ColorBlocking
	ColorSplitter
	ColorSplitterLit
	ColorLocker
	ColorReward
	ColorGlass
	ColorGlassLit
	ColorAutomaton
	ColorPlayer
	ColorText
	ColorWarn
	ColorGood
)

// NumColors is the number of defined colours.
const NumColors = int(ColorGood) + 1
