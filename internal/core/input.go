package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, Up arrow
	ActionDown               // S, Down arrow
	ActionLeft               // A, Left arrow
	ActionRight              // D, Right arrow
	ActionRotateLeft         // Q
	ActionRotateRight        // E
	ActionInteract           // Space, Enter
	ActionRestart            // R, after game over
	ActionHelp               // ?
	ActionQuit               // Esc, Ctrl+C
)

var actionNames = [...]string{
	ActionNone:        "None",
	ActionUp:          "Up",
	ActionDown:        "Down",
	ActionLeft:        "Left",
	ActionRight:       "Right",
	ActionRotateLeft:  "RotateLeft",
	ActionRotateRight: "RotateRight",
	ActionInteract:    "Interact",
	ActionRestart:     "Restart",
	ActionHelp:        "Help",
	ActionQuit:        "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// IsMove reports whether the action moves the player.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame holds the actions triggered during one update.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// FrameOf creates a frame with the given actions set.
func FrameOf(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
