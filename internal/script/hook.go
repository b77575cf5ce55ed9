// Package script runs the on-enter scripts of rooms.
//
// Scripts are tengo programs. They see the globals room, from, first_visit
// and solved, and may call objective(text) and log(msg).
package script

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/vovakirdan/laserpunk/internal/rooms"
)

// Effects receives what a script asks the game to do.
type Effects interface {
	SetObjective(text string)
}

// EffectsFunc adapts a function to Effects.
type EffectsFunc func(text string)

func (f EffectsFunc) SetObjective(text string) { f(text) }

// Modules scripts may import.
var Modules = []string{"fmt", "math", "text"}

type program struct {
	src      string
	compiled *tengo.Compiled
}

// Hook implements rooms.EnterHook. Each room's script is compiled on first
// use and recompiled when its source changes.
type Hook struct {
	effects  Effects
	logger   *log.Logger
	programs map[string]*program
}

var _ rooms.EnterHook = (*Hook)(nil)

// NewHook creates a hook that reports to effects. A nil logger discards
// script log output.
func NewHook(effects Effects, logger *log.Logger) *Hook {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hook{
		effects:  effects,
		logger:   logger,
		programs: make(map[string]*program),
	}
}

// OnEnter runs the room's on-enter script, if any.
func (h *Hook) OnEnter(ctx context.Context, room *rooms.Room, from string, first bool) error {
	src := room.Definition().OnEnter
	if strings.TrimSpace(src) == "" {
		return nil
	}
	p, err := h.program(room.ID(), src)
	if err != nil {
		return err
	}

	vars := map[string]any{
		"room":        room.ID(),
		"from":        from,
		"first_visit": first,
		"solved":      room.Solved(),
		"objective":   h.objectiveFunc(),
		"log":         h.logFunc(room.ID()),
	}
	for name, v := range vars {
		if err := p.compiled.Set(name, v); err != nil {
			return fmt.Errorf("script %s: set %s: %w", room.ID(), name, err)
		}
	}
	if err := p.compiled.RunContext(ctx); err != nil {
		return fmt.Errorf("script %s: %w", room.ID(), err)
	}
	return nil
}

// Compile checks that src compiles as an on-enter script.
func Compile(src string) error {
	_, err := compile(src)
	return err
}

func (h *Hook) program(id, src string) (*program, error) {
	if p, ok := h.programs[id]; ok && p.src == src {
		return p, nil
	}
	compiled, err := compile(src)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", id, err)
	}
	p := &program{src: src, compiled: compiled}
	h.programs[id] = p
	return p, nil
}

func compile(src string) (*tengo.Compiled, error) {
	s := tengo.NewScript([]byte(src))
	placeholder := &tengo.UserFunction{Value: func(...tengo.Object) (tengo.Object, error) {
		return tengo.UndefinedValue, nil
	}}
	_ = s.Add("room", "")
	_ = s.Add("from", "")
	_ = s.Add("first_visit", false)
	_ = s.Add("solved", false)
	_ = s.Add("objective", placeholder)
	_ = s.Add("log", placeholder)
	s.SetImports(stdlib.GetModuleMap(Modules...))
	return s.Compile()
}

func (h *Hook) objectiveFunc() *tengo.UserFunction {
	return &tengo.UserFunction{Name: "objective", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		text, ok := tengo.ToString(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "text", Expected: "string", Found: args[0].TypeName()}
		}
		if h.effects != nil {
			h.effects.SetObjective(text)
		}
		return tengo.UndefinedValue, nil
	}}
}

func (h *Hook) logFunc(roomID string) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			s, _ := tengo.ToString(a)
			parts = append(parts, s)
		}
		h.logger.Info(strings.Join(parts, " "), "room", roomID)
		return tengo.UndefinedValue, nil
	}}
}
