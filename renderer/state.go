package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a scene operation is invoked out of order.
var ErrInvalidState = errors.New("invalid scene state")

// State is the position of a scene in its lifecycle. Scenes only move
// forward: Unloaded, Loaded, Rendering, Disposed.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateRendering
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateRendering:
		return "rendering"
	case StateDisposed:
		return "disposed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) canRender() bool {
	return s == StateLoaded || s == StateRendering
}

func invalidState(op string, s State) error {
	return fmt.Errorf("%s while %s: %w", op, s, ErrInvalidState)
}
