package app

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a polled SDL event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseDrag
	EventMouseWheel
)

// Event is a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	Button Button
	DX, DY float32
	Wheel  float32
}

// Input polls SDL and tracks which mouse buttons are held.
type Input struct {
	events []Event
	held   map[Button]bool
}

// NewInput creates an input handler.
func NewInput() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[Button]bool),
	}
}

// Update polls pending SDL events. It returns true when the window was
// asked to close.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseButtonEvent:
			if b, ok := sdlButton(e.Button); ok {
				i.held[b] = e.Type == sdl.MOUSEBUTTONDOWN
			}

		case *sdl.MouseMotionEvent:
			for _, b := range []Button{ButtonLeft, ButtonRight, ButtonMiddle} {
				if i.held[b] {
					i.events = append(i.events, Event{
						Type:   EventMouseDrag,
						Button: b,
						DX:     float32(e.XRel),
						DY:     float32(e.YRel),
					})
					break
				}
			}

		case *sdl.MouseWheelEvent:
			wheel := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				wheel = -wheel
			}
			i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: wheel})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

func sdlButton(b uint8) (Button, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return ButtonLeft, true
	case sdl.BUTTON_RIGHT:
		return ButtonRight, true
	case sdl.BUTTON_MIDDLE:
		return ButtonMiddle, true
	}
	return 0, false
}

// KeyAction maps a scancode to its command.
func KeyAction(key sdl.Scancode) Action {
	switch key {
	case sdl.SCANCODE_R:
		return ActionResetCamera
	case sdl.SCANCODE_W:
		return ActionToggleWireframe
	case sdl.SCANCODE_L:
		return ActionToggleAutoRotateLight
	case sdl.SCANCODE_C:
		return ActionToggleAutoRotateCamera
	case sdl.SCANCODE_T:
		return ActionToggleMode
	case sdl.SCANCODE_F12:
		return ActionScreenshot
	case sdl.SCANCODE_ESCAPE:
		return ActionQuit
	}
	return ActionNone
}
