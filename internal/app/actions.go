package app

import (
	"github.com/Faultbox/qterrain/internal/viewstate"
)

// Action is a keyboard command shared by both hosts.
type Action int

const (
	ActionNone Action = iota
	ActionResetCamera
	ActionToggleWireframe
	ActionToggleAutoRotateLight
	ActionToggleAutoRotateCamera
	ActionToggleMode
	ActionScreenshot
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionResetCamera:
		return "reset_camera"
	case ActionToggleWireframe:
		return "toggle_wireframe"
	case ActionToggleAutoRotateLight:
		return "toggle_auto_rotate_light"
	case ActionToggleAutoRotateCamera:
		return "toggle_auto_rotate_camera"
	case ActionToggleMode:
		return "toggle_mode"
	case ActionScreenshot:
		return "screenshot"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// Apply performs the state side of a. Screenshot and Quit belong to the
// host and are ignored here. It reports whether a was handled.
func Apply(st *viewstate.State, a Action) bool {
	switch a {
	case ActionResetCamera:
		st.ResetCamera()
	case ActionToggleWireframe:
		st.SetWireframe(!st.Wireframe())
	case ActionToggleAutoRotateLight:
		st.SetAutoRotateLight(!st.AutoRotateLight())
	case ActionToggleAutoRotateCamera:
		st.SetAutoRotateCamera(!st.AutoRotateCamera())
	case ActionToggleMode:
		st.ToggleMode()
	default:
		return false
	}
	return true
}

// Button is a mouse button as the hosts report it.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Drag applies a mouse drag of (dx, dy) pixels over a w x h view. In 3D the
// left button orbits and the right one pans; in 2D every button pans.
func Drag(st *viewstate.State, b Button, dx, dy float32, w, h int) {
	if dx == 0 && dy == 0 {
		return
	}
	if st.Mode() == viewstate.Render2D {
		v := st.Viewer2D()
		v.PanBy(dx, dy, w, h)
		st.SetViewer2D(v)
		return
	}

	o := st.Orbit()
	switch b {
	case ButtonLeft:
		o.HandleDrag(dx, dy)
	case ButtonRight, ButtonMiddle:
		o.HandlePan(dx, dy)
	}
	st.SetOrbit(o)
}

// Wheel zooms by a wheel delta in notches.
func Wheel(st *viewstate.State, delta float32) {
	if delta == 0 {
		return
	}
	if st.Mode() == viewstate.Render2D {
		v := st.Viewer2D()
		v.ZoomBy(delta)
		st.SetViewer2D(v)
		return
	}
	o := st.Orbit()
	o.HandleZoom(delta)
	st.SetOrbit(o)
}
