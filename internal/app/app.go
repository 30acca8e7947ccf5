// Package app runs the viewer in a plain SDL window: keyboard shortcuts,
// mouse camera control and file reloading, without the control panels.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/config"
	"github.com/Faultbox/qterrain/internal/engine/debug"
	"github.com/Faultbox/qterrain/internal/engine/scene"
	"github.com/Faultbox/qterrain/internal/logger"
	"github.com/Faultbox/qterrain/internal/watch"
)

// Title is the window title both hosts use.
const Title = "qterrain"

// ScreenshotDir is where F12 captures are written.
const ScreenshotDir = "screenshots"

// App owns the window, the viewer and the input files.
type App struct {
	cfg     *config.Config
	window  *Window
	input   *Input
	viewer  *scene.Viewer
	data    *Data
	watcher *watch.Watcher
	shots   *debug.ScreenshotCapture
	log     *zap.Logger
	running bool
}

// New creates the window and the viewer and loads the configured files.
// Files that fail to load are logged; the viewer starts without them.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		input: NewInput(),
		shots: debug.NewScreenshotCapture(ScreenshotDir, Title),
		log:   logger.Named("app"),
	}

	var err error
	a.window, err = NewWindow(WindowConfig{
		Title:      Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// GL entry points are resolved against the context the window made.
	if err := gl.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	a.log.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	w, h := a.window.DrawableSize()
	a.viewer, err = scene.New(ViewerConfig(cfg, w, h))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create viewer: %w", err)
	}

	a.data = NewData(cfg.Data, a.viewer)
	if err := a.data.LoadAll(); err != nil {
		a.log.Warn("some inputs failed to load", zap.Error(err))
	}
	return a, nil
}

// Viewer returns the scene viewer.
func (a *App) Viewer() *scene.Viewer {
	return a.viewer
}

// Run drives the frame loop until the window closes, Escape is pressed or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var events <-chan watch.Event
	if a.cfg.Data.Watch {
		w, err := a.data.Watch(ctx)
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		a.watcher = w
		events = w.Events()
	}

	a.running = true
	last := time.Now()
	frames := 0
	fpsTimer := last

	a.log.Info("starting frame loop")
	for a.running {
		start := time.Now()
		dt := start.Sub(last)
		last = start

		if ctx.Err() != nil || a.input.Update() {
			break
		}
		w, h := a.window.DrawableSize()
		a.handleEvents(w, h)

		// Drain without blocking; the watcher debounces bursts.
	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					events = nil
					break drain
				}
				a.data.Reload(ev)
			default:
				break drain
			}
		}

		if a.viewer.Frame(dt, w, h) {
			frames++
		}
		a.viewer.Present(0, w, h)
		a.window.SwapBuffers()

		if time.Since(fpsTimer) >= time.Second {
			logger.Trace("fps", zap.Int("rendered", frames), zap.Duration("dt", dt))
			frames = 0
			fpsTimer = time.Now()
		}

		if wait := a.cfg.Render.FrameInterval - time.Since(start); wait > 0 {
			time.Sleep(wait)
		}
	}
	return nil
}

func (a *App) handleEvents(w, h int) {
	st := a.viewer.State()
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case EventKeyDown:
			a.handleAction(KeyAction(ev.Key))
		case EventMouseDrag:
			Drag(st, ev.Button, ev.DX, ev.DY, w, h)
		case EventMouseWheel:
			Wheel(st, ev.Wheel)
		}
	}
}

func (a *App) handleAction(act Action) {
	switch act {
	case ActionNone:
	case ActionQuit:
		a.running = false
	case ActionScreenshot:
		a.Screenshot()
	default:
		Apply(a.viewer.State(), act)
		a.log.Debug("action", zap.Stringer("action", act))
	}
}

// Screenshot writes the last rendered image to ScreenshotDir.
func (a *App) Screenshot() {
	path, err := a.shots.Capture(a.viewer.CaptureImage())
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the watcher, the viewer and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if a.viewer != nil {
		a.viewer.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// ViewerConfig sizes a viewer for a w x h target using the configured
// shadow and depth resolutions.
func ViewerConfig(cfg *config.Config, w, h int) scene.Config {
	sc := scene.DefaultConfig()
	sc.Width, sc.Height = int32(w), int32(h)
	if r := cfg.Render.ShadowMapResolution; r > 0 {
		sc.ShadowResolution = int32(r)
	}
	if r := cfg.Render.DepthMapResolution; r > 0 {
		sc.DepthResolution = int32(r)
	}
	return sc
}
