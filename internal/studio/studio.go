// Package studio hosts the viewer inside an ImGui window: the scene is
// drawn as an image next to panels that edit every tunable.
package studio

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/app"
	"github.com/Faultbox/qterrain/internal/config"
	"github.com/Faultbox/qterrain/internal/engine/debug"
	"github.com/Faultbox/qterrain/internal/engine/picking"
	"github.com/Faultbox/qterrain/internal/engine/scene"
	"github.com/Faultbox/qterrain/internal/engine/water"
	"github.com/Faultbox/qterrain/internal/logger"
	"github.com/Faultbox/qterrain/internal/watch"
)

// Layout of the fixed panels, in pixels.
const (
	controlsWidth   = 340
	statusBarHeight = 30
	noticeDuration  = 2 * time.Second
)

// Studio is the ImGui host.
type Studio struct {
	cfg     *config.Config
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	viewer  *scene.Viewer
	data    *app.Data
	watcher *watch.Watcher
	events  <-chan watch.Event
	shots   *debug.ScreenshotCapture
	presets *water.Presets
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// Paths picked in native dialogs, applied on the render thread.
	pending chan pendingFile

	lastFrame    time.Time
	lastMouse    imgui.Vec2
	hover        picking.Hit
	hovering     bool
	fps          float32
	notice       string
	noticeTime   time.Time
	showControls bool
	preset       int
}

type fileOp int

const (
	opLoad fileOp = iota
	opSaveState
	opExport
)

type pendingFile struct {
	op   fileOp
	kind watch.Kind
	path string
}

// New creates the window, the viewer and loads the configured files.
func New(cfg *config.Config) (*Studio, error) {
	s := &Studio{
		cfg:          cfg,
		shots:        debug.NewScreenshotCapture(app.ScreenshotDir, app.Title),
		presets:      water.DefaultPresets(),
		log:          logger.Named("studio"),
		pending:      make(chan pendingFile, 4),
		showControls: true,
		preset:       -1,
	}

	var err error
	s.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	s.backend.SetAfterCreateContextHook(func() {
		imgui.StyleColorsDark()
	})
	s.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	s.backend.CreateWindow(app.Title, cfg.Window.Width, cfg.Window.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	s.viewer, err = scene.New(app.ViewerConfig(cfg, cfg.Window.Width-controlsWidth, cfg.Window.Height-statusBarHeight))
	if err != nil {
		return nil, fmt.Errorf("create viewer: %w", err)
	}

	s.data = app.NewData(cfg.Data, s.viewer)
	if err := s.data.LoadAll(); err != nil {
		s.log.Warn("some inputs failed to load", zap.Error(err))
	}
	s.updateTitle()
	return s, nil
}

// Run shows the window until it is closed or ctx is cancelled.
func (s *Studio) Run(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	defer s.cancel()

	if s.cfg.Data.Watch {
		w, err := s.data.Watch(s.ctx)
		if err != nil {
			return fmt.Errorf("starting file watcher: %w", err)
		}
		s.watcher = w
		s.events = w.Events()
	}

	s.lastFrame = time.Now()
	s.backend.Run(s.render)
	return nil
}

// Close releases the watcher and the viewer.
func (s *Studio) Close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.log.Warn("closing watcher", zap.Error(err))
		}
	}
	if s.viewer != nil {
		s.viewer.Destroy()
		s.viewer = nil
	}
}

func (s *Studio) render() {
	if s.ctx.Err() != nil {
		s.backend.SetShouldClose(true)
		return
	}

	now := time.Now()
	dt := now.Sub(s.lastFrame)
	s.lastFrame = now
	if dt > 0 {
		s.fps = 0.9*s.fps + 0.1/float32(dt.Seconds())
	}

	s.applyPending()
	s.drainWatcher()
	s.handleKeys()
	s.renderMenu()

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	contentHeight := workSize.Y - statusBarHeight
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	sceneX := workPos.X
	sceneW := workSize.X
	if s.showControls {
		imgui.SetNextWindowPos(workPos)
		imgui.SetNextWindowSize(imgui.NewVec2(controlsWidth, contentHeight))
		if imgui.BeginV("Controls", nil, flags) {
			s.renderControls()
		}
		imgui.End()
		sceneX += controlsWidth
		sceneW -= controlsWidth
	}

	imgui.SetNextWindowPos(imgui.NewVec2(sceneX, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(sceneW, contentHeight))
	if imgui.BeginV("Scene", nil, flags|imgui.WindowFlagsNoScrollbar) {
		s.renderScene(dt)
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		s.renderStatusBar()
	}
	imgui.End()
}

// renderScene draws the viewer into its offscreen target at the size of
// the panel and shows the result. Mouse input over the image drives the
// camera.
func (s *Studio) renderScene(dt time.Duration) {
	avail := imgui.ContentRegionAvail()
	w, h := int(avail.X), int(avail.Y)
	if w <= 0 || h <= 0 {
		return
	}
	s.viewer.Frame(dt, w, h)

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(s.viewer.ColorTexture()))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(avail.X, avail.Y),
		imgui.NewVec2(0, 1), // GL rows are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	mousePos := imgui.MousePos()
	s.hovering = false
	if imgui.IsItemHovered() {
		origin := imgui.ItemRectMin()
		s.hover, s.hovering = s.viewer.Pick(mousePos.X-origin.X, mousePos.Y-origin.Y)
		dx := mousePos.X - s.lastMouse.X
		dy := mousePos.Y - s.lastMouse.Y
		st := s.viewer.State()
		switch {
		case imgui.IsMouseDragging(imgui.MouseButtonLeft):
			app.Drag(st, app.ButtonLeft, dx, dy, w, h)
		case imgui.IsMouseDragging(imgui.MouseButtonRight):
			app.Drag(st, app.ButtonRight, dx, dy, w, h)
		case imgui.IsMouseDragging(imgui.MouseButtonMiddle):
			app.Drag(st, app.ButtonMiddle, dx, dy, w, h)
		}
		app.Wheel(st, imgui.CurrentIO().MouseWheel())
	}
	s.lastMouse = mousePos
}

func (s *Studio) renderStatusBar() {
	st := s.viewer.State()
	w, h := s.viewer.Size()
	imgui.Text(fmt.Sprintf("%s | %dx%d | %.0f fps | %s", st.Mode(), w, h, s.fps, s.viewer.Phase()))
	if s.cfg.Render.ShowMouseControl {
		imgui.SameLine()
		imgui.TextDisabled("(left drag orbit, right drag pan, wheel zoom)")
	}
	if s.hovering {
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("| uv (%.3f, %.3f) raw %.4f", s.hover.U, s.hover.V, s.hover.Raw))
	}
	if s.notice != "" && time.Since(s.noticeTime) < noticeDuration {
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(0.4, 0.8, 0.4, 1), s.notice)
	}
}

func (s *Studio) handleKeys() {
	if imgui.IsAnyItemActive() {
		return
	}
	keys := []struct {
		key    imgui.Key
		action app.Action
	}{
		{imgui.KeyR, app.ActionResetCamera},
		{imgui.KeyW, app.ActionToggleWireframe},
		{imgui.KeyL, app.ActionToggleAutoRotateLight},
		{imgui.KeyC, app.ActionToggleAutoRotateCamera},
		{imgui.KeyT, app.ActionToggleMode},
		{imgui.KeyF12, app.ActionScreenshot},
		{imgui.KeyEscape, app.ActionQuit},
	}
	for _, k := range keys {
		if imgui.IsKeyChordPressed(imgui.KeyChord(k.key)) {
			s.handleAction(k.action)
		}
	}
}

func (s *Studio) handleAction(a app.Action) {
	switch a {
	case app.ActionQuit:
		s.backend.SetShouldClose(true)
	case app.ActionScreenshot:
		s.screenshot()
	default:
		app.Apply(s.viewer.State(), a)
	}
}

func (s *Studio) screenshot() {
	path, err := s.shots.Capture(s.viewer.CaptureImage())
	if err != nil {
		s.log.Warn("screenshot failed", zap.Error(err))
		s.notify("Screenshot failed")
		return
	}
	s.log.Info("screenshot saved", zap.String("path", path))
	s.notify("Saved " + path)
}

func (s *Studio) notify(msg string) {
	s.notice = msg
	s.noticeTime = time.Now()
}

func (s *Studio) drainWatcher() {
	for {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.events = nil
				return
			}
			s.data.Reload(ev)
		default:
			return
		}
	}
}

func (s *Studio) updateTitle() {
	title := app.Title
	if t := s.viewer.State().Title(); t != "" {
		title += " - " + t
	} else if hm := s.data.Config().Heightmap; hm != "" {
		title += " - " + filepath.Base(hm)
	}
	s.backend.SetWindowTitle(title)
}
