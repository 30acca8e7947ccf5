package studio

import (
	"errors"
	"path/filepath"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/app"
	"github.com/Faultbox/qterrain/internal/export"
	"github.com/Faultbox/qterrain/internal/loader"
	"github.com/Faultbox/qterrain/internal/watch"
)

var imageExts = []string{"png", "tif", "tiff", "bmp", "tga", "jpg", "jpeg"}

func (s *Studio) renderMenu() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open Heightmap...") {
			s.openDialog(watch.Heightmap, "Open Heightmap", "Images", imageExts...)
		}
		if imgui.MenuItemBool("Open Water Heightmap...") {
			s.openDialog(watch.Water, "Open Water Heightmap", "Images", imageExts...)
		}
		if imgui.MenuItemBool("Open Albedo...") {
			s.openDialog(watch.Albedo, "Open Albedo Texture", "Images", imageExts...)
		}
		if imgui.MenuItemBool("Open Normal Map...") {
			s.openDialog(watch.Normal, "Open Normal Map", "Images", imageExts...)
		}
		if imgui.MenuItemBool("Open View State...") {
			s.openDialog(watch.ViewState, "Open View State", "View State", "json")
		}
		imgui.Separator()
		if imgui.MenuItemBool("Save View State...") {
			s.saveDialog(opSaveState, "Save View State", "View State", "json")
		}
		if imgui.MenuItemBool("Export glTF...") {
			s.saveDialog(opExport, "Export Meshes", "glTF", "glb", "gltf")
		}
		imgui.Separator()
		if imgui.MenuItemBool("Screenshot (F12)") {
			s.screenshot()
		}
		if imgui.MenuItemBool("Exit") {
			s.backend.SetShouldClose(true)
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		if imgui.MenuItemBool("Toggle 2D/3D (T)") {
			s.handleAction(app.ActionToggleMode)
		}
		if imgui.MenuItemBool("Reset Camera (R)") {
			s.handleAction(app.ActionResetCamera)
		}
		if imgui.MenuItemBool("Controls") {
			s.showControls = !s.showControls
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

// openDialog runs a native open dialog off the render thread. The chosen
// path is applied by the next frame.
func (s *Studio) openDialog(kind watch.Kind, title, filterName string, exts ...string) {
	go func() {
		path, err := dialog.File().
			Filter(filterName, exts...).
			Filter("All Files", "*").
			Title(title).
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				s.log.Warn("file dialog error", zap.Error(err))
			}
			return
		}
		s.queue(pendingFile{op: opLoad, kind: kind, path: path})
	}()
}

func (s *Studio) saveDialog(op fileOp, title, filterName string, exts ...string) {
	go func() {
		path, err := dialog.File().
			Filter(filterName, exts...).
			Title(title).
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				s.log.Warn("file dialog error", zap.Error(err))
			}
			return
		}
		if filepath.Ext(path) == "" {
			path += "." + exts[0]
		}
		s.queue(pendingFile{op: op, path: path})
	}()
}

func (s *Studio) queue(p pendingFile) {
	select {
	case s.pending <- p:
	default:
		s.log.Warn("dropping file request, too many pending", zap.String("path", p.path))
	}
}

func (s *Studio) applyPending() {
	for {
		select {
		case p := <-s.pending:
			s.apply(p)
		default:
			return
		}
	}
}

func (s *Studio) apply(p pendingFile) {
	switch p.op {
	case opLoad:
		if err := s.data.Load(p.kind, p.path); err != nil {
			s.log.Error("load failed", zap.Error(err))
			s.notify("Failed to load " + filepath.Base(p.path))
			return
		}
		if s.watcher != nil {
			if err := s.watcher.Add(p.path, p.kind); err != nil {
				s.log.Warn("watching file", zap.String("path", p.path), zap.Error(err))
			}
		}
		s.updateTitle()

	case opSaveState:
		if err := s.viewer.State().Save(p.path); err != nil {
			s.log.Error("saving view state", zap.Error(err))
			s.notify("Failed to save view state")
			return
		}
		s.log.Info("view state saved", zap.String("path", p.path))
		s.notify("Saved " + filepath.Base(p.path))

	case opExport:
		if err := s.export(p.path); err != nil {
			s.log.Error("export failed", zap.Error(err))
			s.notify("Export failed: " + err.Error())
			return
		}
		s.log.Info("meshes exported", zap.String("path", p.path))
		s.notify("Exported " + filepath.Base(p.path))
	}
}

// export writes the visible layers, with the albedo embedded on the
// terrain when one was loaded from disk.
func (s *Studio) export(path string) error {
	meshes := s.viewer.ExportMeshes()
	if albedo := s.data.Config().Albedo; albedo != "" {
		for i := range meshes {
			if meshes[i].Name != "terrain" {
				continue
			}
			img, _, err := loader.Open(albedo)
			if err != nil {
				return err
			}
			meshes[i].Albedo = img
		}
	}
	return export.Save(path, meshes...)
}
