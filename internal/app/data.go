package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/qterrain/internal/config"
	"github.com/Faultbox/qterrain/internal/loader"
	"github.com/Faultbox/qterrain/internal/logger"
	"github.com/Faultbox/qterrain/internal/viewstate"
	"github.com/Faultbox/qterrain/internal/watch"
)

// Sink receives decoded input. *scene.Viewer implements it.
type Sink interface {
	SetHeightmap(data []float32, width, height int, addSkirt bool) error
	SetWater(data []float32, width, height int, excludeBelow float32) error
	SetAlbedo(pix []byte, width int) error
	SetNormal(pix []byte, width int) error
	State() *viewstate.State
}

// Data feeds the files named in the config into a Sink and keeps feeding
// them when they change.
type Data struct {
	cfg  config.DataConfig
	sink Sink
	log  *zap.Logger
}

// NewData binds a data configuration to a sink.
func NewData(cfg config.DataConfig, sink Sink) *Data {
	return &Data{cfg: cfg, sink: sink, log: logger.Named("data")}
}

// Config returns the current file configuration.
func (d *Data) Config() config.DataConfig {
	return d.cfg
}

// files lists the configured paths by kind, in load order. The view state
// comes last so it can override what loading the data changed.
func (d *Data) files() []watch.Event {
	var out []watch.Event
	add := func(k watch.Kind, path string) {
		if path != "" {
			out = append(out, watch.Event{Kind: k, Path: path})
		}
	}
	add(watch.Heightmap, d.cfg.Heightmap)
	add(watch.Water, d.cfg.Water)
	add(watch.Albedo, d.cfg.Albedo)
	add(watch.Normal, d.cfg.Normal)
	add(watch.ViewState, d.cfg.ViewState)
	return out
}

// LoadAll loads every configured file. Every file is attempted; the
// failures are joined.
func (d *Data) LoadAll() error {
	var errs []error
	for _, f := range d.files() {
		if err := d.Load(f.Kind, f.Path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Load reads path as kind and hands it to the sink. It also remembers the
// path, so a later Watch picks it up.
func (d *Data) Load(kind watch.Kind, path string) error {
	var err error
	switch kind {
	case watch.Heightmap:
		err = d.loadHeightmap(path)
		d.cfg.Heightmap = path
	case watch.Water:
		err = d.loadWater(path)
		d.cfg.Water = path
	case watch.Albedo:
		err = d.loadAlbedo(path)
		d.cfg.Albedo = path
	case watch.Normal:
		err = d.loadNormal(path)
		d.cfg.Normal = path
	case watch.ViewState:
		err = d.sink.State().Load(path)
		d.cfg.ViewState = path
	default:
		err = fmt.Errorf("unknown input kind %v", kind)
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", kind, err)
	}
	d.log.Info("input loaded", zap.Stringer("kind", kind), zap.String("path", path))
	return nil
}

func (d *Data) loadHeightmap(path string) error {
	hm, err := loader.LoadHeightmap(path, d.cfg.MaxResolution)
	if err != nil {
		return err
	}
	return d.sink.SetHeightmap(hm.Data, hm.Width, hm.Height, d.cfg.AddSkirt)
}

func (d *Data) loadWater(path string) error {
	hm, err := loader.LoadHeightmap(path, d.cfg.MaxResolution)
	if err != nil {
		return err
	}
	return d.sink.SetWater(hm.Data, hm.Width, hm.Height, d.cfg.WaterExcludeBelow)
}

func (d *Data) loadAlbedo(path string) error {
	pix, w, _, err := loader.LoadRGBA(path)
	if err != nil {
		return err
	}
	return d.sink.SetAlbedo(pix, w)
}

func (d *Data) loadNormal(path string) error {
	pix, w, _, err := loader.LoadRGB(path)
	if err != nil {
		return err
	}
	return d.sink.SetNormal(pix, w)
}

// Watch registers the configured files with a new watcher and starts it.
// The caller drains Events on the GL thread and passes each to Reload.
func (d *Data) Watch(ctx context.Context) (*watch.Watcher, error) {
	w, err := watch.New(watch.DefaultDebounce)
	if err != nil {
		return nil, err
	}
	for _, f := range d.files() {
		if err := w.Add(f.Path, f.Kind); err != nil {
			w.Close()
			return nil, err
		}
	}
	go w.Run(ctx)
	return w, nil
}

// Reload handles one watcher event. Errors are logged and the previous
// data stays on screen.
func (d *Data) Reload(ev watch.Event) {
	if err := d.Load(ev.Kind, ev.Path); err != nil {
		d.log.Warn("reload failed", zap.Error(err))
	}
}
