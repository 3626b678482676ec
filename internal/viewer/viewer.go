// Package viewer implements the interactive map viewer loop.
package viewer

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/karuta-dev/emaki/internal/config"
	"github.com/karuta-dev/emaki/internal/engine/bitmap"
	"github.com/karuta-dev/emaki/internal/engine/gldraw"
	"github.com/karuta-dev/emaki/internal/engine/input"
	"github.com/karuta-dev/emaki/internal/engine/tile"
	"github.com/karuta-dev/emaki/internal/engine/tilemap"
	"github.com/karuta-dev/emaki/internal/engine/weather"
	"github.com/karuta-dev/emaki/internal/engine/window"
	"github.com/karuta-dev/emaki/internal/watch"
	"github.com/karuta-dev/emaki/pkg/formats"
	"github.com/karuta-dev/emaki/pkg/mathutil"
)

// App is the viewer instance: one window, one map, one tileset.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *gldraw.Renderer
	input    *input.Input
	loader   bitmap.Loader

	lower   *tilemap.RectLayer
	upper   *tilemap.RectLayer
	tilemap *tilemap.Tilemap
	weather *weather.Weather
	watcher *watch.Watcher

	bitmaps  []*bitmap.Resource
	textures []*gldraw.Texture
	assetGen int

	tileSize     int
	screenWidth  int
	screenHeight int
}

// New creates the viewer and loads its initial assets.
func New(cfg *config.Config) (*App, error) {
	slog.Info("initializing viewer",
		"map", cfg.Viewer.MapFile,
		"tileset", cfg.Viewer.TilesetFile,
	)

	a := &App{
		cfg:          cfg,
		screenWidth:  cfg.Graphics.Width,
		screenHeight: cfg.Graphics.Height,
	}

	// Create window (this also creates the OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      "emaki",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = gldraw.New(cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	a.weather = weather.New(cfg.Graphics.Width, cfg.Graphics.Height)
	kind, err := weather.ParseType(cfg.Viewer.Weather)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.weather.Kind = kind
	if kind != weather.None {
		a.weather.Power = 5
	}

	if err := a.loadAssets(); err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Viewer.WatchFiles {
		if err := a.startWatcher(); err != nil {
			slog.Warn("file watching disabled", "error", err)
		}
	}

	slog.Info("viewer initialized")
	return a, nil
}

// loadAssets parses the map and tileset and rebuilds the tilemap. Bank
// images decode in the background; painting starts once they arrive.
func (a *App) loadAssets() error {
	m, err := formats.ParseEMAPFile(a.cfg.Viewer.MapFile)
	if err != nil {
		return fmt.Errorf("loading map: %w", err)
	}

	manifest, err := formats.ParseManifestFile(a.cfg.Viewer.TilesetFile)
	if err != nil {
		return fmt.Errorf("loading tileset: %w", err)
	}

	lower := &tilemap.RectLayer{}
	upper := &tilemap.RectLayer{}
	tm := tilemap.New(tilemap.Config{
		ScreenWidth:  a.screenWidth,
		ScreenHeight: a.screenHeight,
		TileWidth:    manifest.TileSize,
		TileHeight:   manifest.TileSize,
		Lower:        lower,
		Upper:        upper,
	})
	tm.SetData(int(m.Width), int(m.Height), m.Tiles)
	tm.SetWrap(m.HorizontalWrap, m.VerticalWrap)

	if fp := manifest.FlagPath(); fp != "" {
		flags, err := formats.ParseEFLGFile(fp)
		if err != nil {
			return fmt.Errorf("loading flag table: %w", err)
		}
		tm.SetFlags(tile.Flags(flags.Flags))
	}

	for _, t := range a.textures {
		if t != nil {
			t.Close()
		}
	}
	a.assetGen++
	a.textures = make([]*gldraw.Texture, formats.BankCount)
	a.bitmaps = make([]*bitmap.Resource, formats.BankCount)
	for set := 0; set < formats.BankCount; set++ {
		path := manifest.BankPath(set)
		if path == "" {
			continue
		}
		res := bitmap.New(path)
		res.OnLoad(bankInstaller(&a.assetGen, a.assetGen, set, a.textures, gldraw.NewTexture))
		a.bitmaps[set] = res
		a.loader.Load(res)
	}
	tm.SetBitmaps(a.bitmaps)
	a.renderer.SetTextures(a.textures)

	// Keep the scroll position across reloads.
	if a.tilemap != nil {
		tm.OriginX = a.tilemap.OriginX
		tm.OriginY = a.tilemap.OriginY
	}
	a.tilemap = tm
	a.lower = lower
	a.upper = upper
	a.tileSize = manifest.TileSize

	slog.Info("assets loaded",
		"map", a.cfg.Viewer.MapFile,
		"size", fmt.Sprintf("%dx%d", m.Width, m.Height),
		"tileset", manifest.Name,
		"tile_size", manifest.TileSize,
	)
	return nil
}

// bankInstaller builds the load callback for one bank slot of one asset
// generation. A reload bumps the live generation, so a decode that
// finishes after its map was replaced is dropped instead of installing a
// stale image into the new texture slice.
func bankInstaller(live *int, gen, set int, textures []*gldraw.Texture, upload func(*image.RGBA) *gldraw.Texture) func(*bitmap.Resource) {
	return func(r *bitmap.Resource) {
		if *live != gen {
			return
		}
		if r.Err() != nil {
			slog.Warn("bank image failed to load", "path", r.Path(), "error", r.Err())
			return
		}
		textures[set] = upload(r.Image())
	}
}

// startWatcher watches the directories holding the map and tileset files.
func (a *App) startWatcher() error {
	dirs := map[string]struct{}{
		filepath.Dir(a.cfg.Viewer.MapFile):     {},
		filepath.Dir(a.cfg.Viewer.TilesetFile): {},
	}
	var list []string
	for d := range dirs {
		list = append(list, d)
	}

	w, err := watch.New(list...)
	if err != nil {
		return err
	}
	a.watcher = w
	slog.Info("watching asset directories", "dirs", list)
	return nil
}

// Run starts the main viewer loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	slog.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}

		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.resize(event.Width, event.Height)
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					a.running = false
				case sdl.SCANCODE_R:
					a.reload()
				}
			}
		}

		a.scroll()
		a.drainWatcher()

		// 2. Deliver finished image loads on this thread
		a.loader.Pump()

		// 3. Update and paint
		a.tilemap.Update()
		a.weather.Update()
		a.tilemap.Paint()

		// 4. Render and present
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Viewer.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("emaki - %d fps", frameCount))
			}
			slog.Debug("fps", "count", frameCount, "dt", fmt.Sprintf("%.2fms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// scroll moves the origin while arrow or WASD keys are held.
func (a *App) scroll() {
	speed := a.cfg.Viewer.ScrollSpeed
	if a.input.IsKeyDown(sdl.SCANCODE_LSHIFT) || a.input.IsKeyDown(sdl.SCANCODE_RSHIFT) {
		speed *= 3
	}

	if a.input.IsKeyDown(sdl.SCANCODE_LEFT) || a.input.IsKeyDown(sdl.SCANCODE_A) {
		a.tilemap.OriginX -= speed
	}
	if a.input.IsKeyDown(sdl.SCANCODE_RIGHT) || a.input.IsKeyDown(sdl.SCANCODE_D) {
		a.tilemap.OriginX += speed
	}
	if a.input.IsKeyDown(sdl.SCANCODE_UP) || a.input.IsKeyDown(sdl.SCANCODE_W) {
		a.tilemap.OriginY -= speed
	}
	if a.input.IsKeyDown(sdl.SCANCODE_DOWN) || a.input.IsKeyDown(sdl.SCANCODE_S) {
		a.tilemap.OriginY += speed
	}

	// Non-wrapping maps keep the origin inside the map extents. Small
	// maps pin to the top-left corner.
	d := a.tilemap.Data()
	if !d.HorizontalWrap {
		max := float64(d.Width()*a.tileSize - a.screenWidth)
		a.tilemap.OriginX = mathutil.ClampF(a.tilemap.OriginX, 0, math.Max(max, 0))
	}
	if !d.VerticalWrap {
		max := float64(d.Height()*a.tileSize - a.screenHeight)
		a.tilemap.OriginY = mathutil.ClampF(a.tilemap.OriginY, 0, math.Max(max, 0))
	}
}

// drainWatcher reloads assets when watched files change.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			slog.Info("asset changed", "path", path)
			changed = true
		case err, ok := <-a.watcher.Errors:
			if ok {
				slog.Warn("watcher error", "error", err)
			}
		default:
			if changed {
				a.reload()
			}
			return
		}
	}
}

// reload re-parses the map and tileset in place.
func (a *App) reload() {
	slog.Info("reloading assets")
	if err := a.loadAssets(); err != nil {
		slog.Error("reload failed, keeping previous assets", "error", err)
	}
}

// resize propagates a new window size to the renderer and viewport.
func (a *App) resize(width, height int) {
	a.screenWidth = width
	a.screenHeight = height
	a.renderer.Resize(width, height)
	a.tilemap.Resize(width, height)
	a.weather.Resize(width, height)
}

// render draws the current frame: lower tiles, upper tiles, weather.
func (a *App) render() {
	a.renderer.Begin()

	ox, oy := a.tilemap.LayerOffset()
	a.renderer.DrawRects(a.lower.Rects(), ox, oy, 1)
	a.renderer.DrawRects(a.upper.Rects(), ox, oy, 1)

	pw, ph := a.weather.ParticleSize()
	for _, p := range a.weather.Particles() {
		a.renderer.FillRect(float32(p.X), float32(p.Y), float32(pw), float32(ph),
			1, 1, 1, float32(p.Opacity)/255)
	}

	a.renderer.End()
}

// Close cleans up viewer resources.
func (a *App) Close() {
	slog.Info("closing viewer")

	if a.watcher != nil {
		a.watcher.Close()
	}
	for _, t := range a.textures {
		if t != nil {
			t.Close()
		}
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
