package tilemap

import (
	"math"

	"github.com/karuta-dev/emaki/internal/engine/bitmap"
	"github.com/karuta-dev/emaki/internal/engine/stage"
	"github.com/karuta-dev/emaki/internal/engine/tile"
)

// Config holds tilemap construction parameters. Lower and Upper are the
// draw layers geometry is compiled into; everything else has a usable
// zero-config default.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	TileWidth    int
	TileHeight   int
	Margin       int
	Lower        Layer
	Upper        Layer
}

// DefaultTileSize is the square tile edge length used when a config
// leaves it unset.
const DefaultTileSize = 48

// layerHandle places one draw layer into the drawable container at a
// fixed z plane.
type layerHandle struct {
	plane int
}

func (h *layerHandle) Z() int           { return h.plane }
func (h *layerHandle) ScreenY() float64 { return 0 }
func (h *layerHandle) Update()          {}

// Tilemap renders a scrolling, layered tile grid into two draw layers and
// keeps dynamic sprites depth-sorted against them. It owns a drawable
// container by composition; the weather effect owns its own.
type Tilemap struct {
	// OriginX and OriginY are the scroll offset into the map in pixels,
	// mutated every frame by the surrounding loop.
	OriginX float64
	OriginY float64

	container stage.Container
	data      Data
	bitmaps   []*bitmap.Resource

	lower Layer
	upper Layer

	viewport Viewport
	expander Expander

	animationCount int
}

// New creates a tilemap targeting the given draw layers.
func New(cfg Config) *Tilemap {
	if cfg.TileWidth <= 0 {
		cfg.TileWidth = DefaultTileSize
	}
	if cfg.TileHeight <= 0 {
		cfg.TileHeight = DefaultTileSize
	}
	if cfg.Margin <= 0 {
		cfg.Margin = DefaultMargin
	}

	t := &Tilemap{
		lower: cfg.Lower,
		upper: cfg.Upper,
	}
	t.viewport = Viewport{
		TileWidth:    cfg.TileWidth,
		TileHeight:   cfg.TileHeight,
		Margin:       cfg.Margin,
		ScreenWidth:  cfg.ScreenWidth,
		ScreenHeight: cfg.ScreenHeight,
	}
	t.expander = Expander{
		Data:       &t.data,
		TileWidth:  cfg.TileWidth,
		TileHeight: cfg.TileHeight,
		Lower:      cfg.Lower,
		Upper:      cfg.Upper,
	}
	t.container.Add(&layerHandle{plane: stage.ZLowerTiles})
	t.container.Add(&layerHandle{plane: stage.ZUpperTiles})
	return t
}

// SetData replaces the map contents and schedules a repaint.
func (t *Tilemap) SetData(width, height int, tiles []int16) {
	t.data.SetData(width, height, tiles)
	t.viewport.RequestRepaint()
}

// SetWrap sets the horizontal and vertical wrap flags.
func (t *Tilemap) SetWrap(horizontal, vertical bool) {
	t.data.HorizontalWrap = horizontal
	t.data.VerticalWrap = vertical
	t.viewport.RequestRepaint()
}

// SetFlags installs the per-tile-ID flag table.
func (t *Tilemap) SetFlags(flags tile.Flags) {
	t.expander.Flags = flags
	t.viewport.RequestRepaint()
}

// SetBitmaps installs the tileset image resources by bank index and
// subscribes to their load notifications: painting is deferred until
// every referenced bitmap is ready, then retried on the next frame.
func (t *Tilemap) SetBitmaps(bitmaps []*bitmap.Resource) {
	t.bitmaps = bitmaps
	for _, b := range bitmaps {
		if b == nil {
			continue
		}
		b.OnLoad(func(*bitmap.Resource) {
			t.viewport.RequestRepaint()
		})
	}
	t.viewport.RequestRepaint()
}

// SetOverpass installs the raised-bridge predicate. Nil restores the base
// behavior where no cell is an overpass position.
func (t *Tilemap) SetOverpass(fn func(mx, my int) bool) {
	t.expander.Overpass = fn
	t.viewport.RequestRepaint()
}

// Container exposes the drawable container so dynamic sprites can share
// the tilemap's depth ordering.
func (t *Tilemap) Container() *stage.Container {
	return &t.container
}

// Data exposes the map data store for read access.
func (t *Tilemap) Data() *Data {
	return &t.data
}

// Resize updates the on-screen viewport dimensions.
func (t *Tilemap) Resize(width, height int) {
	t.viewport.ScreenWidth = width
	t.viewport.ScreenHeight = height
	t.viewport.RequestRepaint()
}

// Refresh requests a full re-expansion on the next frame.
func (t *Tilemap) Refresh() {
	t.viewport.RequestRepaint()
}

// IsReady reports whether every installed bitmap has finished loading.
func (t *Tilemap) IsReady() bool {
	for _, b := range t.bitmaps {
		if b != nil && !b.IsReady() {
			return false
		}
	}
	return true
}

// AnimationFrame returns the current throttled autotile animation frame.
func (t *Tilemap) AnimationFrame() int {
	return t.animationCount / AnimationTicksPerFrame
}

// Update advances the animation counter and ticks the container's
// children. Call once per game tick, before Paint.
func (t *Tilemap) Update() {
	t.animationCount++
	t.container.Update()
}

// Paint rebuilds the draw layers if the visible window or animation frame
// changed, then re-sorts the drawable children. When a referenced bitmap
// is still loading the expansion stays pending and is retried next frame.
func (t *Tilemap) Paint() {
	frame := t.AnimationFrame()
	win := t.viewport.Window(t.OriginX, t.OriginY)

	if t.viewport.ShouldRepaint(win, frame) && t.IsReady() {
		t.expander.AnimationFrame = frame
		t.lower.Clear()
		t.upper.Clear()
		for y := 0; y < win.Rows; y++ {
			for x := 0; x < win.Cols; x++ {
				t.expander.ExpandSpot(win.StartX, win.StartY, x, y)
			}
		}
		t.viewport.Commit(win, frame)
	}

	t.container.Sort()
}

// LayerOffset returns the pixel offset at which the draw layers must be
// presented so the committed window lines up with the scroll origin.
func (t *Tilemap) LayerOffset() (float64, float64) {
	startX, startY := t.viewport.LastStart()
	ox := float64(startX*t.expander.TileWidth) - math.Floor(t.OriginX)
	oy := float64(startY*t.expander.TileHeight) - math.Floor(t.OriginY)
	return ox, oy
}
