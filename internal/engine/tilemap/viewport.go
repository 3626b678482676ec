package tilemap

import (
	"math"

	"github.com/karuta-dev/emaki/pkg/mathutil"
)

// DefaultMargin is the pixel margin painted beyond the screen on every
// side so tiles never pop in at the edge mid-scroll.
const DefaultMargin = 20

// AnimationTicksPerFrame throttles the autotile animation: the water and
// waterfall frame advances once per this many update ticks.
const AnimationTicksPerFrame = 30

// Window is the derived visible cell range [StartX, StartX+Cols) x
// [StartY, StartY+Rows).
type Window struct {
	StartX int
	StartY int
	Cols   int
	Rows   int
}

// Viewport tracks the scroll-derived cell window and decides when the
// draw layers need a full re-expansion. Re-running the quadrant expansion
// is the dominant per-frame cost, so it only happens when the committed
// (startX, startY, animation frame) triple changes or a repaint was
// requested explicitly.
type Viewport struct {
	TileWidth    int
	TileHeight   int
	Margin       int
	ScreenWidth  int
	ScreenHeight int

	needsRepaint bool
	painted      bool
	lastStartX   int
	lastStartY   int
	lastFrame    int
}

// Window computes the visible cell range for a scroll origin, padded by
// the margin plus one cell for partial-tile overlap.
func (v *Viewport) Window(originX, originY float64) Window {
	ox := int(math.Floor(originX))
	oy := int(math.Floor(originY))
	w := v.ScreenWidth + v.Margin*2
	h := v.ScreenHeight + v.Margin*2
	return Window{
		StartX: mathutil.FloorDiv(ox-v.Margin, v.TileWidth),
		StartY: mathutil.FloorDiv(oy-v.Margin, v.TileHeight),
		Cols:   (w+v.TileWidth-1)/v.TileWidth + 1,
		Rows:   (h+v.TileHeight-1)/v.TileHeight + 1,
	}
}

// RequestRepaint forces a full re-expansion on the next frame regardless
// of scroll or animation state.
func (v *Viewport) RequestRepaint() {
	v.needsRepaint = true
}

// ShouldRepaint reports whether the layers must be rebuilt for the given
// window and animation frame.
func (v *Viewport) ShouldRepaint(w Window, frame int) bool {
	return v.needsRepaint || !v.painted ||
		frame != v.lastFrame ||
		w.StartX != v.lastStartX || w.StartY != v.lastStartY
}

// Commit records a completed expansion, clearing any pending repaint
// request.
func (v *Viewport) Commit(w Window, frame int) {
	v.lastStartX = w.StartX
	v.lastStartY = w.StartY
	v.lastFrame = frame
	v.painted = true
	v.needsRepaint = false
}

// LastStart returns the committed window anchor cell.
func (v *Viewport) LastStart() (int, int) {
	return v.lastStartX, v.lastStartY
}
