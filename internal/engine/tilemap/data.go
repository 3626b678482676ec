// Package tilemap compiles a layered tile grid into batched rectangle
// blit commands. Each frame the visible cell window is expanded into a
// lower and an upper draw layer; the expansion is skipped entirely when
// neither the scroll cell, the animation frame, nor the map changed.
package tilemap

import "github.com/karuta-dev/emaki/pkg/mathutil"

// Logical data planes per cell. The shadow plane stores a 4-bit quadrant
// mask instead of a tile ID.
const (
	PlaneGround      = 0
	PlaneGroundDeco  = 1
	PlaneOverlay     = 2
	PlaneOverlayDeco = 3
	PlaneShadow      = 4
	PlaneCount       = 5
)

// Data owns the flattened five-plane tile array for one loaded map.
// SetData replaces the whole map atomically; there is no per-cell
// mutation. Indexing is (plane*height + y)*width + x.
type Data struct {
	HorizontalWrap bool
	VerticalWrap   bool

	width  int
	height int
	tiles  []int16
}

// SetData replaces the map contents. The array holds PlaneCount planes of
// width*height cells each; a short array reads as zero past its end.
func (d *Data) SetData(width, height int, tiles []int16) {
	d.width = width
	d.height = height
	d.tiles = tiles
}

// Width returns the map width in cells.
func (d *Data) Width() int {
	return d.width
}

// Height returns the map height in cells.
func (d *Data) Height() int {
	return d.height
}

// Read returns the value at (x, y) on the given plane. Coordinates wrap
// modulo the map size when the matching wrap flag is set; anything still
// out of bounds reads as 0.
func (d *Data) Read(x, y, plane int) int {
	if d.width <= 0 || d.height <= 0 {
		return 0
	}
	if d.HorizontalWrap {
		x = mathutil.WrapMod(x, d.width)
	}
	if d.VerticalWrap {
		y = mathutil.WrapMod(y, d.height)
	}
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0
	}
	i := (plane*d.height+y)*d.width + x
	if i < 0 || i >= len(d.tiles) {
		return 0
	}
	return int(d.tiles[i])
}
