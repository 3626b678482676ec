package tilemap

import "github.com/karuta-dev/emaki/internal/engine/tile"

// waterSurfaceFrames maps the animation frame to the water surface column,
// giving the back-and-forth ripple cadence.
var waterSurfaceFrames = [4]int{0, 1, 2, 1}

// tableTopRemap reorders the top-edge quadrant column when an A2 table
// tile fakes its raised front lip.
var tableTopRemap = [4]int{0, 3, 2, 1}

// Expander compiles one map cell into rect commands on the lower and
// upper draw layers. It reads the cell's five planes plus the decoration
// plane of the cell above (for table-edge stitching) and resolves
// autotile shapes through the tile shape tables.
type Expander struct {
	Data  *Data
	Flags tile.Flags

	TileWidth  int
	TileHeight int

	// AnimationFrame advances water and waterfall source offsets.
	AnimationFrame int

	Lower Layer
	Upper Layer

	// Overpass reports whether a cell renders its overlay planes above
	// characters unconditionally (raised bridges). Nil means no cell
	// does, which is the engine's base behavior; content packs override
	// it.
	Overpass func(mx, my int) bool
}

// ExpandSpot emits the commands for the cell at window position (x, y)
// with the window anchored at map cell (startX, startY).
func (e *Expander) ExpandSpot(startX, startY, x, y int) {
	mx := startX + x
	my := startY + y
	dx := x * e.TileWidth
	dy := y * e.TileHeight

	tileID0 := e.Data.Read(mx, my, PlaneGround)
	tileID1 := e.Data.Read(mx, my, PlaneGroundDeco)
	tileID2 := e.Data.Read(mx, my, PlaneOverlay)
	tileID3 := e.Data.Read(mx, my, PlaneOverlayDeco)
	shadowBits := e.Data.Read(mx, my, PlaneShadow)
	upperTileID1 := e.Data.Read(mx, my-1, PlaneGroundDeco)

	e.drawTile(e.route(tileID0), tileID0, dx, dy)
	e.drawTile(e.route(tileID1), tileID1, dx, dy)

	e.drawShadow(e.Lower, shadowBits, dx, dy)
	if e.Flags.IsTable(upperTileID1) && !e.Flags.IsTable(tileID1) {
		if !tile.IsShadowing(tileID0) {
			e.drawTableEdge(e.Lower, upperTileID1, dx, dy)
		}
	}

	if e.Overpass != nil && e.Overpass(mx, my) {
		e.drawTile(e.Upper, tileID2, dx, dy)
		e.drawTile(e.Upper, tileID3, dx, dy)
	} else {
		e.drawTile(e.route(tileID2), tileID2, dx, dy)
		e.drawTile(e.route(tileID3), tileID3, dx, dy)
	}
}

// route picks the layer a tile renders into based on its "higher" flag.
func (e *Expander) route(id int) Layer {
	if e.Flags.IsHigher(id) {
		return e.Upper
	}
	return e.Lower
}

func (e *Expander) drawTile(layer Layer, id, dx, dy int) {
	if !tile.IsVisible(id) {
		return
	}
	if tile.IsAutotile(id) {
		e.drawAutotile(layer, id, dx, dy)
		return
	}
	e.drawNormalTile(layer, id, dx, dy)
}

// drawNormalTile emits one full-size rect for a simple indexed tile. IDs
// in unused numeric gaps still produce a (possibly meaningless) source
// offset; malformed map data degrades instead of erroring.
func (e *Expander) drawNormalTile(layer Layer, id, dx, dy int) {
	set := tile.SetNumber(id)
	w := e.TileWidth
	h := e.TileHeight
	sx := (id/128%2*8 + id%8) * w
	sy := id % 256 / 8 % 16 * h
	layer.AddRect(set, sx, sy, dx, dy, w, h)
}

// drawAutotile expands an autotile into up to four quarter rects, picking
// the shape table and the base quadrant offset by bank. A2 tiles in table
// mode split the quadrants touching the front edge to fake a raised lip.
func (e *Expander) drawAutotile(layer Layer, id, dx, dy int) {
	table := tile.FloorShapes[:]
	kind := tile.AutotileKind(id)
	shape := tile.AutotileShape(id)
	tx := kind % 8
	ty := kind / 8
	var set, bx, by int
	isTable := false

	switch {
	case tile.IsA1(id):
		waterSurface := waterSurfaceFrames[e.AnimationFrame%4]
		set = 0
		switch {
		case kind == 0:
			bx = waterSurface * 2
			by = 0
		case kind == 1:
			bx = waterSurface * 2
			by = 3
		case kind == 2:
			bx = 6
			by = 0
		case kind == 3:
			bx = 6
			by = 3
		default:
			bx = tx / 4 * 8
			by = ty*6 + tx/2%2*3
			if kind%2 == 0 {
				bx += waterSurface * 2
			} else {
				bx += 6
				table = tile.WaterfallShapes[:]
				by += e.AnimationFrame % 3
			}
		}
	case tile.IsA2(id):
		set = 1
		bx = tx * 2
		by = (ty - 2) * 3
		isTable = e.Flags.IsTable(id)
	case tile.IsA3(id):
		set = 2
		bx = tx * 2
		by = (ty - 6) * 2
		table = tile.WallShapes[:]
	case tile.IsA4(id):
		set = 3
		bx = tx * 2
		by = ((ty-10)*5 + ty%2) / 2
		if ty%2 == 1 {
			table = tile.WallShapes[:]
		}
	}

	if shape < 0 || shape >= len(table) {
		return
	}
	quads := table[shape]
	w1 := e.TileWidth / 2
	h1 := e.TileHeight / 2

	for i := 0; i < 4; i++ {
		qsx := quads[i][0]
		qsy := quads[i][1]
		sx := (bx*2 + qsx) * w1
		sy := (by*2 + qsy) * h1
		dx1 := dx + i%2*w1
		dy1 := dy + i/2*h1

		if isTable && (qsy == 1 || qsy == 5) {
			// Quadrants touching the table edge: draw the lip from row
			// 3 full height, then the original quadrant shifted down by
			// a half quadrant.
			qsx2 := qsx
			if qsy == 1 {
				qsx2 = tableTopRemap[qsx]
			}
			sx2 := (bx*2 + qsx2) * w1
			sy2 := (by*2 + 3) * h1
			layer.AddRect(set, sx2, sy2, dx1, dy1, w1, h1)
			layer.AddRect(set, sx, sy, dx1, dy1+h1/2, w1, h1/2)
		} else {
			layer.AddRect(set, sx, sy, dx1, dy1, w1, h1)
		}
	}
}

// drawTableEdge emits the two bottom-half rects of a table autotile's
// front lip into the cell below it.
func (e *Expander) drawTableEdge(layer Layer, id, dx, dy int) {
	if !tile.IsA2(id) {
		return
	}
	kind := tile.AutotileKind(id)
	shape := tile.AutotileShape(id)
	if shape < 0 || shape >= len(tile.FloorShapes) {
		return
	}
	tx := kind % 8
	ty := kind / 8
	set := 1
	bx := tx * 2
	by := (ty - 2) * 3
	quads := tile.FloorShapes[shape]
	w1 := e.TileWidth / 2
	h1 := e.TileHeight / 2

	for i := 0; i < 2; i++ {
		qsx := quads[2+i][0]
		qsy := quads[2+i][1]
		sx := (bx*2 + qsx) * w1
		sy := (by*2+qsy)*h1 + h1/2
		dx1 := dx + i%2*w1
		dy1 := dy + i/2*h1
		layer.AddRect(set, sx, sy, dx1, dy1, w1, h1/2)
	}
}

// drawShadow emits one flat-overlay quarter rect per set bit in the
// 4-bit quadrant mask.
func (e *Expander) drawShadow(layer Layer, shadowBits, dx, dy int) {
	if shadowBits&0x0f == 0 {
		return
	}
	w1 := e.TileWidth / 2
	h1 := e.TileHeight / 2
	for i := 0; i < 4; i++ {
		if shadowBits&(1<<i) != 0 {
			dx1 := dx + i%2*w1
			dy1 := dy + i/2*h1
			layer.AddRect(ShadowSet, 0, 0, dx1, dy1, w1, h1)
		}
	}
}
