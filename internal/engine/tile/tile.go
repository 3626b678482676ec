// Package tile classifies tile identifiers and holds the autotile shape
// tables. A tile ID packs the tileset bank, the autotile terrain kind, and
// the junction shape into a single integer in [0, IDMax).
package tile

// Tile ID range boundaries. Bank ranges are fixed, non-overlapping, and
// ascending: B/C/D/E are simple indexed banks of 256 tiles each, A5 holds
// plain autotile-bank tiles, and A1..A4 hold autotiles (48 IDs per kind).
const (
	IDB   = 0
	IDC   = 256
	IDD   = 512
	IDE   = 768
	IDA5  = 1536
	IDA1  = 2048
	IDA2  = 2816
	IDA3  = 4352
	IDA4  = 5888
	IDMax = 8192
)

// ShapesPerKind is the number of tile IDs one autotile kind occupies.
const ShapesPerKind = 48

// IsVisible reports whether the tile renders at all. Zero is the empty
// tile and anything at or past IDMax is out of range.
func IsVisible(id int) bool {
	return id > 0 && id < IDMax
}

// IsAutotile reports whether the tile ID belongs to the A1..A4 autotile
// ranges.
func IsAutotile(id int) bool {
	return id >= IDA1
}

// AutotileKind returns the terrain family of an autotile, independent of
// its junction shape. Only meaningful when IsAutotile(id).
func AutotileKind(id int) int {
	return (id - IDA1) / ShapesPerKind
}

// AutotileShape returns the junction shape index of an autotile. Only
// meaningful when IsAutotile(id).
func AutotileShape(id int) int {
	return (id - IDA1) % ShapesPerKind
}

// MakeAutotileID composes an autotile ID from a kind and a shape.
func MakeAutotileID(kind, shape int) int {
	return IDA1 + kind*ShapesPerKind + shape
}

// IsSameKind reports whether two tiles join visually: two autotiles join
// when they share a kind, anything else only joins with an identical ID.
func IsSameKind(a, b int) bool {
	if IsAutotile(a) && IsAutotile(b) {
		return AutotileKind(a) == AutotileKind(b)
	}
	return a == b
}

// IsA1 reports membership in the A1 (water/animated ground) bank.
func IsA1(id int) bool {
	return id >= IDA1 && id < IDA2
}

// IsA2 reports membership in the A2 (ground detail) bank.
func IsA2(id int) bool {
	return id >= IDA2 && id < IDA3
}

// IsA3 reports membership in the A3 (building) bank.
func IsA3(id int) bool {
	return id >= IDA3 && id < IDA4
}

// IsA4 reports membership in the A4 (wall) bank.
func IsA4(id int) bool {
	return id >= IDA4 && id < IDMax
}

// IsA5 reports membership in the A5 (plain ground) bank.
func IsA5(id int) bool {
	return id >= IDA5 && id < IDA1
}

// IsWater reports whether the tile is a water surface. The A1 sub-range
// [IDA1+96, IDA1+192) holds non-water ground animations and is excluded.
func IsWater(id int) bool {
	return IsA1(id) && !(id >= IDA1+96 && id < IDA1+192)
}

// IsWaterfall reports whether the tile is a waterfall column. Waterfalls
// live in the upper half of A1 at odd kinds.
func IsWaterfall(id int) bool {
	if id >= IDA1+192 && id < IDA2 {
		return AutotileKind(id)%2 == 1
	}
	return false
}

// IsGround reports whether the tile is walkable-level terrain (A1, A2, A5).
func IsGround(id int) bool {
	return IsA1(id) || IsA2(id) || IsA5(id)
}

// IsShadowing reports whether the tile occludes shadows cast by table
// edges (A3 and A4 structures).
func IsShadowing(id int) bool {
	return IsA3(id) || IsA4(id)
}

// IsRoof reports whether the tile is an A3 roof piece.
func IsRoof(id int) bool {
	return IsA3(id) && AutotileKind(id)%16 < 8
}

// IsWallTop reports whether the tile is an A4 wall-top piece.
func IsWallTop(id int) bool {
	return IsA4(id) && AutotileKind(id)%16 < 8
}

// IsWallSide reports whether the tile is a wall-side piece of A3 or A4.
func IsWallSide(id int) bool {
	return (IsA3(id) || IsA4(id)) && AutotileKind(id)%16 >= 8
}

// IsWall reports whether the tile is any A4 wall piece.
func IsWall(id int) bool {
	return IsWallTop(id) || IsWallSide(id)
}

// IsFloorType reports whether the tile expands through the 48-shape floor
// table.
func IsFloorType(id int) bool {
	return (IsA1(id) && !IsWaterfall(id)) || IsA2(id) || IsWallTop(id)
}

// IsWallType reports whether the tile expands through the 16-shape wall
// table.
func IsWallType(id int) bool {
	return IsRoof(id) || IsWallSide(id)
}

// SetNumber returns the tileset bank index a simple (non-autotile) tile
// samples from: A5 maps to bank 4, the B/C/D/E banks map to 5..8. IDs in
// unused gaps produce a best-guess index rather than an error.
func SetNumber(id int) int {
	if IsA5(id) {
		return 4
	}
	return 5 + id/256
}
