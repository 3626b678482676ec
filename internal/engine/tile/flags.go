package tile

// Flag bits consumed by the renderer. The full flag word also carries
// passability and terrain-tag bits used by gameplay code; only these two
// affect how a tile is drawn.
const (
	FlagHigher = 0x10 // render above characters
	FlagTable  = 0x80 // A2 autotile gets a raised front edge
)

// Flags is the per-tile-ID flag table supplied by the tileset, typically
// IDMax entries. Reads outside the table degrade to zero.
type Flags []uint16

// Get returns the flag word for a tile ID, or 0 when the table has no
// entry for it.
func (f Flags) Get(id int) uint16 {
	if id < 0 || id >= len(f) {
		return 0
	}
	return f[id]
}

// IsHigher reports whether the tile renders above characters.
func (f Flags) IsHigher(id int) bool {
	return f.Get(id)&FlagHigher != 0
}

// IsTable reports whether the tile is a table: an A2 autotile whose front
// edge is redrawn with a raised lip when it abuts a walkway.
func (f Flags) IsTable(id int) bool {
	return IsA2(id) && f.Get(id)&FlagTable != 0
}
