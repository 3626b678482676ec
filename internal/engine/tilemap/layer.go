package tilemap

// ShadowSet is the sentinel set number for shadow commands: a flat
// half-opacity black overlay instead of a texture sample.
const ShadowSet = -1

// Layer accepts rectangle blit commands for one z-plane of the tilemap.
// The surrounding renderer implements it; commands are immutable once
// added and valid until the next Clear.
type Layer interface {
	Clear()
	AddRect(set, srcX, srcY, dstX, dstY, w, h int)
}

// Rect is one recorded blit command: copy a w x h region of tileset bank
// set from (SrcX, SrcY) to layer position (DstX, DstY).
type Rect struct {
	Set  int
	SrcX int
	SrcY int
	DstX int
	DstY int
	W    int
	H    int
}

// RectLayer records commands in insertion order. It backs the software
// compositor and the GL batcher, and doubles as a test probe.
type RectLayer struct {
	rects []Rect
}

// Clear drops all recorded commands.
func (l *RectLayer) Clear() {
	l.rects = l.rects[:0]
}

// AddRect records one blit command.
func (l *RectLayer) AddRect(set, srcX, srcY, dstX, dstY, w, h int) {
	l.rects = append(l.rects, Rect{
		Set:  set,
		SrcX: srcX,
		SrcY: srcY,
		DstX: dstX,
		DstY: dstY,
		W:    w,
		H:    h,
	})
}

// Rects returns the recorded commands. The slice is only valid until the
// next Clear.
func (l *RectLayer) Rects() []Rect {
	return l.rects
}
