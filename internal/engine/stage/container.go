// Package stage provides the ordered drawable container and depth sorting
// shared by the tilemap layers, sprites, and overlay effects.
package stage

import "sort"

// Z-order layer constants for drawable children. Tiles and characters
// interleave on these fixed planes; within a plane, children paint
// back-to-front by screen y.
const (
	ZLowerTiles       = 0
	ZLowerCharacters  = 1
	ZNormalCharacters = 3
	ZUpperTiles       = 4
	ZUpperCharacters  = 5
	ZAirshipShadow    = 6
	ZBalloon          = 7
	ZAnimation        = 8
	ZDestination      = 9
)

// Drawable is anything the container can order and tick.
type Drawable interface {
	// Z returns the fixed layer plane the drawable belongs to.
	Z() int
	// ScreenY returns the pixel y used for back-to-front ordering
	// within a plane.
	ScreenY() float64
	// Update advances the drawable by one frame.
	Update()
}

type child struct {
	Drawable
	seq uint64
}

// Container is an ordered list of drawables. The tilemap and the weather
// effect each own one by composition.
type Container struct {
	children []child
	nextSeq  uint64
}

// Add appends a drawable. Insertion order is remembered and breaks
// z/y ties deterministically, so equal sprites never flicker past each
// other between frames.
func (c *Container) Add(d Drawable) {
	c.children = append(c.children, child{Drawable: d, seq: c.nextSeq})
	c.nextSeq++
}

// Remove detaches the first occurrence of d. Reports whether it was found.
func (c *Container) Remove(d Drawable) bool {
	for i := range c.children {
		if c.children[i].Drawable == d {
			c.children = append(c.children[:i], c.children[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of children.
func (c *Container) Len() int {
	return len(c.children)
}

// Each visits the children in their current order.
func (c *Container) Each(fn func(Drawable)) {
	for i := range c.children {
		fn(c.children[i].Drawable)
	}
}

// Update ticks every child in current order.
func (c *Container) Update() {
	for i := range c.children {
		c.children[i].Update()
	}
}

// Sort orders the children by (z, screen y, insertion sequence). The sort
// is stable; run it once per frame after any y-affecting update.
func (c *Container) Sort() {
	sort.SliceStable(c.children, func(i, j int) bool {
		a, b := &c.children[i], &c.children[j]
		if a.Z() != b.Z() {
			return a.Z() < b.Z()
		}
		if a.ScreenY() != b.ScreenY() {
			return a.ScreenY() < b.ScreenY()
		}
		return a.seq < b.seq
	})
}
