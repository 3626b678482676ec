package stage

// Sprite is a positioned drawable that blits one source rectangle from a
// tileset bank. Dynamic elements (characters, particles, markers) are
// sprites; the tilemap's own layers are separate drawables.
type Sprite struct {
	X, Y    float64
	Plane   int // one of the Z constants
	Set     int
	SrcX    int
	SrcY    int
	W, H    int
	Opacity float64
	Visible bool
}

// NewSprite creates a visible, fully opaque sprite on the given z plane.
func NewSprite(plane int) *Sprite {
	return &Sprite{Plane: plane, Opacity: 1, Visible: true}
}

// Z returns the sprite's layer plane.
func (s *Sprite) Z() int {
	return s.Plane
}

// ScreenY returns the sprite's pixel y for depth ordering.
func (s *Sprite) ScreenY() float64 {
	return s.Y
}

// Update is a no-op; owners drive sprite motion directly.
func (s *Sprite) Update() {}
