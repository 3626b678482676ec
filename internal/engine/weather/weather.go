// Package weather renders screen-space rain, storm and snow particle
// effects over the map.
package weather

import (
	"fmt"
	"math/rand"

	"github.com/karuta-dev/emaki/internal/engine/stage"
)

// Type selects the particle effect.
type Type int

const (
	None Type = iota
	Rain
	Storm
	Snow
)

// ParseType maps a config string to a weather type.
func ParseType(s string) (Type, error) {
	switch s {
	case "", "none":
		return None, nil
	case "rain":
		return Rain, nil
	case "storm":
		return Storm, nil
	case "snow":
		return Snow, nil
	}
	return None, fmt.Errorf("unknown weather type %q", s)
}

// Particle is one falling streak or flake in screen space.
type Particle struct {
	X       float64
	Y       float64
	Opacity float64 // 0..255
}

// motion per type: drift, fall speed, fade per tick, quad size.
type motion struct {
	dx, dy float64
	fade   float64
	w, h   int
}

var motions = map[Type]motion{
	Rain:  {dx: -1.2, dy: 5.9, fade: 6, w: 1, h: 16},
	Storm: {dx: -3.1, dy: 7.4, fade: 8, w: 2, h: 24},
	Snow:  {dx: -0.6, dy: 2.9, fade: 3, w: 3, h: 3},
}

// particlesPerPower scales the particle count from the power setting.
const particlesPerPower = 10

// Weather animates a pool of particles sized by Power. It owns a drawable
// container by composition so overlay sprites can ride along with the
// effect; the tilemap keeps its own.
type Weather struct {
	Kind  Type
	Power float64

	screenWidth  int
	screenHeight int

	container stage.Container
	particles []Particle
	rng       *rand.Rand
}

// New creates a weather effect covering the given screen size.
func New(screenWidth, screenHeight int) *Weather {
	return &Weather{
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		rng:          rand.New(rand.NewSource(1)),
	}
}

// Container exposes the effect's drawable container.
func (w *Weather) Container() *stage.Container {
	return &w.container
}

// Resize updates the covered screen area.
func (w *Weather) Resize(screenWidth, screenHeight int) {
	w.screenWidth = screenWidth
	w.screenHeight = screenHeight
}

// Particles returns the live pool for rendering. Empty when Kind is None.
func (w *Weather) Particles() []Particle {
	return w.particles
}

// ParticleSize returns the quad dimensions for the current type.
func (w *Weather) ParticleSize() (int, int) {
	m, ok := motions[w.Kind]
	if !ok {
		return 0, 0
	}
	return m.w, m.h
}

// Update advances every particle by one tick, rebirthing faded ones at a
// random position, and ticks the container's children.
func (w *Weather) Update() {
	w.container.Update()

	if w.Kind == None || w.Power <= 0 {
		w.particles = w.particles[:0]
		return
	}

	target := int(w.Power * particlesPerPower)
	for len(w.particles) < target {
		w.particles = append(w.particles, w.rebirth())
	}
	if len(w.particles) > target {
		w.particles = w.particles[:target]
	}

	m := motions[w.Kind]
	for i := range w.particles {
		p := &w.particles[i]
		p.X += m.dx
		p.Y += m.dy
		p.Opacity -= m.fade
		if p.Opacity < 40 {
			*p = w.rebirth()
		}
	}
}

// rebirth places a particle above or on screen with fresh opacity.
func (w *Weather) rebirth() Particle {
	return Particle{
		X:       float64(w.rng.Intn(w.screenWidth+100) - 100),
		Y:       float64(w.rng.Intn(w.screenHeight+200) - 200),
		Opacity: float64(160 + w.rng.Intn(60)),
	}
}
