// Package softdraw composites recorded tile blit commands into an
// in-memory RGBA image. It backs the snapshot tool and headless tests;
// the interactive viewer uses the GL batcher instead.
package softdraw

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/karuta-dev/emaki/internal/engine/bitmap"
	"github.com/karuta-dev/emaki/internal/engine/tilemap"
)

// shadowFill is the flat overlay used for shadow commands.
var shadowFill = image.NewUniform(color.RGBA{A: 128})

// Compositor replays rect commands against a set of tileset bank images.
type Compositor struct {
	bitmaps []*bitmap.Resource
}

// New creates a compositor sourcing from the given bank resources,
// indexed by set number.
func New(bitmaps []*bitmap.Resource) *Compositor {
	return &Compositor{bitmaps: bitmaps}
}

// Compose draws the commands into dst in order, shifted by (ox, oy).
// Commands referencing a missing or unloaded bank are skipped.
func (c *Compositor) Compose(dst *image.RGBA, rects []tilemap.Rect, ox, oy int) {
	for _, r := range rects {
		target := image.Rect(r.DstX+ox, r.DstY+oy, r.DstX+ox+r.W, r.DstY+oy+r.H)

		if r.Set == tilemap.ShadowSet {
			draw.Draw(dst, target, shadowFill, image.Point{}, draw.Over)
			continue
		}

		src := c.bank(r.Set)
		if src == nil {
			continue
		}
		draw.Draw(dst, target, src, image.Pt(r.SrcX, r.SrcY), draw.Over)
	}
}

func (c *Compositor) bank(set int) *image.RGBA {
	if set < 0 || set >= len(c.bitmaps) {
		return nil
	}
	b := c.bitmaps[set]
	if b == nil || !b.IsReady() {
		return nil
	}
	return b.Image()
}
