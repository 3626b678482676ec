package softdraw

import (
	"image"
	"image/color"
	"testing"

	"github.com/karuta-dev/emaki/internal/engine/bitmap"
	"github.com/karuta-dev/emaki/internal/engine/tilemap"
)

func makeBank(w, h int, c color.RGBA) *bitmap.Resource {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return bitmap.FromImage(img)
}

func TestComposeCopiesFromBank(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	comp := New([]*bitmap.Resource{makeBank(16, 16, red)})

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	comp.Compose(dst, []tilemap.Rect{
		{Set: 0, SrcX: 4, SrcY: 4, DstX: 2, DstY: 2, W: 4, H: 4},
	}, 0, 0)

	if got := dst.RGBAAt(3, 3); got != red {
		t.Errorf("inside blit = %v, expected %v", got, red)
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("outside blit = %v, expected untouched", got)
	}
}

func TestComposeOffset(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	comp := New([]*bitmap.Resource{makeBank(16, 16, red)})

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	comp.Compose(dst, []tilemap.Rect{
		{Set: 0, W: 2, H: 2},
	}, 5, 5)

	if got := dst.RGBAAt(6, 6); got != red {
		t.Errorf("shifted blit = %v, expected %v", got, red)
	}
	if got := dst.RGBAAt(1, 1); got != (color.RGBA{}) {
		t.Errorf("origin = %v, expected untouched after offset", got)
	}
}

func TestComposeShadow(t *testing.T) {
	comp := New(nil)

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			dst.SetRGBA(x, y, white)
		}
	}

	comp.Compose(dst, []tilemap.Rect{
		{Set: tilemap.ShadowSet, DstX: 0, DstY: 0, W: 2, H: 2},
	}, 0, 0)

	want := color.RGBA{127, 127, 127, 255}
	if got := dst.RGBAAt(1, 1); got != want {
		t.Errorf("shadowed pixel = %v, expected %v", got, want)
	}
	if got := dst.RGBAAt(3, 3); got != white {
		t.Errorf("unshadowed pixel = %v, expected %v", got, white)
	}
}

func TestComposeSkipsMissingBanks(t *testing.T) {
	comp := New([]*bitmap.Resource{nil, bitmap.New("never-loaded.png")})

	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	comp.Compose(dst, []tilemap.Rect{
		{Set: 0, W: 4, H: 4},
		{Set: 1, W: 4, H: 4},
		{Set: 7, W: 4, H: 4},
	}, 0, 0)

	if got := dst.RGBAAt(2, 2); got != (color.RGBA{}) {
		t.Errorf("pixel = %v, expected untouched for missing banks", got)
	}
}
