package gldraw

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture is one tileset bank uploaded to the GPU.
type Texture struct {
	id     uint32
	width  int
	height int
}

// NewTexture uploads an RGBA image. Tiles are sampled with nearest
// filtering so scaled output keeps hard pixel edges.
func NewTexture(img *image.RGBA) *Texture {
	t := &Texture{
		width:  img.Bounds().Dx(),
		height: img.Bounds().Dy(),
	}

	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(t.width), int32(t.height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Close releases the GPU texture.
func (t *Texture) Close() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
