// Package gldraw renders recorded tile blit commands and flat quads with
// OpenGL. It batches consecutive commands against the same tileset bank
// into one draw call and streams vertices each frame.
package gldraw

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/karuta-dev/emaki/internal/engine/tilemap"
)

// Renderer draws 2D quads in screen space with a top-left origin.
type Renderer struct {
	screenWidth  int
	screenHeight int

	// Shader program for textured tile quads
	texShader uint32

	// Shader program for flat color quads (shadows, weather)
	flatShader uint32

	texVAO uint32
	texVBO uint32

	flatVAO uint32
	flatVBO uint32

	texVertices  []float32
	flatVertices []float32

	// Tileset bank textures by set number
	textures []*Texture

	proj [16]float32
}

// New creates a renderer targeting the given screen size.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize OpenGL: %w", err)
	}

	r := &Renderer{
		screenWidth:  width,
		screenHeight: height,
		texVertices:  make([]float32, 0, 4096),
		flatVertices: make([]float32, 0, 4096),
	}

	var err error
	r.texShader, err = r.createTexShader()
	if err != nil {
		return nil, fmt.Errorf("create tile shader: %w", err)
	}

	r.flatShader, err = r.createFlatShader()
	if err != nil {
		return nil, fmt.Errorf("create flat shader: %w", err)
	}

	if err := r.createTexBuffers(); err != nil {
		return nil, fmt.Errorf("create tile buffers: %w", err)
	}
	if err := r.createFlatBuffers(); err != nil {
		return nil, fmt.Errorf("create flat buffers: %w", err)
	}

	return r, nil
}

// Resize updates the screen dimensions and the GL viewport.
func (r *Renderer) Resize(width, height int) {
	r.screenWidth = width
	r.screenHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// SetTextures installs the bank textures, indexed by set number. The
// renderer does not own them; Close them separately when replacing.
func (r *Renderer) SetTextures(textures []*Texture) {
	r.textures = textures
}

// Begin clears the frame and prepares GL state for 2D drawing.
func (r *Renderer) Begin() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	r.proj = orthoMatrix(0, float32(r.screenWidth), float32(r.screenHeight), 0, -1, 1)
}

// End resets bindings after a frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
}

// DrawRects replays one layer's commands shifted by (ox, oy). Each run
// from batchRuns becomes one draw call, textured or flat, issued in the
// recorded order so shadows land exactly between the tiles recorded
// before and after them.
func (r *Renderer) DrawRects(rects []tilemap.Rect, ox, oy float64, opacity float32) {
	for _, run := range batchRuns(rects) {
		if run[0].Set == tilemap.ShadowSet {
			r.flatVertices = r.flatVertices[:0]
			for _, rect := range run {
				r.addFlatQuad(
					float32(float64(rect.DstX)+ox), float32(float64(rect.DstY)+oy),
					float32(rect.W), float32(rect.H),
					0, 0, 0, 0.5*opacity)
			}
			r.flushFlat()
			continue
		}

		tex := r.bank(run[0].Set)
		if tex == nil {
			continue
		}
		tw, th := tex.Size()
		for _, rect := range run {
			u0 := float32(rect.SrcX) / float32(tw)
			v0 := float32(rect.SrcY) / float32(th)
			u1 := float32(rect.SrcX+rect.W) / float32(tw)
			v1 := float32(rect.SrcY+rect.H) / float32(th)

			r.addTexturedQuad(
				float32(float64(rect.DstX)+ox), float32(float64(rect.DstY)+oy),
				float32(rect.W), float32(rect.H),
				u0, v0, u1, v1, opacity)
		}
		r.flushTextured(run[0].Set)
	}
}

// batchRuns splits a command list into maximal runs of consecutive
// commands against the same set, shadow runs included. A run is one draw
// call; run order is the recorded command order.
func batchRuns(rects []tilemap.Rect) [][]tilemap.Rect {
	var runs [][]tilemap.Rect
	for _, rect := range rects {
		if n := len(runs); n > 0 && runs[n-1][0].Set == rect.Set {
			runs[n-1] = append(runs[n-1], rect)
			continue
		}
		runs = append(runs, []tilemap.Rect{rect})
	}
	return runs
}

// DrawQuad draws one textured quad immediately. Dynamic sprites use this
// between layer passes.
func (r *Renderer) DrawQuad(set, srcX, srcY int, dstX, dstY float64, w, h int, opacity float32) {
	tex := r.bank(set)
	if tex == nil {
		return
	}

	tw, th := tex.Size()
	u0 := float32(srcX) / float32(tw)
	v0 := float32(srcY) / float32(th)
	u1 := float32(srcX+w) / float32(tw)
	v1 := float32(srcY+h) / float32(th)

	r.addTexturedQuad(float32(dstX), float32(dstY), float32(w), float32(h),
		u0, v0, u1, v1, opacity)
	r.flushTextured(set)
}

// FillRect draws one flat color quad immediately.
func (r *Renderer) FillRect(x, y, w, h, cr, cg, cb, ca float32) {
	r.flatVertices = r.flatVertices[:0]
	r.addFlatQuad(x, y, w, h, cr, cg, cb, ca)
	r.flushFlat()
}

// Close releases renderer resources. Installed textures are not owned.
func (r *Renderer) Close() {
	if r.texVAO != 0 {
		gl.DeleteVertexArrays(1, &r.texVAO)
	}
	if r.texVBO != 0 {
		gl.DeleteBuffers(1, &r.texVBO)
	}
	if r.flatVAO != 0 {
		gl.DeleteVertexArrays(1, &r.flatVAO)
	}
	if r.flatVBO != 0 {
		gl.DeleteBuffers(1, &r.flatVBO)
	}
	if r.texShader != 0 {
		gl.DeleteProgram(r.texShader)
	}
	if r.flatShader != 0 {
		gl.DeleteProgram(r.flatShader)
	}
}

func (r *Renderer) bank(set int) *Texture {
	if set < 0 || set >= len(r.textures) {
		return nil
	}
	return r.textures[set]
}

// addTexturedQuad appends two triangles to the textured vertex buffer.
// Vertex format: x, y, z, u, v, r, g, b, a (9 floats).
func (r *Renderer) addTexturedQuad(x, y, w, h, u0, v0, u1, v1, opacity float32) {
	r.texVertices = append(r.texVertices,
		x, y, 0, u0, v0, 1, 1, 1, opacity,
		x+w, y, 0, u1, v0, 1, 1, 1, opacity,
		x+w, y+h, 0, u1, v1, 1, 1, 1, opacity,
	)
	r.texVertices = append(r.texVertices,
		x, y, 0, u0, v0, 1, 1, 1, opacity,
		x+w, y+h, 0, u1, v1, 1, 1, 1, opacity,
		x, y+h, 0, u0, v1, 1, 1, 1, opacity,
	)
}

// addFlatQuad appends two triangles to the flat vertex buffer.
// Vertex format: x, y, z, r, g, b, a (7 floats).
func (r *Renderer) addFlatQuad(x, y, w, h, cr, cg, cb, ca float32) {
	r.flatVertices = append(r.flatVertices,
		x, y, 0, cr, cg, cb, ca,
		x+w, y, 0, cr, cg, cb, ca,
		x+w, y+h, 0, cr, cg, cb, ca,
	)
	r.flatVertices = append(r.flatVertices,
		x, y, 0, cr, cg, cb, ca,
		x+w, y+h, 0, cr, cg, cb, ca,
		x, y+h, 0, cr, cg, cb, ca,
	)
}

// flushTextured draws the pending textured batch against one bank.
func (r *Renderer) flushTextured(set int) {
	if len(r.texVertices) == 0 {
		return
	}
	tex := r.bank(set)
	if tex == nil {
		r.texVertices = r.texVertices[:0]
		return
	}

	gl.UseProgram(r.texShader)
	projLoc := gl.GetUniformLocation(r.texShader, gl.Str("uProjection\x00"))
	gl.UniformMatrix4fv(projLoc, 1, false, &r.proj[0])

	texLoc := gl.GetUniformLocation(r.texShader, gl.Str("uTexture\x00"))
	gl.Uniform1i(texLoc, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)

	gl.BindVertexArray(r.texVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.texVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.texVertices)*4, unsafe.Pointer(&r.texVertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.texVertices)/9)) // 9 floats per vertex

	r.texVertices = r.texVertices[:0]
}

// flushFlat draws the pending flat color batch.
func (r *Renderer) flushFlat() {
	if len(r.flatVertices) == 0 {
		return
	}

	gl.UseProgram(r.flatShader)
	projLoc := gl.GetUniformLocation(r.flatShader, gl.Str("uProjection\x00"))
	gl.UniformMatrix4fv(projLoc, 1, false, &r.proj[0])

	gl.BindVertexArray(r.flatVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.flatVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.flatVertices)*4, unsafe.Pointer(&r.flatVertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.flatVertices)/7)) // 7 floats per vertex

	r.flatVertices = r.flatVertices[:0]
}

// orthoMatrix creates an orthographic projection matrix.
func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

// createTexShader creates the shader for textured tile quads.
func (r *Renderer) createTexShader() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec2 aTexCoord;
		layout (location = 2) in vec4 aColor;

		uniform mat4 uProjection;

		out vec2 vTexCoord;
		out vec4 vColor;

		void main() {
			gl_Position = uProjection * vec4(aPos, 1.0);
			vTexCoord = aTexCoord;
			vColor = aColor;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		uniform sampler2D uTexture;

		in vec2 vTexCoord;
		in vec4 vColor;
		out vec4 FragColor;

		void main() {
			FragColor = texture(uTexture, vTexCoord) * vColor;
		}
	` + "\x00"

	return linkShaderProgram(vertexShaderSource, fragmentShaderSource)
}

// createFlatShader creates the shader for flat color quads.
func (r *Renderer) createFlatShader() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec3 aPos;
		layout (location = 1) in vec4 aColor;

		uniform mat4 uProjection;

		out vec4 vColor;

		void main() {
			gl_Position = uProjection * vec4(aPos, 1.0);
			vColor = aColor;
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec4 vColor;
		out vec4 FragColor;

		void main() {
			FragColor = vColor;
		}
	` + "\x00"

	return linkShaderProgram(vertexShaderSource, fragmentShaderSource)
}

// createTexBuffers creates VAO/VBO for textured quad rendering.
func (r *Renderer) createTexBuffers() error {
	gl.GenVertexArrays(1, &r.texVAO)
	gl.BindVertexArray(r.texVAO)

	gl.GenBuffers(1, &r.texVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.texVBO)

	// Vertex format: pos(3) + texcoord(2) + color(4) = 9 floats, 36 bytes
	stride := int32(9 * 4)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return nil
}

// createFlatBuffers creates VAO/VBO for flat color quad rendering.
func (r *Renderer) createFlatBuffers() error {
	gl.GenVertexArrays(1, &r.flatVAO)
	gl.BindVertexArray(r.flatVAO)

	gl.GenBuffers(1, &r.flatVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.flatVBO)

	// Vertex format: pos(3) + color(4) = 7 floats, 28 bytes
	stride := int32(7 * 4)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return nil
}

// linkShaderProgram compiles and links a shader program.
func linkShaderProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}
