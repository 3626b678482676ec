// Package bitmap provides tileset image resources with asynchronous load
// notification. Decoding runs off the frame thread; completion callbacks
// fire on the frame thread when the loader pump is drained, so resource
// state never mutates concurrently with rendering.
package bitmap

import "image"

// Resource is one image source, identified by the tileset bank slot it
// fills. It starts empty and becomes ready exactly once.
type Resource struct {
	path      string
	img       *image.RGBA
	err       error
	ready     bool
	listeners []func(*Resource)
}

// New creates an unloaded resource for the given file path.
func New(path string) *Resource {
	return &Resource{path: path}
}

// FromImage creates an already-ready resource wrapping an in-memory image.
// Tools and tests use this to skip the loader.
func FromImage(img *image.RGBA) *Resource {
	return &Resource{img: img, ready: true}
}

// Path returns the source file path.
func (r *Resource) Path() string {
	return r.path
}

// IsReady reports whether loading has completed, successfully or not.
func (r *Resource) IsReady() bool {
	return r.ready
}

// Err returns the load error, if any. Only meaningful once IsReady.
func (r *Resource) Err() error {
	return r.err
}

// Image returns the decoded image, or nil before loading completes or
// after a failed load.
func (r *Resource) Image() *image.RGBA {
	return r.img
}

// OnLoad registers a completion callback. If the resource is already
// ready the callback fires immediately; otherwise it fires once, on the
// frame thread, when the loader delivers the result.
func (r *Resource) OnLoad(fn func(*Resource)) {
	if r.ready {
		fn(r)
		return
	}
	r.listeners = append(r.listeners, fn)
}

// finish marks the resource ready and fires pending listeners.
func (r *Resource) finish(img *image.RGBA, err error) {
	r.img = img
	r.err = err
	r.ready = true

	listeners := r.listeners
	r.listeners = nil
	for _, fn := range listeners {
		fn(r)
	}
}
