package bitmap

import (
	"image"
	"sync"
)

// Loader decodes resources on background goroutines and holds the results
// until the frame thread drains them with Pump. This is the only place in
// the engine where two threads meet; everything downstream of Pump is
// single-threaded.
type Loader struct {
	mu   sync.Mutex
	done []loadResult
}

type loadResult struct {
	res *Resource
	img *image.RGBA
	err error
}

// Load starts decoding a resource in the background. Calling it for an
// already-ready resource is a no-op.
func (l *Loader) Load(r *Resource) {
	if r.ready {
		return
	}
	go func() {
		img, err := DecodeFile(r.path)
		l.mu.Lock()
		l.done = append(l.done, loadResult{res: r, img: img, err: err})
		l.mu.Unlock()
	}()
}

// LoadSync decodes a resource on the calling goroutine and finishes it
// immediately. Tools use this when there is no frame loop to pump.
func (l *Loader) LoadSync(r *Resource) error {
	if r.ready {
		return r.err
	}
	img, err := DecodeFile(r.path)
	r.finish(img, err)
	return err
}

// Pump delivers completed loads on the calling goroutine, firing OnLoad
// callbacks. Returns the number of resources finished. Call once per
// frame.
func (l *Loader) Pump() int {
	l.mu.Lock()
	done := l.done
	l.done = nil
	l.mu.Unlock()

	for _, d := range done {
		d.res.finish(d.img, d.err)
	}
	return len(done)
}
