package tilemap

import "testing"

func newTestViewport() *Viewport {
	return &Viewport{
		TileWidth:    48,
		TileHeight:   48,
		Margin:       DefaultMargin,
		ScreenWidth:  816,
		ScreenHeight: 624,
	}
}

func TestViewportWindow(t *testing.T) {
	v := newTestViewport()

	tests := []struct {
		name             string
		originX, originY float64
		startX, startY   int
	}{
		{"origin zero", 0, 0, -1, -1},
		{"origin at margin", 20, 20, 0, 0},
		{"one tile in", 68, 68, 1, 1},
		{"negative origin", -100, -100, -3, -3},
		{"fractional origin floors", 20.9, 20.9, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := v.Window(tc.originX, tc.originY)
			if w.StartX != tc.startX || w.StartY != tc.startY {
				t.Errorf("Window(%v,%v) start = (%d,%d), expected (%d,%d)",
					tc.originX, tc.originY, w.StartX, w.StartY, tc.startX, tc.startY)
			}
		})
	}

	// The window must cover the padded screen plus one cell of overlap.
	w := v.Window(0, 0)
	if w.Cols*48 < 816+2*DefaultMargin+48 {
		t.Errorf("window covers %d px horizontally, less than screen+margins+overlap", w.Cols*48)
	}
	if w.Rows*48 < 624+2*DefaultMargin+48 {
		t.Errorf("window covers %d px vertically, less than screen+margins+overlap", w.Rows*48)
	}
}

func TestViewportRepaintMemoization(t *testing.T) {
	v := newTestViewport()
	w := v.Window(0, 0)

	// First frame always paints.
	if !v.ShouldRepaint(w, 0) {
		t.Fatal("first frame should repaint")
	}
	v.Commit(w, 0)

	// Same window and frame: no work.
	if v.ShouldRepaint(w, 0) {
		t.Error("unchanged window and frame should not repaint")
	}

	// Scrolling within the same cell: no work.
	if v.ShouldRepaint(v.Window(10, 10), 0) {
		t.Error("sub-cell scroll should not repaint")
	}

	// Crossing a cell boundary repaints.
	if !v.ShouldRepaint(v.Window(48+20, 0), 0) {
		t.Error("cell boundary crossing should repaint")
	}

	// Animation frame change repaints.
	if !v.ShouldRepaint(w, 1) {
		t.Error("animation frame change should repaint")
	}

	// Explicit request repaints, and Commit clears it.
	v.RequestRepaint()
	if !v.ShouldRepaint(w, 0) {
		t.Error("explicit request should repaint")
	}
	v.Commit(w, 0)
	if v.ShouldRepaint(w, 0) {
		t.Error("Commit should clear the pending request")
	}
}
