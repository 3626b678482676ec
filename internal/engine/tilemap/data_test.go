package tilemap

import "testing"

// makeData builds a Data with the given size and per-plane writes.
func makeData(width, height int, set map[[3]int]int16) *Data {
	tiles := make([]int16, PlaneCount*width*height)
	for key, v := range set {
		x, y, plane := key[0], key[1], key[2]
		tiles[(plane*height+y)*width+x] = v
	}
	d := &Data{}
	d.SetData(width, height, tiles)
	return d
}

func TestDataReadInBounds(t *testing.T) {
	d := makeData(4, 3, map[[3]int]int16{
		{0, 0, PlaneGround}:  11,
		{3, 2, PlaneGround}:  22,
		{1, 1, PlaneShadow}:  5,
		{2, 0, PlaneOverlay}: 33,
	})

	if got := d.Read(0, 0, PlaneGround); got != 11 {
		t.Errorf("Read(0,0,ground) = %d, expected 11", got)
	}
	if got := d.Read(3, 2, PlaneGround); got != 22 {
		t.Errorf("Read(3,2,ground) = %d, expected 22", got)
	}
	if got := d.Read(1, 1, PlaneShadow); got != 5 {
		t.Errorf("Read(1,1,shadow) = %d, expected 5", got)
	}
	if got := d.Read(2, 0, PlaneOverlay); got != 33 {
		t.Errorf("Read(2,0,overlay) = %d, expected 33", got)
	}
	if got := d.Read(2, 0, PlaneGround); got != 0 {
		t.Errorf("unset cell should read 0, got %d", got)
	}
}

func TestDataReadOutOfBoundsWithoutWrap(t *testing.T) {
	d := makeData(4, 3, map[[3]int]int16{{0, 0, PlaneGround}: 9})

	coords := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {-5, -5}, {100, 100}}
	for _, c := range coords {
		for plane := 0; plane < PlaneCount; plane++ {
			if got := d.Read(c[0], c[1], plane); got != 0 {
				t.Errorf("Read(%d,%d,%d) = %d, expected 0", c[0], c[1], plane, got)
			}
		}
	}
}

func TestDataHorizontalWrap(t *testing.T) {
	d := makeData(10, 2, map[[3]int]int16{
		{9, 0, PlaneGround}: 7,
		{0, 0, PlaneGround}: 3,
	})
	d.HorizontalWrap = true

	// x = -1 wraps to 9, x = 10 wraps to 0.
	if got := d.Read(-1, 0, PlaneGround); got != 7 {
		t.Errorf("Read(-1,0) = %d, expected value of x=9 (7)", got)
	}
	if got := d.Read(10, 0, PlaneGround); got != 3 {
		t.Errorf("Read(10,0) = %d, expected value of x=0 (3)", got)
	}
	// Vertical stays clamped.
	if got := d.Read(0, -1, PlaneGround); got != 0 {
		t.Errorf("Read(0,-1) = %d, expected 0 without vertical wrap", got)
	}
}

func TestDataVerticalWrap(t *testing.T) {
	d := makeData(2, 5, map[[3]int]int16{
		{0, 4, PlaneGround}: 8,
		{0, 0, PlaneGround}: 2,
	})
	d.VerticalWrap = true

	if got := d.Read(0, -1, PlaneGround); got != 8 {
		t.Errorf("Read(0,-1) = %d, expected value of y=4 (8)", got)
	}
	if got := d.Read(0, 5, PlaneGround); got != 2 {
		t.Errorf("Read(0,5) = %d, expected value of y=0 (2)", got)
	}
}

func TestDataEmpty(t *testing.T) {
	var d Data
	if got := d.Read(0, 0, PlaneGround); got != 0 {
		t.Errorf("empty data should read 0, got %d", got)
	}
}

func TestDataShortArray(t *testing.T) {
	// A short array reads as zero past its end instead of panicking.
	d := &Data{}
	d.SetData(4, 4, []int16{1, 2})

	if got := d.Read(0, 0, PlaneGround); got != 1 {
		t.Errorf("Read(0,0) = %d, expected 1", got)
	}
	if got := d.Read(3, 3, PlaneShadow); got != 0 {
		t.Errorf("Read past array end = %d, expected 0", got)
	}
}
