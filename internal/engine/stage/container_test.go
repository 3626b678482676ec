package stage

import "testing"

type testDrawable struct {
	z       int
	y       float64
	updates int
}

func (d *testDrawable) Z() int           { return d.z }
func (d *testDrawable) ScreenY() float64 { return d.y }
func (d *testDrawable) Update()          { d.updates++ }

func TestContainerSortByZThenY(t *testing.T) {
	upper := &testDrawable{z: ZUpperTiles, y: 0}
	far := &testDrawable{z: ZLowerTiles, y: 10}
	near := &testDrawable{z: ZLowerTiles, y: 5}

	var c Container
	c.Add(upper)
	c.Add(far)
	c.Add(near)
	c.Sort()

	var got []Drawable
	c.Each(func(d Drawable) { got = append(got, d) })

	want := []Drawable{near, far, upper}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %+v, expected %+v", i, got[i], want[i])
		}
	}
}

func TestContainerSortTiesKeepInsertionOrder(t *testing.T) {
	first := &testDrawable{z: ZNormalCharacters, y: 7}
	second := &testDrawable{z: ZNormalCharacters, y: 7}
	third := &testDrawable{z: ZNormalCharacters, y: 7}

	var c Container
	c.Add(first)
	c.Add(second)
	c.Add(third)

	// Sorting repeatedly must not shuffle equal children.
	for i := 0; i < 3; i++ {
		c.Sort()
	}

	var got []Drawable
	c.Each(func(d Drawable) { got = append(got, d) })
	if got[0] != first || got[1] != second || got[2] != third {
		t.Fatal("equal children changed relative order across sorts")
	}
}

func TestContainerRemove(t *testing.T) {
	a := &testDrawable{}
	b := &testDrawable{}

	var c Container
	c.Add(a)
	c.Add(b)

	if !c.Remove(a) {
		t.Error("Remove should find a present child")
	}
	if c.Remove(a) {
		t.Error("Remove should report false for an absent child")
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 child after removal, got %d", c.Len())
	}
}

func TestContainerUpdate(t *testing.T) {
	a := &testDrawable{}
	b := &testDrawable{}

	var c Container
	c.Add(a)
	c.Add(b)
	c.Update()
	c.Update()

	if a.updates != 2 || b.updates != 2 {
		t.Errorf("expected 2 updates per child, got %d and %d", a.updates, b.updates)
	}
}
