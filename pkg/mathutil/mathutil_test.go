package mathutil

import "testing"

func TestWrapMod(t *testing.T) {
	tests := []struct {
		v, m, want int
	}{
		{0, 10, 0},
		{3, 10, 3},
		{10, 10, 0},
		{13, 10, 3},
		{-1, 10, 9},
		{-10, 10, 0},
		{-13, 10, 7},
	}

	for _, tc := range tests {
		if got := WrapMod(tc.v, tc.m); got != tc.want {
			t.Errorf("WrapMod(%d, %d) = %d, expected %d", tc.v, tc.m, got, tc.want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 48, 0},
		{47, 48, 0},
		{48, 48, 1},
		{-1, 48, -1},
		{-48, 48, -1},
		{-49, 48, -2},
		{7, -2, -4},
	}

	for _, tc := range tests {
		if got := FloorDiv(tc.a, tc.b); got != tc.want {
			t.Errorf("FloorDiv(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(0.5, 0, 1); got != 0.5 {
		t.Errorf("ClampF(0.5, 0, 1) = %v, expected 0.5", got)
	}
	if got := ClampF(-0.5, 0, 1); got != 0 {
		t.Errorf("ClampF(-0.5, 0, 1) = %v, expected 0", got)
	}
	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %v, expected 1", got)
	}
}
