package gldraw

import (
	"testing"

	"github.com/karuta-dev/emaki/internal/engine/tilemap"
)

func TestBatchRunsGroupsConsecutiveSets(t *testing.T) {
	rects := []tilemap.Rect{
		{Set: 0}, {Set: 0}, {Set: 1}, {Set: 1}, {Set: 1}, {Set: 0},
	}

	runs := batchRuns(rects)
	if len(runs) != 3 {
		t.Fatalf("got %d runs, expected 3: %v", len(runs), runs)
	}
	wantLens := []int{2, 3, 1}
	wantSets := []int{0, 1, 0}
	for i, run := range runs {
		if len(run) != wantLens[i] {
			t.Errorf("run %d has %d rects, expected %d", i, len(run), wantLens[i])
		}
		if run[0].Set != wantSets[i] {
			t.Errorf("run %d set = %d, expected %d", i, run[0].Set, wantSets[i])
		}
	}
}

func TestBatchRunsKeepsShadowsInPlace(t *testing.T) {
	// A shadow recorded between two bank runs must stay between them, so
	// tiles recorded after it paint over it and tiles before it do not.
	rects := []tilemap.Rect{
		{Set: 1, DstX: 0},
		{Set: tilemap.ShadowSet, DstX: 24},
		{Set: 1, DstX: 48},
	}

	runs := batchRuns(rects)
	if len(runs) != 3 {
		t.Fatalf("got %d runs, expected 3: %v", len(runs), runs)
	}
	if runs[0][0].Set != 1 || runs[1][0].Set != tilemap.ShadowSet || runs[2][0].Set != 1 {
		t.Errorf("run order = [%d %d %d], expected [1 %d 1]",
			runs[0][0].Set, runs[1][0].Set, runs[2][0].Set, tilemap.ShadowSet)
	}
	if runs[2][0].DstX != 48 {
		t.Errorf("post-shadow run starts at DstX %d, expected 48", runs[2][0].DstX)
	}
}

func TestBatchRunsEmpty(t *testing.T) {
	if runs := batchRuns(nil); len(runs) != 0 {
		t.Errorf("got %d runs for empty input, expected 0", len(runs))
	}
}
