package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsAssetFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"maps/town.emap", true},
		{"tilesets/town.EFLG", true},
		{"tilesets/town.yaml", true},
		{"tilesets/town.yml", true},
		{"tilesets/a1.png", true},
		{"tilesets/a1.tga", true},
		{"notes.txt", false},
		{"town.emap.bak", false},
		{"emap", false},
	}

	for _, tc := range tests {
		if got := IsAssetFile(tc.path); got != tc.want {
			t.Errorf("IsAssetFile(%q) = %v, expected %v", tc.path, got, tc.want)
		}
	}
}

func TestWatcherReportsAssetWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "town.emap")
	if err := os.WriteFile(path, []byte("EMAP"), 0644); err != nil {
		t.Fatalf("writing asset: %v", err)
	}

	select {
	case got := <-w.Events:
		if got != path {
			t.Errorf("event path = %q, expected %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	select {
	case got := <-w.Events:
		t.Errorf("unexpected event for %q", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	// Second close must be a no-op.
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	// The run goroutine closes Events on its way out.
	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("unexpected event after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Events not closed after Close")
	}
}

func TestWatcherCloseDuringBurst(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Hammer the directory with asset writes while closing, without
	// draining Events, so pending sends overlap the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			name := filepath.Join(dir, "burst.emap")
			_ = os.WriteFile(name, []byte{byte(i)}, 0644)
		}
	}()

	time.Sleep(10 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	<-done

	// Drain until the run goroutine closes the channel. A send racing the
	// close would panic the goroutine and leave Events open forever.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Events not closed after Close under traffic")
		}
	}
}
