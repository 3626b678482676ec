package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeTestPNG writes a small solid-color PNG to dir and returns its path.
func writeTestPNG(t *testing.T, dir string, c color.RGBA) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}

	path := filepath.Join(dir, "tile.png")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing test PNG: %v", err)
	}
	return path
}

// makeTestTGA builds an uncompressed 32-bit TGA with a single pixel color.
func makeTestTGA(width, height int, c color.RGBA, topToBottom bool) []byte {
	header := make([]byte, 18)
	header[2] = tgaTypeUncompressed
	header[12] = byte(width)
	header[13] = byte(width >> 8)
	header[14] = byte(height)
	header[15] = byte(height >> 8)
	header[16] = 32
	if topToBottom {
		header[17] = 0x20
	}

	buf := bytes.NewBuffer(header)
	for i := 0; i < width*height; i++ {
		buf.Write([]byte{c.B, c.G, c.R, c.A})
	}
	return buf.Bytes()
}

func TestLoadSync(t *testing.T) {
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	path := writeTestPNG(t, t.TempDir(), want)

	r := New(path)
	if r.IsReady() {
		t.Fatal("resource should not be ready before loading")
	}

	var loader Loader
	if err := loader.LoadSync(r); err != nil {
		t.Fatalf("LoadSync failed: %v", err)
	}

	if !r.IsReady() {
		t.Error("resource should be ready after LoadSync")
	}
	if r.Image() == nil {
		t.Fatal("resource image should not be nil")
	}
	if got := r.Image().RGBAAt(1, 1); got != want {
		t.Errorf("pixel (1,1) = %v, expected %v", got, want)
	}
}

func TestLoaderPumpDeliversOnCaller(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), color.RGBA{A: 255})

	r := New(path)
	fired := 0
	r.OnLoad(func(res *Resource) {
		fired++
		if !res.IsReady() {
			t.Error("resource should be ready inside OnLoad callback")
		}
	})

	var loader Loader
	loader.Load(r)

	// The callback must not fire until Pump runs, no matter how long the
	// background decode has been finished.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if fired != 0 {
			t.Fatal("OnLoad fired before Pump")
		}
		if n := loader.Pump(); n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for background load")
		}
		time.Sleep(time.Millisecond)
	}

	if fired != 1 {
		t.Errorf("OnLoad fired %d times, expected 1", fired)
	}
	if !r.IsReady() {
		t.Error("resource should be ready after Pump")
	}
}

func TestOnLoadImmediateWhenReady(t *testing.T) {
	r := FromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	fired := false
	r.OnLoad(func(*Resource) { fired = true })
	if !fired {
		t.Error("OnLoad on a ready resource should fire immediately")
	}
}

func TestLoadSyncMissingFile(t *testing.T) {
	r := New("/nonexistent/tiles.png")

	var loader Loader
	if err := loader.LoadSync(r); err == nil {
		t.Fatal("expected error for missing file")
	}
	if !r.IsReady() {
		t.Error("failed load should still mark the resource ready")
	}
	if r.Err() == nil {
		t.Error("failed load should record its error")
	}
	if r.Image() != nil {
		t.Error("failed load should leave the image nil")
	}
}

func TestDecodeTGA(t *testing.T) {
	want := color.RGBA{R: 200, G: 100, B: 50, A: 255}

	tests := []struct {
		name        string
		topToBottom bool
	}{
		{"bottom-up rows", false},
		{"top-down rows", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := makeTestTGA(3, 2, want, tc.topToBottom)
			img, err := DecodeTGA(data)
			if err != nil {
				t.Fatalf("DecodeTGA failed: %v", err)
			}
			if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
				t.Fatalf("unexpected bounds %v", img.Bounds())
			}
			if got := img.RGBAAt(2, 1); got != want {
				t.Errorf("pixel (2,1) = %v, expected %v", got, want)
			}
		})
	}
}

func TestDecodeTGARejectsBadInput(t *testing.T) {
	if _, err := DecodeTGA([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for short data")
	}

	bad := makeTestTGA(2, 2, color.RGBA{}, false)
	bad[2] = 1 // color-mapped type
	if _, err := DecodeTGA(bad); err == nil {
		t.Error("expected error for color-mapped TGA")
	}

	bad = makeTestTGA(2, 2, color.RGBA{}, false)
	bad[16] = 8 // unsupported bit depth
	if _, err := DecodeTGA(bad); err == nil {
		t.Error("expected error for 8-bit TGA")
	}
}
