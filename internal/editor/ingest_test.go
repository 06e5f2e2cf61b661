package editor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"wtPoster/internal/poster"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeImageClassifies(t *testing.T) {
	cases := []struct {
		name   string
		width  int
		height int
		want   poster.ImageType
	}{
		{"wide", 200, 100, poster.ImageWide},
		{"vertical", 100, 200, poster.ImageVertical},
		{"square", 100, 100, poster.ImageSquare},
		{"near square", 110, 100, poster.ImageSquare},
		{"wide boundary", 125, 100, poster.ImageWide},
		{"vertical boundary", 80, 100, poster.ImageVertical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img, err := EncodeImage(pngBytes(t, tc.width, tc.height))
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if img.Type != tc.want {
				t.Errorf("type = %q, want %q", img.Type, tc.want)
			}
			if img.ID == "" {
				t.Error("id empty")
			}
			if !strings.HasPrefix(img.URL, "data:image/png;base64,") {
				t.Errorf("url prefix wrong: %.40q", img.URL)
			}
		})
	}
}

func TestEncodeImageRejectsGarbage(t *testing.T) {
	if _, err := EncodeImage([]byte("definitely not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestStripDataURI(t *testing.T) {
	if got := StripDataURI("data:image/png;base64,AAAA"); got != "AAAA" {
		t.Errorf("got %q", got)
	}
	if got := StripDataURI("AAAA"); got != "AAAA" {
		t.Errorf("plain base64 mangled: %q", got)
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(time.Minute)

	id, ctrl := r.Create()
	if id == "" || ctrl == nil {
		t.Fatal("create returned empty session")
	}

	got, ok := r.Get(id)
	if !ok || got != ctrl {
		t.Fatal("get did not return the created controller")
	}

	r.Delete(id)
	if _, ok := r.Get(id); ok {
		t.Fatal("session still alive after delete")
	}
}
