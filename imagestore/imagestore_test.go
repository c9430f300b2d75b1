package imagestore_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/lvillar/typeset/imagestore"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestImageDimensions(t *testing.T) {
	s := imagestore.New(nil)
	s.Add("pic.png", pngBytes(t, 3, 2))

	ref, ok := s.Image("pic.png")
	if !ok {
		t.Fatal("Image: not resolved")
	}
	if ref.Width != 3 || ref.Height != 2 {
		t.Errorf("dimensions = %gx%g, want 3x2", ref.Width, ref.Height)
	}
	if ref.ID != "pic.png" || len(ref.Data) == 0 {
		t.Errorf("ref = %+v, want id and encoded bytes", ref)
	}

	again, ok := s.Image("pic.png")
	if !ok || again != ref {
		t.Error("second resolution did not reuse the cached ref")
	}
}

func TestImageFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"img/cover.png": &fstest.MapFile{Data: pngBytes(t, 5, 7)},
	}
	s := imagestore.New(fsys)
	ref, ok := s.Image("img/cover.png")
	if !ok {
		t.Fatal("Image: not resolved from fs")
	}
	if ref.Width != 5 || ref.Height != 7 {
		t.Errorf("dimensions = %gx%g, want 5x7", ref.Width, ref.Height)
	}
}

func TestUndecodableAndMissing(t *testing.T) {
	s := imagestore.New(nil)
	s.Add("bad", []byte("definitely not an image"))

	if _, ok := s.Image("bad"); ok {
		t.Error("undecodable bytes resolved")
	}
	if _, ok := s.Image("missing"); ok {
		t.Error("missing identifier resolved")
	}
	// failures are cached too
	if _, ok := s.Image("bad"); ok {
		t.Error("cached failure resolved on retry")
	}
}
