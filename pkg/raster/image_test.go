package raster

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestToImage(t *testing.T) {
	buf := NewBuffer(2, 1)
	buf.Set(0, 0, FullBlock, ColorRed)
	buf.Set(1, 0, UpperEdge, ColorWhite)

	img := buf.ToImage()
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("bounds = %v, want 2x2", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != ColorRed {
		t.Errorf("solid pixel = %v, want red", got)
	}
	if got := img.RGBAAt(0, 1); got != ColorBlack {
		t.Errorf("empty pixel = %v, want black background", got)
	}
	if got := img.RGBAAt(1, 0); got.R != 127 || got.G != 127 || got.B != 127 {
		t.Errorf("edge pixel = %v, want half blend", got)
	}

	buf.Background = ColorBlue
	if got := buf.ToImage().RGBAAt(1, 1); got != ColorBlue {
		t.Errorf("empty pixel with background = %v, want blue", got)
	}
}

func TestSavePNG(t *testing.T) {
	buf := NewBuffer(6, 3)
	NewRasterizer(buf, 0).FillCircle(image.Pt(3, 3), 2, FullBlock, ColorGreen)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := buf.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 6 || img.Bounds().Dy() != 6 {
		t.Errorf("decoded bounds = %v, want 6x6", img.Bounds())
	}

	if err := buf.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png")); err == nil {
		t.Error("SavePNG into a missing directory returned no error")
	}
}

func TestBanner(t *testing.T) {
	rec := newRecorder()
	Banner(image.Pt(2, 1), "Hi", '#', rec.sink)

	if len(rec.hits) == 0 {
		t.Fatal("banner drew nothing")
	}
	for p := range rec.hits {
		if p.X < 2 || p.X >= 2+14 || p.Y < 1 || p.Y >= 1+13 {
			t.Errorf("pixel %v outside the two 7x13 glyph boxes", p)
		}
	}

	empty := newRecorder()
	Banner(image.Pt(0, 0), "", '#', empty.sink)
	if len(empty.hits) != 0 {
		t.Error("empty banner drew pixels")
	}
}
