package models

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestTextureSample(t *testing.T) {
	white, black := color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 255}
	tex := NewCheckerTexture(4, 4, 2, white, black)

	tests := []struct {
		name string
		wrap WrapMode
		u, v float64
		want color.RGBA
	}{
		{"top left", WrapRepeat, 0.1, 0.1, white},
		{"top right", WrapRepeat, 0.9, 0.1, black},
		{"bottom left", WrapRepeat, 0.1, 0.9, black},
		{"repeat", WrapRepeat, 1.9, 0.1, black},
		{"negative repeat", WrapRepeat, -0.1, 0.1, black},
		{"clamp", WrapClamp, 5, 5, white},
		{"clamp edge", WrapClamp, 1, 0, black},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tex.WrapU, tex.WrapV = tc.wrap, tc.wrap
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureBilinear(t *testing.T) {
	tex := NewTexture(2, 1)
	tex.SetPixel(0, 0, color.RGBA{0, 0, 0, 255})
	tex.SetPixel(1, 0, color.RGBA{200, 100, 50, 255})
	tex.Filter = FilterBilinear
	tex.WrapU, tex.WrapV = WrapClamp, WrapClamp

	if got := tex.Sample(0.5, 0.5); got != (color.RGBA{100, 50, 25, 255}) {
		t.Errorf("midpoint = %v", got)
	}
	if got := tex.Sample(0, 0.5); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("left edge = %v", got)
	}
}

func TestDecodeTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.RGBA{1, 2, 3, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tex, err := DecodeTexture(&buf)
	if err != nil {
		t.Fatalf("DecodeTexture() error = %v", err)
	}
	if tex.Width != 3 || tex.Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", tex.Width, tex.Height)
	}
	if got := tex.Pixel(2, 1); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("Pixel(2, 1) = %v", got)
	}
	if got := tex.Pixel(5, 5); got != (color.RGBA{}) {
		t.Errorf("out of range pixel = %v", got)
	}

	if _, err := DecodeTexture(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected a decode error")
	}
}

func TestModulate(t *testing.T) {
	got := Modulate(color.RGBA{255, 128, 0, 255}, color.RGBA{255, 255, 255, 255})
	if got != (color.RGBA{255, 128, 0, 255}) {
		t.Errorf("Modulate by white = %v", got)
	}
}
