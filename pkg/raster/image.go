package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// ToImage converts the buffer to an image of Width × PixelHeight pixels.
// Solid slots take their color, thin edge glyphs are blended halfway with
// the background, and text characters fill their slot.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height*2))
	bg := b.Background
	if bg.A == 0 {
		bg = ColorBlack
	}
	for y := range b.height * 2 {
		for x := range b.width {
			ch, c := b.Pixel(x, y)
			switch ch {
			case Empty:
				c = bg
			case UpperEdge, LowerEdge:
				c = blend(c, bg, 0.5)
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// SavePNG saves the buffer as a PNG file.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, b.ToImage()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
