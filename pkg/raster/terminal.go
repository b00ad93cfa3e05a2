package raster

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/text/width"
)

// Draw presents the buffer on the screen. Buffer cell (0, 0) lands on
// area.Min; cells beyond the area are not drawn.
func (b *Buffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		by := row - area.Min.Y
		if by >= b.height {
			break
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			bx := col - area.Min.X
			if bx >= b.width {
				break
			}
			cell := b.cells[by*b.width+bx]
			if cell.tail {
				continue
			}

			ch, fg, bg := cell.Resolve()
			if bg.A == 0 {
				bg = b.Background
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: string(ch),
				Width:   runeWidth(ch),
				Style: uv.Style{
					Fg: toColor(fg),
					Bg: toColor(bg),
				},
			})
		}
	}
}

// toColor maps a zero-alpha color to nil so the terminal default shows.
func toColor(c Color) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// runeWidth returns the number of terminal columns r occupies.
func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
