// Package raster provides the half-cell character buffer and the 2D scan
// conversion primitives that draw into it.
//
// A Buffer of W×H terminal cells addresses a logical pixel grid of W×2H:
// pixel (x, y) lives in cell (x, y/2), in the upper slot when y is even and
// the lower slot when y is odd. (0, 0) is the top-left pixel.
package raster

import (
	"fmt"
	"strings"
)

// WritePolicy decides what happens when a non-space character is written
// onto a slot that already holds one.
type WritePolicy int

const (
	// Overwrite replaces the slot. Painter's-order drawing relies on it.
	Overwrite WritePolicy = iota
	// CollisionMarker replaces the slot with '.' to highlight overdraw.
	CollisionMarker
	// SkipIfOccupied keeps the existing character.
	SkipIfOccupied
)

// String returns the policy name.
func (p WritePolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case CollisionMarker:
		return "collision"
	case SkipIfOccupied:
		return "skip"
	}
	return fmt.Sprintf("WritePolicy(%d)", int(p))
}

// ParseWritePolicy parses a policy name as returned by String.
func ParseWritePolicy(s string) (WritePolicy, error) {
	for _, p := range []WritePolicy{Overwrite, CollisionMarker, SkipIfOccupied} {
		if p.String() == s {
			return p, nil
		}
	}
	return Overwrite, fmt.Errorf("unknown write policy %q", s)
}

// Buffer is a grid of half-cell terminal cells.
type Buffer struct {
	width, height int
	cells         []Cell

	// Policy applies to every pixel write.
	Policy WritePolicy
	// Background fills empty slots when the buffer is presented.
	Background Color
}

// NewBuffer creates a cleared buffer of width×height terminal cells.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the width in cells, which is also the pixel width.
func (b *Buffer) Width() int { return b.width }

// Height returns the height in cells.
func (b *Buffer) Height() int { return b.height }

// PixelHeight returns the logical pixel height, twice the cell height.
func (b *Buffer) PixelHeight() int { return b.height * 2 }

// Resize changes the dimensions and clears the buffer.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if n := width * height; cap(b.cells) >= n {
		b.cells = b.cells[:n]
	} else {
		b.cells = make([]Cell, n)
	}
	b.width, b.height = width, height
	b.Clear()
}

// Clear resets every cell to empty.
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = emptyCell
	for n := 1; n < len(b.cells); n *= 2 {
		copy(b.cells[n:], b.cells[:n])
	}
}

// Set writes ch with color c to pixel (x, y). Writes outside the buffer
// are ignored. Writing Empty clears the slot regardless of policy.
func (b *Buffer) Set(x, y int, ch rune, c Color) {
	cell := b.at(x, y)
	if cell == nil {
		return
	}
	slot, col := &cell.Lower, &cell.LowerColor
	if y&1 == 0 {
		slot, col = &cell.Upper, &cell.UpperColor
	}
	cell.tail = false

	if ch != Empty && *slot != Empty {
		switch b.Policy {
		case SkipIfOccupied:
			return
		case CollisionMarker:
			ch = Collision
		}
	}
	*slot, *col = ch, c
}

// setSoft writes only into an empty slot.
func (b *Buffer) setSoft(x, y int, ch rune, c Color) {
	if r, _ := b.Pixel(x, y); r != Empty {
		return
	}
	b.Set(x, y, ch, c)
}

// SetCell writes ch to the whole cell at (col, row), clearing the lower
// slot. It is used for text.
func (b *Buffer) SetCell(col, row int, ch rune, c Color) {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return
	}
	b.cells[row*b.width+col] = Cell{Upper: ch, Lower: Empty, UpperColor: c}
}

func (b *Buffer) setTail(col, row int) {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return
	}
	b.cells[row*b.width+col] = Cell{Upper: Empty, Lower: Empty, tail: true}
}

// Cell returns the cell at (col, row), or an empty cell when out of range.
func (b *Buffer) Cell(col, row int) Cell {
	if col < 0 || col >= b.width || row < 0 || row >= b.height {
		return emptyCell
	}
	return b.cells[row*b.width+col]
}

// Pixel returns the character and color stored for pixel (x, y).
func (b *Buffer) Pixel(x, y int) (rune, Color) {
	cell := b.at(x, y)
	if cell == nil {
		return Empty, ColorNone
	}
	if y&1 == 0 {
		return cell.Upper, cell.UpperColor
	}
	return cell.Lower, cell.LowerColor
}

func (b *Buffer) at(x, y int) *Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height*2 {
		return nil
	}
	return &b.cells[(y/2)*b.width+x]
}

// Lines returns the resolved characters of each row without colors.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.height)
	var sb strings.Builder
	for row := range b.height {
		sb.Reset()
		for col := range b.width {
			cell := b.cells[row*b.width+col]
			if cell.tail {
				continue
			}
			ch, _, _ := cell.Resolve()
			sb.WriteRune(ch)
		}
		lines[row] = sb.String()
	}
	return lines
}

// String returns Lines joined by newlines.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}
