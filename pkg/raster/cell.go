package raster

// Glyphs used by the half-cell model.
const (
	Empty     = ' '
	FullBlock = '█'
	UpperHalf = '▀'
	LowerHalf = '▄'
	UpperEdge = '▔'
	LowerEdge = '▁'
	Collision = '.'
)

// Cell is one terminal cell holding two logical pixels, an upper and a
// lower slot. A slot holding Empty is untouched.
type Cell struct {
	Upper, Lower           rune
	UpperColor, LowerColor Color

	// tail marks the right half of a wide rune written to the previous
	// column.
	tail bool
}

var emptyCell = Cell{Upper: Empty, Lower: Empty}

// IsEmpty reports whether both slots are empty.
func (c Cell) IsEmpty() bool {
	return c.Upper == Empty && c.Lower == Empty && !c.tail
}

// IsContinuation reports whether the cell is covered by a wide rune in
// the previous column.
func (c Cell) IsContinuation() bool {
	return c.tail
}

func solidUpper(r rune) bool { return r == FullBlock || r == UpperHalf }
func solidLower(r rune) bool { return r == FullBlock || r == LowerHalf }

// Resolve picks the character and colors that present the cell in one
// terminal position. A zero bg means no background.
//
//   - both slots solid: ▀ with fg from the upper slot and bg from the lower
//   - only the upper slot solid: ▀
//   - only the lower slot solid: ▄
//   - otherwise the upper character if set, else the lower one
func (c Cell) Resolve() (ch rune, fg, bg Color) {
	up, lo := solidUpper(c.Upper), solidLower(c.Lower)
	switch {
	case up && lo:
		return UpperHalf, c.UpperColor, c.LowerColor
	case up:
		return UpperHalf, c.UpperColor, ColorNone
	case lo:
		return LowerHalf, c.LowerColor, ColorNone
	case c.Upper != Empty:
		return c.Upper, c.UpperColor, ColorNone
	case c.Lower != Empty:
		return c.Lower, c.LowerColor, ColorNone
	}
	return Empty, ColorNone, ColorNone
}

// aaGlyph returns the half-cell glyph for a pixel at row y with the given
// coverage: a half block above 0.5, a thin edge otherwise.
func aaGlyph(y int, coverage float64) rune {
	heavy := coverage > 0.5
	if y&1 == 0 {
		if heavy {
			return UpperHalf
		}
		return UpperEdge
	}
	if heavy {
		return LowerHalf
	}
	return LowerEdge
}
