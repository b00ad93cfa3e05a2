package raster

import (
	"image"
	"math"
	"testing"
)

// recorder collects the pixels a primitive emits and how often each was
// emitted.
type recorder struct {
	hits  map[image.Point]int
	chars map[image.Point]rune
}

func newRecorder() *recorder {
	return &recorder{
		hits:  make(map[image.Point]int),
		chars: make(map[image.Point]rune),
	}
}

func (r *recorder) sink(x, y int, ch rune) {
	p := image.Pt(x, y)
	r.hits[p]++
	r.chars[p] = ch
}

func TestLineEndpoints(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Point
	}{
		{"horizontal", image.Pt(0, 4), image.Pt(9, 4)},
		{"vertical", image.Pt(3, 0), image.Pt(3, 11)},
		{"odd rows", image.Pt(1, 3), image.Pt(9, 8)},
		{"reversed", image.Pt(12, 9), image.Pt(2, 1)},
		{"steep", image.Pt(5, 1), image.Pt(7, 20)},
		{"point", image.Pt(4, 5), image.Pt(4, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecorder()
			Line(tc.a, tc.b, '#', rec.sink)

			for _, p := range []image.Point{tc.a, tc.b} {
				snapped := image.Pt(p.X, p.Y&^1)
				if rec.hits[snapped] == 0 {
					t.Errorf("endpoint %v (snapped %v) not drawn", p, snapped)
				}
			}
		})
	}
}

func TestLineEndpointsInBuffer(t *testing.T) {
	buf := NewBuffer(20, 10)
	r := NewRasterizer(buf, 0)
	r.DrawLine(image.Pt(2, 3), image.Pt(15, 17), '*', ColorRed)

	for _, p := range []image.Point{{2, 2}, {15, 16}} {
		if ch, _ := buf.Pixel(p.X, p.Y); ch != '*' {
			t.Errorf("pixel %v = %q, want *", p, ch)
		}
	}
}

func TestLineAAGlyphs(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		rec := newRecorder()
		LineAA(image.Pt(0, 2), image.Pt(5, 2), rec.sink)
		if len(rec.hits) != 6 {
			t.Errorf("drew %d pixels, want 6", len(rec.hits))
		}
		for p, ch := range rec.chars {
			if ch != UpperHalf {
				t.Errorf("pixel %v = %q, want %q", p, ch, UpperHalf)
			}
		}
	})

	t.Run("shallow coverage", func(t *testing.T) {
		rec := newRecorder()
		LineAA(image.Pt(0, 0), image.Pt(4, 1), rec.sink)
		want := map[image.Point]rune{
			{0, 0}: UpperHalf, // full coverage
			{1, 0}: UpperHalf, // 0.75
			{1, 1}: LowerEdge, // 0.25
			{2, 0}: UpperEdge, // 0.5 is not heavy
			{2, 1}: LowerEdge,
			{4, 1}: LowerHalf,
		}
		for p, ch := range want {
			if got := rec.chars[p]; got != ch {
				t.Errorf("pixel %v = %q, want %q", p, got, ch)
			}
		}
	})

	t.Run("steep", func(t *testing.T) {
		rec := newRecorder()
		LineAA(image.Pt(1, 6), image.Pt(0, 0), rec.sink)
		if len(rec.hits) != 7 {
			t.Errorf("drew %d pixels, want one per row", len(rec.hits))
		}
		for p, ch := range rec.chars {
			want := UpperHalf
			if p.Y%2 == 1 {
				want = LowerHalf
			}
			if ch != want {
				t.Errorf("pixel %v = %q, want %q", p, ch, want)
			}
		}
	})

	t.Run("steep rounds to nearest column", func(t *testing.T) {
		rec := newRecorder()
		// x runs 0, 0.25, 0.5, 0.75, 1 down the rows
		LineAA(image.Pt(0, 0), image.Pt(1, 4), rec.sink)
		want := map[image.Point]rune{
			{0, 0}: UpperHalf,
			{0, 1}: LowerHalf,
			{1, 2}: UpperHalf, // 0.5 rounds away from zero
			{1, 3}: LowerHalf,
			{1, 4}: UpperHalf,
		}
		if len(rec.hits) != len(want) {
			t.Errorf("drew %d pixels, want %d", len(rec.hits), len(want))
		}
		for p, ch := range want {
			if got := rec.chars[p]; got != ch {
				t.Errorf("pixel %v = %q, want %q", p, got, ch)
			}
		}
	})
}

func TestCircle(t *testing.T) {
	center := image.Pt(10, 10)
	const radius = 6
	rec := newRecorder()
	Circle(center, radius, 'o', rec.sink)

	for _, p := range []image.Point{{16, 10}, {4, 10}, {10, 16}, {10, 4}} {
		if rec.hits[p] == 0 {
			t.Errorf("extreme point %v not drawn", p)
		}
	}
	for p, n := range rec.hits {
		if n != 1 {
			t.Errorf("pixel %v emitted %d times", p, n)
		}
		d := math.Hypot(float64(p.X-center.X), float64(p.Y-center.Y))
		if math.Abs(d-radius) >= 1 {
			t.Errorf("pixel %v is %.2f from center, want about %d", p, d, radius)
		}
		// 8-way symmetry
		mirror := image.Pt(2*center.X-p.X, p.Y)
		if rec.hits[mirror] == 0 {
			t.Errorf("mirror %v of %v missing", mirror, p)
		}
	}
}

func TestFilledCircle(t *testing.T) {
	center := image.Pt(5, 4)

	t.Run("solid", func(t *testing.T) {
		rec := newRecorder()
		FilledCircle(center, 2, FullBlock, false, rec.sink)
		for p, ch := range rec.chars {
			if ch != FullBlock {
				t.Errorf("pixel %v = %q, want full block", p, ch)
			}
			if d := math.Hypot(float64(p.X-center.X), float64(p.Y-center.Y)); d > 2 {
				t.Errorf("pixel %v outside radius", p)
			}
		}
		if rec.hits[center] != 1 {
			t.Error("center not filled")
		}
	})

	t.Run("anti-aliased rim", func(t *testing.T) {
		rec := newRecorder()
		FilledCircle(center, 2, FullBlock, true, rec.sink)
		tests := []struct {
			p    image.Point
			want rune
		}{
			{image.Pt(7, 4), FullBlock}, // d = 2
			{image.Pt(7, 5), LowerHalf}, // d = 2.24, coverage 0.76, odd row
			{image.Pt(7, 6), UpperEdge}, // d = 2.83, coverage 0.17, even row
			{image.Pt(3, 3), LowerHalf}, // d = 2.24, odd row
		}
		for _, tc := range tests {
			if got := rec.chars[tc.p]; got != tc.want {
				t.Errorf("pixel %v = %q, want %q", tc.p, got, tc.want)
			}
		}
		if rec.hits[image.Pt(8, 4)] != 0 {
			t.Error("pixel at distance r+1 was drawn")
		}
	})
}

func TestFillTriangleCoverage(t *testing.T) {
	rec := newRecorder()
	FillTriangle(image.Pt(0, 0), image.Pt(10, 0), image.Pt(0, 10), '#', rec.sink)

	for y := 0; y <= 10; y++ {
		for x := 0; x <= 10; x++ {
			p := image.Pt(x, y)
			want := 0
			if x+y <= 10 {
				want = 1
			}
			if rec.hits[p] != want {
				t.Errorf("pixel %v drawn %d times, want %d", p, rec.hits[p], want)
			}
		}
	}
	for p := range rec.hits {
		if p.X < 0 || p.Y < 0 || p.X+p.Y > 10 {
			t.Errorf("pixel %v outside the triangle", p)
		}
	}
}

func TestFillTriangleDrawsEachPixelOnce(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 image.Point
	}{
		{"general", image.Pt(0, 0), image.Pt(8, 4), image.Pt(2, 8)},
		{"flat top", image.Pt(0, 0), image.Pt(9, 0), image.Pt(4, 7)},
		{"flat bottom", image.Pt(4, 0), image.Pt(0, 7), image.Pt(9, 7)},
		{"unsorted", image.Pt(3, 9), image.Pt(11, 1), image.Pt(0, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := newRecorder()
			FillTriangle(tc.p0, tc.p1, tc.p2, '#', rec.sink)
			if len(rec.hits) == 0 {
				t.Fatal("nothing drawn")
			}
			for p, n := range rec.hits {
				if n != 1 {
					t.Errorf("pixel %v drawn %d times", p, n)
				}
			}
			for _, v := range []image.Point{tc.p0, tc.p1, tc.p2} {
				if rec.hits[v] == 0 {
					t.Errorf("vertex %v not drawn", v)
				}
			}
		})
	}
}

func TestFillTriangleDegenerate(t *testing.T) {
	rec := newRecorder()
	FillTriangle(image.Pt(0, 3), image.Pt(5, 3), image.Pt(9, 3), '#', rec.sink)
	if len(rec.hits) != 0 {
		t.Errorf("flat triangle drew %d pixels, want none", len(rec.hits))
	}
}

func TestFillTriangleAAKeepsInterior(t *testing.T) {
	buf := NewBuffer(20, 10)
	r := NewRasterizer(buf, 0)
	p0, p1, p2 := image.Pt(1, 1), image.Pt(17, 5), image.Pt(4, 18)
	r.FillTriangleAA(p0, p1, p2, FullBlock, ColorRed)

	interior := newRecorder()
	FillTriangle(p0, p1, p2, FullBlock, interior.sink)
	for p := range interior.hits {
		if ch, _ := buf.Pixel(p.X, p.Y); ch != FullBlock {
			t.Errorf("interior pixel %v = %q, edge glyph overwrote fill", p, ch)
		}
	}

	edges := 0
	for y := range buf.PixelHeight() {
		for x := range buf.Width() {
			switch ch, _ := buf.Pixel(x, y); ch {
			case UpperHalf, LowerHalf, UpperEdge, LowerEdge:
				edges++
			}
		}
	}
	if edges == 0 {
		t.Error("no anti-aliased edge glyphs drawn")
	}
}

func TestRectangle(t *testing.T) {
	rec := newRecorder()
	Rectangle(image.Pt(4, 3), image.Pt(0, 0), '+', rec.sink)
	// perimeter of a 5×4 box
	if len(rec.hits) != 14 {
		t.Errorf("outline has %d pixels, want 14", len(rec.hits))
	}
	for p, n := range rec.hits {
		if n != 1 {
			t.Errorf("pixel %v emitted %d times", p, n)
		}
	}

	fill := newRecorder()
	FilledRectangle(image.Pt(0, 0), image.Pt(4, 3), '+', fill.sink)
	if len(fill.hits) != 20 {
		t.Errorf("fill has %d pixels, want 20", len(fill.hits))
	}
}

func TestPolygon(t *testing.T) {
	square := []image.Point{{0, 0}, {6, 0}, {6, 6}, {0, 6}}

	fill := newRecorder()
	FilledPolygon(square, '#', fill.sink)
	if len(fill.hits) != 49 {
		t.Errorf("filled square has %d pixels, want 49", len(fill.hits))
	}
	for p, n := range fill.hits {
		if n != 1 {
			t.Errorf("pixel %v emitted %d times", p, n)
		}
	}

	outline := newRecorder()
	Polygon(square, '#', outline.sink)
	for _, v := range square {
		if outline.hits[v] != 1 {
			t.Errorf("corner %v emitted %d times", v, outline.hits[v])
		}
	}
}

func BenchmarkFillTriangle(b *testing.B) {
	buf := NewBuffer(200, 60)
	r := NewRasterizer(buf, 0)
	for b.Loop() {
		r.FillTriangle(image.Pt(3, 2), image.Pt(190, 40), image.Pt(20, 115), FullBlock, ColorRed)
	}
}

func BenchmarkLineAA(b *testing.B) {
	buf := NewBuffer(200, 60)
	r := NewRasterizer(buf, 0)
	for b.Loop() {
		r.DrawLineAA(image.Pt(0, 0), image.Pt(199, 87), ColorWhite)
	}
}
