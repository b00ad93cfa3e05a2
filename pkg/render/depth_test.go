package render

import (
	"testing"

	"github.com/taigrr/halfblock/pkg/raster"
)

func flatAt(z float64, ch rune) Triangle3D {
	return Tri(v3(0, 0, z), v3(1, 0, z), v3(0, 1, z), ch, raster.ColorWhite)
}

func TestSortByDepth(t *testing.T) {
	a, b, c := flatAt(5, 'A'), flatAt(1, 'B'), flatAt(9, 'C')
	orders := [][]Triangle3D{
		{a, b, c},
		{a, c, b},
		{b, a, c},
		{b, c, a},
		{c, a, b},
		{c, b, a},
	}
	for _, tris := range orders {
		SortByDepth(tris)
		got := string([]rune{tris[0].Char, tris[1].Char, tris[2].Char})
		if got != "CAB" {
			t.Errorf("sorted order = %s, want CAB", got)
		}
	}
}

func TestSortByDepthStable(t *testing.T) {
	tris := []Triangle3D{flatAt(2, 'x'), flatAt(2, 'y'), flatAt(3, 'z'), flatAt(2, 'w')}
	SortByDepth(tris)
	got := string([]rune{tris[0].Char, tris[1].Char, tris[2].Char, tris[3].Char})
	if got != "zxyw" {
		t.Errorf("sorted order = %s, want zxyw", got)
	}
}

func TestIsFrontFacing(t *testing.T) {
	// normal points towards -z
	tri := Tri(v3(-1, -1, 0), v3(-1, 1, 0), v3(1, 1, 0), '#', raster.ColorRed)
	tests := []struct {
		name string
		cam  float64
		want bool
	}{
		{"camera on the normal side", -5, true},
		{"camera behind", 5, false},
		{"camera in the plane", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsFrontFacing(tri, v3(0, 0, tc.cam)); got != tc.want {
				t.Errorf("IsFrontFacing = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCubeNormalsPointOutward(t *testing.T) {
	cube := Cube(2, '#', raster.ColorRed)
	if len(cube.Triangles) != 12 {
		t.Fatalf("cube has %d triangles, want 12", len(cube.Triangles))
	}
	for i, tri := range cube.Triangles {
		center := tri.V[0].Add(tri.V[1]).Add(tri.V[2]).Scale(1.0 / 3)
		if tri.Normal().Dot(center) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i, tri.Normal())
		}
	}
	box := cube.Bounds()
	if box.Min != v3(-1, -1, -1) || box.Max != v3(1, 1, 1) {
		t.Errorf("bounds = %v, want ±1", box)
	}
}

func BenchmarkSortByDepth(b *testing.B) {
	src := make([]Triangle3D, 512)
	for i := range src {
		src[i] = flatAt(float64((i*7919)%512), '#')
	}
	tris := make([]Triangle3D, len(src))
	for b.Loop() {
		copy(tris, src)
		SortByDepth(tris)
	}
}
