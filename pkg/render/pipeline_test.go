package render

import (
	"errors"
	"testing"

	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/raster"
)

var identity = math3d.Identity()

// newTestPipeline returns a pipeline over a w×h cell buffer with the camera
// five units in front of the origin, looking at it.
func newTestPipeline(t testing.TB, w, h int) *Pipeline {
	t.Helper()
	cam := mustCamera(t, v3(0, 0, -5), v3(0, 0, 1))
	p, err := NewPipeline(cam, raster.NewRasterizer(raster.NewBuffer(w, h), 0), DefaultConfig())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	return p
}

// quad returns a square of half size h facing -z at depth z.
func quad(h, z float64, color raster.Color) *Mesh {
	a, b, c, d := v3(-h, -h, z), v3(-h, h, z), v3(h, h, z), v3(h, -h, z)
	return &Mesh{Name: "quad", Triangles: []Triangle3D{
		Tri(a, b, c, raster.FullBlock, color),
		Tri(a, c, d, raster.FullBlock, color),
	}}
}

func drawnPixels(buf *raster.Buffer) int {
	n := 0
	for y := range buf.PixelHeight() {
		for x := range buf.Width() {
			if ch, _ := buf.Pixel(x, y); ch != raster.Empty {
				n++
			}
		}
	}
	return n
}

func TestPipelineRendersCube(t *testing.T) {
	p := newTestPipeline(t, 20, 10)
	p.BeginFrame()
	p.Render(Cube(2, raster.FullBlock, raster.ColorRed), identity)

	buf := p.Rasterizer().Buffer()
	if drawnPixels(buf) == 0 {
		t.Fatal("cube produced an empty buffer")
	}
	ch, c := buf.Pixel(10, 10)
	if ch != raster.FullBlock {
		t.Errorf("center pixel = %q, want full block", ch)
	}
	if c.R == 0 || c.G != 0 || c.B != 0 {
		t.Errorf("center color = %v, want shaded red", c)
	}

	s := p.Stats()
	want := Stats{Meshes: 1, In: 12, BackFaces: 10, Queued: 2, Drawn: 2}
	if s != want {
		t.Errorf("stats = %+v, want %+v", s, want)
	}
}

func TestPipelineBehindCamera(t *testing.T) {
	for _, cull := range []bool{true, false} {
		p := newTestPipeline(t, 20, 10)
		p.Config.FrustumCull = cull
		p.Camera.LookDir = v3(0, 0, -1)
		if err := p.Camera.Update(math3d.Up()); err != nil {
			t.Fatal(err)
		}

		p.BeginFrame()
		p.Render(Cube(2, raster.FullBlock, raster.ColorRed), identity)
		if n := drawnPixels(p.Rasterizer().Buffer()); n != 0 {
			t.Errorf("cull=%v: cube behind the camera drew %d pixels", cull, n)
		}
		if cull && p.Stats().MeshesCulled != 1 {
			t.Errorf("cull=%v: MeshesCulled = %d, want 1", cull, p.Stats().MeshesCulled)
		}
		if !cull && p.Stats().Drawn != 0 {
			t.Errorf("cull=%v: Drawn = %d, want 0", cull, p.Stats().Drawn)
		}
	}
}

func TestPipelineNearClip(t *testing.T) {
	p := newTestPipeline(t, 20, 10)
	p.Camera.Position = v3(0, 0, 0)
	if err := p.Camera.Update(math3d.Up()); err != nil {
		t.Fatal(err)
	}

	// a floor under the camera reaching behind it
	a, b, c, d := v3(-10, -1, -10), v3(-10, -1, 10), v3(10, -1, 10), v3(10, -1, -10)
	floor := &Mesh{Triangles: []Triangle3D{
		Tri(a, b, c, raster.FullBlock, raster.ColorGreen),
		Tri(a, c, d, raster.FullBlock, raster.ColorGreen),
	}}

	p.BeginFrame()
	p.Render(floor, identity)
	s := p.Stats()
	if s.NearClipped == 0 {
		t.Error("floor crossing the near plane was not clipped")
	}
	if s.Drawn == 0 {
		t.Fatal("nothing drawn")
	}

	buf := p.Rasterizer().Buffer()
	if ch, _ := buf.Pixel(10, 18); ch == raster.Empty {
		t.Error("floor missing at the bottom of the screen")
	}
	if ch, _ := buf.Pixel(10, 2); ch != raster.Empty {
		t.Error("floor drawn above the horizon")
	}
}

func TestPipelinePaintersOrder(t *testing.T) {
	near := quad(1, 0, raster.ColorGreen)
	far := quad(3, 5, raster.ColorRed)

	for _, order := range [][]*Mesh{{near, far}, {far, near}} {
		p := newTestPipeline(t, 20, 10)
		p.Config.Light = math3d.Zero3()
		p.BeginFrame()
		for _, m := range order {
			p.Submit(m, identity)
		}
		p.Flush()

		if _, c := p.Rasterizer().Buffer().Pixel(10, 10); c != raster.ColorGreen {
			t.Errorf("center color = %v, want the nearer quad's green", c)
		}
		if p.Stats().Meshes != 2 {
			t.Errorf("Meshes = %d, want 2", p.Stats().Meshes)
		}
	}
}

func TestPipelineLighting(t *testing.T) {
	tests := []struct {
		name  string
		light math3d.Vec3
		want  uint8
	}{
		{"facing the light", v3(0, 0, -1), 255},
		{"facing away", v3(0, 0, 1), 76},
		{"disabled", v3(0, 0, 0), 255},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newTestPipeline(t, 20, 10)
			p.Config.Light = tc.light
			p.BeginFrame()
			p.Render(quad(1, 0, raster.ColorRed), identity)
			if _, c := p.Rasterizer().Buffer().Pixel(10, 10); c.R != tc.want {
				t.Errorf("red channel = %d, want %d", c.R, tc.want)
			}
		})
	}
}

func TestPipelineDrawModes(t *testing.T) {
	counts := map[DrawMode]int{}
	for _, mode := range []DrawMode{DrawFill, DrawWire, DrawFillWire} {
		p := newTestPipeline(t, 40, 20)
		p.Config.Mode = mode
		p.BeginFrame()
		p.Render(Cube(4, raster.FullBlock, raster.ColorBlue), math3d.RotateY(0.5).Mul(math3d.RotateX(0.4)))
		counts[mode] = drawnPixels(p.Rasterizer().Buffer())
	}
	if counts[DrawWire] == 0 || counts[DrawWire] >= counts[DrawFill] {
		t.Errorf("wire drew %d pixels, fill %d; want 0 < wire < fill", counts[DrawWire], counts[DrawFill])
	}
	if counts[DrawFillWire] < counts[DrawFill] {
		t.Errorf("fill+wire drew %d pixels, fewer than fill %d", counts[DrawFillWire], counts[DrawFill])
	}
}

func TestPipelineAntiAlias(t *testing.T) {
	p := newTestPipeline(t, 40, 20)
	p.Config.AntiAlias = true
	p.BeginFrame()
	p.Render(Cube(4, raster.FullBlock, raster.ColorBlue), math3d.RotateZ(0.3))
	if drawnPixels(p.Rasterizer().Buffer()) == 0 {
		t.Error("anti-aliased cube drew nothing")
	}
}

func TestPipelineModelTransform(t *testing.T) {
	p := newTestPipeline(t, 20, 10)
	p.BeginFrame()
	p.Render(Cube(2, raster.FullBlock, raster.ColorRed), math3d.Translate(v3(100, 0, 0)))
	if p.Stats().MeshesCulled != 1 {
		t.Errorf("off-screen cube not frustum culled: %+v", p.Stats())
	}
	if drawnPixels(p.Rasterizer().Buffer()) != 0 {
		t.Error("off-screen cube drew pixels")
	}
}

func TestPipelineEmptyMesh(t *testing.T) {
	p := newTestPipeline(t, 10, 5)
	p.BeginFrame()
	p.Render(nil, identity)
	p.Render(&Mesh{}, identity)
	if s := p.Stats(); s.Meshes != 2 || s.In != 0 || s.Drawn != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestDrawLine3D(t *testing.T) {
	p := newTestPipeline(t, 20, 10)
	p.BeginFrame()
	p.DrawLine3D(v3(0, 0, 0), v3(2, 0, 0), raster.FullBlock, raster.ColorRed)

	buf := p.Rasterizer().Buffer()
	n := 0
	for y := range buf.PixelHeight() {
		for x := range buf.Width() {
			if ch, _ := buf.Pixel(x, y); ch != raster.Empty {
				n++
				// +x is on the viewer's left looking down +z
				if x > 10 {
					t.Errorf("pixel (%d, %d) right of center", x, y)
				}
			}
		}
	}
	if n == 0 {
		t.Fatal("line drew nothing")
	}

	p.BeginFrame()
	p.DrawLine3D(v3(0, 0, -10), v3(1, 1, -8), raster.FullBlock, raster.ColorRed)
	if drawnPixels(buf) != 0 {
		t.Error("line behind the camera was drawn")
	}

	p.BeginFrame()
	p.DrawLine3D(v3(0, -1, -10), v3(0, -1, 10), raster.FullBlock, raster.ColorRed)
	if drawnPixels(buf) == 0 {
		t.Error("line crossing the near plane drew nothing")
	}
}

func TestGuides(t *testing.T) {
	p := newTestPipeline(t, 30, 15)
	p.Camera.Position = v3(3, 4, -6)
	if err := p.Camera.LookAt(v3(0, 0, 0)); err != nil {
		t.Fatal(err)
	}

	p.BeginFrame()
	p.DrawAxes(2)
	p.DrawGrid(4, 1, '+', raster.ColorGray)
	p.DrawGrid(4, 0, '+', raster.ColorGray)
	p.DrawPoint(v3(0, 1, 0), 0.5, '*', raster.ColorYellow)
	if drawnPixels(p.Rasterizer().Buffer()) == 0 {
		t.Error("guides drew nothing")
	}
}

func TestNewPipelineRejectsConfig(t *testing.T) {
	cam, err := NewCamera(v3(0, 0, 0), v3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Near = 0
	if _, err := NewPipeline(cam, raster.NewRasterizer(raster.NewBuffer(4, 4), 0), cfg); !errors.Is(err, ErrConfig) {
		t.Errorf("error = %v, want ErrConfig", err)
	}
}

func BenchmarkPipelineCube(b *testing.B) {
	p := newTestPipeline(b, 120, 40)
	cube := Cube(2, raster.FullBlock, raster.ColorRed)
	model := math3d.RotateY(0.7).Mul(math3d.RotateX(0.3))
	for b.Loop() {
		p.BeginFrame()
		p.Render(cube, model)
	}
}
