package render

import (
	"fmt"
	"image"
	"math"

	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/raster"
)

// Stats counts what happened to the triangles of one frame. Queued counts
// triangles that reached screen space; Drawn counts the pieces left after
// the screen-edge clip, which can exceed Queued.
type Stats struct {
	Meshes       int
	MeshesCulled int
	In           int
	BackFaces    int
	NearClipped  int
	Queued       int
	Drawn        int
}

// Pipeline projects meshes through a Camera onto a raster buffer.
//
// A frame is BeginFrame, any number of Submit calls, then Flush. Submit
// stops at screen space; Flush clips against the screen edges, depth sorts
// everything submitted and fills it, so meshes paint over each other in
// the right order. Render is Submit plus Flush for a single mesh.
type Pipeline struct {
	Camera *Camera
	Config Config

	raster *raster.Rasterizer
	queue  []Triangle3D
	stats  Stats
}

// NewPipeline creates a pipeline drawing into r with the given camera.
func NewPipeline(cam *Camera, r *raster.Rasterizer, cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new pipeline: %w", err)
	}
	r.Buffer().Policy = cfg.Policy
	return &Pipeline{Camera: cam, Config: cfg, raster: r}, nil
}

// Rasterizer returns the rasterizer the pipeline draws with.
func (p *Pipeline) Rasterizer() *raster.Rasterizer {
	return p.raster
}

// Projection returns the projection for the current buffer size. The
// aspect ratio is pixel height over width.
func (p *Pipeline) Projection() Projection {
	buf := p.raster.Buffer()
	aspect := 1.0
	if buf.Width() > 0 {
		aspect = float64(buf.PixelHeight()) / float64(buf.Width())
	}
	return Projection{FOV: p.Config.FOV, Aspect: aspect, Near: p.Config.Near, Far: p.Config.Far}
}

// Frustum returns the view frustum for the current camera and projection.
func (p *Pipeline) Frustum() Frustum {
	return NewFrustum(p.Camera.View().Mul(p.Projection().Matrix()))
}

// Stats returns the counters accumulated since the last BeginFrame.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// BeginFrame clears the buffer, the queue and the stats.
func (p *Pipeline) BeginFrame() {
	p.raster.Buffer().Policy = p.Config.Policy
	p.raster.Buffer().Clear()
	p.queue = p.queue[:0]
	p.stats = Stats{}
}

// Render submits mesh and immediately flushes it.
func (p *Pipeline) Render(mesh *Mesh, model math3d.Mat4) {
	p.Submit(mesh, model)
	p.Flush()
}

// Submit transforms mesh by model into world space and runs it through
// culling, the view transform, the near-plane clip and projection. The
// resulting screen-space triangles wait in the queue until Flush.
func (p *Pipeline) Submit(mesh *Mesh, model math3d.Mat4) {
	p.stats.Meshes++
	if mesh == nil || len(mesh.Triangles) == 0 {
		return
	}

	view := p.Camera.View()
	proj := p.Projection()
	projM := proj.Matrix()

	if p.Config.FrustumCull {
		world := mesh.Bounds().Transform(model)
		if !NewFrustum(view.Mul(projM)).IntersectAABB(world) {
			p.stats.MeshesCulled++
			return
		}
	}

	buf := p.raster.Buffer()
	w, h := float64(buf.Width()), float64(buf.PixelHeight())
	near := math3d.NewPlane(math3d.V3(0, 0, p.Config.Near), math3d.V3(0, 0, 1))
	light := p.Config.Light.Normalize()
	shade := light != (math3d.Vec3{})

	for _, tri := range mesh.Triangles {
		p.stats.In++
		world := tri.Transform(model)
		if !IsFrontFacing(world, p.Camera.Position) {
			p.stats.BackFaces++
			continue
		}
		if shade {
			world.Color = p.shade(world, light)
		}

		viewed := world.Transform(view)
		pieces := ClipTriangleAgainstPlane(near, viewed)
		if len(pieces) != 1 || pieces[0] != viewed {
			p.stats.NearClipped++
		}

		for _, piece := range pieces {
			for i, v := range piece.V {
				ndc := math3d.Project(projM, v)
				// keep view z as the depth key
				piece.V[i] = math3d.V3((ndc.X+1)*0.5*w, (ndc.Y+1)*0.5*h, v.Z)
			}
			p.queue = append(p.queue, piece)
		}
	}
}

// Flush clips the queued triangles against the screen edges, sorts them
// farthest first and rasterizes them. The queue is emptied.
func (p *Pipeline) Flush() {
	buf := p.raster.Buffer()
	p.stats.Queued += len(p.queue)
	visible := ClipAgainstPlanes(screenPlanes(buf.Width(), buf.PixelHeight()), p.queue)
	SortByDepth(visible)

	for _, tri := range visible {
		p.draw(tri)
	}
	p.stats.Drawn += len(visible)
	p.queue = p.queue[:0]

	Logger().Debug("frame rendered",
		"meshes", p.stats.Meshes,
		"meshes_culled", p.stats.MeshesCulled,
		"in", p.stats.In,
		"back_faces", p.stats.BackFaces,
		"near_clipped", p.stats.NearClipped,
		"drawn", p.stats.Drawn,
	)
}

// screenPlanes returns the top, bottom, left and right edges of a w×h
// pixel grid with inward normals.
func screenPlanes(w, h int) []math3d.Plane {
	return []math3d.Plane{
		math3d.NewPlane(math3d.V3(0, 0, 0), math3d.V3(0, 1, 0)),
		math3d.NewPlane(math3d.V3(0, float64(h-1), 0), math3d.V3(0, -1, 0)),
		math3d.NewPlane(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0)),
		math3d.NewPlane(math3d.V3(float64(w-1), 0, 0), math3d.V3(-1, 0, 0)),
	}
}

// shade applies ambient plus diffuse lighting to the triangle's color.
func (p *Pipeline) shade(t Triangle3D, light math3d.Vec3) raster.Color {
	intensity := math.Max(0, t.Normal().Normalize().Dot(light))
	return raster.Shade(t.Color, p.Config.Ambient+(1-p.Config.Ambient)*intensity)
}

func (p *Pipeline) draw(t Triangle3D) {
	a, b, c := screenPoint(t.V[0]), screenPoint(t.V[1]), screenPoint(t.V[2])
	ch := t.Char
	if ch == 0 {
		ch = raster.FullBlock
	}

	switch p.Config.Mode {
	case DrawWire:
		p.raster.DrawTriangle(a, b, c, ch, t.Color)
	case DrawFillWire:
		p.fill(a, b, c, ch, t.Color)
		p.raster.DrawTriangle(a, b, c, ch, p.Config.WireColor)
	default:
		p.fill(a, b, c, ch, t.Color)
	}
}

func (p *Pipeline) fill(a, b, c image.Point, ch rune, color raster.Color) {
	if p.Config.AntiAlias {
		p.raster.FillTriangleAA(a, b, c, ch, color)
		return
	}
	p.raster.FillTriangle(a, b, c, ch, color)
}

func screenPoint(v math3d.Vec3) image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}
