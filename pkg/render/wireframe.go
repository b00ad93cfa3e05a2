package render

import (
	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/raster"
)

// DrawLine3D draws a world-space segment over the current frame. It is
// not depth sorted, so call it after Flush to draw guides on top.
func (p *Pipeline) DrawLine3D(a, b math3d.Vec3, ch rune, color raster.Color) {
	view := p.Camera.View()
	va, vb := view.MulPoint(a), view.MulPoint(b)

	near := math3d.NewPlane(math3d.V3(0, 0, p.Config.Near), math3d.V3(0, 0, 1))
	inA, inB := near.Contains(va), near.Contains(vb)
	switch {
	case !inA && !inB:
		return
	case !inA:
		va = near.IntersectSegment(vb, va)
	case !inB:
		vb = near.IntersectSegment(va, vb)
	}

	buf := p.raster.Buffer()
	w, h := float64(buf.Width()), float64(buf.PixelHeight())
	proj := p.Projection()
	sa, sb := proj.Project(va), proj.Project(vb)
	sa = math3d.V3((sa.X+1)*0.5*w, (sa.Y+1)*0.5*h, va.Z)
	sb = math3d.V3((sb.X+1)*0.5*w, (sb.Y+1)*0.5*h, vb.Z)

	// both ends past the same screen edge
	if (sa.X < 0 && sb.X < 0) || (sa.X >= w && sb.X >= w) ||
		(sa.Y < 0 && sb.Y < 0) || (sa.Y >= h && sb.Y >= h) {
		return
	}
	p.raster.DrawLine(screenPoint(sa), screenPoint(sb), ch, color)
}

// DrawAxes draws the world X, Y and Z axes in red, green and blue.
func (p *Pipeline) DrawAxes(length float64) {
	origin := math3d.Zero3()
	p.DrawLine3D(origin, math3d.V3(length, 0, 0), raster.FullBlock, raster.ColorRed)
	p.DrawLine3D(origin, math3d.V3(0, length, 0), raster.FullBlock, raster.ColorGreen)
	p.DrawLine3D(origin, math3d.V3(0, 0, length), raster.FullBlock, raster.ColorBlue)
}

// DrawGrid draws a square grid on the XZ plane at y=0.
func (p *Pipeline) DrawGrid(size, step float64, ch rune, color raster.Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	for x := -half; x <= half; x += step {
		p.DrawLine3D(math3d.V3(x, 0, -half), math3d.V3(x, 0, half), ch, color)
	}
	for z := -half; z <= half; z += step {
		p.DrawLine3D(math3d.V3(-half, 0, z), math3d.V3(half, 0, z), ch, color)
	}
}

// DrawPoint marks pos with a small three-axis cross.
func (p *Pipeline) DrawPoint(pos math3d.Vec3, size float64, ch rune, color raster.Color) {
	h := size / 2
	p.DrawLine3D(pos.Sub(math3d.V3(h, 0, 0)), pos.Add(math3d.V3(h, 0, 0)), ch, color)
	p.DrawLine3D(pos.Sub(math3d.V3(0, h, 0)), pos.Add(math3d.V3(0, h, 0)), ch, color)
	p.DrawLine3D(pos.Sub(math3d.V3(0, 0, h)), pos.Add(math3d.V3(0, 0, h)), ch, color)
}
