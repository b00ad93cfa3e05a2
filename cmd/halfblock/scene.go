package main

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/taigrr/halfblock/pkg/linalg"
	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/raster"
	"github.com/taigrr/halfblock/pkg/render"
)

var (
	gridColor = raster.RGB(70, 70, 90)
	hudColor  = raster.RGB(230, 230, 230)
	dimColor  = raster.RGB(140, 140, 160)
)

// scene is what one frame draws: the ground grid and the spinning model.
type scene struct {
	pipeline *render.Pipeline
	mesh     *render.Mesh
	grid     bool
	// spin is the model's turn rate in radians per second.
	spin float64
	// tilt leans the model towards the camera, in radians.
	tilt float64
}

// model returns the transform at t: the tilt about x, then the spin
// about y.
func (s *scene) model(t float64) (math3d.Mat4, error) {
	tilt := linalg.FromMat4(math3d.RotateX(s.tilt))
	spin := linalg.FromMat4(math3d.RotateY(t * s.spin))
	m, err := tilt.Mul(spin)
	if err != nil {
		return math3d.Mat4{}, fmt.Errorf("model transform: %w", err)
	}
	return m.Mat4()
}

func (s *scene) draw(t float64) {
	s.pipeline.BeginFrame()
	if s.grid {
		s.pipeline.DrawGrid(8, 0.5, '+', gridColor)
	}
	model, err := s.model(t)
	if err != nil {
		render.Logger().Warn("skipping mesh", "err", err)
		return
	}
	s.pipeline.Render(s.mesh, model)
}

// hud draws the overlay rows and the title banner.
type hud struct {
	name   string
	show   bool
	banner float64 // seconds the title stays up
}

func (h *hud) draw(r *raster.Rasterizer, cfg render.Config, stats render.Stats, fps, t float64) {
	buf := r.Buffer()
	w, rows := buf.Width(), buf.Height()

	if t < h.banner && w >= 70 && rows >= 10 {
		r.DrawBanner(image.Pt(1, 2), "halfblock", dimColor)
	}
	if !h.show {
		return
	}

	// a small reticle at the center, cached per buffer size
	cx, cy := w/2, buf.PixelHeight()/2
	key := fmt.Sprintf("reticle-%dx%d", w, buf.PixelHeight())
	drawCached(r, key, raster.Shape{
		Kind:   raster.KindCircle,
		Points: []image.Point{image.Pt(cx, cy)},
		Radius: 2,
		Char:   '.',
		Color:  dimColor,
	})

	left := fmt.Sprintf(" %.0f FPS ", fps)
	right := fmt.Sprintf(" %d/%d tris ", stats.Drawn, stats.In)
	r.DrawText(0, 0, left, hudColor)
	r.DrawText(max((w-len(h.name))/2, len(left)), 0, h.name, hudColor)
	r.DrawText(max(w-len(right), 0), 0, right, hudColor)

	status := fmt.Sprintf(" mode:%s policy:%s aa:%v culled:%d ", cfg.Mode, cfg.Policy, cfg.AntiAlias, stats.MeshesCulled)
	r.DrawText(0, rows-1, status, dimColor)
}

// drawCached draws an overlay shape. A shape that fails to draw is logged
// and skipped so the frame still goes out.
func drawCached(r *raster.Rasterizer, key string, s raster.Shape) {
	if err := r.DrawCached(key, s); err != nil {
		render.Logger().Warn("overlay draw failed", "key", key, "err", err)
	}
}

// runHeadless renders n frames into a cols×rows buffer at the target
// frame rate's time steps and writes the last one to out as text.
func runHeadless(out io.Writer, mesh *render.Mesh, cfg render.Config, bg color.RGBA, cols, rows, n int, pngPath string) error {
	buf := raster.NewBuffer(cols, rows)
	buf.Background = bg
	cam, err := homeCamera()
	if err != nil {
		return err
	}
	p, err := render.NewPipeline(cam, raster.NewRasterizer(buf, 0), cfg)
	if err != nil {
		return err
	}

	sc := &scene{pipeline: p, mesh: mesh, grid: true, spin: 0.5, tilt: 0.2}
	step := 1 / float64(max(*targetFPS, 1))
	t := 0.0
	for range n {
		sc.draw(t)
		t += step
	}

	if _, err := io.WriteString(out, buf.String()+"\n"); err != nil {
		return err
	}
	render.Logger().Info("headless render done", "frames", n, "stats", fmt.Sprintf("%+v", p.Stats()))

	if pngPath != "" {
		if err := buf.SavePNG(pngPath); err != nil {
			return err
		}
	}
	return nil
}
