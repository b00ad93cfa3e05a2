package render

import "github.com/taigrr/halfblock/pkg/math3d"

// Projection holds perspective parameters. FOV is in degrees and Aspect is
// pixel height over pixel width.
type Projection struct {
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64
}

// Matrix returns the perspective matrix. X and Y come out negated so that
// screen Y grows downward; depths in [Near, Far] map into [0, 1].
func (p Projection) Matrix() math3d.Mat4 {
	return math3d.Perspective(p.FOV, p.Aspect, p.Near, p.Far)
}

// Project transforms a view-space point. The divide by w is skipped when w
// is zero, so points on the camera plane pass through undivided.
func (p Projection) Project(v math3d.Vec3) math3d.Vec3 {
	return math3d.Project(p.Matrix(), v)
}
