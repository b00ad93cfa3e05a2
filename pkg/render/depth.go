package render

import (
	"cmp"
	"slices"

	"github.com/taigrr/halfblock/pkg/math3d"
)

// IsFrontFacing reports whether tri faces a camera at cameraPos, that is
// normal · (v0 − cameraPos) < 0.
func IsFrontFacing(tri Triangle3D, cameraPos math3d.Vec3) bool {
	return tri.Normal().Dot(tri.V[0].Sub(cameraPos)) < 0
}

// SortByDepth orders tris farthest first by average z. Equal depths keep
// their input order.
func SortByDepth(tris []Triangle3D) {
	slices.SortStableFunc(tris, func(a, b Triangle3D) int {
		return cmp.Compare(b.AverageZ(), a.AverageZ())
	})
}
