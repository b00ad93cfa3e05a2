package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/raster"
)

// ErrConfig is returned for invalid pipeline configuration.
var ErrConfig = errors.New("render: invalid config")

// DrawMode selects how visible triangles are rasterized.
type DrawMode int

const (
	DrawFill DrawMode = iota
	DrawWire
	DrawFillWire
)

func (m DrawMode) String() string {
	switch m {
	case DrawFill:
		return "fill"
	case DrawWire:
		return "wire"
	case DrawFillWire:
		return "fill+wire"
	}
	return fmt.Sprintf("DrawMode(%d)", int(m))
}

// ParseDrawMode parses the names produced by DrawMode.String.
func ParseDrawMode(s string) (DrawMode, error) {
	switch strings.ToLower(s) {
	case "fill", "":
		return DrawFill, nil
	case "wire", "wireframe":
		return DrawWire, nil
	case "fill+wire", "both":
		return DrawFillWire, nil
	}
	return 0, fmt.Errorf("%w: unknown draw mode %q", ErrConfig, s)
}

// Config controls a Pipeline.
type Config struct {
	// FOV is the field of view in degrees.
	FOV  float64
	Near float64
	Far  float64

	Policy    raster.WritePolicy
	Mode      DrawMode
	AntiAlias bool

	// Light points towards a directional light. A zero vector disables
	// shading and triangles keep their own color.
	Light math3d.Vec3
	// Ambient is the minimum brightness of a shaded face.
	Ambient float64

	// WireColor is used for outlines in DrawFillWire mode.
	WireColor raster.Color

	// FrustumCull rejects whole meshes whose bounds are outside the view.
	FrustumCull bool
}

// DefaultConfig returns a 90 degree perspective with near 0.1, far 1000,
// overwrite writes and a light above and behind the camera.
func DefaultConfig() Config {
	return Config{
		FOV:         90,
		Near:        0.1,
		Far:         1000,
		Policy:      raster.Overwrite,
		Mode:        DrawFill,
		Light:       math3d.V3(0.3, 0.6, -1),
		Ambient:     0.3,
		WireColor:   raster.ColorWhite,
		FrustumCull: true,
	}
}

// Validate checks the projection parameters.
func (c Config) Validate() error {
	switch {
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrConfig, c.FOV)
	case c.Near <= 0:
		return fmt.Errorf("%w: near %v must be positive", ErrConfig, c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("%w: far %v must exceed near %v", ErrConfig, c.Far, c.Near)
	case c.Ambient < 0 || c.Ambient > 1:
		return fmt.Errorf("%w: ambient %v outside [0, 1]", ErrConfig, c.Ambient)
	}
	return nil
}
