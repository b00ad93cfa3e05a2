// halfblock - terminal 3D viewer drawn with half-block characters.
//
// Controls:
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Q/E         - Sink/rise
//	Arrows      - Turn and look up/down
//	Mouse drag  - Look around
//	Scroll      - Move forward/back
//	Space       - Random spin
//	R           - Reset camera
//	X           - Cycle fill, wireframe and both
//	G           - Toggle ground grid
//	P           - Save a PNG snapshot
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/models"
	"github.com/taigrr/halfblock/pkg/raster"
	"github.com/taigrr/halfblock/pkg/render"
)

var (
	fov       = flag.Float64("fov", 90, "Field of view in degrees")
	nearPlane = flag.Float64("near", 0.1, "Near clip distance")
	farPlane  = flag.Float64("far", 1000, "Far clip distance")
	targetFPS = flag.Int("fps", 30, "Target FPS")
	policy    = flag.String("policy", "overwrite", "Pixel write policy: overwrite, collision or skip")
	antiAlias = flag.Bool("aa", false, "Anti-alias triangle edges with half-cell glyphs")
	drawMode  = flag.String("wire", "fill", "Draw mode: fill, wire or both")
	lightDir  = flag.String("light", "0.3,0.6,-1", "Light direction (X,Y,Z); 0,0,0 disables shading")
	bgColor   = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	pngPath   = flag.String("png", "", "Write the last frame to this PNG file")
	frames    = flag.Int("frames", 0, "Render N frames without a terminal and print the last one")
	size      = flag.String("size", "80x24", "Buffer size in cells for -frames")
	logPath   = flag.String("log", "", "Write logs to this file")
	verbose   = flag.Bool("v", false, "Log at debug level")
)

// meshColor is used for models without materials.
var meshColor = raster.RGB(200, 200, 200)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "halfblock - terminal 3D viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: halfblock [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model a cube is shown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Move and strafe\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Sink/rise\n")
		fmt.Fprintf(os.Stderr, "  Arrows      - Turn and look\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Look around\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Move forward/back\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  X           - Cycle draw mode\n")
		fmt.Fprintf(os.Stderr, "  G           - Toggle grid\n")
		fmt.Fprintf(os.Stderr, "  P           - Save PNG snapshot\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string) error {
	closeLog, err := setupLogging(*logPath, *verbose)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	bg, err := parseRGB(*bgColor)
	if err != nil {
		return fmt.Errorf("-bg: %w", err)
	}
	mesh, err := loadMesh(modelPath)
	if err != nil {
		return err
	}
	render.Logger().Info("model loaded", "name", mesh.Name, "triangles", len(mesh.Triangles))

	if *frames > 0 {
		w, h, err := parseSize(*size)
		if err != nil {
			return fmt.Errorf("-size: %w", err)
		}
		return runHeadless(os.Stdout, mesh, cfg, bg, w, h, *frames, *pngPath)
	}
	return runViewer(mesh, cfg, bg)
}

// setupLogging routes the render logger to path. Without a path logging
// stays off.
func setupLogging(path string, debug bool) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() {
		render.SetLogger(nil)
		f.Close()
	}, nil
}

func buildConfig() (render.Config, error) {
	cfg := render.DefaultConfig()
	cfg.FOV = *fov
	cfg.Near = *nearPlane
	cfg.Far = *farPlane
	cfg.AntiAlias = *antiAlias

	var err error
	if cfg.Policy, err = raster.ParseWritePolicy(*policy); err != nil {
		return cfg, fmt.Errorf("-policy: %w", err)
	}
	if cfg.Mode, err = render.ParseDrawMode(*drawMode); err != nil {
		return cfg, fmt.Errorf("-wire: %w", err)
	}
	if cfg.Light, err = parseVec3(*lightDir); err != nil {
		return cfg, fmt.Errorf("-light: %w", err)
	}
	return cfg, cfg.Validate()
}

// loadMesh loads path and fits it into a 2-unit box at the origin. An
// empty path gives the built-in cube.
func loadMesh(path string) (*render.Mesh, error) {
	if path == "" {
		return render.Cube(2, raster.FullBlock, meshColor), nil
	}
	m, err := models.Load(path)
	if err != nil {
		if errors.Is(err, models.ErrUnsupportedFormat) {
			return nil, fmt.Errorf("load model: %w (use .obj, .gltf or .glb)", err)
		}
		return nil, fmt.Errorf("load model: %w", err)
	}
	m.Normalize(2)
	return render.MeshFrom(filepath.Base(path), m, raster.FullBlock, meshColor), nil
}

// homeCamera is where the camera starts and where R puts it back.
func homeCamera() (*render.Camera, error) {
	cam, err := render.NewCamera(math3d.V3(0, 1.5, -4), math3d.Forward())
	if err != nil {
		return nil, err
	}
	if err := cam.LookAt(math3d.Zero3()); err != nil {
		return nil, err
	}
	return cam, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseVec3(s string) (math3d.Vec3, error) {
	v, err := parseFloats(s, 3)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

func parseRGB(s string) (color.RGBA, error) {
	v, err := parseFloats(s, 3)
	if err != nil {
		return color.RGBA{}, err
	}
	for _, c := range v {
		if c < 0 || c > 255 {
			return color.RGBA{}, fmt.Errorf("channel %v out of range 0-255", c)
		}
	}
	return raster.RGB(uint8(v[0]), uint8(v[1]), uint8(v[2])), nil
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WxH, got %q", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, err
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %dx%d must be positive", w, h)
	}
	return w, h, nil
}
