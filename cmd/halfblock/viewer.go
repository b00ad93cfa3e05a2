package main

import (
	"context"
	"fmt"
	"image/color"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/halfblock/pkg/clock"
	"github.com/taigrr/halfblock/pkg/input"
	"github.com/taigrr/halfblock/pkg/raster"
	"github.com/taigrr/halfblock/pkg/render"
)

// watchedKeys are the key names forwarded from the terminal.
var watchedKeys = []string{
	"w", "a", "s", "d", "q", "e",
	"up", "down", "left", "right",
	"space", "r", "x", "g", "p", "?",
	"escape", "ctrl+c",
}

func keyName(match func(...string) bool) string {
	for _, k := range watchedKeys {
		if match(k) {
			return k
		}
	}
	if match("shift+/") {
		return "?"
	}
	return ""
}

// termEvent is a terminal event reduced to what the viewer reads. The
// event goroutine sends these to the frame loop, which owns all state.
type termEvent struct {
	press, release string
	mouse          *input.MouseEvent
	resized        bool
	width, height  int
}

// viewer is the interactive frame loop's state.
type viewer struct {
	term     *uv.Terminal
	buf      *raster.Buffer
	pipeline *render.Pipeline
	scene    *scene
	hud      *hud
	state    *input.State
	ctrl     *input.Controller

	width, height int
}

func runViewer(mesh *render.Mesh, cfg render.Config, bg color.RGBA) error {
	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	buf := raster.NewBuffer(width, height)
	buf.Background = bg
	rast := raster.NewRasterizer(buf, 16)
	cam, err := homeCamera()
	if err != nil {
		return err
	}
	p, err := render.NewPipeline(cam, rast, cfg)
	if err != nil {
		return err
	}

	v := &viewer{
		term:     term,
		buf:      buf,
		pipeline: p,
		scene:    &scene{pipeline: p, mesh: mesh, grid: true, spin: 0.5, tilt: 0.2},
		hud:      &hud{name: mesh.Name, show: true, banner: 2},
		state:    input.NewState(),
		ctrl:     input.NewController(*targetFPS),
		width:    width,
		height:   height,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	events := make(chan termEvent, 64)
	go pumpEvents(ctx, term, events)

	return v.loop(ctx, events)
}

// pumpEvents translates terminal events until ctx is done.
func pumpEvents(ctx context.Context, term *uv.Terminal, out chan<- termEvent) {
	for ev := range term.Events() {
		var te termEvent
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			te = termEvent{resized: true, width: ev.Width, height: ev.Height}
		case uv.KeyPressEvent:
			te.press = keyName(ev.MatchString)
		case uv.KeyReleaseEvent:
			te.release = keyName(ev.MatchString)
		case uv.MouseClickEvent:
			te.mouse = &input.MouseEvent{X: ev.X, Y: ev.Y, Action: input.MouseClick}
		case uv.MouseReleaseEvent:
			te.mouse = &input.MouseEvent{X: ev.X, Y: ev.Y, Action: input.MouseRelease}
		case uv.MouseMotionEvent:
			te.mouse = &input.MouseEvent{X: ev.X, Y: ev.Y, Action: input.MouseMotion}
		case uv.MouseWheelEvent:
			action := input.MouseWheelDown
			if ev.Button == uv.MouseWheelUp {
				action = input.MouseWheelUp
			}
			te.mouse = &input.MouseEvent{X: ev.X, Y: ev.Y, Action: action}
		default:
			continue
		}
		if te == (termEvent{}) {
			continue
		}

		select {
		case out <- te:
		case <-ctx.Done():
			return
		}
	}
}

func (v *viewer) loop(ctx context.Context, events <-chan termEvent) error {
	clk := clock.New()
	clk.MaxDelta = 100 * time.Millisecond
	fps := clock.NewFPS(clk)
	period := time.Second / time.Duration(max(*targetFPS, 1))

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case ev := <-events:
				if quit := v.handle(ev); quit {
					return nil
				}
			default:
				break drain
			}
		}

		dt := clk.Tick()
		d := v.ctrl.Update(v.state, dt)
		if err := v.ctrl.Apply(d, v.pipeline.Camera); err != nil {
			render.Logger().Warn("camera update failed", "err", err)
		}
		// terminals rarely report key releases; held keys repeat instead
		v.state.ReleaseAll()

		t := clk.Elapsed().Seconds()
		v.scene.draw(t)
		v.hud.draw(v.pipeline.Rasterizer(), v.pipeline.Config, v.pipeline.Stats(), fps.Frame(), t)

		v.buf.Draw(v.term, uv.Rect(0, 0, v.width, v.height))
		if err := v.term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		clk.Wait(period)
	}
}

// handle applies one event and reports whether the viewer should quit.
func (v *viewer) handle(ev termEvent) bool {
	switch {
	case ev.resized:
		v.width, v.height = ev.width, ev.height
		v.term.Erase()
		v.term.Resize(v.width, v.height)
		v.buf.Resize(v.width, v.height)
		render.Logger().Debug("resized", "width", v.width, "height", v.height)
	case ev.mouse != nil:
		v.state.SetMouse(*ev.mouse)
	case ev.release != "":
		v.state.Release(ev.release)
	case ev.press != "":
		return v.press(ev.press)
	}
	return false
}

func (v *viewer) press(key string) bool {
	switch key {
	case "escape", "ctrl+c":
		return true
	case "r":
		v.ctrl.Reset()
		if cam, err := homeCamera(); err == nil {
			v.pipeline.Camera = cam
		}
	case "x":
		v.pipeline.Config.Mode = nextMode(v.pipeline.Config.Mode)
	case "g":
		v.scene.grid = !v.scene.grid
	case "?":
		v.hud.show = !v.hud.show
	case "p":
		v.snapshot()
	case "space":
		v.ctrl.Impulse((rand.Float64()-0.5)*0.3, (rand.Float64()-0.5)*0.3)
	default:
		v.state.Press(key)
	}
	return false
}

func nextMode(m render.DrawMode) render.DrawMode {
	switch m {
	case render.DrawFill:
		return render.DrawWire
	case render.DrawWire:
		return render.DrawFillWire
	}
	return render.DrawFill
}

func (v *viewer) snapshot() {
	path := *pngPath
	if path == "" {
		path = fmt.Sprintf("halfblock-%s.png", time.Now().Format("20060102-150405"))
	}
	if err := v.buf.SavePNG(path); err != nil {
		render.Logger().Error("snapshot failed", "path", path, "err", err)
		return
	}
	render.Logger().Info("snapshot saved", "path", path)
}
