// Command evviewer is a minimal read-only Gio viewer over a fleet
// simulation: it renders park bounds, stations, vehicles (colored by
// status), and robots (all in one color) from internal/snapshot, and
// drives the simulation by calling Step()
// directly — it never reaches into kernel internals.
package main

import (
	"image"
	"image/color"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/stickysnack/ev-fleet-sim/internal/config"
	"github.com/stickysnack/ev-fleet-sim/internal/sim"
	"github.com/stickysnack/ev-fleet-sim/internal/snapshot"
)

func main() {
	cfg := config.Default()
	cfg.Horizon = config.ViewerHorizon
	s, err := sim.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title("ev-fleet-sim viewer"))
		if err := (&viewer{sim: s, stepsPerFrame: 1}).run(w); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

type viewer struct {
	sim           *sim.Simulator
	playing       bool
	stepsPerFrame int
	focusTag      int
}

func (v *viewer) run(w *app.Window) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			v.handleKeys(gtx)
			event.Op(gtx.Ops, &v.focusTag)
			if v.playing {
				for i := 0; i < v.stepsPerFrame; i++ {
					if !v.sim.Step() {
						v.playing = false
						break
					}
				}
			}
			v.layout(gtx)
			e.Frame(gtx.Ops)
			if v.playing {
				w.Invalidate()
			}
		}
	}
}

func (v *viewer) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(key.Filter{Focus: &v.focusTag})
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case key.NameSpace:
			v.playing = !v.playing
		case key.NameRightArrow:
			v.sim.Step()
		case "+":
			v.stepsPerFrame++
		case "-":
			if v.stepsPerFrame > 1 {
				v.stepsPerFrame--
			}
		}
	}
}

func (v *viewer) layout(gtx layout.Context) layout.Dimensions {
	paint.Fill(gtx.Ops, color.NRGBA{R: 20, G: 22, B: 26, A: 255})

	snap := snapshot.Of(v.sim)
	scaleX := float64(gtx.Constraints.Max.X) / v.sim.Park.Width
	scaleY := float64(gtx.Constraints.Max.Y) / v.sim.Park.Height

	for _, st := range v.sim.Park.Stations {
		drawDot(gtx.Ops, st.Pos.X*scaleX, st.Pos.Y*scaleY, 6, color.NRGBA{R: 80, G: 80, B: 200, A: 255})
	}
	for _, veh := range snap.Vehicles {
		drawDot(gtx.Ops, veh.X*scaleX, veh.Y*scaleY, 4, vehicleColor(veh.Status))
	}
	for _, r := range snap.Robots {
		drawDot(gtx.Ops, r.X*scaleX, r.Y*scaleY, 3, color.NRGBA{R: 250, G: 200, B: 40, A: 255})
	}

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func vehicleColor(status string) color.NRGBA {
	switch status {
	case "waiting":
		return color.NRGBA{R: 200, G: 80, B: 80, A: 255}
	case "assigned":
		return color.NRGBA{R: 220, G: 160, B: 60, A: 255}
	case "charging":
		return color.NRGBA{R: 80, G: 200, B: 120, A: 255}
	case "completed":
		return color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	default:
		return color.NRGBA{R: 150, G: 40, B: 40, A: 255}
	}
}

func drawDot(ops *op.Ops, x, y, r float64, c color.NRGBA) {
	rect := image.Rect(int(x-r), int(y-r), int(x+r), int(y+r))
	defer clip.Ellipse(rect).Push(ops).Pop()
	paint.ColorOp{Color: c}.Add(ops)
	paint.PaintOp{}.Add(ops)
}
