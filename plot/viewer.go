package plot

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"qcircuit/v2/analysis"
)

// FrameInterval is the redraw period of the viewer.
const FrameInterval = 40 * time.Millisecond

// View is anything the viewer can page through.
type View interface {
	Draw(s tcell.Screen, frame int)
}

// KeyHandler is implemented by views that react to keys the viewer does not use.
type KeyHandler interface {
	HandleKey(ev *tcell.EventKey)
}

// Show opens the terminal and runs the viewer until the user quits.
func Show(views ...View) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "screen init failed")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "screen start failed")
	}
	defer s.Fini()
	return Run(s, views)
}

// Run drives an initialised screen: ←/→ page through views, q, Esc or Ctrl-C
// quit. Other keys go to the current view if it is a KeyHandler.
func Run(s tcell.Screen, views []View) error {
	if len(views) == 0 {
		return errors.New("nothing to show")
	}

	events := make(chan tcell.Event)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	current, frame := 0, 0
	render := func() {
		s.Clear()
		views[current].Draw(s, frame)
		drawText(s, 0, 0, tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
			fmt.Sprintf("%d/%d", current+1, len(views)))
		s.Show()
	}
	render()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return nil
				case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
					return nil
				case ev.Key() == tcell.KeyRight:
					current = (current + 1) % len(views)
				case ev.Key() == tcell.KeyLeft:
					current = (current + len(views) - 1) % len(views)
				default:
					if kh, ok := views[current].(KeyHandler); ok {
						kh.HandleKey(ev)
					}
				}
				render()
			case *tcell.EventResize:
				s.Sync()
				render()
			}
		case <-ticker.C:
			frame++
			render()
		}
	}
}

// EntropyChart plots the Shannon entropy of every output byte position.
func EntropyChart(per []float64) Chart {
	xs := make([]float64, len(per))
	for i := range xs {
		xs[i] = float64(i)
	}
	return Chart{
		Title:  "Shannon Entropy per Output Byte",
		XLabel: "Byte Index",
		YLabel: "bits",
		Series: []Series{{Label: "entropy", Marker: 'o', Color: tcell.ColorAqua, X: xs, Y: per}},
	}
}

// ComplexityCharts plots qubits and depth, u3 and cx counts, and run time
// against N.
func ComplexityCharts(points []analysis.ComplexityPoint) []Chart {
	ns := make([]float64, len(points))
	qubits := make([]float64, len(points))
	depths := make([]float64, len(points))
	u3 := make([]float64, len(points))
	cx := make([]float64, len(points))
	times := make([]float64, len(points))
	for i, p := range points {
		ns[i] = float64(p.Qubits)
		times[i] = p.Elapsed.Seconds()
		if p.Info == nil {
			continue
		}
		qubits[i] = float64(p.Info.Qubits)
		depths[i] = float64(p.Info.Depth)
		u3[i] = float64(p.Info.GateCount["u3"])
		cx[i] = float64(p.Info.GateCount["cx"])
	}

	return []Chart{
		{
			Title:  "Qubits and Depth vs N",
			XLabel: "N",
			YLabel: "Value",
			Series: []Series{
				{Label: "Qubits", Marker: 'o', Color: tcell.ColorAqua, X: ns, Y: qubits},
				{Label: "Depth", Marker: '■', Color: tcell.ColorOrange, X: ns, Y: depths},
			},
		},
		{
			Title:  "u3 and cx Gate Counts vs N",
			XLabel: "N",
			YLabel: "Count",
			Series: []Series{
				{Label: "u3 Count", Marker: '^', Color: tcell.ColorGreen, X: ns, Y: u3},
				{Label: "cx Count", Marker: 'x', Color: tcell.ColorRed, X: ns, Y: cx},
			},
		},
		{
			Title:  "N vs Time",
			XLabel: "N",
			YLabel: "time (s)",
			Series: []Series{
				{Label: "time to run", Marker: '^', Color: tcell.ColorYellow, X: ns, Y: times},
			},
		},
	}
}

// DifficultyChart plots hash time against N.
func DifficultyChart(timings []analysis.Timing) Chart {
	ns := make([]float64, len(timings))
	secs := make([]float64, len(timings))
	for i, t := range timings {
		ns[i] = float64(t.Qubits)
		secs[i] = t.Elapsed.Seconds()
	}
	return Chart{
		Title:  "Computational Difficulty",
		XLabel: "N",
		YLabel: "time (s)",
		Series: []Series{{Label: "time per hash", Marker: '^', Color: tcell.ColorYellow, X: ns, Y: secs}},
	}
}

// ChartViews adapts charts to views.
func ChartViews(charts ...Chart) []View {
	views := make([]View, len(charts))
	for i, c := range charts {
		views[i] = c
	}
	return views
}
