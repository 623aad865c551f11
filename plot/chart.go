// Package plot draws line charts and Bloch vectors on a terminal screen.
package plot

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Series is one labelled line of a chart.
type Series struct {
	Label  string
	Marker rune
	Color  tcell.Color
	X, Y   []float64
}

// Chart is a titled set of series sharing axes.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series
}

const (
	leftMargin   = 10
	topMargin    = 3
	bottomMargin = 3
)

// plotArea returns the inclusive cell rectangle that data points map into.
func plotArea(w, h int) (x0, y0, x1, y1 int) {
	return leftMargin, topMargin, w - 2, h - 1 - bottomMargin
}

type bounds struct {
	xmin, xmax, ymin, ymax float64
}

func (c Chart) bounds() bounds {
	b := bounds{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
	for _, s := range c.Series {
		for i := 0; i < len(s.X) && i < len(s.Y); i++ {
			b.xmin = math.Min(b.xmin, s.X[i])
			b.xmax = math.Max(b.xmax, s.X[i])
			b.ymin = math.Min(b.ymin, s.Y[i])
			b.ymax = math.Max(b.ymax, s.Y[i])
		}
	}
	if math.IsInf(b.xmin, 1) {
		return bounds{0, 1, 0, 1}
	}
	if b.xmax == b.xmin {
		b.xmin, b.xmax = b.xmin-0.5, b.xmax+0.5
	}
	if b.ymax == b.ymin {
		b.ymin, b.ymax = b.ymin-0.5, b.ymax+0.5
	}
	return b
}

// project maps a data point to a screen cell inside the plot area.
func (b bounds) project(x, y float64, x0, y0, x1, y1 int) (int, int) {
	fx := (x - b.xmin) / (b.xmax - b.xmin)
	fy := (y - b.ymin) / (b.ymax - b.ymin)
	sx := x0 + int(math.Round(fx*float64(x1-x0)))
	sy := y1 - int(math.Round(fy*float64(y1-y0)))
	return sx, sy
}

// Draw renders the chart over the whole screen. It does not call Show.
func (c Chart) Draw(s tcell.Screen, _ int) {
	w, h := s.Size()
	if w < leftMargin+8 || h < topMargin+bottomMargin+4 {
		drawText(s, 0, 0, tcell.StyleDefault, "terminal too small")
		return
	}

	title := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	axis := tcell.StyleDefault.Foreground(tcell.ColorGray)
	x0, y0, x1, y1 := plotArea(w, h)
	b := c.bounds()

	drawText(s, (w-len(c.Title))/2, 0, title, c.Title)
	c.drawLegend(s, 1)

	for y := y0; y <= y1; y++ {
		s.SetContent(x0-1, y, '│', nil, axis)
	}
	for x := x0; x <= x1; x++ {
		s.SetContent(x, y1+1, '─', nil, axis)
	}
	s.SetContent(x0-1, y1+1, '└', nil, axis)

	drawText(s, 0, y0, axis, fmt.Sprintf("%8.2f", b.ymax))
	drawText(s, 0, y1, axis, fmt.Sprintf("%8.2f", b.ymin))
	drawText(s, 0, (y0+y1)/2, axis, truncate(c.YLabel, leftMargin-2))
	lo := fmt.Sprintf("%.2f", b.xmin)
	hi := fmt.Sprintf("%.2f", b.xmax)
	drawText(s, x0, y1+2, axis, lo)
	drawText(s, x1-len(hi)+1, y1+2, axis, hi)
	drawText(s, (x0+x1-len(c.XLabel))/2, y1+2, axis, c.XLabel)

	for _, series := range c.Series {
		style := tcell.StyleDefault.Foreground(series.Color)
		n := min(len(series.X), len(series.Y))
		for i := 1; i < n; i++ {
			ax, ay := b.project(series.X[i-1], series.Y[i-1], x0, y0, x1, y1)
			bx, by := b.project(series.X[i], series.Y[i], x0, y0, x1, y1)
			drawLine(s, ax, ay, bx, by, '·', style)
		}
		for i := 0; i < n; i++ {
			px, py := b.project(series.X[i], series.Y[i], x0, y0, x1, y1)
			s.SetContent(px, py, series.marker(), nil, style)
		}
	}
}

func (c Chart) drawLegend(s tcell.Screen, y int) {
	x := leftMargin
	for _, series := range c.Series {
		style := tcell.StyleDefault.Foreground(series.Color)
		s.SetContent(x, y, series.marker(), nil, style)
		drawText(s, x+2, y, tcell.StyleDefault, series.Label)
		x += len(series.Label) + 5
	}
}

func (s Series) marker() rune {
	if s.Marker == 0 {
		return '●'
	}
	return s.Marker
}

// drawLine steps from (ax, ay) to (bx, by) without overwriting the endpoints.
func drawLine(s tcell.Screen, ax, ay, bx, by int, r rune, style tcell.Style) {
	steps := max(abs(bx-ax), abs(by-ay))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		x := ax + int(math.Round(t*float64(bx-ax)))
		y := ay + int(math.Round(t*float64(by-ay)))
		s.SetContent(x, y, r, nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
