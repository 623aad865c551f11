package plot

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"qcircuit/v2/qhash"
)

// BlochView draws one Bloch vector per qubit inside a projected unit sphere.
// The sphere is viewed with +Z up and +X to the right; Y is depth.
type BlochView struct {
	Title      string
	Vectors    []qhash.Point3D
	AngleX     float64
	AngleY     float64
	AngleZ     float64
	AutoRotate bool
}

// NewBlochView returns an auto-rotating view of vectors.
func NewBlochView(title string, vectors []qhash.Point3D) *BlochView {
	return &BlochView{Title: title, Vectors: vectors, AutoRotate: true}
}

// sphere returns the projection centre and radii for a w x h screen. Terminal
// cells are about twice as tall as wide, hence rx = 2*ry.
func sphere(w, h int) (cx, cy, rx, ry int) {
	ry = (h - 4) / 2
	rx = 2 * ry
	if rx > (w-2)/2 {
		rx = (w - 2) / 2
		ry = rx / 2
	}
	return w / 2, 2 + (h-4)/2, rx, ry
}

func (v *BlochView) angles(frame int) (float64, float64, float64) {
	if !v.AutoRotate {
		return v.AngleX, v.AngleY, v.AngleZ
	}
	f := float64(frame)
	return v.AngleX + 0.008*f, v.AngleY + 0.012*f, v.AngleZ + 0.006*f
}

func (v *BlochView) Draw(s tcell.Screen, frame int) {
	w, h := s.Size()
	if w < 20 || h < 10 {
		drawText(s, 0, 0, tcell.StyleDefault, "terminal too small")
		return
	}

	drawText(s, 1, 0, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true), v.Title)
	drawText(s, 1, 1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
		"←/→:view A:auto Up/Down/[/]:rotate Q:quit")

	cx, cy, rx, ry := sphere(w, h)
	ax, ay, az := v.angles(frame)
	rim := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)

	for i := 0; i < 360; i += 3 {
		t := float64(i) * math.Pi / 180
		x := cx + int(math.Round(math.Cos(t)*float64(rx)))
		y := cy - int(math.Round(math.Sin(t)*float64(ry)))
		s.SetContent(x, y, '·', nil, rim)
	}

	for q, p := range v.Vectors {
		rot := p.Rotate(ax, ay, az)
		sx := cx + int(math.Round(rot.X*float64(rx)))
		sy := cy - int(math.Round(rot.Z*float64(ry)))

		depth := (rot.Y + 1) / 2
		style := tcell.StyleDefault.Foreground(depthColor(float64(q)/float64(max(len(v.Vectors), 1)), depth))
		drawLine(s, cx, cy, sx, sy, '.', style)
		s.SetContent(sx, sy, rune('0'+q%10), nil, style.Bold(true))
	}
	s.SetContent(cx, cy, '+', nil, rim)

	info := fmt.Sprintf("qubits: %d | frame: %d", len(v.Vectors), frame)
	drawText(s, 1, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), info)
}

// HandleKey adjusts the viewing angles.
func (v *BlochView) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		v.AngleX -= 0.15
	case tcell.KeyDown:
		v.AngleX += 0.15
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A', ' ':
			v.AutoRotate = !v.AutoRotate
		case '[':
			v.AngleZ -= 0.15
		case ']':
			v.AngleZ += 0.15
		case 'r':
			v.AngleX, v.AngleY, v.AngleZ = 0, 0, 0
		}
	}
}

// depthColor blends purple, orange and green along t and darkens far points.
func depthColor(t, depth float64) tcell.Color {
	t = math.Max(0, math.Min(1, t))
	depth = math.Max(0, math.Min(1, depth))

	r1, g1, b1 := 120.0, 80.0, 255.0
	r2, g2, b2 := 255.0, 150.0, 50.0
	r3, g3, b3 := 50.0, 255.0, 120.0

	var r, g, b float64
	if t < 0.5 {
		f := t * 2
		r, g, b = r1+f*(r2-r1), g1+f*(g2-g1), b1+f*(b2-b1)
	} else {
		f := (t - 0.5) * 2
		r, g, b = r2+f*(r3-r2), g2+f*(g3-g2), b2+f*(b3-b2)
	}

	k := 0.2 + 0.8*depth
	return tcell.NewRGBColor(int32(r*k), int32(g*k), int32(b*k))
}
