package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Renderer draws panels on a tcell screen.
// Each visible panel is a bordered box centred on screen, titled with the
// panel name, its text tinted by the panel alpha.
type Renderer struct {
	Foreground tcell.Color
	Background tcell.Color
}

// NewRenderer returns a white-on-black renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		Foreground: tcell.NewRGBColor(255, 255, 255),
		Background: tcell.NewRGBColor(0, 0, 0),
	}
}

// Draw renders the visible panels in order; later panels cover earlier ones.
// It does not clear or show the screen.
func (r *Renderer) Draw(s tcell.Screen, panels []*Panel) {
	for _, p := range panels {
		if !p.Visible() {
			continue
		}
		r.drawPanel(s, p)
	}
}

func (r *Renderer) drawPanel(s tcell.Screen, p *Panel) {
	sw, sh := s.Size()
	text := p.Text()
	title := " " + p.Name() + " "

	w := max(runewidth.StringWidth(text), runewidth.StringWidth(title)) + 4
	h := 3
	x0 := max((sw-w)/2, 0)
	y0 := max((sh-h)/2, 0)

	fg := Blend(r.Background, r.Foreground, p.Alpha())
	style := tcell.StyleDefault.Foreground(fg).Background(r.Background)

	for x := x0; x < x0+w; x++ {
		s.SetContent(x, y0, tcell.RuneHLine, nil, style)
		s.SetContent(x, y0+h-1, tcell.RuneHLine, nil, style)
		s.SetContent(x, y0+1, ' ', nil, style)
	}
	s.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	s.SetContent(x0+w-1, y0, tcell.RuneURCorner, nil, style)
	s.SetContent(x0, y0+h-1, tcell.RuneLLCorner, nil, style)
	s.SetContent(x0+w-1, y0+h-1, tcell.RuneLRCorner, nil, style)
	s.SetContent(x0, y0+1, tcell.RuneVLine, nil, style)
	s.SetContent(x0+w-1, y0+1, tcell.RuneVLine, nil, style)

	DrawText(s, x0+2, y0, title, style)
	DrawText(s, x0+(w-runewidth.StringWidth(text))/2, y0+1, text, style)
}

// DrawText writes text starting at (x, y), clipped to the screen width.
func DrawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	sw, _ := s.Size()
	for _, ch := range text {
		if x >= sw {
			return
		}
		s.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}

// Blend mixes from and to by alpha in [0, 1].
func Blend(from, to tcell.Color, alpha float64) tcell.Color {
	alpha = min(max(alpha, 0), 1)
	fr, fg, fb := from.RGB()
	tr, tg, tb := to.RGB()
	mix := func(a, b int32) int32 {
		return a + int32(float64(b-a)*alpha+0.5)
	}
	return tcell.NewRGBColor(mix(fr, tr), mix(fg, tg), mix(fb, tb))
}
