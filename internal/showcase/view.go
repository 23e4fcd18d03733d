package showcase

import (
	"github.com/aretw0/ludus/pkg/ui"
	"github.com/gdamore/tcell/v2"
)

const helpLine = "space: menu/game  r: resume  c: count  v: queue count  q: quit"

// View draws the demo on a tcell screen.
type View struct {
	renderer *ui.Renderer
	status   tcell.Style
}

// NewView returns a view with the default renderer.
func NewView() *View {
	return &View{
		renderer: ui.NewRenderer(),
		status:   tcell.StyleDefault.Reverse(true),
	}
}

// Draw clears s, renders the panels of m and its status footer, and shows s.
func (v *View) Draw(s tcell.Screen, m *Manager) {
	s.Clear()
	v.renderer.Draw(s, m.UI.Panels())

	_, h := s.Size()
	if h < 2 {
		s.Show()
		return
	}
	ui.DrawText(s, 0, h-2, m.Status(), v.status)
	ui.DrawText(s, 0, h-1, helpLine, tcell.StyleDefault)
	s.Show()
}
