package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/frontctl/internal/layout"
	"github.com/dshills/frontctl/internal/node"
)

// Draw renders every labelled element on its bounds' first row, the
// focused one reversed. Labels are clipped to the element width in
// display cells; a wide character that would straddle the edge is dropped.
func (a *App) Draw() {
	if a.screen == nil {
		return
	}
	a.screen.Clear()
	a.drawElement(a.root, a.terminal.Focused())
	a.screen.Show()
}

func (a *App) drawElement(el, focused *node.Element) {
	b := el.Bounds()
	if label, ok := el.Attribute(layout.AttrLabel); ok && !b.Empty() {
		style := tcell.StyleDefault
		if el == focused {
			style = style.Reverse(true)
		}
		x := b.Left
		gr := uniseg.NewGraphemes(label)
		for gr.Next() {
			w := gr.Width()
			if w == 0 {
				continue
			}
			if x+w > b.Right {
				break
			}
			runes := gr.Runes()
			a.screen.SetContent(x, b.Top, runes[0], runes[1:], style)
			x += w
		}
	}

	for _, child := range el.Children() {
		a.drawElement(child, focused)
	}
}
