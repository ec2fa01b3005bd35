// Package preview shows scanned content in the terminal with its ranges
// highlighted.
package preview

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/rangescan/pkg/scan"
)

// TabWidth is the number of columns a tab advances to.
const TabWidth = 4

// Theme holds the styles used to draw content.
type Theme struct {
	Text   tcell.Style
	Match  tcell.Style
	Status tcell.Style
}

// DefaultTheme highlights ranges in reverse video.
func DefaultTheme() Theme {
	return Theme{
		Text:   tcell.StyleDefault,
		Match:  tcell.StyleDefault.Reverse(true).Bold(true),
		Status: tcell.StyleDefault.Dim(true),
	}
}

// Preview draws content onto a tcell screen.
type Preview struct {
	mu     sync.Mutex
	screen tcell.Screen
	theme  Theme
}

// New creates a Preview drawing on screen with the default theme.
func New(screen tcell.Screen) *Preview {
	return &Preview{screen: screen, theme: DefaultTheme()}
}

// NewTerminal creates a Preview on the controlling terminal.
func NewTerminal() (*Preview, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return New(screen), nil
}

// SetTheme replaces the theme used by later draws.
func (p *Preview) SetTheme(theme Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = theme
}

// Draw clears the screen and draws content with ranges highlighted.
// Lines longer than the screen are cut off. When the screen has more than
// one row, the last row shows a status line.
// Ranges must be sorted and non-overlapping, as a Scanner returns them.
func (p *Preview) Draw(content string, ranges []scan.Range) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.screen.Clear()
	width, height := p.screen.Size()
	rows := height
	if height > 1 {
		rows--
		p.drawStatus(fmt.Sprintf("ranges: %d  q quits", len(ranges)), rows, width)
	}

	x, y, offset, next := 0, 0, 0, 0
	state := -1
	rest := content
	for len(rest) > 0 && y < rows {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		start := offset
		offset += len(cluster)

		switch cluster {
		case "\n", "\r\n":
			x, y = 0, y+1
			continue
		case "\t":
			x += TabWidth - x%TabWidth
			continue
		}

		w := boundaries >> uniseg.ShiftWidth
		if w == 0 || x+w > width {
			x += w
			continue
		}

		for next < len(ranges) && ranges[next].End <= start {
			next++
		}
		// A range may start or end inside a cluster.
		style := p.theme.Text
		if next < len(ranges) && ranges[next].Overlaps(scan.Range{Start: start, End: offset}) {
			style = p.theme.Match
		}

		runes := []rune(cluster)
		p.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
}

func (p *Preview) drawStatus(text string, row, width int) {
	x := 0
	state := -1
	for len(text) > 0 && x < width {
		var cluster string
		var boundaries int
		cluster, text, boundaries, state = uniseg.StepString(text, state)
		runes := []rune(cluster)
		p.screen.SetContent(x, row, runes[0], runes[1:], p.theme.Status)
		x += boundaries >> uniseg.ShiftWidth
	}
}

// Run initializes the screen, draws content and waits until the user
// presses q, Escape or Ctrl-C. The screen is redrawn on resize and
// restored before Run returns.
func (p *Preview) Run(content string, ranges []scan.Range) error {
	if err := p.screen.Init(); err != nil {
		return err
	}
	defer p.screen.Fini()

	p.screen.HideCursor()
	p.Draw(content, ranges)
	p.screen.Show()

	for {
		switch ev := p.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			p.screen.Sync()
			p.Draw(content, ranges)
			p.screen.Show()
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
