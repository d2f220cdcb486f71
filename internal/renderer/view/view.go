// Package view draws a document onto a backend: a line-number gutter,
// the styled text scrolled to a given line, and a status line.
package view

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/boothium/internal/engine/buffer"
	"github.com/dshills/boothium/internal/renderer/backend"
	"github.com/dshills/boothium/internal/renderer/core"
)

// Document is the part of the buffer a view reads.
type Document interface {
	Lines() []buffer.Range
	Slice(r buffer.Range) (string, error)
	Styles(r buffer.Range) ([]core.Style, error)
}

// Gutter colors.
var (
	GutterForeground = core.ColorFromRGB(102, 102, 102)
	GutterBackground = core.ColorFromRGB(20, 32, 51)
)

// View is a rectangular text area with a gutter.
type View struct {
	x, y          int
	width, height int
	gutterStyle   core.Style
}

// New creates a view covering the given rectangle.
func New(x, y, width, height int) *View {
	return &View{
		x:           x,
		y:           y,
		width:       width,
		height:      height,
		gutterStyle: core.NewStyle(GutterForeground).WithBackground(GutterBackground),
	}
}

// SetBounds moves and resizes the view.
func (v *View) SetBounds(x, y, width, height int) {
	v.x, v.y, v.width, v.height = x, y, width, height
}

// Height returns the number of text rows.
func (v *View) Height() int {
	return v.height
}

// GutterWidth returns the gutter width for a document of lineCount lines:
// the label "~ N " right aligned, with room for the widest number.
func GutterWidth(lineCount int) int {
	return len(strconv.Itoa(max(1, lineCount))) + 3
}

// GutterLabel returns the label of the 0-based line, right aligned in
// width cells.
func GutterLabel(line, width int) string {
	label := "~ " + strconv.Itoa(line+1) + " "
	if pad := width - len(label); pad > 0 {
		label = strings.Repeat(" ", pad) + label
	}
	return label
}

// Draw paints the lines of doc starting at line top, and places the
// cursor when the cursor line is visible. Text wider than the view is
// clipped.
func (v *View) Draw(b backend.Backend, doc Document, top int, cur buffer.Point, tabWidth int) {
	lines := doc.Lines()
	gw := GutterWidth(len(lines))
	tabWidth = max(1, tabWidth)

	cursorX, cursorY := -1, -1
	for row := range v.height {
		y := v.y + row
		line := top + row
		v.clearRow(b, y)
		if line < 0 || line >= len(lines) {
			continue
		}

		col := v.x
		for _, r := range GutterLabel(line, gw) {
			if col < v.x+v.width {
				b.SetCell(col, y, core.NewStyledCell(r, v.gutterStyle))
			}
			col++
		}

		x := v.drawText(b, doc, lines[line], v.x+gw, y, tabWidth, line == cur.Line, cur.Column)
		if line == cur.Line {
			cursorX, cursorY = x, y
		}
	}

	if cursorY >= 0 && cursorX < v.x+v.width {
		b.ShowCursor(cursorX, cursorY)
	} else {
		b.HideCursor()
	}
}

func (v *View) clearRow(b backend.Backend, y int) {
	for x := v.x; x < v.x+v.width; x++ {
		b.SetCell(x, y, core.EmptyCell())
	}
}

// drawText paints one line from screen column x and returns the screen
// column of the code point at column, or of the line end.
func (v *View) drawText(b backend.Backend, doc Document, r buffer.Range, x, y, tabWidth int, hasCursor bool, column int) int {
	text, err := doc.Slice(r)
	if err != nil {
		return x
	}
	styles, err := doc.Styles(r)
	if err != nil {
		styles = nil
	}

	right := v.x + v.width
	cursorX := -1
	col := 0
	for i, ch := range []rune(text) {
		if hasCursor && i == column {
			cursorX = x + col
		}
		style := core.DefaultStyle()
		if i < len(styles) {
			style = styles[i]
		}

		if ch == '\t' {
			n := tabWidth - col%tabWidth
			for range n {
				if x+col < right {
					b.SetCell(x+col, y, core.NewStyledCell(' ', style))
				}
				col++
			}
			continue
		}

		w := max(1, runewidth.RuneWidth(ch))
		if x+col+w <= right {
			b.SetCell(x+col, y, core.NewStyledCell(ch, style))
		}
		col += w
	}
	if cursorX < 0 {
		cursorX = x + col
	}
	return cursorX
}
