package view

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/boothium/internal/renderer/backend"
	"github.com/dshills/boothium/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders the bottom row: file information, a message, or an
// input prompt.
type StatusLine struct {
	filename string
	language string
	modified bool
	line     int // 1-indexed for display
	col      int // 1-indexed for display
	matches  string

	message     string
	messageType MessageType

	promptActive bool
	promptLabel  string
	promptText   string
}

// NewStatusLine creates an empty status line.
func NewStatusLine() *StatusLine {
	return &StatusLine{}
}

// SetFile updates the displayed file name and modified indicator.
func (s *StatusLine) SetFile(filename string, modified bool) {
	s.filename = filename
	s.modified = modified
}

// SetLanguage updates the displayed language.
func (s *StatusLine) SetLanguage(lang string) {
	s.language = lang
}

// SetPosition updates the cursor position from a 0-indexed line and column.
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line + 1
	s.col = col + 1
}

// SetMatches sets the find counter, e.g. "2/5". Empty hides it.
func (s *StatusLine) SetMatches(matches string) {
	s.matches = matches
}

// SetMessage displays a status message until ClearMessage.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// SetPrompt shows an input prompt with the text typed so far.
func (s *StatusLine) SetPrompt(label, text string) {
	s.promptActive = true
	s.promptLabel = label
	s.promptText = text
}

// ClearPrompt hides the prompt.
func (s *StatusLine) ClearPrompt() {
	s.promptActive = false
	s.promptLabel = ""
	s.promptText = ""
}

// Render draws the status line on row y, width cells wide. An active
// prompt takes the cursor.
func (s *StatusLine) Render(b backend.Backend, y, width int) {
	switch {
	case s.promptActive:
		s.renderPrompt(b, y, width)
	case s.message != "":
		s.renderMessage(b, y, width)
	default:
		s.renderStatusBar(b, y, width)
	}
}

func (s *StatusLine) renderStatusBar(b backend.Backend, y, width int) {
	barStyle := core.DefaultStyle().WithBackground(core.ColorGray).WithForeground(core.ColorWhite)
	fill(b, y, width, barStyle)

	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	if s.modified {
		name += " [+]"
	}
	left := " " + name
	if s.language != "" {
		left += "  " + s.language
	}

	right := "Ln " + strconv.Itoa(max(1, s.line)) + ", Col " + strconv.Itoa(max(1, s.col)) + " "
	if s.matches != "" {
		right = s.matches + "  " + right
	}

	end := drawString(b, 0, y, width, left, barStyle)
	if start := width - runewidth.StringWidth(right); start > end {
		drawString(b, start, y, width, right, barStyle)
	}
}

func (s *StatusLine) renderMessage(b backend.Backend, y, width int) {
	var style core.Style
	switch s.messageType {
	case MessageError:
		style = core.DefaultStyle().WithForeground(core.ColorRed).Bold()
	case MessageWarning:
		style = core.DefaultStyle().WithForeground(core.ColorYellow)
	default:
		style = core.DefaultStyle()
	}
	fill(b, y, width, style)
	drawString(b, 0, y, width, s.message, style)
}

func (s *StatusLine) renderPrompt(b backend.Backend, y, width int) {
	style := core.DefaultStyle()
	fill(b, y, width, style)
	x := drawString(b, 0, y, width, s.promptLabel+": ", style.Bold())
	x = drawString(b, x, y, width, s.promptText, style)
	b.ShowCursor(min(x, width-1), y)
}

func fill(b backend.Backend, y, width int, style core.Style) {
	for x := range width {
		b.SetCell(x, y, core.NewStyledCell(' ', style))
	}
}

// drawString draws str from column x, clipped at width, and returns the
// column after it.
func drawString(b backend.Backend, x, y, width int, str string, style core.Style) int {
	for _, r := range str {
		w := max(1, runewidth.RuneWidth(r))
		if x+w > width {
			break
		}
		b.SetCell(x, y, core.NewStyledCell(r, style))
		x += w
	}
	return x
}
