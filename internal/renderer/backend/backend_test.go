package backend

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/boothium/internal/renderer/core"
)

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorRed))
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got != core.EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(10, 2)
	b.SetCell(1, 1, core.NewStyledCell('X', core.DefaultStyle()))

	b.Clear()

	if got := b.GetCell(1, 1); got != core.EmptyCell() {
		t.Error("clear should reset all cells")
	}
	if got := b.Row(1); got != "          " {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.ShowCursor(15, 10)
	x, y, visible := b.CursorPosition()
	if x != 15 || y != 10 || !visible {
		t.Errorf("cursor position: expected (15, 10, true), got (%d, %d, %v)", x, y, visible)
	}

	b.HideCursor()
	if _, _, visible = b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Resize(100, 40)

	if w, h := b.Size(); w != 100 || h != 40 {
		t.Errorf("expected size (100, 40), got (%d, %d)", w, h)
	}
	got := b.PollEvent()
	if got.Type != EventResize || got.Width != 100 || got.Height != 40 {
		t.Errorf("expected resize event, got %+v", got)
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)

	b.PostEvent(Event{Type: EventKey, Key: KeyEnter})
	if got := b.PollEvent(); got.Type != EventKey || got.Key != KeyEnter {
		t.Errorf("expected enter key event, got %+v", got)
	}

	b.Shutdown()
	if got := b.PollEvent(); got.Type != EventClosed {
		t.Errorf("expected closed event, got %+v", got)
	}
}

func TestNullBackendFullQueue(t *testing.T) {
	b := NewNullBackend(80, 24)
	for i := range b.QueueCapacity() {
		if err := b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'}); err != nil {
			t.Fatalf("PostEvent %d: %v", i, err)
		}
	}
	if err := b.PostEvent(Event{Type: EventInterrupt}); !errors.Is(err, ErrEventDropped) {
		t.Errorf("PostEvent on a full queue = %v, want ErrEventDropped", err)
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl

	if !mod.Has(ModShift) {
		t.Error("should have shift")
	}
	if !mod.Has(ModCtrl) {
		t.Error("should have ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("should not have alt")
	}
}

func newSimulatedTerminal(t *testing.T) *Terminal {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	screen.SetSize(20, 4)
	t.Cleanup(term.Shutdown)
	return term
}

func TestTerminalCells(t *testing.T) {
	term := newSimulatedTerminal(t)

	if w, h := term.Size(); w != 20 || h != 4 {
		t.Errorf("Size() = %d, %d", w, h)
	}

	style := core.Style{
		Foreground: core.ColorFromRGB(86, 156, 214),
		Background: core.ColorDefault,
		Attributes: core.AttrBold,
	}
	term.SetCell(2, 1, core.NewStyledCell('k', style))
	term.Show()

	got := term.GetCell(2, 1)
	if got.Rune != 'k' {
		t.Errorf("rune = %q, want k", got.Rune)
	}
	if !got.Style.Equals(style) {
		t.Errorf("style = %+v, want %+v", got.Style, style)
	}
}

func TestTerminalEvents(t *testing.T) {
	term := newSimulatedTerminal(t)

	term.PostEvent(Event{Type: EventInterrupt, Data: "reload"})
	if got := term.PollEvent(); got.Type != EventInterrupt || got.Data != "reload" {
		t.Errorf("expected interrupt event, got %+v", got)
	}

	term.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'x'})
	if got := term.PollEvent(); got.Type != EventKey || got.Key != KeyRune || got.Rune != 'x' {
		t.Errorf("expected rune event, got %+v", got)
	}

	if err := term.PostEvent(Event{Type: EventResize}); !errors.Is(err, ErrEventDropped) {
		t.Errorf("posting a resize = %v, want ErrEventDropped", err)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyBackspace, KeyBackspace},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyCtrlF, KeyCtrlF},
		{tcell.KeyCtrlO, KeyCtrlO},
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyF5, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := convertToTcellKey(KeyBackspace); got != tcell.KeyBackspace2 {
		t.Errorf("convertToTcellKey(KeyBackspace) = %v", got)
	}
	if got := convertToTcellKey(KeyCtrlS); got != tcell.KeyCtrlS {
		t.Errorf("convertToTcellKey(KeyCtrlS) = %v", got)
	}
}
