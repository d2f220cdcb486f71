package highlight

import (
	"testing"

	"github.com/dshills/boothium/internal/renderer/core"
)

func TestDefaultColorScheme(t *testing.T) {
	cs := DefaultColorScheme()

	if cs.ColorFor(TokenKeyword).IsDefault() {
		t.Error("keywords should have a color")
	}
	if !cs.ColorFor(TokenWhitespace).IsDefault() {
		t.Error("whitespace should use the default foreground")
	}
}

func TestParseColorScheme(t *testing.T) {
	cs, err := ParseColorScheme(map[string]string{
		"TokenType.COMMENT": "#00FF00",
		"keyword":           "blue",
	})
	if err != nil {
		t.Fatalf("ParseColorScheme failed: %v", err)
	}
	if !cs.ColorFor(TokenComment).Equals(core.ColorGreen) {
		t.Errorf("comment = %v, want green", cs.ColorFor(TokenComment))
	}
	if !cs.ColorFor(TokenKeyword).Equals(core.ColorBlue) {
		t.Errorf("keyword = %v, want blue", cs.ColorFor(TokenKeyword))
	}
	if !cs.ColorFor(TokenString).IsDefault() {
		t.Error("missing entries fall back to the default foreground")
	}
}

func TestParseColorSchemeErrors(t *testing.T) {
	tests := []map[string]string{
		{"glitter": "#FFFFFF"},
		{"comment": "not-a-color"},
	}
	for _, m := range tests {
		if _, err := ParseColorScheme(m); err == nil {
			t.Errorf("ParseColorScheme(%v) expected error", m)
		}
	}
}

func TestColorSchemeMerge(t *testing.T) {
	base := DefaultColorScheme()
	merged := base.Merge(ColorScheme{TokenKeyword: core.ColorRed})

	if !merged.ColorFor(TokenKeyword).Equals(core.ColorRed) {
		t.Error("override should win")
	}
	if !merged.ColorFor(TokenComment).Equals(base.ColorFor(TokenComment)) {
		t.Error("base entries should be kept")
	}
	if base.ColorFor(TokenKeyword).Equals(core.ColorRed) {
		t.Error("Merge must not modify the receiver")
	}

	var empty ColorScheme
	if got := empty.Merge(ColorScheme{TokenText: core.ColorRed}); len(got) != 1 {
		t.Errorf("merge into nil scheme = %v", got)
	}
}
