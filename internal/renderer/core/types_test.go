package core

import (
	"testing"
)

func TestColorDefault(t *testing.T) {
	c := ColorDefault
	if !c.IsDefault() {
		t.Error("ColorDefault should be default")
	}
	if c.String() != "default" {
		t.Errorf("String() = %q, want 'default'", c.String())
	}
}

func TestColorFromIndex(t *testing.T) {
	c := ColorFromIndex(42)

	if c.R != 42 {
		t.Errorf("expected index 42, got %d", c.R)
	}
	if !c.Indexed {
		t.Error("indexed color should have Indexed true")
	}
	if !c.Equals(ColorFromIndex(42)) {
		t.Error("equal indexed colors should compare equal")
	}
	if c.Equals(ColorFromRGB(42, 0, 0)) {
		t.Error("indexed and RGB colors should differ")
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false},
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
		{"#12345", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ColorFromHex(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ColorFromHex(%q) expected error", tt.hex)
				}
				return
			}
			if err != nil {
				t.Fatalf("ColorFromHex(%q) unexpected error: %v", tt.hex, err)
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b {
				t.Errorf("ColorFromHex(%q) = %v, want (%d,%d,%d)", tt.hex, c, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("White")
	if err != nil {
		t.Fatalf("ParseColor(White) error: %v", err)
	}
	if !c.Equals(ColorWhite) {
		t.Errorf("ParseColor(White) = %v, want white", c)
	}

	c, err = ParseColor(" #22283a ")
	if err != nil {
		t.Fatalf("ParseColor(hex) error: %v", err)
	}
	if c.String() != "#22283A" {
		t.Errorf("String() = %q, want #22283A", c.String())
	}

	if _, err := ParseColor("chartreuse-ish"); err == nil {
		t.Error("unknown color name should fail")
	}
}

func TestStyle(t *testing.T) {
	s := DefaultStyle()
	if !s.IsDefault() {
		t.Error("DefaultStyle should be default")
	}

	fg := ColorFromRGB(1, 2, 3)
	s2 := s.WithForeground(fg)
	if s2.IsDefault() {
		t.Error("style with foreground should not be default")
	}
	if !s2.Foreground.Equals(fg) {
		t.Errorf("Foreground = %v, want %v", s2.Foreground, fg)
	}
	if !s.IsDefault() {
		t.Error("WithForeground must not mutate the receiver")
	}

	s3 := s2.WithBackground(ColorYellow).Bold()
	if !s3.Attributes.Has(AttrBold) {
		t.Error("Bold() should set AttrBold")
	}
	if s3.Equals(s2) {
		t.Error("styles with different backgrounds should differ")
	}
}
