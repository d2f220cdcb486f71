package highlight

import (
	"errors"
	"fmt"
	"maps"

	"github.com/dshills/boothium/internal/renderer/core"
)

// ColorScheme maps token types to foreground colors.
// Types without an entry are painted with the default foreground.
type ColorScheme map[TokenType]core.Color

// DefaultColorScheme returns the built-in dark color scheme.
func DefaultColorScheme() ColorScheme {
	comment := core.ColorFromRGB(106, 153, 85)   // Green
	keyword := core.ColorFromRGB(86, 156, 214)   // Blue
	str := core.ColorFromRGB(206, 145, 120)      // Orange
	number := core.ColorFromRGB(181, 206, 168)   // Light green
	function := core.ColorFromRGB(220, 220, 170) // Yellow
	variable := core.ColorFromRGB(156, 220, 254) // Light blue
	operator := core.ColorFromRGB(212, 212, 212) // White
	meta := core.ColorFromRGB(197, 134, 192)     // Purple
	invalid := core.ColorFromRGB(244, 71, 71)    // Red

	return ColorScheme{
		TokenComment:            comment,
		TokenNumber:             number,
		TokenString:             str,
		TokenOperator:           operator,
		TokenDoubleCharOperator: operator,
		TokenDelimiter:          operator,
		TokenIdentifier:         variable,
		TokenKeyword:            keyword,
		TokenFunctionName:       function,
		TokenPreprocessor:       meta,
		TokenUnknown:            invalid,

		TokenTagName:        keyword,
		TokenAttributeName:  variable,
		TokenAttributeValue: str,
		TokenText:           operator,
	}
}

// ColorFor returns the color of t, or core.ColorDefault when the scheme
// has no entry for it.
func (cs ColorScheme) ColorFor(t TokenType) core.Color {
	if c, ok := cs[t]; ok {
		return c
	}
	return core.ColorDefault
}

// Merge returns a copy of cs with the entries of other added on top.
func (cs ColorScheme) Merge(other ColorScheme) ColorScheme {
	out := maps.Clone(cs)
	if out == nil {
		out = make(ColorScheme, len(other))
	}
	maps.Copy(out, other)
	return out
}

// ParseColorScheme parses a scheme keyed by token type name with hex or
// named color values, e.g. {"keyword": "#569CD6", "TokenType.COMMENT":
// "green"}. Every bad entry is reported.
func ParseColorScheme(m map[string]string) (ColorScheme, error) {
	cs := make(ColorScheme, len(m))
	var errs []error
	for name, value := range m {
		t, err := ParseTokenType(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		c, err := core.ParseColor(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("color for %s: %w", name, err))
			continue
		}
		cs[t] = c
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cs, nil
}
