package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/boothium/internal/renderer/core"
	"github.com/dshills/boothium/internal/renderer/highlight"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.True(t, s.AutoIndent)
	assert.True(t, s.AutoCloseBrackets)
	assert.True(t, s.AutoCloseQuotes)
	assert.True(t, s.SyntaxHighlighting)
	assert.Equal(t, 4, s.TabWidth)
	assert.Equal(t, "info", s.LogLevel)
	assert.False(t, s.Autosave)
	assert.Empty(t, s.KeywordLanguages())
	assert.Empty(t, s.ColorScheme())

	c, err := s.FindHighlightColor()
	require.NoError(t, err)
	assert.Equal(t, core.ColorFromRGB(255, 215, 0), c)
}

func TestCanonicalKey(t *testing.T) {
	tests := map[string]string{
		"autoIndent":          KeyAutoIndent,
		"auto_indent":         KeyAutoIndent,
		"AUTO-INDENT":         KeyAutoIndent,
		"autoCloseBrckt":      KeyAutoCloseBrackets,
		"autoCloseQt":         KeyAutoCloseQuotes,
		"colors":              KeyColorScheme,
		"syntax_highlighting": KeySyntaxHighlighting,
		"Autosave":            KeyAutosave,
	}
	for in, want := range tests {
		got, ok := CanonicalKey(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := CanonicalKey("fontSize")
	assert.False(t, ok)
}

func TestFromMap_LegacyFile(t *testing.T) {
	// As read from BEditSettings.json.
	s, err := FromMap(map[string]any{
		"autoIndent":         false,
		"autoCloseBrckt":     false,
		"autoCloseQt":        true,
		"syntaxHighlighting": float64(1),
		"tabWidth":           float64(2),
		"Autosave":           true,
	})
	require.NoError(t, err)
	assert.False(t, s.AutoIndent)
	assert.False(t, s.AutoCloseBrackets)
	assert.True(t, s.AutoCloseQuotes)
	assert.True(t, s.SyntaxHighlighting)
	assert.Equal(t, 2, s.TabWidth)
	assert.True(t, s.Autosave)
}

func TestFromMap_Tables(t *testing.T) {
	s, err := FromMap(map[string]any{
		"keywords": map[string]any{
			"Python": []any{"def", " class ", ""},
			"c":      "int, return",
		},
		"colorScheme": map[string]any{
			"TokenType.KEYWORD": "#ff0000",
			"string":            "green",
		},
	})
	require.NoError(t, err)

	kw, ok := s.Keywords("python")
	require.True(t, ok)
	assert.Equal(t, []string{"def", "class"}, kw)

	kw, ok = s.Keywords("C")
	require.True(t, ok)
	assert.Equal(t, []string{"int", "return"}, kw)

	assert.Equal(t, []string{"c", "python"}, s.KeywordLanguages())
	assert.Equal(t, map[string]string{"keyword": "#ff0000", "string": "green"}, s.ColorScheme())

	cs, err := s.ParsedColorScheme()
	require.NoError(t, err)
	assert.Equal(t, core.ColorFromRGB(255, 0, 0), cs[highlight.TokenKeyword])
	assert.Equal(t, core.ColorGreen, cs[highlight.TokenString])
}

func TestFromMap_Errors(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
		want error
		key  string
	}{
		{"unknown key", map[string]any{"fontSize": 12}, ErrUnknownKey, "fontSize"},
		{"bool type", map[string]any{"autoIndent": "maybe"}, ErrTypeMismatch, "autoIndent"},
		{"int type", map[string]any{"tabWidth": 2.5}, ErrTypeMismatch, "tabWidth"},
		{"tab range", map[string]any{"tabWidth": int64(0)}, ErrOutOfRange, "tabWidth"},
		{"color", map[string]any{"findHighlight": "#12"}, ErrInvalidValue, "findHighlight"},
		{"level", map[string]any{"logLevel": "loud"}, ErrInvalidValue, "logLevel"},
		{"keywords shape", map[string]any{"keywords": []any{"def"}}, ErrTypeMismatch, "keywords"},
		{"keyword list", map[string]any{"keywords": map[string]any{"python": []any{1}}}, ErrTypeMismatch, "keywords.python"},
		{"token name", map[string]any{"colorScheme": map[string]any{"sparkle": "red"}}, ErrInvalidValue, "colorScheme.sparkle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromMap(tt.m)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.key, verr.Key)
			assert.True(t, s.Equal(Default()), "failed apply must not change settings")
		})
	}
}

func TestApply_ReportsEveryError(t *testing.T) {
	_, err := Default().Apply(map[string]any{
		"autoIndent": "maybe",
		"tabWidth":   int64(99),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestApply_MergesColors(t *testing.T) {
	s := Default().WithColor("keyword", "red")
	s, err := s.Apply(map[string]any{"colors": map[string]any{"comment": "gray"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"keyword": "red", "comment": "gray"}, s.ColorScheme())
}

func TestSettings_Immutable(t *testing.T) {
	a := Default().WithKeywords("python", []string{"def"})
	b := a.WithKeywords("python", []string{"class"})

	kw, _ := a.Keywords("python")
	assert.Equal(t, []string{"def"}, kw)
	kw[0] = "mutated"
	kw, _ = a.Keywords("python")
	assert.Equal(t, []string{"def"}, kw)

	kw, _ = b.Keywords("python")
	assert.Equal(t, []string{"class"}, kw)

	c := a.WithColor("keyword", "red")
	cs := c.ColorScheme()
	cs["keyword"] = "blue"
	assert.Equal(t, "red", c.ColorScheme()["keyword"])
	assert.Empty(t, a.ColorScheme())
}

func TestHighlightingChanged(t *testing.T) {
	base := Default()

	other := base
	other.AutoIndent = false
	assert.False(t, base.HighlightingChanged(other))
	assert.False(t, base.Equal(other))

	assert.True(t, base.HighlightingChanged(base.WithKeywords("python", []string{"def"})))
	assert.True(t, base.HighlightingChanged(base.WithColor("keyword", "red")))

	other = base
	other.SyntaxHighlighting = false
	assert.True(t, base.HighlightingChanged(other))

	assert.True(t, base.Equal(Default()))
}

func TestToMap_RoundTrip(t *testing.T) {
	s := Default().WithKeywords("go", []string{"func"}).WithColor("keyword", "#010203")
	s.TabWidth = 8
	s.Autosave = true

	back, err := FromMap(s.ToMap())
	require.NoError(t, err)
	assert.True(t, s.Equal(back))
}
