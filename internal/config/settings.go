package config

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/dshills/boothium/internal/renderer/core"
	"github.com/dshills/boothium/internal/renderer/highlight"
)

// Setting keys, as written in settings files.
const (
	KeyAutoIndent         = "autoIndent"
	KeyAutoCloseBrackets  = "autoCloseBrackets"
	KeyAutoCloseQuotes    = "autoCloseQuotes"
	KeySyntaxHighlighting = "syntaxHighlighting"
	KeyTabWidth           = "tabWidth"
	KeyKeywords           = "keywords"
	KeyColorScheme        = "colorScheme"
	KeyFindHighlight      = "findHighlight"
	KeyLogLevel           = "logLevel"
	KeyAutosave           = "autosave"
)

// Tab width bounds.
const (
	MinTabWidth = 1
	MaxTabWidth = 16
)

type kind uint8

const (
	kindBool kind = iota
	kindInt
	kindColor
	kindLevel
	kindWordTable
	kindColorTable
)

var keyKinds = map[string]kind{
	KeyAutoIndent:         kindBool,
	KeyAutoCloseBrackets:  kindBool,
	KeyAutoCloseQuotes:    kindBool,
	KeySyntaxHighlighting: kindBool,
	KeyTabWidth:           kindInt,
	KeyKeywords:           kindWordTable,
	KeyColorScheme:        kindColorTable,
	KeyFindHighlight:      kindColor,
	KeyLogLevel:           kindLevel,
	KeyAutosave:           kindBool,
}

// keyIndex maps normalized spellings to keys. The legacy settings file
// used abbreviated names.
var keyIndex = func() map[string]string {
	idx := map[string]string{
		"autoclosebrckt": KeyAutoCloseBrackets,
		"autocloseqt":    KeyAutoCloseQuotes,
		"colors":         KeyColorScheme,
	}
	for k := range keyKinds {
		idx[normalizeKey(k)] = k
	}
	return idx
}()

func normalizeKey(k string) string {
	k = strings.ToLower(k)
	return strings.NewReplacer("_", "", "-", "").Replace(k)
}

// CanonicalKey resolves any accepted spelling of a top-level key, such as
// "autoCloseBrckt" or "auto_indent".
func CanonicalKey(k string) (string, bool) {
	key, ok := keyIndex[normalizeKey(k)]
	return key, ok
}

// Keys returns the setting keys in sorted order.
func Keys() []string {
	return slices.Sorted(maps.Keys(keyKinds))
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Settings is an immutable snapshot of the editor settings. The zero value
// has every feature turned off; use Default for the defaults.
type Settings struct {
	AutoIndent         bool
	AutoCloseBrackets  bool
	AutoCloseQuotes    bool
	SyntaxHighlighting bool
	TabWidth           int
	FindHighlight      string
	LogLevel           string

	// Autosave writes the file after every edit that changes it.
	Autosave bool

	keywords map[string][]string
	colors   map[string]string
}

// Default returns the default settings: every feature on except
// autosave.
func Default() Settings {
	return Settings{
		AutoIndent:         true,
		AutoCloseBrackets:  true,
		AutoCloseQuotes:    true,
		SyntaxHighlighting: true,
		TabWidth:           4,
		FindHighlight:      "#ffd700",
		LogLevel:           "info",
	}
}

// Keywords returns a copy of the keyword override for the language tag.
func (s Settings) Keywords(lang string) ([]string, bool) {
	words, ok := s.keywords[strings.ToLower(lang)]
	return slices.Clone(words), ok
}

// KeywordLanguages returns the language tags with a keyword override.
func (s Settings) KeywordLanguages() []string {
	return slices.Sorted(maps.Keys(s.keywords))
}

// ColorScheme returns a copy of the color overrides keyed by token type
// name.
func (s Settings) ColorScheme() map[string]string {
	return maps.Clone(s.colors)
}

// WithKeywords returns a copy of s with the keyword override of lang set.
func (s Settings) WithKeywords(lang string, words []string) Settings {
	s.keywords = maps.Clone(s.keywords)
	if s.keywords == nil {
		s.keywords = make(map[string][]string)
	}
	s.keywords[strings.ToLower(lang)] = slices.Clone(words)
	return s
}

// WithColor returns a copy of s with the color of a token type set. The
// token name is not checked; see Apply.
func (s Settings) WithColor(token, color string) Settings {
	s.colors = maps.Clone(s.colors)
	if s.colors == nil {
		s.colors = make(map[string]string)
	}
	s.colors[token] = color
	return s
}

// Equal reports whether s and o hold the same settings.
func (s Settings) Equal(o Settings) bool {
	return s.AutoIndent == o.AutoIndent &&
		s.AutoCloseBrackets == o.AutoCloseBrackets &&
		s.AutoCloseQuotes == o.AutoCloseQuotes &&
		s.TabWidth == o.TabWidth &&
		s.LogLevel == o.LogLevel &&
		s.Autosave == o.Autosave &&
		!s.HighlightingChanged(o)
}

// HighlightingChanged reports whether o differs from s in anything that
// needs the rule set or the colors repainted.
func (s Settings) HighlightingChanged(o Settings) bool {
	return s.SyntaxHighlighting != o.SyntaxHighlighting ||
		s.FindHighlight != o.FindHighlight ||
		!maps.Equal(s.colors, o.colors) ||
		!maps.EqualFunc(s.keywords, o.keywords, slices.Equal[[]string])
}

// ParsedColorScheme resolves the color overrides.
func (s Settings) ParsedColorScheme() (highlight.ColorScheme, error) {
	return highlight.ParseColorScheme(s.colors)
}

// FindHighlightColor resolves the find highlight color.
func (s Settings) FindHighlightColor() (core.Color, error) {
	return core.ParseColor(s.FindHighlight)
}

// ToMap renders the settings as a map with canonical keys.
func (s Settings) ToMap() map[string]any {
	m := map[string]any{
		KeyAutoIndent:         s.AutoIndent,
		KeyAutoCloseBrackets:  s.AutoCloseBrackets,
		KeyAutoCloseQuotes:    s.AutoCloseQuotes,
		KeySyntaxHighlighting: s.SyntaxHighlighting,
		KeyTabWidth:           s.TabWidth,
		KeyFindHighlight:      s.FindHighlight,
		KeyLogLevel:           s.LogLevel,
		KeyAutosave:           s.Autosave,
	}
	if len(s.keywords) > 0 {
		kw := make(map[string]any, len(s.keywords))
		for lang, words := range s.keywords {
			list := make([]any, len(words))
			for i, w := range words {
				list[i] = w
			}
			kw[lang] = list
		}
		m[KeyKeywords] = kw
	}
	if len(s.colors) > 0 {
		cs := make(map[string]any, len(s.colors))
		for tok, c := range s.colors {
			cs[tok] = c
		}
		m[KeyColorScheme] = cs
	}
	return m
}

// FromMap builds settings from the defaults and a loaded settings map.
func FromMap(m map[string]any) (Settings, error) {
	return Default().Apply(m)
}

// Apply returns a copy of s with the values of m applied on top. Keyword
// lists replace the list of their language; color entries are added to the
// scheme. Every invalid entry is reported; on error s is returned
// unchanged.
func (s Settings) Apply(m map[string]any) (Settings, error) {
	out := s
	out.keywords = maps.Clone(s.keywords)
	out.colors = maps.Clone(s.colors)

	var errs []error
	for _, raw := range slices.Sorted(maps.Keys(m)) {
		key, ok := CanonicalKey(raw)
		if !ok {
			errs = append(errs, &ValidationError{Key: raw, Value: m[raw], Err: ErrUnknownKey})
			continue
		}
		if err := out.set(key, m[raw]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return s, errors.Join(errs...)
	}
	return out, nil
}

func (s *Settings) set(key string, v any) error {
	switch keyKinds[key] {
	case kindBool:
		b, err := toBool(key, v)
		if err != nil {
			return err
		}
		switch key {
		case KeyAutoIndent:
			s.AutoIndent = b
		case KeyAutoCloseBrackets:
			s.AutoCloseBrackets = b
		case KeyAutoCloseQuotes:
			s.AutoCloseQuotes = b
		case KeySyntaxHighlighting:
			s.SyntaxHighlighting = b
		case KeyAutosave:
			s.Autosave = b
		}
	case kindInt:
		n, err := toInt(key, v)
		if err != nil {
			return err
		}
		if n < MinTabWidth || n > MaxTabWidth {
			return invalid(key, v, ErrOutOfRange, "must be between %d and %d", MinTabWidth, MaxTabWidth)
		}
		s.TabWidth = n
	case kindColor:
		c, err := toColor(key, v)
		if err != nil {
			return err
		}
		s.FindHighlight = c
	case kindLevel:
		str, ok := v.(string)
		if !ok {
			return invalid(key, v, ErrTypeMismatch, "want a string")
		}
		str = strings.ToLower(strings.TrimSpace(str))
		if !slices.Contains(logLevels, str) {
			return invalid(key, v, ErrInvalidValue, "want one of %s", strings.Join(logLevels, ", "))
		}
		s.LogLevel = str
	case kindWordTable:
		table, ok := v.(map[string]any)
		if !ok {
			return invalid(key, v, ErrTypeMismatch, "want a table of language to words")
		}
		if s.keywords == nil {
			s.keywords = make(map[string][]string, len(table))
		}
		var errs []error
		for lang, list := range table {
			words, err := toWords(key+"."+lang, list)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			s.keywords[strings.ToLower(lang)] = words
		}
		return errors.Join(errs...)
	case kindColorTable:
		table, ok := v.(map[string]any)
		if !ok {
			return invalid(key, v, ErrTypeMismatch, "want a table of token type to color")
		}
		if s.colors == nil {
			s.colors = make(map[string]string, len(table))
		}
		var errs []error
		for name, cv := range table {
			sub := key + "." + name
			t, err := highlight.ParseTokenType(name)
			if err != nil {
				errs = append(errs, invalid(sub, name, ErrInvalidValue, "%v", err))
				continue
			}
			c, err := toColor(sub, cv)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			s.colors[t.String()] = c
		}
		return errors.Join(errs...)
	}
	return nil
}

func toBool(key string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case int:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case float64:
		if b == 0 || b == 1 {
			return b == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
	}
	return false, invalid(key, v, ErrTypeMismatch, "want a boolean")
}

func toInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, nil
		}
	}
	return 0, invalid(key, v, ErrTypeMismatch, "want an integer")
}

func toColor(key string, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", invalid(key, v, ErrTypeMismatch, "want a color string")
	}
	str = strings.TrimSpace(str)
	if _, err := core.ParseColor(str); err != nil {
		return "", invalid(key, v, ErrInvalidValue, "%v", err)
	}
	return str, nil
}

// toWords accepts a list of strings or a comma separated string.
func toWords(key string, v any) ([]string, error) {
	var words []string
	switch list := v.(type) {
	case string:
		words = strings.Split(list, ",")
	case []string:
		words = slices.Clone(list)
	case []any:
		for _, item := range list {
			w, ok := item.(string)
			if !ok {
				return nil, invalid(key, v, ErrTypeMismatch, "want a list of strings")
			}
			words = append(words, w)
		}
	default:
		return nil, invalid(key, v, ErrTypeMismatch, "want a list of strings")
	}

	out := words[:0]
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return slices.Clip(out), nil
}

// parseValue converts the command-line form of a value to the type key
// expects. sub is the part after the dot of a table key.
func parseValue(key, sub, value string) (any, error) {
	switch keyKinds[key] {
	case kindBool:
		return toBool(key, value)
	case kindInt:
		return toInt(key, value)
	case kindWordTable:
		if sub == "" {
			return nil, invalid(key, value, ErrInvalidValue, "set keywords.<language>")
		}
		words, err := toWords(key+"."+sub, value)
		if err != nil {
			return nil, err
		}
		return words, nil
	case kindColorTable:
		if sub == "" {
			return nil, invalid(key, value, ErrInvalidValue, "set colorScheme.<token type>")
		}
		return toColor(key+"."+sub, value)
	default:
		return strings.TrimSpace(value), nil
	}
}

// splitKey splits "keywords.python" into its canonical key and the table
// entry name.
func splitKey(k string) (key, sub string, err error) {
	top, sub, _ := strings.Cut(k, ".")
	key, ok := CanonicalKey(top)
	if !ok {
		return "", "", &ValidationError{Key: k, Err: ErrUnknownKey}
	}
	if sub != "" {
		switch keyKinds[key] {
		case kindWordTable:
			sub = strings.ToLower(sub)
		case kindColorTable:
			t, err := highlight.ParseTokenType(sub)
			if err != nil {
				return "", "", invalid(k, sub, ErrInvalidValue, "%v", err)
			}
			sub = t.String()
		default:
			return "", "", invalid(k, nil, ErrUnknownKey, "%s is not a table", key)
		}
	}
	return key, sub, nil
}
