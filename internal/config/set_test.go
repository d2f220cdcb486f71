package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func load(t *testing.T, path string) Settings {
	t.Helper()
	s, err := Load(path, WithEnvPrefix(""))
	require.NoError(t, err)
	return s
}

func TestSet_CreatesFile(t *testing.T) {
	for _, name := range []string{"settings.toml", "settings.yaml", "settings.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			require.NoError(t, Set(path, "autoIndent", "false"))
			require.NoError(t, Set(path, "tabWidth", "8"))
			require.NoError(t, Set(path, "autosave", "on"))
			require.NoError(t, Set(path, "keywords.python", "def, class"))
			require.NoError(t, Set(path, "colorScheme.TokenType.KEYWORD", "#ff0000"))

			s := load(t, path)
			assert.False(t, s.AutoIndent)
			assert.Equal(t, 8, s.TabWidth)
			assert.True(t, s.Autosave)
			kw, _ := s.Keywords("python")
			assert.Equal(t, []string{"def", "class"}, kw)
			assert.Equal(t, map[string]string{"keyword": "#ff0000"}, s.ColorScheme())
		})
	}
}

func TestSet_LegacyJSON(t *testing.T) {
	path := writeFile(t, "BEditSettings.json", `{
  "autoIndent": true,
  "autoCloseBrckt": true,
  "autoCloseQt": true,
  "syntaxHighlighting": true
}`)

	require.NoError(t, Set(path, "autoCloseBrackets", "false"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(data, "autoCloseBrckt").Exists())
	assert.False(t, gjson.GetBytes(data, "autoCloseBrackets").Bool())
	assert.True(t, gjson.GetBytes(data, "autoCloseQt").Bool())

	s := load(t, path)
	assert.False(t, s.AutoCloseBrackets)
	assert.True(t, s.AutoCloseQuotes)
}

func TestSet_RenamesTableAlias(t *testing.T) {
	path := writeFile(t, "settings.toml", "[colors]\ncomment = \"gray\"\n")

	require.NoError(t, Set(path, "colorScheme.keyword", "red"))

	s := load(t, path)
	assert.Equal(t, map[string]string{"comment": "gray", "keyword": "red"}, s.ColorScheme())
}

func TestSet_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")

	tests := []struct {
		key, value string
		want       error
	}{
		{"fontSize", "12", ErrUnknownKey},
		{"tabWidth", "wide", ErrTypeMismatch},
		{"tabWidth", "0", ErrOutOfRange},
		{"autoIndent", "maybe", ErrTypeMismatch},
		{"keywords", "def", ErrInvalidValue},
		{"colorScheme.sparkle", "red", ErrInvalidValue},
		{"colorScheme.keyword", "#1", ErrInvalidValue},
		{"tabWidth.x", "1", ErrUnknownKey},
		{"logLevel", "loud", ErrInvalidValue},
	}
	for _, tt := range tests {
		err := Set(path, tt.key, tt.value)
		assert.ErrorIs(t, err, tt.want, "%s=%s", tt.key, tt.value)
	}

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "rejected values must not create the file")

	assert.ErrorIs(t, Set(filepath.Join(t.TempDir(), "s.ini"), "autoIndent", "true"), ErrUnsupportedFormat)
}
