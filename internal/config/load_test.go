package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Formats(t *testing.T) {
	files := map[string]string{
		"settings.toml":      "autoIndent = false\ntabWidth = 2\n\n[keywords]\npython = [\"def\"]\n",
		"settings.yaml":      "autoIndent: false\ntabWidth: 2\nkeywords:\n  python: [def]\n",
		"BEditSettings.json": `{"autoIndent": false, "tabWidth": 2, "keywords": {"python": ["def"]}}`,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			s, err := Load(writeFile(t, name, content), WithEnvPrefix(""))
			require.NoError(t, err)
			assert.False(t, s.AutoIndent)
			assert.True(t, s.AutoCloseBrackets)
			assert.Equal(t, 2, s.TabWidth)
			kw, ok := s.Keywords("python")
			assert.True(t, ok)
			assert.Equal(t, []string{"def"}, kw)
		})
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.toml"), WithEnvPrefix(""))
	require.NoError(t, err)
	assert.True(t, s.Equal(Default()))

	s, err = Load("", WithEnvPrefix(""))
	require.NoError(t, err)
	assert.True(t, s.Equal(Default()))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "settings.toml", "tabWidth = 2\nautoCloseQuotes = true\n")
	t.Setenv("BOOTHIUM_TAB_WIDTH", "8")
	t.Setenv("BOOTHIUM_AUTO_CLOSE_QUOTES", "off")
	t.Setenv("BOOTHIUM_COLORS_KEYWORD", "#aabbcc")
	t.Setenv("BOOTHIUM_AUTOSAVE", "yes")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, s.TabWidth)
	assert.False(t, s.AutoCloseQuotes)
	assert.Equal(t, "#aabbcc", s.ColorScheme()["keyword"])
	assert.True(t, s.Autosave)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(writeFile(t, "settings.ini", "x=1"), WithEnvPrefix(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "settings.toml", "tabWidth = = 2"), WithEnvPrefix(""))
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)

	s, err := Load(writeFile(t, "settings.toml", "tabWidth = 100"), WithEnvPrefix(""))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.True(t, s.Equal(Default()))
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "boothium", DefaultFileName), DefaultPath())
}
