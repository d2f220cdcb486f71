package loader

import (
	"reflect"
	"testing"
)

func envLoader(vars ...string) *EnvLoader {
	l := NewEnvLoader(DefaultEnvPrefix)
	l.environ = func() []string { return vars }
	return l
}

func TestEnvLoader_Load(t *testing.T) {
	l := envLoader(
		"BOOTHIUM_TAB_WIDTH=2",
		"BOOTHIUM_AUTO_INDENT=off",
		"BOOTHIUM_LOG_LEVEL=debug",
		"BOOTHIUM_KEYWORDS_PYTHON=[\"def\",\"class\"]",
		"BOOTHIUM_COLORS_DOUBLE_CHAR_OPERATOR=#ff00ff",
		"HOME=/root",
		"BOOTHIUM_=ignored",
	)
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"tabWidth":   int64(2),
		"autoIndent": false,
		"logLevel":   "debug",
		"keywords":   map[string]any{"python": []any{"def", "class"}},
		"colors":     map[string]any{"double_char_operator": "#ff00ff"},
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("config = %#v\nwant %#v", config, want)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := envLoader("BOOTHIUM_HIGHLIGHT=no")
	l.AddMapping("HIGHLIGHT", "syntaxHighlighting")

	config, _ := l.Load()
	if config["syntaxHighlighting"] != false {
		t.Errorf("syntaxHighlighting = %v, want false", config["syntaxHighlighting"])
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Yes", true},
		{"OFF", false},
		{"1", int64(1)},
		{"-3", int64(-3)},
		{"#112233", "#112233"},
		{"[1", "[1"},
		{`{"a":"b"}`, map[string]any{"a": "b"}},
		{"def,class", "def,class"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseValue(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestEnvToPath(t *testing.T) {
	tests := map[string]string{
		"KEYWORDS_PYTHON":             "keywords.python",
		"COLORS_DOUBLE_CHAR_OPERATOR": "colors.double_char_operator",
		"THEME":                       "theme",
	}
	for in, want := range tests {
		if got := envToPath(in); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", in, got, want)
		}
	}
}
