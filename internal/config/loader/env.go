package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultEnvPrefix is the prefix of settings environment variables.
const DefaultEnvPrefix = "BOOTHIUM_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "BOOTHIUM_")
	mapping map[string]string // Env var suffix -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "BOOTHIUM_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// defaultEnvMapping maps variable names, without prefix, to settings keys.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"AUTO_INDENT":         "autoIndent",
		"AUTO_CLOSE_BRACKETS": "autoCloseBrackets",
		"AUTO_CLOSE_QUOTES":   "autoCloseQuotes",
		"SYNTAX_HIGHLIGHTING": "syntaxHighlighting",
		"TAB_WIDTH":           "tabWidth",
		"FIND_HIGHLIGHT":      "findHighlight",
		"LOG_LEVEL":           "logLevel",
		"AUTOSAVE":            "autosave",
	}
}

// AddMapping adds a custom environment variable mapping. envVar is given
// without the prefix.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load reads environment variables and returns a configuration map.
// Empty values are treated as set. Variables outside the mapping become
// section paths: BOOTHIUM_KEYWORDS_PYTHON sets keywords.python.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		key := strings.TrimPrefix(name, l.prefix)
		if key == "" {
			continue
		}
		path, mapped := l.mapping[key]
		if !mapped {
			path = envToPath(key)
		}
		SetByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts KEYWORDS_PYTHON to keywords.python and
// COLORS_DOUBLE_CHAR_OPERATOR to colors.double_char_operator.
func envToPath(name string) string {
	section, rest, ok := strings.Cut(name, "_")
	if !ok {
		return strings.ToLower(name)
	}
	return strings.ToLower(section) + "." + strings.ToLower(rest)
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		if gjson.Valid(s) {
			return gjson.Parse(s).Value()
		}
	}

	return s
}
