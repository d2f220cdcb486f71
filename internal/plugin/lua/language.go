package lua

import (
	"errors"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/boothium/internal/renderer/highlight"
)

// LoadLanguage runs the definition script at path and returns the
// languages it declares with language{...}. Every definition is checked
// by building its rule set, so a script whose rules lack a catch-all or
// whose keyword list is empty fails here.
func LoadLanguage(path string, opts ...StateOption) ([]highlight.Definition, error) {
	return load(path, func(s *State) error { return s.DoFile(path) }, opts)
}

// LoadLanguageString is like LoadLanguage for a script held in memory.
// name is used in error messages.
func LoadLanguageString(name, code string, opts ...StateOption) ([]highlight.Definition, error) {
	return load(name, func(s *State) error { return s.DoString(code) }, opts)
}

func load(source string, run func(*State) error, opts []StateOption) ([]highlight.Definition, error) {
	s := NewState(opts...)
	defer s.Close()

	var defs []highlight.Definition
	var defErr error
	s.RegisterFunc("language", func(L *lua.LState) int {
		def, err := parseDefinition(L, L.CheckTable(1))
		if err == nil {
			_, err = def.RuleSet()
			if err != nil {
				err = fmt.Errorf("language %q: %w", def.Name, err)
			}
		}
		if err != nil {
			defErr = err
			L.RaiseError("%s", err.Error())
			return 0
		}
		defs = append(defs, def)
		return 0
	})

	if err := run(s); err != nil {
		if defErr != nil {
			return nil, fmt.Errorf("%s: %w", source, defErr)
		}
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrNoLanguage)
	}
	return defs, nil
}

// parseDefinition reads a language table:
//
//	language {
//	  name = "toml",
//	  extensions = { ".toml" },
//	  comment = "#",
//	  block_comments = false,
//	  preprocessor = false,
//	  raw_strings = false,
//	  terminators = "[\\s=]",
//	  keywords = { "true", "false" },
//	  extra = { { type = "preproc", pattern = "\\$[A-Za-z_]+" } },
//	}
//
// A rules list replaces the generated rules entirely and must end with a
// catch-all unknown rule.
func parseDefinition(L *lua.LState, t *lua.LTable) (highlight.Definition, error) {
	var def highlight.Definition
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidLanguage}, args...)...))
	}

	name, err := stringField(L, t, "name")
	if err != nil {
		fail("%v", err)
	}
	def.Name = strings.ToLower(strings.TrimSpace(name))
	if def.Name == "" {
		fail("name is required")
	}

	exts, err := stringList(L.GetField(t, "extensions"), "extensions")
	if err != nil {
		fail("%v", err)
	}
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		def.Extensions = append(def.Extensions, ext)
	}

	if def.CommentPrefix, err = stringField(L, t, "comment"); err != nil {
		fail("%v", err)
	}
	if def.Terminators, err = stringField(L, t, "terminators"); err != nil {
		fail("%v", err)
	}
	if def.BlockComments, err = boolField(L, t, "block_comments"); err != nil {
		fail("%v", err)
	}
	if def.Preprocessor, err = boolField(L, t, "preprocessor"); err != nil {
		fail("%v", err)
	}
	if def.RawStrings, err = boolField(L, t, "raw_strings"); err != nil {
		fail("%v", err)
	}
	if def.Keywords, err = stringList(L.GetField(t, "keywords"), "keywords"); err != nil {
		fail("%v", err)
	}
	if def.Extra, err = ruleList(L, L.GetField(t, "extra"), "extra"); err != nil {
		errs = append(errs, err)
	}
	if def.Rules, err = ruleList(L, L.GetField(t, "rules"), "rules"); err != nil {
		errs = append(errs, err)
	}

	return def, errors.Join(errs...)
}

func stringField(L *lua.LState, t *lua.LTable, key string) (string, error) {
	switch v := L.GetField(t, key).(type) {
	case lua.LString:
		return string(v), nil
	case *lua.LNilType:
		return "", nil
	default:
		return "", fmt.Errorf("%s must be a string, got %s", key, v.Type())
	}
}

func boolField(L *lua.LState, t *lua.LTable, key string) (bool, error) {
	switch v := L.GetField(t, key).(type) {
	case lua.LBool:
		return bool(v), nil
	case *lua.LNilType:
		return false, nil
	default:
		return false, fmt.Errorf("%s must be a boolean, got %s", key, v.Type())
	}
}

// stringList reads an array of strings. nil yields nil.
func stringList(lv lua.LValue, what string) ([]string, error) {
	if lv == lua.LNil {
		return nil, nil
	}
	t, ok := lv.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s must be a list, got %s", what, lv.Type())
	}
	out := make([]string, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		s, ok := t.RawGetInt(i).(lua.LString)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", what, i)
		}
		out = append(out, string(s))
	}
	return out, nil
}

// ruleList reads rules given as {type=, pattern=, submatch=} tables or as
// positional {type, pattern, submatch} lists.
func ruleList(L *lua.LState, lv lua.LValue, what string) ([]highlight.Rule, error) {
	if lv == lua.LNil {
		return nil, nil
	}
	t, ok := lv.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a list, got %s", ErrInvalidLanguage, what, lv.Type())
	}

	rules := make([]highlight.Rule, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		rt, ok := t.RawGetInt(i).(*lua.LTable)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] must be a table", ErrInvalidLanguage, what, i)
		}

		typ := L.GetField(rt, "type")
		pattern := L.GetField(rt, "pattern")
		submatch := L.GetField(rt, "submatch")
		if typ == lua.LNil && pattern == lua.LNil {
			typ, pattern, submatch = rt.RawGetInt(1), rt.RawGetInt(2), rt.RawGetInt(3)
		}

		typName, ok1 := typ.(lua.LString)
		pat, ok2 := pattern.(lua.LString)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: %s[%d] needs a type and a pattern", ErrInvalidLanguage, what, i)
		}
		tt, err := highlight.ParseTokenType(string(typName))
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidLanguage, what, i, err)
		}
		sub := 0
		switch n := submatch.(type) {
		case lua.LNumber:
			sub = int(n)
		case *lua.LNilType:
		default:
			return nil, fmt.Errorf("%w: %s[%d]: submatch must be a number", ErrInvalidLanguage, what, i)
		}

		r, err := highlight.NewRule(tt, string(pat), sub)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidLanguage, what, i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}
