package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/dshills/boothium/internal/config/loader"
)

// Set persists one setting into the settings file at path, creating the
// file when needed. key may name a table entry such as "keywords.python"
// or "colorScheme.keyword". The value is given in its command-line form:
// "true", "8", "#ff0000" or a comma separated word list.
//
// The value is validated before anything is written. Older spellings of
// key found in the file are replaced by the canonical one.
func Set(path, key, value string) error {
	name, sub, err := splitKey(key)
	if err != nil {
		return err
	}
	v, err := parseValue(name, sub, value)
	if err != nil {
		return err
	}

	entry := map[string]any{name: v}
	if sub != "" {
		entry = map[string]any{name: map[string]any{sub: v}}
	}
	if _, err := Default().Apply(toLoaded(entry)); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading settings %s: %w", path, err)
	}

	switch loader.FormatForPath(path) {
	case loader.FormatJSON:
		data, err = setJSON(data, name, sub, v)
	case loader.FormatTOML:
		data, err = setMap(path, data, name, sub, v, loader.NewTOMLLoader(path), loader.EncodeTOML)
	case loader.FormatYAML:
		data, err = setMap(path, data, name, sub, v, loader.NewYAMLLoader(path), loader.EncodeYAML)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// toLoaded converts typed values to the shapes a loader produces.
func toLoaded(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch x := v.(type) {
		case map[string]any:
			out[k] = toLoaded(x)
		case []string:
			list := make([]any, len(x))
			for i, s := range x {
				list[i] = s
			}
			out[k] = list
		default:
			out[k] = v
		}
	}
	return out
}

// staleKeys returns the keys that spell key differently.
func staleKeys(keys []string, key string) []string {
	var stale []string
	for _, k := range keys {
		if canon, ok := CanonicalKey(k); ok && canon == key && k != key {
			stale = append(stale, k)
		}
	}
	return stale
}

func setJSON(data []byte, key, sub string, v any) ([]byte, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		data = []byte("{}")
	}
	m, err := loader.NewJSONLoader("").LoadFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for _, k := range staleKeys(keys, key) {
		if sub == "" {
			data, err = sjson.DeleteBytes(data, escapePath(k))
		} else {
			// Keep the other entries of the table under the new name.
			data, err = renameJSON(data, k, key)
		}
		if err != nil {
			return nil, err
		}
	}

	p := escapePath(key)
	if sub != "" {
		p += "." + escapePath(sub)
	}
	return sjson.SetBytesOptions(data, p, v, &sjson.Options{Optimistic: true})
}

func renameJSON(data []byte, from, to string) ([]byte, error) {
	m, err := loader.NewJSONLoader("").LoadFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	if data, err = sjson.DeleteBytes(data, escapePath(from)); err != nil {
		return nil, err
	}
	merged := m[from]
	if cur, ok := m[to].(map[string]any); ok {
		if old, ok := merged.(map[string]any); ok {
			merged = loader.DeepMerge(old, cur)
		}
	}
	return sjson.SetBytes(data, escapePath(to), merged)
}

// escapePath escapes the sjson path syntax characters in a key.
func escapePath(k string) string {
	return strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`).Replace(k)
}

func setMap(path string, data []byte, key, sub string, v any, l loader.FileLoader, encode func(map[string]any) ([]byte, error)) ([]byte, error) {
	m := make(map[string]any)
	if len(data) > 0 {
		loaded, err := l.LoadFromReader(strings.NewReader(string(data)))
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Path = path
			}
			return nil, err
		}
		m = loader.DeepMerge(m, loaded)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for _, k := range staleKeys(keys, key) {
		if old, ok := m[k].(map[string]any); ok && sub != "" {
			cur, _ := m[key].(map[string]any)
			m[key] = loader.DeepMerge(old, cur)
		}
		delete(m, k)
	}

	if sub != "" {
		table, ok := m[key].(map[string]any)
		if !ok {
			table = make(map[string]any)
			m[key] = table
		}
		table[sub] = v
	} else {
		m[key] = v
	}

	out, err := encode(m)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return out, nil
}
