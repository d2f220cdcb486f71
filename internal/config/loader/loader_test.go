package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"settings.toml", FormatTOML},
		{"/etc/boothium/settings.YAML", FormatYAML},
		{"settings.yml", FormatYAML},
		{"BEditSettings.json", FormatJSON},
		{"settings.ini", FormatUnknown},
		{"settings", FormatUnknown},
	}
	for _, tt := range tests {
		if got := FormatForPath(tt.path); got != tt.want {
			t.Errorf("FormatForPath(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestForPath_Unsupported(t *testing.T) {
	_, err := ForPathWithFS(NewMemFS(), "/settings.ini")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoaders_SameSettings(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/s.toml", `
autoIndent = false
tabWidth = 8

[keywords]
python = ["def", "class"]
`)
	memfs.AddFile("/s.yaml", `
autoIndent: false
tabWidth: 8
keywords:
  python: [def, class]
`)
	memfs.AddFile("/s.json", `{"autoIndent": false, "tabWidth": 8, "keywords": {"python": ["def", "class"]}}`)

	for _, path := range []string{"/s.toml", "/s.yaml", "/s.json"} {
		l, err := ForPathWithFS(memfs, path)
		if err != nil {
			t.Fatalf("ForPath(%s): %v", path, err)
		}
		config, err := l.Load()
		if err != nil {
			t.Fatalf("%s: Load failed: %v", path, err)
		}
		if config["autoIndent"] != false {
			t.Errorf("%s: autoIndent = %v, want false", path, config["autoIndent"])
		}
		kw, ok := config["keywords"].(map[string]any)
		if !ok {
			t.Fatalf("%s: keywords = %T, want map", path, config["keywords"])
		}
		if got, want := kw["python"], []any{"def", "class"}; !reflect.DeepEqual(got, want) {
			t.Errorf("%s: keywords.python = %#v, want %#v", path, got, want)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	for _, path := range []string{"/none.toml", "/none.yaml", "/none.json"} {
		l, _ := ForPathWithFS(NewMemFS(), path)
		config, err := l.Load()
		if err != nil || config != nil {
			t.Errorf("%s: Load() = %v, %v; want nil, nil", path, config, err)
		}
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "autoIndent = true\ntabWidth = = 4\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(perr.Error(), "line 2") {
		t.Errorf("Error() = %q, want line number", perr.Error())
	}
}

func TestJSONLoader(t *testing.T) {
	l := NewJSONLoader("")

	config, err := l.LoadFromReader(strings.NewReader("  \n"))
	if err != nil || len(config) != 0 {
		t.Errorf("empty: %v, %v", config, err)
	}

	_, err = l.LoadFromReader(strings.NewReader(`{"autoIndent": tru`))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("invalid: err = %v, want *ParseError", err)
	}

	_, err = l.LoadFromReader(strings.NewReader(`[1, 2]`))
	if !errors.Is(err, ErrNotObject) {
		t.Errorf("array: err = %v, want ErrNotObject", err)
	}

	config, err = l.LoadFromReader(strings.NewReader(`{"autoCloseBrckt": true, "tabWidth": 2}`))
	if err != nil {
		t.Fatal(err)
	}
	if config["autoCloseBrckt"] != true || config["tabWidth"] != float64(2) {
		t.Errorf("config = %#v", config)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	_, err := NewYAMLLoader("").LoadFromReader(strings.NewReader("tabWidth: [1\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	config := map[string]any{
		"autoIndent": true,
		"colorScheme": map[string]any{
			"keyword": "#ff0000",
		},
	}

	data, err := EncodeTOML(config)
	if err != nil {
		t.Fatal(err)
	}
	back, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, config) {
		t.Errorf("toml round trip = %#v", back)
	}

	data, err = EncodeYAML(config)
	if err != nil {
		t.Fatal(err)
	}
	back, err = NewYAMLLoader("").LoadFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, config) {
		t.Errorf("yaml round trip = %#v", back)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"autoIndent": true,
		"keywords":   map[string]any{"python": []any{"def"}, "c": []any{"int"}},
	}
	src := map[string]any{
		"autoIndent": false,
		"keywords":   map[string]any{"python": []any{"class"}},
	}
	got := DeepMerge(dst, src)
	want := map[string]any{
		"autoIndent": false,
		"keywords":   map[string]any{"python": []any{"class"}, "c": []any{"int"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge = %#v, want %#v", got, want)
	}

	if got := DeepMerge(nil, src); got["autoIndent"] != false {
		t.Errorf("DeepMerge(nil, src) = %#v", got)
	}
}

func TestSetByPath(t *testing.T) {
	config := map[string]any{"keywords": "broken"}
	SetByPath(config, "keywords.python", []any{"def"})
	SetByPath(config, "tabWidth", 2)

	want := map[string]any{
		"keywords": map[string]any{"python": []any{"def"}},
		"tabWidth": 2,
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("config = %#v, want %#v", config, want)
	}
}
