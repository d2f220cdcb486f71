package config

import (
	"os"
	"path/filepath"

	"github.com/dshills/boothium/internal/config/loader"
)

// DefaultFileName is the settings file name inside the user config
// directory.
const DefaultFileName = "settings.toml"

// DefaultPath returns the user settings file path.
func DefaultPath() string {
	return filepath.Join(defaultUserConfigDir(), DefaultFileName)
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "boothium")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "boothium")
}

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
}

// Option configures Load.
type Option func(*loadOptions)

// WithFS sets the file system settings files are read from.
func WithFS(fs loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fs
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// turns environment overrides off.
func WithEnvPrefix(prefix string) Option {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// Load reads the settings file at path and applies environment overrides
// on top of the defaults. A missing file, or an empty path, yields the
// defaults. Parse errors are returned as *ParseError and bad values as
// *ValidationError.
func Load(path string, opts ...Option) (Settings, error) {
	o := loadOptions{
		fs:        loader.DefaultFS(),
		envPrefix: loader.DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var m map[string]any
	if path != "" {
		l, err := loader.ForPathWithFS(o.fs, path)
		if err != nil {
			return Default(), err
		}
		if m, err = l.Load(); err != nil {
			return Default(), err
		}
	}

	if o.envPrefix != "" {
		env, err := loader.NewEnvLoader(o.envPrefix).Load()
		if err != nil {
			return Default(), err
		}
		m = loader.DeepMerge(m, env)
	}

	return FromMap(m)
}
