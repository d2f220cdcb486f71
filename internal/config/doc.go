// Package config holds the editor settings.
//
// Settings is an immutable snapshot. It is built from the defaults, the
// settings file and BOOTHIUM_* environment variables, in increasing order
// of priority:
//
//	s, err := config.Load("~/.config/boothium/settings.toml")
//
// The settings file may be TOML, YAML or the legacy JSON format; the
// extension decides. Recognized keys:
//
//	autoIndent          bool
//	autoCloseBrackets   bool      (legacy: autoCloseBrckt)
//	autoCloseQuotes     bool      (legacy: autoCloseQt)
//	syntaxHighlighting  bool
//	tabWidth            int
//	keywords            table of language tag -> list of words
//	colorScheme         table of token type -> color (alias: colors)
//	findHighlight       color
//	logLevel            debug | info | warn | error
//
// Set persists a single key into a settings file, keeping its format.
//
// # Sub-packages
//
//   - loader: settings file and environment loading
//   - watcher: live reload of a settings file
package config
