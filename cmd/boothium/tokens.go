package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/boothium/internal/app"
	"github.com/dshills/boothium/internal/config"
	"github.com/dshills/boothium/internal/editor"
	"github.com/dshills/boothium/internal/plugin/lua"
	"github.com/dshills/boothium/internal/renderer/highlight"
)

func newTokensCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the highlighting tokens of a file",
		Long: `Tokenizes a file with the rules of its language and prints one token
per line: type[start:end]"text", offsets in code points.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTokens(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], *flags)
		},
	}
}

func printTokens(out, errOut io.Writer, path string, flags rootFlags) error {
	settingsPath := flags.settingsPath()
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	catalog := lua.NewCatalog()
	if err := catalog.LoadDir(app.DefaultLanguageDir(settingsPath)); err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
	}

	lang, def := app.ResolveLanguage(catalog, path, flags.language)
	var opts []editor.Option
	if def != nil {
		opts = append(opts, editor.WithDefinition(*def))
	}
	text := string(data)
	ed, err := editor.New(text, lang, settings, opts...)
	if err != nil {
		return err
	}
	h := ed.Highlighter()
	if h == nil {
		return fmt.Errorf("%s (%s): %w", path, ed.Language(), highlight.ErrNoHighlighting)
	}

	for tok := range h.Rules().Tokens(text, 0) {
		if _, err := fmt.Fprintln(out, tok); err != nil {
			return err
		}
	}
	return nil
}
