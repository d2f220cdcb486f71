package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/boothium/internal/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Write one setting to the settings file",
			Long: `Writes one setting, validating it first. Table entries are set with a
dotted key, e.g. "keywords.python" (a comma separated list) or
"colorScheme.keyword". The settings file is created when missing.`,
			Example: `  boothium config set tabWidth 8
  boothium config set colorScheme.comment "#808080"
  boothium config set keywords.go "func,return,if"`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := flags.settingsPath()
				if err := config.Set(path, args[0], args[1]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
				return err
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings as TOML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				settings, err := config.Load(flags.settingsPath())
				if err != nil {
					return err
				}
				data, err := toml.Marshal(settings.ToMap())
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the settings file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), flags.settingsPath())
				return err
			},
		},
	)
	return cmd
}
