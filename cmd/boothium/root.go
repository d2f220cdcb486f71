package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/boothium/internal/app"
	"github.com/dshills/boothium/internal/config"
	"github.com/dshills/boothium/internal/renderer/backend"
)

type rootFlags struct {
	configPath string
	language   string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "boothium [file]",
		Short: "A small terminal code editor",
		Long: `boothium edits one file in the terminal with syntax highlighting,
find and replace, and auto-indent. Settings are read from a TOML, YAML or
JSON file and reloaded when it changes.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEditor(path, flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "",
		"settings file (default: "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVarP(&flags.language, "language", "l", "",
		"language to highlight, overriding the file extension")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "",
		"log level: debug, info, warn or error (default: the logLevel setting)")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "",
		"file to append logs to (default: no logging)")

	cmd.AddCommand(newTokensCmd(&flags), newConfigCmd(&flags))
	return cmd
}

func (f rootFlags) settingsPath() string {
	if f.configPath != "" {
		return f.configPath
	}
	return config.DefaultPath()
}

func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid log level %q (must be debug, info, warn or error)", level)
}

func runEditor(path string, flags rootFlags) error {
	if err := validateLogLevel(flags.logLevel); err != nil {
		return err
	}

	logger := app.NullLogger
	if flags.logFile != "" {
		f, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		cfg := app.DefaultLoggerConfig()
		cfg.Output = f
		logger = app.NewLogger(cfg)
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}

	application, err := app.New(app.Options{
		Path:        path,
		ConfigPath:  flags.settingsPath(),
		Language:    flags.language,
		LogLevel:    flags.logLevel,
		WatchConfig: true,
		Backend:     term,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		if sig, ok := <-signals; ok {
			application.Quit(sig.String())
		}
	}()

	return application.Run()
}
