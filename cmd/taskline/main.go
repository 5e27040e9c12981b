// Package main provides the taskline CLI entrypoint.
//
// Usage:
//
//	taskline init <name> [version]
//	taskline bump <file> [patch|minor|major]
//	taskline bump --all [patch|minor|major]
//	taskline show <file>
//	taskline list [root]
//
// Results are written to stdout as JSON. Every failure prints one line to
// stderr and exits with status 1.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/taskline-dev/taskline/internal/config"
	"github.com/taskline-dev/taskline/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries what the Before hook loads for every command.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func main() {
	app := newApp()
	app.ExitErrHandler = exitErrHandler

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already exited for every non-nil error.
		os.Exit(1)
	}
}

func newApp() *cli.App {
	e := &env{cfg: config.Default(), log: logging.Nop()}

	return &cli.App{
		Name:    "taskline",
		Usage:   "Create and version taskline scripts",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to config file",
				Value:   config.FileName,
				EnvVars: []string{"TASKLINE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "config-content",
				Usage: "Inline YAML config content (takes precedence over --config)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn, error (overrides config)",
				EnvVars: []string{"TASKLINE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: console, json (overrides config)",
			},
		},
		Before: e.setup,
		After:  e.teardown,
		Commands: []*cli.Command{
			initCommand(e),
			bumpCommand(e),
			showCommand(),
			listCommand(e),
		},
	}
}

// setup loads the config and builds the logger.
func (e *env) setup(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if v := c.String("log-level"); v != "" {
		level = v
	}
	format := cfg.Log.Format
	if v := c.String("log-format"); v != "" {
		format = v
	}

	log, err := logging.New(logging.Options{Level: level, Format: format, Output: c.App.ErrWriter})
	if err != nil {
		return err
	}

	e.cfg, e.log = cfg, log
	e.log.Debug("config loaded", zap.String("extension", cfg.Extension), zap.Strings("scripts", cfg.Scripts))
	return nil
}

func (e *env) teardown(_ *cli.Context) error {
	_ = e.log.Sync()
	return nil
}

// loadConfig prefers inline content, then an explicit --config path. The
// default path is optional.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if content := c.String("config-content"); content != "" {
		cfg, err := config.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse inline config: %w", err)
		}
		return cfg, nil
	}

	path := c.String("config")
	if c.IsSet("config") {
		return config.Load(path)
	}
	return config.LoadOrDefault(path)
}

// exitErrHandler prints err once and exits, preserving cli.Exit codes.
func exitErrHandler(c *cli.Context, err error) {
	if err == nil {
		return
	}
	os.Exit(reportError(errWriter(c), err))
}

// reportError writes the message for err and returns the exit code.
func reportError(w io.Writer, err error) int {
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		// cli.Exit("", N).Error() returns "exit status N", so skip those
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintf(w, "error: %s\n", msg)
		}
		return code
	}

	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}

func errWriter(c *cli.Context) io.Writer {
	if c != nil && c.App != nil && c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}
