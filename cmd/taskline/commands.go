package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/taskline-dev/taskline/internal/catalog"
	"github.com/taskline-dev/taskline/internal/matcher"
	"github.com/taskline-dev/taskline/internal/scriptfile"
	"github.com/taskline-dev/taskline/internal/version"
)

// InitResult is the JSON output of init.
type InitResult struct {
	Path     string `json:"path"`
	Codename string `json:"codename"`
	Version  string `json:"version,omitempty"`
}

// BumpResult is the JSON output for one bumped script.
type BumpResult struct {
	Path    string `json:"path"`
	NewPath string `json:"newPath"`
	Current string `json:"current,omitempty"`
	Next    string `json:"next"`
	Bump    string `json:"bump"`
	DryRun  bool   `json:"dryRun,omitempty"`
}

// MultiResult is the JSON output of bump --all.
type MultiResult struct {
	Results []BumpResult `json:"results"`
}

func initCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a new script with a metadata header",
		ArgsUsage: "<name> [version]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: ".", Usage: "Directory to create the script in"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 || c.NArg() > 2 {
				return cli.Exit("usage: taskline init <name> [version]", 1)
			}
			name := c.Args().Get(0)

			var v *version.Version
			if text := c.Args().Get(1); text != "" {
				parsed, err := version.Parse(text)
				if err != nil {
					return err
				}
				v = &parsed
			} else {
				v = e.cfg.InitVersion()
			}

			path, err := scriptfile.Initialize(c.String("dir"), name, v, e.cfg.Extension)
			if err != nil {
				return err
			}
			e.log.Info("initialized", zap.String("path", path))

			res := InitResult{Path: path, Codename: name}
			if v != nil {
				res.Version = v.String()
			}
			return writeJSON(c.App.Writer, res)
		},
	}
}

func bumpCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Bump a script version and rename the file to match",
		ArgsUsage: "<file> [patch|minor|major]  or  --all [patch|minor|major]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Usage: "Bump every script matched by the config globs"},
			&cli.StringFlag{Name: "root", Value: ".", Usage: "Search root for --all"},
			&cli.BoolFlag{Name: "dry", Usage: "Report the bump without modifying any files"},
		},
		Action: func(c *cli.Context) error {
			var paths []string
			var kindArg string

			if c.Bool("all") {
				if c.NArg() > 1 {
					return cli.Exit("usage: taskline bump --all [patch|minor|major]", 1)
				}
				kindArg = c.Args().Get(0)
			} else {
				if c.NArg() < 1 || c.NArg() > 2 {
					return cli.Exit("usage: taskline bump <file> [patch|minor|major]", 1)
				}
				paths = []string{c.Args().Get(0)}
				kindArg = c.Args().Get(1)
			}
			if kindArg == "" {
				kindArg = scriptfile.Patch.String()
			}

			// Reject the kind before touching the filesystem.
			kind, err := scriptfile.ParseKind(kindArg)
			if err != nil {
				return err
			}

			if c.Bool("all") {
				m, err := matcher.NewMatcher(e.cfg.Scripts)
				if err != nil {
					return err
				}
				if paths, err = m.Find(c.String("root")); err != nil {
					return err
				}
				e.log.Debug("scripts selected", zap.Int("count", len(paths)), zap.Strings("patterns", m.Patterns()))
			}

			engine := scriptfile.NewEngine(e.log)
			results := make([]BumpResult, 0, len(paths))
			var bumpErr error
			for _, p := range paths {
				var res scriptfile.BumpResult
				if c.Bool("dry") {
					res, _, err = scriptfile.Preview(p, kind)
				} else {
					res, err = engine.BumpKind(p, kind)
				}
				if err != nil {
					bumpErr = fmt.Errorf("failed to bump %s: %w", p, err)
					break
				}
				results = append(results, toBumpResult(res, c.Bool("dry")))
			}

			if !c.Bool("all") {
				if bumpErr != nil {
					return bumpErr
				}
				return writeJSON(c.App.Writer, results[0])
			}
			if err := writeJSON(c.App.Writer, MultiResult{Results: results}); err != nil {
				return err
			}
			return bumpErr
		},
	}
}

func showCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the metadata header of a script",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: taskline show <file>", 1)
			}
			entry, err := catalog.Read(c.Args().First())
			if err != nil {
				return err
			}
			return writeJSON(c.App.Writer, entry)
		},
	}
}

func listCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List scripts ordered by codename and version",
		ArgsUsage: "[root]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "latest", Usage: "Only show the highest version per codename"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				return cli.Exit("usage: taskline list [root]", 1)
			}
			root := c.Args().First()
			if root == "" {
				root = "."
			}

			m, err := matcher.NewMatcher(e.cfg.Scripts)
			if err != nil {
				return err
			}
			entries, err := catalog.Scan(root, m)
			if err != nil {
				return err
			}
			if c.Bool("latest") {
				entries = catalog.Latest(entries)
			}
			return writeJSON(c.App.Writer, entries)
		},
	}
}

func toBumpResult(res scriptfile.BumpResult, dry bool) BumpResult {
	out := BumpResult{
		Path:    res.OldPath,
		NewPath: res.NewPath,
		Next:    res.NewVersion.String(),
		Bump:    res.Kind.String(),
		DryRun:  dry,
	}
	if res.OldVersion != nil {
		out.Current = res.OldVersion.String()
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}
