// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-langetude"
	"github.com/ianlewis/go-langetude/internal/config"
	"github.com/ianlewis/go-langetude/internal/folding"
	"github.com/ianlewis/go-langetude/search"
	"github.com/ianlewis/go-langetude/source"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrLtutil is a parent error for all command errors.
var ErrLtutil = errors.New("ltutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrLtutil)

// ErrNoSource indicates that no dictionary source was found.
var ErrNoSource = fmt.Errorf("%w: no dictionary source", ErrLtutil)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `ltutil --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// env holds the state shared by all commands. It is populated before any
// command runs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger

	// logLevel controls the stderr logger.
	logLevel *slog.LevelVar
}

// before loads the configuration and applies the global flags.
func (e *env) before(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLtutil, err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("%w: loading config: %w", ErrLtutil, err)
	}

	if c.IsSet("source") {
		cfg.Source = c.String("source")
	}
	if c.IsSet("fold") {
		cfg.Fold = strings.Split(c.String("fold"), ",")
	}
	e.cfg = cfg

	e.logLevel = new(slog.LevelVar)
	e.logLevel.Set(slog.LevelWarn)
	if c.Bool("verbose") {
		e.logLevel.Set(slog.LevelDebug)
	}
	e.logger = slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: e.logLevel,
	}))
	e.logger.Debug("configuration loaded", "path", path, "source", cfg.Source)
	return nil
}

// sourceLocation returns the configured source or the first existing data
// location.
func (e *env) sourceLocation() (string, error) {
	if e.cfg.Source != "" {
		return e.cfg.Source, nil
	}
	for _, loc := range dataLocations() {
		if _, err := os.Stat(filepath.Join(loc, source.IndexName)); err == nil {
			return loc, nil
		}
	}
	return "", fmt.Errorf("%w: set --source or the source config key", ErrNoSource)
}

// open opens the configured dictionary. Logs go to logger.
func (e *env) open(logger *slog.Logger) (*langetude.Dictionary, error) {
	loc, err := e.sourceLocation()
	if err != nil {
		return nil, err
	}
	folder, err := folding.Parse(e.cfg.FoldNames())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	d, err := langetude.Open(loc, &langetude.Options{
		Folder:     folder,
		HTTPClient: &http.Client{Timeout: time.Duration(e.cfg.HTTP.Timeout)},
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLtutil, err)
	}
	return d, nil
}

// withDictionary runs fn with the configured dictionary.
func (e *env) withDictionary(c *cli.Context, fn func(context.Context, *langetude.Dictionary) error) error {
	d, err := e.open(e.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			e.logger.Warn("closing dictionary", "err", err)
		}
	}()
	return fn(c.Context, d)
}

func (e *env) sessionOptions() search.Options {
	return search.Options{
		Delay:      time.Duration(e.cfg.Search.Delay),
		ResetDelay: time.Duration(e.cfg.Search.ResetDelay),
		Limit:      e.cfg.Search.Limit,
	}
}

func newLtutilApp() *cli.App {
	e := &env{}
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search and browse langetude dictionaries.",
		Description: strings.Join([]string{
			"Langétude dictionary utility written in Go.",
			"http://github.com/ianlewis/go-langetude",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Usage:   "read the dictionary from `LOCATION` (directory, SQLite bundle or URL)",
				Aliases: []string{"s"},
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "fold",
				Usage: "fold headwords and search terms with the comma separated `FOLDERS` (whitespace, case)",
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "print debug logs",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Before: e.before,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			searchCommand(e),
			showCommand(e),
			randomCommand(e),
			browseCommand(e),
			packCommand(e),
		},
	}
}
