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
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/internal/tui"
)

func browseCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "browse the dictionary interactively",
		ArgsUsage: "[REF]",
		Description: `Browse opens an interactive browser on the word referenced by REF, or on
a random word.`,
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			var start *idx.Reference
			if c.NArg() > 1 {
				return fmt.Errorf("%w: too many arguments", ErrFlagParse)
			}
			if c.NArg() == 1 {
				ref, err := idx.ParseReference(c.Args().First())
				if err != nil {
					return fmt.Errorf("%w: %w", ErrFlagParse, err)
				}
				start = &ref
			}

			// The terminal belongs to the browser so logs go to the log
			// file, if any.
			logger, closeLog, err := e.browserLogger()
			if err != nil {
				return err
			}
			defer closeLog()

			d, err := e.open(logger)
			if err != nil {
				return err
			}
			defer d.Close()

			m := tui.New(c.Context, d.Index(), d.Resolver(), &tui.Options{
				Session: e.sessionOptions(),
				Start:   start,
				Logger:  logger,
			})
			if err := tui.Run(c.Context, m); err != nil {
				return fmt.Errorf("%w: %w", ErrLtutil, err)
			}
			return nil
		},
	}
}

func (e *env) browserLogger() (*slog.Logger, func(), error) {
	if e.cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(e.cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening log file: %w", ErrLtutil, err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: e.logLevel}))
	return logger, func() { _ = f.Close() }, nil
}
