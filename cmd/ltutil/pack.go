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
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-langetude/source"
)

func packCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "pack a dictionary directory into a SQLite bundle",
		ArgsUsage: "DIR",
		Description: `Pack copies the index and entry documents found in DIR, compressed or
not, into a single SQLite bundle that can be used as a source.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Usage:    "write the bundle to `FILE`",
				Aliases:  []string{"o"},
				Required: true,
			},
		},
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected a directory", ErrFlagParse)
			}

			dir, err := source.NewDir(c.Args().First(), &source.Options{Logger: e.logger})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrLtutil, err)
			}

			out := c.String("out")
			db, err := sql.Open("sqlite3", out)
			if err != nil {
				return fmt.Errorf("%w: opening %s: %w", ErrLtutil, out, err)
			}
			defer db.Close()

			n, err := source.Pack(c.Context, db, dir)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrLtutil, err)
			}
			if err := db.Close(); err != nil {
				return fmt.Errorf("%w: closing %s: %w", ErrLtutil, out, err)
			}

			_, err = fmt.Fprintf(c.App.Writer, "packed %d documents into %s\n", n, out)
			return err
		},
	}
}
