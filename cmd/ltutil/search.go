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
	"fmt"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-langetude"
	"github.com/ianlewis/go-langetude/render"
)

func searchCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "search headwords",
		ArgsUsage: "TERM",
		Description: `Search prints the words of the entries whose headword contains TERM,
in dictionary order.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Usage:   "print at most `N` words",
				Aliases: []string{"n"},
			},
		},
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected a search term", ErrFlagParse)
			}
			term := c.Args().First()
			limit := e.cfg.Search.Limit
			if c.IsSet("limit") {
				limit = c.Int("limit")
			}
			if limit <= 0 {
				return fmt.Errorf("%w: invalid limit %d", ErrFlagParse, limit)
			}

			return e.withDictionary(c, func(ctx context.Context, d *langetude.Dictionary) error {
				links, err := d.Search(ctx, term, limit)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrLtutil, err)
				}
				if len(links) == 0 {
					_, err := fmt.Fprintln(c.App.Writer, "No results.")
					return err
				}

				tbl := table.New("Ref", "Word", "Class", "Language").WithWriter(c.App.Writer)
				for _, l := range links {
					tbl.AddRow(l.Ref, l.Display, l.Class, render.LanguageName(l.Language))
				}
				tbl.Print()
				return nil
			})
		},
	}
}

// usageError marks command usage errors as flag parsing errors.
func usageError(_ *cli.Context, err error, _ bool) error {
	return fmt.Errorf("%w: %w", ErrFlagParse, err)
}
