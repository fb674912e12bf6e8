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
	"io"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-langetude"
	"github.com/ianlewis/go-langetude/dict"
	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/nav"
	"github.com/ianlewis/go-langetude/render"
)

func showCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show a word",
		ArgsUsage: "REF",
		Description: `Show prints the word referenced by REF and links to the previous and
next words. REF is an entry id, optionally followed by a slash and the
word's position in the entry, e.g. "0123abcd/1".`,
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: expected a word reference", ErrFlagParse)
			}
			ref, err := idx.ParseReference(c.Args().First())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFlagParse, err)
			}

			return e.withDictionary(c, func(ctx context.Context, d *langetude.Dictionary) error {
				p, err := d.Page(ctx, ref)
				if errors.Is(err, dict.ErrNotFound) {
					_, err = fmt.Fprintln(c.App.Writer, "Word not found")
					return err
				}
				if err != nil {
					return fmt.Errorf("%w: %w", ErrLtutil, err)
				}
				return printPage(c.App.Writer, p)
			})
		},
	}
}

func printPage(w io.Writer, p *nav.Page) error {
	if l := p.Links.Previous; l != nil {
		if _, err := fmt.Fprintf(w, "Previous: %s (%s)\n", l.Display, l.Ref); err != nil {
			return err
		}
	}
	if l := p.Links.Next; l != nil {
		if _, err := fmt.Fprintf(w, "Next:     %s (%s)\n", l.Display, l.Ref); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := render.Default().Render(w, p, nil); err != nil {
		return fmt.Errorf("%w: %w", ErrLtutil, err)
	}
	return nil
}
