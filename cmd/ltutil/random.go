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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-langetude"
)

func randomCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:         "random",
		Usage:        "print a random word",
		OnUsageError: usageError,
		Action: func(c *cli.Context) error {
			return e.withDictionary(c, func(ctx context.Context, d *langetude.Dictionary) error {
				l, err := d.Random(ctx, nil)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrLtutil, err)
				}
				_, err = fmt.Fprintf(c.App.Writer, "%s\t%s\n", l.Ref, l.Display)
				return err
			})
		},
	}
}
