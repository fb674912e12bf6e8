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

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/ianlewis/go-langetude/dict"
	"github.com/ianlewis/go-langetude/nav"
)

type conjugation struct {
	key   string
	title string

	// headed tables start every row with a person heading.
	headed bool
}

var frenchConjugations = []conjugation{
	{key: "infPr", title: "Infinitif Présent"},
	{key: "infPa", title: "Infinitif Passé"},
	{key: "indPr", title: "Indicatif Présent", headed: true},
	{key: "indPC", title: "Indicatif Passé Composé", headed: true},
}

// FrenchVerb renders a French verb: its header then one table per
// conjugation present on the word.
//
// Every conjugation row is a list of plain cells (person heading and
// auxiliaries) ending with the conjugated form as [stem, morpheme, suffix].
// All rows of a conjugation have the same length. Each cell is rendered in
// its own column so headings, auxiliaries and forms line up.
func FrenchVerb(w io.Writer, p *nav.Page, opts *Options) error {
	if err := Header(w, p); err != nil {
		return err
	}
	for _, c := range frenchConjugations {
		if err := renderConjugation(w, p.Word, c, opts); err != nil {
			return err
		}
	}
	return nil
}

func renderConjugation(w io.Writer, word *dict.Word, c conjugation, opts *Options) error {
	var rows [][]json.RawMessage
	ok, err := word.Decode(c.key, &rows)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if !ok || len(rows) == 0 {
		return nil
	}

	minCols := 1
	if c.headed {
		minCols = 2
	}
	cols := len(rows[0])
	cells := make([][]any, 0, len(rows))
	for i, row := range rows {
		if len(row) != cols {
			return fmt.Errorf("%w: %s: row length mismatch", ErrMalformed, c.key)
		}
		if len(row) < minCols {
			return fmt.Errorf("%w: %s: row %d: too few cells", ErrMalformed, c.key, i)
		}
		r, err := conjugationRow(row, opts)
		if err != nil {
			return fmt.Errorf("%w: %s: row %d: %w", ErrMalformed, c.key, i, err)
		}
		cells = append(cells, r)
	}

	// The title heads the first column.
	headers := make([]any, cols)
	headers[0] = opts.heading(c.title)
	for i := 1; i < cols; i++ {
		headers[i] = ""
	}
	tbl := table.New(headers...).
		WithWriter(w).
		WithWidthFunc(opts.width())
	for _, r := range cells {
		tbl.AddRow(r...)
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tbl.Print()
	return nil
}

// conjugationRow returns a row's plain cells followed by its conjugated form.
func conjugationRow(row []json.RawMessage, opts *Options) ([]any, error) {
	cells := make([]any, 0, len(row))
	for _, raw := range row[:len(row)-1] {
		var cell string
		if err := json.Unmarshal(raw, &cell); err != nil {
			return nil, fmt.Errorf("parsing cell: %w", err)
		}
		cells = append(cells, cell)
	}

	var parts []string
	if err := json.Unmarshal(row[len(row)-1], &parts); err != nil {
		return nil, fmt.Errorf("parsing conjugated form: %w", err)
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("conjugated form has %d parts", len(parts))
	}
	return append(cells, parts[0]+opts.morph(parts[1])+parts[2]), nil
}
