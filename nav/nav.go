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

// Package nav resolves the previous and next words of a word page. Words are
// ordered first by their entry's position in the index and then by their
// sequence within the entry, so following next links from the first word
// visits every word in the dictionary.
package nav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-langetude/dict"
	"github.com/ianlewis/go-langetude/idx"
)

// ErrEmpty indicates that the index has no entries.
var ErrEmpty = errors.New("the database is empty")

// Index is the part of [idx.Store] used for navigation.
type Index interface {
	Count(ctx context.Context) (int, error)
	EntryAt(ctx context.Context, pos int) (*idx.Entry, error)
	Adjacent(ctx context.Context, id string) (idx.Neighbors, error)
}

// Entries fetches full entries. [dict.Loader] implements Entries.
type Entries interface {
	Fetch(ctx context.Context, id string) (*dict.Entry, error)
}

// Link is a navigable word.
type Link struct {
	Ref idx.Reference
	idx.WordSummary
}

// Links are the neighbors of a word. A nil link means there is no word in
// that direction.
type Links struct {
	Previous *Link
	Next     *Link
}

// Page is a loaded word page.
type Page struct {
	Ref   idx.Reference
	Entry *dict.Entry

	// Word is the word at Ref or nil if the entry has no such word.
	Word *dict.Word

	Links Links

	err error
}

// Err returns an error wrapping [dict.ErrNotFound] if the page's word does
// not exist.
func (p *Page) Err() error {
	return p.err
}

// Options are options for a Resolver.
type Options struct {
	// Logger receives the Resolver's logs. A nil Logger discards logs.
	Logger *slog.Logger
}

// Resolver resolves word pages.
type Resolver struct {
	index   Index
	entries Entries
	logger  *slog.Logger
}

// NewResolver returns a new Resolver.
func NewResolver(index Index, entries Entries, opts *Options) *Resolver {
	var logger *slog.Logger
	if opts != nil {
		logger = opts.Logger
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		index:   index,
		entries: entries,
		logger:  logger,
	}
}

// Resolve returns the links of the word at ref given its full entry e.
func (r *Resolver) Resolve(ctx context.Context, ref idx.Reference, e *dict.Entry) (Links, error) {
	n, err := r.index.Adjacent(ctx, ref.ID)
	if err != nil {
		return Links{}, fmt.Errorf("resolving %s: %w", ref, err)
	}
	return resolve(ref, e, n), nil
}

// Load loads the page of the word at ref. A missing entry word is not an
// error; see [Page.Err].
func (r *Resolver) Load(ctx context.Context, ref idx.Reference) (*Page, error) {
	var (
		e *dict.Entry
		n idx.Neighbors
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		e, err = r.entries.Fetch(gctx, ref.ID)
		return err
	})
	g.Go(func() error {
		var err error
		n, err = r.index.Adjacent(gctx, ref.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading %s: %w", ref, err)
	}

	p := &Page{
		Ref:   ref,
		Entry: e,
		Links: resolve(ref, e, n),
	}
	p.Word, p.err = e.Word(ref.Index())
	if p.err != nil {
		r.logger.InfoContext(ctx, "word not found", "ref", ref.String())
	}
	return p, nil
}

func resolve(ref idx.Reference, e *dict.Entry, n idx.Neighbors) Links {
	var links Links
	seq := ref.Index()
	last := len(e.Words) - 1

	// A sequence past the end of the entry links back to its last word.
	switch {
	case seq > 0 && last >= 0:
		prev := min(seq-1, last)
		links.Previous = wordLink(ref.ID, prev, e)
	case n.Previous != nil:
		links.Previous = entryLink(n.Previous, len(n.Previous.Words)-1)
	}

	switch {
	case seq < last:
		links.Next = wordLink(ref.ID, seq+1, e)
	case n.Next != nil:
		links.Next = entryLink(n.Next, 0)
	}
	return links
}

// wordLink links to the word at seq of the entry e with the given id.
func wordLink(id string, seq int, e *dict.Entry) *Link {
	l := &Link{Ref: idx.Reference{ID: id}}
	if len(e.Words) > 1 {
		l.Ref.Sequence = seq
		l.Ref.Qualified = true
	}
	if w := e.Words[seq]; w != nil {
		l.WordSummary = w.WordSummary
	}
	return l
}

func entryLink(e *idx.Entry, seq int) *Link {
	if seq < 0 || seq >= len(e.Words) {
		return nil
	}
	return &Link{
		Ref:         e.Ref(seq),
		WordSummary: e.Words[seq],
	}
}

// Random returns a random word. If rnd is nil the global random source is
// used.
func Random(ctx context.Context, index Index, rnd *rand.Rand) (*Link, error) {
	intN := rand.IntN
	if rnd != nil {
		intN = rnd.IntN
	}

	count, err := index.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("picking random word: %w", err)
	}
	if count == 0 {
		return nil, ErrEmpty
	}

	e, err := index.EntryAt(ctx, intN(count))
	if err != nil {
		return nil, fmt.Errorf("picking random word: %w", err)
	}
	if e == nil || len(e.Words) == 0 {
		return nil, ErrEmpty
	}
	return entryLink(e, intN(len(e.Words))), nil
}
