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

package langetude

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"golang.org/x/text/transform"

	"github.com/ianlewis/go-langetude/dict"
	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/nav"
	"github.com/ianlewis/go-langetude/search"
	"github.com/ianlewis/go-langetude/source"
)

// Options are options for opening a dictionary.
type Options struct {
	// Folder folds headwords and search terms before matching. A nil Folder
	// matches terms literally.
	Folder func() transform.Transformer

	// HTTPClient is used for URL locations.
	HTTPClient *http.Client

	// Logger receives the dictionary's logs. A nil Logger discards logs.
	Logger *slog.Logger
}

// Dictionary is a Langétude dictionary.
type Dictionary struct {
	fetcher  source.Fetcher
	index    *idx.Store
	entries  *dict.Loader
	resolver *nav.Resolver
	logger   *slog.Logger
}

// Open opens the dictionary at location: a directory, a SQLite bundle or a
// URL. Nothing is read until the dictionary is first used.
func Open(location string, opts *Options) (*Dictionary, error) {
	if opts == nil {
		opts = &Options{}
	}
	f, err := source.Open(location, &source.Options{
		Logger:     opts.Logger,
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", location, err)
	}
	return New(f, opts), nil
}

// New returns a dictionary reading documents from f.
func New(f source.Fetcher, opts *Options) *Dictionary {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index := idx.New(f, &idx.Options{
		Folder: opts.Folder,
		Logger: logger,
	})
	entries := dict.NewLoader(f, &dict.Options{Logger: logger})
	return &Dictionary{
		fetcher:  f,
		index:    index,
		entries:  entries,
		resolver: nav.NewResolver(index, entries, &nav.Options{Logger: logger}),
		logger:   logger,
	}
}

// Index returns the dictionary's index.
func (d *Dictionary) Index() *idx.Store {
	return d.index
}

// Entries returns the dictionary's entry loader.
func (d *Dictionary) Entries() *dict.Loader {
	return d.entries
}

// Resolver returns the dictionary's word page resolver.
func (d *Dictionary) Resolver() *nav.Resolver {
	return d.resolver
}

// Search returns up to limit words of the entries whose headword contains
// term, in dictionary order.
func (d *Dictionary) Search(ctx context.Context, term string, limit int) ([]*nav.Link, error) {
	entries, err := d.index.Search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	var links []*nav.Link
	for _, e := range entries {
		for seq, w := range e.Words {
			if len(links) >= limit {
				return links, nil
			}
			links = append(links, &nav.Link{Ref: e.Ref(seq), WordSummary: w})
		}
	}
	return links, nil
}

// Page loads the page of the word at ref.
func (d *Dictionary) Page(ctx context.Context, ref idx.Reference) (*nav.Page, error) {
	return d.resolver.Load(ctx, ref)
}

// Random returns a random word.
func (d *Dictionary) Random(ctx context.Context, rnd *rand.Rand) (*nav.Link, error) {
	return nav.Random(ctx, d.index, rnd)
}

// NewSession returns a new search session over the dictionary's index. The
// session should be closed with Close.
func (d *Dictionary) NewSession(opts *search.Options) *search.Session {
	if opts == nil {
		opts = &search.Options{}
	}
	if opts.Logger == nil {
		o := *opts
		o.Logger = d.logger
		opts = &o
	}
	return search.New(d.index, opts)
}

// Close closes the dictionary's document source if it holds resources.
func (d *Dictionary) Close() error {
	if c, ok := d.fetcher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing source: %w", err)
		}
	}
	return nil
}
