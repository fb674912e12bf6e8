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

package idx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/transform"

	"github.com/ianlewis/go-langetude/internal/index"
	"github.com/ianlewis/go-langetude/source"
)

var (
	// ErrUnavailable indicates that the index could not be loaded. Nothing
	// can be looked up without the index.
	ErrUnavailable = errors.New("index unavailable")

	errNoWords = errors.New("entry has no words")
)

// Options are options for a Store.
type Options struct {
	// Folder returns a [transform.Transformer] that performs folding (e.g.
	// case folding, whitespace folding, etc.) on headwords and search terms.
	// A nil Folder matches terms literally.
	Folder func() transform.Transformer

	// Logger receives the Store's logs. A nil Logger discards logs.
	Logger *slog.Logger
}

// DefaultOptions is the default options for a Store.
var DefaultOptions = &Options{}

// document is the index document.
type document struct {
	Entries []*Entry `json:"w"`
}

// position is an entry's position in the index keyed by entry id.
type position struct {
	id  string
	pos int
}

func (p position) String() string {
	return p.id
}

// loaded is the immutable, loaded index.
type loaded struct {
	entries []*Entry

	// headwords are the folded headwords, parallel to entries.
	headwords []string

	ids *index.Index[position]
}

// Store lazily loads the index and answers positional, adjacency and
// substring queries against it.
type Store struct {
	fetcher source.Fetcher
	folder  func() transform.Transformer
	logger  *slog.Logger

	group singleflight.Group
	index atomic.Pointer[loaded]
}

// New returns a new Store reading the index from f. The index is not
// fetched until first needed.
func New(f source.Fetcher, opts *Options) *Store {
	if opts == nil {
		opts = DefaultOptions
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		fetcher: f,
		folder:  opts.Folder,
		logger:  logger,
	}
}

// Load fetches the index if it has not been loaded yet. Concurrent callers
// share a single fetch. Once loaded the index is cached for the lifetime of
// the Store. A failed fetch returns an error wrapping ErrUnavailable and is
// not cached.
func (s *Store) Load(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

func (s *Store) load(ctx context.Context) (*loaded, error) {
	if l := s.index.Load(); l != nil {
		return l, nil
	}

	ch := s.group.DoChan("index", func() (any, error) {
		// A fetch that finished between the check above and this call has
		// already stored the index.
		if l := s.index.Load(); l != nil {
			return l, nil
		}
		// The fetch is shared so one caller giving up must not cancel it
		// for the others.
		l, err := s.fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.index.Store(l)
		return l, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*loaded), nil
	}
}

func (s *Store) fetch(ctx context.Context) (*loaded, error) {
	s.logger.DebugContext(ctx, "fetching index")

	b, err := s.fetcher.Fetch(ctx, source.IndexName)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetching index", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing index: %w", ErrUnavailable, err)
	}

	l := &loaded{
		entries:   doc.Entries,
		headwords: make([]string, len(doc.Entries)),
	}
	positions := make([]position, len(doc.Entries))
	words := 0
	for i, e := range doc.Entries {
		if e == nil || len(e.Words) == 0 {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrUnavailable, i, errNoWords)
		}
		headword, err := s.fold(e.Headword)
		if err != nil {
			return nil, fmt.Errorf("%w: folding headword %q: %w", ErrUnavailable, e.Headword, err)
		}
		l.headwords[i] = headword
		positions[i] = position{id: e.ID, pos: i}
		words += len(e.Words)
	}
	l.ids = index.NewIndex(positions, strings.Compare)

	s.logger.InfoContext(ctx, "index loaded",
		"entries", len(l.entries),
		"words", words,
		"bytes", len(b),
	)
	return l, nil
}

func (s *Store) fold(text string) (string, error) {
	if s.folder == nil {
		return text, nil
	}
	folded, _, err := transform.String(s.folder(), text)
	if err != nil {
		return "", fmt.Errorf("folding %q: %w", text, err)
	}
	return folded, nil
}

// Count returns the number of entries in the index, loading it if needed.
func (s *Store) Count(ctx context.Context) (int, error) {
	l, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(l.entries), nil
}

// EntryAt returns the entry at position pos modulo the number of entries,
// so that EntryAt(n) and EntryAt(n+Count()) are the same entry for every n.
// It returns a nil entry if the index is empty.
func (s *Store) EntryAt(ctx context.Context, pos int) (*Entry, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	n := len(l.entries)
	if n == 0 {
		return nil, nil
	}
	return l.entries[((pos%n)+n)%n], nil
}

// Search returns the entries, in index order, whose headword contains term.
// Entries are accumulated until their total number of words reaches
// wordBudget. The entry crossing the budget is included in full so the
// total may exceed the budget. Fewer words are returned only if there are
// not enough matches.
//
// Matching is a literal, case-sensitive substring test unless a Folder was
// configured. An empty term matches every entry.
func (s *Store) Search(ctx context.Context, term string, wordBudget int) ([]*Entry, error) {
	l, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	folded, err := s.fold(term)
	if err != nil {
		return nil, err
	}

	var result []*Entry
	count := 0
	for i, e := range l.entries {
		if !strings.Contains(l.headwords[i], folded) {
			continue
		}
		result = append(result, e)
		count += len(e.Words)
		if count >= wordBudget {
			break
		}
	}
	return result, nil
}

// Neighbors are the entries immediately before and after an entry in index
// order. Either may be nil.
type Neighbors struct {
	Previous *Entry
	Next     *Entry
}

// Adjacent returns the neighbors of the entry with the given id. Both
// neighbors are nil if no entry has that id. If several entries share the
// id, the first one in index order is used.
func (s *Store) Adjacent(ctx context.Context, id string) (Neighbors, error) {
	l, err := s.load(ctx)
	if err != nil {
		return Neighbors{}, err
	}

	p, ok := l.ids.First(id)
	if !ok {
		return Neighbors{}, nil
	}

	var n Neighbors
	if p.pos > 0 {
		n.Previous = l.entries[p.pos-1]
	}
	if p.pos+1 < len(l.entries) {
		n.Next = l.entries[p.pos+1]
	}
	return n, nil
}
