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

// Package dict implements loading of full dictionary entries.
//
// A full entry document holds the headword and every word of the entry. Each
// word carries the same language, class and display keys as the index plus
// any number of language-specific fields:
//
//	{ "d": "lever",
//	  "w": [
//	    { "l": "fr", "c": "v", "d": "lever",
//	      "indPr": [ ["je", ["l", "è", "ve"]], ... ] }
//	  ] }
package dict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/source"
)

var (
	// ErrUnavailable indicates that an entry could not be fetched.
	ErrUnavailable = errors.New("entry unavailable")

	// ErrNotFound indicates that an entry or word does not exist.
	ErrNotFound = errors.New("word not found")
)

// summaryKeys are the keys decoded into the word's summary.
var summaryKeys = []string{"l", "c", "d"}

// Word is a word with its full, language-specific data.
type Word struct {
	idx.WordSummary

	// Detail holds the language-specific fields keyed by their JSON name.
	Detail map[string]json.RawMessage
}

// UnmarshalJSON implements [json.Unmarshaler].
func (w *Word) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return fmt.Errorf("parsing word: %w", err)
	}

	var summary idx.WordSummary
	if err := json.Unmarshal(b, &summary); err != nil {
		return fmt.Errorf("parsing word: %w", err)
	}
	for _, k := range summaryKeys {
		delete(fields, k)
	}
	if len(fields) == 0 {
		fields = nil
	}

	*w = Word{
		WordSummary: summary,
		Detail:      fields,
	}
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (w Word) MarshalJSON() ([]byte, error) {
	fields := make(map[string]any, len(w.Detail)+len(summaryKeys))
	for k, v := range w.Detail {
		fields[k] = v
	}
	fields["l"] = w.Language
	fields["c"] = w.Class
	fields["d"] = w.Display
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding word: %w", err)
	}
	return b, nil
}

// Decode decodes the named detail field into v. It returns false if the
// word has no such field.
func (w *Word) Decode(key string, v any) (bool, error) {
	raw, ok := w.Detail[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

// Entry is a full dictionary entry.
type Entry struct {
	// Headword is the entry's dictionary form.
	Headword string `json:"d"`

	// Words are the entry's words in the same order as in the index.
	Words []*Word `json:"w"`
}

// Word returns the word at seq or an error wrapping ErrNotFound.
func (e *Entry) Word(seq int) (*Word, error) {
	if seq < 0 || seq >= len(e.Words) || e.Words[seq] == nil {
		return nil, fmt.Errorf("%w: %q #%d", ErrNotFound, e.Headword, seq)
	}
	return e.Words[seq], nil
}

// Options are options for a Loader.
type Options struct {
	// Logger receives the Loader's logs. A nil Logger discards logs.
	Logger *slog.Logger
}

// Loader fetches full entries. Entries are not cached; every call to Fetch
// fetches the entry document again.
type Loader struct {
	fetcher source.Fetcher
	logger  *slog.Logger
}

// NewLoader returns a new Loader reading entries from f.
func NewLoader(f source.Fetcher, opts *Options) *Loader {
	var logger *slog.Logger
	if opts != nil {
		logger = opts.Logger
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		fetcher: f,
		logger:  logger,
	}
}

// Fetch fetches the full entry with the given id. An unknown id returns an
// error wrapping ErrNotFound. Other failures wrap ErrUnavailable.
func (l *Loader) Fetch(ctx context.Context, id string) (*Entry, error) {
	b, err := l.fetcher.Fetch(ctx, source.EntryName(id))
	if errors.Is(err, source.ErrNotFound) {
		l.logger.InfoContext(ctx, "entry not found", "id", id)
		return nil, fmt.Errorf("%w: entry %q: %w", ErrNotFound, id, err)
	}
	if err != nil {
		l.logger.WarnContext(ctx, "fetching entry", "id", id, "err", err)
		return nil, fmt.Errorf("%w: fetching entry %q: %w", ErrUnavailable, id, err)
	}

	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("%w: parsing entry %q: %w", ErrUnavailable, id, err)
	}

	l.logger.DebugContext(ctx, "entry loaded", "id", id, "words", len(e.Words))
	return &e, nil
}
