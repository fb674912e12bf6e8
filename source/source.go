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

// Package source implements retrieval of the dictionary's JSON documents.
//
// A dictionary is made up of two kinds of documents:
//  1. The index document, index.json, that lists every entry with a short
//     summary of each of its words.
//  2. One entry document per entry, words/<id>.json, that holds the full
//     word data (e.g. conjugation tables).
//
// Documents may be served from a directory on disk, over HTTP, or from a
// packed SQLite bundle.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// IndexName is the name of the index document.
const IndexName = "index.json"

// ErrNotFound indicates that the requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Fetcher retrieves named documents.
type Fetcher interface {
	// Fetch returns the contents of the named document.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// EntryName returns the document name for the entry with the given id.
func EntryName(id string) string {
	return path.Join("words", id+".json")
}

// Options are options shared by all fetchers.
type Options struct {
	// Logger receives debug logs for every fetched document. A nil Logger
	// discards logs.
	Logger *slog.Logger

	// HTTPClient is the client used by [Open] for URL locations. A nil
	// HTTPClient uses a client with DefaultHTTPTimeout.
	HTTPClient *http.Client
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// Open returns a Fetcher for the given location. URLs starting with http://
// or https:// are fetched over HTTP, files with a .db, .sqlite or .sqlite3
// extension are opened as SQLite bundles, and any other location is treated
// as a directory. The returned Fetcher should be closed if it implements
// io.Closer.
func Open(location string, opts *Options) (Fetcher, error) {
	lower := strings.ToLower(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("%w: empty source location", ErrNotFound)
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		var client *http.Client
		if opts != nil {
			client = opts.HTTPClient
		}
		return NewHTTP(location, client, opts)
	case strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"),
		strings.HasSuffix(lower, ".sqlite3"):
		return OpenSQLite(location, opts)
	default:
		return NewDir(location, opts)
	}
}
