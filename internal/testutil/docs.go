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

package testutil

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-langetude/dict"
	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/source"
)

// Compression is the compression applied to a written document.
type Compression int

const (
	// None writes plain .json files.
	None Compression = iota

	// Gzip writes .json.gz files.
	Gzip

	// DictZip writes .json.dz files.
	DictZip
)

// Ext returns the file extension appended to the document name.
func (c Compression) Ext() string {
	switch c {
	case Gzip:
		return ".gz"
	case DictZip:
		return ".dz"
	default:
		return ""
	}
}

// MakeIndex returns an index document for the given entries.
func MakeIndex(t *testing.T, entries []*idx.Entry) []byte {
	t.Helper()

	if entries == nil {
		entries = []*idx.Entry{}
	}
	b, err := json.Marshal(map[string]any{"w": entries})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// MakeEntry returns an entry document.
func MakeEntry(t *testing.T, e *dict.Entry) []byte {
	t.Helper()

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// MakeDataDir creates a temporary data directory containing the index and
// one document per full entry, keyed by entry id.
func MakeDataDir(t *testing.T, entries []*idx.Entry, full map[string]*dict.Entry, c Compression) string {
	t.Helper()

	dir := t.TempDir()
	WriteDocument(t, dir, source.IndexName, MakeIndex(t, entries), c)
	for id, e := range full {
		WriteDocument(t, dir, source.EntryName(id), MakeEntry(t, e), c)
	}
	return dir
}

// WriteDocument writes a document under dir with the given compression.
func WriteDocument(t *testing.T, dir, name string, b []byte, c Compression) {
	t.Helper()

	p := filepath.Join(dir, filepath.FromSlash(name)) + c.Ext()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}

	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	switch c {
	case Gzip:
		z := gzip.NewWriter(f)
		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	case DictZip:
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		if err := z.Close(); err != nil {
			t.Fatal(err)
		}
	default:
		if _, err := f.Write(b); err != nil {
			t.Fatal(err)
		}
	}
}
