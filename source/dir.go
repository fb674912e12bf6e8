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

package source

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"
)

// compressedExts are the extensions probed, in order, after the plain
// document name.
var compressedExts = []string{
	"",
	".gz",
	".GZ",
	".dz",
	".DZ",
}

// Dir fetches documents from a directory on disk. Documents may be stored
// as plain JSON, gzip compressed (.json.gz) or dictzip compressed
// (.json.dz).
type Dir struct {
	root   string
	logger *slog.Logger
}

// NewDir returns a new Dir rooted at the given path.
func NewDir(root string, opts *Options) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("opening source directory: %q is not a directory", root)
	}
	return &Dir{
		root:   root,
		logger: opts.logger(),
	}, nil
}

// Fetch implements [Fetcher.Fetch].
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	local := filepath.FromSlash(name)
	if !filepath.IsLocal(local) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	f, err := d.open(local)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := readDocument(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", f.Name(), err)
	}

	d.logger.DebugContext(ctx, "fetched document",
		"source", "dir",
		"name", name,
		"path", f.Name(),
		"bytes", len(b),
	)
	return b, nil
}

// Names returns the names of all documents stored in the directory, with
// compression extensions removed.
func (d *Dir) Names() ([]string, error) {
	var names []string
	seen := map[string]bool{}
	err := filepath.WalkDir(d.root, func(p string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		name := documentName(filepath.ToSlash(rel))
		if name == "" || seen[name] {
			return nil
		}
		seen[name] = true
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %q: %w", d.root, err)
	}
	return names, nil
}

// open opens the first existing variant of the document.
func (d *Dir) open(local string) (*os.File, error) {
	base := filepath.Join(d.root, local)
	for _, ext := range compressedExts {
		f, err := os.Open(base + ext)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening %q: %w", base+ext, err)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, local)
}

// readDocument reads the full document, decompressing it based on the file
// extension.
func readDocument(f *os.File) ([]byte, error) {
	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".gz":
		z, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer z.Close()
		r = z
	case ".dz":
		z, err := dictzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating dictzip reader: %w", err)
		}
		defer z.Close()
		r = z
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return b, nil
}

// documentName returns the document name for a file path relative to the
// root or an empty string if the file is not a document.
func documentName(rel string) string {
	name := rel
	for _, ext := range compressedExts[1:] {
		if strings.HasSuffix(name, ext) {
			name = strings.TrimSuffix(name, ext)
			break
		}
	}
	if !strings.HasSuffix(name, ".json") {
		return ""
	}
	if name == IndexName || strings.HasPrefix(name, "words/") {
		return name
	}
	return ""
}
