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
	"context"
	"fmt"
	"sync"

	"github.com/ianlewis/go-langetude/source"
)

// Fetcher is an in-memory [source.Fetcher]. Documents can be gated so that
// fetches block until the test releases them.
type Fetcher struct {
	mu    sync.Mutex
	docs  map[string][]byte
	errs  map[string]error
	gates map[string]chan struct{}
	calls map[string]int
}

// NewFetcher returns an empty Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		docs:  map[string][]byte{},
		errs:  map[string]error{},
		gates: map[string]chan struct{}{},
		calls: map[string]int{},
	}
}

// Set stores a document.
func (f *Fetcher) Set(name string, b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[name] = b
}

// Fail makes fetches of the named document return err.
func (f *Fetcher) Fail(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

// Gate blocks fetches of the named document until the returned function is
// called.
func (f *Fetcher) Gate(name string) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[name] = ch
	var once sync.Once
	return func() {
		once.Do(func() { close(ch) })
	}
}

// Calls returns the number of times the named document was fetched.
func (f *Fetcher) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// Fetch implements [source.Fetcher.Fetch].
func (f *Fetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	f.calls[name]++
	gate := f.gates[name]
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	b, ok := f.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", source.ErrNotFound, name)
	}
	return b, nil
}
