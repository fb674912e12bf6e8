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
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultHTTPTimeout is the timeout of the client used when none is given.
const DefaultHTTPTimeout = 30 * time.Second

// StatusError is returned when a document request does not succeed.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d %s",
		e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is reports whether a 404 status matches ErrNotFound.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// HTTP fetches documents relative to a base URL.
type HTTP struct {
	base   *url.URL
	client *http.Client
	logger *slog.Logger
}

// NewHTTP returns a new HTTP fetcher. If client is nil a client with
// DefaultHTTPTimeout is used.
func NewHTTP(base string, client *http.Client, opts *Options) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing source url: %w", err)
	}
	// Documents are resolved relative to the base so it must look like a
	// directory.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTP{
		base:   u,
		client: client,
		logger: opts.logger(),
	}, nil
}

// Fetch implements [Fetcher.Fetch]. Any status other than 200 OK is a
// *StatusError.
func (h *HTTP) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	u := h.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.logger.DebugContext(ctx, "document request failed",
			"source", "http",
			"url", u.String(),
			"status", resp.StatusCode,
		)
		return nil, &StatusError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}

	h.logger.DebugContext(ctx, "fetched document",
		"source", "http",
		"url", u.String(),
		"bytes", len(b),
	)
	return b, nil
}
