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

// Package search implements an incremental search session: a search box
// that debounces input, queries the index, and lets the user pick a
// candidate with the keyboard.
//
// Every input and every reset takes a new request token. Timers and queries
// capture the token when they start and only apply their result if the
// token is still current when they finish, so only the most recent input's
// results are ever shown, whatever order the queries complete in.
package search

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ianlewis/go-langetude/idx"
)

const (
	// DefaultDelay is how long input must stay unchanged before a query is
	// issued.
	DefaultDelay = 500 * time.Millisecond

	// DefaultResetDelay is how long after losing focus the candidate list
	// is cleared. It leaves time for a click on a candidate, which blurs the
	// input, to commit.
	DefaultResetDelay = time.Second

	// DefaultLimit is the maximum number of candidate words.
	DefaultLimit = 8
)

// Searcher queries the index. [idx.Store] implements Searcher.
type Searcher interface {
	Search(ctx context.Context, term string, wordBudget int) ([]*idx.Entry, error)
}

// State is the state of a Session.
type State int

const (
	// Idle means no candidates are shown and no query is outstanding.
	Idle State = iota

	// Pending means a query is outstanding and no candidates are shown.
	Pending

	// Populated means candidates are shown.
	Populated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// Candidate is a word offered for selection.
type Candidate struct {
	// Ref is the reference committed when the candidate is selected.
	Ref idx.Reference

	idx.WordSummary
}

// Snapshot is a copy of a Session's state.
type Snapshot struct {
	// Version increases with every change. Hosts receiving snapshots from
	// OnChange can drop any snapshot older than one already applied.
	Version uint64

	State State

	// Text is the latest input text.
	Text string

	Candidates []Candidate

	// Highlight is the index of the highlighted candidate or -1.
	Highlight int

	Focused bool
}

// Options are options for a Session. Zero values select the defaults.
type Options struct {
	// Delay is the input debounce delay.
	Delay time.Duration

	// ResetDelay is the delay between losing focus and clearing the
	// candidates.
	ResetDelay time.Duration

	// Limit is the maximum number of candidate words. It is also the word
	// budget passed to the Searcher.
	Limit int

	// OnCommit is called with the committed candidate's reference after the
	// session has been reset.
	OnCommit func(idx.Reference)

	// OnChange is called with a snapshot after every state change. It is
	// called without holding the session's lock, possibly from another
	// goroutine, so snapshots may arrive out of order; see
	// [Snapshot.Version].
	OnChange func(Snapshot)

	// Logger receives the session's logs. A nil Logger discards logs.
	Logger *slog.Logger

	// After is used in place of [time.After].
	After func(time.Duration) <-chan time.Time
}

// Session is a single search box interaction. A Session is safe for
// concurrent use.
type Session struct {
	searcher   Searcher
	delay      time.Duration
	resetDelay time.Duration
	limit      int
	onCommit   func(idx.Reference)
	onChange   func(Snapshot)
	logger     *slog.Logger
	after      func(time.Duration) <-chan time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu sync.Mutex

	// token identifies the current request. Results captured under any
	// other token are stale.
	token uint64

	version    uint64
	closed     bool
	text       string
	pending    bool
	candidates []Candidate
	highlight  int
	focused    bool
}

// New returns a new idle Session querying s. The Session should be closed
// with Close.
func New(s Searcher, opts *Options) *Session {
	if opts == nil {
		opts = &Options{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	session := &Session{
		searcher:   s,
		delay:      opts.Delay,
		resetDelay: opts.ResetDelay,
		limit:      opts.Limit,
		onCommit:   opts.OnCommit,
		onChange:   opts.OnChange,
		logger:     opts.Logger,
		after:      opts.After,
		ctx:        ctx,
		cancel:     cancel,
		highlight:  -1,
		focused:    true,
	}
	if session.delay <= 0 {
		session.delay = DefaultDelay
	}
	if session.resetDelay <= 0 {
		session.resetDelay = DefaultResetDelay
	}
	if session.limit <= 0 {
		session.limit = DefaultLimit
	}
	if session.logger == nil {
		session.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if session.after == nil {
		session.after = time.After
	}
	return session
}

// Input records new input text. A query for text is issued once the debounce
// delay elapses without further input. Empty text clears the candidates
// instead.
func (s *Session) Input(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.token++
	token := s.token
	s.text = text
	s.pending = true
	timer := s.after(s.delay)
	snap := s.changedLocked()
	s.wg.Add(1)
	s.mu.Unlock()

	s.notify(snap)
	go func() {
		defer s.wg.Done()
		s.debounce(token, text, timer)
	}()
}

func (s *Session) debounce(token uint64, text string, timer <-chan time.Time) {
	select {
	case <-timer:
	case <-s.ctx.Done():
		return
	}

	if text == "" {
		s.apply(token, text, nil, nil)
		return
	}

	s.mu.Lock()
	current := token == s.token
	s.mu.Unlock()
	if !current {
		s.logger.Debug("input superseded", "text", text)
		return
	}

	entries, err := s.searcher.Search(s.ctx, text, s.limit)
	s.apply(token, text, entries, err)
}

// apply applies a query result if token is still current.
func (s *Session) apply(token uint64, text string, entries []*idx.Entry, err error) {
	s.mu.Lock()
	if token != s.token {
		s.mu.Unlock()
		s.logger.Debug("discarding stale result", "text", text)
		return
	}

	s.pending = false
	switch {
	case err != nil:
		// Failed queries look the same as queries without results.
		s.logger.Warn("search failed", "text", text, "err", err)
		s.clearLocked()
	case len(entries) == 0:
		s.clearLocked()
	default:
		s.candidates = flatten(entries, s.limit)
		s.highlight = -1
	}
	s.logger.Debug("search applied", "text", text, "candidates", len(s.candidates))
	snap := s.changedLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// flatten returns one candidate per word, up to limit candidates.
func flatten(entries []*idx.Entry, limit int) []Candidate {
	var candidates []Candidate
	for _, e := range entries {
		for n, w := range e.Words {
			if len(candidates) >= limit {
				return candidates
			}
			candidates = append(candidates, Candidate{
				Ref:         e.Ref(n),
				WordSummary: w,
			})
		}
	}
	return candidates
}

// Key handles a key press. Keys only act while candidates are shown.
// ArrowDown and ArrowUp move the highlight circularly and Enter commits the
// highlighted candidate. Escape clears the candidates but leaves a query for
// newer input outstanding. Key reports
// whether the host should suppress the key's default action.
func (s *Session) Key(k Key) bool {
	s.mu.Lock()
	if len(s.candidates) == 0 {
		s.mu.Unlock()
		return k == KeyDown || k == KeyUp
	}

	switch k {
	case KeyDown:
		if s.highlight < 0 || s.highlight >= len(s.candidates)-1 {
			s.highlight = 0
		} else {
			s.highlight++
		}
		snap := s.changedLocked()
		s.mu.Unlock()
		s.notify(snap)
		return true

	case KeyUp:
		if s.highlight <= 0 {
			s.highlight = len(s.candidates) - 1
		} else {
			s.highlight--
		}
		snap := s.changedLocked()
		s.mu.Unlock()
		s.notify(snap)
		return true

	case KeyEnter:
		if s.highlight < 0 {
			s.mu.Unlock()
			return false
		}
		c := s.candidates[s.highlight]
		s.mu.Unlock()
		s.Commit(c)
		return true

	case KeyEscape:
		// Input typed after the shown candidates is still queried.
		s.clearLocked()
		snap := s.changedLocked()
		s.mu.Unlock()
		s.notify(snap)
		return false
	}

	s.mu.Unlock()
	return false
}

// Blur records that the input lost focus. The candidates are cleared after
// the reset delay unless Focus is called before it elapses.
func (s *Session) Blur() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.focused = false
	timer := s.after(s.resetDelay)
	snap := s.changedLocked()
	s.wg.Add(1)
	s.mu.Unlock()

	s.notify(snap)
	go func() {
		defer s.wg.Done()
		select {
		case <-timer:
		case <-s.ctx.Done():
			return
		}

		s.mu.Lock()
		if s.focused {
			s.mu.Unlock()
			return
		}
		s.resetLocked()
		snap := s.changedLocked()
		s.mu.Unlock()
		s.notify(snap)
	}()
}

// Focus records that the input regained focus.
func (s *Session) Focus() {
	s.mu.Lock()
	s.focused = true
	snap := s.changedLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Reset clears the candidates and highlight and discards any outstanding
// query. The input text is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	s.resetLocked()
	snap := s.changedLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Commit selects c: the input text and all state are cleared and OnCommit is
// called with c's reference.
func (s *Session) Commit(c Candidate) {
	s.mu.Lock()
	s.resetLocked()
	s.text = ""
	snap := s.changedLocked()
	s.mu.Unlock()

	s.logger.Debug("candidate committed", "ref", c.Ref.String())
	s.notify(snap)
	if s.onCommit != nil {
		s.onCommit(c.Ref)
	}
}

// Snapshot returns a copy of the session's state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Wait blocks until every outstanding timer and query has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close stops all outstanding timers and queries and waits for them to
// return. Input and Blur are ignored after Close.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

// resetLocked clears the candidates and supersedes any outstanding query.
func (s *Session) resetLocked() {
	s.token++
	s.pending = false
	s.clearLocked()
}

func (s *Session) clearLocked() {
	s.candidates = nil
	s.highlight = -1
}

func (s *Session) changedLocked() Snapshot {
	s.version++
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	state := Idle
	switch {
	case len(s.candidates) > 0:
		state = Populated
	case s.pending:
		state = Pending
	}
	var candidates []Candidate
	if s.candidates != nil {
		candidates = make([]Candidate, len(s.candidates))
		copy(candidates, s.candidates)
	}
	return Snapshot{
		Version:    s.version,
		State:      state,
		Text:       s.text,
		Candidates: candidates,
		Highlight:  s.highlight,
		Focused:    s.focused,
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}
