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

package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/internal/testutil"
	"github.com/ianlewis/go-langetude/search"
)

var errBroken = errors.New("broken")

// searcher wraps a Store, recording queries and optionally holding them
// until released.
type searcher struct {
	store   *idx.Store
	started chan string

	mu    sync.Mutex
	terms []string
	gates map[string]chan struct{}
	err   error
}

func newSearcher(t *testing.T, entries []*idx.Entry) *searcher {
	t.Helper()

	return &searcher{
		store:   idx.New(testutil.NewDictionary(t, entries), nil),
		started: make(chan string, 16),
		gates:   map[string]chan struct{}{},
	}
}

// gate holds queries for term until the returned function is called.
func (s *searcher) gate(term string) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.gates[term] = ch
	return func() { close(ch) }
}

func (s *searcher) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *searcher) queried() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

func (s *searcher) Search(ctx context.Context, term string, wordBudget int) ([]*idx.Entry, error) {
	s.mu.Lock()
	s.terms = append(s.terms, term)
	gate := s.gates[term]
	err := s.err
	s.mu.Unlock()

	s.started <- term
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, term, wordBudget)
}

func newSession(t *testing.T, s search.Searcher, opts *search.Options) (*search.Session, *testutil.Clock) {
	t.Helper()

	if opts == nil {
		opts = &search.Options{}
	}
	clock := testutil.NewClock()
	opts.After = clock.After
	session := search.New(s, opts)
	t.Cleanup(session.Close)
	return session, clock
}

// populate enters text and lets its query finish.
func populate(session *search.Session, clock *testutil.Clock, text string) {
	session.Input(text)
	clock.Advance(search.DefaultDelay)
	session.Wait()
}

func candidate(id string, seq int, qualified bool, display string) search.Candidate {
	return search.Candidate{
		Ref:         idx.Reference{ID: id, Sequence: seq, Qualified: qualified},
		WordSummary: testutil.Verb(display),
	}
}

var leverCandidates = []search.Candidate{
	candidate("b", 0, true, "lever"),
	candidate("b", 1, true, "se lever"),
	candidate("c", 0, false, "élever"),
	candidate("d", 0, true, "relever"),
	candidate("d", 1, true, "se relever"),
	candidate("d", 2, true, "relever de"),
}

func TestSession_Input(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	session, clock := newSession(t, s, nil)

	session.Input("lever")
	if want, got := search.Pending, session.Snapshot().State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}

	clock.Advance(search.DefaultDelay)
	session.Wait()

	snap := session.Snapshot()
	if want, got := search.Populated, snap.State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
	if diff := cmp.Diff(leverCandidates, snap.Candidates); diff != "" {
		t.Fatalf("Candidates (-want, +got):\n%s", diff)
	}
	if want, got := -1, snap.Highlight; want != got {
		t.Fatalf("Highlight: want %d, got %d", want, got)
	}
}

func TestSession_Input_debounce(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	session, clock := newSession(t, s, nil)

	for _, text := range []string{"l", "le", "lever"} {
		session.Input(text)
		clock.Advance(100 * time.Millisecond)
	}
	clock.Advance(search.DefaultDelay)
	session.Wait()

	if diff := cmp.Diff([]string{"lever"}, s.queried()); diff != "" {
		t.Fatalf("queries (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(leverCandidates, session.Snapshot().Candidates); diff != "" {
		t.Fatalf("Candidates (-want, +got):\n%s", diff)
	}
}

// TestSession_Input_lateArrival tests that a slow query finishing after a
// newer one does not replace its results.
func TestSession_Input_lateArrival(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	snaps := make(chan search.Snapshot, 64)
	session, clock := newSession(t, s, &search.Options{
		OnChange: func(snap search.Snapshot) { snaps <- snap },
	})

	release := s.gate("le")
	session.Input("le")
	clock.Advance(search.DefaultDelay)
	if want, got := "le", <-s.started; want != got {
		t.Fatalf("started: want %q, got %q", want, got)
	}

	session.Input("lever")
	clock.Advance(search.DefaultDelay)
	timeout := time.After(10 * time.Second)
	for populated := false; !populated; {
		select {
		case snap := <-snaps:
			populated = snap.State == search.Populated
		case <-timeout:
			t.Fatal("timed out waiting for results")
		}
	}

	release()
	session.Wait()

	snap := session.Snapshot()
	if want, got := "lever", snap.Text; want != got {
		t.Fatalf("Text: want %q, got %q", want, got)
	}
	if diff := cmp.Diff(leverCandidates, snap.Candidates); diff != "" {
		t.Fatalf("Candidates (-want, +got):\n%s", diff)
	}
}

func TestSession_Input_empty(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	session, clock := newSession(t, s, nil)

	populate(session, clock, "lever")
	populate(session, clock, "")

	snap := session.Snapshot()
	if want, got := search.Idle, snap.State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
	if snap.Candidates != nil {
		t.Fatalf("Candidates: want nil, got %v", snap.Candidates)
	}
	if diff := cmp.Diff([]string{"lever"}, s.queried()); diff != "" {
		t.Fatalf("queries (-want, +got):\n%s", diff)
	}
}

func TestSession_Input_noResults(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	session, clock := newSession(t, s, nil)

	populate(session, clock, "lever")
	populate(session, clock, "xyz")

	if want, got := search.Idle, session.Snapshot().State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
}

// TestSession_Input_failureLooksLikeNoResults tests that a failed query
// leaves the session idle, the same as a query without results.
func TestSession_Input_failureLooksLikeNoResults(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	session, clock := newSession(t, s, nil)

	populate(session, clock, "lever")
	s.fail(errBroken)
	populate(session, clock, "leve")

	snap := session.Snapshot()
	if want, got := search.Idle, snap.State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
	if want, got := "leve", snap.Text; want != got {
		t.Fatalf("Text: want %q, got %q", want, got)
	}
}

func TestSession_Input_limit(t *testing.T) {
	t.Parallel()

	var entries []*idx.Entry
	for _, id := range []string{"p", "q", "r", "s"} {
		entries = append(entries, &idx.Entry{
			ID:       id,
			Headword: "mettre",
			Words:    []idx.WordSummary{testutil.Verb("mettre"), testutil.Verb("se mettre"), testutil.Verb("mettre à")},
		})
	}
	s := newSearcher(t, entries)
	session, clock := newSession(t, s, nil)

	populate(session, clock, "met")

	candidates := session.Snapshot().Candidates
	if want, got := search.DefaultLimit, len(candidates); want != got {
		t.Fatalf("Candidates: want %d, got %d", want, got)
	}
	if diff := cmp.Diff(candidate("r", 1, true, "se mettre"), candidates[len(candidates)-1]); diff != "" {
		t.Fatalf("last candidate (-want, +got):\n%s", diff)
	}
}

func TestSession_Key_highlight(t *testing.T) {
	t.Parallel()

	down, up := search.KeyDown, search.KeyUp
	tests := []struct {
		name     string
		keys     []search.Key
		expected int
	}{
		{
			name:     "down from none",
			keys:     []search.Key{down},
			expected: 0,
		},
		{
			name:     "down",
			keys:     []search.Key{down, down, down},
			expected: 2,
		},
		{
			name:     "down wraps",
			keys:     []search.Key{down, down, down, down, down, down, down},
			expected: 0,
		},
		{
			name:     "up from none",
			keys:     []search.Key{up},
			expected: 5,
		},
		{
			name:     "up from first",
			keys:     []search.Key{down, up},
			expected: 5,
		},
		{
			name:     "up",
			keys:     []search.Key{down, down, up},
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			session, clock := newSession(t, newSearcher(t, testutil.Entries()), nil)
			populate(session, clock, "lever")

			for _, k := range test.keys {
				if !session.Key(k) {
					t.Fatalf("Key(%v): want suppressed", k)
				}
			}
			if want, got := test.expected, session.Snapshot().Highlight; want != got {
				t.Fatalf("Highlight: want %d, got %d", want, got)
			}
		})
	}
}

func TestSession_Key_idle(t *testing.T) {
	t.Parallel()

	session, _ := newSession(t, newSearcher(t, testutil.Entries()), nil)
	before := session.Snapshot()

	tests := []struct {
		key      search.Key
		suppress bool
	}{
		{key: search.KeyDown, suppress: true},
		{key: search.KeyUp, suppress: true},
		{key: search.KeyEnter, suppress: false},
		{key: search.KeyEscape, suppress: false},
		{key: search.KeyOther, suppress: false},
	}
	for _, test := range tests {
		if want, got := test.suppress, session.Key(test.key); want != got {
			t.Fatalf("Key(%v): want %v, got %v", test.key, want, got)
		}
	}

	if diff := cmp.Diff(before, session.Snapshot()); diff != "" {
		t.Fatalf("Snapshot (-want, +got):\n%s", diff)
	}
}

func TestSession_Key_enter(t *testing.T) {
	t.Parallel()

	var committed []idx.Reference
	session, clock := newSession(t, newSearcher(t, testutil.Entries()), &search.Options{
		OnCommit: func(ref idx.Reference) { committed = append(committed, ref) },
	})
	populate(session, clock, "lever")

	if session.Key(search.KeyEnter) {
		t.Fatal("Key(Enter) without highlight: want not suppressed")
	}
	if committed != nil {
		t.Fatalf("committed: want none, got %v", committed)
	}

	session.Key(search.KeyDown)
	session.Key(search.KeyDown)
	if !session.Key(search.KeyEnter) {
		t.Fatal("Key(Enter): want suppressed")
	}

	expected := []idx.Reference{{ID: "b", Sequence: 1, Qualified: true}}
	if diff := cmp.Diff(expected, committed); diff != "" {
		t.Fatalf("committed (-want, +got):\n%s", diff)
	}

	snap := session.Snapshot()
	if want, got := search.Idle, snap.State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
	if want, got := "", snap.Text; want != got {
		t.Fatalf("Text: want %q, got %q", want, got)
	}
	if want, got := -1, snap.Highlight; want != got {
		t.Fatalf("Highlight: want %d, got %d", want, got)
	}
}

func TestSession_Key_escape(t *testing.T) {
	t.Parallel()

	session, clock := newSession(t, newSearcher(t, testutil.Entries()), nil)
	populate(session, clock, "lever")
	session.Key(search.KeyDown)

	if session.Key(search.KeyEscape) {
		t.Fatal("Key(Escape): want not suppressed")
	}

	snap := session.Snapshot()
	if want, got := search.Idle, snap.State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
	if want, got := "lever", snap.Text; want != got {
		t.Fatalf("Text: want %q, got %q", want, got)
	}
}

// TestSession_Key_escapeNewerInput tests that Escape clears the shown
// candidates without discarding a query for input typed after them.
func TestSession_Key_escapeNewerInput(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	session, clock := newSession(t, s, nil)
	populate(session, clock, "lever")

	session.Input("aller")
	session.Key(search.KeyEscape)

	snap := session.Snapshot()
	if want, got := search.Pending, snap.State; want != got {
		t.Fatalf("State after Escape: want %v, got %v", want, got)
	}
	if want, got := 0, len(snap.Candidates); want != got {
		t.Fatalf("Candidates after Escape: want %d, got %d", want, got)
	}

	clock.Advance(search.DefaultDelay)
	session.Wait()

	if diff := cmp.Diff([]string{"lever", "aller"}, s.queried()); diff != "" {
		t.Fatalf("queries (-want, +got):\n%s", diff)
	}
	snap = session.Snapshot()
	expected := []search.Candidate{candidate("a", 0, false, "aller")}
	if diff := cmp.Diff(expected, snap.Candidates); diff != "" {
		t.Fatalf("Candidates (-want, +got):\n%s", diff)
	}
	if want, got := "aller", snap.Text; want != got {
		t.Fatalf("Text: want %q, got %q", want, got)
	}
}

// TestSession_Key_escapePending tests that Escape does not cancel a query
// that has not produced candidates yet.
func TestSession_Key_escapePending(t *testing.T) {
	t.Parallel()

	session, clock := newSession(t, newSearcher(t, testutil.Entries()), nil)
	session.Input("lever")
	session.Key(search.KeyEscape)
	clock.Advance(search.DefaultDelay)
	session.Wait()

	if want, got := search.Populated, session.Snapshot().State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
}

func TestSession_Blur(t *testing.T) {
	t.Parallel()

	session, clock := newSession(t, newSearcher(t, testutil.Entries()), nil)
	populate(session, clock, "lever")

	session.Blur()
	clock.Advance(search.DefaultResetDelay - time.Millisecond)
	if want, got := search.Populated, session.Snapshot().State; want != got {
		t.Fatalf("State before reset delay: want %v, got %v", want, got)
	}

	clock.Advance(time.Millisecond)
	session.Wait()

	snap := session.Snapshot()
	if want, got := search.Idle, snap.State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
	if snap.Focused {
		t.Fatal("Focused: want false")
	}
}

func TestSession_Blur_focus(t *testing.T) {
	t.Parallel()

	session, clock := newSession(t, newSearcher(t, testutil.Entries()), nil)
	populate(session, clock, "lever")

	session.Blur()
	session.Focus()
	clock.Advance(search.DefaultResetDelay)
	session.Wait()

	if want, got := search.Populated, session.Snapshot().State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
}

// TestSession_Commit_inFlight tests that a query finishing after a commit
// does not repopulate the candidates.
func TestSession_Commit_inFlight(t *testing.T) {
	t.Parallel()

	s := newSearcher(t, testutil.Entries())
	var committed []idx.Reference
	session, clock := newSession(t, s, &search.Options{
		OnCommit: func(ref idx.Reference) { committed = append(committed, ref) },
	})

	release := s.gate("lever")
	session.Input("lever")
	clock.Advance(search.DefaultDelay)
	<-s.started

	session.Commit(candidate("a", 0, false, "aller"))
	release()
	session.Wait()

	snap := session.Snapshot()
	if want, got := search.Idle, snap.State; want != got {
		t.Fatalf("State: want %v, got %v", want, got)
	}
	if want, got := "", snap.Text; want != got {
		t.Fatalf("Text: want %q, got %q", want, got)
	}
	if diff := cmp.Diff([]idx.Reference{{ID: "a"}}, committed); diff != "" {
		t.Fatalf("committed (-want, +got):\n%s", diff)
	}
}

func TestSession_realClock(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var versions []uint64
	session := search.New(newSearcher(t, testutil.Entries()), &search.Options{
		Delay: time.Millisecond,
		OnChange: func(snap search.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			versions = append(versions, snap.Version)
		},
	})
	defer session.Close()

	session.Input("aller")
	session.Wait()

	expected := []search.Candidate{candidate("a", 0, false, "aller")}
	if diff := cmp.Diff(expected, session.Snapshot().Candidates); diff != "" {
		t.Fatalf("Candidates (-want, +got):\n%s", diff)
	}

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]uint64{1, 2}, versions); diff != "" {
		t.Fatalf("versions (-want, +got):\n%s", diff)
	}
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := map[string]search.Key{
		"ArrowDown": search.KeyDown,
		"ArrowUp":   search.KeyUp,
		"Enter":     search.KeyEnter,
		"Escape":    search.KeyEscape,
		"esc":       search.KeyEscape,
		"a":         search.KeyOther,
	}
	for name, expected := range tests {
		if want, got := expected, search.ParseKey(name); want != got {
			t.Fatalf("ParseKey(%q): want %v, got %v", name, want, got)
		}
	}
}
