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
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidReference indicates a word reference that cannot be parsed.
var ErrInvalidReference = errors.New("invalid word reference")

// WordSummary is the short description of a word stored in the index.
type WordSummary struct {
	// Language is the language tag, e.g. "fr".
	Language string `json:"l"`

	// Class is the word class tag, e.g. "v" for verbs.
	Class string `json:"c"`

	// Display is the text shown for the word.
	Display string `json:"d"`
}

// String returns the display text followed by the word class.
func (w WordSummary) String() string {
	return fmt.Sprintf("%s %s.", w.Display, w.Class)
}

// Entry is an index entry. An entry groups one or more words under a single
// headword.
type Entry struct {
	// ID identifies the entry and its full entry document.
	ID string `json:"i"`

	// Headword is the dictionary form searched by [Store.Search].
	Headword string `json:"d"`

	// Words are the entry's words. Their order defines word sequence
	// numbers.
	Words []WordSummary `json:"w"`
}

// Ref returns the reference to the word at seq. Words of single-word entries
// are addressed without a sequence.
func (e *Entry) Ref(seq int) Reference {
	if len(e.Words) > 1 {
		return Reference{ID: e.ID, Sequence: seq, Qualified: true}
	}
	return Reference{ID: e.ID}
}

// Reference addresses a single word: the entry it belongs to and its
// position within that entry.
type Reference struct {
	// ID is the entry id.
	ID string

	// Sequence is the word's position in the entry. It is only meaningful
	// when Qualified is true.
	Sequence int

	// Qualified reports whether the reference carries a sequence. Words of
	// single-word entries are referenced without one.
	Qualified bool
}

// Index returns the word's position in its entry. Unqualified references
// address the first word.
func (r Reference) Index() int {
	if !r.Qualified {
		return 0
	}
	return r.Sequence
}

// String returns "id" for unqualified references and "id/seq" otherwise.
// The id is path escaped so ids containing a slash still parse.
func (r Reference) String() string {
	id := url.PathEscape(r.ID)
	if !r.Qualified {
		return id
	}
	return id + "/" + strconv.Itoa(r.Sequence)
}

// ParseReference parses a reference in the format produced by
// [Reference.String].
func ParseReference(s string) (Reference, error) {
	if s == "" {
		return Reference{}, fmt.Errorf("%w: empty", ErrInvalidReference)
	}

	rawID, seqStr, qualified := strings.Cut(s, "/")
	id, err := url.PathUnescape(rawID)
	if err != nil || id == "" {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}
	if !qualified {
		return Reference{ID: id}, nil
	}

	seq, err := strconv.Atoi(seqStr)
	if err != nil || seq < 0 {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidReference, s)
	}
	return Reference{ID: id, Sequence: seq, Qualified: true}, nil
}
