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
	"testing"

	"github.com/ianlewis/go-langetude/dict"
	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/source"
)

// Verb returns a French verb word summary.
func Verb(display string) idx.WordSummary {
	return idx.WordSummary{
		Language: "fr",
		Class:    "v",
		Display:  display,
	}
}

// Entries returns a small index of French verbs. Entry "b" and "d" have
// multiple words.
//
//	a  aller    [aller]
//	b  lever    [lever, se lever]
//	c  élever   [élever]
//	d  relever  [relever, se relever, relever de]
//	e  parler   [parler]
func Entries() []*idx.Entry {
	return []*idx.Entry{
		{ID: "a", Headword: "aller", Words: []idx.WordSummary{Verb("aller")}},
		{ID: "b", Headword: "lever", Words: []idx.WordSummary{Verb("lever"), Verb("se lever")}},
		{ID: "c", Headword: "élever", Words: []idx.WordSummary{Verb("élever")}},
		{ID: "d", Headword: "relever", Words: []idx.WordSummary{Verb("relever"), Verb("se relever"), Verb("relever de")}},
		{ID: "e", Headword: "parler", Words: []idx.WordSummary{Verb("parler")}},
	}
}

// FullEntries returns the full entry for every index entry. Each word
// carries only its summary.
func FullEntries(entries []*idx.Entry) map[string]*dict.Entry {
	full := map[string]*dict.Entry{}
	for _, e := range entries {
		d := &dict.Entry{Headword: e.Headword}
		for _, w := range e.Words {
			d.Words = append(d.Words, &dict.Word{WordSummary: w})
		}
		full[e.ID] = d
	}
	return full
}

// NewDictionary returns a Fetcher serving the index and full entries.
func NewDictionary(t *testing.T, entries []*idx.Entry) *Fetcher {
	t.Helper()

	f := NewFetcher()
	f.Set(source.IndexName, MakeIndex(t, entries))
	for id, e := range FullEntries(entries) {
		f.Set(source.EntryName(id), MakeEntry(t, e))
	}
	return f
}
