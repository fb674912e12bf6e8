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

// Package langetude implements a library for looking up words in Langétude
// dictionaries in pure Go.
//
// A Langétude dictionary is a set of JSON documents:
//  1. An index document, index.json, that lists every entry in dictionary
//     order. Each entry has an id, a headword and a summary (language, word
//     class and display form) of each of its words.
//  2. One entry document per entry, words/<id>.json, holding the full data
//     of each word, e.g. the conjugation tables of a verb.
//
// Documents are read from a directory, optionally compressed with gzip or
// dictzip, from an HTTP server, or from a packed SQLite bundle.
//
// The index is loaded once and searched by headword substring. Words are
// navigated in dictionary order, crossing from the last word of an entry to
// the first word of the next.
package langetude
