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

// Package idx implements the dictionary index.
//
// The index document lists every dictionary entry in a fixed order. The order
// defines both random access by position and previous/next adjacency. Keys
// are kept short because the document is loaded in full:
//
//	{ "w": [                     entries
//	  { "i": "0123abcd",         entry id
//	    "d": "lever",            headword
//	    "w": [                   words, at least one
//	      { "l": "fr",           language
//	        "c": "v",            word class
//	        "d": "se lever" }    display text
//	    ] }
//	] }
//
// A [Store] fetches the index once and shares it, read-only, with every
// caller for the lifetime of the Store.
package idx
