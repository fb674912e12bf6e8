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

// Package index implements a generic sorted array index with exact-match
// lookup.
package index

import (
	"fmt"
	"slices"
	"sort"
)

// Index is a generic sorted array index keyed by each value's String.
type Index[V fmt.Stringer] struct {
	// sorted by key. Values with equal keys keep their original relative
	// order.
	index []V

	cmp func(string, string) int
}

// NewIndex creates an index from the given slice and comparison function.
// cmp(a, b) should return a negative number when a < b, a positive number when
// a > b and zero when a == b or a and b are incomparable in the sense of a
// strict weak ordering.
func NewIndex[V fmt.Stringer](values []V, cmp func(string, string) int) *Index[V] {
	sorted := make([]V, len(values))
	copy(sorted, values)
	slices.SortStableFunc(sorted, func(a, b V) int {
		return cmp(a.String(), b.String())
	})

	return &Index[V]{
		index: sorted,
		cmp:   cmp,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// Search performs a binary search over the index and returns all values
// whose key matches query, in their original relative order.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return idx.cmp(query, idx.index[i].String())
	})

	if !found {
		return nil
	}

	j := i
	//nolint:revive // This block increments j.
	for ; j < len(idx.index) && idx.cmp(query, idx.index[j].String()) == 0; j++ {
	}
	return idx.index[i:j]
}

// First returns the first value, in original order, whose key matches
// query.
func (idx *Index[V]) First(query string) (V, bool) {
	matches := idx.Search(query)
	if len(matches) == 0 {
		var zero V
		return zero, false
	}
	return matches[0], true
}
