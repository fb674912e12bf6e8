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

package folding

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Whitespace returns a transformer that drops leading and trailing
// whitespace and collapses every internal whitespace run into one ASCII
// space, so "se  lever " and "se lever" match the same search terms.
func Whitespace() transform.Transformer {
	return &whitespace{}
}

type whitespace struct {
	// seenText is set once a non-space rune has been written.
	seenText bool

	// gap is set while skipping a run of whitespace that follows text.
	gap bool
}

// Transform implements [transform.Transformer].
func (w *whitespace) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(r) {
			w.gap = w.seenText
			nSrc += size
			continue
		}

		// A pending gap and the rune are written together or not at all.
		// RuneLen is used rather than size since an invalid byte decodes
		// to the three byte RuneError.
		need := utf8.RuneLen(r)
		if w.gap {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.gap {
			dst[nDst] = ' '
			nDst++
			w.gap = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		w.seenText = true
		nSrc += size
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer].
func (w *whitespace) Reset() {
	*w = whitespace{}
}
