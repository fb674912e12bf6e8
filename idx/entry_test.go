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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEntry_Ref(t *testing.T) {
	t.Parallel()

	single := &Entry{ID: "a", Words: []WordSummary{{Display: "aller"}}}
	if diff := cmp.Diff(Reference{ID: "a"}, single.Ref(0)); diff != "" {
		t.Fatalf("Ref (-want, +got):\n%s", diff)
	}

	multi := &Entry{ID: "b", Words: []WordSummary{{Display: "lever"}, {Display: "se lever"}}}
	if diff := cmp.Diff(Reference{ID: "b", Sequence: 1, Qualified: true}, multi.Ref(1)); diff != "" {
		t.Fatalf("Ref (-want, +got):\n%s", diff)
	}
}

func TestParseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected Reference
		err      error
	}{
		{
			input:    "0123abcd",
			expected: Reference{ID: "0123abcd"},
		},
		{
			input:    "0123abcd/2",
			expected: Reference{ID: "0123abcd", Sequence: 2, Qualified: true},
		},
		{
			input:    "b/0",
			expected: Reference{ID: "b", Sequence: 0, Qualified: true},
		},
		{
			input:    "ab%2Fcd/1",
			expected: Reference{ID: "ab/cd", Sequence: 1, Qualified: true},
		},
		{
			input: "",
			err:   ErrInvalidReference,
		},
		{
			input: "ab/cd/1",
			err:   ErrInvalidReference,
		},
		{
			input: "ab%zz",
			err:   ErrInvalidReference,
		},
		{
			input: "b/x",
			err:   ErrInvalidReference,
		},
		{
			input: "b/-1",
			err:   ErrInvalidReference,
		},
		{
			input: "/1",
			err:   ErrInvalidReference,
		},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseReference(test.input)
			if !errors.Is(err, test.err) {
				t.Fatalf("ParseReference: want error %v, got %v", test.err, err)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("ParseReference (-want, +got):\n%s", diff)
			}
			if err == nil {
				if want, got := test.input, got.String(); want != got {
					t.Fatalf("String: want %q, got %q", want, got)
				}
			}
		})
	}
}

func TestReference_String(t *testing.T) {
	t.Parallel()

	for _, ref := range []Reference{
		{ID: "ab/cd"},
		{ID: "ab/cd", Sequence: 2, Qualified: true},
		{ID: "se lever"},
		{ID: "100%", Sequence: 0, Qualified: true},
	} {
		got, err := ParseReference(ref.String())
		if err != nil {
			t.Fatalf("ParseReference(%q): %v", ref.String(), err)
		}
		if diff := cmp.Diff(ref, got); diff != "" {
			t.Fatalf("ParseReference(%q) (-want, +got):\n%s", ref.String(), diff)
		}
	}
}

func TestReference_Index(t *testing.T) {
	t.Parallel()

	if want, got := 0, (Reference{ID: "a", Sequence: 3}).Index(); want != got {
		t.Fatalf("unqualified Index: want %d, got %d", want, got)
	}
	if want, got := 3, (Reference{ID: "a", Sequence: 3, Qualified: true}).Index(); want != got {
		t.Fatalf("qualified Index: want %d, got %d", want, got)
	}
}
