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
	"errors"
	"testing"

	"golang.org/x/text/transform"
)

func TestWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "no whitespace",
			input:    "lever",
			expected: "lever",
		},
		{
			name:     "leading and trailing",
			input:    "  se lever \t",
			expected: "se lever",
		},
		{
			name:     "internal span",
			input:    "se \t\n lever",
			expected: "se lever",
		},
		{
			name:     "multi-byte",
			input:    " s’élever   de ",
			expected: "s’élever de",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := transform.String(Whitespace(), test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if got != test.expected {
				t.Fatalf("want %q, got %q", test.expected, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		names    string
		input    string
		expected string
		err      error
	}{
		{
			name:     "empty is nop",
			names:    "",
			input:    " Se  Lever ",
			expected: " Se  Lever ",
		},
		{
			name:     "none",
			names:    "none",
			input:    "Lever",
			expected: "Lever",
		},
		{
			name:     "case",
			names:    "case",
			input:    "LEVER",
			expected: "lever",
		},
		{
			name:     "whitespace and case",
			names:    "whitespace, case",
			input:    "  Se   LEVER ",
			expected: "se lever",
		},
		{
			name:  "unknown",
			names: "stem",
			err:   ErrUnknownFolder,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			folder, err := Parse(test.names)
			if !errors.Is(err, test.err) {
				t.Fatalf("Parse: want error %v, got %v", test.err, err)
			}
			if err != nil {
				return
			}

			got, _, err := transform.String(folder(), test.input)
			if err != nil {
				t.Fatalf("transform.String: %v", err)
			}
			if got != test.expected {
				t.Fatalf("want %q, got %q", test.expected, got)
			}
		})
	}
}
