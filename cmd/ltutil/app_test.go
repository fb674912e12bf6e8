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

package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-langetude/internal/testutil"
)

// runApp runs the app against a fixture dictionary and returns its output.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app := newLtutilApp()
	app.Writer = &out
	app.ErrWriter = &errOut

	argv := append([]string{"ltutil", "--config", filepath.Join(t.TempDir(), "missing.toml")}, args...)
	err := app.Run(argv)
	return out.String(), err
}

func dataDir(t *testing.T) string {
	t.Helper()

	entries := testutil.Entries()
	return testutil.MakeDataDir(t, entries, testutil.FullEntries(entries), testutil.Gzip)
}

func TestApp_search(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--source", dataDir(t), "search", "lever")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	for _, want := range []string{"b/1", "se lever", "French", "relever de"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestApp_search_limit(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--source", dataDir(t), "search", "--limit", "2", "lever")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if strings.Contains(out, "élever") {
		t.Fatalf("output contains words past the limit:\n%s", out)
	}
}

func TestApp_search_fold(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--source", dataDir(t), "--fold", "case", "search", "PARLER")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "parler") {
		t.Fatalf("output does not contain %q:\n%s", "parler", out)
	}
}

func TestApp_show(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ref      string
		expected []string
	}{
		{
			ref: "b/1",
			expected: []string{
				"Previous: lever (b/0)",
				"Next:     élever (c)",
				"se lever (2) v. French",
			},
		},
		{
			ref:      "b/9",
			expected: []string{"Word not found"},
		},
		{
			ref:      "zz",
			expected: []string{"Word not found"},
		},
	}

	dir := dataDir(t)
	for _, test := range tests {
		t.Run(test.ref, func(t *testing.T) {
			t.Parallel()

			out, err := runApp(t, "--source", dir, "show", test.ref)
			if err != nil {
				t.Fatalf("show: %v", err)
			}
			for _, want := range test.expected {
				if !strings.Contains(out, want) {
					t.Errorf("output does not contain %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestApp_errors(t *testing.T) {
	t.Parallel()

	dir := dataDir(t)
	tests := []struct {
		name      string
		args      []string
		flagParse bool
	}{
		{
			name:      "bad reference",
			args:      []string{"--source", dir, "show", "b/x"},
			flagParse: true,
		},
		{
			name:      "unknown flag",
			args:      []string{"--source", dir, "search", "--colour", "lever"},
			flagParse: true,
		},
		{
			name:      "unknown folder",
			args:      []string{"--source", dir, "--fold", "stem", "search", "lever"},
			flagParse: true,
		},
		{
			name: "missing source",
			args: []string{"--source", filepath.Join(dir, "missing"), "random"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := runApp(t, test.args...)
			if !errors.Is(err, ErrLtutil) {
				t.Fatalf("want %v, got %v", ErrLtutil, err)
			}
			if want, got := test.flagParse, errors.Is(err, ErrFlagParse); want != got {
				t.Fatalf("flag parse error: want %v, got %v (%v)", want, got, err)
			}
		})
	}
}

func TestApp_random(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--source", dataDir(t), "random")
	if err != nil {
		t.Fatalf("random: %v", err)
	}
	if out == "" {
		t.Fatal("random: no output")
	}
}

func TestApp_pack(t *testing.T) {
	t.Parallel()

	bundle := filepath.Join(t.TempDir(), "dict.db")
	out, err := runApp(t, "pack", "--out", bundle, dataDir(t))
	if err != nil {
		t.Fatalf("pack: %v", err)
	}
	if want := "packed 6 documents"; !strings.Contains(out, want) {
		t.Fatalf("output does not contain %q:\n%s", want, out)
	}

	out, err = runApp(t, "--source", bundle, "show", "e")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if want := "parler v. French"; !strings.Contains(out, want) {
		t.Fatalf("output does not contain %q:\n%s", want, out)
	}
}

func TestApp_version(t *testing.T) {
	t.Parallel()

	out, err := runApp(t, "--version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "Copyright (c) 2026 Ian Lewis") {
		t.Fatalf("unexpected version output:\n%s", out)
	}
}
