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

// Package render renders word pages as text. Renderers are looked up by the
// word's language and class; words without a renderer render a short
// message saying so.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/k3a/html2text"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/ianlewis/go-langetude/nav"
)

// ErrMalformed indicates that a word's detail fields are not in the
// expected shape.
var ErrMalformed = errors.New("malformed word")

// Func renders the word of a page. The page's Word is never nil.
type Func func(w io.Writer, p *nav.Page, opts *Options) error

// Options are rendering options.
type Options struct {
	// Morph styles the morpheme of a conjugated form.
	Morph func(string) string

	// Heading styles table headings.
	Heading func(string) string

	// Width returns the display width of styled text. The default counts
	// runes.
	Width func(string) int
}

func (o *Options) morph(s string) string {
	if o == nil || o.Morph == nil {
		return s
	}
	return o.Morph(s)
}

func (o *Options) heading(s string) string {
	if o == nil || o.Heading == nil {
		return s
	}
	return o.Heading(s)
}

func (o *Options) width() func(string) int {
	if o == nil || o.Width == nil {
		return utf8.RuneCountInString
	}
	return o.Width
}

// Registry maps languages and word classes to renderers.
type Registry struct {
	funcs map[string]map[string]Func
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: map[string]map[string]Func{},
	}
}

// Default returns a Registry with every built-in renderer registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register("fr", "v", FrenchVerb)
	return r
}

// Register registers f for words of the given language and class.
func (r *Registry) Register(lang, class string, f Func) {
	classes, ok := r.funcs[lang]
	if !ok {
		classes = map[string]Func{}
		r.funcs[lang] = classes
	}
	classes[class] = f
}

// Render renders the word of p to w followed by its note, if any.
func (r *Registry) Render(w io.Writer, p *nav.Page, opts *Options) error {
	if p.Word == nil {
		_, err := fmt.Fprintln(w, "Word not found")
		return err
	}

	classes, ok := r.funcs[p.Word.Language]
	if !ok {
		_, err := fmt.Fprintf(w, "Unrecognized language: %s\n", p.Word.Language)
		return err
	}
	f, ok := classes[p.Word.Class]
	if !ok {
		_, err := fmt.Fprintf(w, "Unrecognized word class: %s\n", p.Word.Class)
		return err
	}

	if err := f(w, p, opts); err != nil {
		return fmt.Errorf("rendering %s: %w", p.Ref, err)
	}
	return renderNote(w, p)
}

// renderNote renders the word's optional HTML note as plain text.
func renderNote(w io.Writer, p *nav.Page) error {
	var note string
	ok, err := p.Word.Decode("note", &note)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if !ok || note == "" {
		return nil
	}
	_, err = fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(html2text.HTML2Text(note)))
	return err
}

// Header renders the word's title line: its display form, its position in
// the entry when the entry has several words, its class and its language.
func Header(w io.Writer, p *nav.Page) error {
	var b strings.Builder
	b.WriteString(p.Word.Display)
	if len(p.Entry.Words) > 1 {
		fmt.Fprintf(&b, " (%d)", p.Ref.Index()+1)
	}
	fmt.Fprintf(&b, " %s.", p.Word.Class)
	if name := LanguageName(p.Word.Language); name != "" {
		fmt.Fprintf(&b, " %s", name)
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

// LanguageName returns the English name of a language tag or the tag itself
// if it has no known name.
func LanguageName(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	if name := display.English.Languages().Name(t); name != "" {
		return name
	}
	return tag
}
