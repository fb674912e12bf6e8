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

// Package tui implements the interactive dictionary browser: a search box
// with its candidate list above the current word page.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ianlewis/go-langetude/dict"
	"github.com/ianlewis/go-langetude/idx"
	"github.com/ianlewis/go-langetude/nav"
	"github.com/ianlewis/go-langetude/render"
	"github.com/ianlewis/go-langetude/search"
)

// Index is the index used by the browser. [idx.Store] implements Index.
type Index interface {
	search.Searcher
	nav.Index
}

// Options are options for the browser.
type Options struct {
	// Session configures the search session. Its OnChange and OnCommit
	// callbacks are replaced by the browser's.
	Session search.Options

	// Start is the first word shown. A nil Start shows a random word.
	Start *idx.Reference

	// Registry renders words. A nil Registry uses render.Default.
	Registry *render.Registry

	// Logger receives the browser's logs. A nil Logger discards logs.
	Logger *slog.Logger
}

// sessionChangedMsg reports that the search session changed.
type sessionChangedMsg struct{}

// pageMsg is the result of a page load.
type pageMsg struct {
	gen  uint64
	page *nav.Page
	err  error
}

// Model is the browser's bubbletea model.
type Model struct {
	ctx      context.Context
	index    Index
	resolver *nav.Resolver
	registry *render.Registry
	logger   *slog.Logger
	styles   styles

	session *search.Session
	changed chan struct{}
	snap    search.Snapshot

	// committed is set by the session's commit callback.
	committed *idx.Reference

	input textinput.Model

	// gen identifies the latest page load. Older loads are discarded.
	gen     uint64
	start   *idx.Reference
	loading bool
	page    *nav.Page
	body    string
	err     error

	width int
}

// New returns a new browser model. The model should be closed with Close
// once the program exits.
func New(ctx context.Context, index Index, resolver *nav.Resolver, opts *Options) *Model {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	registry := opts.Registry
	if registry == nil {
		registry = render.Default()
	}

	input := textinput.New()
	input.Placeholder = "Search"
	input.Prompt = "> "
	input.Focus()

	m := &Model{
		ctx:      ctx,
		index:    index,
		resolver: resolver,
		registry: registry,
		logger:   logger,
		styles:   defaultStyles(),
		changed:  make(chan struct{}, 1),
		input:    input,
		start:    opts.Start,
	}

	sessionOpts := opts.Session
	if sessionOpts.Logger == nil {
		sessionOpts.Logger = logger
	}
	sessionOpts.OnChange = func(search.Snapshot) {
		// Notifications are coalesced; the model reads the latest snapshot.
		select {
		case m.changed <- struct{}{}:
		default:
		}
	}
	sessionOpts.OnCommit = func(ref idx.Reference) {
		m.committed = &ref
	}
	m.session = search.New(index, &sessionOpts)
	m.snap = m.session.Snapshot()
	return m
}

// Close stops the model's search session.
func (m *Model) Close() {
	m.session.Close()
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	var first tea.Cmd
	if m.start != nil {
		first = m.load(*m.start)
	} else {
		first = m.random()
	}
	return tea.Batch(textinput.Blink, m.waitForChange, first)
}

func (m *Model) waitForChange() tea.Msg {
	select {
	case <-m.changed:
		return sessionChangedMsg{}
	case <-m.ctx.Done():
		return nil
	}
}

// load starts loading the page of ref, superseding any earlier load.
func (m *Model) load(ref idx.Reference) tea.Cmd {
	m.gen++
	gen := m.gen
	m.loading = true
	ctx := m.ctx
	return func() tea.Msg {
		p, err := m.resolver.Load(ctx, ref)
		return pageMsg{gen: gen, page: p, err: err}
	}
}

// random starts loading the page of a random word.
func (m *Model) random() tea.Cmd {
	m.gen++
	gen := m.gen
	m.loading = true
	ctx := m.ctx
	return func() tea.Msg {
		l, err := nav.Random(ctx, m.index, nil)
		if err != nil {
			return pageMsg{gen: gen, err: err}
		}
		p, err := m.resolver.Load(ctx, l.Ref)
		return pageMsg{gen: gen, page: p, err: err}
	}
}

// Update implements [tea.Model].
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		return m, nil

	case sessionChangedMsg:
		m.snap = m.session.Snapshot()
		return m, m.waitForChange

	case pageMsg:
		m.applyPage(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.input.Focused() {
			m.input.Blur()
			m.session.Blur()
			return m, nil
		}
		m.session.Focus()
		return m, m.input.Focus()

	case "pgup":
		return m, m.follow(func(l nav.Links) *nav.Link { return l.Previous })

	case "pgdown":
		return m, m.follow(func(l nav.Links) *nav.Link { return l.Next })

	case "up", "down", "enter", "esc":
		if !m.input.Focused() {
			return m, nil
		}
		m.session.Key(search.ParseKey(msg.String()))
		m.snap = m.session.Snapshot()
		if ref := m.committed; ref != nil {
			m.committed = nil
			m.input.SetValue("")
			return m, m.load(*ref)
		}
		return m, nil
	}

	if !m.input.Focused() {
		return m, nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != before {
		m.session.Input(text)
		m.snap = m.session.Snapshot()
	}
	return m, cmd
}

// follow loads the page of a link of the current page.
func (m *Model) follow(pick func(nav.Links) *nav.Link) tea.Cmd {
	if m.page == nil {
		return nil
	}
	l := pick(m.page.Links)
	if l == nil {
		return nil
	}
	return m.load(l.Ref)
}

func (m *Model) applyPage(msg pageMsg) {
	if msg.gen != m.gen {
		m.logger.Debug("discarding stale page", "gen", msg.gen, "current", m.gen)
		return
	}
	m.loading = false

	if msg.err != nil {
		m.logger.Error("loading page", "err", msg.err)
		m.err = msg.err
		return
	}

	m.err = nil
	m.page = msg.page

	var b strings.Builder
	if err := m.registry.Render(&b, msg.page, m.styles.renderOptions()); err != nil {
		m.logger.Error("rendering page", "ref", msg.page.Ref.String(), "err", err)
		m.err = err
		return
	}
	m.body = b.String()
	m.logger.Debug("page loaded", "ref", msg.page.Ref.String())
}

// View implements [tea.Model].
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Langétude"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch m.snap.State {
	case search.Pending:
		b.WriteString(m.styles.Dim.Render("  searching..."))
		b.WriteString("\n")
	case search.Populated:
		for i, c := range m.snap.Candidates {
			line := fmt.Sprintf("  %s %s.", c.Display, c.Class)
			if c.Ref.Qualified {
				line = fmt.Sprintf("  %s (%d) %s.", c.Display, c.Ref.Sequence+1, c.Class)
			}
			if i == m.snap.Highlight {
				b.WriteString(m.styles.Highlight.Render(line))
			} else {
				b.WriteString(m.styles.Candidate.Render(line))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render(errorMessage(m.err)))
		b.WriteString("\n")
	case m.page == nil && m.loading:
		b.WriteString(m.styles.Dim.Render("Loading..."))
		b.WriteString("\n")
	case m.page != nil:
		b.WriteString(m.linksView())
		b.WriteString("\n\n")
		b.WriteString(m.body)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Dim.Render("tab: focus  pgup/pgdown: previous/next  ctrl+c: quit"))
	return b.String()
}

func (m *Model) linksView() string {
	var parts []string
	if l := m.page.Links.Previous; l != nil {
		parts = append(parts, "« "+m.styles.Link.Render(linkText(l)))
	}
	if l := m.page.Links.Next; l != nil {
		parts = append(parts, m.styles.Link.Render(linkText(l))+" »")
	}
	return strings.Join(parts, "   ")
}

func linkText(l *nav.Link) string {
	if l.Ref.Qualified {
		return fmt.Sprintf("%s (%d) %s.", l.Display, l.Ref.Sequence+1, l.Class)
	}
	return fmt.Sprintf("%s %s.", l.Display, l.Class)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, nav.ErrEmpty):
		return "The database is empty."
	case errors.Is(err, dict.ErrNotFound):
		return "Word not found."
	case errors.Is(err, idx.ErrUnavailable):
		return fmt.Sprintf("The dictionary could not be loaded: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Run runs the browser until the user quits.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
