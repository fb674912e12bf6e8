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

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ianlewis/go-langetude/render"
)

type styles struct {
	Title     lipgloss.Style
	Highlight lipgloss.Style
	Candidate lipgloss.Style
	Dim       lipgloss.Style
	Link      lipgloss.Style
	Error     lipgloss.Style
	Heading   lipgloss.Style
	Morph     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		Candidate: lipgloss.NewStyle(),
		Dim:       lipgloss.NewStyle().Faint(true),
		Link:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Heading:   lipgloss.NewStyle().Bold(true),
		Morph:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

// renderOptions styles rendered words.
func (s styles) renderOptions() *render.Options {
	return &render.Options{
		Morph:   func(t string) string { return s.Morph.Render(t) },
		Heading: func(t string) string { return s.Heading.Render(t) },
		Width:   lipgloss.Width,
	}
}
