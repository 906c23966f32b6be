// Package ui holds the lipgloss styles shared by the CLI's human-readable
// output.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette renders the status badges and accents used by list/resolve output.
// A non-colored palette degrades to bracketed plain text so piped output
// stays readable.
type Palette struct {
	colored bool

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
}

// NewPalette builds a palette; colored selects ANSI styling.
func NewPalette(colored bool) Palette {
	return Palette{
		colored: colored,
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
}

// Success renders an ok/exact-match badge.
func (p Palette) Success(text string) string { return p.render(p.success, text) }

// Warning renders a fallback badge.
func (p Palette) Warning(text string) string { return p.render(p.warning, text) }

// Failure renders a missing/failed badge.
func (p Palette) Failure(text string) string { return p.render(p.failure, text) }

// Muted renders secondary detail text.
func (p Palette) Muted(text string) string { return p.render(p.muted, text) }

// Accent renders identifiers such as component names.
func (p Palette) Accent(text string) string { return p.render(p.accent, text) }

func (p Palette) render(style lipgloss.Style, text string) string {
	if !p.colored {
		return text
	}
	return style.Render(text)
}
