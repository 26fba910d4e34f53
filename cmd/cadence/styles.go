package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("#2CD7C7")
	colorMuted  = lipgloss.Color("#6C7A89")
	colorWarn   = lipgloss.Color("#F4D03F")
)

// styles holds the console styles bound to one output. The renderer
// inspects w, so pipes and buffers get plain text.
type styles struct {
	Title   lipgloss.Style
	Genre   lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title:   r.NewStyle().Bold(true),
		Genre:   r.NewStyle().Bold(true).Foreground(colorAccent),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Warning: r.NewStyle().Foreground(colorWarn),
	}
}
