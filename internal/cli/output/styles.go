package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/planportal/pkg/core"
)

// Styles holds the lipgloss styles used by text output.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	r *lipgloss.Renderer
}

// Oslo palette.
const (
	colorPrimary = lipgloss.Color("#1B365D")
	colorAccent  = lipgloss.Color("#4A90A4")
	colorMuted   = lipgloss.Color("#7F8C8D")
	colorSuccess = lipgloss.Color("#148F77")
	colorWarning = lipgloss.Color("#F39C12")
	colorError   = lipgloss.Color("#E74C3C")
)

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(colorPrimary).Underline(true),
		Header2: r.NewStyle().Bold(true).Foreground(colorAccent),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(colorMuted),
		Success: r.NewStyle().Foreground(colorSuccess),
		Warning: r.NewStyle().Foreground(colorWarning),
		Error:   r.NewStyle().Foreground(colorError).Bold(true),
		Info:    r.NewStyle().Foreground(colorAccent),
		r:       r,
	}
}

// RiskLevel returns the style for a risk level badge.
func (s *Styles) RiskLevel(level core.RiskLevel) lipgloss.Style {
	return s.r.NewStyle().Bold(true).Foreground(lipgloss.Color(level.Color()))
}
