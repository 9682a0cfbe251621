// Package styles holds the lipgloss styles used by the interactive console.
package styles

import (
	"io"

	"github.com/Iron-Ham/tasker/internal/task"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
)

// Styles is a set of styles bound to one output. Styles are only applied to
// single-line strings so that plain output is byte-for-byte identical to the
// unstyled text.
type Styles struct {
	MenuIndex lipgloss.Style
	MenuLabel lipgloss.Style
	Prompt    lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	Notice    lipgloss.Style

	priority map[task.Priority]lipgloss.Style
}

// New returns styles rendering for w. The color profile is detected from w;
// when color is false, or w is not a terminal, rendering is plain text.
func New(w io.Writer, color bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		MenuIndex: r.NewStyle().Bold(true).Foreground(PrimaryColor),
		MenuLabel: r.NewStyle(),
		Prompt:    r.NewStyle().Foreground(MutedColor),
		Success:   r.NewStyle().Foreground(SecondaryColor),
		Failure:   r.NewStyle().Foreground(ErrorColor),
		Notice:    r.NewStyle().Foreground(WarningColor),
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityLow:    r.NewStyle().Foreground(MutedColor),
			task.PriorityMedium: r.NewStyle().Foreground(WarningColor),
			task.PriorityHigh:   r.NewStyle().Bold(true).Foreground(ErrorColor),
		},
	}
}

// Plain returns styles that never emit escape sequences.
func Plain() *Styles {
	return New(io.Discard, false)
}

// Outcome renders msg with the success or failure style depending on err.
func (s *Styles) Outcome(msg string, err error) string {
	if err != nil {
		return s.Failure.Render(msg)
	}
	return s.Success.Render(msg)
}

// Priority renders a priority label in its color.
func (s *Styles) Priority(p task.Priority) string {
	style, ok := s.priority[p]
	if !ok {
		return p.String()
	}
	return style.Render(p.String())
}
