package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Renderer styles session output. Colors degrade to plain text when the
// writer is not a terminal; color=false skips styling entirely.
type Renderer struct {
	plain  bool
	prompt lipgloss.Style
	err    lipgloss.Style
	bye    lipgloss.Style
	info   lipgloss.Style
}

func NewRenderer(w io.Writer, color bool) *Renderer {
	if !color {
		return &Renderer{plain: true}
	}
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		prompt: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#42a5f5")),
		err:    r.NewStyle().Foreground(lipgloss.Color("#e53935")),
		bye:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#43a047")),
		info:   r.NewStyle().Faint(true),
	}
}

func (r *Renderer) render(st lipgloss.Style, s string) string {
	if r.plain {
		return s
	}
	return st.Render(s)
}

func (r *Renderer) Prompt(s string) string    { return r.render(r.prompt, s) }
func (r *Renderer) Print(s string) string     { return s }
func (r *Renderer) Error(s string) string     { return r.render(r.err, s) }
func (r *Renderer) Terminate(s string) string { return r.render(r.bye, s) }
func (r *Renderer) Info(s string) string      { return r.render(r.info, s) }
