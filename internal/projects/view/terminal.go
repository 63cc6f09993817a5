// Package view renders the project list to a plain terminal and asks for
// confirmation on stdin. It backs the one-shot carbonctl commands.
package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/service"
)

type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	card    lipgloss.Style
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("35")),
		label:   r.NewStyle().Foreground(lipgloss.Color("245")),
		value:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("231")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		card:    r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("29")).Padding(0, 1),
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		success: r.NewStyle().Foreground(lipgloss.Color("46")),
		warning: r.NewStyle().Foreground(lipgloss.Color("226")),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Terminal is a service.View over an output stream and an input stream.
type Terminal struct {
	mu        sync.Mutex
	out       io.Writer
	in        *bufio.Reader
	assumeYes bool
	st        styles
}

type Option func(*Terminal)

// AssumeYes answers every confirmation with yes without reading input.
func AssumeYes(yes bool) Option {
	return func(t *Terminal) { t.assumeYes = yes }
}

func NewTerminal(out io.Writer, in io.Reader, opts ...Option) *Terminal {
	t := &Terminal{
		out: out,
		in:  bufio.NewReader(in),
		st:  newStyles(lipgloss.NewRenderer(out)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) Render(s service.Screen) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, RenderScreen(t.st, s))
}

// RenderScreen lays out the counters followed by the cards or the placeholder.
func RenderScreen(st styles, s service.Screen) string {
	var b strings.Builder
	b.WriteString(st.header.Render("Projects") + " " + st.value.Render(s.CountText()))
	b.WriteString(st.label.Render("  ·  Carbon saved ") + st.value.Render(s.CarbonText()) + st.label.Render(" tons"))
	b.WriteString("\n")

	switch s.State {
	case service.StateFailed:
		b.WriteString(st.failure.Render(s.Placeholder))
	case service.StateEmpty:
		b.WriteString(st.dim.Render(s.Placeholder))
	default:
		cards := make([]string, 0, len(s.Cards))
		for _, c := range s.Cards {
			cards = append(cards, renderCard(st, c))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	}
	return b.String()
}

func renderCard(st styles, c service.Card) string {
	lines := []string{
		st.title.Render(c.Name),
		c.Description,
		st.label.Render("Location: ") + c.Location,
		st.label.Render("Carbon Saved: ") + c.CarbonText() + " tons",
	}
	if c.ID != "" {
		lines = append(lines, st.dim.Render("id "+c.ID))
	}
	return st.card.Render(strings.Join(lines, "\n"))
}

func (t *Terminal) Notify(n service.Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	style := t.st.success
	switch n.Level {
	case service.NoticeWarning:
		style = t.st.warning
	case service.NoticeError:
		style = t.st.failure
	}
	fmt.Fprintln(t.out, style.Render(n.Text))
}

// ResetForm is a no-op: one-shot commands keep no form state.
func (t *Terminal) ResetForm() {}

func (t *Terminal) Confirm(ctx context.Context, prompt string) bool {
	if t.assumeYes {
		return true
	}
	if ctx.Err() != nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	fmt.Fprintf(t.out, "%s [y/N]: ", prompt)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
