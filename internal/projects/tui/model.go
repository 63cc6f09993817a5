// Package tui is the interactive terminal front end for the project sync client.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/service"
)

// Syncer is the part of the sync client the TUI drives directly.
// Deletes go through the callbacks on rendered cards.
type Syncer interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, in domain.FormInput) error
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirm
)

const (
	fieldName = iota
	fieldDescription
	fieldLocation
	fieldCarbon
	fieldCount
)

type opDoneMsg struct {
	err    error
	delete bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("35")).Padding(0, 1)
	statLabel     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statValue     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	selectedStyle = cardStyle.BorderForeground(lipgloss.Color("42"))
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	dialogStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 2)
	footerKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
)

// Model is the bubbletea model for the project list, the add form and the
// delete confirmation dialog.
type Model struct {
	sync     Syncer
	screen   service.Screen
	loaded   bool
	pending  int
	selected int
	deleting bool

	mode     mode
	prevMode mode
	inputs   []textinput.Model
	focus    int

	notice  *service.Notice
	confirm *confirmMsg
}

func NewModel(s Syncer) Model {
	labels := []string{"Name", "Description", "Location", "Carbon saved (tons)"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = fmt.Sprintf("%-20s ", labels[i]+":")
		ti.CharLimit = 200
		inputs[i] = ti
	}
	inputs[fieldCarbon].Placeholder = "0"
	return Model{sync: s, inputs: inputs}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.sync.Load(context.Background())}
	}
}

func (m Model) create(in domain.FormInput) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: m.sync.Create(context.Background(), in)}
	}
}

func deleteCard(c service.Card) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: c.Delete(), delete: true}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screenMsg:
		m.screen = msg.screen
		m.loaded = true
		if m.selected >= len(m.screen.Cards) {
			m.selected = max(len(m.screen.Cards)-1, 0)
		}
		return m, nil

	case noticeMsg:
		n := msg.notice
		m.notice = &n
		return m, nil

	case resetFormMsg:
		m.resetForm()
		if m.mode == modeForm {
			m.mode = modeList
		}
		return m, nil

	case confirmMsg:
		// a newer dialog supersedes one still on screen
		if m.confirm != nil {
			m.confirm.reply <- false
		}
		c := msg
		m.confirm = &c
		if m.mode != modeConfirm {
			m.prevMode = m.mode
		}
		m.mode = modeConfirm
		return m, nil

	case opDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		if msg.delete {
			m.deleting = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.answer(false)
			return m, tea.Quit
		}
		switch m.mode {
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeForm {
		return m.updateFocused(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		m.pending++
		return m, m.load()
	case "a":
		m.mode = modeForm
		m.notice = nil
		return m, m.focusField(fieldName)
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.screen.Cards)-1 {
			m.selected++
		}
	case "d", "delete":
		if !m.deleting && m.screen.State == service.StateListed && m.selected < len(m.screen.Cards) {
			m.deleting = true
			m.pending++
			return m, deleteCard(m.screen.Cards[m.selected])
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		m.inputs[m.focus].Blur()
		return m, nil
	case "tab", "down":
		return m, m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "enter":
		m.pending++
		return m, m.create(m.formInput())
	}
	return m.updateFocused(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.answer(true)
	case "n", "esc":
		m.answer(false)
	}
	return m, nil
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// answer resolves the pending confirmation, if any, and leaves the dialog.
func (m *Model) answer(ok bool) {
	if m.confirm == nil {
		return
	}
	m.confirm.reply <- ok
	m.confirm = nil
	m.mode = m.prevMode
}

func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = fieldName
}

func (m Model) formInput() domain.FormInput {
	return domain.FormInput{
		Name:        m.inputs[fieldName].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Location:    m.inputs[fieldLocation].Value(),
		CarbonSaved: m.inputs[fieldCarbon].Value(),
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Blue Carbon Projects"))
	b.WriteString("\n")
	b.WriteString(statLabel.Render("Projects ") + statValue.Render(m.screen.CountText()))
	b.WriteString(statLabel.Render("   Carbon saved ") + statValue.Render(m.screen.CarbonText()) + statLabel.Render(" tons"))
	if m.pending > 0 {
		b.WriteString(dimStyle.Render("   working…"))
	}
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(dimStyle.Render("Loading projects…"))
	case m.screen.State == service.StateFailed:
		b.WriteString(errorStyle.Render(m.screen.Placeholder))
	case m.screen.State == service.StateEmpty:
		b.WriteString(dimStyle.Render(m.screen.Placeholder))
	default:
		cards := make([]string, 0, len(m.screen.Cards))
		for i, c := range m.screen.Cards {
			cards = append(cards, renderCard(c, i == m.selected))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	}
	b.WriteString("\n")

	if m.notice != nil {
		b.WriteString("\n" + renderNotice(*m.notice) + "\n")
	}

	switch m.mode {
	case modeForm:
		b.WriteString("\n")
		for _, in := range m.inputs {
			b.WriteString(in.View() + "\n")
		}
	case modeConfirm:
		if m.confirm != nil {
			b.WriteString("\n" + dialogStyle.Render(m.confirm.prompt+"  (y/n)") + "\n")
		}
	}

	b.WriteString("\n" + m.footer())
	return b.String()
}

func (m Model) footer() string {
	var keys [][2]string
	switch m.mode {
	case modeForm:
		keys = [][2]string{{"tab", "next field"}, {"enter", "submit"}, {"esc", "cancel"}}
	case modeConfirm:
		keys = [][2]string{{"y", "delete"}, {"n", "keep"}}
	default:
		keys = [][2]string{{"r", "reload"}, {"a", "add"}, {"↑/↓", "select"}, {"d", "delete"}, {"q", "quit"}}
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, footerKey.Render(k[0])+" "+dimStyle.Render(k[1]))
	}
	return strings.Join(parts, dimStyle.Render(" · "))
}

func renderCard(c service.Card, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedStyle
	}
	body := strings.Join([]string{
		nameStyle.Render(c.Name),
		c.Description,
		statLabel.Render("Location: ") + c.Location,
		statLabel.Render("Carbon Saved: ") + c.CarbonText() + " tons",
	}, "\n")
	return style.Render(body)
}

func renderNotice(n service.Notice) string {
	switch n.Level {
	case service.NoticeError:
		return errorStyle.Render(n.Text)
	case service.NoticeWarning:
		return warnStyle.Render(n.Text)
	default:
		return okStyle.Render(n.Text)
	}
}

// Run starts the interactive UI and returns when the user quits.
func Run(ctx context.Context, s Syncer, bridge *Bridge) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(p)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
