// Package tui provides the Bubble Tea quiz round.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/kanjiq/internal/model"
	"github.com/verte-zerg/kanjiq/internal/quiz"
)

type state int

const (
	stateAsk state = iota
	stateAnswer
	stateResult
)

type openedMsg struct {
	err error
}

// Model implements the Bubble Tea quiz UI for one round.
type Model struct {
	ctx    context.Context
	record model.Record
	viewer quiz.Viewer

	width  int
	height int

	state  state
	input  textinput.Model
	notice string

	verdict string
	result  *model.RoundResult
}

var (
	kanjiStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C89A3A"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a quiz round for rec. viewer may be nil.
func NewModel(ctx context.Context, rec model.Record, viewer quiz.Viewer) *Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "meaning"
	input.CharLimit = 0
	return &Model{
		ctx:    ctx,
		record: rec,
		viewer: viewer,
		input:  input,
	}
}

// Result returns the finished round, or nil if the program exited early.
func (m *Model) Result() *model.RoundResult {
	return m.result
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case openedMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("failed to open kanji view: %v", msg.err)
		} else {
			m.notice = ""
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.finish(model.OutcomeQuit, "")
		}
		switch m.state {
		case stateAsk:
			return m.updateAsk(msg)
		case stateAnswer:
			return m.updateAnswer(msg)
		default:
			return m, tea.Quit
		}
	default:
		return m, nil
	}
}

func (m *Model) updateAsk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return m.finish(model.OutcomeQuit, "")
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return m, nil
	}
	switch quiz.ParseAction(msg.Runes[0]) {
	case quiz.ActionYes:
		m.state = stateAnswer
		m.notice = ""
		return m, m.input.Focus()
	case quiz.ActionNo:
		m.verdict = quiz.Reveal(m.record)
		m.setResult(model.OutcomeUnknown, "")
		m.state = stateResult
		return m, nil
	case quiz.ActionOpen:
		if m.viewer == nil {
			m.notice = "open is not available"
			return m, nil
		}
		return m, m.openCmd()
	case quiz.ActionQuit:
		return m.finish(model.OutcomeQuit, "")
	default:
		m.notice = "press y, n, o, or q"
		return m, nil
	}
}

func (m *Model) updateAnswer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		answer := m.input.Value()
		correct := quiz.Grade(m.record.Meaning, answer)
		outcome := model.OutcomeIncorrect
		if correct {
			outcome = model.OutcomeCorrect
		}
		m.verdict = quiz.Verdict(correct, m.record) + "\n\n" + quiz.Reveal(m.record)
		m.setResult(outcome, answer)
		m.input.Blur()
		m.state = stateResult
		return m, nil
	case tea.KeyEsc:
		m.input.Blur()
		m.input.SetValue("")
		m.state = stateAsk
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) openCmd() tea.Cmd {
	ctx, viewer, rec := m.ctx, m.viewer, m.record
	return func() tea.Msg {
		return openedMsg{err: viewer.Show(ctx, rec)}
	}
}

func (m *Model) setResult(outcome model.Outcome, answer string) {
	res := quiz.NewResult(m.record, outcome, answer)
	m.result = &res
}

func (m *Model) finish(outcome model.Outcome, answer string) (tea.Model, tea.Cmd) {
	if m.result == nil {
		m.setResult(outcome, answer)
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{kanjiStyle.Render(m.record.Character)}
	switch m.state {
	case stateAsk:
		sections = append(sections, promptStyle.Render(quiz.Prompt))
	case stateAnswer:
		sections = append(sections, promptStyle.Render(quiz.AnswerPrompt), m.input.View())
	case stateResult:
		sections = append(sections, m.verdict)
	}
	if m.notice != "" {
		sections = append(sections, noticeStyle.Render(m.notice))
	}
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	segments := []string{m.record.Category}
	switch m.state {
	case stateAsk:
		segments = append(segments, "y yes", "n no", "o open", "q quit")
	case stateAnswer:
		segments = append(segments, "enter submit", "esc back")
	case stateResult:
		segments = append(segments, "any key exit")
	}
	return footerStyle.Render(strings.Join(segments, "  ·  "))
}
