package main

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	orchestration "github.com/KARAN3690/Marketplace/core"
	"github.com/KARAN3690/Marketplace/core/events"
	"github.com/KARAN3690/Marketplace/core/llms"
)

const (
	defaultWidth  = 72
	defaultHeight = 20
	chromeHeight  = 6
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("28")).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#AFAFAF"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	launcherStyle  = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("28")).
			Padding(0, 2)
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("28")).
			Padding(0, 1)
)

type sessionEventMsg struct{ event events.Event }

type submittedMsg struct{ session orchestration.Session }

type voiceSubmittedMsg struct {
	session orchestration.Session
	err     error
}

// widgetModel renders one assistant session. All state except the input
// field and status line comes from orchestrator snapshots.
type widgetModel struct {
	ctx          context.Context
	orchestrator *orchestration.Orchestrator
	events       <-chan events.Event

	input    textinput.Model
	viewport viewport.Model
	session  orchestration.Session

	width   int
	muted   bool
	pending int
	status  string
	failure string
}

func newWidgetModel(ctx context.Context, orchestrator *orchestration.Orchestrator, sessionEvents <-chan events.Event) widgetModel {
	input := textinput.New()
	input.Placeholder = "Ask about crops, prices or buyers..."
	input.Prompt = "> "
	input.CharLimit = 500

	m := widgetModel{
		ctx:          ctx,
		orchestrator: orchestrator,
		events:       sessionEvents,
		input:        input,
		viewport:     viewport.New(defaultWidth, defaultHeight-chromeHeight),
		session:      orchestrator.Session(),
		width:        defaultWidth,
	}
	m.refresh()
	return m
}

func waitForEvent(sessionEvents <-chan events.Event) tea.Cmd {
	if sessionEvents == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-sessionEvents
		if !ok {
			return nil
		}
		return sessionEventMsg{event: event}
	}
}

func (m widgetModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

func (m widgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-4, 20)
		m.viewport.Width = m.width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.input.Width = m.width - 4
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case sessionEventMsg:
		m.handleEvent(msg.event)
		m.session = m.orchestrator.Session()
		m.refresh()
		return m, waitForEvent(m.events)

	case submittedMsg:
		m.pending--
		m.session = msg.session
		m.refresh()
		return m, nil

	case voiceSubmittedMsg:
		m.session = msg.session
		if msg.err != nil {
			if !errors.Is(msg.err, orchestration.ErrCaptureInProgress) {
				m.failure = describeCaptureError(msg.err)
			}
		} else {
			m.failure = ""
		}
		m.status = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m widgetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "ctrl+o":
		if m.orchestrator.ToggleWidget() {
			m.session = m.orchestrator.Session()
			m.refresh()
			return m, m.input.Focus()
		}
		m.input.Blur()
		m.session = m.orchestrator.Session()
		return m, nil
	}

	if !m.session.IsOpen {
		return m, nil
	}

	switch msg.String() {
	case "enter":
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, nil
		}
		// The orchestrator still holds the draft until the submit reads it.
		m.input.Reset()
		m.pending++
		m.failure = ""
		return m, m.submit()
	case "ctrl+r":
		switch m.orchestrator.CaptureState() {
		case orchestration.CaptureCapturing:
			m.orchestrator.StopVoice()
			return m, nil
		case orchestration.CaptureIdle:
			m.failure = ""
			return m, m.submitVoice()
		}
		return m, nil
	case "ctrl+s":
		m.muted = !m.muted
		m.orchestrator.SetSpeaking(!m.muted)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.orchestrator.SetDraft(m.input.Value())
	return m, cmd
}

func (m *widgetModel) handleEvent(event events.Event) {
	switch event := event.(type) {
	case events.DraftUpdated:
		if m.input.Value() != event.Draft {
			m.input.SetValue(event.Draft)
		}
	case events.RecordingStarted:
		m.status = "Listening... press ctrl+r to stop"
	case events.RecordingStopped:
		m.status = "Transcribing..."
	case events.CaptureFailed:
		m.status = ""
	case events.AssistantSpeechFailed:
		m.failure = "Could not play the reply."
	}
}

func (m widgetModel) submit() tea.Cmd {
	ctx, orchestrator := m.ctx, m.orchestrator
	return func() tea.Msg {
		return submittedMsg{session: orchestrator.SubmitDraft(ctx)}
	}
}

func (m widgetModel) submitVoice() tea.Cmd {
	ctx, orchestrator := m.ctx, m.orchestrator
	return func() tea.Msg {
		session, err := orchestrator.SubmitVoice(ctx)
		return voiceSubmittedMsg{session: session, err: err}
	}
}

func (m *widgetModel) refresh() {
	m.viewport.SetContent(renderTurns(m.session.Turns, m.width))
	m.viewport.GotoBottom()
}

func (m widgetModel) View() string {
	if !m.session.IsOpen {
		return launcherStyle.Render("💬 Marketplace assistant") + "\n" +
			helpStyle.Render("ctrl+o open • esc quit")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Marketplace assistant"))
	b.WriteString("\n")
	b.WriteString(panelStyle.Width(m.width).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter send • ctrl+r voice • ctrl+s mute • ctrl+o close • esc quit"))
	return b.String()
}

func (m widgetModel) statusLine() string {
	switch {
	case m.failure != "":
		return errorStyle.Render(m.failure)
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.pending > 0:
		return statusStyle.Render("Thinking...")
	case m.muted:
		return statusStyle.Render("Replies muted")
	}
	return ""
}

func renderTurns(turns []llms.Turn, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	blocks := make([]string, 0, len(turns))
	for _, turn := range turns {
		label := assistantStyle.Render("Assistant")
		if turn.Role == llms.TurnRoleUser {
			label = userStyle.Render("You")
		}
		blocks = append(blocks, label+"\n"+wordwrap.String(turn.Content, width-2))
	}
	return strings.Join(blocks, "\n\n")
}
