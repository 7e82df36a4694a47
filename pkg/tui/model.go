// Package tui provides the terminal chat front-end: a scrollback viewport
// over the conversation and a single-line input, with /note support and
// clipboard copy of the last reply.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Agent is the slice of the chat agent the TUI needs.
type Agent interface {
	ProcessMessage(ctx context.Context, message string) (string, error)
	Note(content string, importance float64)
}

type replyMsg struct {
	reply string
	err   error
}

// Model is the bubbletea model for the chat session.
type Model struct {
	agent     Agent
	viewport  viewport.Model
	input     textinput.Model
	lines     []string
	lastReply string
	busy      bool
	ready     bool
	width     int
}

// New creates the chat model.
func New(agent Agent) Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Focus()

	return Model{
		agent: agent,
		input: input,
		lines: []string{noticeStyle.Render("The agent remembers everything you teach it.")},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		viewportHeight := msg.Height - 6
		if viewportHeight < 3 {
			viewportHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 6
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+y":
			if m.lastReply != "" {
				if err := clipboard.WriteAll(m.lastReply); err == nil {
					m.appendLine(noticeStyle.Render("(last reply copied to clipboard)"))
				}
			}
			return m, nil
		case "enter":
			return m.submit()
		}

	case replyMsg:
		m.busy = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("error: " + msg.err.Error()))
		} else {
			m.lastReply = msg.reply
			m.appendLine(assistantStyle.Render("assistant: " + msg.reply))
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.input.Reset()

	switch {
	case text == "exit" || text == "quit":
		return m, tea.Quit
	case strings.HasPrefix(text, "/note "):
		content, importance := parseNote(strings.TrimPrefix(text, "/note "))
		m.agent.Note(content, importance)
		m.appendLine(noticeStyle.Render("(noted: " + content + ")"))
		return m, nil
	}

	m.appendLine(userStyle.Render("you: " + text))
	m.busy = true
	agent := m.agent
	return m, func() tea.Msg {
		reply, err := agent.ProcessMessage(context.Background(), text)
		return replyMsg{reply: reply, err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	status := ""
	if m.busy {
		status = noticeStyle.Render("thinking...")
	}

	return headerStyle.Render("mnemo") + "\n" +
		m.viewport.View() + "\n" +
		status + "\n" +
		inputBoxStyle.Width(m.width-2).Render(m.input.View()) + "\n" +
		helpStyle.Render("enter send | /note [importance] text | ctrl+y copy last reply | esc quit")
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshViewport()
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// parseNote splits an optional leading importance score off a /note
// payload. "0.8 user is in a hurry" -> ("user is in a hurry", 0.8).
func parseNote(payload string) (string, float64) {
	payload = strings.TrimSpace(payload)
	first, rest, found := strings.Cut(payload, " ")
	if found {
		if importance, err := strconv.ParseFloat(first, 64); err == nil {
			return strings.TrimSpace(rest), importance
		}
	}
	return payload, 0
}

// Run starts the TUI event loop and blocks until the user quits.
func Run(agent Agent) error {
	program := tea.NewProgram(New(agent), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
