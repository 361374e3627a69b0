package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"searchchat/internal/domain"
	"searchchat/internal/service"
)

// Apology is appended when a turn fails in a way the processor did not recover from.
const Apology = "I'm experiencing technical difficulties. Please try again in a moment."

// ErrUnexpectedTurnFailure wraps a panic raised while processing a turn.
var ErrUnexpectedTurnFailure = errors.New("unexpected turn failure")

// TurnRunner is the TUI-facing subset of the turn processor.
type TurnRunner interface {
	Process(ctx context.Context, conv *domain.Conversation) service.Turn
}

// Transcript mirrors conversation changes into durable storage.
type Transcript interface {
	Record(m domain.Message) error
	Clear() error
}

type turnDoneMsg struct {
	conv  *domain.Conversation
	reply domain.Message
	turn  service.Turn
	err   error
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	runner     TurnRunner
	transcript Transcript
	logger     *slog.Logger
	conv       *domain.Conversation
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	status     string
	busy       bool
	ready      bool
}

// New creates a chat model over conv. transcript may be nil. An empty
// conversation starts busy until Init's greeting turn completes.
func New(runner TurnRunner, transcript Transcript, conv *domain.Conversation, logger *slog.Logger) Model {
	if conv == nil {
		conv = domain.NewConversation()
	}
	if logger == nil {
		logger = slog.Default()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask your question (I'll search for the latest info)"
	ti.Focus()
	ti.CharLimit = 0
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return Model{
		runner:     runner,
		transcript: transcript,
		logger:     logger,
		conv:       conv,
		input:      ti,
		viewport:   viewport.New(0, 0),
		spinner:    sp,
		status:     "Enter to send, ctrl+r to clear, ctrl+c to quit.",
		busy:       conv.Len() == 0,
	}
}

// Conversation returns the conversation currently shown.
func (m Model) Conversation() *domain.Conversation { return m.conv }

// Init starts the cursor blink and, for a fresh conversation, fetches the greeting.
func (m Model) Init() tea.Cmd {
	if m.conv.Len() > 0 {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick, runTurn(m.runner, m.conv.Clone()))
}

// Update handles key, window and turn completion events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + 1 + qh + 1 // header, spinner line, status, input, spacer
		vh := msg.Height - reserved - ch
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, vh)
		m.refresh()
		return m, nil
	case turnDoneMsg:
		return m.finishTurn(msg), nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "ctrl+r":
			return m.reset(), nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" || m.busy {
		return m, nil
	}
	user := domain.NewUserMessage(q)
	m.conv.Append(user)
	m.record(user)
	m.input.Reset()
	m.busy = true
	m.status = "Searching and analyzing..."
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, runTurn(m.runner, m.conv.Clone()))
}

func (m Model) reset() Model {
	if m.busy {
		m.status = "Wait for the current answer before clearing."
		return m
	}
	m.conv.Reset()
	if m.transcript != nil {
		if err := m.transcript.Clear(); err != nil {
			m.logger.Error("failed to clear transcript", "error", err)
		}
	}
	m.logger.Info("conversation cleared")
	m.status = "Conversation cleared."
	m.refresh()
	return m
}

func (m Model) finishTurn(msg turnDoneMsg) Model {
	m.busy = false
	m.conv = msg.conv
	m.record(msg.reply)
	switch {
	case msg.err != nil:
		m.logger.Error("turn failed", "error", msg.err)
		m.status = "Something went wrong; see the log for details."
	case msg.turn.SearchFailed():
		m.status = "Search unavailable; answered without fresh results."
	case msg.turn.GenerationFailed():
		m.status = "The model did not answer; try rephrasing."
	default:
		m.status = fmt.Sprintf("Messages in conversation: %d", m.conv.Len())
	}
	m.refresh()
	return m
}

func (m Model) record(msg domain.Message) {
	if m.transcript == nil {
		return
	}
	if err := m.transcript.Record(msg); err != nil {
		m.logger.Error("failed to record message", "error", err)
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// runTurn processes one turn on a private copy of the conversation. A panic
// becomes an apology message so the conversation still grows by one.
func runTurn(runner TurnRunner, conv *domain.Conversation) tea.Cmd {
	return func() (msg tea.Msg) {
		work := conv.Clone()
		defer func() {
			if r := recover(); r != nil {
				fallback := conv.Clone()
				reply := domain.NewAssistantMessage(Apology)
				fallback.Append(reply)
				msg = turnDoneMsg{
					conv:  fallback,
					reply: reply,
					err:   fmt.Errorf("%w: %v", ErrUnexpectedTurnFailure, r),
				}
			}
		}()
		turn := runner.Process(context.Background(), work)
		return turnDoneMsg{conv: work, reply: turn.Message, turn: turn}
	}
}

// View renders the header, transcript, input box and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Search Chat") + " " + captionStyle.Render("answers grounded in a fresh web search")
	activity := ""
	if m.busy {
		activity = m.spinner.View() + " " + captionStyle.Render("Searching and analyzing...")
	}
	chat := chatBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + activity + "\n" + input + "\n" + status
}

func (m Model) renderConversation() string {
	msgs := m.conv.Messages()
	if len(msgs) == 0 {
		return captionStyle.Render("No messages yet.")
	}
	width := max(10, m.viewport.Width-2)
	body := lipgloss.NewStyle().Width(width)
	var b strings.Builder
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.Role == domain.RoleUser {
			b.WriteString(userLabelStyle.Render("You"))
		} else {
			b.WriteString(assistantLabelStyle.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(body.Render(msg.Content))
	}
	return b.String()
}

var (
	chatBoxStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle         = lipgloss.NewStyle().Bold(true)
	captionStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	spinnerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	userLabelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
