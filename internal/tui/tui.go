// Package tui provides a Bubble Tea terminal user interface for playlist-spreader.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/playlist-spreader/internal/config"
	"github.com/handiism/playlist-spreader/internal/pipeline"
	"go.uber.org/zap"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

const maxLogs = 10

var errCancelled = errors.New("cancelled by user")

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateRunning
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	logger    *zap.Logger
	logs      []LogEntry
	summary   *pipeline.Summary
	err       error

	ctx    context.Context
	cancel context.CancelFunc
	events chan pipeline.ProgressEvent

	// Options
	passThrough bool
	extended    bool
	readTags    bool
	verbose     bool

	width  int
	height int
}

// NewModel creates a new TUI model. settings are used as the base of
// every run; a nil logger discards diagnostics.
func NewModel(settings *config.Settings, logger *zap.Logger) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "/music/christmas.csv"
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:       StateInput,
		textInput:   ti,
		spinner:     sp,
		settings:    settings,
		logger:      logger,
		logs:        make([]LogEntry, 0),
		ctx:         ctx,
		cancel:      cancel,
		passThrough: settings.PassThrough,
		extended:    settings.M3UExtended,
		readTags:    settings.ReadTags,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for every progress event of a run.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// RunDoneMsg is sent when a run completes.
	RunDoneMsg struct {
		Summary *pipeline.Summary
		Err     error
	}

	// eventsClosedMsg is sent once a run has emitted its last event.
	eventsClosedMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateRunning {
				m.cancel()
				m.state = StateError
				m.err = errCancelled
			}

		case "enter":
			if m.state == StateInput && strings.TrimSpace(m.textInput.Value()) != "" {
				m.state = StateRunning
				m.events = make(chan pipeline.ProgressEvent, 64)
				return m, tea.Batch(m.startRun(), waitForEvent(m.events), m.spinner.Tick)
			}

		case "ctrl+t":
			if m.state == StateInput {
				m.passThrough = !m.passThrough
			}
			return m, nil

		case "ctrl+x":
			if m.state == StateInput {
				m.extended = !m.extended
			}
			return m, nil

		case "ctrl+r":
			if m.state == StateInput {
				m.readTags = !m.readTags
			}
			return m, nil

		case "ctrl+o":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.summary = nil
				m.err = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		cmds = append(cmds, waitForEvent(m.events))
		if msg.Event.Level == pipeline.LevelVerbose && !m.verbose {
			return m, tea.Batch(cmds...)
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case eventsClosedMsg:
		return m, nil

	case RunDoneMsg:
		switch {
		case m.state != StateRunning:
			// Cancelled while running; keep the error view.
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.state = StateComplete
			m.summary = msg.Summary
		}
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♫ Playlist Spreader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Shuffle a playlist, keeping versions of the same song apart"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func check(on bool) string {
	if on {
		return "[×]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter track list (CSV, TSV or M3U):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Pass-through, keep input order (ctrl+t)\n", check(m.passThrough)))
	b.WriteString(fmt.Sprintf("  %s Extended M3U (ctrl+x)\n", check(m.extended)))
	b.WriteString(fmt.Sprintf("  %s Read ID3 tags (ctrl+r)\n", check(m.readTags)))
	b.WriteString(fmt.Sprintf("  %s Verbose output (ctrl+o)\n", check(m.verbose)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Min distance: %d | Format: %s", m.settings.MinDistance, m.settings.Format().Extension())))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Shuffling..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	s := m.summary
	lines := []string{"✓ Playlist written!", ""}
	lines = append(lines, fmt.Sprintf("Tracks: %d", s.InputTracks))
	lines = append(lines, fmt.Sprintf("Slots: %d", len(s.Placements)))
	if s.PassThrough {
		lines = append(lines, "Mode: pass-through")
	} else {
		lines = append(lines, fmt.Sprintf("Titles: %d (%d with versions)", len(s.Grouping.Groups), len(s.Grouping.Report.Duplicates)))
		lines = append(lines, fmt.Sprintf("Seed: %d", s.Seed))
		lines = append(lines, fmt.Sprintf("Relaxations: %d", len(s.Shuffle.Relaxations)))
		lines = append(lines, "Audit: "+s.Audit.Summary())
	}
	lines = append(lines, "Output: "+s.PlaylistPath)
	if s.DistributionPath != "" {
		lines = append(lines, "Distribution: "+s.DistributionPath)
	}
	b.WriteString(boxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	if !s.PassThrough {
		for _, g := range s.Grouping.Report.Duplicates {
			b.WriteString(groupStyle.Render(fmt.Sprintf("  ♪ %dx %s", g.Count, g.Title)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • ctrl+t: pass-through • ctrl+x: extended • ctrl+r: tags • ctrl+o: verbose • esc: quit"
	case StateRunning:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return ""
}

// runSettings applies the toggled options to a copy of the base settings.
func (m Model) runSettings() *config.Settings {
	s := *m.settings
	s.PassThrough = m.passThrough
	s.M3UExtended = m.extended
	s.ReadTags = m.readTags
	if s.PassThrough {
		s.Seed = nil
		s.DistributionReport = ""
		s.SuppressDistribution = false
	}
	return &s
}

// startRun executes a run and streams its progress into m.events.
func (m Model) startRun() tea.Cmd {
	input := strings.TrimSpace(m.textInput.Value())
	settings := m.runSettings()
	ctx, events, logger := m.ctx, m.events, m.logger

	return func() tea.Msg {
		defer close(events)

		runner := pipeline.NewRunner(settings, logger, func(e pipeline.ProgressEvent) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		})

		summary, err := runner.Run(ctx, input, "")
		return RunDoneMsg{Summary: summary, Err: err}
	}
}

// waitForEvent delivers the next progress event of a run.
func waitForEvent(events <-chan pipeline.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return ProgressMsg{Event: e}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(settings, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
