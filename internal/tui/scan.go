package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/echoprobe/internal/discovery"
	"github.com/muurk/echoprobe/internal/protocol"
)

// Messages for async scan progress
type responseMsg discovery.Response

type scanDoneMsg struct {
	err error
}

type tickMsg time.Time

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#43BF6D")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))
)

// model is the bubbletea model for a live scan.
type model struct {
	opts     discovery.Options
	cancel   context.CancelFunc
	events   chan tea.Msg
	spinner  spinner.Model
	deadline time.Time
	now      time.Time

	responses []discovery.Response
	done      bool
	err       error
}

func newModel(opts discovery.Options, cancel context.CancelFunc, events chan tea.Msg) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	now := time.Now()
	return model{
		opts:     opts,
		cancel:   cancel,
		events:   events,
		spinner:  s,
		deadline: now.Add(opts.Timeout),
		now:      now,
	}
}

// waitForEvent returns a command that delivers the next scan event
// (a response or completion) from the background session.
func waitForEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events), tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Abort early; the session returns what it has so far.
			m.cancel()
			return m, nil
		}
		return m, nil

	case responseMsg:
		m.responses = append(m.responses, discovery.Response(msg))
		return m, waitForEvent(m.events)

	case scanDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case tickMsg:
		m.now = time.Time(msg)
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ECHONET Lite discovery"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("broadcast %s port %d", m.opts.BroadcastAddr, m.opts.Port)))
	b.WriteString("\n\n")

	if m.done {
		b.WriteString(fmt.Sprintf("Scan finished: %d node(s)\n", len(m.responses)))
	} else {
		remaining := time.Until(m.deadline).Round(100 * time.Millisecond)
		if remaining < 0 {
			remaining = 0
		}
		b.WriteString(fmt.Sprintf("%s Listening for replies... %s\n",
			m.spinner.View(),
			mutedStyle.Render(fmt.Sprintf("%s left, q to stop", remaining)),
		))
	}
	b.WriteString("\n")

	for i, r := range m.responses {
		line := fmt.Sprintf("%d. %s", i+1, addrStyle.Render(r.Addr.String()))
		if frame, err := protocol.DecodeHeader(r.Payload); err == nil {
			line += "  " + mutedStyle.Render(fmt.Sprintf("%s from %s", frame.ESVString(), frame.SEOJ))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// Run performs one discovery scan with a live terminal view and
// returns the collected responses once the window closes or the user
// aborts.
func Run(ctx context.Context, opts discovery.Options) ([]discovery.Response, error) {
	opts = opts.WithDefaults()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tea.Msg, 16)

	go func() {
		err := discovery.ScanStream(ctx, opts, func(r discovery.Response) {
			events <- responseMsg(r)
		})
		events <- scanDoneMsg{err: err}
	}()

	// Quitting is driven by scanDoneMsg rather than the context, so
	// an aborted scan still hands back the responses collected so
	// far: cancelling makes the session return promptly, which in
	// turn delivers the done event.
	m := newModel(opts, cancel, events)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, fmt.Errorf("scan view failed: %w", err)
	}

	fm, ok := final.(model)
	if !ok {
		return nil, nil
	}
	return fm.responses, fm.err
}
