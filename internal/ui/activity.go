package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/backoffice/internal/logtail"
)

// Activity view limits.
const (
	activityBacklog = 500
	activityLimit   = 2000
)

// activityState tails the application's log file.
type activityState struct {
	follower *logtail.Follower
	lines    []string
	viewport viewport.Model
	pending  bool
	follow   bool
	err      string
}

type activityMsg struct {
	follower *logtail.Follower
	lines    []string
	reset    bool
	err      error
}

func newActivityState() *activityState {
	return &activityState{viewport: viewport.New(0, 0), follow: true}
}

func (a *activityState) resize(width, height int) {
	a.viewport.Width = max(width-2, 0)
	a.viewport.Height = max(height, 0)
	a.refresh()
}

func (a *activityState) apply(msg activityMsg) {
	a.pending = false
	if msg.follower != nil {
		a.follower = msg.follower
	}
	if msg.err != nil {
		a.err = msg.err.Error()
		return
	}
	a.err = ""
	if msg.reset {
		a.lines = nil
	}
	if len(msg.lines) == 0 && !msg.reset {
		return
	}
	a.lines = append(a.lines, msg.lines...)
	if extra := len(a.lines) - activityLimit; extra > 0 {
		a.lines = append([]string(nil), a.lines[extra:]...)
	}
	a.refresh()
}

func (a *activityState) refresh() {
	a.viewport.SetContent(strings.Join(a.lines, "\n"))
	if a.follow {
		a.viewport.GotoBottom()
	}
}

// activityCmd loads the backlog on first use and new lines afterwards.
func (m Model) activityCmd() tea.Cmd {
	a := m.activity
	if m.logPath == "" || a.pending {
		return nil
	}
	a.pending = true
	path, f := m.logPath, a.follower
	return func() tea.Msg {
		if f == nil {
			lines, err := logtail.Read(path, activityBacklog)
			if err != nil {
				return activityMsg{err: err}
			}
			f = logtail.Follow(path)
			if err := f.SeekEnd(); err != nil {
				return activityMsg{err: err}
			}
			return activityMsg{follower: f, lines: lines, reset: true}
		}
		lines, err := f.Next()
		return activityMsg{lines: lines, err: err}
	}
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.activity
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = viewList
	case key.Matches(msg, m.keys.Toggle):
		a.follow = !a.follow
		if a.follow {
			a.viewport.GotoBottom()
		}
	case key.Matches(msg, m.keys.Up):
		a.viewport.ScrollUp(1)
		a.follow = false
	case key.Matches(msg, m.keys.Down):
		a.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PrevPage):
		a.viewport.HalfPageUp()
		a.follow = false
	case key.Matches(msg, m.keys.NextPage):
		a.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.FirstPage):
		a.viewport.GotoTop()
		a.follow = false
	case key.Matches(msg, m.keys.LastPage):
		a.viewport.GotoBottom()
		a.follow = true
	}
	return m, nil
}

var (
	logTimestampRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`)
	logFailureRe   = regexp.MustCompile(`(?i)\b(failed|error)\b`)
)

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	a := m.activity

	var body string
	switch {
	case m.logPath == "":
		body = styles.MutedText.Render("Logging to a file is disabled.")
	case a.err != "":
		body = styles.DangerText.Render("Could not read " + truncateMiddle(m.logPath, 40) + ": " + a.err)
	case len(a.lines) == 0 && !a.pending:
		body = styles.MutedText.Render("No activity yet.")
	default:
		lines := strings.Split(a.viewport.View(), "\n")
		for i, line := range lines {
			lines[i] = colorizeLogLine(line, styles)
		}
		body = strings.Join(lines, "\n")
	}
	return lipgloss.NewStyle().Padding(0, 1).Height(m.contentHeight()).Render(body)
}

func colorizeLogLine(line string, styles Styles) string {
	ts := logTimestampRe.FindString(line)
	rest := strings.TrimPrefix(line, ts)
	text := styles.Text
	if logFailureRe.MatchString(rest) {
		text = styles.DangerText
	}
	if ts == "" {
		return text.Render(rest)
	}
	return styles.FaintText.Render(ts) + text.Render(rest)
}
