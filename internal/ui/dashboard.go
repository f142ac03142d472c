package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clawboard/internal/model"
	"clawboard/internal/poller"
)

// FetchSnapshotFunc is the signature for the data fetching function.
type FetchSnapshotFunc func() (poller.Snapshot, error)

// FetchSnapshot will be set by the caller in the cmd package.
var FetchSnapshot FetchSnapshotFunc

type dashboardModel struct {
	snapshot   poller.Snapshot
	haveData   bool
	lastUpdate time.Time
	err        error
	width      int
	height     int
	interval   time.Duration
}

type dashboardTickMsg time.Time
type dashboardRefreshedMsg struct {
	snapshot poller.Snapshot
}

// NewDashboardModel builds the live agent dashboard, re-fetching every interval.
func NewDashboardModel(interval time.Duration) dashboardModel {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return dashboardModel{interval: interval}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(refreshSnapshotCmd(), m.tick())
}

func (m dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return dashboardTickMsg(t)
	})
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, refreshSnapshotCmd()
		}

	case dashboardTickMsg:
		return m, tea.Batch(refreshSnapshotCmd(), m.tick())

	case dashboardRefreshedMsg:
		m.snapshot = msg.snapshot
		m.haveData = true
		m.lastUpdate = time.Now()
		m.err = nil
		return m, nil

	case error:
		m.err = msg
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	var s strings.Builder

	conn := statusActiveStyle.Render("connected")
	if !m.snapshot.Connected {
		conn = statusOfflineStyle.Render("disconnected")
	}
	s.WriteString(titleStyle.Render(" Agent Dashboard ") + "  " + conn + "\n")
	if m.err != nil {
		s.WriteString(logErrorStyle.Render(fmt.Sprintf("refresh failed: %v", m.err)) + "\n")
	}
	if !m.haveData {
		s.WriteString("\nLoading...\n")
		return s.String()
	}
	s.WriteString(fmt.Sprintf("Last updated: %s (press 'q' to quit, 'r' to refresh)\n\n",
		m.lastUpdate.Format(time.Kitchen)))

	for _, agent := range m.snapshot.Statuses {
		s.WriteString(renderAgentCard(agent))
	}

	s.WriteString(renderActivityTail(m.snapshot.Activity.Entries, m.height))
	return s.String()
}

func renderAgentCard(a model.AgentStatus) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render(fmt.Sprintf("%-8s", a.Name)),
		styleForState(a.Status).Render(string(a.Status))))

	if a.CurrentTask != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Task:"), valueStyle.Render(a.CurrentTask)))
	}
	if a.Model != "" {
		b.WriteString(fmt.Sprintf("  %s %s", labelStyle.Render("Model:"), valueStyle.Render(a.Model)))
		if a.TokenUsage > 0 {
			b.WriteString(valueStyle.Render(fmt.Sprintf(" (%d tokens)", a.TokenUsage)))
		}
		b.WriteString("\n")
	}
	if a.LastActivity > 0 {
		seen := time.UnixMilli(a.LastActivity)
		b.WriteString(fmt.Sprintf("  %s %s ago\n", labelStyle.Render("Seen:"),
			valueStyle.Render(time.Since(seen).Round(time.Second).String())))
	}

	return cardStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func styleForState(s model.AgentState) lipgloss.Style {
	switch s {
	case model.StateActive:
		return statusActiveStyle
	case model.StateWorking:
		return statusWorkingStyle
	case model.StateIdle:
		return statusIdleStyle
	default:
		return statusOfflineStyle
	}
}

func renderActivityTail(entries []model.ActivityLogEntry, height int) string {
	var b strings.Builder
	b.WriteString("\n" + titleStyle.Render(" Recent Activity ") + "\n")
	if len(entries) == 0 {
		b.WriteString(valueStyle.Render("No activity.") + "\n")
		return b.String()
	}

	max := 8
	if height > 0 && height/3 > max {
		max = height / 3
	}
	if len(entries) < max {
		max = len(entries)
	}
	for _, e := range entries[:max] {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			valueStyle.Render(e.Timestamp.Format("15:04:05")),
			labelStyle.Render(fmt.Sprintf("%-8s", e.Agent)),
			styleForLevel(e.Level).Render(e.Action)))
	}
	return b.String()
}

func styleForLevel(l model.LogLevel) lipgloss.Style {
	switch l {
	case model.LevelSuccess:
		return logSuccessStyle
	case model.LevelWarning:
		return logWarningStyle
	case model.LevelError:
		return logErrorStyle
	default:
		return logInfoStyle
	}
}

func refreshSnapshotCmd() tea.Cmd {
	return func() tea.Msg {
		if FetchSnapshot == nil {
			return fmt.Errorf("snapshot fetch function is not set")
		}
		snap, err := FetchSnapshot()
		if err != nil {
			return err
		}
		return dashboardRefreshedMsg{snapshot: snap}
	}
}
