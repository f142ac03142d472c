package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clawboard/internal/model"
)

// TaskItem is one card on the kanban board.
type TaskItem struct {
	Task model.Task
}

func (i TaskItem) Title() string {
	return fmt.Sprintf("[%s] %s", i.Task.Priority, i.Task.Title)
}

func (i TaskItem) Description() string {
	desc := i.Task.Assignee
	if desc == "" {
		desc = "unassigned"
	}
	if i.Task.Deadline != "" {
		desc += " · due " + i.Task.Deadline
	}
	return desc
}

func (i TaskItem) FilterValue() string { return i.Task.Title }

// BoardModel is a four-column kanban board over the task list.
type BoardModel struct {
	columns []list.Model
	focused int
	loaded  bool

	// SelectedTask is set when the user picks a card; MoveNext is set
	// when they asked to advance it one column instead of opening it.
	SelectedTask *model.Task
	MoveNext     bool
	Quitting     bool
	Width        int
	Height       int
}

var columnTitles = map[model.TaskStatus]string{
	model.TaskBacklog:    "Backlog",
	model.TaskInProgress: "In Progress",
	model.TaskReview:     "Review",
	model.TaskDone:       "Done",
}

// NewBoardModel groups tasks into the four kanban columns.
func NewBoardModel(tasks []model.Task) BoardModel {
	delegate := list.NewDefaultDelegate()

	byStatus := map[model.TaskStatus][]list.Item{}
	for _, t := range tasks {
		status := t.Status
		if !model.ValidTaskStatus(status) {
			status = model.TaskBacklog
		}
		byStatus[status] = append(byStatus[status], TaskItem{Task: t})
	}

	var columns []list.Model
	for _, status := range model.TaskStatuses {
		l := list.New(byStatus[status], delegate, 0, 0)
		l.Title = columnTitles[status]
		l.SetShowHelp(false)
		columns = append(columns, l)
	}
	return BoardModel{columns: columns}
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		case "tab", "right", "l":
			m.focused = (m.focused + 1) % len(m.columns)
			return m, nil
		case "shift+tab", "left", "h":
			m.focused--
			if m.focused < 0 {
				m.focused = len(m.columns) - 1
			}
			return m, nil
		case "enter":
			return m.pick(false)
		case "m":
			return m.pick(true)
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.loaded = true
		colWidth := msg.Width/len(m.columns) - 6
		colHeight := msg.Height - 8
		for i := range m.columns {
			m.columns[i].SetSize(colWidth, colHeight)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.columns[m.focused], cmd = m.columns[m.focused].Update(msg)
	return m, cmd
}

func (m BoardModel) pick(moveNext bool) (tea.Model, tea.Cmd) {
	if i := m.columns[m.focused].SelectedItem(); i != nil {
		item := i.(TaskItem)
		m.SelectedTask = &item.Task
		m.MoveNext = moveNext
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m BoardModel) View() string {
	if !m.loaded {
		return "Loading board..."
	}

	var rendered []string
	for i, col := range m.columns {
		style := columnStyle
		if i == m.focused {
			style = focusedColumnStyle
		}
		rendered = append(rendered, style.Render(col.View()))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	help := helpStyle.Render("tab/←→: column · enter: open · m: advance · q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, board, help)
}
