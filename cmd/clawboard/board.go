package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"clawboard/internal/model"
	"clawboard/internal/ui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive kanban board for tracked tasks",
	Long: `View tasks in an interactive kanban board. Press enter on a card to
see its details, or 'm' to advance it to the next column.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	store, err := newTaskStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	// Test Hook: Skip TUI if requested
	if os.Getenv("CLAWBOARD_TEST_SKIP_TUI") == "1" {
		counts := map[model.TaskStatus]int{}
		for _, t := range tasks {
			counts[t.Status]++
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Board initialized with %d backlog, %d in progress, %d review, %d done\n",
			counts[model.TaskBacklog], counts[model.TaskInProgress], counts[model.TaskReview], counts[model.TaskDone])
		return nil
	}

	p := tea.NewProgram(ui.NewBoardModel(tasks), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}

	finalModel, ok := m.(ui.BoardModel)
	if !ok {
		return fmt.Errorf("failed to get board model")
	}
	if finalModel.SelectedTask == nil {
		return nil
	}

	t := *finalModel.SelectedTask
	if finalModel.MoveNext {
		next, ok := nextStatus(t.Status)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already done\n", t.Title)
			return nil
		}
		moved, err := store.SetStatus(cmd.Context(), t.ID, next)
		if err != nil {
			return fmt.Errorf("move task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n", moved.Title, moved.Status)
		return nil
	}

	printTask(cmd, t)
	return nil
}

func nextStatus(s model.TaskStatus) (model.TaskStatus, bool) {
	for i, v := range model.TaskStatuses {
		if v == s && i+1 < len(model.TaskStatuses) {
			return model.TaskStatuses[i+1], true
		}
	}
	return s, false
}

func printTask(cmd *cobra.Command, t model.Task) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", t.Title)
	fmt.Fprintf(out, "  id:       %s\n", t.ID)
	fmt.Fprintf(out, "  status:   %s\n", t.Status)
	fmt.Fprintf(out, "  priority: %s\n", t.Priority)
	if t.Assignee != "" {
		fmt.Fprintf(out, "  assignee: %s\n", t.Assignee)
	}
	if t.Deadline != "" {
		fmt.Fprintf(out, "  deadline: %s\n", t.Deadline)
	}
	if t.Description != "" {
		fmt.Fprintf(out, "\n%s\n", t.Description)
	}
	for _, s := range t.Subtasks {
		mark := " "
		if s.Completed {
			mark = "x"
		}
		fmt.Fprintf(out, "  [%s] %s\n", mark, s.Title)
	}
}
