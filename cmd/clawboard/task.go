package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"clawboard/internal/model"
	"clawboard/internal/roster"
)

// askOneFunc is swapped out in tests.
var askOneFunc = survey.AskOne

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tracked tasks",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	RunE:  runTaskList,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	RunE:  runTaskAdd,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: "Move a task to another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

func init() {
	taskListCmd.Flags().Bool("json", false, "Output as JSON")
	taskAddCmd.Flags().String("assignee", "", "Agent the task is assigned to")
	taskAddCmd.Flags().String("priority", "medium", "Priority: low, medium, high or urgent")
	taskAddCmd.Flags().String("description", "", "Task description")
	taskAddCmd.Flags().String("deadline", "", "Deadline, free-form (e.g. 2026-09-15)")

	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskMoveCmd, taskDoneCmd, taskRmCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskList(cmd *cobra.Command, args []string) error {
	store, err := newTaskStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tasks, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tASSIGNEE\tTITLE")
	for _, t := range tasks {
		id := t.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id, t.Status, t.Priority, t.Assignee, t.Title)
	}
	return w.Flush()
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	store, err := newTaskStore()
	if err != nil {
		return err
	}
	defer store.Close()

	title := ""
	if len(args) > 0 {
		title = args[0]
	} else {
		if err := askOneFunc(&survey.Input{Message: "Task title:"}, &title, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	assignee, _ := cmd.Flags().GetString("assignee")
	if assignee == "" {
		var names []string
		for _, a := range roster.All() {
			names = append(names, a.Name)
		}
		if err := askOneFunc(&survey.Select{Message: "Assignee:", Options: names}, &assignee); err != nil {
			return err
		}
	}

	priority, _ := cmd.Flags().GetString("priority")
	description, _ := cmd.Flags().GetString("description")
	deadline, _ := cmd.Flags().GetString("deadline")

	created, err := store.Create(cmd.Context(), model.Task{
		Title:       title,
		Description: description,
		Assignee:    assignee,
		Priority:    model.TaskPriority(priority),
		Deadline:    deadline,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", created.ID, created.Title)
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	status := model.TaskStatus(args[1])
	if !model.ValidTaskStatus(status) {
		return fmt.Errorf("unknown status %q (want backlog, in_progress, review or done)", args[1])
	}

	store, err := newTaskStore()
	if err != nil {
		return err
	}
	defer store.Close()

	t, err := store.SetStatus(cmd.Context(), args[0], status)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to %s\n", t.Title, t.Status)
	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	store, err := newTaskStore()
	if err != nil {
		return err
	}
	defer store.Close()

	t, err := store.SetStatus(cmd.Context(), args[0], model.TaskDone)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Completed %q\n", t.Title)
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	store, err := newTaskStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
