package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
	"github.com/gf-haseeb/advanced-todo-system/internal/todo"
)

const defaultListName = "Inbox"

// NewTasksCommand returns the tasks subcommand.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Manage tasks",
		Commands: []*cli.Command{
			{
				Name:  "ls",
				Usage: "Show tasks, all lists or one",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "list",
						Usage: "Only show tasks of this list ID",
					},
				},
				Action: runTasksLs,
			},
			{
				Name:      "add",
				Usage:     "Create a task",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "list",
						Usage: "List ID to create the task in (defaults to the Inbox list)",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Task description",
					},
					&cli.StringFlag{
						Name:  "priority",
						Usage: "low, medium or high",
						Value: string(model.PriorityMedium),
					},
				},
				Action: runTasksAdd,
			},
			{
				Name:      "rm",
				Usage:     "Delete a task",
				ArgsUsage: "<task_id>",
				Action:    runTasksRm,
			},
			{
				Name:      "done",
				Usage:     "Mark a task completed",
				ArgsUsage: "<task_id>",
				Action:    runTasksDone,
			},
			{
				Name:      "move",
				Usage:     "Move a task to another list",
				ArgsUsage: "<task_id> <source_list_id> <target_list_id>",
				Action:    runTasksMove,
			},
		},
		DefaultCommand: "ls",
	}
}

func runTasksLs(_ context.Context, cmd *cli.Command) error {
	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}

	var tasks []model.Task
	if listID := cmd.String("list"); listID != "" {
		tasks, err = mgr.TasksIn(model.ListID(listID))
		if err != nil {
			return err
		}
	} else {
		tasks = mgr.AllTasks()
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, t.Title)
	}
	return w.Flush()
}

func runTasksAdd(_ context.Context, cmd *cli.Command) error {
	title := cmd.Args().Get(0)
	if title == "" {
		return fmt.Errorf("usage: todo tasks add <title>")
	}

	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}

	listID := model.ListID(cmd.String("list"))
	if listID == "" {
		inbox, err := mgr.EnsureList(defaultListName, "Default list")
		if err != nil {
			return err
		}
		listID = inbox.ID
	}

	t, err := mgr.CreateTask(listID, title, cmd.String("description"), model.Priority(cmd.String("priority")))
	if err != nil {
		return err
	}
	fmt.Printf("Created task %s in list %s\n", t.ID, listID)
	return nil
}

func runTasksRm(_ context.Context, cmd *cli.Command) error {
	id := cmd.Args().Get(0)
	if id == "" {
		return fmt.Errorf("usage: todo tasks rm <task_id>")
	}

	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}
	if err := mgr.DeleteTask(model.TaskID(id)); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s\n", id)
	return nil
}

func runTasksDone(_ context.Context, cmd *cli.Command) error {
	id := cmd.Args().Get(0)
	if id == "" {
		return fmt.Errorf("usage: todo tasks done <task_id>")
	}

	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}
	status := model.StatusCompleted
	t, err := mgr.UpdateTask(model.TaskID(id), todo.TaskPatch{Status: &status})
	if err != nil {
		return err
	}
	fmt.Printf("Completed task %s (%s)\n", t.ID, t.Title)
	return nil
}

func runTasksMove(_ context.Context, cmd *cli.Command) error {
	taskID := cmd.Args().Get(0)
	sourceID := cmd.Args().Get(1)
	targetID := cmd.Args().Get(2)
	if taskID == "" || sourceID == "" || targetID == "" {
		return fmt.Errorf("usage: todo tasks move <task_id> <source_list_id> <target_list_id>")
	}

	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}
	t, err := mgr.MoveTaskToList(model.ListID(sourceID), model.TaskID(taskID), model.ListID(targetID))
	if err != nil {
		return err
	}
	fmt.Printf("Moved task %s to list %s\n", t.ID, targetID)
	return nil
}
