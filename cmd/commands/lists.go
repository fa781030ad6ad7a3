package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

// NewListsCommand returns the lists subcommand.
func NewListsCommand() *cli.Command {
	return &cli.Command{
		Name:  "lists",
		Usage: "Manage task lists",
		Commands: []*cli.Command{
			{
				Name:   "ls",
				Usage:  "Show all lists",
				Action: runListsLs,
			},
			{
				Name:      "add",
				Usage:     "Create a list",
				ArgsUsage: "<name> [description]",
				Action:    runListsAdd,
			},
			{
				Name:      "rm",
				Usage:     "Delete a list",
				ArgsUsage: "<list_id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "cascade",
						Usage: "Also delete the list's tasks",
					},
				},
				Action: runListsRm,
			},
		},
		DefaultCommand: "ls",
	}
}

func runListsLs(_ context.Context, cmd *cli.Command) error {
	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}

	lists := mgr.Lists()
	if len(lists) == 0 {
		fmt.Println("No lists found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTASKS\tDESCRIPTION")
	for _, l := range lists {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", l.ID, l.Name, len(l.Tasks), l.Description)
	}
	return w.Flush()
}

func runListsAdd(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().Get(0)
	if name == "" {
		return fmt.Errorf("usage: todo lists add <name> [description]")
	}

	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}
	l, err := mgr.CreateList(name, cmd.Args().Get(1))
	if err != nil {
		return err
	}
	fmt.Printf("Created list %s (%s)\n", l.Name, l.ID)
	return nil
}

func runListsRm(_ context.Context, cmd *cli.Command) error {
	id := cmd.Args().Get(0)
	if id == "" {
		return fmt.Errorf("usage: todo lists rm <list_id>")
	}

	mgr, _, _, err := newManager(cmd)
	if err != nil {
		return err
	}
	if err := mgr.DeleteList(model.ListID(id), cmd.Bool("cascade")); err != nil {
		return err
	}
	fmt.Printf("Deleted list %s\n", id)
	return nil
}
