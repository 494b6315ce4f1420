package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kanban/internal/models"
)

var taskFlags struct {
	project  string
	priority string
	text     string
	newPrio  string
}

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Add, move, edit and delete tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add TEXT",
	Short: "Add a task to the To Do column",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := models.ParsePriority(taskFlags.priority)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			if err := selectProject(a.store, taskFlags.project); err != nil {
				return err
			}
			t, ok := a.store.AddTask(strings.Join(args, " "), priority)
			if !ok {
				if _, active := a.store.ActiveProject(); a.store.Scoped() && !active {
					return errors.New("no active project; create one with \"kanban project add NAME\"")
				}
				return errors.New("task text must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added task %s [%s]\n", t.ID, t.Priority)
			return nil
		})
	},
}

var taskMoveCmd = &cobra.Command{
	Use:   "move ID STATUS",
	Short: "Move a task to todo, doing or done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := models.ParseStatus(args[1])
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			t, err := findTask(a.store, args[0])
			if err != nil {
				return err
			}
			a.store.MoveTask(t.ID, status)
			fmt.Fprintf(cmd.OutOrStdout(), "moved %q to %s\n", t.Text, status.Label())
			return nil
		})
	},
}

var taskEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change the text or priority of a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd models.TaskUpdate
		if cmd.Flags().Changed("text") {
			text := taskFlags.text
			upd.Text = &text
		}
		if cmd.Flags().Changed("priority") {
			p, err := models.ParsePriority(taskFlags.newPrio)
			if err != nil {
				return err
			}
			upd.Priority = &p
		}
		if upd.Text == nil && upd.Priority == nil {
			return errors.New("nothing to change; pass --text or --priority")
		}
		return withApp(cmd, func(a *app) error {
			t, err := findTask(a.store, args[0])
			if err != nil {
				return err
			}
			if !a.store.UpdateTask(t.ID, upd) {
				fmt.Fprintln(cmd.OutOrStdout(), "task unchanged")
				return nil
			}
			t, _ = a.store.Task(t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "updated task %s: %q [%s]\n", t.ID, t.Text, t.Priority)
			return nil
		})
	},
}

var taskRemoveCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			t, err := findTask(a.store, args[0])
			if err != nil {
				return err
			}
			a.store.DeleteTask(t.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted task %q\n", t.Text)
			return nil
		})
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskFlags.priority, "priority", "P", models.DefaultPriority.String(), "baixa, media or alta (low, medium, high)")
	taskAddCmd.Flags().StringVarP(&taskFlags.project, "project", "p", "", "project id (default: first project)")
	taskEditCmd.Flags().StringVar(&taskFlags.text, "text", "", "new task text")
	taskEditCmd.Flags().StringVarP(&taskFlags.newPrio, "priority", "P", "", "new priority")
	taskCmd.AddCommand(taskAddCmd, taskMoveCmd, taskEditCmd, taskRemoveCmd)
}
