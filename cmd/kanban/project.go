package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kanban/internal/board"
	"kanban/internal/models"
)

var projectDescription string

var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"projects"},
	Short:   "Create, list and delete projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			p, ok := a.store.AddProject(strings.Join(args, " "), projectDescription)
			if !ok {
				if !a.store.Scoped() {
					return errors.New("projects are disabled for the flat list")
				}
				return errors.New("project name must not be empty")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created project %s (%s)\n", p.Name, p.ID)
			return nil
		})
	},
}

var projectListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List projects with their task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			active, _ := a.store.ActiveProject()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "\tID\tNAME\tTODO\tDOING\tDONE\tCREATED")
			for _, p := range a.store.Projects() {
				marker := ""
				if p.ID == active.ID {
					marker = "*"
				}
				counts := board.GroupByStatus(a.store.ProjectTasks(p.ID)).Counts()
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n", marker, p.ID, p.Name,
					counts[models.StatusTodo], counts[models.StatusDoing], counts[models.StatusDone],
					p.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		})
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a project and all of its tasks",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			p, err := findProject(a.store, args[0])
			if err != nil {
				return err
			}
			removed := len(a.store.ProjectTasks(p.ID))
			a.store.DeleteProject(p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "deleted project %s and %d task(s)\n", p.Name, removed)
			return nil
		})
	},
}

func init() {
	projectAddCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "optional project description")
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectRemoveCmd)
}
