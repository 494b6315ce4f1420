package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kanban/internal/board"
	"kanban/internal/models"
	"kanban/internal/render"
)

var boardFlags struct {
	project string
	filter  string
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the board columns",
	Long: `Print the To Do, Doing and Done columns of a project.

Filters: all, newest-first, oldest-first, high, medium, low,
active-only, completed-only (the web UI names todas, recentes,
antigas, alta, media and baixa work too).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := models.ParseFilter(boardFlags.filter)
		if err != nil {
			return err
		}
		return withApp(cmd, func(a *app) error {
			if err := selectProject(a.store, boardFlags.project); err != nil {
				return err
			}
			var project *models.Project
			if p, ok := a.store.ActiveProject(); ok {
				project = &p
			} else if a.store.Scoped() {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet. Create one with \"kanban project add NAME\".")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Board(project, a.store.Board(filter)))
			return nil
		})
	},
}

func init() {
	boardCmd.Flags().StringVarP(&boardFlags.project, "project", "p", "", "project id (default: first project)")
	boardCmd.Flags().StringVarP(&boardFlags.filter, "filter", "f", "all", "task filter")
}

// selectProject makes id active when given. Ids may be abbreviated to any
// unique prefix.
func selectProject(store *board.Store, id string) error {
	if id == "" {
		return nil
	}
	p, err := findProject(store, id)
	if err != nil {
		return err
	}
	store.SetActiveProject(&p)
	return nil
}
