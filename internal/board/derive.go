package board

import (
	"slices"

	"kanban/internal/models"
)

// FilterTasks returns the tasks selected by filter. Sorting filters order by
// creation time and keep input order for equal timestamps; priority and
// completion filters keep input order. Unknown filters return every task.
// The input slice is never modified.
func FilterTasks(tasks []models.Task, filter models.Filter) []models.Task {
	switch filter {
	case models.FilterNewest:
		out := slices.Clone(tasks)
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		return out
	case models.FilterOldest:
		out := slices.Clone(tasks)
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
		return out
	case models.FilterHigh, models.FilterMedium, models.FilterLow:
		want, _ := filter.Priority()
		return selectTasks(tasks, func(t models.Task) bool { return t.Priority == want })
	case models.FilterActive:
		return selectTasks(tasks, func(t models.Task) bool { return t.Status != models.StatusDone })
	case models.FilterCompleted:
		return selectTasks(tasks, func(t models.Task) bool { return t.Status == models.StatusDone })
	default:
		return slices.Clone(tasks)
	}
}

// GroupByStatus splits tasks into the three columns, keeping input order in
// each. Columns are never nil.
func GroupByStatus(tasks []models.Task) models.Columns {
	cols := models.Columns{
		Todo:  []models.Task{},
		Doing: []models.Task{},
		Done:  []models.Task{},
	}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusTodo:
			cols.Todo = append(cols.Todo, t)
		case models.StatusDoing:
			cols.Doing = append(cols.Doing, t)
		case models.StatusDone:
			cols.Done = append(cols.Done, t)
		}
	}
	return cols
}

// ScopeToProject returns the tasks owned by projectID.
func ScopeToProject(tasks []models.Task, projectID string) []models.Task {
	return selectTasks(tasks, func(t models.Task) bool { return t.ProjectID == projectID })
}

// Derive builds a project's board: scope, then filter, then group.
func Derive(tasks []models.Task, projectID string, filter models.Filter) models.Columns {
	return GroupByStatus(FilterTasks(ScopeToProject(tasks, projectID), filter))
}

func selectTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
