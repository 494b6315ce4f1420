package main

import (
	"fmt"
	"strings"

	"kanban/internal/board"
	"kanban/internal/models"
)

func findProject(store *board.Store, ref string) (models.Project, error) {
	if p, ok := store.Project(ref); ok {
		return p, nil
	}
	var matches []models.Project
	for _, p := range store.Projects() {
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return models.Project{}, fmt.Errorf("no project matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Project{}, fmt.Errorf("project id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func findTask(store *board.Store, ref string) (models.Task, error) {
	if t, ok := store.Task(ref); ok {
		return t, nil
	}
	var matches []models.Task
	for _, t := range store.Tasks() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}
