// Package persist saves and restores the board collections on a storage
// medium under fixed keys, one JSON array per collection.
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"kanban/internal/models"
	"kanban/internal/storage"
)

// Keys names the medium entries holding each collection. An empty Projects
// key means projects are not persisted.
type Keys struct {
	Projects string
	Tasks    string
}

var (
	// BoardKeys are used by the project-scoped board.
	BoardKeys = Keys{Projects: "kanban-projects", Tasks: "kanban-tasks"}
	// ListKeys are used by the flat to-do list, which has no projects.
	ListKeys = Keys{Tasks: "todo-tasks"}
)

// Snapshot is the full persisted state.
type Snapshot struct {
	Projects []models.Project `json:"projects" yaml:"projects"`
	Tasks    []models.Task    `json:"tasks" yaml:"tasks"`
}

// Adapter reads and writes collections on a Medium.
type Adapter struct {
	medium storage.Medium
	keys   Keys
	logger *slog.Logger
}

// New returns an Adapter over medium.
func New(medium storage.Medium, keys Keys, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{medium: medium, keys: keys, logger: logger}
}

// Keys returns the keys the adapter writes to.
func (a *Adapter) Keys() Keys {
	return a.keys
}

// Load reads both collections. Absent or unparsable entries yield empty
// collections, and single records that fail to decode are dropped. Only
// medium failures are returned.
func (a *Adapter) Load(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Projects: []models.Project{}, Tasks: []models.Task{}}

	if a.keys.Projects != "" {
		projects, err := read[models.Project](ctx, a, a.keys.Projects)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Projects = projects
	}
	tasks, err := read[models.Task](ctx, a, a.keys.Tasks)
	if err != nil {
		return Snapshot{}, err
	}
	snap.Tasks = tasks
	return snap, nil
}

func read[T any](ctx context.Context, a *Adapter, key string) ([]T, error) {
	raw, ok, err := a.medium.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		a.logger.Warn("discarding malformed stored collection",
			slog.String("key", key), slog.String("error", err.Error()))
		return []T{}, nil
	}
	items := make([]T, 0, len(records))
	for i, rec := range records {
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			a.logger.Warn("discarding malformed stored record",
				slog.String("key", key), slog.Int("index", i), slog.String("error", err.Error()))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveProjects replaces the stored project collection.
func (a *Adapter) SaveProjects(ctx context.Context, projects []models.Project) error {
	if a.keys.Projects == "" {
		return nil
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return a.write(ctx, a.keys.Projects, projects)
}

// SaveTasks replaces the stored task collection.
func (a *Adapter) SaveTasks(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return a.write(ctx, a.keys.Tasks, tasks)
}

func (a *Adapter) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := a.medium.Set(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
