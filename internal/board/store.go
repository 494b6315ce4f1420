// Package board owns the projects, the tasks and the active-project pointer.
// Every mutation goes through a Store and is persisted before it returns.
package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kanban/internal/models"
	"kanban/internal/persist"
)

// Persister saves and restores the collections. *persist.Adapter satisfies it.
type Persister interface {
	Load(ctx context.Context) (persist.Snapshot, error)
	SaveProjects(ctx context.Context, projects []models.Project) error
	SaveTasks(ctx context.Context, tasks []models.Task) error
}

const maxIDAttempts = 8

// Options tunes a Store.
type Options struct {
	// Scoped enables projects. When false the store is a flat to-do list:
	// tasks carry no project and project operations do nothing.
	Scoped bool
	Logger *slog.Logger
	// Clock and NewID default to time.Now and random UUIDs.
	Clock func() time.Time
	NewID func() string
}

// Store is the single owner of the board state.
type Store struct {
	mu        sync.Mutex
	persister Persister
	logger    *slog.Logger
	scoped    bool
	clock     func() time.Time
	newID     func() string

	projects []models.Project
	tasks    []models.Task
	active   *models.Project
	saveErr  error
}

// Open loads the persisted state and returns a ready Store. The first loaded
// project, if any, becomes active.
func Open(ctx context.Context, p Persister, opts Options) (*Store, error) {
	s := &Store{
		persister: p,
		logger:    opts.Logger,
		scoped:    opts.Scoped,
		clock:     opts.Clock,
		newID:     opts.NewID,
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}

	snap, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.projects = snap.Projects
	s.tasks = snap.Tasks
	if !s.scoped {
		s.projects = nil
	}
	if len(s.projects) > 0 {
		first := s.projects[0]
		s.active = &first
	}

	s.logger.Info("board loaded",
		slog.Int("projects", len(s.projects)),
		slog.Int("tasks", len(s.tasks)),
		slog.Bool("scoped", s.scoped))
	return s, nil
}

// Scoped reports whether the store groups tasks by project.
func (s *Store) Scoped() bool {
	s.lock()
	defer s.mu.Unlock()
	return s.scoped
}

// lock panics when the store was not created by Open; using one is a
// programming error, not a runtime condition.
func (s *Store) lock() {
	if s == nil || s.persister == nil {
		panic("board: store used before Open")
	}
	s.mu.Lock()
}

// Err returns the first save failure since Open, or nil. Mutations apply in
// memory whether or not their save succeeds.
func (s *Store) Err() error {
	s.lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// Projects returns a copy of the project collection in creation order.
func (s *Store) Projects() []models.Project {
	s.lock()
	defer s.mu.Unlock()
	return slices.Clone(s.projects)
}

// Project looks up a project by id.
func (s *Store) Project(id string) (models.Project, bool) {
	s.lock()
	defer s.mu.Unlock()
	if i := s.projectIndex(id); i >= 0 {
		return s.projects[i], true
	}
	return models.Project{}, false
}

// ActiveProject returns the selected project, if any.
func (s *Store) ActiveProject() (models.Project, bool) {
	s.lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return models.Project{}, false
	}
	return *s.active, true
}

// Tasks returns a copy of the full, unfiltered task collection.
func (s *Store) Tasks() []models.Task {
	s.lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Task looks up a task by id.
func (s *Store) Task(id string) (models.Task, bool) {
	s.lock()
	defer s.mu.Unlock()
	if i := s.taskIndex(id); i >= 0 {
		return s.tasks[i], true
	}
	return models.Task{}, false
}

// ProjectTasks returns the tasks owned by projectID in collection order.
func (s *Store) ProjectTasks(projectID string) []models.Task {
	s.lock()
	defer s.mu.Unlock()
	return ScopeToProject(s.tasks, projectID)
}

// Board derives the columns shown for the active project. In a flat store it
// covers every task. Without an active project all columns are empty.
func (s *Store) Board(filter models.Filter) models.Columns {
	s.lock()
	defer s.mu.Unlock()
	if !s.scoped {
		return GroupByStatus(FilterTasks(s.tasks, filter))
	}
	if s.active == nil {
		return GroupByStatus(nil)
	}
	return Derive(s.tasks, s.active.ID, filter)
}

// AddProject creates a project. A blank name is rejected. The new project
// becomes active when none is selected.
func (s *Store) AddProject(name, description string) (models.Project, bool) {
	name = strings.TrimSpace(name)

	s.lock()
	defer s.mu.Unlock()

	if !s.scoped || name == "" {
		return models.Project{}, false
	}

	p := models.Project{
		ID:          s.uniqueID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now(),
	}
	s.projects = append(s.projects, p)
	if s.active == nil {
		active := p
		s.active = &active
	}
	s.saveProjects()
	s.logger.Debug("project added", slog.String("project", p.ID))
	return p, true
}

// DeleteProject removes a project and every task it owns. When the active
// project is deleted the first remaining project becomes active. Both
// collections are saved even if id matched nothing.
func (s *Store) DeleteProject(id string) {
	s.lock()
	defer s.mu.Unlock()

	if !s.scoped {
		return
	}

	s.projects = slices.DeleteFunc(s.projects, func(p models.Project) bool { return p.ID == id })
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.ProjectID == id })

	if s.active != nil && s.active.ID == id {
		s.active = nil
		if len(s.projects) > 0 {
			next := s.projects[0]
			s.active = &next
		}
	}
	s.saveProjects()
	s.saveTasks()
	s.logger.Debug("project deleted", slog.String("project", id))
}

// SetActiveProject selects p, or clears the selection when p is nil. It does
// not check that p belongs to the collection.
func (s *Store) SetActiveProject(p *models.Project) {
	s.lock()
	defer s.mu.Unlock()
	if p == nil {
		s.active = nil
		return
	}
	selected := *p
	s.active = &selected
}

// SelectProject makes the project with id active. It reports false and
// leaves the selection alone when no such project exists.
func (s *Store) SelectProject(id string) bool {
	s.lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return false
	}
	selected := s.projects[i]
	s.active = &selected
	return true
}

// AddTask creates a todo task in the active project. Blank text, or a scoped
// store with no active project, leaves the collection untouched. An invalid
// priority falls back to medium.
func (s *Store) AddTask(text string, priority models.Priority) (models.Task, bool) {
	text = strings.TrimSpace(text)
	if !priority.Valid() {
		priority = models.DefaultPriority
	}

	s.lock()
	defer s.mu.Unlock()

	if text == "" {
		return models.Task{}, false
	}
	var projectID string
	if s.scoped {
		if s.active == nil {
			return models.Task{}, false
		}
		projectID = s.active.ID
	}

	t := models.Task{
		ID:        s.uniqueID(),
		Text:      text,
		Priority:  priority,
		Status:    models.StatusTodo,
		CreatedAt: s.now(),
		ProjectID: projectID,
	}
	s.tasks = append(s.tasks, t)
	s.saveTasks()
	return t, true
}

// UpdateTaskStatus moves a task to status. Any transition is allowed.
// Setting the status a task already has changes nothing.
func (s *Store) UpdateTaskStatus(id string, status models.Status) bool {
	s.lock()
	defer s.mu.Unlock()

	if !status.Valid() {
		return false
	}

	i := s.taskIndex(id)
	if i < 0 {
		return false
	}
	if s.tasks[i].Status == status {
		return true
	}
	s.tasks[i].Status = status
	s.saveTasks()
	return true
}

// MoveTask applies a drop onto the status column.
func (s *Store) MoveTask(id string, status models.Status) bool {
	return s.UpdateTaskStatus(id, status)
}

// UpdateTask merges the provided fields onto a task. Blank text and invalid
// enum values are ignored.
func (s *Store) UpdateTask(id string, upd models.TaskUpdate) bool {
	s.lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return false
	}
	t := s.tasks[i]
	if upd.Text != nil {
		if text := strings.TrimSpace(*upd.Text); text != "" {
			t.Text = text
		}
	}
	if upd.Priority != nil && upd.Priority.Valid() {
		t.Priority = *upd.Priority
	}
	if upd.Status != nil && upd.Status.Valid() {
		t.Status = *upd.Status
	}
	if t == s.tasks[i] {
		return true
	}
	s.tasks[i] = t
	s.saveTasks()
	return true
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(id string) bool {
	s.lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.saveTasks()
	return true
}

// ReorderTasks moves the task at index from to index to in the full
// collection order.
func (s *Store) ReorderTasks(from, to int) bool {
	s.lock()
	defer s.mu.Unlock()

	n := len(s.tasks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	moved := s.tasks[from]
	s.tasks = slices.Delete(s.tasks, from, from+1)
	s.tasks = slices.Insert(s.tasks, to, moved)
	s.saveTasks()
	return true
}

func (s *Store) projectIndex(id string) int {
	return slices.IndexFunc(s.projects, func(p models.Project) bool { return p.ID == id })
}

func (s *Store) taskIndex(id string) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// uniqueID draws ids until one is unused by any project or task. A generator
// that keeps colliding is abandoned for random UUIDs.
func (s *Store) uniqueID() string {
	gen := s.newID
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			gen = uuid.NewString
		}
		id := gen()
		if id != "" && s.projectIndex(id) < 0 && s.taskIndex(id) < 0 {
			return id
		}
	}
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// Saves never fail the mutation: the in-memory state is authoritative and
// the next successful save writes it in full.
func (s *Store) saveProjects() {
	if err := s.persister.SaveProjects(context.Background(), slices.Clone(s.projects)); err != nil {
		s.saveFailed("projects", err)
	}
}

func (s *Store) saveTasks() {
	if err := s.persister.SaveTasks(context.Background(), slices.Clone(s.tasks)); err != nil {
		s.saveFailed("tasks", err)
	}
}

func (s *Store) saveFailed(collection string, err error) {
	s.logger.Error("failed to save "+collection, slog.String("error", err.Error()))
	if s.saveErr == nil {
		s.saveErr = fmt.Errorf("save %s: %w", collection, err)
	}
}
