package models

import "time"

// Project groups tasks on the board. Deleting a project deletes its tasks.
type Project struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// Task represents a single card on the board.
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	Status    Status    `json:"status" yaml:"status"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	ProjectID string    `json:"projectId" yaml:"projectId"`
}

// TaskUpdate carries the fields a task edit may change. Nil fields are left
// untouched. Identity, creation time and owning project are not editable.
type TaskUpdate struct {
	Text     *string   `json:"text"`
	Priority *Priority `json:"priority"`
	Status   *Status   `json:"status"`
}

// Columns is the board view: one bucket per workflow stage.
type Columns struct {
	Todo  []Task `json:"todo" yaml:"todo"`
	Doing []Task `json:"doing" yaml:"doing"`
	Done  []Task `json:"done" yaml:"done"`
}

// Column returns the bucket for status, or nil for an invalid status.
func (c Columns) Column(status Status) []Task {
	switch status {
	case StatusTodo:
		return c.Todo
	case StatusDoing:
		return c.Doing
	case StatusDone:
		return c.Done
	}
	return nil
}

// Counts reports the number of cards per column keyed by wire status.
func (c Columns) Counts() map[Status]int {
	return map[Status]int{
		StatusTodo:  len(c.Todo),
		StatusDoing: len(c.Doing),
		StatusDone:  len(c.Done),
	}
}
