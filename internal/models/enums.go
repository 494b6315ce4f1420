package models

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a task. The zero value is not a valid priority.
type Priority uint8

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
)

// DefaultPriority is used when a task is created without a valid priority.
const DefaultPriority = PriorityMedium

var priorityNames = map[Priority]string{
	PriorityLow:    "baixa",
	PriorityMedium: "media",
	PriorityHigh:   "alta",
}

var priorityAliases = map[string]Priority{
	"baixa":  PriorityLow,
	"low":    PriorityLow,
	"media":  PriorityMedium,
	"média":  PriorityMedium,
	"medium": PriorityMedium,
	"alta":   PriorityHigh,
	"high":   PriorityHigh,
}

// ParsePriority accepts both the stored names and their English equivalents.
func ParsePriority(s string) (Priority, error) {
	if p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

// MarshalText writes the stored name of the priority.
func (p Priority) MarshalText() ([]byte, error) {
	name, ok := priorityNames[p]
	if !ok {
		return nil, fmt.Errorf("invalid priority %d", uint8(p))
	}
	return []byte(name), nil
}

// UnmarshalText rejects anything outside the closed set.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Status is the workflow stage of a task, i.e. its board column.
type Status uint8

const (
	StatusTodo Status = iota + 1
	StatusDoing
	StatusDone
)

// Statuses lists the columns in board order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

var statusNames = map[Status]string{
	StatusTodo:  "todo",
	StatusDoing: "doing",
	StatusDone:  "done",
}

var statusLabels = map[Status]string{
	StatusTodo:  "To Do",
	StatusDoing: "Doing",
	StatusDone:  "Done",
}

// ParseStatus parses a stored status name.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == key {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// Valid reports whether s is one of the three columns.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Label is the column heading shown to users.
func (s Status) Label() string {
	return statusLabels[s]
}

func (s Status) MarshalText() ([]byte, error) {
	name, ok := statusNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid status %d", uint8(s))
	}
	return []byte(name), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Filter selects and orders the tasks shown on the board.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterNewest    Filter = "newest-first"
	FilterOldest    Filter = "oldest-first"
	FilterHigh      Filter = "high"
	FilterMedium    Filter = "medium"
	FilterLow       Filter = "low"
	FilterActive    Filter = "active-only"
	FilterCompleted Filter = "completed-only"
)

var filterAliases = map[string]Filter{
	"":               FilterAll,
	"all":            FilterAll,
	"todas":          FilterAll,
	"newest-first":   FilterNewest,
	"newest":         FilterNewest,
	"recentes":       FilterNewest,
	"oldest-first":   FilterOldest,
	"oldest":         FilterOldest,
	"antigas":        FilterOldest,
	"high":           FilterHigh,
	"alta":           FilterHigh,
	"medium":         FilterMedium,
	"media":          FilterMedium,
	"low":            FilterLow,
	"baixa":          FilterLow,
	"active-only":    FilterActive,
	"active":         FilterActive,
	"completed-only": FilterCompleted,
	"completed":      FilterCompleted,
}

// ParseFilter maps a filter name, including the short and Portuguese forms
// used by the web UI, to a Filter.
func ParseFilter(s string) (Filter, error) {
	if f, ok := filterAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q", s)
}

// Priority returns the priority a priority filter selects.
func (f Filter) Priority() (Priority, bool) {
	switch f {
	case FilterHigh:
		return PriorityHigh, true
	case FilterMedium:
		return PriorityMedium, true
	case FilterLow:
		return PriorityLow, true
	}
	return 0, false
}
