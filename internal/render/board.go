// Package render draws the board for terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban/internal/models"
)

const columnWidth = 30

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	descStyle  = lipgloss.NewStyle().Faint(true)
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	emptyStyle = lipgloss.NewStyle().Faint(true).Italic(true)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(columnWidth)

	columnColors = map[models.Status]lipgloss.Color{
		models.StatusTodo:  lipgloss.Color("33"),
		models.StatusDoing: lipgloss.Color("214"),
		models.StatusDone:  lipgloss.Color("35"),
	}

	priorityColors = map[models.Priority]lipgloss.Color{
		models.PriorityHigh:   lipgloss.Color("196"),
		models.PriorityMedium: lipgloss.Color("220"),
		models.PriorityLow:    lipgloss.Color("42"),
	}

	emptyHints = map[models.Status]string{
		models.StatusTodo:  "drop tasks here",
		models.StatusDoing: "nothing in progress",
		models.StatusDone:  "nothing finished yet",
	}
)

// Board renders the three columns side by side under a project heading. A
// nil project renders the flat list heading.
func Board(project *models.Project, cols models.Columns) string {
	var b strings.Builder

	title := "Tasks"
	if project != nil {
		title = project.Name
	}
	b.WriteString(titleStyle.Render(title))
	if project != nil && project.Description != "" {
		b.WriteString("\n")
		b.WriteString(descStyle.Render(project.Description))
	}
	b.WriteString("\n")

	rendered := make([]string, 0, len(models.Statuses))
	for _, status := range models.Statuses {
		rendered = append(rendered, Column(status, cols.Column(status)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	return b.String()
}

// Column renders a single status column with its card count.
func Column(status models.Status, tasks []models.Task) string {
	lines := []string{headStyle.Render(fmt.Sprintf("%s (%d)", status.Label(), len(tasks)))}
	if len(tasks) == 0 {
		lines = append(lines, emptyStyle.Render(emptyHints[status]))
	}
	for _, t := range tasks {
		lines = append(lines, Card(t))
	}
	return columnStyle.BorderForeground(columnColors[status]).Render(strings.Join(lines, "\n"))
}

// Card renders one task line: priority marker, text and short id.
func Card(t models.Task) string {
	marker := lipgloss.NewStyle().Foreground(priorityColors[t.Priority]).Render("●")
	return fmt.Sprintf("%s %s [%s] %s", marker, t.Text, t.Priority, shortID(t.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
