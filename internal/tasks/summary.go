package tasks

import (
	"github.com/contentally/ally/internal/models"
)

// Summary counts tasks by status and sub-tasks by completion
type Summary struct {
	Total         int
	Todo          int
	InProgress    int
	Completed     int
	SubTasksDone  int
	SubTasksTotal int
}

// Summary aggregates the current collection for dashboards
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s Summary
	for _, t := range e.tasks {
		s.Total++
		switch t.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusInProgress:
			s.InProgress++
		default:
			s.Todo++
		}
		done, total := t.SubTaskProgress()
		s.SubTasksDone += done
		s.SubTasksTotal += total
	}
	return s
}

// Percent returns overall sub-task completion in [0, 100]
func (s Summary) Percent() int {
	if s.SubTasksTotal == 0 {
		return 0
	}
	return s.SubTasksDone * 100 / s.SubTasksTotal
}
