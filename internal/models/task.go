package models

import (
	"time"
)

// SubTask is a single actionable step inside a daily task
type SubTask struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// DailyTask groups the sub-tasks planned for one day.
// Its status is derived from the sub-tasks.
type DailyTask struct {
	ID             string    `json:"id"`
	DayDescription string    `json:"dayDescription"`
	Status         Status    `json:"status"`
	SubTasks       []SubTask `json:"subTasks"`
}

// PlannedTask is a task broken down into daily tasks and sub-tasks
type PlannedTask struct {
	ID                  string      `json:"id"`
	TaskName            string      `json:"taskName"`
	OriginalDescription string      `json:"originalDescription"`
	Deadline            string      `json:"deadline"` // free-form, never parsed
	CreatedAt           time.Time   `json:"createdAt"`
	IsDailyReminderSet  bool        `json:"isDailyReminderSet"`
	OverallReminder     string      `json:"overallReminder,omitempty"`
	Status              Status      `json:"status"`
	DailyTasks          []DailyTask `json:"dailyTasks"`
}

// Clone returns a deep copy so callers can't alias engine-owned slices
func (t PlannedTask) Clone() PlannedTask {
	out := t
	out.DailyTasks = make([]DailyTask, len(t.DailyTasks))
	for i, dt := range t.DailyTasks {
		out.DailyTasks[i] = dt
		out.DailyTasks[i].SubTasks = append([]SubTask{}, dt.SubTasks...)
	}
	return out
}

// Normalize replaces nil slices with empty ones so snapshots always
// carry arrays rather than nulls
func (t *PlannedTask) Normalize() {
	if t.DailyTasks == nil {
		t.DailyTasks = []DailyTask{}
	}
	for i := range t.DailyTasks {
		if t.DailyTasks[i].SubTasks == nil {
			t.DailyTasks[i].SubTasks = []SubTask{}
		}
	}
	if !t.Status.Valid() {
		t.Status = StatusTodo
	}
}

// SubTaskProgress returns completed and total sub-task counts
func (t PlannedTask) SubTaskProgress() (completed, total int) {
	for _, dt := range t.DailyTasks {
		for _, st := range dt.SubTasks {
			total++
			if st.Status == StatusCompleted {
				completed++
			}
		}
	}
	return completed, total
}
