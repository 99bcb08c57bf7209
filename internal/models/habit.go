package models

import (
	"time"
)

// Habit is a daily habit with a per-day goal and a streak counter
type Habit struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	IconName          string    `json:"iconName"`
	Goal              int       `json:"goal"`
	CompletedToday    int       `json:"completedToday"`
	Streak            int       `json:"streak"`
	LastCompletedDate *Date     `json:"lastCompletedDate"`
	CreatedAt         time.Time `json:"createdAt"`

	// PriorCompletedDate holds LastCompletedDate as it was before the first
	// progress of the current day, so meeting the goal later that day can
	// still see whether yesterday was completed. It becomes today once the
	// goal is met.
	PriorCompletedDate *Date `json:"priorCompletedDate,omitempty"`
	// PriorRecorded is set once PriorCompletedDate was captured for the day
	// in LastCompletedDate. Snapshots written without it leave the streak
	// alone when today's goal is reached.
	PriorRecorded bool `json:"priorRecorded,omitempty"`
}

// GoalMet reports whether today's goal has been reached
func (h Habit) GoalMet() bool {
	return h.CompletedToday >= h.Goal
}

// Progress returns today's completion as a percentage in [0, 100]
func (h Habit) Progress() int {
	if h.Goal <= 0 {
		return 0
	}
	p := h.CompletedToday * 100 / h.Goal
	if p > 100 {
		return 100
	}
	return p
}
