package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the progress state shared by tasks, daily tasks and sub-tasks
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the three known states
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns a short display label
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	default:
		return "todo"
	}
}

// ParseStatus converts user input to a Status.
// Accepts "in-progress", "in_progress" and "done" as aliases.
func ParseStatus(input string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	switch normalized {
	case "todo", "to-do":
		return StatusTodo, nil
	case "inprogress", "in-progress", "in_progress", "progress":
		return StatusInProgress, nil
	case "completed", "complete", "done":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status '%s'. Use: todo, inprogress, completed", input)
	}
}

// UnmarshalJSON maps unknown stored values to todo so old snapshots still load
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed := Status(raw)
	if !parsed.Valid() {
		parsed = StatusTodo
	}
	*s = parsed
	return nil
}
