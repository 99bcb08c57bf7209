package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contentally/ally/internal/models"
)

// readInput returns the contents of FILE, or stdin when FILE is "-" or
// absent
func readInput(cmd *cobra.Command, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// resolveTask finds a task by full id or unique id prefix
func resolveTask(app *App, ref string) (models.PlannedTask, error) {
	var matches []models.PlannedTask
	for _, t := range app.Tasks.List() {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return models.PlannedTask{}, fmt.Errorf("task %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return models.PlannedTask{}, fmt.Errorf("task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveHabit finds a habit by full id, unique id prefix or exact name
func resolveHabit(app *App, ref string) (models.Habit, error) {
	var matches []models.Habit
	for _, h := range app.Habits.List() {
		if h.ID == ref {
			return h, nil
		}
		if strings.HasPrefix(h.ID, ref) || strings.EqualFold(h.Name, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("habit %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
