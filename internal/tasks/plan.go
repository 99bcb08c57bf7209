package tasks

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contentally/ally/internal/flows"
	"github.com/contentally/ally/internal/models"
)

// FromPlan turns a planning flow result into a new PlannedTask with fresh
// ids and every status set to todo
func FromPlan(plan flows.PlanOutput, description, deadline string, now time.Time) models.PlannedTask {
	task := models.PlannedTask{
		ID:                  uuid.NewString(),
		TaskName:            strings.TrimSpace(plan.TaskName),
		OriginalDescription: description,
		Deadline:            deadline,
		CreatedAt:           now,
		OverallReminder:     strings.TrimSpace(plan.OverallReminder),
		Status:              models.StatusTodo,
		DailyTasks:          make([]models.DailyTask, 0, len(plan.DailyTasks)),
	}
	if task.TaskName == "" {
		task.TaskName = description
	}

	for _, day := range plan.DailyTasks {
		daily := models.DailyTask{
			ID:             uuid.NewString(),
			DayDescription: strings.TrimSpace(day.DayDescription),
			Status:         models.StatusTodo,
			SubTasks:       make([]models.SubTask, 0, len(day.SubTasks)),
		}
		for _, desc := range day.SubTasks {
			desc = strings.TrimSpace(desc)
			if desc == "" {
				continue
			}
			daily.SubTasks = append(daily.SubTasks, models.SubTask{
				ID:          uuid.NewString(),
				Description: desc,
				Status:      models.StatusTodo,
			})
		}
		task.DailyTasks = append(task.DailyTasks, daily)
	}

	return task
}
