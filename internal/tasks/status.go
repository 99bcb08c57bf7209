package tasks

import (
	"github.com/contentally/ally/internal/models"
)

// DeriveDailyStatus computes a daily task's status from its sub-tasks:
// completed when every sub-task is completed, todo when every sub-task is
// todo, inprogress otherwise. An empty list counts as completed.
func DeriveDailyStatus(subTasks []models.SubTask) models.Status {
	allCompleted, noneStarted := true, true
	for _, st := range subTasks {
		if st.Status != models.StatusCompleted {
			allCompleted = false
		}
		if st.Status != models.StatusTodo {
			noneStarted = false
		}
	}
	return rollUp(allCompleted, noneStarted)
}

// DeriveTaskStatus computes a planned task's status from its daily tasks
// using the same rule as DeriveDailyStatus.
func DeriveTaskStatus(dailyTasks []models.DailyTask) models.Status {
	allCompleted, noneStarted := true, true
	for _, dt := range dailyTasks {
		if dt.Status != models.StatusCompleted {
			allCompleted = false
		}
		if dt.Status != models.StatusTodo {
			noneStarted = false
		}
	}
	return rollUp(allCompleted, noneStarted)
}

func rollUp(allCompleted, noneStarted bool) models.Status {
	switch {
	case allCompleted:
		return models.StatusCompleted
	case noneStarted:
		return models.StatusTodo
	default:
		return models.StatusInProgress
	}
}

// cascade forces every daily task and sub-task of t to status
func cascade(t *models.PlannedTask, status models.Status) {
	for i := range t.DailyTasks {
		t.DailyTasks[i].Status = status
		for j := range t.DailyTasks[i].SubTasks {
			t.DailyTasks[i].SubTasks[j].Status = status
		}
	}
}

// CurrentDailyTask returns the index of the first daily task that is not
// completed, or -1 when all are done
func CurrentDailyTask(t models.PlannedTask) int {
	for i, dt := range t.DailyTasks {
		if dt.Status != models.StatusCompleted {
			return i
		}
	}
	return -1
}
