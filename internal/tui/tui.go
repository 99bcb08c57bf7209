package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/contentally/ally/internal/habits"
	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
	"github.com/contentally/ally/internal/tasks"
)

// RunDashboard starts the interactive dashboard
func RunDashboard(taskEngine *tasks.Engine, habitEngine *habits.Engine) error {
	p := tea.NewProgram(NewDashboardModel(taskEngine, habitEngine), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunPlanWizard starts the interactive plan wizard and reports the outcome
// through n once the screen is restored
func RunPlanWizard(planner Planner, engine *tasks.Engine, timeout time.Duration, prefilled map[string]string, n notify.Notifier) (models.PlannedTask, bool, error) {
	p := tea.NewProgram(NewPlanModel(planner, engine, timeout, prefilled), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return models.PlannedTask{}, false, err
	}

	m, ok := finalModel.(PlanModel)
	if !ok {
		return models.PlannedTask{}, false, nil
	}
	if task, ok := m.Created(); ok {
		n.Notify(notify.Success("Task planned", task.TaskName))
		return task, true, nil
	}
	if m.Cancelled() || m.Err() == nil {
		n.Notify(notify.Info("Planning cancelled", ""))
		return models.PlannedTask{}, false, nil
	}
	n.Notify(notify.Error("Planning failed", m.Err().Error()))
	return models.PlannedTask{}, false, m.Err()
}
