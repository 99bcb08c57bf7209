package tasks

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/contentally/ally/internal/db"
	"github.com/contentally/ally/internal/models"
)

// Engine owns the planned task collection and keeps task statuses
// consistent with their daily tasks and sub-tasks. Every mutation writes
// the full collection back to the store.
type Engine struct {
	mu     sync.Mutex
	store  db.SnapshotStore
	logger *zap.Logger
	tasks  []models.PlannedTask
}

// New creates an empty engine. Call Load to read persisted tasks.
func New(store db.SnapshotStore, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:  store,
		logger: logger.Named("tasks"),
		tasks:  []models.PlannedTask{},
	}
}

// Load replaces the in-memory collection with the stored snapshot.
// A missing or unreadable snapshot leaves an empty collection.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	loaded, found, err := db.LoadJSON[models.PlannedTask](e.store, db.KeyTasks)
	if err != nil {
		e.logger.Error("error loading tasks, starting empty", zap.Error(err))
		e.tasks = []models.PlannedTask{}
		return nil
	}
	if !found {
		e.tasks = []models.PlannedTask{}
		return nil
	}
	for i := range loaded {
		loaded[i].Normalize()
	}
	e.tasks = loaded
	e.sortLocked()
	e.logger.Debug("tasks loaded", zap.Int("count", len(loaded)))
	return nil
}

// List returns a copy of all tasks, newest first
func (e *Engine) List() []models.PlannedTask {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.PlannedTask, len(e.tasks))
	for i, t := range e.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the task with the given id
func (e *Engine) Get(id string) (models.PlannedTask, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexLocked(id); i >= 0 {
		return e.tasks[i].Clone(), true
	}
	return models.PlannedTask{}, false
}

// Add inserts a task and keeps the collection ordered by creation time,
// newest first. The caller guarantees the id is unique.
func (e *Engine) Add(task models.PlannedTask) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task = task.Clone()
	task.Normalize()
	e.tasks = append([]models.PlannedTask{task}, e.tasks...)
	e.sortLocked()
	return e.saveLocked()
}

// Update replaces the task with the same id. Unknown ids are ignored.
func (e *Engine) Update(task models.PlannedTask) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(task.ID)
	if i < 0 {
		e.logger.Debug("update ignored, task not found", zap.String("task_id", task.ID))
		return nil
	}
	task = task.Clone()
	task.Normalize()
	e.tasks[i] = task
	return e.saveLocked()
}

// Delete removes the task with the given id. Unknown ids are ignored.
func (e *Engine) Delete(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return nil
	}
	e.tasks = append(e.tasks[:i], e.tasks[i+1:]...)
	return e.saveLocked()
}

// ToggleSubTaskStatus flips one sub-task between completed and todo, then
// re-derives the owning daily task's status and the task's status.
// Indices that don't resolve are logged and ignored.
func (e *Engine) ToggleSubTaskStatus(taskID string, dailyIndex, subIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(taskID)
	if i < 0 {
		e.logger.Error("toggle sub-task: task not found",
			zap.String("task_id", taskID),
			zap.Int("daily_index", dailyIndex),
			zap.Int("sub_index", subIndex))
		return nil
	}
	task := &e.tasks[i]
	if dailyIndex < 0 || dailyIndex >= len(task.DailyTasks) {
		e.logger.Error("toggle sub-task: daily task index out of range",
			zap.String("task_id", taskID),
			zap.Int("daily_index", dailyIndex),
			zap.Int("daily_count", len(task.DailyTasks)))
		return nil
	}
	daily := &task.DailyTasks[dailyIndex]
	if subIndex < 0 || subIndex >= len(daily.SubTasks) {
		e.logger.Error("toggle sub-task: sub-task index out of range",
			zap.String("task_id", taskID),
			zap.Int("daily_index", dailyIndex),
			zap.Int("sub_index", subIndex),
			zap.Int("sub_count", len(daily.SubTasks)))
		return nil
	}

	sub := &daily.SubTasks[subIndex]
	if sub.Status == models.StatusCompleted {
		sub.Status = models.StatusTodo
	} else {
		sub.Status = models.StatusCompleted
	}

	daily.Status = DeriveDailyStatus(daily.SubTasks)
	task.Status = DeriveTaskStatus(task.DailyTasks)

	return e.saveLocked()
}

// SetTaskStatus assigns a task's status directly. Completing a task
// completes everything under it; moving a completed task back resets
// everything under it to todo. Other transitions only touch the task
// itself and the next sub-task toggle re-derives it.
func (e *Engine) SetTaskStatus(taskID string, status models.Status) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !status.Valid() {
		e.logger.Error("set task status: invalid status",
			zap.String("task_id", taskID),
			zap.String("status", string(status)))
		return nil
	}
	i := e.indexLocked(taskID)
	if i < 0 {
		return nil
	}
	task := &e.tasks[i]
	if task.Status == status {
		return nil
	}

	wasCompleted := task.Status == models.StatusCompleted
	task.Status = status

	if status == models.StatusCompleted {
		cascade(task, models.StatusCompleted)
	} else if wasCompleted {
		cascade(task, models.StatusTodo)
	}

	return e.saveLocked()
}

// ToggleReminder flips the daily reminder flag. Nothing is scheduled.
func (e *Engine) ToggleReminder(taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(taskID)
	if i < 0 {
		return nil
	}
	e.tasks[i].IsDailyReminderSet = !e.tasks[i].IsDailyReminderSet
	return e.saveLocked()
}

func (e *Engine) indexLocked(id string) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) sortLocked() {
	sort.SliceStable(e.tasks, func(a, b int) bool {
		return e.tasks[a].CreatedAt.After(e.tasks[b].CreatedAt)
	})
}

func (e *Engine) saveLocked() error {
	if err := db.SaveJSON(e.store, db.KeyTasks, e.tasks); err != nil {
		e.logger.Error("error saving tasks", zap.Error(err))
		return err
	}
	return nil
}
