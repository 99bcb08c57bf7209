package tasks

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/contentally/ally/internal/db"
	"github.com/contentally/ally/internal/models"
)

func newTestEngine(t *testing.T) (*Engine, *db.MemoryStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	store := db.NewMemoryStore()
	e := New(store, zap.New(core))
	require.NoError(t, e.Load())
	return e, store, logs
}

// sampleTask builds a task with one daily task per entry of subCounts,
// each holding that many todo sub-tasks
func sampleTask(id string, createdAt time.Time, subCounts ...int) models.PlannedTask {
	task := models.PlannedTask{
		ID:                  id,
		TaskName:            "Task " + id,
		OriginalDescription: "description of " + id,
		Deadline:            "end of next week",
		CreatedAt:           createdAt,
		Status:              models.StatusTodo,
	}
	for d, n := range subCounts {
		daily := models.DailyTask{
			ID:             fmt.Sprintf("%s-d%d", id, d),
			DayDescription: fmt.Sprintf("Day %d", d+1),
			Status:         models.StatusTodo,
		}
		for s := 0; s < n; s++ {
			daily.SubTasks = append(daily.SubTasks, models.SubTask{
				ID:          fmt.Sprintf("%s-d%d-s%d", id, d, s),
				Description: fmt.Sprintf("step %d", s+1),
				Status:      models.StatusTodo,
			})
		}
		task.DailyTasks = append(task.DailyTasks, daily)
	}
	return task
}

func mustGet(t *testing.T, e *Engine, id string) models.PlannedTask {
	t.Helper()
	task, ok := e.Get(id)
	require.True(t, ok, "task %s not found", id)
	return task
}

func assertDerivedInvariants(t *testing.T, task models.PlannedTask) {
	t.Helper()
	for i, dt := range task.DailyTasks {
		assert.Equal(t, DeriveDailyStatus(dt.SubTasks), dt.Status, "daily task %d", i)
	}
	assert.Equal(t, DeriveTaskStatus(task.DailyTasks), task.Status)
}

func TestToggleSubTaskScenario(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 2)))

	assert.Equal(t, models.StatusTodo, mustGet(t, e, "t1").Status)

	require.NoError(t, e.ToggleSubTaskStatus("t1", 0, 0))
	task := mustGet(t, e, "t1")
	assert.Equal(t, models.StatusCompleted, task.DailyTasks[0].SubTasks[0].Status)
	assert.Equal(t, models.StatusInProgress, task.DailyTasks[0].Status)
	assert.Equal(t, models.StatusInProgress, task.Status)

	require.NoError(t, e.ToggleSubTaskStatus("t1", 0, 1))
	task = mustGet(t, e, "t1")
	assert.Equal(t, models.StatusCompleted, task.DailyTasks[0].Status)
	assert.Equal(t, models.StatusCompleted, task.Status)

	// toggling back reopens the task
	require.NoError(t, e.ToggleSubTaskStatus("t1", 0, 1))
	task = mustGet(t, e, "t1")
	assert.Equal(t, models.StatusTodo, task.DailyTasks[0].SubTasks[1].Status)
	assert.Equal(t, models.StatusInProgress, task.Status)
}

func TestToggleSequencesKeepInvariants(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 3, 1, 4)))

	rng := rand.New(rand.NewSource(42))
	for step := 0; step < 200; step++ {
		task := mustGet(t, e, "t1")
		d := rng.Intn(len(task.DailyTasks))
		s := rng.Intn(len(task.DailyTasks[d].SubTasks))
		require.NoError(t, e.ToggleSubTaskStatus("t1", d, s))
		assertDerivedInvariants(t, mustGet(t, e, "t1"))
	}
}

func TestToggleOutOfRangeIsLoggedNoOp(t *testing.T) {
	e, _, logs := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 2)))
	before := mustGet(t, e, "t1")

	tests := []struct {
		name   string
		taskID string
		daily  int
		sub    int
	}{
		{"unknown task", "missing", 0, 0},
		{"negative daily", "t1", -1, 0},
		{"daily past end", "t1", 1, 0},
		{"sub past end", "t1", 0, 2},
		{"negative sub", "t1", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, e.ToggleSubTaskStatus(tt.taskID, tt.daily, tt.sub))
		})
	}

	if diff := cmp.Diff(before, mustGet(t, e, "t1")); diff != "" {
		t.Errorf("task changed after invalid toggles (-want +got):\n%s", diff)
	}
	assert.Equal(t, len(tests), logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestSetTaskStatusCompletedCascades(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 2, 3)))
	require.NoError(t, e.ToggleSubTaskStatus("t1", 1, 0))

	require.NoError(t, e.SetTaskStatus("t1", models.StatusCompleted))
	task := mustGet(t, e, "t1")
	assert.Equal(t, models.StatusCompleted, task.Status)
	for _, dt := range task.DailyTasks {
		assert.Equal(t, models.StatusCompleted, dt.Status)
		for _, st := range dt.SubTasks {
			assert.Equal(t, models.StatusCompleted, st.Status)
		}
	}

	require.NoError(t, e.SetTaskStatus("t1", models.StatusTodo))
	task = mustGet(t, e, "t1")
	assert.Equal(t, models.StatusTodo, task.Status)
	for _, dt := range task.DailyTasks {
		assert.Equal(t, models.StatusTodo, dt.Status)
		for _, st := range dt.SubTasks {
			assert.Equal(t, models.StatusTodo, st.Status)
		}
	}
}

func TestSetTaskStatusFromCompletedToInProgressResetsChildren(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 2)))
	require.NoError(t, e.SetTaskStatus("t1", models.StatusCompleted))

	require.NoError(t, e.SetTaskStatus("t1", models.StatusInProgress))
	task := mustGet(t, e, "t1")
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, models.StatusTodo, task.DailyTasks[0].Status)
	assert.Equal(t, models.StatusTodo, task.DailyTasks[0].SubTasks[0].Status)
}

func TestSetTaskStatusWithoutCascadeDriftsUntilNextToggle(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 2)))

	require.NoError(t, e.SetTaskStatus("t1", models.StatusInProgress))
	task := mustGet(t, e, "t1")
	assert.Equal(t, models.StatusInProgress, task.Status)
	assert.Equal(t, models.StatusTodo, task.DailyTasks[0].Status, "children untouched")

	// the next toggle re-derives the task status from its children
	require.NoError(t, e.ToggleSubTaskStatus("t1", 0, 0))
	require.NoError(t, e.ToggleSubTaskStatus("t1", 0, 0))
	assert.Equal(t, models.StatusTodo, mustGet(t, e, "t1").Status)
}

func TestSetTaskStatusIgnoresInvalidAndUnknown(t *testing.T) {
	e, _, logs := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 1)))

	require.NoError(t, e.SetTaskStatus("t1", models.Status("archived")))
	require.NoError(t, e.SetTaskStatus("missing", models.StatusCompleted))

	assert.Equal(t, models.StatusTodo, mustGet(t, e, "t1").Status)
	assert.Equal(t, 1, logs.FilterMessage("set task status: invalid status").Len())
}

func TestAddOrdersNewestFirst(t *testing.T) {
	e, _, _ := newTestEngine(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, e.Add(sampleTask("middle", base.Add(time.Hour), 1)))
	require.NoError(t, e.Add(sampleTask("oldest", base, 1)))
	require.NoError(t, e.Add(sampleTask("newest", base.Add(2*time.Hour), 1)))

	var ids []string
	for _, task := range e.List() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"newest", "middle", "oldest"}, ids)
}

func TestUpdateReplacesWholesale(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 2)))

	updated := sampleTask("t1", time.Now(), 1)
	updated.TaskName = "Renamed"
	updated.OverallReminder = ""
	require.NoError(t, e.Update(updated))

	task := mustGet(t, e, "t1")
	assert.Equal(t, "Renamed", task.TaskName)
	assert.Len(t, task.DailyTasks, 1)
	assert.Len(t, task.DailyTasks[0].SubTasks, 1)

	require.NoError(t, e.Update(sampleTask("ghost", time.Now(), 1)))
	_, ok := e.Get("ghost")
	assert.False(t, ok, "update must not insert unknown tasks")
}

func TestDeleteAndToggleReminder(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 1)))
	require.NoError(t, e.Add(sampleTask("t2", time.Now(), 1)))

	require.NoError(t, e.ToggleReminder("t1"))
	assert.True(t, mustGet(t, e, "t1").IsDailyReminderSet)
	require.NoError(t, e.ToggleReminder("t1"))
	assert.False(t, mustGet(t, e, "t1").IsDailyReminderSet)

	require.NoError(t, e.Delete("t1"))
	require.NoError(t, e.Delete("t1"))
	_, ok := e.Get("t1")
	assert.False(t, ok)
	assert.Len(t, e.List(), 1)
}

func TestListReturnsCopies(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 1)))

	list := e.List()
	list[0].DailyTasks[0].SubTasks[0].Status = models.StatusCompleted

	assert.Equal(t, models.StatusTodo, mustGet(t, e, "t1").DailyTasks[0].SubTasks[0].Status)
}

func TestPersistenceRoundTrip(t *testing.T) {
	e, store, _ := newTestEngine(t)
	created := time.Date(2026, 5, 4, 10, 30, 15, 0, time.FixedZone("CEST", 2*3600))
	task := sampleTask("t1", created, 2, 1)
	task.OverallReminder = "Keep going"
	task.IsDailyReminderSet = true
	require.NoError(t, e.Add(task))
	require.NoError(t, e.Add(sampleTask("t2", created.Add(-time.Hour), 0)))
	require.NoError(t, e.ToggleSubTaskStatus("t1", 0, 1))

	reloaded := New(store, zap.NewNop())
	require.NoError(t, reloaded.Load())

	if diff := cmp.Diff(e.List(), reloaded.List()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCorruptSnapshotStartsEmpty(t *testing.T) {
	store := db.NewMemoryStore()
	require.NoError(t, store.SaveSnapshot(db.KeyTasks, []byte("{not json")))

	core, logs := observer.New(zapcore.DebugLevel)
	e := New(store, zap.New(core))
	require.NoError(t, e.Load())

	assert.Empty(t, e.List())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestLoadMigratesLooseSnapshots(t *testing.T) {
	store := db.NewMemoryStore()
	raw := `[{"id":"old","taskName":"Old","createdAt":"2025-01-02T03:04:05Z","status":"weird",
		"dailyTasks":[{"id":"d","dayDescription":"Day 1","status":"inprogress"}]},
		{"id":"bare","taskName":"Bare","createdAt":"2025-01-03T03:04:05Z","status":"completed"}]`
	require.NoError(t, store.SaveSnapshot(db.KeyTasks, []byte(raw)))

	e := New(store, nil)
	require.NoError(t, e.Load())

	old := mustGet(t, e, "old")
	assert.Equal(t, models.StatusTodo, old.Status)
	require.Len(t, old.DailyTasks, 1)
	assert.NotNil(t, old.DailyTasks[0].SubTasks)

	bare := mustGet(t, e, "bare")
	assert.Equal(t, models.StatusCompleted, bare.Status)
	assert.NotNil(t, bare.DailyTasks)
	assert.Equal(t, "bare", e.List()[0].ID, "newest first after load")
}

func TestSummary(t *testing.T) {
	e, _, _ := newTestEngine(t)
	require.NoError(t, e.Add(sampleTask("t1", time.Now(), 2)))
	require.NoError(t, e.Add(sampleTask("t2", time.Now(), 1, 1)))
	require.NoError(t, e.Add(sampleTask("t3", time.Now(), 1)))
	require.NoError(t, e.ToggleSubTaskStatus("t1", 0, 0))
	require.NoError(t, e.SetTaskStatus("t2", models.StatusCompleted))

	s := e.Summary()
	assert.Equal(t, Summary{
		Total:         3,
		Todo:          1,
		InProgress:    1,
		Completed:     1,
		SubTasksDone:  3,
		SubTasksTotal: 5,
	}, s)
	assert.Equal(t, 60, s.Percent())
}

func TestCurrentDailyTask(t *testing.T) {
	task := sampleTask("t1", time.Now(), 1, 1)
	assert.Equal(t, 0, CurrentDailyTask(task))

	task.DailyTasks[0].Status = models.StatusCompleted
	assert.Equal(t, 1, CurrentDailyTask(task))

	task.DailyTasks[1].Status = models.StatusCompleted
	assert.Equal(t, -1, CurrentDailyTask(task))
}
