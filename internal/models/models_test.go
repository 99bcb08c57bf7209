package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"todo", StatusTodo},
		{" To-Do ", StatusTodo},
		{"in_progress", StatusInProgress},
		{"in-progress", StatusInProgress},
		{"inprogress", StatusInProgress},
		{"done", StatusCompleted},
		{"Completed", StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseStatus("blocked")
	assert.ErrorContains(t, err, "invalid status 'blocked'")
}

func TestStatusUnmarshalFallsBackToTodo(t *testing.T) {
	var got struct {
		A Status `json:"a"`
		B Status `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"inprogress","b":"archived"}`), &got))
	assert.Equal(t, StatusInProgress, got.A)
	assert.Equal(t, StatusTodo, got.B)
}

func TestDateJSON(t *testing.T) {
	d := Date{Year: 2025, Month: time.March, Day: 9}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(data))

	var h Habit
	require.NoError(t, json.Unmarshal([]byte(`{"lastCompletedDate":null}`), &h))
	assert.Nil(t, h.LastCompletedDate)

	require.NoError(t, json.Unmarshal([]byte(`{"lastCompletedDate":"2025-03-09"}`), &h))
	require.NotNil(t, h.LastCompletedDate)
	assert.Equal(t, d, *h.LastCompletedDate)

	var parsed Date
	assert.Error(t, json.Unmarshal([]byte(`"09/03/2025"`), &parsed))
}

func TestDateArithmetic(t *testing.T) {
	d := Date{Year: 2024, Month: time.February, Day: 28}
	assert.Equal(t, Date{Year: 2024, Month: time.February, Day: 29}, d.AddDays(1))
	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 1}, d.AddDays(2))
	assert.Equal(t, Date{Year: 2023, Month: time.December, Day: 31}, Date{Year: 2024, Month: time.January, Day: 1}.AddDays(-1))

	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -1, d.DaysUntil(d.AddDays(-1)))
	assert.Equal(t, 366, Date{Year: 2024, Month: time.January, Day: 1}.DaysUntil(Date{Year: 2025, Month: time.January, Day: 1}))
	assert.True(t, Date{}.IsZero())
}

func TestPlannedTaskCloneAndNormalize(t *testing.T) {
	task := PlannedTask{
		Status: "bogus",
		DailyTasks: []DailyTask{
			{SubTasks: []SubTask{{Status: StatusCompleted}, {Status: StatusTodo}}},
			{},
		},
	}
	task.Normalize()
	assert.Equal(t, StatusTodo, task.Status)
	assert.NotNil(t, task.DailyTasks[1].SubTasks)

	clone := task.Clone()
	clone.DailyTasks[0].SubTasks[1].Status = StatusCompleted
	assert.Equal(t, StatusTodo, task.DailyTasks[0].SubTasks[1].Status)

	done, total := task.SubTaskProgress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, total)
}

func TestHabitProgress(t *testing.T) {
	h := Habit{Goal: 8, CompletedToday: 2}
	assert.Equal(t, 25, h.Progress())
	assert.False(t, h.GoalMet())

	h.CompletedToday = 9
	assert.Equal(t, 100, h.Progress())
	assert.True(t, h.GoalMet())

	assert.Equal(t, 0, Habit{}.Progress())
}
