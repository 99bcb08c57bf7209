// Package habits tracks daily habits, their progress toward a per-day goal
// and the streak of consecutive days the goal was met.
package habits

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/contentally/ally/internal/db"
	"github.com/contentally/ally/internal/models"
)

var ErrInvalidHabit = errors.New("invalid habit")

// HabitInput holds the user-supplied fields of a new habit
type HabitInput struct {
	Name     string
	IconName string
	Goal     int
}

// MarkResult describes the outcome of MarkDone
type MarkResult struct {
	Habit models.Habit
	// Progressed is false when the goal was already met or the id is unknown
	Progressed bool
	// GoalMet is true only on the increment that reached the goal
	GoalMet bool
}

type Option func(*Engine)

// WithClock overrides the time source used for calendar comparisons
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine owns the habit collection. Every mutation writes the full
// collection back to the store.
type Engine struct {
	mu     sync.Mutex
	store  db.SnapshotStore
	logger *zap.Logger
	now    func() time.Time
	habits []models.Habit
}

func New(store db.SnapshotStore, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		store:  store,
		logger: logger.Named("habits"),
		now:    time.Now,
		habits: []models.Habit{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load reads the stored habits, seeding the defaults when nothing usable
// is stored, then runs the daily reset check once.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	loaded, found, err := db.LoadJSON[models.Habit](e.store, db.KeyHabits)
	switch {
	case err != nil:
		e.logger.Error("error loading habits, seeding defaults", zap.Error(err))
		if err := e.seedLocked(); err != nil {
			return err
		}
	case !found:
		if err := e.seedLocked(); err != nil {
			return err
		}
	default:
		e.habits = loaded
		e.logger.Debug("habits loaded", zap.Int("count", len(loaded)))
		if e.normalizeLocked() {
			if err := e.saveLocked(); err != nil {
				return err
			}
		}
	}

	return e.resetLocked()
}

// normalizeLocked repairs stored habits the way Update would: goal at
// least 1, a known icon and completedToday within [0, goal]
func (e *Engine) normalizeLocked() bool {
	changed := false
	for i := range e.habits {
		h := &e.habits[i]
		goal := max(h.Goal, 1)
		icon := e.resolveIcon(h.IconName)
		completed := min(max(h.CompletedToday, 0), goal)
		if goal != h.Goal || icon != h.IconName || completed != h.CompletedToday {
			e.logger.Debug("stored habit normalized",
				zap.String("habit_id", h.ID),
				zap.String("icon", h.IconName),
				zap.Int("goal", h.Goal),
				zap.Int("completed_today", h.CompletedToday))
			h.Goal, h.IconName, h.CompletedToday = goal, icon, completed
			changed = true
		}
	}
	return changed
}

func (e *Engine) seedLocked() error {
	e.habits = DefaultHabits(e.now())
	return e.saveLocked()
}

// List returns a copy of all habits
func (e *Engine) List() []models.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Habit, len(e.habits))
	for i, h := range e.habits {
		out[i] = cloneHabit(h)
	}
	return out
}

// Get returns a copy of the habit with the given id
func (e *Engine) Get(id string) (models.Habit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexLocked(id); i >= 0 {
		return cloneHabit(e.habits[i]), true
	}
	return models.Habit{}, false
}

// Add creates a habit with no progress and puts it first
func (e *Engine) Add(in HabitInput) (models.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Habit{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidHabit)
	}
	if in.Goal < 1 {
		return models.Habit{}, fmt.Errorf("%w: goal must be at least 1", ErrInvalidHabit)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	h := models.Habit{
		ID:        newID(now),
		Name:      name,
		IconName:  e.resolveIcon(in.IconName),
		Goal:      in.Goal,
		CreatedAt: now,
	}
	e.habits = append([]models.Habit{h}, e.habits...)
	return cloneHabit(h), e.saveLocked()
}

// Update replaces the habit with the same id. Unknown ids are ignored.
func (e *Engine) Update(h models.Habit) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(h.ID)
	if i < 0 {
		e.logger.Debug("update ignored, habit not found", zap.String("habit_id", h.ID))
		return nil
	}
	if h.Goal < 1 {
		return fmt.Errorf("%w: goal must be at least 1", ErrInvalidHabit)
	}
	h = cloneHabit(h)
	h.IconName = e.resolveIcon(h.IconName)
	h.CompletedToday = min(max(h.CompletedToday, 0), h.Goal)
	e.habits[i] = h
	return e.saveLocked()
}

// Delete removes the habit with the given id. Unknown ids are ignored.
func (e *Engine) Delete(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		return nil
	}
	e.habits = append(e.habits[:i], e.habits[i+1:]...)
	return e.saveLocked()
}

// MarkDone records one occurrence for today. Once the goal is met further
// calls change nothing. Meeting the goal extends the streak when the
// previous completion was yesterday and restarts it at 1 otherwise.
func (e *Engine) MarkDone(id string) (MarkResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.indexLocked(id)
	if i < 0 {
		e.logger.Debug("mark done ignored, habit not found", zap.String("habit_id", id))
		return MarkResult{}, nil
	}
	h := &e.habits[i]
	if h.CompletedToday >= h.Goal {
		return MarkResult{Habit: cloneHabit(*h)}, nil
	}

	today := e.today()
	if !sameDate(h.LastCompletedDate, today) {
		h.PriorCompletedDate = copyDate(h.LastCompletedDate)
		h.PriorRecorded = true
	}

	h.CompletedToday++
	result := MarkResult{Progressed: true}

	if h.CompletedToday >= h.Goal {
		ref := h.LastCompletedDate
		if sameDate(ref, today) {
			ref = &today
			if h.PriorRecorded {
				ref = h.PriorCompletedDate
			}
		}
		switch {
		case ref == nil:
			h.Streak = 1
		case *ref == today.AddDays(-1):
			h.Streak++
		case *ref != today:
			h.Streak = 1
		}
		h.PriorCompletedDate = copyDate(&today)
		h.PriorRecorded = true
		result.GoalMet = true
		e.logger.Debug("habit goal met",
			zap.String("habit_id", h.ID),
			zap.Int("streak", h.Streak))
	}
	h.LastCompletedDate = &today

	result.Habit = cloneHabit(*h)
	return result, e.saveLocked()
}

// CheckAndResetStreaks clears yesterday's progress and breaks streaks that
// missed a day. It is meant to run once per calendar day.
func (e *Engine) CheckAndResetStreaks() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resetLocked()
}

func (e *Engine) resetLocked() error {
	today := e.today()
	yesterday := today.AddDays(-1)
	dayBeforeYesterday := today.AddDays(-2)

	changed := false
	for i := range e.habits {
		h := &e.habits[i]
		streak, completed := h.Streak, h.CompletedToday

		if last := h.LastCompletedDate; last != nil && *last != today {
			completed = 0
			if h.Goal > 0 && *last != yesterday {
				// two days ago with a live streak keeps it
				if *last != dayBeforeYesterday || h.Streak == 0 {
					streak = 0
				}
			}
		} else if last == nil && h.Streak > 0 {
			streak = 0
		}

		if streak != h.Streak || completed != h.CompletedToday {
			e.logger.Debug("habit reset",
				zap.String("habit_id", h.ID),
				zap.Int("streak", streak),
				zap.Int("previous_streak", h.Streak))
			h.Streak, h.CompletedToday = streak, completed
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return e.saveLocked()
}

func (e *Engine) today() models.Date {
	return models.DateOf(e.now().In(time.Local))
}

func (e *Engine) resolveIcon(name string) string {
	key, ok := ResolveIcon(name)
	if !ok {
		e.logger.Debug("unknown icon, using fallback", zap.String("icon", name))
	}
	return key
}

func (e *Engine) indexLocked(id string) int {
	for i := range e.habits {
		if e.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) saveLocked() error {
	if err := db.SaveJSON(e.store, db.KeyHabits, e.habits); err != nil {
		e.logger.Error("error saving habits", zap.Error(err))
		return err
	}
	return nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// newID returns "habit-<unix millis>-<5 base36 chars>"
func newID(now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return fmt.Sprintf("habit-%d-%s", now.UnixMilli(), suffix)
}

func sameDate(d *models.Date, day models.Date) bool {
	return d != nil && *d == day
}

func copyDate(d *models.Date) *models.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func cloneHabit(h models.Habit) models.Habit {
	h.LastCompletedDate = copyDate(h.LastCompletedDate)
	h.PriorCompletedDate = copyDate(h.PriorCompletedDate)
	return h
}
