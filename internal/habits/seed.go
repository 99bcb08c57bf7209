package habits

import (
	"fmt"
	"time"

	"github.com/contentally/ally/internal/models"
)

// DefaultHabits returns the starter habits used when nothing is stored
func DefaultHabits(now time.Time) []models.Habit {
	seed := []struct {
		name string
		icon string
		goal int
	}{
		{"Drink Water", "GlassWater", 8},
		{"Read", "BookOpen", 1},
		{"Exercise", "Dumbbell", 1},
		{"Meditate", "Brain", 1},
		{"Write Journal", "PenSquare", 1},
	}

	habits := make([]models.Habit, len(seed))
	for i, s := range seed {
		habits[i] = models.Habit{
			ID:        fmt.Sprintf("habit-%d-%d", now.UnixMilli(), i+1),
			Name:      s.name,
			IconName:  s.icon,
			Goal:      s.goal,
			CreatedAt: now,
		}
	}
	return habits
}
