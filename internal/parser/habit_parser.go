package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxHabitGoal caps the daily goal accepted by the quick-add syntax
const MaxHabitGoal = 100

// ParsedHabit represents a habit parsed from the quick-add syntax
type ParsedHabit struct {
	Name   string
	Goal   int
	Icon   string
	Errors []string
}

var (
	goalRegex = regexp.MustCompile(`(?i)\bgoal:(\S+)`)
	iconRegex = regexp.MustCompile(`(?i)\bicon:(\S+)`)
)

// ParseHabit extracts metadata from a habit name using natural syntax
// Syntax: "Drink water goal:8 icon:GlassWater"
func ParseHabit(input string) ParsedHabit {
	result := ParsedHabit{
		Goal:   1,
		Errors: []string{},
	}

	// Extract goal (goal:8)
	if m := goalRegex.FindStringSubmatch(input); len(m) > 1 {
		goal, err := strconv.Atoi(m[1])
		switch {
		case err != nil:
			result.Errors = append(result.Errors, "Invalid goal '"+m[1]+"'. Use a whole number, e.g. goal:8")
		case goal < 1 || goal > MaxHabitGoal:
			result.Errors = append(result.Errors, "Goal must be between 1 and "+strconv.Itoa(MaxHabitGoal))
		default:
			result.Goal = goal
		}
		input = goalRegex.ReplaceAllString(input, "")
	}

	// Extract icon (icon:BookOpen)
	if m := iconRegex.FindStringSubmatch(input); len(m) > 1 {
		result.Icon = m[1]
		input = iconRegex.ReplaceAllString(input, "")
	}

	// Clean up the name (remove extra spaces)
	result.Name = strings.Join(strings.Fields(input), " ")
	if result.Name == "" {
		result.Errors = append(result.Errors, "Habit name cannot be empty")
	}

	return result
}
