package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/contentally/ally/internal/models"
)

var (
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRegex  = regexp.MustCompile(`^(?:in\s+)?(\d+)\s+(day|days|week|weeks)$`)
)

// ParseDeadline recognizes the common deadline spellings so they can be
// shown with a countdown. Deadlines stay free-form text on the task; this
// is display only.
// Supported formats:
// - today, tomorrow
// - dd/mm/yyyy (e.g., "15/12/2025")
// - yyyy-mm-dd (e.g., "2025-12-15")
// - X days, X weeks, in X days
func ParseDeadline(input string, today models.Date) (models.Date, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return models.Date{}, fmt.Errorf("empty deadline")
	}

	switch input {
	case "today", "tonight", "end of day":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}

	if d, err := models.ParseDate(input); err == nil {
		return d, nil
	}
	if d, err := parseSlashDate(input); err == nil {
		return d, nil
	}
	if d, err := parseRelative(input, today); err == nil {
		return d, nil
	}

	return models.Date{}, fmt.Errorf("unrecognized deadline %q", input)
}

// parseSlashDate parses dd/mm/yyyy format
func parseSlashDate(input string) (models.Date, error) {
	matches := slashDateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return models.Date{}, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])
	if month < 1 || month > 12 {
		return models.Date{}, fmt.Errorf("month must be between 1 and 12")
	}

	// Check if date is valid (handles leap years, etc.)
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return models.Date{}, fmt.Errorf("invalid date")
	}
	return models.DateOf(t), nil
}

// parseRelative parses relative formats like "3 days" or "in 2 weeks"
func parseRelative(input string, today models.Date) (models.Date, error) {
	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return models.Date{}, fmt.Errorf("invalid relative format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 0 || amount > 365 {
		return models.Date{}, fmt.Errorf("amount must be between 0 and 365")
	}

	switch matches[2] {
	case "week", "weeks":
		amount *= 7
	}
	return today.AddDays(amount), nil
}

// FormatDeadline renders a deadline for display, adding urgency when it
// can be recognized. Relative spellings are resolved against the day the
// task was planned. Anything else is shown as written.
func FormatDeadline(deadline string, planned, today models.Date) string {
	deadline = strings.TrimSpace(deadline)
	if deadline == "" {
		return ""
	}

	due, err := ParseDeadline(deadline, planned)
	if err != nil {
		return "📅 " + deadline
	}

	daysDiff := today.DaysUntil(due)
	dateStr := due.Time().Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("⚠️ OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("🔥 Due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("📅 Due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("📅 Due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("📅 Due %s", dateStr)
	}
}
