package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
)

// ToastStyles returns the notification styles in the ally palette
func ToastStyles() notify.Styles {
	return notify.Styles{
		Info:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright)),
		Success:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorSuccess)),
		Error:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorError)),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)),
	}
}

// StatusColor maps a status to its display color
func StatusColor(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return ColorSuccess
	case models.StatusInProgress:
		return ColorWarning
	default:
		return ColorSecondaryText
	}
}

// StatusBadge returns a fixed-width icon and label for a status
func StatusBadge(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "✓ done"
	case models.StatusInProgress:
		return "◐ doing"
	default:
		return "○ todo"
	}
}

// Checkbox renders a sub-task marker
func Checkbox(s models.Status) string {
	if s == models.StatusCompleted {
		return "[x]"
	}
	return "[ ]"
}

// ProgressBar draws done/total as a bar of the given width
func ProgressBar(done, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = min(done*width/total, width)
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder)).Render(strings.Repeat("░", width-filled))
	return bar + rest
}
