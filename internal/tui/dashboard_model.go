package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/contentally/ally/internal/habits"
	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
	"github.com/contentally/ally/internal/parser"
	"github.com/contentally/ally/internal/tasks"
)

// Focus represents which panel receives the arrow keys
type Focus int

const (
	FocusTasks Focus = iota
	FocusHabits
)

// subRef addresses one sub-task inside the selected task
type subRef struct {
	daily int
	sub   int
}

// DashboardModel shows planned tasks and habits side by side
type DashboardModel struct {
	width  int
	height int

	tasks  *tasks.Engine
	habits *habits.Engine

	// Snapshots refreshed after every mutation
	taskList  []models.PlannedTask
	habitList []models.Habit

	selectedTask  int
	selectedSub   int // index into subRefs() of the selected task
	selectedHabit int
	focus         Focus

	// Pagination
	currentPage  int
	tasksPerPage int

	keys    dashboardKeys
	help    help.Model
	shimmer Shimmer
	toast   *notify.Toast
	now     func() time.Time
}

func NewDashboardModel(taskEngine *tasks.Engine, habitEngine *habits.Engine) DashboardModel {
	m := DashboardModel{
		tasks:        taskEngine,
		habits:       habitEngine,
		tasksPerPage: 10,
		keys:         newDashboardKeys(),
		help:         help.New(),
		shimmer:      NewShimmer(DefaultShimmerConfig()),
		now:          time.Now,
	}
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText))
	m.help.Styles.FullKey = m.help.Styles.ShortKey
	m.help.Styles.FullDesc = m.help.Styles.ShortDesc
	m.refresh()
	m.selectedSub = m.firstOpenSub()
	return m
}

func (m DashboardModel) Init() tea.Cmd {
	return m.shimmer.Tick()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.shimmer = m.shimmer.Advance()
		return m, m.shimmer.Tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// header(2) + habits strip(4) + help(2) + borders(4)
		m.tasksPerPage = max(m.height-12, 3)
		m.currentPage = m.selectedTask / m.tasksPerPage
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focus == FocusTasks {
			m.focus = FocusHabits
		} else {
			m.focus = FocusTasks
		}
		return m, nil

	case key.Matches(msg, m.keys.HabitDone):
		return m.markHabitDone(), nil
	}

	if m.focus == FocusHabits {
		switch {
		case key.Matches(msg, m.keys.Left, m.keys.Up):
			if m.selectedHabit > 0 {
				m.selectedHabit--
			}
		case key.Matches(msg, m.keys.Right, m.keys.Down):
			if m.selectedHabit < len(m.habitList)-1 {
				m.selectedHabit++
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveSelectionUp(), nil
	case key.Matches(msg, m.keys.Down):
		return m.moveSelectionDown(), nil
	case key.Matches(msg, m.keys.Left):
		if m.selectedSub > 0 {
			m.selectedSub--
		}
		return m, nil
	case key.Matches(msg, m.keys.Right):
		if m.selectedSub < len(m.subRefs())-1 {
			m.selectedSub++
		}
		return m, nil
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSelectedSub(), nil
	case key.Matches(msg, m.keys.Completed):
		return m.setStatus(models.StatusCompleted), nil
	case key.Matches(msg, m.keys.Todo):
		return m.setStatus(models.StatusTodo), nil
	case key.Matches(msg, m.keys.InProgress):
		return m.setStatus(models.StatusInProgress), nil
	case key.Matches(msg, m.keys.Reminder):
		return m.toggleReminder(), nil
	}
	return m, nil
}

// refresh reloads the snapshots and keeps the selections in range
func (m *DashboardModel) refresh() {
	m.taskList = m.tasks.List()
	m.habitList = m.habits.List()
	m.selectedTask = clamp(m.selectedTask, len(m.taskList)-1)
	m.selectedHabit = clamp(m.selectedHabit, len(m.habitList)-1)
	m.selectedSub = clamp(m.selectedSub, len(m.subRefs())-1)
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}

func (m DashboardModel) currentTask() (models.PlannedTask, bool) {
	if m.selectedTask < 0 || m.selectedTask >= len(m.taskList) {
		return models.PlannedTask{}, false
	}
	return m.taskList[m.selectedTask], true
}

// subRefs flattens the selected task's sub-tasks in display order
func (m DashboardModel) subRefs() []subRef {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	var refs []subRef
	for d, daily := range task.DailyTasks {
		for s := range daily.SubTasks {
			refs = append(refs, subRef{daily: d, sub: s})
		}
	}
	return refs
}

// firstOpenSub points at the first sub-task of the current day
func (m DashboardModel) firstOpenSub() int {
	task, ok := m.currentTask()
	if !ok {
		return 0
	}
	day := tasks.CurrentDailyTask(task)
	for i, ref := range m.subRefs() {
		if ref.daily == day {
			return i
		}
	}
	return 0
}

func (m *DashboardModel) setToast(t notify.Toast) {
	m.toast = &t
}

func (m DashboardModel) toggleSelectedSub() DashboardModel {
	task, ok := m.currentTask()
	refs := m.subRefs()
	if !ok || m.selectedSub >= len(refs) {
		return m
	}
	ref := refs[m.selectedSub]
	if err := m.tasks.ToggleSubTaskStatus(task.ID, ref.daily, ref.sub); err != nil {
		m.setToast(notify.Error("Could not save", err.Error()))
		return m
	}
	m.refresh()
	if updated, ok := m.currentTask(); ok && updated.Status == models.StatusCompleted && task.Status != models.StatusCompleted {
		m.setToast(notify.Success("Task completed", updated.TaskName))
	} else {
		m.toast = nil
	}
	return m
}

func (m DashboardModel) setStatus(status models.Status) DashboardModel {
	task, ok := m.currentTask()
	if !ok {
		return m
	}
	if err := m.tasks.SetTaskStatus(task.ID, status); err != nil {
		m.setToast(notify.Error("Could not save", err.Error()))
		return m
	}
	m.refresh()
	m.setToast(notify.Info("Status updated", fmt.Sprintf("%s is now %s", task.TaskName, status.Label())))
	return m
}

func (m DashboardModel) toggleReminder() DashboardModel {
	task, ok := m.currentTask()
	if !ok {
		return m
	}
	if err := m.tasks.ToggleReminder(task.ID); err != nil {
		m.setToast(notify.Error("Could not save", err.Error()))
		return m
	}
	m.refresh()
	if task.IsDailyReminderSet {
		m.setToast(notify.Info("Reminder off", task.TaskName))
	} else {
		m.setToast(notify.Info("Reminder on", task.TaskName))
	}
	return m
}

func (m DashboardModel) markHabitDone() DashboardModel {
	if m.selectedHabit >= len(m.habitList) {
		return m
	}
	h := m.habitList[m.selectedHabit]
	res, err := m.habits.MarkDone(h.ID)
	if err != nil {
		m.setToast(notify.Error("Could not save", err.Error()))
		return m
	}
	m.refresh()
	switch {
	case res.GoalMet:
		m.setToast(notify.Success("Goal achieved!", fmt.Sprintf("%s · streak %d", h.Name, res.Habit.Streak)))
	case !res.Progressed:
		m.setToast(notify.Info("Already done today", h.Name))
	default:
		m.toast = nil
	}
	return m
}

// moveSelectionUp moves the selection up
func (m DashboardModel) moveSelectionUp() DashboardModel {
	if m.selectedTask > 0 {
		m.selectedTask--
		m.selectedSub = m.firstOpenSub()
		m.shimmer = m.shimmer.Reset()

		// Auto-pagination: if we scrolled above current page, go to previous page
		if m.selectedTask < m.currentPage*m.tasksPerPage && m.currentPage > 0 {
			m.currentPage--
		}
	}
	return m
}

// moveSelectionDown moves the selection down
func (m DashboardModel) moveSelectionDown() DashboardModel {
	if m.selectedTask < len(m.taskList)-1 {
		m.selectedTask++
		m.selectedSub = m.firstOpenSub()
		m.shimmer = m.shimmer.Reset()

		// Auto-pagination: if we scrolled below current page, go to next page
		if m.selectedTask >= (m.currentPage+1)*m.tasksPerPage {
			m.currentPage++
		}
	}
	return m
}

func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	leftWidth := m.width * 55 / 100
	rightWidth := m.width - leftWidth - 1

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTaskTable(leftWidth),
		" ",
		m.renderTaskDetails(rightWidth),
	)

	sections := []string{"", m.renderHabits(m.width), content}
	if m.toast != nil {
		sections = append(sections, m.renderToast())
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHabits renders the habit strip across the top
func (m DashboardModel) renderHabits(width int) string {
	if len(m.habitList) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).
			Render("No habits yet. Add one with: ally habit add \"Read goal:1 icon:BookOpen\"")
	}

	cells := make([]string, 0, len(m.habitList))
	for i, h := range m.habitList {
		label := fmt.Sprintf("%s %s %d/%d", habits.Glyph(h.IconName), h.Name, h.CompletedToday, h.Goal)
		if h.Streak > 0 {
			label += fmt.Sprintf(" 🔥%d", h.Streak)
		}

		style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder))
		if h.GoalMet() {
			style = style.Foreground(lipgloss.Color(ColorSuccess))
		}
		if i == m.selectedHabit {
			border := ColorAccentBright
			if m.focus == FocusHabits {
				border = ColorAccentMain
				style = style.Bold(true)
			}
			style = style.BorderForeground(lipgloss.Color(border))
		}
		cells = append(cells, style.Render(label))
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// renderTaskTable renders the left panel with the task table
func (m DashboardModel) renderTaskTable(width int) string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(headerStyle.Render("📋 Planned tasks"))
	b.WriteString("\n\n")

	if len(m.taskList) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true)
		b.WriteString(emptyStyle.Render("No tasks yet. Plan one with: ally plan"))
		return m.panelStyle(width, m.focus == FocusTasks).Render(b.String())
	}

	statusWidth := 8
	progressWidth := 7
	nameWidth := max(width-statusWidth-progressWidth-8, 12)

	columnHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccentBright))
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf(" %-*s %-*s %s", statusWidth, "STATUS", nameWidth, "TASK", "DONE")))
	b.WriteString("\n")

	start := m.currentPage * m.tasksPerPage
	end := min(start+m.tasksPerPage, len(m.taskList))
	for i := start; i < end; i++ {
		task := m.taskList[i]
		done, total := task.SubTaskProgress()

		name := Truncate(task.TaskName, nameWidth)
		padded := name + strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))
		if i == m.selectedTask {
			padded = m.shimmer.Render(name) + strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))
		}

		status := lipgloss.NewStyle().Foreground(lipgloss.Color(StatusColor(task.Status))).
			Width(statusWidth).Render(StatusBadge(task.Status))
		progress := fmt.Sprintf("%d/%d", done, total)

		marker := " "
		if i == m.selectedTask {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Render("▌")
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n", marker, status, padded, progress))
	}

	// Pagination info
	if m.tasksPerPage < len(m.taskList) {
		totalPages := (len(m.taskList) + m.tasksPerPage - 1) / m.tasksPerPage
		pageStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).MarginTop(1)
		b.WriteString(pageStyle.Render(fmt.Sprintf("Page %d/%d (%d tasks)", m.currentPage+1, totalPages, len(m.taskList))))
	}

	return m.panelStyle(width, m.focus == FocusTasks).Render(b.String())
}

// renderTaskDetails renders the right panel with the selected task's plan
func (m DashboardModel) renderTaskDetails(width int) string {
	var b strings.Builder

	task, ok := m.currentTask()
	if !ok {
		logoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
		b.WriteString(logoStyle.Render("ally"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).
			Render("Select a task to view its plan"))
		return m.panelStyle(width, false).Render(b.String())
	}

	inner := max(width-4, 10)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorPrimaryText)).Width(inner)
	b.WriteString(titleStyle.Render(task.TaskName))
	b.WriteString("\n\n")

	b.WriteString("Status: ")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(StatusColor(task.Status))).Bold(true).Render(task.Status.Label()))
	b.WriteString("\n")

	if task.Deadline != "" {
		b.WriteString("Deadline: ")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).
			Render(parser.FormatDeadline(task.Deadline, models.DateOf(task.CreatedAt.In(time.Local)), models.DateOf(m.now()))))
		b.WriteString("\n")
	}
	if task.IsDailyReminderSet {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright)).Render("🔔 Daily reminder on"))
		b.WriteString("\n")
	}

	done, total := task.SubTaskProgress()
	b.WriteString(fmt.Sprintf("%s %d/%d\n", ProgressBar(done, total, min(20, inner-8)), done, total))

	if task.OverallReminder != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Italic(true).Width(inner).
			Render("💡 " + task.OverallReminder))
		b.WriteString("\n")
	}

	refs := m.subRefs()
	var selected subRef
	if m.selectedSub < len(refs) {
		selected = refs[m.selectedSub]
	}
	current := tasks.CurrentDailyTask(task)

	for d, daily := range task.DailyTasks {
		dayStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(StatusColor(daily.Status)))
		prefix := "\n"
		if d == current {
			prefix = "\n▸ "
		}
		b.WriteString(prefix)
		b.WriteString(dayStyle.Render(Truncate(daily.DayDescription, inner-2)))
		b.WriteString("\n")

		for s, sub := range daily.SubTasks {
			line := fmt.Sprintf("  %s %s", Checkbox(sub.Status), Truncate(sub.Description, inner-6))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
			if sub.Status == models.StatusCompleted {
				style = style.Foreground(lipgloss.Color(ColorDisabledText)).Strikethrough(true)
			}
			if len(refs) > 0 && selected == (subRef{daily: d, sub: s}) && m.focus == FocusTasks {
				style = style.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true).Strikethrough(false)
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	return m.panelStyle(width, false).Render(b.String())
}

func (m DashboardModel) renderToast() string {
	styles := ToastStyles()
	t := *m.toast
	style := styles.Info
	switch t.Kind {
	case notify.KindSuccess:
		style = styles.Success
	case notify.KindError:
		style = styles.Error
	}
	line := style.Render(t.Title)
	if t.Description != "" {
		line += " " + styles.Description.Render(t.Description)
	}
	return line
}

func (m DashboardModel) panelStyle(width int, active bool) lipgloss.Style {
	border := ColorBorder
	if active {
		border = ColorAccentMain
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(width)
}

// Truncate shortens s to n display cells, adding "..." when cut
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
