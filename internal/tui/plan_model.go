package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/contentally/ally/internal/flows"
	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/tasks"
)

// Step represents the current step in the wizard
type Step int

const (
	StepDescription Step = iota
	StepDeadline
	StepPlanning
	StepComplete
)

// Planner produces a plan from a description and deadline
type Planner interface {
	Plan(ctx context.Context, in flows.PlanInput) (flows.PlanOutput, error)
}

// planResultMsg carries the outcome of the planning call
type planResultMsg struct {
	plan flows.PlanOutput
	err  error
}

// PlanModel asks for a task description and deadline, then plans the
// task with the AI and adds it to the engine
type PlanModel struct {
	currentStep Step
	inputs      []textinput.Model
	spinner     spinner.Model
	shimmer     Shimmer
	width       int
	height      int

	planner Planner
	engine  *tasks.Engine
	timeout time.Duration
	now     func() time.Time

	// State
	validationErr string
	err           error
	cancelled     bool
	created       *models.PlannedTask
}

// NewPlanModel creates the wizard. Values in prefilled ("description",
// "deadline") are put into the inputs.
func NewPlanModel(planner Planner, engine *tasks.Engine, timeout time.Duration, prefilled map[string]string) PlanModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[0].Placeholder = "What do you need to get done? (required)"
	inputs[0].CharLimit = 1000
	inputs[0].Focus()

	inputs[1].Placeholder = "Deadline: today, tomorrow, end of next week, 15/12/2025 (required)"
	inputs[1].CharLimit = 100

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))

	m := PlanModel{
		currentStep: StepDescription,
		inputs:      inputs,
		spinner:     s,
		shimmer:     NewShimmer(DefaultShimmerConfig()),
		planner:     planner,
		engine:      engine,
		timeout:     timeout,
		now:         time.Now,
	}
	if v, ok := prefilled["description"]; ok {
		m.inputs[0].SetValue(v)
	}
	if v, ok := prefilled["deadline"]; ok {
		m.inputs[1].SetValue(v)
	}
	return m
}

func (m PlanModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.inputs {
			m.inputs[i].Width = min(max(m.width-10, 30), 80)
		}
		return m, nil

	case spinner.TickMsg:
		if m.currentStep != StepPlanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case shimmerTickMsg:
		if m.currentStep != StepPlanning {
			return m, nil
		}
		m.shimmer = m.shimmer.Advance()
		return m, m.shimmer.Tick()

	case planResultMsg:
		return m.finishPlanning(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.currentStep == StepDeadline {
				return m.prevStep()
			}
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "shift+tab", "up":
			if m.currentStep == StepDeadline {
				return m.prevStep()
			}
			return m, nil
		}
	}

	// Update the current input
	var cmd tea.Cmd
	if m.currentStep < StepPlanning {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m PlanModel) handleEnter() (PlanModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case StepDescription:
		if strings.TrimSpace(m.inputs[0].Value()) == "" {
			m.validationErr = "Task description is required"
			return m, nil
		}
		return m.nextStep()

	case StepDeadline:
		if strings.TrimSpace(m.inputs[1].Value()) == "" {
			m.validationErr = "Deadline is required"
			return m, nil
		}
		m.inputs[1].Blur()
		m.currentStep = StepPlanning
		m.shimmer = m.shimmer.Reset()
		return m, tea.Batch(m.spinner.Tick, m.shimmer.Tick(), m.runPlan())
	}
	return m, nil
}

// runPlan calls the planner off the UI loop
func (m PlanModel) runPlan() tea.Cmd {
	in := flows.PlanInput{
		TaskDescription: strings.TrimSpace(m.inputs[0].Value()),
		Deadline:        strings.TrimSpace(m.inputs[1].Value()),
	}
	planner, timeout := m.planner, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		plan, err := planner.Plan(ctx, in)
		return planResultMsg{plan: plan, err: err}
	}
}

// finishPlanning adds the planned task, or keeps the wizard open on failure
func (m PlanModel) finishPlanning(msg planResultMsg) (PlanModel, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.currentStep = StepDeadline
		m.inputs[1].Focus()
		return m, textinput.Blink
	}

	task := tasks.FromPlan(msg.plan,
		strings.TrimSpace(m.inputs[0].Value()),
		strings.TrimSpace(m.inputs[1].Value()),
		m.now())
	if err := m.engine.Add(task); err != nil {
		m.err = err
		m.currentStep = StepDeadline
		m.inputs[1].Focus()
		return m, textinput.Blink
	}

	m.err = nil
	m.created = &task
	m.currentStep = StepComplete
	return m, tea.Quit
}

// nextStep moves to the next input
func (m PlanModel) nextStep() (PlanModel, tea.Cmd) {
	m.inputs[m.currentStep].Blur()
	m.currentStep++
	m.inputs[m.currentStep].Focus()
	return m, textinput.Blink
}

// prevStep moves to the previous input
func (m PlanModel) prevStep() (PlanModel, tea.Cmd) {
	m.inputs[m.currentStep].Blur()
	m.currentStep--
	m.inputs[m.currentStep].Focus()
	m.validationErr = ""
	return m, textinput.Blink
}

// Created returns the task added by the wizard, if any
func (m PlanModel) Created() (models.PlannedTask, bool) {
	if m.created == nil {
		return models.PlannedTask{}, false
	}
	return *m.created, true
}

// Cancelled reports whether the user left before a task was created
func (m PlanModel) Cancelled() bool {
	return m.cancelled
}

// Err returns the last planning error
func (m PlanModel) Err() error {
	return m.err
}

func (m PlanModel) View() string {
	if m.cancelled || m.currentStep == StepComplete {
		return ""
	}

	var b strings.Builder

	logoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentMain)).Bold(true)
	b.WriteString(logoStyle.Render("ally · plan a task"))
	b.WriteString("\n\n")

	labels := []string{"Task description", "Deadline"}
	for i, label := range labels {
		labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		if Step(i) == m.currentStep {
			labelStyle = labelStyle.Foreground(lipgloss.Color(ColorAccentBright)).Bold(true)
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n")
		if Step(i) <= m.currentStep || m.inputs[i].Value() != "" {
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if m.currentStep == StepPlanning {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.shimmer.Render("Planning your days..."))
		b.WriteString("\n")
	}

	if m.validationErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("⚠ " + m.validationErr))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("❌ Planning failed: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).Render("Press Enter to try again."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
		Render("enter next · ↑/shift+tab back · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())
}
