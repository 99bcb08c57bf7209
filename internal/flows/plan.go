package flows

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

type PlanInput struct {
	TaskDescription string `json:"taskDescription"`
	Deadline        string `json:"deadline"`
}

// PlanDay is one day of a generated plan
type PlanDay struct {
	DayDescription string   `json:"dayDescription"`
	SubTasks       []string `json:"subTasks"`
}

type PlanOutput struct {
	TaskName        string    `json:"taskName"`
	DailyTasks      []PlanDay `json:"dailyTasks"`
	OverallReminder string    `json:"overallReminder"`
}

var planPrompt = mustPrompt("plan", `You are a personal assistant helping the user plan a task.

Task description: {{.TaskDescription}}
Deadline: {{.Deadline}}

Based on the task description and deadline, provide a concise task name.
Then break the task down into a schedule of daily tasks. For each day give a brief description
of that day's focus (e.g. "Day 1: Research & Information Gathering", "Tuesday: Draft initial sections")
and list specific, actionable sub-tasks for that day.
Finally, provide an overall reminder or motivational tip for the whole project.
If the deadline is short (e.g. "today", "tomorrow"), the plan may cover only one or two days.
If the deadline is longer (e.g. "end of next week"), spread the work reasonably across the available days.`)

var planSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"taskName": stringSchema("The name of the overall task."),
		"dailyTasks": {
			Type:        genai.TypeArray,
			Description: "Daily tasks, each with its own sub-tasks, outlining the plan to meet the deadline.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"dayDescription": stringSchema("Description or title for the day (e.g. 'Day 1: Research')."),
					"subTasks": {
						Type:        genai.TypeArray,
						Description: "Specific sub-tasks to be completed on this day.",
						Items:       &genai.Schema{Type: genai.TypeString},
					},
				},
				Required: []string{"dayDescription", "subTasks"},
			},
		},
		"overallReminder": stringSchema("A general reminder or motivational tip for the entire task."),
	},
	Required: []string{"taskName", "dailyTasks", "overallReminder"},
}

// Plan breaks a task description into daily tasks and sub-tasks.
// A failed or empty plan returns an error so no task gets created.
func (f *Flows) Plan(ctx context.Context, in PlanInput) (PlanOutput, error) {
	if err := minLength("taskDescription", in.TaskDescription, 1); err != nil {
		return PlanOutput{}, err
	}
	if err := minLength("deadline", in.Deadline, 1); err != nil {
		return PlanOutput{}, err
	}
	prompt, err := render(planPrompt, in)
	if err != nil {
		return PlanOutput{}, err
	}
	out, err := run[PlanOutput](ctx, f, Request{Name: "plan", Prompt: prompt, Schema: planSchema})
	if err != nil {
		return PlanOutput{}, err
	}
	if out == nil || (strings.TrimSpace(out.TaskName) == "" && len(out.DailyTasks) == 0) {
		return PlanOutput{}, ErrEmptyOutput
	}
	return *out, nil
}
