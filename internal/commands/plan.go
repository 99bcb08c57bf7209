package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/contentally/ally/internal/chat"
	"github.com/contentally/ally/internal/flows"
	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
	"github.com/contentally/ally/internal/parser"
	"github.com/contentally/ally/internal/tasks"
	"github.com/contentally/ally/internal/tui"
)

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var deadline string

	cmd := &cobra.Command{
		Use:   "plan [description]",
		Short: "Break a goal into a day-by-day plan",
		Long: `Ask the model to split a goal into daily tasks and sub-tasks that fit
before the deadline. Without --no-ui any missing field is asked for in the
interactive wizard.`,
		Example: `  ally plan "Prepare the quarterly report" --deadline "in 5 days"
  ally plan`,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			description := strings.TrimSpace(strings.Join(args, " "))
			due := strings.TrimSpace(deadline)

			f, err := app.Flows(cmd.Context())
			if err != nil {
				return err
			}

			if opts.noUI || (description != "" && due != "") {
				return planDirect(cmd, app, f, description, due)
			}

			task, ok, err := tui.RunPlanWizard(f, app.Tasks, app.Config.RequestTimeout(), map[string]string{
				"description": description,
				"deadline":    due,
			}, app.Notifier)
			if err != nil {
				recordFailure(app, "Plan: "+description, err)
				return reportedError{err}
			}
			if ok {
				recordPlan(app, task)
				printTask(cmd.OutOrStdout(), task, time.Now())
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "Deadline (yyyy-mm-dd, dd/mm/yyyy, tomorrow, 3 days)")
	return cmd
}

func planDirect(cmd *cobra.Command, app *App, f *flows.Flows, description, deadline string) error {
	if description == "" {
		return fmt.Errorf("task description is required")
	}
	if deadline == "" {
		return fmt.Errorf("deadline is required (use --deadline)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.RequestTimeout())
	defer cancel()

	out, err := f.Plan(ctx, flows.PlanInput{TaskDescription: description, Deadline: deadline})
	if err != nil {
		app.Notifier.Notify(notify.Error("Planning failed", err.Error()))
		recordFailure(app, "Plan: "+description, err)
		return reportedError{err}
	}

	now := time.Now()
	task := tasks.FromPlan(out, description, deadline, now)
	if err := app.Tasks.Add(task); err != nil {
		return err
	}

	app.Notifier.Notify(notify.Success("Task planned", task.TaskName))
	recordPlan(app, task)
	printTask(cmd.OutOrStdout(), task, now)
	return nil
}

// recordPlan appends the exchange to the chat history. Failures only log.
func recordPlan(app *App, task models.PlannedTask) {
	reply, err := chat.AssistantMessage(models.MessagePlan,
		fmt.Sprintf("Planned %q over %d days.", task.TaskName, len(task.DailyTasks)), task)
	if err != nil {
		app.Logger.Warn("failed to encode chat message", zap.Error(err))
		return
	}
	record(app, chat.UserMessage("Plan: "+task.OriginalDescription), reply)
}

func recordFailure(app *App, prompt string, err error) {
	record(app, chat.UserMessage(prompt), chat.ErrorMessage(err))
}

func record(app *App, msgs ...models.ChatMessage) {
	if err := app.Chat.AddMany(msgs); err != nil {
		app.Logger.Warn("failed to save chat history", zap.Error(err))
	}
}

func printTask(w io.Writer, task models.PlannedTask, now time.Time) {
	done, total := task.SubTaskProgress()
	fmt.Fprintf(w, "%s  %s  [%s]  %d/%d\n", shortID(task.ID), task.TaskName, task.Status.Label(), done, total)
	if task.Deadline != "" {
		planned := models.DateOf(task.CreatedAt.In(time.Local))
		fmt.Fprintf(w, "   %s\n", parser.FormatDeadline(task.Deadline, planned, models.DateOf(now.In(time.Local))))
	}
	if task.OverallReminder != "" {
		fmt.Fprintf(w, "   💡 %s\n", task.OverallReminder)
	}
	for i, day := range task.DailyTasks {
		fmt.Fprintf(w, "\n   Day %d: %s  [%s]\n", i+1, day.DayDescription, day.Status.Label())
		for j, sub := range day.SubTasks {
			fmt.Fprintf(w, "     %d. %s %s\n", j+1, tui.Checkbox(sub.Status), sub.Description)
		}
	}
}
