package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
	"github.com/contentally/ally/internal/tasks"
	"github.com/contentally/ally/internal/tui"
)

func newTaskCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage planned tasks",
	}
	cmd.AddCommand(
		newTaskListCmd(opts),
		newTaskShowCmd(opts),
		newTaskToggleCmd(opts),
		newTaskStatusCmd(opts),
		newTaskRemindCmd(opts),
		newTaskRenameCmd(opts),
		newTaskRemoveCmd(opts),
	)
	return cmd
}

func newTaskListCmd(opts *rootOptions) *cobra.Command {
	var (
		status     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List planned tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			list := app.Tasks.List()
			if status != "" {
				want, err := models.ParseStatus(status)
				if err != nil {
					return err
				}
				filtered := list[:0]
				for _, t := range list {
					if t.Status == want {
						filtered = append(filtered, t)
					}
				}
				list = filtered
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			if len(list) == 0 {
				fmt.Fprintln(w, "No tasks found. Create one with: ally plan")
				return nil
			}
			for _, t := range list {
				done, total := t.SubTaskProgress()
				fmt.Fprintf(w, "%s  %-40s %-12s %s %d/%d\n",
					shortID(t.ID), tui.Truncate(t.TaskName, 40), t.Status.Label(),
					tui.ProgressBar(done, total, 10), done, total)
			}

			s := app.Tasks.Summary()
			fmt.Fprintf(w, "\n%d tasks: %d todo, %d in progress, %d completed (%d%% of sub-tasks done)\n",
				s.Total, s.Todo, s.InProgress, s.Completed, s.Percent())
			return nil
		}),
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status: todo|in_progress|completed")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
	return cmd
}

func newTaskShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the daily breakdown of a task",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			printTask(cmd.OutOrStdout(), task, time.Now())
			if day := tasks.CurrentDailyTask(task); day >= 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "\n👉 Up next: day %d\n", day+1)
			}
			return nil
		}),
	}
}

func newTaskToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id> <day> <sub>",
		Short:   "Toggle one sub-task between completed and todo",
		Example: "  ally task toggle 3f2a 1 2",
		Args:    cobra.ExactArgs(3),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			day, err := position(args[1], "day", len(task.DailyTasks))
			if err != nil {
				return err
			}
			sub, err := position(args[2], "sub-task", len(task.DailyTasks[day].SubTasks))
			if err != nil {
				return err
			}

			if err := app.Tasks.ToggleSubTaskStatus(task.ID, day, sub); err != nil {
				return err
			}
			updated, _ := app.Tasks.Get(task.ID)
			st := updated.DailyTasks[day].SubTasks[sub]
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tui.Checkbox(st.Status), st.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "Task is now %s\n", updated.Status.Label())
			if updated.Status == models.StatusCompleted && task.Status != models.StatusCompleted {
				app.Notifier.Notify(notify.Success("Task completed", updated.TaskName))
			}
			return nil
		}),
	}
}

func newTaskStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <todo|in_progress|completed>",
		Short: "Set the status of a whole task",
		Long: `Completing a task completes every sub-task. Moving a completed task back
resets every sub-task to todo.`,
		Args: cobra.ExactArgs(2),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			status, err := models.ParseStatus(args[1])
			if err != nil {
				return err
			}
			if err := app.Tasks.SetTaskStatus(task.ID, status); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Status updated", fmt.Sprintf("%s is now %s", task.TaskName, status.Label())))
			return nil
		}),
	}
}

func newTaskRemindCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remind <id>",
		Short: "Toggle the daily reminder flag",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.ToggleReminder(task.ID); err != nil {
				return err
			}
			if task.IsDailyReminderSet {
				app.Notifier.Notify(notify.Info("Reminder off", task.TaskName))
			} else {
				app.Notifier.Notify(notify.Info("Reminder on", task.TaskName))
			}
			return nil
		}),
	}
}

func newTaskRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if name == "" {
				return fmt.Errorf("task name cannot be empty")
			}
			task.TaskName = name
			if err := app.Tasks.Update(task); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Renamed %s to %q\n", shortID(task.ID), name)
			return nil
		}),
	}
}

func newTaskRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			task, err := resolveTask(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(task.ID); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Info("Task deleted", task.TaskName))
			return nil
		}),
	}
}

// position converts a 1-based argument into an index below n
func position(arg, what string, n int) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number %q", what, arg)
	}
	if v < 1 || v > n {
		return 0, fmt.Errorf("%s %d out of range (1-%d)", what, v, n)
	}
	return v - 1, nil
}
