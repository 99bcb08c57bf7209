package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/contentally/ally/internal/habits"
	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
	"github.com/contentally/ally/internal/parser"
	"github.com/contentally/ally/internal/tui"
)

func newHabitCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits"},
		Short:   "Track daily habits and streaks",
	}
	cmd.AddCommand(
		newHabitListCmd(opts),
		newHabitAddCmd(opts),
		newHabitDoneCmd(opts),
		newHabitEditCmd(opts),
		newHabitRemoveCmd(opts),
		newHabitResetCmd(opts),
		newHabitIconsCmd(),
	)
	return cmd
}

func newHabitListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List habits with today's progress",
		Args:    cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			list := app.Habits.List()
			w := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			if len(list) == 0 {
				fmt.Fprintln(w, `No habits yet. Add one with: ally habit add "Read goal:1 icon:BookOpen"`)
				return nil
			}
			for _, h := range list {
				printHabit(cmd, h)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
	return cmd
}

func printHabit(cmd *cobra.Command, h models.Habit) {
	mark := " "
	if h.GoalMet() {
		mark = "✓"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %-24s %s %d/%d  🔥 %d\n",
		mark, habits.Glyph(h.IconName), tui.Truncate(h.Name, 24),
		tui.ProgressBar(h.CompletedToday, h.Goal, 10), h.CompletedToday, h.Goal, h.Streak)
}

func newHabitAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> [goal:N] [icon:NAME]",
		Short: "Add a habit",
		Example: `  ally habit add "Drink water goal:8 icon:GlassWater"
  ally habit add Stretch`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			parsed := parser.ParseHabit(strings.Join(args, " "))
			if len(parsed.Errors) > 0 {
				return fmt.Errorf("invalid habit: %s", strings.Join(parsed.Errors, "; "))
			}
			if parsed.Icon != "" {
				if _, ok := habits.ResolveIcon(parsed.Icon); !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "Unknown icon %q, using %s\n", parsed.Icon, habits.FallbackIcon)
				}
			}

			h, err := app.Habits.Add(habits.HabitInput{Name: parsed.Name, IconName: parsed.Icon, Goal: parsed.Goal})
			if err != nil {
				return err
			}
			app.Notifier.Notify(notify.Success("Habit added", h.Name))
			printHabit(cmd, h)
			return nil
		}),
	}
}

func newHabitDoneCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id|name>",
		Short: "Record one unit of progress for today",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			h, err := resolveHabit(app, strings.Join(args, " "))
			if err != nil {
				return err
			}
			res, err := app.Habits.MarkDone(h.ID)
			if err != nil {
				return err
			}

			switch {
			case res.GoalMet:
				app.Notifier.Notify(notify.Success("Goal achieved!",
					fmt.Sprintf("%s done for today. Streak: %d", res.Habit.Name, res.Habit.Streak)))
			case !res.Progressed:
				app.Notifier.Notify(notify.Info("Already done today", res.Habit.Name))
			}
			printHabit(cmd, res.Habit)
			return nil
		}),
	}
}

func newHabitEditCmd(opts *rootOptions) *cobra.Command {
	var (
		name string
		goal int
		icon string
	)

	cmd := &cobra.Command{
		Use:   "edit <id|name>",
		Short: "Change a habit's name, goal or icon",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			h, err := resolveHabit(app, args[0])
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("name") {
				if strings.TrimSpace(name) == "" {
					return fmt.Errorf("habit name cannot be empty")
				}
				h.Name = strings.TrimSpace(name)
				changed = true
			}
			if cmd.Flags().Changed("goal") {
				if goal < 1 || goal > parser.MaxHabitGoal {
					return fmt.Errorf("goal must be between 1 and %d", parser.MaxHabitGoal)
				}
				h.Goal = goal
				changed = true
			}
			if cmd.Flags().Changed("icon") {
				h.IconName = icon
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to change (use --name, --goal or --icon)")
			}

			if err := app.Habits.Update(h); err != nil {
				return err
			}
			updated, _ := app.Habits.Get(h.ID)
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Habit updated")
			printHabit(cmd, updated)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().IntVar(&goal, "goal", 1, "New daily goal")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon name (see: ally habit icons)")
	return cmd
}

func newHabitRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id|name>",
		Aliases: []string{"delete"},
		Short:   "Delete a habit",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			h, err := resolveHabit(app, args[0])
			if err != nil {
				return err
			}
			if err := app.Habits.Delete(h.ID); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Info("Habit deleted", h.Name))
			return nil
		}),
	}
}

func newHabitResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Run the daily streak check now",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			if err := app.Habits.CheckAndResetStreaks(); err != nil {
				return err
			}
			for _, h := range app.Habits.List() {
				printHabit(cmd, h)
			}
			return nil
		}),
	}
}

func newHabitIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List the available habit icons",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range habits.IconNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", habits.Glyph(name), name)
			}
		},
	}
}
