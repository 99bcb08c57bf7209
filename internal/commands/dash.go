package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentally/ally/internal/tui"
)

func newDashCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "dash",
		Aliases: []string{"dashboard"},
		Short:   "Interactive dashboard for tasks and habits",
		Args:    cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			if opts.noUI {
				s := app.Tasks.Summary()
				fmt.Fprintf(cmd.OutOrStdout(), "%d tasks, %d%% of sub-tasks done\n", s.Total, s.Percent())
				for _, h := range app.Habits.List() {
					printHabit(cmd, h)
				}
				return nil
			}
			return tui.RunDashboard(app.Tasks, app.Habits)
		}),
	}
}
