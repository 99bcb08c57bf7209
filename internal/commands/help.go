package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide",
		Short: "Show a walkthrough of every ally command",
		Long:  `Display detailed help for all ally commands and flags.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			showGuide(cmd.OutOrStdout())
		},
	}
}

func showGuide(w io.Writer) {
	fmt.Fprint(w, `
 █████╗ ██╗     ██╗  ██╗   ██╗
██╔══██╗██║     ██║  ╚██╗ ██╔╝
███████║██║     ██║   ╚████╔╝
██╔══██║██║     ██║    ╚██╔╝
██║  ██║███████╗███████╗██║
╚═╝  ╚═╝╚══════╝╚══════╝╚═╝

ally - AI planner, habit tracker and writing assistant

PLANNING:

  plan [description]       Break a goal into a day-by-day plan
    --deadline             Deadline (yyyy-mm-dd, dd/mm/yyyy, tomorrow, 3 days)
    --no-ui                Skip the interactive wizard

    Example:
      ally plan "Write my thesis intro" --deadline "in 2 weeks"

  task ls                  List planned tasks with progress
  task show <id>           Show the daily breakdown of a task
  task toggle <id> <day> <sub>
                           Toggle one subtask (1-based day and subtask)
  task status <id> <status>
                           Set todo|in_progress|completed for the whole task
  task remind <id>         Toggle the reminder flag
  task rename <id> <name>  Rename a task
  task rm <id>             Delete a task

HABITS:

  habit ls                 List habits with streaks and today's progress
  habit add <text>         Add a habit, e.g. "Drink water goal:8 icon:GlassWater"
  habit done <id>          Record one unit of progress for today
  habit edit <id>          --name, --goal, --icon
  habit rm <id>            Delete a habit
  habit reset              Re-run the daily streak check

AI HELPERS (read FILE or stdin):

  summarize [file]         One-paragraph summary
  improve [file]           Rewrite for clarity with an explanation
  translate [file]         --to LANG, --from LANG (default auto-detect)
  ocr <image>              Extract text from an image file
  ask <question>           --doc FILE, answer from the document only
  research <topic>         --focus, --sources FILE
  write <prompt>           --type, --tone, --max, --instructions

OTHER:

  dash                     Interactive dashboard for tasks and habits
  chat history             Show the assistant conversation log
  chat clear               Clear the conversation log
  version                  Print version information

Ids may be shortened to any unique prefix.
Use --no-ui with any command for CLI-only mode.

`)
}
