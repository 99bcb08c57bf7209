package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentally/ally/internal/models"
	"github.com/contentally/ally/internal/notify"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Inspect the assistant conversation log",
	}
	cmd.AddCommand(newChatHistoryCmd(opts), newChatClearCmd(opts))
	return cmd
}

func newChatHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent messages, oldest first",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			msgs := app.Chat.Messages()
			if limit > 0 && len(msgs) > limit {
				msgs = msgs[len(msgs)-limit:]
			}

			w := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(msgs)
			}
			if len(msgs) == 0 {
				fmt.Fprintln(w, "No messages yet.")
				return nil
			}
			for _, m := range msgs {
				who := "you"
				if m.Role == models.RoleAssistant {
					who = "ally"
				}
				fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Local().Format("02/01 15:04"), who, m.Content)
			}
			return nil
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of messages to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "JSON output")
	return cmd
}

func newChatClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the conversation log",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(cmd *cobra.Command, args []string, app *App) error {
			if err := app.Chat.Clear(); err != nil {
				return err
			}
			app.Notifier.Notify(notify.Info("Chat cleared", ""))
			return nil
		}),
	}
}
