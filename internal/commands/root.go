package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/contentally/ally/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type rootOptions struct {
	configPath string
	dbPath     string
	verbose    bool
	noUI       bool

	logger  *zap.Logger
	factory AppFactory
}

// reportedError is an error the user has already seen as a toast
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// NewRootCmd builds the command tree. A nil factory opens the configured
// SQLite database.
func NewRootCmd(factory AppFactory) *cobra.Command {
	if factory == nil {
		factory = defaultApp
	}
	opts := &rootOptions{factory: factory}

	rootCmd := &cobra.Command{
		Use:   "ally",
		Short: "AI planner, habit tracker and writing assistant",
		Long: `ally turns a goal and a deadline into a day-by-day plan, tracks daily habits
with streaks, and runs AI writing helpers from the terminal.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}
			verbose := opts.verbose
			if cfg, err := loadConfig(opts); err == nil && cfg.Log.Verbose {
				verbose = true
			}
			logger, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default ~/.ally/config.yaml)")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging to stderr")
	flags.BoolVar(&opts.noUI, "no-ui", false, "Skip interactive TUI")

	rootCmd.AddCommand(
		newPlanCmd(opts),
		newTaskCmd(opts),
		newHabitCmd(opts),
		newDashCmd(opts),
		newSummarizeCmd(opts),
		newImproveCmd(opts),
		newTranslateCmd(opts),
		newOCRCmd(opts),
		newAskCmd(opts),
		newResearchCmd(opts),
		newWriteCmd(opts),
		newChatCmd(opts),
		newConfigCmd(opts),
		newGuideCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// withApp wraps a command function to open the store and engines first
func withApp(opts *rootOptions, fn func(*cobra.Command, []string, *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if opts.logger == nil {
			opts.logger = zap.NewNop()
		}
		app, err := opts.factory(opts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				opts.logger.Warn("failed to close store", zap.Error(err))
			}
		}()
		return fn(cmd, args, app)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ally %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return execute(NewRootCmd(nil), os.Stderr)
}

func execute(rootCmd *cobra.Command, stderr io.Writer) error {
	err := rootCmd.Execute()
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}
