package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/contentally/ally/internal/config"
)

func loadConfig(opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(opts), newConfigInitCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cfg.LLM.APIKey != "" {
				cfg.LLM.APIKey = "********"
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var (
		apiKey string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			cfg.LLM.APIKey = apiKey
			if err := cfg.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key to store")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
