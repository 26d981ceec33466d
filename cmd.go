package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func SetupCommands(cfg *Config) *cobra.Command {
	var app *App
	var store Store

	// open the configured store once flags have been parsed
	setup := func(cmd *cobra.Command, args []string) error {
		s, err := cfg.OpenStore()
		if err != nil {
			return err
		}
		store = s
		app = NewApp(store, os.Stdin, cmd.OutOrStdout(), cfg.Plain)
		return nil
	}
	teardown := func(cmd *cobra.Command, args []string) error {
		if store == nil {
			return nil
		}
		return store.Close()
	}

	// child names for shell completion
	completeChildren := func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := cfg.OpenStore()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer s.Close()

		children, err := NewProfileController(s).List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var names []string
		for _, c := range children {
			if strings.HasPrefix(c.Name, toComplete) {
				names = append(names, c.Name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}

	// root command runs the interactive menu
	rootCmd := &cobra.Command{
		Use:                "babytick",
		Short:              "Track a baby's growth, milestones and daily care",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding the baby documents")
	rootCmd.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: file or sqlite")
	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path (default <data-dir>/babytick.db)")
	rootCmd.PersistentFlags().BoolVar(&cfg.Plain, "plain", cfg.Plain, "use numbered menus instead of arrow-key selection")

	// command for listing all babies
	babiesCmd := &cobra.Command{
		Use:   "babies",
		Short: "List all babies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ListBabies()
		},
	}

	// command for milestone suggestions at the baby's current age
	suggestCmd := &cobra.Command{
		Use:               "suggest [name]",
		Short:             "Suggest milestones to watch for",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeChildren,
		RunE: func(cmd *cobra.Command, args []string) error {
			child, err := app.profiles.FindByName(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			return app.Suggest(child.ID)
		},
	}

	// command for printing a baby's report
	var reportDate string
	reportCmd := &cobra.Command{
		Use:               "report [name]",
		Short:             "Print growth, milestones and a daily summary",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeChildren,
		RunE: func(cmd *cobra.Command, args []string) error {
			child, err := app.profiles.FindByName(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			date := app.today()
			if reportDate != "" {
				if date, err = ParseDate(reportDate); err != nil {
					return err
				}
			}
			return app.Report(child.ID, date)
		},
	}
	reportCmd.Flags().StringVar(&reportDate, "date", "", "summary date as YYYY-MM-DD (default today)")

	// add commands
	rootCmd.AddCommand(babiesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(reportCmd)

	return rootCmd
}

func Execute(ctx context.Context, cfg *Config) error {
	return SetupCommands(cfg).ExecuteContext(ctx)
}
