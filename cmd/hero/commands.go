package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами.
// Без подкоманды запускается TUI.
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "hero",
		Short: "Terminal hero section of a music site",
		Long:  `Featured songs player, playlist and related artists in your terminal.`,
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.Init(configPath)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the config file")

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createTUICommand())
	rootCmd.AddCommand(app.createListCommand(ctx))
	rootCmd.AddCommand(app.createArtistsCommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))

	return rootCmd
}
