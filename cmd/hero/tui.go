package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-hero/internal/tui"
	tuiApp "github.com/hazadus/go-hero/internal/tui/app"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch the interactive hero section: search bar, player, featured playlist and related artists.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.launchTUI()
		},
	}
}

func (app *Application) launchTUI() error {
	hero := tui.NewApp(app.newController(), tuiApp.Options{
		SeekStep:   app.Config.SeekStep,
		VolumeStep: app.Config.VolumeStep,
	})

	if err := hero.Run(); err != nil {
		return fmt.Errorf("ошибка работы TUI: %w", err)
	}
	return nil
}
