// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-hero/internal/playback"
	"github.com/hazadus/go-hero/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	controller *playback.Controller
	options    app.Options
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(controller *playback.Controller, options app.Options) *App {
	return &App{
		controller: controller,
		options:    options,
	}
}

// Model создает главную модель для Bubble Tea
func (tuiApp *App) Model() *app.MainModel {
	return app.NewMainModel(tuiApp.controller, tuiApp.options)
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	model := tuiApp.Model()

	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()

	// Освобождаем ресурс воспроизведения после завершения программы
	model.Close()

	return err
}
