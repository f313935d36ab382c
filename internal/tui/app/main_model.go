// Package app содержит основную логику TUI приложения
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-hero/internal/playback"
	"github.com/hazadus/go-hero/internal/tui/artists"
	tuiPlayer "github.com/hazadus/go-hero/internal/tui/player"
	"github.com/hazadus/go-hero/internal/tui/search"
	"github.com/hazadus/go-hero/internal/tui/tracklist"
)

const (
	defaultSeekStep   = 5.0
	defaultVolumeStep = 0.05
	defaultListWidth  = 50
	defaultListHeight = 12
)

// FocusArea определяет активную область экрана
type FocusArea int

// Области экрана в порядке переключения по Tab
const (
	// PlaylistFocus - плейлист избранных треков
	PlaylistFocus FocusArea = iota
	// ArtistsFocus - карусель исполнителей
	ArtistsFocus
	// SearchFocus - строка поиска
	SearchFocus

	focusCount
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginLeft(2)

	quitTextStyle = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// EventMsg событие ресурса воспроизведения
type EventMsg struct {
	Event playback.Event
}

// ResumeMsg результат запуска воспроизведения
type ResumeMsg struct {
	Result playback.ResumeResult
}

// Options параметры управления
type Options struct {
	SeekStep   float64 // Шаг перемотки, секунды
	VolumeStep float64 // Шаг громкости
}

// MainModel представляет главную модель TUI
type MainModel struct {
	controller *playback.Controller
	options    Options

	search    *search.Model
	player    *tuiPlayer.Model
	tracklist *tracklist.Model
	artists   *artists.Model

	focus    FocusArea
	done     chan struct{}
	closed   bool
	quitting bool
}

// NewMainModel создает новую главную модель
func NewMainModel(controller *playback.Controller, options Options) *MainModel {
	if options.SeekStep <= 0 {
		options.SeekStep = defaultSeekStep
	}
	if options.VolumeStep <= 0 {
		options.VolumeStep = defaultVolumeStep
	}

	m := &MainModel{
		controller: controller,
		options:    options,
		search:     search.NewModel(),
		player:     tuiPlayer.NewModel(),
		tracklist:  tracklist.NewModel(controller.Tracks()),
		artists:    artists.NewModel(controller.Tracks().ListArtists()),
		focus:      PlaylistFocus,
		done:       make(chan struct{}),
	}
	m.tracklist.SetFocused(true)
	// Размеры до первого WindowSizeMsg
	m.tracklist.SetSize(defaultListWidth, defaultListHeight)
	m.sync()
	return m
}

// Init создает ресурс для первого трека и начинает слушать события
func (m *MainModel) Init() tea.Cmd {
	m.controller.Mount()
	m.sync()
	return m.listenForEvents()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.search.SetWidth(msg.Width)
		m.player.SetWidth(msg.Width / 2)
		m.tracklist.SetSize(msg.Width/2, max(msg.Height-16, 5))
		m.artists.SetWidth(msg.Width)
		return m, nil

	case EventMsg:
		m.controller.HandleEvent(msg.Event)
		m.sync()
		return m, m.listenForEvents()

	case ResumeMsg:
		m.controller.HandleResume(msg.Result)
		m.sync()
		return m, nil

	case tracklist.TrackSelectedMsg:
		resume := m.controller.SelectTrack(msg.Index)
		m.sync()
		return m, resumeCmd(resume)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Остальные сообщения (мигание курсора и т.п.) получают все компоненты
	var searchCmd, tracklistCmd tea.Cmd
	m.search, searchCmd = m.search.Update(msg)
	m.tracklist, tracklistCmd = m.tracklist.Update(msg)
	return m, tea.Batch(searchCmd, tracklistCmd)
}

func (m *MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Глобальные горячие клавиши
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	// В строке поиска все остальные клавиши - ввод текста
	if m.focus == SearchFocus {
		if msg.String() == "esc" {
			return m, m.setFocus(PlaylistFocus)
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "/":
		return m, m.setFocus(SearchFocus)
	case " ":
		resume := m.controller.TogglePlayPause()
		m.sync()
		return m, resumeCmd(resume)
	case "n":
		m.controller.SelectNext()
		m.sync()
		return m, nil
	case "p":
		m.controller.SelectPrevious()
		m.sync()
		return m, nil
	case ",":
		m.seek(-m.options.SeekStep)
		return m, nil
	case ".":
		m.seek(m.options.SeekStep)
		return m, nil
	case "+", "=":
		m.controller.ChangeVolume(m.options.VolumeStep)
		m.sync()
		return m, nil
	case "-":
		m.controller.ChangeVolume(-m.options.VolumeStep)
		m.sync()
		return m, nil
	case "left", "right":
		// Стрелки листают карусель, когда она активна
		if m.focus != ArtistsFocus {
			if msg.String() == "left" {
				m.seek(-m.options.SeekStep)
			} else {
				m.seek(m.options.SeekStep)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case PlaylistFocus:
		m.tracklist, cmd = m.tracklist.Update(msg)
	case ArtistsFocus:
		m.artists, cmd = m.artists.Update(msg)
	}
	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	header := headerStyle.Render("♫ Hero")
	top := lipgloss.JoinHorizontal(lipgloss.Center, header, "   ", m.search.View())
	middle := lipgloss.JoinHorizontal(lipgloss.Top, m.player.View(), "  ", m.tracklist.View())
	help := helpStyle.Render("Tab: область • /: поиск • q: выход")

	return lipgloss.JoinVertical(lipgloss.Left, top, "", middle, "", m.artists.View(), help)
}

// Focus текущая активная область
func (m *MainModel) Focus() FocusArea {
	return m.focus
}

// Close освобождает ресурс воспроизведения. Повторный вызов безопасен.
func (m *MainModel) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.controller.Teardown()
	close(m.done)
}

func (m *MainModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

func (m *MainModel) seek(delta float64) {
	m.controller.SeekBy(delta)
	m.sync()
}

func (m *MainModel) setFocus(focus FocusArea) tea.Cmd {
	m.focus = focus
	m.tracklist.SetFocused(focus == PlaylistFocus)
	m.artists.SetFocused(focus == ArtistsFocus)
	if focus == SearchFocus {
		return m.search.Focus()
	}
	m.search.Blur()
	return nil
}

// sync передает состояние контроллера компонентам отображения
func (m *MainModel) sync() {
	state := m.controller.State()
	m.player.SetState(m.controller.Track(), state)
	m.tracklist.SetNowPlaying(state.CurrentIndex, state.IsPlaying)
}

// listenForEvents ждет следующее событие ресурса
func (m *MainModel) listenForEvents() tea.Cmd {
	events := m.controller.Events()
	done := m.done
	return func() tea.Msg {
		select {
		case event := <-events:
			return EventMsg{Event: event}
		case <-done:
			return nil
		}
	}
}

// resumeCmd выполняет запуск воспроизведения вне цикла событий
func resumeCmd(resume playback.ResumeFunc) tea.Cmd {
	if resume == nil {
		return nil
	}
	return func() tea.Msg {
		return ResumeMsg{Result: resume()}
	}
}
