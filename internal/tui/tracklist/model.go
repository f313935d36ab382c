// Package tracklist содержит плейлист избранных треков для TUI
package tracklist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-hero/internal/data"
	"github.com/hazadus/go-hero/internal/track"
	"github.com/hazadus/go-hero/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Padding(0, 1)
	focusedTitleStyle = titleStyle.
				Foreground(lipgloss.Color("#FFFDF5")).
				Background(lipgloss.Color("170"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	currentItemStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1db954"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

// TrackSelectedMsg отправляется при выборе трека для воспроизведения
type TrackSelectedMsg struct {
	Index int
}

// trackItem реализует интерфейс list.Item для трека
type trackItem struct {
	index int
	track data.Track
}

func (i trackItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.track.Artist, i.track.Title)
}

// nowPlaying общий для модели и делегата указатель на текущий трек
type nowPlaying struct {
	index   int
	playing bool
}

// trackItemDelegate реализует отображение элементов списка
type trackItemDelegate struct {
	current *nowPlaying
}

func (d trackItemDelegate) Height() int                             { return 1 }
func (d trackItemDelegate) Spacing() int                            { return 0 }
func (d trackItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d trackItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(trackItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%s %-20s %s",
		d.icon(i.index),
		utils.TruncateString(i.track.Title, 20),
		utils.TruncateString(i.track.Artist, 20))

	if i.index == d.current.index {
		str = currentItemStyle.Render(str)
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// icon значок паузы только у текущего играющего трека
func (d trackItemDelegate) icon(index int) string {
	if index == d.current.index && d.current.playing {
		return "⏸"
	}
	return "▶"
}

// Model плейлист избранных треков
type Model struct {
	list    list.Model
	current *nowPlaying
	focused bool
}

// NewModel создает плейлист по каталогу
func NewModel(tracks *track.Manager) *Model {
	items := make([]list.Item, 0, tracks.Count())
	for i, t := range tracks.ListTracks() {
		items = append(items, trackItem{index: i, track: t})
	}

	current := &nowPlaying{}

	l := list.New(items, trackItemDelegate{current: current}, 0, 0)
	l.Title = "Избранные треки"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetShowHelp(false)
	// Поиск в hero-секции декоративный, фильтрация плейлиста не нужна
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// Стрелки влево/вправо заняты перемоткой
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("pgdown"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("pgup"))
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{
		list:    l,
		current: current,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// SetNowPlaying отмечает текущий трек и его состояние
func (m *Model) SetNowPlaying(index int, playing bool) {
	m.current.index = index
	m.current.playing = playing
}

// SetFocused выделяет заголовок плейлиста, когда он принимает клавиши
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
	if focused {
		m.list.Styles.Title = focusedTitleStyle
	} else {
		m.list.Styles.Title = titleStyle
	}
}

// Focused сообщает, активен ли плейлист
func (m *Model) Focused() bool {
	return m.focused
}

// SetSize задает размеры списка
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Cursor индекс трека под курсором
func (m *Model) Cursor() int {
	return m.list.Index()
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if item, ok := m.list.SelectedItem().(trackItem); ok {
			index := item.index
			return m, func() tea.Msg {
				return TrackSelectedMsg{Index: index}
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	return m.list.View() + "\n" + helpStyle.Render("↑/↓: выбор • Enter: воспроизвести")
}
