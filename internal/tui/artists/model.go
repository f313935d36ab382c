// Package artists содержит карусель похожих исполнителей
package artists

import (
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-hero/internal/data"
	"github.com/hazadus/go-hero/internal/utils"
)

const (
	cardWidth  = 18
	minVisible = 2
	maxVisible = 5
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			MarginLeft(2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Width(cardWidth-2).
			Align(lipgloss.Center)

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	arrowStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 1)

	disabledArrowStyle = arrowStyle.
				Foreground(lipgloss.Color("#444444"))

	focusedTitleStyle = titleStyle.
				Foreground(lipgloss.Color("170"))
)

// Model карусель исполнителей. Показывает окно из нескольких карточек,
// листается по одной и не прокручивается за края.
type Model struct {
	artists []data.Artist
	offset  int
	visible int
	focused bool
}

// NewModel создает карусель
func NewModel(artists []data.Artist) *Model {
	return &Model{
		artists: artists,
		visible: maxVisible,
	}
}

// SetWidth пересчитывает число видимых карточек
func (m *Model) SetWidth(width int) {
	m.visible = utils.ClampInt((width-8)/cardWidth, minVisible, maxVisible)
	m.offset = m.clampOffset(m.offset)
}

// SetFocused отмечает карусель активной
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// Offset индекс первой видимой карточки
func (m *Model) Offset() int {
	return m.offset
}

// CanScrollPrev есть ли карточки левее окна
func (m *Model) CanScrollPrev() bool {
	return m.offset > 0
}

// CanScrollNext есть ли карточки правее окна
func (m *Model) CanScrollNext() bool {
	return m.offset+m.visible < len(m.artists)
}

// ScrollPrev сдвигает окно влево на одну карточку
func (m *Model) ScrollPrev() {
	m.offset = m.clampOffset(m.offset - 1)
}

// ScrollNext сдвигает окно вправо на одну карточку
func (m *Model) ScrollNext() {
	m.offset = m.clampOffset(m.offset + 1)
}

// Visible исполнители в текущем окне
func (m *Model) Visible() []data.Artist {
	end := min(m.offset+m.visible, len(m.artists))
	return m.artists[m.offset:end]
}

func (m *Model) clampOffset(offset int) int {
	return utils.ClampInt(offset, 0, max(len(m.artists)-m.visible, 0))
}

// Update листает карусель стрелками
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "h":
			m.ScrollPrev()
		case "right", "l":
			m.ScrollNext()
		}
	}
	return m, nil
}

// View отображает карусель
func (m *Model) View() string {
	title := titleStyle.Render("Похожие исполнители")
	if m.focused {
		title = focusedTitleStyle.Render("Похожие исполнители")
	}

	if len(m.artists) == 0 {
		return title
	}

	cards := make([]string, 0, m.visible+2)
	cards = append(cards, m.arrow("‹", m.CanScrollPrev()))
	for _, artist := range m.Visible() {
		cards = append(cards, renderCard(artist))
	}
	cards = append(cards, m.arrow("›", m.CanScrollNext()))

	return title + "\n" + lipgloss.JoinHorizontal(lipgloss.Center, cards...)
}

func (m *Model) arrow(symbol string, enabled bool) string {
	if enabled {
		return arrowStyle.Render(symbol)
	}
	return disabledArrowStyle.Render(symbol)
}

func renderCard(artist data.Artist) string {
	var image string
	if artist.ImagePath != "" {
		image = strings.TrimSuffix(filepath.Base(artist.ImagePath), filepath.Ext(artist.ImagePath))
	}
	return cardStyle.Render(
		utils.TruncateString(artist.Name, cardWidth-4) + "\n" +
			imageStyle.Render(utils.TruncateString(image, cardWidth-4)),
	)
}
