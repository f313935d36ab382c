// Package search содержит строку поиска hero-секции.
// Запросы никуда не отправляются: поле только принимает ввод.
package search

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	exploreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("170")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	focusedInputStyle = inputStyle.
				BorderForeground(lipgloss.Color("170"))
)

// Model строка поиска с меткой Explore
type Model struct {
	input textinput.Model
}

// NewModel создает строку поиска
func NewModel() *Model {
	input := textinput.New()
	input.Placeholder = "Поиск исполнителей, треков, подкастов..."
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.Width = 40

	return &Model{input: input}
}

// Focus делает поле активным
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur снимает фокус с поля
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused активно ли поле
func (m *Model) Focused() bool {
	return m.input.Focused()
}

// Value введенный текст
func (m *Model) Value() string {
	return m.input.Value()
}

// SetWidth подгоняет ширину поля под окно
func (m *Model) SetWidth(width int) {
	m.input.Width = max(width-30, 10)
}

// Update передает ввод в поле. Enter ничего не делает.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View отображает строку поиска
func (m *Model) View() string {
	style := inputStyle
	if m.input.Focused() {
		style = focusedInputStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		style.Render(m.input.View()),
		"  ",
		exploreStyle.Render("Explore"),
	)
}
