// Package player содержит панель "сейчас играет" для TUI
package player

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-hero/internal/data"
	"github.com/hazadus/go-hero/internal/playback"
	"github.com/hazadus/go-hero/internal/utils"
)

const (
	defaultSeekWidth   = 40
	defaultVolumeWidth = 12
	maxSeekWidth       = 60
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff"))

	trackInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 2)
)

// Model панель воспроизведения. Только отображает состояние,
// управление выполняет playback.Controller.
type Model struct {
	track     data.Track
	state     playback.State
	seekBar   progress.Model
	volumeBar progress.Model
	width     int
}

// NewModel создает панель воспроизведения
func NewModel() *Model {
	seekBar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	seekBar.Width = defaultSeekWidth

	volumeBar := progress.New(progress.WithSolidFill("#888888"), progress.WithoutPercentage())
	volumeBar.Width = defaultVolumeWidth

	return &Model{
		seekBar:   seekBar,
		volumeBar: volumeBar,
	}
}

// SetState обновляет отображаемые трек и состояние
func (m *Model) SetState(track data.Track, state playback.State) {
	m.track = track
	m.state = state
}

// SetWidth подгоняет ширину полосы перемотки под окно
func (m *Model) SetWidth(width int) {
	m.width = width
	m.seekBar.Width = utils.ClampInt(width-10, 10, maxSeekWidth)
}

// Progress доля прослушанного трека, 0 пока длительность неизвестна
func (m *Model) Progress() float64 {
	if m.state.Duration <= 0 {
		return 0
	}
	return utils.Clamp(m.state.CurrentTime/m.state.Duration, 0, 1)
}

// View отображает панель
func (m *Model) View() string {
	title := titleStyle.Render("🎵 " + m.track.Title)

	trackInfo := trackInfoStyle.Render(fmt.Sprintf(
		"🎤 %s\n🖼  %s",
		m.track.Artist,
		filepath.Base(m.track.CoverPath),
	))

	status := statusStyle.Render(fmt.Sprintf("%s %s", statusIcon(m.state.IsPlaying), formatStatus(m.state.IsPlaying)))

	timeText := fmt.Sprintf(
		"%s / %s",
		utils.FormatTime(m.state.CurrentTime),
		m.state.DurationText(),
	)

	// Кнопки переключения треков всегда доступны: список зациклен
	buttons := fmt.Sprintf("⏮  %s  ⏭", buttonIcon(m.state.IsPlaying))

	volume := fmt.Sprintf("%s %s %3d%%",
		volumeIcon(m.state.Volume),
		m.volumeBar.ViewAs(m.state.Volume),
		int(m.state.Volume*100+0.5))

	controls := controlsStyle.Render("Пробел: пауза • n/p: трек • ←/→: перемотка • +/-: громкость")

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		trackInfo,
		status,
		m.seekBar.ViewAs(m.Progress()),
		timeText,
		"",
		buttons+"    "+volume,
		controls,
	)

	return panelStyle.Render(body)
}

func statusIcon(isPlaying bool) string {
	if isPlaying {
		return "▶️"
	}
	return "⏸️"
}

// buttonIcon показывает действие кнопки, а не текущее состояние
func buttonIcon(isPlaying bool) string {
	if isPlaying {
		return "⏸"
	}
	return "▶"
}

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}

func volumeIcon(volume float64) string {
	switch {
	case volume <= 0:
		return "🔇"
	case volume < 0.5:
		return "🔉"
	default:
		return "🔊"
	}
}
