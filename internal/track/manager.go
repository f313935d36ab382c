// Package track содержит логику навигации по каталогу треков
package track

import (
	"github.com/hazadus/go-hero/internal/data"
)

// Manager предоставляет доступ к каталогу и круговую навигацию по нему
type Manager struct {
	catalog *data.Catalog
}

// NewManager создает новый экземпляр Manager
func NewManager(catalog *data.Catalog) *Manager {
	return &Manager{
		catalog: catalog,
	}
}

// ListTracks возвращает список всех треков
func (m *Manager) ListTracks() []data.Track {
	return m.catalog.Tracks
}

// ListArtists возвращает список связанных исполнителей
func (m *Manager) ListArtists() []data.Artist {
	return m.catalog.Artists
}

// Count возвращает количество треков в каталоге
func (m *Manager) Count() int {
	return len(m.catalog.Tracks)
}

// Track возвращает трек по индексу. Индекс приводится по модулю размера каталога.
func (m *Manager) Track(index int) data.Track {
	return m.catalog.Tracks[m.wrap(index)]
}

// Index приводит произвольный индекс к диапазону [0, Count)
func (m *Manager) Index(index int) int {
	return m.wrap(index)
}

// NextIndex возвращает индекс следующего трека (по кругу)
func (m *Manager) NextIndex(index int) int {
	return m.wrap(index + 1)
}

// PreviousIndex возвращает индекс предыдущего трека (по кругу)
func (m *Manager) PreviousIndex(index int) int {
	return m.wrap(index - 1)
}

func (m *Manager) wrap(index int) int {
	n := m.Count()
	if n == 0 {
		return 0
	}
	return ((index % n) + n) % n
}
