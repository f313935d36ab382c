// Package data содержит каталог треков и исполнителей для hero-секции
package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Track описывает трек из каталога
type Track struct {
	ID        int    `yaml:"id"`
	Title     string `yaml:"title"`
	Artist    string `yaml:"artist"`
	CoverPath string `yaml:"cover"` // Путь к обложке
	AudioPath string `yaml:"audio"` // Путь к аудиофайлу относительно media_root, URL или s3://
}

// Artist описывает связанного исполнителя для карусели
type Artist struct {
	Name      string `yaml:"name"`
	ImagePath string `yaml:"image"`
}

// Catalog неизменяемый на время сессии набор треков и исполнителей.
// Порядок треков определяет порядок отображения и переключения.
type Catalog struct {
	Tracks  []Track  `yaml:"tracks"`
	Artists []Artist `yaml:"artists"`
}

// DefaultCatalog возвращает встроенный каталог
func DefaultCatalog() *Catalog {
	return &Catalog{
		Tracks: []Track{
			{ID: 1, Title: "Love YourSelf", Artist: "Justin Bieber", CoverPath: "/song_cover/LoveYourself.png", AudioPath: "/simple_mp3/loveUrSelf.mp3"},
			{ID: 2, Title: "Blinding Lights", Artist: "The Weeknd", CoverPath: "/covers/blinding-lights.jpg", AudioPath: "/audio/blinding-lights.mp3"},
			{ID: 3, Title: "Dance Monkey", Artist: "Tones and I", CoverPath: "/covers/dance-monkey.jpg", AudioPath: "/audio/dance-monkey.mp3"},
			{ID: 4, Title: "Watermelon Sugar", Artist: "Harry Styles", CoverPath: "/covers/watermelon-sugar.jpg", AudioPath: "/audio/watermelon-sugar.mp3"},
			{ID: 5, Title: "Don't Start Now", Artist: "Dua Lipa", CoverPath: "/covers/dont-start-now.jpg", AudioPath: "/audio/dont-start-now.mp3"},
		},
		Artists: []Artist{
			{Name: "Ed Sheeran", ImagePath: "/artists/ed-sheeran.jpg"},
			{Name: "Ariana Grande", ImagePath: "/artists/ariana-grande.jpg"},
			{Name: "Shawn Mendes", ImagePath: "/artists/shawn-mendes.jpg"},
			{Name: "Billie Eilish", ImagePath: "/artists/billie-eilish.jpg"},
			{Name: "Taylor Swift", ImagePath: "/artists/taylor-swift.jpg"},
			{Name: "Post Malone", ImagePath: "/artists/post-malone.jpg"},
			{Name: "Drake", ImagePath: "/artists/drake.jpg"},
			{Name: "The Weeknd", ImagePath: "/artists/the-weeknd.jpg"},
			{Name: "Lady Gaga", ImagePath: "/artists/lady-gaga.jpg"},
		},
	}
}

// LoadCatalog загружает каталог из YAML файла.
// Пустой путь, отсутствующий или пустой файл дают встроенный каталог.
func LoadCatalog(filePath string) (*Catalog, error) {
	if filePath == "" {
		return DefaultCatalog(), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCatalog(), nil
		}
		return nil, fmt.Errorf("ошибка чтения файла каталога: %w", err)
	}
	if len(raw) == 0 {
		return DefaultCatalog(), nil
	}

	catalog := &Catalog{}
	if err := yaml.Unmarshal(raw, catalog); err != nil {
		return nil, fmt.Errorf("ошибка разбора каталога: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Validate проверяет, что каталог пригоден для плеера
func (c *Catalog) Validate() error {
	if len(c.Tracks) == 0 {
		return fmt.Errorf("каталог не содержит треков")
	}

	ids := make(map[int]struct{}, len(c.Tracks))
	for _, t := range c.Tracks {
		if _, ok := ids[t.ID]; ok {
			return fmt.Errorf("повторяющийся ID трека: %d", t.ID)
		}
		ids[t.ID] = struct{}{}
	}

	names := make(map[string]struct{}, len(c.Artists))
	for _, a := range c.Artists {
		if _, ok := names[a.Name]; ok {
			return fmt.Errorf("повторяющийся исполнитель: %s", a.Name)
		}
		names[a.Name] = struct{}{}
	}
	return nil
}
