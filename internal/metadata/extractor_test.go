package metadata

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fileSource открывает локальные файлы, как media.Resolver без корня
type fileSource struct {
	opened []string
	err    error
}

func (s *fileSource) Open(_ context.Context, source string) (io.ReadCloser, error) {
	s.opened = append(s.opened, source)
	if s.err != nil {
		return nil, s.err
	}
	return os.Open(source)
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Ошибка создания тестового файла: %v", err)
	}
	return path
}

func TestProbeFallsBackToFileName(t *testing.T) {
	path := writeTempFile(t, "Artist - Title.mp3", []byte("fake content"))
	source := &fileSource{}

	metadata, err := NewExtractor(source).Probe(context.Background(), path)

	// Файл не является валидным MP3, но метаданные из имени файла должны быть
	if err == nil {
		t.Fatal("Ожидалась ошибка для некорректного MP3 файла")
	}
	if !strings.Contains(err.Error(), "ошибка декодирования MP3") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
	if metadata == nil {
		t.Fatal("Метаданные не должны быть nil при ошибке декодирования")
	}
	if metadata.Artist != "Artist" {
		t.Errorf("Ожидался Artist: Artist, получено: %s", metadata.Artist)
	}
	if metadata.Title != "Title" {
		t.Errorf("Ожидался Title: Title, получено: %s", metadata.Title)
	}
	if metadata.Size != int64(len("fake content")) {
		t.Errorf("Ожидался размер %d, получено: %d", len("fake content"), metadata.Size)
	}
	if metadata.Duration != 0 {
		t.Errorf("Ожидалась длительность 0, получено: %v", metadata.Duration)
	}
	if len(source.opened) != 1 || source.opened[0] != path {
		t.Errorf("Источник должен быть открыт один раз, открыто: %v", source.opened)
	}
}

func TestProbeOpenError(t *testing.T) {
	source := &fileSource{err: errors.New("нет доступа")}

	metadata, err := NewExtractor(source).Probe(context.Background(), "music/track.mp3")
	if err == nil {
		t.Fatal("Ожидалась ошибка открытия")
	}
	if metadata != nil {
		t.Error("Метаданные должны быть nil при ошибке открытия")
	}
}

func TestProbeNonExistentFile(t *testing.T) {
	_, err := NewExtractor(&fileSource{}).Probe(context.Background(), "/non/existent/file.mp3")
	if err == nil {
		t.Error("Ожидалась ошибка для несуществующего файла")
	}
}

func TestDefaultMetadata(t *testing.T) {
	tests := []struct {
		source string
		artist string
		title  string
	}{
		{"/path/to/Artist - Title.mp3", "Artist", "Title"},
		{"/path/to/SimpleTrack.mp3", "Unknown Artist", "SimpleTrack"},
		{"/path/to/Artist - Album - Title.mp3", "Artist", "Album - Title"},
		{"https://example.com/music/Grey - Coming Home.mp3", "Grey", "Coming Home"},
		{"s3://bucket/audio/track.mp3", "Unknown Artist", "track"},
	}

	for _, tt := range tests {
		metadata := defaultMetadata(tt.source)
		if metadata.Artist != tt.artist {
			t.Errorf("%s: ожидался Artist %q, получено %q", tt.source, tt.artist, metadata.Artist)
		}
		if metadata.Title != tt.title {
			t.Errorf("%s: ожидался Title %q, получено %q", tt.source, tt.title, metadata.Title)
		}
	}
}

func TestExtractFromReader(t *testing.T) {
	reader := bytes.NewReader([]byte("test content"))

	metadata := NewExtractor(&fileSource{}).ExtractFromReader(reader, "/tmp/Test - Song.mp3")

	if metadata.Artist != "Test" {
		t.Errorf("Ожидался Artist: Test, получено: %s", metadata.Artist)
	}
	if metadata.Title != "Song" {
		t.Errorf("Ожидался Title: Song, получено: %s", metadata.Title)
	}
}

func TestGetDuration(t *testing.T) {
	duration, err := GetDuration(bytes.NewReader([]byte("test content")))

	if err == nil {
		t.Fatal("Ожидалась ошибка для некорректного MP3 файла")
	}
	if !strings.Contains(err.Error(), "ошибка декодирования MP3") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
	if duration != 0 {
		t.Errorf("Ожидалась длительность 0 при ошибке, получено: %v", duration)
	}
}

func TestGetDurationValidMP3(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "valid.mp3"))
	if err != nil {
		t.Fatalf("Ошибка чтения тестового файла: %v", err)
	}

	duration, err := GetDuration(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if duration <= 0 {
		t.Errorf("Для валидного MP3 ожидалась положительная длительность, получено: %v", duration)
	}
}

func TestExtractValidMP3File(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("testdata", "valid.mp3"))
	if err != nil {
		t.Fatalf("Ошибка получения пути: %v", err)
	}

	metadata, err := NewExtractor(&fileSource{}).Probe(context.Background(), path)
	if err != nil {
		t.Fatalf("Неожиданная ошибка: %v", err)
	}
	if metadata.Duration <= 0 {
		t.Errorf("Ожидалась положительная длительность, получено: %v", metadata.Duration)
	}
	if metadata.Size != 4615 {
		t.Errorf("Ожидался размер 4615, получено: %d", metadata.Size)
	}
	if metadata.Title != "valid" {
		t.Errorf("Ожидался Title из имени файла: valid, получено: %s", metadata.Title)
	}
}
