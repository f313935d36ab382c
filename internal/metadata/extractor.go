// Package metadata предоставляет функционал для извлечения метаданных из аудио файлов
package metadata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"
)

// maxProbeSize ограничивает объем данных, читаемых для пробы трека
const maxProbeSize = 64 << 20

// Source открывает аудиоданные по пути из каталога
type Source interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// TrackMetadata хранит метаданные трека
type TrackMetadata struct {
	Artist   string
	Title    string
	Album    string
	Duration time.Duration
	Size     int64
}

// Extractor извлекает метаданные из аудио файлов
type Extractor struct {
	source Source
}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor(source Source) *Extractor {
	return &Extractor{source: source}
}

// Probe читает теги и длительность трека
func (e *Extractor) Probe(ctx context.Context, source string) (*TrackMetadata, error) {
	rc, err := e.source.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, maxProbeSize))
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла: %w", err)
	}

	result := e.ExtractFromReader(bytes.NewReader(raw), source)
	result.Size = int64(len(raw))

	duration, err := GetDuration(bytes.NewReader(raw))
	if err != nil {
		return result, err
	}
	result.Duration = duration
	return result, nil
}

// ExtractFromReader извлекает теги из io.ReadSeeker.
// Если тегов нет, метаданные строятся по имени файла.
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, source string) *TrackMetadata {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return defaultMetadata(source)
	}

	metadata, err := tag.ReadFrom(reader)
	if err != nil {
		return defaultMetadata(source)
	}

	result := &TrackMetadata{
		Artist: metadata.Artist(),
		Title:  metadata.Title(),
		Album:  metadata.Album(),
	}
	if result.Title == "" {
		fallback := defaultMetadata(source)
		result.Title = fallback.Title
	}
	return result
}

// GetDuration получает длительность MP3 потока
func GetDuration(reader io.ReadSeeker) (time.Duration, error) {
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	// Длину декодер считает, только если источник поддерживает Seek
	streamer, format, err := mp3.Decode(nopSeekCloser{reader})
	if err != nil {
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	if streamer.Len() <= 0 {
		return 0, nil
	}
	return format.SampleRate.D(streamer.Len()), nil
}

// nopSeekCloser добавляет пустой Close, сохраняя Seek
type nopSeekCloser struct {
	io.ReadSeeker
}

func (nopSeekCloser) Close() error { return nil }

// defaultMetadata возвращает метаданные по умолчанию на основе имени файла
func defaultMetadata(source string) *TrackMetadata {
	fileName := path.Base(strings.ReplaceAll(source, "\\", "/"))
	nameWithoutExt := strings.TrimSuffix(fileName, path.Ext(fileName))

	// Пытаемся разобрать имя файла в формате "Artist - Title"
	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		return &TrackMetadata{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return &TrackMetadata{
		Artist: "Unknown Artist",
		Title:  nameWithoutExt,
	}
}
