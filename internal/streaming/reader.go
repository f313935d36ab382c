// Package streaming содержит компоненты для потокового чтения аудио по HTTP
package streaming

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultBufferSize размер буфера потокового ридера по умолчанию
	DefaultBufferSize = 256 * 1024
	// MaxBufferedSize максимальный размер ответа, загружаемого в память целиком
	MaxBufferedSize = 128 << 20
)

// Reader представляет буферизованный поток для чтения данных порциями
type Reader struct {
	reader *bufio.Reader
	resp   *http.Response
}

var client = &http.Client{
	// Общего таймаута нет: трек читается все время воспроизведения
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		IdleConnTimeout:       300 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// NewReader создает новый потоковый ридер
func NewReader(ctx context.Context, url string, bufferSize int) (*Reader, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Accept-Encoding", "identity") // Отключаем сжатие для потока
	req.Header.Set("Range", "bytes=0-")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("User-Agent", "go-hero/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		resp.Body.Close()
		return nil, fmt.Errorf("ошибка HTTP: %s", resp.Status)
	}

	return &Reader{
		reader: bufio.NewReaderSize(resp.Body, bufferSize),
		resp:   resp,
	}, nil
}

// Read реализует интерфейс io.Reader для потокового чтения
func (sr *Reader) Read(p []byte) (n int, err error) {
	return sr.reader.Read(p)
}

// Close закрывает соединение
func (sr *Reader) Close() error {
	return sr.resp.Body.Close()
}

// ContentLength размер ответа; -1, если сервер его не сообщил
func (sr *Reader) ContentLength() int64 {
	return sr.resp.ContentLength
}

// Buffer ответ, загруженный в память. Поддерживает Seek,
// поэтому декодер может определить длительность трека.
type Buffer struct {
	*bytes.Reader
}

// Close ничего не делает: соединение уже закрыто
func (Buffer) Close() error { return nil }

// Buffered загружает ответ в память, если его размер известен и не больше limit.
// Иначе возвращает сам потоковый ридер.
func (sr *Reader) Buffered(limit int64) (io.ReadCloser, error) {
	size := sr.ContentLength()
	if size < 0 || size > limit {
		return sr, nil
	}
	defer sr.Close()

	data := make([]byte, size)
	if _, err := io.ReadFull(sr.reader, data); err != nil {
		return nil, fmt.Errorf("ошибка загрузки ответа: %w", err)
	}
	return Buffer{bytes.NewReader(data)}, nil
}

// StreamStatus возвращает текстовое описание состояния потока
// по числу подряд идущих тиков без продвижения позиции
func StreamStatus(stuckCount int) string {
	switch {
	case stuckCount == 0:
		return "Потоковое воспроизведение"
	case stuckCount <= 3:
		return "Буферизация..."
	case stuckCount <= 5:
		return "Медленная загрузка"
	default:
		return "Возможная проблема с соединением"
	}
}
