package streaming

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewReader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Range") != "bytes=0-" {
			t.Errorf("Ожидался заголовок Range: bytes=0-, получено: %s", r.Header.Get("Range"))
		}
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("audio bytes"))
	}))
	defer server.Close()

	reader, err := NewReader(context.Background(), server.URL+"/track.mp3", 0)
	if err != nil {
		t.Fatalf("Ошибка создания ридера: %v", err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Ошибка чтения: %v", err)
	}
	if string(content) != "audio bytes" {
		t.Errorf("Ожидалось содержимое: audio bytes, получено: %s", content)
	}
}

func TestNewReaderHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := NewReader(context.Background(), server.URL+"/missing.mp3", 1024)
	if err == nil {
		t.Fatal("Ожидалась ошибка для ответа 404")
	}
	if !strings.Contains(err.Error(), "ошибка HTTP") {
		t.Errorf("Неожиданное сообщение об ошибке: %v", err)
	}
}

func TestStreamStatus(t *testing.T) {
	tests := []struct {
		stuck    int
		expected string
	}{
		{0, "Потоковое воспроизведение"},
		{2, "Буферизация..."},
		{5, "Медленная загрузка"},
		{9, "Возможная проблема с соединением"},
	}

	for _, test := range tests {
		if got := StreamStatus(test.stuck); got != test.expected {
			t.Errorf("StreamStatus(%d) = %s; expected %s", test.stuck, got, test.expected)
		}
	}
}

func TestBufferedKnownLength(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer server.Close()

	reader, err := NewReader(context.Background(), server.URL, DefaultBufferSize)
	if err != nil {
		t.Fatalf("Ошибка создания ридера: %v", err)
	}
	if reader.ContentLength() != 10 {
		t.Errorf("Ожидался размер 10, получено %d", reader.ContentLength())
	}

	rc, err := reader.Buffered(MaxBufferedSize)
	if err != nil {
		t.Fatalf("Ошибка загрузки ответа: %v", err)
	}
	defer rc.Close()

	seeker, ok := rc.(io.ReadSeeker)
	if !ok {
		t.Fatalf("Ожидался ридер с поддержкой Seek, получен %T", rc)
	}
	if _, err := seeker.Seek(6, io.SeekStart); err != nil {
		t.Fatalf("Ошибка Seek: %v", err)
	}
	rest, _ := io.ReadAll(seeker)
	if string(rest) != "6789" {
		t.Errorf("Ожидалось 6789, получено %s", rest)
	}
}

func TestBufferedOverLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	reader, err := NewReader(context.Background(), server.URL, DefaultBufferSize)
	if err != nil {
		t.Fatalf("Ошибка создания ридера: %v", err)
	}

	rc, err := reader.Buffered(16)
	if err != nil {
		t.Fatalf("Ошибка загрузки ответа: %v", err)
	}
	defer rc.Close()

	if rc != io.ReadCloser(reader) {
		t.Errorf("Ответ больше лимита должен читаться потоком, получен %T", rc)
	}
}
