// Package s3 предоставляет чтение аудиофайлов из S3-совместимого хранилища
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

// downloaderAPI подмножество s3manager.Downloader, нужное для чтения объектов
type downloaderAPI interface {
	DownloadWithContext(ctx aws.Context, w io.WriterAt, input *s3.GetObjectInput, options ...func(*s3manager.Downloader)) (int64, error)
}

// Client загружает объекты S3 целиком в память
type Client struct {
	downloader downloaderAPI
	config     *Config
}

// Object содержимое объекта в памяти. Поддерживает Seek, поэтому
// декодер может определить длительность трека.
type Object struct {
	*bytes.Reader
}

// Close ничего не делает: данные уже в памяти
func (Object) Close() error { return nil }

// NewClient создает новый S3 клиент
func NewClient(config *Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		)
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return &Client{
		downloader: s3manager.NewDownloader(sess),
		config:     config,
	}, nil
}

// Open загружает объект и возвращает его для чтения.
// Пустой bucket означает бакет из конфигурации.
func (c *Client) Open(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if bucket == "" {
		bucket = c.config.BucketName
	}
	if bucket == "" {
		return nil, fmt.Errorf("не указан бакет для ключа %s", key)
	}

	buffer := aws.NewWriteAtBuffer(nil)
	n, err := c.downloader.DownloadWithContext(ctx, buffer, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(strings.TrimPrefix(key, "/")),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка получения объекта из S3: %w", err)
	}

	return Object{bytes.NewReader(buffer.Bytes()[:n])}, nil
}

// ParseURL разбирает адрес вида s3://bucket/key
func ParseURL(raw string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(raw, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", false
	}
	return bucket, key, true
}
