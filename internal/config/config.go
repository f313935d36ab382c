// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	MediaRoot    string        `yaml:"media_root"`    // Каталог или URL, относительно которого ищутся аудиофайлы
	CatalogFile  string        `yaml:"catalog_file"`  // YAML файл с каталогом вместо встроенного
	Volume       float64       `yaml:"volume"`        // Начальная громкость 0..1
	SeekStep     float64       `yaml:"seek_step"`     // Шаг перемотки в секундах
	VolumeStep   float64       `yaml:"volume_step"`   // Шаг изменения громкости
	TickInterval time.Duration `yaml:"tick_interval"` // Период обновления позиции
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`

	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		MediaRoot:    "~/Music/hero",
		Volume:       1,
		SeekStep:     5,
		VolumeStep:   0.05,
		TickInterval: 250 * time.Millisecond,
		LogLevel:     "info",
		LogFile:      "~/.hero/hero.log",
	}
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файл отсутствует, возвращается конфигурация по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	defaults := Default()
	if config.Volume < 0 || config.Volume > 1 {
		config.Volume = defaults.Volume
	}
	if config.SeekStep <= 0 {
		config.SeekStep = defaults.SeekStep
	}
	if config.VolumeStep <= 0 || config.VolumeStep > 1 {
		config.VolumeStep = defaults.VolumeStep
	}
	if config.TickInterval <= 0 {
		config.TickInterval = defaults.TickInterval
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.LogFile == "" {
		config.LogFile = defaults.LogFile
	}

	// Раскрываем тильду в путях
	config.LogFile = strings.Replace(config.LogFile, "~", home, 1)
	config.CatalogFile = strings.Replace(config.CatalogFile, "~", home, 1)
	if !strings.Contains(config.MediaRoot, "://") {
		config.MediaRoot = strings.Replace(config.MediaRoot, "~", home, 1)
	}

	return config, nil
}
