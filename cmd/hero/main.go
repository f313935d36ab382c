package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hazadus/go-hero/internal/config"
	"github.com/hazadus/go-hero/internal/data"
	"github.com/hazadus/go-hero/internal/logger"
	"github.com/hazadus/go-hero/internal/media"
	"github.com/hazadus/go-hero/internal/playback"
	"github.com/hazadus/go-hero/internal/player"
	"github.com/hazadus/go-hero/internal/s3"
	"github.com/hazadus/go-hero/internal/track"
)

const (
	defaultConfigPath = "~/.hero.yaml"
)

// Application содержит общие зависимости команд
type Application struct {
	Config   *config.Config
	Catalog  *data.Catalog
	Logger   *zap.Logger
	Resolver *media.Resolver
	Opener   player.Opener // Если nil, используется player.Engine
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	app := &Application{}
	rootCmd := app.createRootCommand(ctx)

	err := rootCmd.Execute()
	app.Close()
	if err != nil {
		os.Exit(1)
	}
}

// Init загружает конфигурацию, каталог и настраивает журнал
func (app *Application) Init(configPath string) error {
	var err error

	if app.Config == nil {
		if app.Config, err = config.LoadConfig(configPath); err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}
	}

	if app.Logger == nil {
		app.Logger, err = logger.New(logger.Config{
			Level:      app.Config.LogLevel,
			OutputPath: app.Config.LogFile,
		})
		if err != nil {
			return fmt.Errorf("ошибка настройки журнала: %w", err)
		}
	}

	if app.Catalog == nil {
		if app.Catalog, err = data.LoadCatalog(app.Config.CatalogFile); err != nil {
			return fmt.Errorf("ошибка загрузки каталога: %w", err)
		}
	}

	if app.Resolver == nil {
		var objects media.ObjectOpener
		if app.Config.AwsBucketName != "" || media.IsS3(app.Config.MediaRoot) {
			client, err := s3.NewClient(&s3.Config{
				Region:     app.Config.AwsRegion,
				AccessKey:  app.Config.AwsAccessKey,
				SecretKey:  app.Config.AwsSecretKey,
				Endpoint:   app.Config.AwsEndpoint,
				BucketName: app.Config.AwsBucketName,
			})
			if err != nil {
				return err
			}
			objects = client
		}
		app.Resolver = media.NewResolver(app.Config.MediaRoot, objects)
	}

	app.Logger.Debug("приложение инициализировано",
		zap.Int("tracks", len(app.Catalog.Tracks)),
		zap.Int("artists", len(app.Catalog.Artists)),
		zap.String("media_root", app.Config.MediaRoot))

	return nil
}

// Close сбрасывает буферы журнала
func (app *Application) Close() {
	if app.Logger != nil {
		_ = app.Logger.Sync()
	}
}

// newController создает контроллер воспроизведения по каталогу
func (app *Application) newController() *playback.Controller {
	opener := app.Opener
	if opener == nil {
		opener = player.NewEngine(app.Resolver, app.Logger, app.Config.TickInterval)
	}
	return playback.NewController(track.NewManager(app.Catalog), opener, app.Logger, app.Config.Volume)
}
