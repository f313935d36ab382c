package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hazadus/go-hero/internal/metadata"
	"github.com/hazadus/go-hero/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand(ctx context.Context) *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List featured songs",
		Long:  `Display the featured playlist. With --probe reads tags and duration of every audio file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.listTracks(ctx, cmd.OutOrStdout(), probe)
		},
	}

	cmd.Flags().BoolVar(&probe, "probe", false, "read tags and duration from audio files")

	return cmd
}

func (app *Application) listTracks(ctx context.Context, out io.Writer, probe bool) error {
	tracks := app.Catalog.Tracks
	if len(tracks) == 0 {
		fmt.Fprintln(out, "📚 Плейлист пуст.")
		return nil
	}

	fmt.Fprintf(out, "📚 Избранные треки: %d\n\n", len(tracks))

	if !probe {
		fmt.Fprintf(out, "%-4s %-4s %-30s %-25s %s\n", "#", "ID", "Название", "Исполнитель", "Аудио")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for i, t := range tracks {
			fmt.Fprintf(out, "%-4d %-4d %-30s %-25s %s\n",
				i+1, t.ID,
				utils.TruncateString(t.Title, 28),
				utils.TruncateString(t.Artist, 23),
				t.AudioPath)
		}
	} else {
		extractor := metadata.NewExtractor(app.Resolver)

		fmt.Fprintf(out, "%-4s %-30s %-25s %-25s %-12s %s\n", "#", "Название", "Исполнитель", "Теги", "Длительность", "Размер")
		fmt.Fprintln(out, strings.Repeat("-", 120))
		for i, t := range tracks {
			duration, size, tags := "N/A", "N/A", "-"

			info, err := extractor.Probe(ctx, t.AudioPath)
			if err != nil {
				app.Logger.Warn("не удалось прочитать аудиофайл",
					zap.String("audio", t.AudioPath), zap.Error(err))
			}
			if info != nil {
				size = formatFileSize(info.Size)
				tags = utils.TruncateString(strings.TrimSpace(info.Artist+" - "+info.Title), 23)
				if info.Duration > 0 {
					duration = utils.FormatTime(info.Duration.Seconds())
				}
			}

			fmt.Fprintf(out, "%-4d %-30s %-25s %-25s %-12s %s\n",
				i+1,
				utils.TruncateString(t.Title, 28),
				utils.TruncateString(t.Artist, 23),
				tags, duration, size)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "💡 Используйте 'hero play [#]' для воспроизведения трека")
	return nil
}

// formatFileSize форматирует размер файла
func formatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
