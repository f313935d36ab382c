package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-hero/internal/playback"
	"github.com/hazadus/go-hero/internal/utils"
)

// Клавиши консольного плеера. Стрелки переводятся в seekBack/seekForward.
const (
	keyToggle      = ' '
	keyNext        = 'n'
	keyPrevious    = 'p'
	keySeekBack    = ','
	keySeekForward = '.'
	keyVolumeUp    = '+'
	keyVolumeDown  = '-'
	keyQuit        = 'q'

	keyEscape = 27
)

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [#]",
		Short: "Play featured songs in the console",
		Long:  `Play the featured playlist starting from the given position (see 'hero list') without the TUI.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position := 1
			if len(args) == 1 {
				var err error
				if position, err = strconv.Atoi(args[0]); err != nil {
					return fmt.Errorf("неверный номер трека: %s", args[0])
				}
			}
			if position < 1 || position > len(app.Catalog.Tracks) {
				return fmt.Errorf("номер трека должен быть от 1 до %d", len(app.Catalog.Tracks))
			}
			return app.playFrom(ctx, cmd.OutOrStdout(), position-1)
		},
	}
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// readKeys читает клавиши по одной и закрывает канал в конце ввода
func readKeys(r io.Reader, keys chan<- byte) {
	defer close(keys)

	reader := bufio.NewReader(r)
	for {
		char, err := reader.ReadByte()
		if err != nil {
			return
		}

		// Стрелки приходят как ESC [ C / ESC [ D
		if char == keyEscape {
			if next, err := reader.ReadByte(); err != nil || next != '[' {
				continue
			}
			arrow, err := reader.ReadByte()
			if err != nil {
				return
			}
			switch arrow {
			case 'C':
				char = keySeekForward
			case 'D':
				char = keySeekBack
			default:
				continue
			}
		}

		keys <- char
	}
}

// consolePlayer управляет контроллером из главного цикла команды play
type consolePlayer struct {
	controller *playback.Controller
	seekStep   float64
	volumeStep float64
	out        io.Writer

	resumes   chan playback.ResumeResult
	done      chan struct{}
	lastIndex int
}

func newConsolePlayer(controller *playback.Controller, seekStep, volumeStep float64, out io.Writer) *consolePlayer {
	return &consolePlayer{
		controller: controller,
		seekStep:   seekStep,
		volumeStep: volumeStep,
		out:        out,
		resumes:    make(chan playback.ResumeResult, 1),
		done:       make(chan struct{}),
		lastIndex:  -1,
	}
}

// startResume выполняет запуск воспроизведения в отдельной горутине
func (p *consolePlayer) startResume(resume playback.ResumeFunc) {
	if resume == nil {
		return
	}
	go func() {
		result := resume()
		select {
		case p.resumes <- result:
		case <-p.done:
		}
	}()
}

// handleKey применяет клавишу. Возвращает true, если нужно выйти.
func (p *consolePlayer) handleKey(key byte) bool {
	switch key {
	case keyToggle, '\n', '\r':
		p.startResume(p.controller.TogglePlayPause())
	case keyNext:
		p.controller.SelectNext()
	case keyPrevious:
		p.controller.SelectPrevious()
	case keySeekBack:
		p.controller.SeekBy(-p.seekStep)
	case keySeekForward:
		p.controller.SeekBy(p.seekStep)
	case keyVolumeUp, '=':
		p.controller.ChangeVolume(p.volumeStep)
	case keyVolumeDown:
		p.controller.ChangeVolume(-p.volumeStep)
	case keyQuit:
		return true
	}
	return false
}

// render выводит строку состояния и заголовок при смене трека
func (p *consolePlayer) render() {
	state := p.controller.State()

	if state.CurrentIndex != p.lastIndex {
		p.lastIndex = state.CurrentIndex
		t := p.controller.Track()
		fmt.Fprintf(p.out, "\r\033[K🎵 Сейчас играет: %s - %s\n", t.Artist, t.Title)
	}

	statusIcon := "⏸️"
	if state.IsPlaying {
		statusIcon = "▶️"
	}

	fmt.Fprintf(p.out, "\r\033[K%s  %s / %s | 🔊 %d%%",
		statusIcon,
		utils.FormatTime(state.CurrentTime),
		state.DurationText(),
		int(state.Volume*100+0.5))
}

func (p *consolePlayer) close() {
	close(p.done)
	p.controller.Teardown()
}

func (app *Application) playFrom(ctx context.Context, out io.Writer, index int) error {
	controller := app.newController()
	p := newConsolePlayer(controller, app.Config.SeekStep, app.Config.VolumeStep, out)
	defer p.close()

	p.startResume(controller.SelectTrack(index))
	p.render()

	fmt.Fprintf(out, "\n🎮 Управление:\n")
	fmt.Fprintf(out, "   [Пробел] - пауза/воспроизведение\n")
	fmt.Fprintf(out, "   [n/p] - следующий/предыдущий трек\n")
	fmt.Fprintf(out, "   [←/→ или ,/.] - перемотка на %.0f с\n", app.Config.SeekStep)
	fmt.Fprintf(out, "   [+/-] - громкость\n")
	fmt.Fprintf(out, "   [q] - выход\n")
	fmt.Fprintln(out)

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	keys := make(chan byte)
	go readKeys(os.Stdin, keys)

	// Создаем канал для обработки сигналов прерывания
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Главный цикл обработки событий
	for {
		select {
		case event := <-controller.Events():
			if controller.HandleEvent(event) {
				p.render()
			}
		case result := <-p.resumes:
			controller.HandleResume(result)
			p.render()
		case key, ok := <-keys:
			if !ok {
				// Ввод закрыт, продолжаем играть до прерывания
				keys = nil
				continue
			}
			if p.handleKey(key) {
				fmt.Fprintln(out, "\n⏹️  Воспроизведение остановлено")
				return nil
			}
			p.render()
		case <-interrupt:
			fmt.Fprintln(out, "\n⏹️  Воспроизведение остановлено пользователем")
			return nil
		case <-ctx.Done():
			fmt.Fprintln(out, "\n🚫 Операция отменена")
			return ctx.Err()
		}
	}
}
