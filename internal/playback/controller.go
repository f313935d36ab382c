// Package playback содержит состояние плеера hero-секции и привязку
// к единственному ресурсу воспроизведения.
//
// Controller не потокобезопасен: все методы вызываются из одного цикла
// событий (Update в TUI или главный цикл консольного плеера). События
// ресурса приходят в канал Events и применяются через HandleEvent в том же цикле.
package playback

import (
	"context"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/hazadus/go-hero/internal/data"
	"github.com/hazadus/go-hero/internal/player"
	"github.com/hazadus/go-hero/internal/track"
	"github.com/hazadus/go-hero/internal/utils"
)

// ErrNoResource возвращается при попытке воспроизведения без ресурса
var ErrNoResource = errors.New("ресурс воспроизведения не создан")

const (
	eventBufferSize      = 64
	defaultResumeTimeout = 30 * time.Second
)

// State состояние плеера
type State struct {
	CurrentIndex int     // Индекс трека в каталоге
	IsPlaying    bool    // Идет ли воспроизведение
	CurrentTime  float64 // Прошедшее время, секунды
	Duration     float64 // Длительность, секунды; 0 до загрузки метаданных или если она неизвестна
	Volume       float64 // Громкость 0..1
	Live         bool    // Метаданные загружены, но длительность неизвестна (поток без Seek)
}

// DurationText длительность для отображения; --:-- для потока неизвестной длины
func (s State) DurationText() string {
	if s.Live {
		return "--:--"
	}
	return utils.FormatTime(s.Duration)
}

// ResumeResult результат асинхронного запуска воспроизведения
type ResumeResult struct {
	Generation uint64
	Request    uint64 // Номер запроса; отмененные и замененные запросы игнорируются
	Index      int
	Intent     bool // Запуск вызван выбором трека, IsPlaying уже выставлен
	Err        error
}

// ResumeFunc блокирующий запуск воспроизведения. Выполняется вне цикла событий,
// результат передается в HandleResume.
type ResumeFunc func() ResumeResult

// Controller управляет состоянием плеера и владеет ресурсом воспроизведения
type Controller struct {
	tracks *track.Manager
	opener player.Opener
	logger *zap.Logger

	state         State
	resource      player.Resource
	forwarder     *forwarder
	generation    uint64
	events        chan Event
	resumeTimeout time.Duration

	// Ожидающий запуск воспроизведения
	resumeID     uint64
	resumeCancel context.CancelFunc
}

// NewController создает контроллер. Ресурс создается в Mount.
func NewController(tracks *track.Manager, opener player.Opener, logger *zap.Logger, volume float64) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		tracks:        tracks,
		opener:        opener,
		logger:        logger,
		state:         State{Volume: utils.Clamp(volume, 0, 1)},
		events:        make(chan Event, eventBufferSize),
		resumeTimeout: defaultResumeTimeout,
	}
}

// SetResumeTimeout задает максимальное время ожидания загрузки при запуске
func (c *Controller) SetResumeTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.resumeTimeout = timeout
	}
}

// State возвращает копию текущего состояния
func (c *Controller) State() State {
	return c.state
}

// Track возвращает текущий трек
func (c *Controller) Track() data.Track {
	return c.tracks.Track(c.state.CurrentIndex)
}

// Tracks возвращает менеджер каталога
func (c *Controller) Tracks() *track.Manager {
	return c.tracks
}

// Events возвращает канал событий ресурса
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Bound сообщает, есть ли живой ресурс воспроизведения
func (c *Controller) Bound() bool {
	return c.resource != nil
}

// Mount создает ресурс для текущего трека, если его еще нет
func (c *Controller) Mount() {
	if c.resource == nil {
		c.bind()
	}
}

// Teardown окончательно освобождает ресурс
func (c *Controller) Teardown() {
	c.unbind()
	c.generation++
	c.state.IsPlaying = false
}

// SelectNext переключает на следующий трек по кругу
func (c *Controller) SelectNext() {
	c.state.CurrentIndex = c.tracks.NextIndex(c.state.CurrentIndex)
	c.bind()
}

// SelectPrevious переключает на предыдущий трек по кругу
func (c *Controller) SelectPrevious() {
	c.state.CurrentIndex = c.tracks.PreviousIndex(c.state.CurrentIndex)
	c.bind()
}

// SelectTrack переходит к треку и выставляет IsPlaying. Ресурс пересоздается,
// только если индекс изменился. Возвращает запуск воспроизведения.
func (c *Controller) SelectTrack(index int) ResumeFunc {
	index = c.tracks.Index(index)
	if index != c.state.CurrentIndex || c.resource == nil {
		c.state.CurrentIndex = index
		c.bind()
	}
	c.state.IsPlaying = true
	return c.resume(true)
}

// TogglePlayPause ставит на паузу сразу (возвращает nil) или возвращает
// асинхронный запуск воспроизведения. Пауза во время загрузки отменяет
// ожидающий запуск.
func (c *Controller) TogglePlayPause() ResumeFunc {
	if c.resource == nil {
		return nil
	}
	if c.state.IsPlaying || c.resumeCancel != nil {
		c.cancelResume()
		c.resource.Pause()
		c.state.IsPlaying = false
		return nil
	}
	return c.resume(false)
}

// HandleResume применяет результат запуска воспроизведения.
// Результаты для уже замененного ресурса игнорируются.
func (c *Controller) HandleResume(result ResumeResult) {
	if result.Generation != c.generation || result.Request != c.resumeID {
		return
	}
	if c.resumeCancel != nil {
		c.resumeCancel()
		c.resumeCancel = nil
	}
	if result.Err != nil {
		c.logger.Error("ошибка воспроизведения",
			zap.Int("index", result.Index),
			zap.String("audio", c.tracks.Track(result.Index).AudioPath),
			zap.Error(result.Err))
		if result.Intent {
			c.state.IsPlaying = false
		}
		return
	}
	c.state.IsPlaying = true
}

// Seek перематывает на позицию в секундах, ограниченную [0, Duration].
// Состояние обновляется сразу, не дожидаясь события от ресурса.
// Пока длительность неизвестна, перемотка не выполняется.
func (c *Controller) Seek(seconds float64) {
	if c.resource == nil || c.state.Duration <= 0 {
		return
	}
	seconds = utils.Clamp(seconds, 0, c.state.Duration)
	if err := c.resource.Seek(secondsToDuration(seconds)); err != nil {
		c.logger.Debug("перемотка не выполнена", zap.Float64("seconds", seconds), zap.Error(err))
	}
	c.state.CurrentTime = seconds
}

// SeekBy перематывает относительно текущей позиции
func (c *Controller) SeekBy(delta float64) {
	c.Seek(c.state.CurrentTime + delta)
}

// SetVolume задает громкость, ограниченную [0, 1]
func (c *Controller) SetVolume(volume float64) {
	volume = utils.Clamp(volume, 0, 1)
	if c.resource != nil {
		c.resource.SetVolume(volume)
	}
	c.state.Volume = volume
}

// ChangeVolume изменяет громкость на delta
func (c *Controller) ChangeVolume(delta float64) {
	c.SetVolume(c.state.Volume + delta)
}

// HandleEvent применяет событие ресурса. Возвращает false для событий
// уже освобожденного ресурса.
func (c *Controller) HandleEvent(event Event) bool {
	if event.Generation != c.generation || c.resource == nil {
		return false
	}

	switch event.Kind {
	case MetadataLoaded:
		c.state.Duration = nonNegative(event.Seconds)
		c.state.Live = c.state.Duration == 0
		if c.state.Live {
			c.logger.Debug("длительность трека неизвестна", zap.Int("index", c.state.CurrentIndex))
		}
		if c.state.Duration > 0 && c.state.CurrentTime > c.state.Duration {
			c.state.CurrentTime = c.state.Duration
		}

	case TimeUpdated:
		position := nonNegative(event.Seconds)
		if c.state.Duration > 0 && position > c.state.Duration {
			position = c.state.Duration
		}
		c.state.CurrentTime = position

	case TrackEnded:
		c.state.IsPlaying = false
		c.state.CurrentTime = 0
		c.SelectNext()
	}
	return true
}

// bind освобождает старый ресурс и создает новый для текущего трека
func (c *Controller) bind() {
	c.unbind()

	c.generation++
	c.state.IsPlaying = false
	c.state.CurrentTime = 0
	c.state.Duration = 0
	c.state.Live = false

	t := c.tracks.Track(c.state.CurrentIndex)
	fw := newForwarder(c.generation, c.events)

	res, err := c.opener.Open(t.AudioPath, fw)
	if err != nil {
		fw.detach()
		c.logger.Error("ошибка создания ресурса воспроизведения",
			zap.Int("index", c.state.CurrentIndex),
			zap.String("audio", t.AudioPath),
			zap.Error(err))
		return
	}

	res.SetVolume(c.state.Volume)
	c.resource = res
	c.forwarder = fw

	c.logger.Debug("ресурс воспроизведения создан",
		zap.Int("index", c.state.CurrentIndex),
		zap.String("title", t.Title),
		zap.Uint64("generation", c.generation))
}

// unbind останавливает и закрывает текущий ресурс
func (c *Controller) unbind() {
	c.cancelResume()
	if c.forwarder != nil {
		c.forwarder.detach()
		c.forwarder = nil
	}
	if c.resource != nil {
		if err := c.resource.Close(); err != nil {
			c.logger.Warn("ошибка закрытия ресурса воспроизведения", zap.Error(err))
		}
		c.resource = nil
	}
}

// resume создает запуск воспроизведения. Предыдущий ожидающий запуск отменяется.
func (c *Controller) resume(intent bool) ResumeFunc {
	c.cancelResume()

	res := c.resource
	result := ResumeResult{
		Generation: c.generation,
		Request:    c.resumeID,
		Index:      c.state.CurrentIndex,
		Intent:     intent,
	}
	if res == nil {
		return func() ResumeResult {
			result.Err = ErrNoResource
			return result
		}
	}

	// Контекст создается сразу, чтобы пауза могла отменить еще не начатую загрузку
	ctx, cancel := context.WithTimeout(context.Background(), c.resumeTimeout)
	c.resumeCancel = cancel

	return func() ResumeResult {
		defer cancel()
		result.Err = res.Play(ctx)
		return result
	}
}

// cancelResume отменяет ожидающий запуск; его результат будет проигнорирован
func (c *Controller) cancelResume() {
	if c.resumeCancel != nil {
		c.resumeCancel()
		c.resumeCancel = nil
	}
	c.resumeID++
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}
