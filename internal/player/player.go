// Package player содержит компоненты для управления воспроизведением аудио
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/hazadus/go-hero/internal/streaming"
)

// Source открывает аудиоданные по пути из каталога
type Source interface {
	Open(ctx context.Context, source string) (io.ReadCloser, error)
}

// Engine создает ресурсы воспроизведения поверх beep.
// Динамики инициализируются один раз, треки с другой частотой
// дискретизации пересэмплируются.
type Engine struct {
	source       Source
	logger       *zap.Logger
	tickInterval time.Duration

	mutex         sync.Mutex
	isInitialized bool
	sampleRate    beep.SampleRate
}

// NewEngine создает новый движок воспроизведения
func NewEngine(source Source, logger *zap.Logger, tickInterval time.Duration) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tickInterval <= 0 {
		tickInterval = 250 * time.Millisecond
	}
	return &Engine{
		source:       source,
		logger:       logger,
		tickInterval: tickInterval,
	}
}

// Open создает ресурс и запускает его загрузку в фоне
func (e *Engine) Open(source string, listener Listener) (Resource, error) {
	if source == "" {
		return nil, errors.New("не указан источник аудио")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &resource{
		engine:   e,
		source:   source,
		logger:   e.logger.With(zap.String("source", source)),
		ctx:      ctx,
		cancel:   cancel,
		listener: listener,
		ready:    make(chan struct{}),
		level:    1,
	}

	go r.load()

	return r, nil
}

// speakerRate инициализирует динамики при первом вызове и возвращает их частоту
func (e *Engine) speakerRate(rate beep.SampleRate) (beep.SampleRate, error) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	if !e.isInitialized {
		if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
			return 0, fmt.Errorf("ошибка инициализации динамиков: %w", err)
		}
		e.sampleRate = rate
		e.isInitialized = true
	}
	return e.sampleRate, nil
}

// resource реализация Resource поверх beep
type resource struct {
	engine *Engine
	source string
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc

	listenerMutex sync.Mutex
	listener      Listener

	ready   chan struct{} // Закрывается после окончания загрузки
	loadErr error

	mutex    sync.Mutex
	closed   bool
	started  bool
	level    float64
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
}

// load открывает и декодирует источник
func (r *resource) load() {
	defer close(r.ready)

	reader, err := r.engine.source.Open(r.ctx, r.source)
	if err != nil {
		r.fail(err)
		return
	}

	streamer, format, err := mp3.Decode(reader)
	if err != nil {
		reader.Close()
		r.fail(fmt.Errorf("ошибка декодирования MP3: %w", err))
		return
	}

	rate, err := r.engine.speakerRate(format.SampleRate)
	if err != nil {
		streamer.Close()
		r.fail(err)
		return
	}

	var output beep.Streamer = streamer
	if format.SampleRate != rate {
		output = beep.Resample(4, format.SampleRate, rate, streamer)
	}

	r.mutex.Lock()
	if r.closed {
		r.mutex.Unlock()
		streamer.Close()
		return
	}
	r.streamer = streamer
	r.format = format
	r.ctrl = &beep.Ctrl{Streamer: output, Paused: true}
	r.volume = &effects.Volume{Streamer: r.ctrl, Base: 2}
	applyVolume(r.volume, r.level)
	total := lengthOf(streamer, format)
	r.mutex.Unlock()

	r.logger.Debug("трек загружен",
		zap.Duration("total", total),
		zap.Int("sample_rate", int(format.SampleRate)))

	r.notify(func(l Listener) { l.OnMetadata(total) })

	go r.monitorProgress()
}

func (r *resource) fail(err error) {
	r.mutex.Lock()
	r.loadErr = err
	r.mutex.Unlock()
	r.logger.Warn("ошибка загрузки трека", zap.Error(err))
}

// Play запускает или возобновляет воспроизведение
func (r *resource) Play(ctx context.Context) error {
	select {
	case <-r.ready:
	case <-r.ctx.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return ErrClosed
	}
	// Запуск мог быть отменен, пока трек загружался
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.loadErr != nil {
		return fmt.Errorf("ошибка загрузки трека: %w", r.loadErr)
	}

	speaker.Lock()
	r.ctrl.Paused = false
	speaker.Unlock()

	if !r.started {
		speaker.Play(beep.Seq(r.volume, beep.Callback(func() {
			// Колбэк выполняется под блокировкой динамиков
			go r.notify(func(l Listener) { l.OnEnded() })
		})))
		r.started = true
	}
	return nil
}

// Pause приостанавливает воспроизведение
func (r *resource) Pause() {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.ctrl != nil && !r.closed {
		speaker.Lock()
		r.ctrl.Paused = true
		speaker.Unlock()
	}
}

// Seek перемещает позицию воспроизведения
func (r *resource) Seek(position time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.streamer == nil {
		return ErrNotLoaded
	}

	sample := r.format.SampleRate.N(position)
	if sample < 0 {
		sample = 0
	}
	if length := r.streamer.Len(); length > 0 && sample >= length {
		sample = length - 1
	}

	speaker.Lock()
	err := r.streamer.Seek(sample)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	return nil
}

// SetVolume задает громкость в диапазоне [0, 1]
func (r *resource) SetVolume(level float64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.level = level
	if r.volume != nil && !r.closed {
		speaker.Lock()
		applyVolume(r.volume, level)
		speaker.Unlock()
	}
}

// Close останавливает воспроизведение и освобождает источник
func (r *resource) Close() error {
	r.listenerMutex.Lock()
	r.listener = nil
	r.listenerMutex.Unlock()

	r.cancel()

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if r.ctrl != nil {
		// Пустой Ctrl динамики выбрасывают из микшера
		speaker.Lock()
		r.ctrl.Streamer = nil
		r.ctrl.Paused = true
		speaker.Unlock()
	}

	var err error
	if r.streamer != nil {
		err = r.streamer.Close()
		r.streamer = nil
	}
	r.ctrl = nil
	r.volume = nil
	return err
}

// notify вызывает слушателя, если ресурс еще не закрыт
func (r *resource) notify(fn func(Listener)) {
	r.listenerMutex.Lock()
	defer r.listenerMutex.Unlock()

	if r.listener != nil {
		fn(r.listener)
	}
}

// monitorProgress периодически отправляет текущую позицию
func (r *resource) monitorProgress() {
	ticker := time.NewTicker(r.engine.tickInterval)
	defer ticker.Stop()

	lastPosition := time.Duration(-1)
	stuckCount := 0

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.mutex.Lock()
			if r.closed || r.streamer == nil {
				r.mutex.Unlock()
				return
			}
			speaker.Lock()
			position := r.format.SampleRate.D(r.streamer.Position())
			paused := r.ctrl.Paused
			speaker.Unlock()
			r.mutex.Unlock()

			if paused {
				stuckCount = 0
				continue
			}

			// Позиция не двигается во время воспроизведения: поток не успевает
			if position == lastPosition {
				stuckCount++
				if stuckCount == 4 {
					r.logger.Warn(streaming.StreamStatus(stuckCount), zap.Duration("position", position))
				}
			} else {
				stuckCount = 0
			}
			lastPosition = position

			r.notify(func(l Listener) { l.OnTimeUpdate(position) })
		}
	}
}

// VolumeGain переводит линейную громкость [0, 1] в параметры effects.Volume с основанием 2
func VolumeGain(level float64) (volume float64, silent bool) {
	if level <= 0 || math.IsNaN(level) {
		return 0, true
	}
	if level > 1 {
		level = 1
	}
	return math.Log2(level), false
}

func applyVolume(v *effects.Volume, level float64) {
	v.Volume, v.Silent = VolumeGain(level)
}

func lengthOf(streamer beep.StreamSeekCloser, format beep.Format) time.Duration {
	length := streamer.Len()
	if length <= 0 {
		return 0
	}
	return format.SampleRate.D(length)
}
