package player

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrClosed возвращается при обращении к закрытому ресурсу
	ErrClosed = errors.New("ресурс воспроизведения закрыт")
	// ErrNotLoaded возвращается, если трек еще не загружен
	ErrNotLoaded = errors.New("трек еще не загружен")
)

// Listener получает события ресурса воспроизведения.
// Вызовы приходят из горутин ресурса; обработчик не должен
// обращаться к самому ресурсу.
type Listener interface {
	// OnMetadata сообщает длительность трека после загрузки
	OnMetadata(total time.Duration)
	// OnTimeUpdate периодически сообщает текущую позицию
	OnTimeUpdate(position time.Duration)
	// OnEnded сообщает о естественном окончании трека
	OnEnded()
}

// Resource один загруженный, воспроизводимый аудиоисточник.
// После возврата из Close слушатель больше не вызывается.
type Resource interface {
	// Play возобновляет воспроизведение. Ждет окончания загрузки и может завершиться ошибкой.
	Play(ctx context.Context) error
	Pause()
	Seek(position time.Duration) error
	SetVolume(level float64)
	Close() error
}

// Opener создает ресурсы воспроизведения
type Opener interface {
	// Open создает ресурс для источника. Загрузка идет в фоне,
	// OnMetadata вызывается, когда трек готов.
	Open(source string, listener Listener) (Resource, error)
}
