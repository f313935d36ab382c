package playback

import (
	"sync"
	"time"
)

// EventKind тип события ресурса воспроизведения
type EventKind int

// Типы событий
const (
	// MetadataLoaded длительность трека известна
	MetadataLoaded EventKind = iota
	// TimeUpdated позиция воспроизведения изменилась
	TimeUpdated
	// TrackEnded трек доигран до конца
	TrackEnded
)

func (k EventKind) String() string {
	switch k {
	case MetadataLoaded:
		return "metadata"
	case TimeUpdated:
		return "timeupdate"
	case TrackEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Event событие ресурса, помеченное поколением ресурса
type Event struct {
	Generation uint64
	Kind       EventKind
	Seconds    float64
}

// forwarder реализует player.Listener и пересылает события в канал контроллера.
// После detach события больше не отправляются.
type forwarder struct {
	generation uint64
	events     chan<- Event
	done       chan struct{}
	once       sync.Once
}

func newForwarder(generation uint64, events chan<- Event) *forwarder {
	return &forwarder{
		generation: generation,
		events:     events,
		done:       make(chan struct{}),
	}
}

func (f *forwarder) detach() {
	f.once.Do(func() { close(f.done) })
}

func (f *forwarder) OnMetadata(total time.Duration) {
	f.send(Event{Generation: f.generation, Kind: MetadataLoaded, Seconds: total.Seconds()}, true)
}

// OnTimeUpdate может быть пропущено при заполненном канале: следующее обновление его заменит
func (f *forwarder) OnTimeUpdate(position time.Duration) {
	f.send(Event{Generation: f.generation, Kind: TimeUpdated, Seconds: position.Seconds()}, false)
}

func (f *forwarder) OnEnded() {
	f.send(Event{Generation: f.generation, Kind: TrackEnded}, true)
}

func (f *forwarder) send(event Event, wait bool) {
	select {
	case <-f.done:
		return
	default:
	}

	if !wait {
		select {
		case f.events <- event:
		case <-f.done:
		default:
		}
		return
	}

	select {
	case f.events <- event:
	case <-f.done:
	}
}
