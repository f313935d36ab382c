package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-hero/internal/data"
	"github.com/hazadus/go-hero/internal/playback"
	"github.com/hazadus/go-hero/internal/player"
	"github.com/hazadus/go-hero/internal/track"
	"github.com/hazadus/go-hero/internal/tui/tracklist"
)

type fakeResource struct {
	listener player.Listener
	playErr  error
	played   int
	paused   int
	position time.Duration
	closed   bool
}

func (r *fakeResource) Play(context.Context) error {
	r.played++
	return r.playErr
}
func (r *fakeResource) Pause()                            { r.paused++ }
func (r *fakeResource) Seek(position time.Duration) error { r.position = position; return nil }
func (r *fakeResource) SetVolume(float64)                 {}
func (r *fakeResource) Close() error                      { r.closed = true; return nil }

type fakeOpener struct {
	resources []*fakeResource
	playErr   error
}

func (o *fakeOpener) Open(_ string, listener player.Listener) (player.Resource, error) {
	res := &fakeResource{listener: listener, playErr: o.playErr}
	o.resources = append(o.resources, res)
	return res, nil
}

func (o *fakeOpener) last() *fakeResource {
	return o.resources[len(o.resources)-1]
}

func newTestModel(t *testing.T) (*MainModel, *fakeOpener) {
	t.Helper()
	opener := &fakeOpener{}
	controller := playback.NewController(track.NewManager(data.DefaultCatalog()), opener, nil, 0.5)
	model := NewMainModel(controller, Options{})
	model.Init()
	t.Cleanup(model.Close)
	return model, opener
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// update отправляет сообщение и возвращает команду модели
func update(m *MainModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func TestInitMountsFirstTrack(t *testing.T) {
	model, opener := newTestModel(t)

	if len(opener.resources) != 1 {
		t.Fatalf("Expected one resource after Init, got %d", len(opener.resources))
	}
	if !strings.Contains(model.View(), "Love YourSelf") {
		t.Errorf("View should show the first track:\n%s", model.View())
	}
}

func TestSpaceResumesThroughCommand(t *testing.T) {
	model, opener := newTestModel(t)

	cmd := update(model, key(" "))
	if cmd == nil {
		t.Fatal("Expected resume command after space")
	}
	if model.controller.State().IsPlaying {
		t.Fatal("State should change only after the resume result")
	}

	msg, ok := cmd().(ResumeMsg)
	if !ok {
		t.Fatal("Expected ResumeMsg")
	}
	update(model, msg)

	if !model.controller.State().IsPlaying {
		t.Error("Expected playing after successful resume")
	}
	if opener.last().played != 1 {
		t.Errorf("Expected one Play call, got %d", opener.last().played)
	}

	// Вторая пауза выполняется сразу
	if cmd := update(model, key(" ")); cmd != nil {
		t.Error("Pause should not produce a command")
	}
	if model.controller.State().IsPlaying || opener.last().paused != 1 {
		t.Error("Expected synchronous pause")
	}
}

func TestFailedResumeKeepsPaused(t *testing.T) {
	model, opener := newTestModel(t)
	opener.last().playErr = errors.New("autoplay blocked")

	cmd := update(model, key(" "))
	update(model, cmd())

	if model.controller.State().IsPlaying {
		t.Error("Failed resume should leave the player paused")
	}
}

func TestNextPreviousKeys(t *testing.T) {
	model, opener := newTestModel(t)

	update(model, key("p"))
	if got := model.controller.State().CurrentIndex; got != 4 {
		t.Errorf("Expected wrap to index 4, got %d", got)
	}
	update(model, key("n"))
	if got := model.controller.State().CurrentIndex; got != 0 {
		t.Errorf("Expected index 0, got %d", got)
	}
	if len(opener.resources) != 3 {
		t.Errorf("Expected a resource per track change, got %d", len(opener.resources))
	}
	for _, res := range opener.resources[:2] {
		if !res.closed {
			t.Error("Replaced resources should be closed")
		}
	}
}

func TestTrackSelectedMsg(t *testing.T) {
	model, _ := newTestModel(t)

	cmd := update(model, tracklist.TrackSelectedMsg{Index: 2})
	if cmd == nil {
		t.Fatal("Expected resume command for selected track")
	}
	state := model.controller.State()
	if state.CurrentIndex != 2 || !state.IsPlaying {
		t.Errorf("Expected index 2 playing, got %+v", state)
	}
	if !strings.Contains(model.View(), "Dance Monkey") {
		t.Errorf("View should show the selected track:\n%s", model.View())
	}
}

func TestEventsFlowIntoState(t *testing.T) {
	model, opener := newTestModel(t)
	listen := model.listenForEvents()

	opener.last().listener.OnMetadata(200 * time.Second)
	msg := listen()
	if _, ok := msg.(EventMsg); !ok {
		t.Fatalf("Expected EventMsg, got %T", msg)
	}
	if cmd := update(model, msg); cmd == nil {
		t.Error("Model should keep listening after an event")
	}

	if got := model.controller.State().Duration; got != 200 {
		t.Errorf("Expected duration 200, got %v", got)
	}
	if !strings.Contains(model.View(), "0:00 / 3:20") {
		t.Errorf("View should show the duration:\n%s", model.View())
	}
}

func TestSeekAndVolumeKeys(t *testing.T) {
	model, opener := newTestModel(t)
	model.controller.HandleEvent(playback.Event{Generation: 1, Kind: playback.MetadataLoaded, Seconds: 100})

	update(model, key("right"))
	update(model, key("."))
	if got := model.controller.State().CurrentTime; got != 10 {
		t.Errorf("Expected position 10, got %v", got)
	}
	if opener.last().position != 10*time.Second {
		t.Errorf("Expected resource seek to 10s, got %v", opener.last().position)
	}

	update(model, key("left"))
	if got := model.controller.State().CurrentTime; got != 5 {
		t.Errorf("Expected position 5, got %v", got)
	}

	update(model, key("+"))
	if got := model.controller.State().Volume; got < 0.549 || got > 0.551 {
		t.Errorf("Expected volume 0.55, got %v", got)
	}
	update(model, key("-"))
	update(model, key("-"))
	if got := model.controller.State().Volume; got < 0.449 || got > 0.451 {
		t.Errorf("Expected volume 0.45, got %v", got)
	}
}

func TestArrowsScrollCarouselWhenFocused(t *testing.T) {
	model, _ := newTestModel(t)
	model.controller.HandleEvent(playback.Event{Generation: 1, Kind: playback.MetadataLoaded, Seconds: 100})

	update(model, key("tab"))
	if model.Focus() != ArtistsFocus {
		t.Fatalf("Expected artists focus, got %v", model.Focus())
	}

	update(model, key("right"))
	if model.artists.Offset() != 1 {
		t.Errorf("Expected carousel offset 1, got %d", model.artists.Offset())
	}
	if got := model.controller.State().CurrentTime; got != 0 {
		t.Errorf("Arrows should not seek while carousel is focused, got %v", got)
	}
}

func TestPlaylistHighlightFollowsFocus(t *testing.T) {
	model, _ := newTestModel(t)

	if !model.tracklist.Focused() {
		t.Fatal("Playlist should be highlighted on start")
	}

	update(model, key("tab"))
	if model.tracklist.Focused() {
		t.Error("Playlist should lose highlight when carousel is focused")
	}

	update(model, key("shift+tab"))
	if model.Focus() != PlaylistFocus || !model.tracklist.Focused() {
		t.Errorf("Playlist should be highlighted again, focus %v", model.Focus())
	}
}

func TestSearchCapturesKeys(t *testing.T) {
	model, _ := newTestModel(t)

	update(model, key("/"))
	if model.Focus() != SearchFocus {
		t.Fatalf("Expected search focus, got %v", model.Focus())
	}

	update(model, key("n"))
	update(model, key("q"))
	if got := model.controller.State().CurrentIndex; got != 0 {
		t.Errorf("Typing in search should not switch tracks, got index %d", got)
	}
	if model.search.Value() != "nq" {
		t.Errorf("Expected search value 'nq', got %q", model.search.Value())
	}

	update(model, key("esc"))
	if model.Focus() != PlaylistFocus {
		t.Errorf("Expected playlist focus after esc, got %v", model.Focus())
	}
}

func TestQuitTearsDown(t *testing.T) {
	model, opener := newTestModel(t)
	listen := model.listenForEvents()

	cmd := update(model, key("q"))
	if cmd == nil {
		t.Fatal("Expected tea.Quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if !opener.last().closed || model.controller.Bound() {
		t.Error("Quit should close the resource")
	}
	if msg := listen(); msg != nil {
		t.Errorf("Listener should stop after quit, got %v", msg)
	}
	if !strings.Contains(model.View(), "До свидания!") {
		t.Errorf("Expected goodbye view, got %q", model.View())
	}
}
