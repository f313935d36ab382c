package search

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInputAcceptsTextOnlyWhenFocused(t *testing.T) {
	model := NewModel()

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	if model.Value() != "" {
		t.Errorf("Unfocused input should ignore keys, got %q", model.Value())
	}

	model.Focus()
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("weeknd")})
	if model.Value() != "weeknd" {
		t.Errorf("Expected 'weeknd', got %q", model.Value())
	}
}

func TestEnterDoesNothing(t *testing.T) {
	model := NewModel()
	model.Focus()
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dua")})

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Enter should not produce a command")
	}
	if model.Value() != "dua" {
		t.Errorf("Enter should keep the query, got %q", model.Value())
	}
}

func TestViewHasExploreLabel(t *testing.T) {
	model := NewModel()
	if !strings.Contains(model.View(), "Explore") {
		t.Errorf("View should contain 'Explore', got:\n%s", model.View())
	}
}

func TestBlur(t *testing.T) {
	model := NewModel()
	model.Focus()
	model.Blur()
	if model.Focused() {
		t.Error("Input should not be focused after Blur")
	}
}
