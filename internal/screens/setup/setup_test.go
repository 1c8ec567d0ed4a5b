package setup

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/router"
	"github.com/abhisek/eternal/internal/screen"
)

type stubChat struct {
	settings domain.Settings
}

func (s *stubChat) Init() tea.Cmd                           { return nil }
func (s *stubChat) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubChat) View(int, int) string                    { return "chat" }
func (s *stubChat) Title() string                           { return "Chat" }

func newTestSetup(initial domain.Settings) (*SetupScreen, *[]domain.Settings) {
	var opened []domain.Settings
	s := New(initial, func(st domain.Settings) screen.Screen {
		opened = append(opened, st)
		return &stubChat{settings: st}
	})
	return s, &opened
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "shift+tab":
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestNew_PrefillsSettings(t *testing.T) {
	s, _ := newTestSetup(domain.DefaultSettings())
	if got := s.Settings(); got != domain.DefaultSettings() {
		t.Errorf("Settings() = %+v, want defaults", got)
	}
	view := s.View(100, 40)
	for _, want := range []string{"Who would you like to meet?", "Student grade", "Begin Dialogue"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEnter_PushesChatWithSettings(t *testing.T) {
	s, opened := newTestSetup(domain.DefaultSettings())

	_, cmd := s.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	chat, ok := push.Screen.(*stubChat)
	if !ok {
		t.Fatalf("expected chat screen, got %T", push.Screen)
	}
	if chat.settings != domain.DefaultSettings() {
		t.Errorf("chat settings = %+v", chat.settings)
	}
	if len(*opened) != 1 {
		t.Errorf("openChat called %d times, want 1", len(*opened))
	}
}

func TestEnter_EmptyPersonShowsInlineError(t *testing.T) {
	initial := domain.DefaultSettings()
	initial.TargetPerson = ""
	s, opened := newTestSetup(initial)
	s.setFocus(fieldBegin)

	s.Update(key("enter"))

	if len(*opened) != 0 {
		t.Fatal("chat must not open for an empty name")
	}
	if s.focus != fieldPerson {
		t.Errorf("focus = %d, want person field", s.focus)
	}
	if !strings.Contains(s.View(100, 40), "Enter the name of a historical figure.") {
		t.Error("expected inline error in view")
	}

	// Typing clears the error.
	s.Update(key("N"))
	if s.person.Error() != "" {
		t.Errorf("error not cleared: %q", s.person.Error())
	}
}

func TestEnter_WhitespacePersonRejected(t *testing.T) {
	initial := domain.DefaultSettings()
	initial.TargetPerson = "   "
	s, opened := newTestSetup(initial)

	s.Update(key("enter"))
	if len(*opened) != 0 {
		t.Fatal("chat must not open for a blank name")
	}
}

func TestTab_CyclesFocus(t *testing.T) {
	s, _ := newTestSetup(domain.DefaultSettings())

	want := []field{fieldGrade, fieldLanguage, fieldBegin, fieldPerson}
	for _, f := range want {
		s.Update(key("tab"))
		if s.focus != f {
			t.Fatalf("focus = %d, want %d", s.focus, f)
		}
	}

	s.Update(key("shift+tab"))
	if s.focus != fieldBegin {
		t.Errorf("shift+tab focus = %d, want begin", s.focus)
	}
	if !s.begin.Focused || s.grade.Focused || s.language.Focused {
		t.Error("only the begin button should be focused")
	}
}

func TestSelectors_ChangeValues(t *testing.T) {
	s, _ := newTestSetup(domain.DefaultSettings())

	s.Update(key("tab")) // grade
	s.Update(key("right"))
	if got := s.Settings().StudentGrade; got != domain.GradeHigh {
		t.Errorf("grade = %q, want %q", got, domain.GradeHigh)
	}

	s.Update(key("tab")) // language
	s.Update(key("right"))
	if got := s.Settings().Language; got != "zh-CN" {
		t.Errorf("language = %q, want zh-CN", got)
	}
}

func TestSettings_TrimsPerson(t *testing.T) {
	initial := domain.DefaultSettings()
	initial.TargetPerson = "  Cleopatra  "
	s, _ := newTestSetup(initial)
	if got := s.Settings().TargetPerson; got != "Cleopatra" {
		t.Errorf("TargetPerson = %q", got)
	}
}
