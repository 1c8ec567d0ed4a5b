package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestSelectorCycles(t *testing.T) {
	s := NewSelector("Grade", []SelectorOption{
		{Label: "A", Value: "a"},
		{Label: "B", Value: "b"},
		{Label: "C", Value: "c"},
	}, "b")
	s.Focused = true

	if s.Value() != "b" {
		t.Fatalf("initial value = %q, want b", s.Value())
	}

	s, _ = s.Update(key(tea.KeyRight))
	if s.Value() != "c" {
		t.Errorf("after right = %q, want c", s.Value())
	}
	s, _ = s.Update(key(tea.KeyRight))
	if s.Value() != "a" {
		t.Errorf("after wrap = %q, want a", s.Value())
	}
	s, _ = s.Update(key(tea.KeyLeft))
	if s.Value() != "c" {
		t.Errorf("after left wrap = %q, want c", s.Value())
	}
}

func TestSelectorIgnoresKeysWhenBlurred(t *testing.T) {
	s := NewSelector("Language", []SelectorOption{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}}, "a")
	s, _ = s.Update(key(tea.KeyRight))
	if s.Value() != "a" {
		t.Errorf("blurred selector changed to %q", s.Value())
	}
}

func TestSelectorUnknownValueKeepsFirst(t *testing.T) {
	s := NewSelector("Language", []SelectorOption{{Label: "A", Value: "a"}}, "zz")
	if s.Value() != "a" {
		t.Errorf("value = %q, want a", s.Value())
	}
}

func TestButtonFiresOnlyWhenFocused(t *testing.T) {
	pressed := 0
	b := NewButton("Begin", func() tea.Cmd { pressed++; return nil })

	b, _ = b.Update(key(tea.KeyEnter))
	if pressed != 0 {
		t.Fatal("unfocused button fired")
	}

	b.Focused = true
	_, _ = b.Update(key(tea.KeyEnter))
	if pressed != 1 {
		t.Errorf("pressed = %d, want 1", pressed)
	}
}

func TestTextInputErrorClearsOnKey(t *testing.T) {
	ti := NewTextInput("Who?", 0)
	ti.SetError("must not be empty")
	if ti.Error() == "" {
		t.Fatal("expected error")
	}

	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if ti.Error() != "" {
		t.Errorf("error not cleared: %q", ti.Error())
	}
	if ti.Value() != "a" {
		t.Errorf("value = %q, want a", ti.Value())
	}
}

func TestTextInputBlankAndClear(t *testing.T) {
	ti := NewTextInput("", 0)
	ti.SetValue("   ")
	if !ti.Blank() {
		t.Error("whitespace should be blank")
	}
	ti.SetValue("Hello")
	ti.Clear()
	if ti.Value() != "" {
		t.Errorf("value after clear = %q", ti.Value())
	}
}
