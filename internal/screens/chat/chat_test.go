package chat

import (
	"encoding/json"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/generation"
	"github.com/abhisek/eternal/internal/llm"
	"github.com/abhisek/eternal/internal/router"
	"github.com/abhisek/eternal/internal/screens/dashboard"
	"github.com/abhisek/eternal/internal/session"
)

const profile = `{
	"name": "Ada Lovelace",
	"title": "Countess of Lovelace",
	"era": "Victorian Britain",
	"bio_quote": "That brain of mine is something more than merely mortal.",
	"key_achievements": ["First published algorithm", "Notes on the Analytical Engine"],
	"region": "WESTERN",
	"gender": "FEMALE"
}`

const turn = `{
	"persona_name": "Ada Lovelace",
	"persona_style": "Poetic",
	"reply": "The Engine weaves algebraic patterns.",
	"emotion_tag": "curious",
	"emotion_guess": "engaged",
	"follow_up_question": "What would you weave?",
	"teacher_note": "Links math and art.",
	"student_focus": "Computing",
	"knowledge_covered": ["Analytical Engine"],
	"possible_confusion": ""
}`

func mockResponse(body string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(body)}
}

func settings() domain.Settings {
	return domain.Settings{TargetPerson: "Ada Lovelace", StudentGrade: domain.GradeHigh, Language: "English"}
}

func newChat(t *testing.T, responses ...llm.MockResponse) (*ChatScreen, *session.Controller) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	ctrl := session.NewController(generation.NewClient(mock, generation.DefaultConfig()), conversation.NewStore(), zap.NewNop())
	c := New(t.Context(), ctrl, settings())
	c.ticking = true
	return c, ctrl
}

func start(t *testing.T, c *ChatScreen) {
	t.Helper()
	msg := c.startSession()()
	_, ok := msg.(sessionStartedMsg)
	require.True(t, ok)
	c.Update(msg)
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestStart_RendersProfileAndGreeting(t *testing.T) {
	c, ctrl := newChat(t, mockResponse(profile))
	start(t, c)

	assert.Equal(t, conversation.PhaseReady, ctrl.Snapshot().Phase)
	view := c.View(160, 40)
	assert.Contains(t, view, "Countess of Lovelace")
	assert.Contains(t, view, "Greetings.")
	assert.Contains(t, view, "Achievements")
}

func TestStart_ValidationErrorShown(t *testing.T) {
	mock := llm.NewMockProvider()
	ctrl := session.NewController(generation.NewClient(mock, generation.DefaultConfig()), conversation.NewStore(), zap.NewNop())
	c := New(t.Context(), ctrl, domain.Settings{TargetPerson: " ", StudentGrade: domain.GradeHigh, Language: "English"})
	c.ticking = true
	start(t, c)

	assert.NotEmpty(t, c.startErr)
	assert.Contains(t, c.View(160, 40), "target person")
	assert.Equal(t, 0, mock.CallCount())
}

func TestEnter_SendsAndClearsInput(t *testing.T) {
	c, ctrl := newChat(t, mockResponse(profile), mockResponse(turn))
	start(t, c)

	c.input.SetValue("How does the Engine work?")
	_, cmd := c.Update(enter())
	require.NotNil(t, cmd)
	assert.Empty(t, c.input.Value())

	msg := cmd()
	done, ok := msg.(turnDoneMsg)
	require.True(t, ok)
	assert.True(t, done.Accepted)
	c.Update(msg)

	snap := ctrl.Snapshot()
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, "How does the Engine work?", snap.Messages[1].Content)

	view := c.View(160, 40)
	assert.Contains(t, view, "You")
	assert.Contains(t, view, "The Engine weaves algebraic patterns.")
}

func TestEnter_BlankIsIgnored(t *testing.T) {
	c, ctrl := newChat(t, mockResponse(profile))
	start(t, c)

	c.input.SetValue("   ")
	_, cmd := c.Update(enter())
	assert.Nil(t, cmd)
	assert.Len(t, ctrl.Snapshot().Messages, 1)
}

func TestEnter_KeepsTextBeforeSessionIsReady(t *testing.T) {
	c, _ := newChat(t)
	c.input.SetValue("Hello?")

	_, cmd := c.Update(enter())
	assert.Nil(t, cmd)
	assert.Equal(t, "Hello?", c.input.Value())
}

func TestTurnFailure_ShowsUnreachableText(t *testing.T) {
	c, ctrl := newChat(t, mockResponse(profile), llm.MockResponse{Err: errors.New("boom")})
	start(t, c)

	c.input.SetValue("Are you there?")
	_, cmd := c.Update(enter())
	require.NotNil(t, cmd)
	c.Update(cmd())

	snap := ctrl.Snapshot()
	assert.Equal(t, conversation.StatusError, snap.Status)
	view := c.View(200, 40)
	assert.Contains(t, view, "unreachable")
	assert.Contains(t, view, "You may ask again.")
}

func TestCtrlT_PushesDashboard(t *testing.T) {
	c, _ := newChat(t, mockResponse(profile))
	start(t, c)

	_, cmd := c.Update(tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*dashboard.DashboardScreen)
	assert.True(t, ok)
	assert.False(t, c.ticking)
}

func TestCtrlR_PopsAndCloseResets(t *testing.T) {
	c, ctrl := newChat(t, mockResponse(profile))
	start(t, c)

	_, cmd := c.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	require.True(t, ok)

	c.Close()
	assert.Equal(t, conversation.PhaseIdle, ctrl.Snapshot().Phase)
}

func TestHeaderStatus(t *testing.T) {
	c, _ := newChat(t)
	assert.Contains(t, c.HeaderStatus(), "Ada Lovelace")
	assert.Contains(t, c.HeaderStatus(), "English")
}
