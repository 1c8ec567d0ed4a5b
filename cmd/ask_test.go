package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/eternal/internal/conversation"
	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/generation"
	"github.com/abhisek/eternal/internal/llm"
	"github.com/abhisek/eternal/internal/session"
)

const profileFixture = `{
	"name": "Marie Curie",
	"title": "Physicist and Chemist",
	"era": "Belle Epoque",
	"bio_quote": "Nothing in life is to be feared, it is only to be understood.",
	"key_achievements": ["Discovered polonium", "Two Nobel Prizes"],
	"region": "WESTERN",
	"gender": "FEMALE"
}`

const turnFixture = `{
	"persona_name": "Marie Curie",
	"persona_style": "Patient",
	"reply": "Radium glows faintly in the dark.",
	"emotion_tag": "curious",
	"emotion_guess": "engaged",
	"follow_up_question": "What else glows?",
	"teacher_note": "Strong interest in chemistry.",
	"student_focus": "Radioactivity",
	"knowledge_covered": [],
	"possible_confusion": ""
}`

func newTestController(responses ...string) *session.Controller {
	mocks := make([]llm.MockResponse, 0, len(responses))
	for _, r := range responses {
		mocks = append(mocks, llm.MockResponse{Content: json.RawMessage(r)})
	}
	client := generation.NewClient(llm.NewMockProvider(mocks...), generation.DefaultConfig())
	return session.NewController(client, conversation.NewStore(), zap.NewNop())
}

func curie() domain.Settings {
	return domain.Settings{TargetPerson: "Marie Curie", StudentGrade: domain.GradeMiddle, Language: "English"}
}

func TestRunREPL_Conversation(t *testing.T) {
	ctrl := newTestController(profileFixture, turnFixture)
	in := strings.NewReader("Does radium glow?\n/analysis\n/quit\n")
	var out bytes.Buffer

	require.NoError(t, runREPL(t.Context(), ctrl, curie(), in, &out))

	got := out.String()
	assert.Contains(t, got, "Marie Curie, Physicist and Chemist")
	assert.Contains(t, got, "Greetings. I am Marie Curie.")
	assert.Contains(t, got, "Marie Curie> Radium glows faintly in the dark.")
	assert.Contains(t, got, "Knowledge:  None recorded")
	assert.Contains(t, got, "Confusion:  None detected.")

	// The session ends with the REPL.
	assert.Equal(t, conversation.PhaseIdle, ctrl.Snapshot().Phase)
}

func TestRunREPL_EOFEnds(t *testing.T) {
	ctrl := newTestController(profileFixture)
	var out bytes.Buffer
	require.NoError(t, runREPL(t.Context(), ctrl, curie(), strings.NewReader(""), &out))
}

func TestRunREPL_InvalidSettings(t *testing.T) {
	ctrl := newTestController()
	settings := curie()
	settings.Language = "Klingon"

	err := runREPL(t.Context(), ctrl, settings, strings.NewReader(""), &bytes.Buffer{})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "language", vErr.Field)
}

func TestRunREPL_FailedTurnPrintsUnreachable(t *testing.T) {
	ctrl := newTestController(profileFixture, `{"reply": 42}`)
	var out bytes.Buffer

	require.NoError(t, runREPL(t.Context(), ctrl, curie(), strings.NewReader("Hello?\n"), &out))
	assert.Contains(t, out.String(), conversation.UnreachableText)
}
