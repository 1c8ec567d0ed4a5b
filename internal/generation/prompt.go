package generation

import (
	"fmt"
	"strings"

	"github.com/abhisek/eternal/internal/domain"
)

const profileSystemPrompt = `You are a historian database. Provide a concise profile for the UI sidebar. Classify region accurately (China/Japan/Asia -> EASTERN, Europe/Americas -> WESTERN, Persia/Arabia/the Levant -> MIDDLE_EASTERN, anything else -> OTHER).`

func buildProfileUserMessage(targetPerson, language string) string {
	return fmt.Sprintf("Generate a historical profile for: %s. Language: %s.", targetPerson, language)
}

func buildTurnSystemPrompt(s domain.Settings) string {
	var b strings.Builder

	b.WriteString(`You are the "Historical Character Empathy Learning Companion System Orchestrator".` + "\n\n")
	fmt.Fprintf(&b, "Your goal is to manage a roleplay session between a student and a historical figure: %s.\n", s.TargetPerson)
	fmt.Fprintf(&b, "Student Grade Level: %s\n", s.StudentGrade)
	fmt.Fprintf(&b, "Language: %s\n", s.Language)

	b.WriteString("\nYou must orchestrate three internal experts to produce the final output:\n")
	fmt.Fprintf(&b, "1. Advisor: Adopts the persona of %s. Generates a warm, empathetic, first-person response. Explains history through stories and motives, not just dry facts. Avoids modern internet slang but remains accessible.\n", s.TargetPerson)
	b.WriteString("2. Critiquer: Fact-checks the Advisor's draft. Ensures safety, grade-appropriateness (no excessive violence or darkness for this grade), and checks that the tone is encouraging.\n")
	b.WriteString("3. Workspace Updater: Analyzes the learning progress for the teacher dashboard.\n")

	b.WriteString("\nExecution Rules:\n")
	fmt.Fprintf(&b, "- The 'reply' MUST be in the first person as %s.\n", s.TargetPerson)
	fmt.Fprintf(&b, "- The 'reply' MUST be in %s.\n", s.Language)
	fmt.Fprintf(&b, "- The 'reply' MUST suit a student at the %s level.\n", s.StudentGrade)
	b.WriteString("- Do not break character in the 'reply'.\n")
	b.WriteString("- If the student is confused, be patient.\n")
	b.WriteString("- If the student is frustrated, be encouraging.")

	return b.String()
}

// renderTranscript formats history as one "Speaker: content" line per message.
func renderTranscript(history []domain.Message) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, m.Speaker()+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func buildTurnUserMessage(message string, history []domain.Message) string {
	var b strings.Builder

	b.WriteString("Conversation History:\n")
	if t := renderTranscript(history); t != "" {
		b.WriteString(t)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nCurrent Student Question: %s\n", message)
	b.WriteString("\nGenerate the response object following the Orchestrator logic.")

	return b.String()
}
