package domain

import "slices"

// TurnResponse is the structured result of one conversational turn: the
// in-character reply plus the analytics shown on the teacher dashboard.
type TurnResponse struct {
	PersonaName       string   `json:"persona_name"`
	PersonaStyle      string   `json:"persona_style"`
	Reply             string   `json:"reply"`
	EmotionTag        string   `json:"emotion_tag"`
	EmotionGuess      string   `json:"emotion_guess"`
	FollowUpQuestion  string   `json:"follow_up_question"`
	TeacherNote       string   `json:"teacher_note"`
	StudentFocus      string   `json:"student_focus"`
	KnowledgeCovered  []string `json:"knowledge_covered"`
	PossibleConfusion string   `json:"possible_confusion"`
}

// Clone returns a deep copy of r.
func (r *TurnResponse) Clone() *TurnResponse {
	if r == nil {
		return nil
	}
	c := *r
	c.KnowledgeCovered = slices.Clone(r.KnowledgeCovered)
	return &c
}
