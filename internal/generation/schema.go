package generation

import (
	"maps"

	"github.com/abhisek/eternal/internal/llm"
)

// ProfileSchema defines the JSON schema for persona profile generation.
// Vendors are steered by the region and gender enums, but replies are
// accepted with any string there and normalized by DecodeProfile.
var ProfileSchema = &llm.Schema{
	Name:        PurposeProfile,
	Description: "Concise profile of a historical figure for the chat sidebar",
	Definition:  profileDefinition,
	Accept:      withoutEnums(profileDefinition, "region", "gender"),
}

var profileDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{
			"type":        "string",
			"description": "Full name of the historical figure (e.g. Qin Shi Huang)",
		},
		"title": map[string]any{
			"type":        "string",
			"description": "Main title (e.g. First Emperor of Qin)",
		},
		"era": map[string]any{
			"type":        "string",
			"description": "The era they lived in (e.g. Qin Dynasty (221-206 BC))",
		},
		"bio_quote": map[string]any{
			"type":        "string",
			"description": "A short, impactful first-person quote describing who they are",
		},
		"key_achievements": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "3-4 short bullet points of their key historical achievements",
		},
		"region": map[string]any{
			"type":        "string",
			"enum":        []any{"EASTERN", "WESTERN", "MIDDLE_EASTERN", "OTHER"},
			"description": "Cultural background for visual style selection",
		},
		"gender": map[string]any{
			"type":        "string",
			"enum":        []any{"MALE", "FEMALE"},
			"description": "Gender for avatar selection",
		},
	},
	"required":             []any{"name", "title", "era", "bio_quote", "key_achievements", "region", "gender"},
	"additionalProperties": false,
}

// TurnSchema defines the JSON schema for one orchestrated conversation turn.
var TurnSchema = &llm.Schema{
	Name:        PurposeTurn,
	Description: "In-character reply plus teacher analytics for one turn",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"persona_name": map[string]any{
				"type":        "string",
				"description": "The name of the historical figure adopted",
			},
			"persona_style": map[string]any{
				"type":        "string",
				"description": "Brief description of the speaking style",
			},
			"reply": map[string]any{
				"type":        "string",
				"description": "The first-person response to the student",
			},
			"emotion_tag": map[string]any{
				"type":        "string",
				"description": "The detected emotion of the student (e.g. curious, confused)",
			},
			"follow_up_question": map[string]any{
				"type":        "string",
				"description": "A suggested follow-up question to keep engagement",
			},
			"teacher_note": map[string]any{
				"type":        "string",
				"description": "A note for the teacher explaining the pedagogical value of this interaction",
			},
			"student_focus": map[string]any{
				"type":        "string",
				"description": "What the student seems most interested in",
			},
			"knowledge_covered": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "List of key historical facts covered in the reply",
			},
			"possible_confusion": map[string]any{
				"type":        "string",
				"description": "Areas where the student might still be confused",
			},
			"emotion_guess": map[string]any{
				"type":        "string",
				"description": "Internal guess of student emotion for analytics",
			},
		},
		"required": []any{
			"persona_name", "persona_style", "reply", "emotion_tag",
			"follow_up_question", "teacher_note", "student_focus",
			"knowledge_covered", "possible_confusion", "emotion_guess",
		},
		"additionalProperties": false,
	},
}

// withoutEnums returns a copy of def whose named properties accept any
// value of their type.
func withoutEnums(def map[string]any, fields ...string) map[string]any {
	props, _ := def["properties"].(map[string]any)
	relaxed := maps.Clone(props)
	for _, f := range fields {
		if p, ok := relaxed[f].(map[string]any); ok {
			p = maps.Clone(p)
			delete(p, "enum")
			relaxed[f] = p
		}
	}
	out := maps.Clone(def)
	out["properties"] = relaxed
	return out
}
