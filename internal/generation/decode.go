package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/eternal/internal/domain"
	"github.com/abhisek/eternal/internal/llm"
)

// DecodeProfile validates raw against ProfileSchema and decodes it. Every
// string field and the achievements list must be non-empty; no partial
// profile is ever returned.
func DecodeProfile(raw json.RawMessage) (*domain.Profile, error) {
	if err := llm.ValidateContent(ProfileSchema, raw); err != nil {
		return nil, err
	}

	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	for field, v := range map[string]string{
		"name":      p.Name,
		"title":     p.Title,
		"era":       p.Era,
		"bio_quote": p.BioQuote,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("profile field %q is empty", field)
		}
	}
	if len(p.KeyAchievements) == 0 {
		return nil, fmt.Errorf("profile field %q is empty", "key_achievements")
	}

	p.Region = domain.ParseRegion(string(p.Region))
	p.Gender = domain.ParseGender(string(p.Gender))
	return &p, nil
}

// DecodeTurn validates raw against TurnSchema and decodes it. A missing
// knowledge_covered list is rejected by the schema; an empty one is kept.
func DecodeTurn(raw json.RawMessage) (*domain.TurnResponse, error) {
	if err := llm.ValidateContent(TurnSchema, raw); err != nil {
		return nil, err
	}

	var r domain.TurnResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse turn: %w", err)
	}
	if strings.TrimSpace(r.Reply) == "" {
		return nil, fmt.Errorf("turn field %q is empty", "reply")
	}
	if r.KnowledgeCovered == nil {
		r.KnowledgeCovered = []string{}
	}
	return &r, nil
}
