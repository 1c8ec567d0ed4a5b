package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"defaults", func(*Settings) {}, ""},
		{"blank person", func(s *Settings) { s.TargetPerson = "   " }, "target person"},
		{"unknown grade", func(s *Settings) { s.StudentGrade = "Kindergarten" }, "student grade"},
		{"unknown language", func(s *Settings) { s.Language = "Klingon" }, "language"},
		{"chinese", func(s *Settings) { s.Language = "zh-TW" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %T", err)
			assert.Equal(t, tt.wantErr, vErr.Field)
		})
	}
}

func TestFallbackProfile_Deterministic(t *testing.T) {
	a := FallbackProfile("Cleopatra")
	b := FallbackProfile("Cleopatra")
	assert.Equal(t, a, b)
	assert.Equal(t, "Cleopatra", a.Name)
	assert.Equal(t, RegionWestern, a.Region)
	assert.Equal(t, GenderMale, a.Gender)
	assert.Equal(t, []string{"History", "Leadership", "Legacy"}, a.KeyAchievements)

	a.KeyAchievements[0] = "changed"
	assert.Equal(t, "History", FallbackProfile("Cleopatra").KeyAchievements[0])
}

func TestParseRegionAndGender_FailClosed(t *testing.T) {
	assert.Equal(t, RegionMiddleEastern, ParseRegion("MIDDLE_EASTERN"))
	assert.Equal(t, RegionOther, ParseRegion("NORDIC"))
	assert.Equal(t, RegionOther, ParseRegion(""))
	assert.Equal(t, GenderFemale, ParseGender("FEMALE"))
	assert.Equal(t, GenderMale, ParseGender("UNKNOWN"))
}

func TestProfilePortraitKey(t *testing.T) {
	tests := []struct {
		profile *Profile
		want    string
	}{
		{&Profile{Region: RegionEastern, Gender: GenderFemale}, "EASTERN_FEMALE"},
		{&Profile{Region: RegionOther, Gender: GenderFemale}, "WESTERN_FEMALE"},
		{&Profile{Region: "ATLANTIS", Gender: "?"}, "WESTERN_MALE"},
		{nil, "WESTERN_MALE"},
	}
	for _, tt := range tests {
		if got := tt.profile.PortraitKey(); got != tt.want {
			t.Errorf("PortraitKey() = %q, want %q", got, tt.want)
		}
	}
}

func TestClone_DoesNotAlias(t *testing.T) {
	p := &Profile{Name: "Ada", KeyAchievements: []string{"Engine notes"}}
	c := p.Clone()
	c.KeyAchievements[0] = "x"
	assert.Equal(t, "Engine notes", p.KeyAchievements[0])

	r := &TurnResponse{Reply: "hi", KnowledgeCovered: []string{"a", "b"}}
	rc := r.Clone()
	rc.KnowledgeCovered[1] = "z"
	assert.Equal(t, []string{"a", "b"}, r.KnowledgeCovered)

	var nilProfile *Profile
	assert.Nil(t, nilProfile.Clone())
}

func TestNewMessage(t *testing.T) {
	a := NewMessage(RoleUser, "hello")
	b := NewMessage(RoleUser, "hello")
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.Equal(t, "Student", a.Speaker())
	assert.Equal(t, "Historical Figure", NewMessage(RoleAssistant, "x").Speaker())
}
