package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Grade options offered on the setup form.
const (
	GradeElementary = "Elementary (Grade 1-5)"
	GradeMiddle     = "Middle School (Grade 6-8)"
	GradeHigh       = "High School (Grade 9-12)"
	GradeUniversity = "University"
)

// Grades lists the supported student grade levels in display order.
var Grades = []string{GradeElementary, GradeMiddle, GradeHigh, GradeUniversity}

// Language is a supported reply language with its display label.
type Language struct {
	Tag   string
	Label string
}

// Languages lists the supported reply languages in display order.
var Languages = []Language{
	{Tag: "English", Label: "English"},
	{Tag: "zh-CN", Label: "Simplified Chinese (zh-CN)"},
	{Tag: "zh-TW", Label: "Traditional Chinese (zh-TW)"},
	{Tag: "Spanish", Label: "Spanish"},
	{Tag: "French", Label: "French"},
}

// Settings configures a simulation session. A session's settings are
// replaced wholesale when a new session starts.
type Settings struct {
	TargetPerson string `yaml:"target_person"`
	StudentGrade string `yaml:"student_grade"`
	Language     string `yaml:"language"`
}

// DefaultSettings returns the settings the setup form opens with.
func DefaultSettings() Settings {
	return Settings{
		TargetPerson: "Qin Shi Huang",
		StudentGrade: GradeMiddle,
		Language:     "English",
	}
}

// ValidationError reports caller input that cannot be used.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the settings against the supported option sets.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.TargetPerson) == "" {
		return &ValidationError{Field: "target person", Reason: "must not be empty"}
	}
	if !slices.Contains(Grades, s.StudentGrade) {
		return &ValidationError{Field: "student grade", Reason: fmt.Sprintf("unsupported value %q", s.StudentGrade)}
	}
	if !IsSupportedLanguage(s.Language) {
		return &ValidationError{Field: "language", Reason: fmt.Sprintf("unsupported value %q", s.Language)}
	}
	return nil
}

// IsSupportedLanguage reports whether tag is one of Languages.
func IsSupportedLanguage(tag string) bool {
	return slices.ContainsFunc(Languages, func(l Language) bool { return l.Tag == tag })
}
