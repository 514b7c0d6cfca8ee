package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/remi-assist/remi-backend/internal/store"
)

func samplePromptData() PromptData {
	return PromptData{
		Now:     time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		Profile: map[string]any{"nickname": "Sam", "course": "CS"},
		Timetable: map[string]any{
			"monday": []any{"CS101 09:00"},
		},
		Exams:       []any{map[string]any{"unit": "CS101", "date": "2025-09-15"}},
		GPA:         map[string]any{"cgpa": 3.4},
		CourseUnits: map[string]any{"CS101": "Intro to Programming"},
		ChatHistory: []store.ChatMessage{
			{Message: "Hi REMI", IsUser: true, Timestamp: time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)},
		},
	}
}

func TestBuildContainsAllDataSections(t *testing.T) {
	prompt := DefaultPromptTemplate().Build(samplePromptData())

	for _, section := range []string{
		"STUDENT PROFILE:",
		"TIMETABLE:",
		"UPCOMING EXAMS:",
		"GPA DATA:",
		"COURSE UNITS:",
		"RECENT CONVERSATION:",
	} {
		assert.Contains(t, prompt, section)
	}

	assert.Contains(t, prompt, `"nickname": "Sam"`)
	assert.Contains(t, prompt, `"cgpa": 3.4`)
	assert.Contains(t, prompt, "Hi REMI")
}

func TestBuildRendersEastAfricaTime(t *testing.T) {
	// 09:00 UTC is 12:00 in UTC+3.
	prompt := DefaultPromptTemplate().Build(samplePromptData())

	assert.Contains(t, prompt, "Monday, 1 September 2025, 12:00 (East Africa Time, UTC+3)")
	assert.Contains(t, prompt, "ISO timestamp: 2025-09-01T12:00:00+03:00")
}

func TestBuildListsRules(t *testing.T) {
	template := DefaultPromptTemplate()
	prompt := template.Build(samplePromptData())

	for _, rule := range template.Rules {
		assert.Contains(t, prompt, "- "+rule)
	}
}

func TestBuildAcademicOnlyByDefault(t *testing.T) {
	prompt := DefaultPromptTemplate().Build(samplePromptData())

	assert.Contains(t, prompt, "only for academic questions")
	assert.NotContains(t, prompt, "general questions")
}

func TestBuildAnswerGeneralVariant(t *testing.T) {
	template := DefaultPromptTemplate()
	template.AnswerGeneral = true

	prompt := template.Build(samplePromptData())

	assert.Contains(t, prompt, "You may also answer general questions.")
}

func TestBuildEmptyDataSerializesAsDefaults(t *testing.T) {
	prompt := DefaultPromptTemplate().Build(PromptData{
		Now:         time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC),
		Profile:     map[string]any{},
		Timetable:   map[string]any{},
		Exams:       []any{},
		GPA:         map[string]any{},
		CourseUnits: map[string]any{},
		ChatHistory: []store.ChatMessage{},
	})

	assert.Contains(t, prompt, "GPA DATA:\n{}")
	assert.Contains(t, prompt, "UPCOMING EXAMS:\n[]")
	assert.False(t, strings.Contains(prompt, "null"))
}
