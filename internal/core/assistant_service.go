package core

import (
	"context"
	"fmt"
	"time"

	"github.com/remi-assist/remi-backend/internal/store"
)

// profileFields is the whitelist of profile attributes echoed back to the
// caller and embedded in the prompt. Anything else in the stored document is
// dropped.
var profileFields = []string{"nickname", "course", "current_semester", "total_semesters"}

type AssistantService struct {
	recordStore store.RecordStore
	completer   CompletionClient
	template    PromptTemplate
}

func NewAssistantService(recordStore store.RecordStore, completer CompletionClient, template PromptTemplate) *AssistantService {
	return &AssistantService{
		recordStore: recordStore,
		completer:   completer,
		template:    template,
	}
}

// AskResult is the answer plus the grounding data the answer was based on.
type AskResult struct {
	Answer      string         `json:"answer"`
	Profile     map[string]any `json:"profile"`
	Timetable   map[string]any `json:"timetable"`
	Exams       []any          `json:"exams"`
	GPA         map[string]any `json:"gpa"`
	CourseUnits map[string]any `json:"courseUnits"`
}

// Ask runs the full query pipeline: gather the user's records, build the
// system prompt, and call the completion client. Record fetches never fail
// (the store defaults them); only the completion call can return an error.
func (s *AssistantService) Ask(ctx context.Context, userID, query string, timetableOverride map[string]any) (*AskResult, error) {
	profile := s.recordStore.GetUserProfile(ctx, userID)

	// A caller-supplied timetable takes precedence over the stored one.
	timetable := timetableOverride
	if timetable == nil {
		timetable = s.recordStore.GetTimetable(ctx, userID)
	}

	exams := s.recordStore.GetExams(ctx, userID)
	gpa := s.recordStore.GetGPAData(ctx, userID)
	units := s.recordStore.GetCourseUnits(ctx, userID)
	history := s.recordStore.GetChatHistory(ctx, userID)

	reduced := reduceProfile(profile)

	prompt := s.template.Build(PromptData{
		Now:         time.Now(),
		Profile:     reduced,
		Timetable:   timetable,
		Exams:       exams,
		GPA:         gpa,
		CourseUnits: units,
		ChatHistory: history,
	})

	answer, err := s.completer.Complete(ctx, prompt, query)
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &AskResult{
		Answer:      answer,
		Profile:     reduced,
		Timetable:   timetable,
		Exams:       exams,
		GPA:         gpa,
		CourseUnits: units,
	}, nil
}

// reduceProfile keeps only the whitelisted profile fields. A nil profile
// reduces to an empty map.
func reduceProfile(profile map[string]any) map[string]any {
	reduced := map[string]any{}
	for _, field := range profileFields {
		if value, ok := profile[field]; ok {
			reduced[field] = value
		}
	}
	return reduced
}
