package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/remi-assist/remi-backend/internal/store"
)

// eastAfricaTime is the fixed timezone the assistant renders dates in.
var eastAfricaTime = time.FixedZone("EAT", 3*60*60)

// PromptTemplate configures how the system prompt is assembled. The persona
// text, rule list, and whether general (non-academic) questions are answered
// are the only points of variation.
type PromptTemplate struct {
	Persona       string
	Rules         []string
	AnswerGeneral bool
}

func DefaultPromptTemplate() PromptTemplate {
	return PromptTemplate{
		Persona: "You are REMI, a friendly academic assistant for university students. " +
			"You help students keep track of their timetable, exams, GPA, and course units.",
		Rules: []string{
			"Never make up academic data that is not provided above.",
			"If a data category is empty, tell the student that information is unavailable.",
			"Keep answers to 1-3 paragraphs.",
			"Keep the tone warm and encouraging.",
		},
	}
}

// PromptData carries everything the template embeds into the system prompt.
type PromptData struct {
	Now         time.Time
	Profile     map[string]any
	Timetable   map[string]any
	Exams       []any
	GPA         map[string]any
	CourseUnits map[string]any
	ChatHistory []store.ChatMessage
}

func (t PromptTemplate) Build(data PromptData) string {
	var b strings.Builder

	b.WriteString(t.Persona)
	b.WriteString("\n\n")

	if t.AnswerGeneral {
		b.WriteString("Use the student's academic data below when answering academic questions. You may also answer general questions.\n\n")
	} else {
		b.WriteString("Use the student's academic data below only for academic questions.\n\n")
	}

	local := data.Now.In(eastAfricaTime)
	fmt.Fprintf(&b, "Current date and time: %s (East Africa Time, UTC+3)\n", local.Format("Monday, 2 January 2006, 15:04"))
	fmt.Fprintf(&b, "ISO timestamp: %s\n\n", local.Format(time.RFC3339))

	writeSection(&b, "STUDENT PROFILE", data.Profile)
	writeSection(&b, "TIMETABLE", data.Timetable)
	writeSection(&b, "UPCOMING EXAMS", data.Exams)
	writeSection(&b, "GPA DATA", data.GPA)
	writeSection(&b, "COURSE UNITS", data.CourseUnits)
	writeSection(&b, "RECENT CONVERSATION", data.ChatHistory)

	b.WriteString("Rules:\n")
	for _, rule := range t.Rules {
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteString("\n")
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, value any) {
	serialized, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		serialized = []byte("{}")
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, serialized)
}
