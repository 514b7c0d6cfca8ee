package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultModelName = "gemini-1.5-flash-latest"

	completionTemperature = 0.3
	completionMaxTokens   = 500
)

// CompletionClient sends one system+user exchange to a hosted model and
// returns the model's answer text.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userQuery string) (string, error)
}

type LLMService struct {
	client *genai.Client
}

func NewLLMService(apiKey string) *LLMService {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		log.Fatalf("Failed to create GenAI client: %v", err)
	}

	return &LLMService{
		client: client,
	}
}

func (s *LLMService) Close() {
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			log.Printf("Error closing GenAI client: %v", err)
		}
	}
}

// Complete runs a single completion with fixed sampling parameters. Failures
// are returned to the caller; the handler decides how to surface them.
func (s *LLMService) Complete(ctx context.Context, systemPrompt, userQuery string) (string, error) {
	model := s.client.GenerativeModel(defaultModelName)

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	temp := float32(completionTemperature)
	maxTokens := int32(completionMaxTokens)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:     &temp,
		MaxOutputTokens: &maxTokens,
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userQuery))
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("completion response contained no candidates")
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			answer.WriteString(string(txt))
		} else {
			log.Printf("Completion response part was not text: %T", part)
		}
	}

	if answer.Len() == 0 {
		return "", fmt.Errorf("completion response contained no text parts")
	}

	return answer.String(), nil
}
