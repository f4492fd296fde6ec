// Package ai wraps the OpenAI chat API for document analysis.
package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned when no API key is configured.
var ErrUnavailable = fmt.Errorf("AI analysis is not configured")

// Analyzer answers questions about lease and maintenance documents.
type Analyzer struct {
	client *openai.Client
	model  string
}

// NewAnalyzer creates an analyzer. An empty API key yields an analyzer
// whose calls return ErrUnavailable.
func NewAnalyzer(apiKey string) *Analyzer {
	a := &Analyzer{model: openai.GPT4oMini}
	if apiKey != "" {
		a.client = openai.NewClient(apiKey)
	}
	return a
}

// Available reports whether the analyzer can make API calls.
func (a *Analyzer) Available() bool {
	return a.client != nil
}

const systemPrompt = `You are an assistant for property managers. Analyze the
provided document (a lease, invoice, inspection report, or similar) and answer
concisely. Surface key dates, amounts, parties, and obligations.`

// AnalyzeDocument sends the document text and an optional question to
// the model and returns its answer.
func (a *Analyzer) AnalyzeDocument(ctx context.Context, documentText, question string) (string, error) {
	if !a.Available() {
		return "", ErrUnavailable
	}
	if strings.TrimSpace(documentText) == "" {
		return "", fmt.Errorf("documentText is required")
	}

	userPrompt := "Document:\n\n" + documentText
	if question != "" {
		userPrompt += "\n\nQuestion: " + question
	} else {
		userPrompt += "\n\nSummarize this document."
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("analyzing document: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}

	return resp.Choices[0].Message.Content, nil
}
