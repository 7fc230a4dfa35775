package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PavaniTiago/ai-money-quiz-api/internal/config"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/credentials"
	"github.com/PavaniTiago/ai-money-quiz-api/internal/domain/entities"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("model returned an empty completion")

// ReportGenerator writes a free-text report from quiz answers.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, answers map[string]string) (string, error)
}

// XAIGenerator talks to xAI through its OpenAI-compatible chat API.
type XAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewXAIGenerator returns nil when XAI_API_KEY does not classify as valid.
func NewXAIGenerator(cfg config.AIConfig) *XAIGenerator {
	if !credentials.Classify(cfg.XAIAPIKey, credentials.XAIAPIKey).IsValid() {
		return nil
	}

	clientConfig := openai.DefaultConfig(cfg.XAIAPIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &XAIGenerator{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

func (g *XAIGenerator) GenerateReport(ctx context.Context, answers map[string]string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(answers)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("xai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

const promptHeader = `You are an expert AI business coach. The user has just completed a quiz called "The AI Money Test" with the goal of understanding how they can use AI tools to make money based on their personality, skills, time, and risk tolerance.

Based on their answers below, write a clear, motivating personal report (400–600 words) that includes:

1. A monthly income potential in USD (based on similar personas).
2. What type of AI income model fits them best (e.g. content, reselling, productized service, affiliate, expert tools, etc.).
3. Strengths and weak spots in their approach or mindset.
4. An optional motivational name or badge (like "The Quiet Builder" or "The Dopamine Hustler").
5. One AI idea they can implement in 48 hours.

User answers:
`

const promptFooter = `

Be precise and human. Avoid fluff. Use concrete examples. Assume the user is smart but early in their journey.`

// BuildPrompt lists the answers one per line in key order.
func BuildPrompt(answers map[string]string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for i, key := range entities.SortedAnswerKeys(answers) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", key, answers[key])
	}
	b.WriteString(promptFooter)
	return b.String()
}
