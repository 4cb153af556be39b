package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abditahlilabdinur71-create/Smart-Expense/internal/core"
)

const requestTimeout = 30 * time.Second

// OpenAIClient implements Categorizer and InsightGenerator against the
// OpenAI chat completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Categorize asks the model for exactly one category name from the allowed
// list. Answers outside the list are treated as failures so the caller falls
// back rather than persisting an invented category.
func (c *OpenAIClient) Categorize(ctx context.Context, description string, categories []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		`Classify this personal-finance transaction description into exactly one category.

Allowed categories: %s

Rules:
- Answer with the category name only, nothing else.
- Never invent a category outside the list.
- If unsure, answer %q.

Description: %s`,
		strings.Join(categories, ", "), core.FallbackCategory, description)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   16,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	for _, cat := range categories {
		if strings.EqualFold(answer, cat) {
			return cat, nil
		}
	}

	slog.WarnContext(ctx, "Model answered outside the allowed category list",
		"answer", answer,
		"description", description)
	return "", fmt.Errorf("answer %q not in allowed categories", answer)
}

// GenerateInsights asks the model for short advisory text about the current
// spending picture.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, summary core.SummaryData, budgets []core.Budget) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Currency: %s\nTotal income: %s\nTotal expenses: %s\nNet savings: %s\n",
		summary.Currency, summary.TotalIncome, summary.TotalExpense, summary.NetSavings)
	if len(summary.Breakdown) > 0 {
		sb.WriteString("Spending by category:\n")
		for _, ca := range summary.Breakdown {
			fmt.Fprintf(&sb, "- %s: %s\n", ca.Name, ca.Amount)
		}
	}
	if len(budgets) > 0 {
		sb.WriteString("Budgets:\n")
		for _, b := range budgets {
			fmt.Fprintf(&sb, "- %s: %s\n", b.Category, b.Amount)
		}
	}

	prompt := fmt.Sprintf(
		`You are a personal finance assistant. Based on the data below, give 2-3 short,
practical observations about spending habits and budget usage. Plain text, no
markdown, no preamble.

%s`, sb.String())

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.4,
		MaxTokens:   300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
