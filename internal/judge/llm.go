package judge

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/srcmap/evalkit/internal/dataset"
	"github.com/srcmap/evalkit/internal/srcmap"
)

const (
	judgeMaxTokens      = 256
	maxContextCardChars = 1200
)

var scorePattern = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

// chatClient is the slice of the OpenAI client the judge needs. DeepSeek and
// Gemini expose the same chat-completions surface.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type llmJudge struct {
	name   string
	client chatClient
	model  string
}

func newLLMJudge(name string, client chatClient, model string) (Judge, error) {
	if client == nil {
		return nil, errors.New("judge client is nil")
	}
	return &llmJudge{name: name, client: client, model: model}, nil
}

func (j *llmJudge) Name() string { return j.name }

// ScoreCase grades the retrieved cards on context precision (are the
// contexts relevant to the question?) and context recall (do they cover the
// ground truth answer?). Each metric fails independently; a failed metric
// stays nil and the first error is reported to the caller for logging.
func (j *llmJudge) ScoreCase(ctx context.Context, tc dataset.TestCase, cards []srcmap.Card) (Scores, error) {
	contexts := buildContexts(cards)
	if contexts == "" {
		return Scores{}, nil
	}

	var scores Scores
	var firstErr error

	precision, err := j.scorePrompt(ctx,
		"You are a strict evaluator. Return only a single number between 0 and 1. "+
			"0 means the retrieved contexts are unrelated to the question. "+
			"1 means every context is relevant to answering it.",
		fmt.Sprintf("Question:\n%s\n\nRetrieved contexts:\n%s\n\nScore (0-1):", tc.Query, contexts))
	if err != nil {
		firstErr = fmt.Errorf("context precision: %w", err)
	} else {
		scores.ContextPrecision = &precision
	}

	recall, err := j.scorePrompt(ctx,
		"You are a strict evaluator. Return only a single number between 0 and 1. "+
			"0 means the retrieved contexts cover none of the reference answer. "+
			"1 means they cover all of its key facts.",
		fmt.Sprintf("Reference answer:\n%s\n\nRetrieved contexts:\n%s\n\nScore (0-1):", tc.GroundTruth, contexts))
	if err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("context recall: %w", err)
		}
	} else {
		scores.ContextRecall = &recall
	}

	return scores, firstErr
}

func (j *llmJudge) scorePrompt(ctx context.Context, system, user string) (float64, error) {
	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: j.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   judgeMaxTokens,
		Temperature: 0,
	})
	if err != nil {
		return 0, err
	}
	if len(resp.Choices) == 0 {
		return 0, errors.New("empty judge response")
	}
	return parseScore(resp.Choices[0].Message.Content)
}

// buildContexts concatenates card title and content, one block per card,
// truncating oversized card bodies.
func buildContexts(cards []srcmap.Card) string {
	var blocks []string
	for _, c := range cards {
		content := c.Content
		if len(content) > maxContextCardChars {
			content = content[:maxContextCardChars]
		}
		block := strings.TrimSpace(c.Title + "\n" + content)
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func parseScore(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, errors.New("empty judge response")
	}

	match := scorePattern.FindString(trimmed)
	if match == "" {
		return 0, fmt.Errorf("no numeric score in response: %q", trimmed)
	}

	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid score %q: %w", match, err)
	}

	if val < 0 {
		return 0, fmt.Errorf("score out of range: %v", val)
	}
	if val > 1 {
		if val <= 100 && strings.Contains(trimmed, "%") {
			return val / 100, nil
		}
		return 0, fmt.Errorf("score out of range: %v", val)
	}
	return val, nil
}
