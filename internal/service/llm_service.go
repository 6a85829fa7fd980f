package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"
	"github.com/ChaandiniV/PeriCareAIBot/internal/search"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// remoteMatchScore is the confidence assigned to every candidate the
// provider selects. It sits below the strong threshold so a remote-only
// match is answered conversationally, not as a verbatim structured record.
const remoteMatchScore = 0.75

var numberPattern = regexp.MustCompile(`\d+`)

// LLMService is the GigaChat-backed generative-text provider. It is the only
// component that talks to the network; every call is bounded by the
// configured timeout and its failures are expected to be swallowed by the
// caller's degrade path.
type LLMService struct {
	client           *gigago.Client
	model            *gigago.GenerativeModel
	timeout          time.Duration
	maxPromptRecords int
	logger           *zap.Logger
}

func buildSystemInstruction() string {
	return `You are a warm, supportive postpartum health assistant helping new mothers.

Principles:
- Be concise, encouraging, and empathetic, like a knowledgeable friend.
- Ground every answer in the knowledge-base context you are given; do not invent medical facts.
- Always encourage consulting healthcare providers for specific medical advice.
- If a question is unrelated to postpartum health, gently redirect to postpartum topics.
- Never diagnose. For anything urgent, point to emergency services.`
}

func NewLLMService(cfg *config.GigaChatConfig, maxPromptRecords int, logger *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GigaChat API key not found, set the GIGACHAT_API_KEY environment variable")
	}

	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	return &LLMService{
		client:           client,
		model:            model,
		timeout:          cfg.Timeout,
		maxPromptRecords: maxPromptRecords,
		logger:           logger,
	}, nil
}

// SelectCandidates asks the provider to pick the records matching the query
// from an enumerated (question, keywords) list. The record set is truncated
// to maxPromptRecords to bound the request size. The response is parsed
// defensively: any non-numeric or out-of-range token is dropped, and an
// answer with nothing usable yields an empty list rather than an error.
func (s *LLMService) SelectCandidates(ctx context.Context, query string, records []models.Record, topK int) ([]search.Candidate, error) {
	if len(records) == 0 || topK <= 0 {
		return nil, nil
	}
	bounded := records
	if s.maxPromptRecords > 0 && len(bounded) > s.maxPromptRecords {
		bounded = bounded[:s.maxPromptRecords]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Find the %d most relevant questions for: %q\n\nQuestions:\n", topK, query)
	for i, rec := range bounded {
		fmt.Fprintf(&b, "%d. %s (Keywords: %s)\n", i+1, rec.Question, rec.Keywords)
	}
	fmt.Fprintf(&b, "\nReturn only the question numbers (1-%d) that best match the user's query about postpartum health.\n", len(bounded))
	b.WriteString("Focus on questions that directly address the user's concern.\n")
	b.WriteString("Format: just the numbers separated by commas, like: 5, 12, 8\n")

	text, err := s.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}

	return parseSelectedIndices(text, bounded, topK), nil
}

// parseSelectedIndices extracts 1-based record numbers from free-form
// provider output and maps them to candidates at the fixed remote
// confidence.
func parseSelectedIndices(text string, records []models.Record, topK int) []search.Candidate {
	var out []search.Candidate
	for _, token := range numberPattern.FindAllString(text, -1) {
		if len(out) >= topK {
			break
		}
		n, err := strconv.Atoi(token)
		if err != nil || n < 1 || n > len(records) {
			continue
		}
		out = append(out, search.Candidate{Record: records[n-1], Score: remoteMatchScore})
	}
	return out
}

// GenerateText produces a free-form completion for the prompt.
func (s *LLMService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt)
}

func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
