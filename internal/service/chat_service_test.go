package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ChaandiniV/PeriCareAIBot/internal/knowledge"
	"github.com/ChaandiniV/PeriCareAIBot/internal/models"
	"github.com/ChaandiniV/PeriCareAIBot/internal/search"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct {
	selectFn     func(ctx context.Context, query string, records []models.Record, topK int) ([]search.Candidate, error)
	generateFn   func(ctx context.Context, prompt string) (string, error)
	selectCalled bool
}

func (p *stubProvider) SelectCandidates(ctx context.Context, query string, records []models.Record, topK int) ([]search.Candidate, error) {
	p.selectCalled = true
	if p.selectFn != nil {
		return p.selectFn(ctx, query, records, topK)
	}
	return nil, nil
}

func (p *stubProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	if p.generateFn != nil {
		return p.generateFn(ctx, prompt)
	}
	return "", nil
}

func testSearchConfig() *config.SearchConfig {
	return &config.SearchConfig{
		TopK:             3,
		StrongThreshold:  0.7,
		MediumThreshold:  0.3,
		MaxPromptRecords: 200,
	}
}

func testStore(t *testing.T) *knowledge.Store {
	t.Helper()
	return knowledge.NewStore([]models.Record{
		{
			Question:         "How long will postpartum bleeding last?",
			Category:         "Physical Recovery",
			Keywords:         "lochia, bleeding duration",
			ShortAnswer:      "Typically 4-6 weeks.",
			LongAnswer:       "Lochia starts heavy and red, then tapers off.",
			WhenToSeekHelp:   "Soaking a pad in under an hour.",
			Source:           "Mayo Clinic – https://mayoclinic.org/x",
			RelatedQuestions: "When does lochia stop?; Is clotting normal?",
		},
		{
			Question:    "Is swelling normal after giving birth?",
			Category:    "Physical Recovery",
			Keywords:    "edema, fluid",
			ShortAnswer: "Mild swelling is common.",
			LongAnswer:  "It fades within a week.",
		},
	}, zap.NewNop())
}

func newTestChatService(t *testing.T, provider *stubProvider) *ChatService {
	t.Helper()
	return NewChatService(testStore(t), provider, testSearchConfig(), zap.NewNop())
}

func TestBandThresholds(t *testing.T) {
	s := newTestChatService(t, &stubProvider{})

	assert.Equal(t, bandNoMatch, s.band(0, false))
	assert.Equal(t, bandWeak, s.band(0.29, true))
	assert.Equal(t, bandMedium, s.band(0.3, true))
	assert.Equal(t, bandMedium, s.band(0.65, true))
	assert.Equal(t, bandStrong, s.band(0.7, true))
	assert.Equal(t, bandStrong, s.band(2.0, true))
}

func TestAnswerStrongMatchIsStructured(t *testing.T) {
	provider := &stubProvider{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			t.Fatal("generator must not be invoked for a strong match")
			return "", nil
		},
	}
	s := newTestChatService(t, provider)

	text, meta := s.Answer(context.Background(), "How long will postpartum bleeding last?")

	assert.Contains(t, text, "**Quick Answer:** Typically 4-6 weeks.")
	assert.False(t, meta.Conversational)
	assert.Equal(t, float64(search.ScoreExactMatch), meta.ConfidenceScore)
	assert.Equal(t, "Physical Recovery", meta.Category)
	assert.Equal(t, []string{"When does lochia stop?", "Is clotting normal?"}, meta.RelatedQuestions)
	assert.Equal(t, "Soaking a pad in under an hour.", meta.WhenToSeekHelp)
	// A strong lexical match never consults the provider for candidates.
	assert.False(t, provider.selectCalled)
}

func TestAnswerMediumMatchIsConversational(t *testing.T) {
	provider := &stubProvider{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "Is swelling normal after giving birth?")
			return "A warm generated reply.", nil
		},
	}
	s := newTestChatService(t, provider)

	text, meta := s.Answer(context.Background(), "worried about my swelling today")

	assert.Equal(t, "A warm generated reply.", text)
	assert.True(t, meta.Conversational)
	assert.Equal(t, "Physical Recovery", meta.Category)
	assert.InDelta(t, 0.3, meta.ConfidenceScore, 1e-9)
	// Below the strong threshold the provider is asked for candidates too.
	assert.True(t, provider.selectCalled)
}

func TestAnswerMediumDegradesToStructuredOnProviderFailure(t *testing.T) {
	provider := &stubProvider{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("provider timeout")
		},
	}
	s := newTestChatService(t, provider)

	text, meta := s.Answer(context.Background(), "worried about my swelling today")

	assert.Contains(t, text, "**Quick Answer:** Mild swelling is common.")
	assert.False(t, meta.Conversational)
}

func TestAnswerNoMatchFallsBackConversationally(t *testing.T) {
	provider := &stubProvider{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return "General supportive reply.", nil
		},
	}
	s := newTestChatService(t, provider)

	text, meta := s.Answer(context.Background(), "quantum computing")

	assert.Equal(t, "General supportive reply.", text)
	assert.True(t, meta.Conversational)
	assert.Zero(t, meta.ConfidenceScore)
	assert.Empty(t, meta.Category)
}

func TestAnswerSurvivesFullProviderFailure(t *testing.T) {
	provider := &stubProvider{
		selectFn: func(ctx context.Context, query string, records []models.Record, topK int) ([]search.Candidate, error) {
			return nil, errors.New("network down")
		},
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("network down")
		},
	}
	s := newTestChatService(t, provider)

	text, meta := s.Answer(context.Background(), "quantum computing")

	assert.NotEmpty(t, text)
	assert.Equal(t, FallbackResponse(), text)
	assert.True(t, meta.Conversational)
	assert.Empty(t, meta.Error)
}

func TestAnswerEmptyGenerationUsesDefault(t *testing.T) {
	s := newTestChatService(t, &stubProvider{
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return "   ", nil
		},
	})

	text, meta := s.Answer(context.Background(), "quantum computing")

	assert.Equal(t, emptyReplyDefault, text)
	assert.True(t, meta.Conversational)
}

func TestAnswerMergesRemoteCandidates(t *testing.T) {
	s := newTestChatService(t, &stubProvider{
		selectFn: func(ctx context.Context, query string, records []models.Record, topK int) ([]search.Candidate, error) {
			require.NotEmpty(t, records)
			return []search.Candidate{{Record: records[0], Score: 0.75}}, nil
		},
		generateFn: func(ctx context.Context, prompt string) (string, error) {
			return "Grounded conversational reply.", nil
		},
	})

	// Nothing matches lexically, so the remote candidate alone drives the
	// answer at the fixed 0.75 confidence, which lands in the medium band.
	text, meta := s.Answer(context.Background(), "zzzz unrelated zzzz")

	assert.Equal(t, "Grounded conversational reply.", text)
	assert.True(t, meta.Conversational)
	assert.InDelta(t, 0.75, meta.ConfidenceScore, 1e-9)
	assert.Equal(t, "Physical Recovery", meta.Category)
}

func TestAnswerRecoversFromInternalFault(t *testing.T) {
	s := newTestChatService(t, &stubProvider{
		selectFn: func(ctx context.Context, query string, records []models.Record, topK int) ([]search.Candidate, error) {
			panic("scoring fault")
		},
	})

	text, meta := s.Answer(context.Background(), "quantum computing")

	assert.Equal(t, errorResponse, text)
	assert.True(t, meta.Conversational)
	assert.Contains(t, meta.Error, "scoring fault")
	assert.False(t, strings.Contains(text, "panic"))
}
