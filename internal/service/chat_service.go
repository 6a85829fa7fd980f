package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ChaandiniV/PeriCareAIBot/internal/knowledge"
	"github.com/ChaandiniV/PeriCareAIBot/internal/models"
	"github.com/ChaandiniV/PeriCareAIBot/internal/search"
	"github.com/ChaandiniV/PeriCareAIBot/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provider is the external generative-text capability consumed by the chat
// service. Failures never escape Answer; they degrade to local or canned
// responses.
type Provider interface {
	SelectCandidates(ctx context.Context, query string, records []models.Record, topK int) ([]search.Candidate, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// AnswerMetadata is the structured companion to the response text, the sole
// contract the UI shell consumes.
type AnswerMetadata struct {
	ConfidenceScore  float64  `json:"confidence_score"`
	Category         string   `json:"category,omitempty"`
	Source           string   `json:"source,omitempty"`
	RelatedQuestions []string `json:"related_questions,omitempty"`
	WhenToSeekHelp   string   `json:"when_to_seek_help,omitempty"`
	Conversational   bool     `json:"conversational"`
	Error            string   `json:"error,omitempty"`
}

type confidenceBand int

const (
	bandNoMatch confidenceBand = iota
	bandWeak
	bandMedium
	bandStrong
)

// ChatService answers queries end to end: lexical ranking over the record
// store, provider-assisted merge on weak matches, confidence gating, and
// response composition.
type ChatService struct {
	store    *knowledge.Store
	provider Provider
	config   *config.SearchConfig
	logger   *zap.Logger
}

func NewChatService(store *knowledge.Store, provider Provider, cfg *config.SearchConfig, logger *zap.Logger) *ChatService {
	return &ChatService{
		store:    store,
		provider: provider,
		config:   cfg,
		logger:   logger,
	}
}

// Answer processes one query. It never returns an error: unexpected internal
// faults are recovered here and converted to a generic supportive response
// with the error carried in metadata.
func (s *ChatService) Answer(ctx context.Context, query string) (text string, meta AnswerMetadata) {
	requestID := uuid.New().String()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Query processing failed",
				zap.String("request_id", requestID),
				zap.Any("fault", r),
			)
			text = errorResponse
			meta = AnswerMetadata{Conversational: true, Error: fmt.Sprint(r)}
		}
	}()

	results := s.search(ctx, query)

	var best search.Candidate
	if len(results) > 0 {
		best = results[0]
	}

	band := s.band(best.Score, len(results) > 0)
	s.logger.Info("Query gated",
		zap.String("request_id", requestID),
		zap.Float64("confidence", best.Score),
		zap.Int("candidates", len(results)),
		zap.Int("band", int(band)),
	)

	switch band {
	case bandStrong:
		meta = s.metadataFor(best)
		return Compose(best.Record), meta

	case bandMedium:
		meta = s.metadataFor(best)
		reply, err := s.provider.GenerateText(ctx, groundedPrompt(query, best.Record))
		if err != nil || strings.TrimSpace(reply) == "" {
			if err != nil {
				s.logger.Warn("Provider generation failed, returning structured answer",
					zap.String("request_id", requestID), zap.Error(err))
			}
			// Local-only degrade: the matched record is trustworthy even
			// when the generator is not available.
			return Compose(best.Record), meta
		}
		meta.Conversational = true
		return reply, meta

	case bandWeak:
		// The candidate is discarded; only its confidence is reported.
		return s.conversationalFallback(ctx, query, requestID), AnswerMetadata{
			ConfidenceScore: best.Score,
			Conversational:  true,
		}

	default: // bandNoMatch
		return s.conversationalFallback(ctx, query, requestID), AnswerMetadata{
			Conversational: true,
		}
	}
}

// search ranks locally and merges in provider-selected candidates only when
// the local list is empty or its top score is below the strong threshold.
func (s *ChatService) search(ctx context.Context, query string) []search.Candidate {
	local := search.Rank(query, s.store.Records(), s.config.TopK)
	if len(local) > 0 && local[0].Score >= s.config.StrongThreshold {
		return local
	}

	remote, err := s.provider.SelectCandidates(ctx, query, s.store.Records(), s.config.TopK)
	if err != nil {
		s.logger.Warn("Provider candidate selection failed", zap.Error(err))
		return local
	}
	return search.Merge(local, remote, s.config.TopK)
}

func (s *ChatService) band(score float64, hasCandidate bool) confidenceBand {
	switch {
	case !hasCandidate:
		return bandNoMatch
	case score < s.config.MediumThreshold:
		return bandWeak
	case score < s.config.StrongThreshold:
		return bandMedium
	default:
		return bandStrong
	}
}

func (s *ChatService) conversationalFallback(ctx context.Context, query, requestID string) string {
	reply, err := s.provider.GenerateText(ctx, generalPrompt(query))
	if err != nil {
		s.logger.Warn("Provider fallback generation failed",
			zap.String("request_id", requestID), zap.Error(err))
		return FallbackResponse()
	}
	if strings.TrimSpace(reply) == "" {
		return emptyReplyDefault
	}
	return reply
}

func (s *ChatService) metadataFor(c search.Candidate) AnswerMetadata {
	return AnswerMetadata{
		ConfidenceScore:  c.Score,
		Category:         c.Record.Category,
		Source:           c.Record.Source,
		RelatedQuestions: RelatedQuestions(c.Record),
		WhenToSeekHelp:   c.Record.WhenToSeekHelp,
	}
}
