package search

import (
	"math"
	"strings"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"
)

// Relevance scores use a single uncapped additive scale. The fixed tiers are
// exclusive: once one fires the score is final. Phrase and word matches are
// additive, so a record hit by several query words can exceed 1.0. The
// semantic breakpoints 0.3 (medium) and 0.7 (strong) live in config.
const (
	// ScoreExactMatch is awarded when the trimmed query equals the record
	// question, case-insensitively. It is the maximum defined score.
	ScoreExactMatch      = 2.0
	ScoreQueryInQuestion = 1.8
	ScoreQuestionInQuery = 1.6
	scoreKeywordAlias    = 1.5

	phraseInQuestion    = 0.94
	phraseInKeywords    = 0.90
	phraseInShortAnswer = 0.86
	phraseInLongAnswer  = 0.82

	importantWordInQuestion = 0.4
	wordInQuestion          = 0.3
	wordInKeywords          = 0.25
	wordInShortAnswer       = 0.15
	wordInLongAnswer        = 0.1
	categoryOverlap         = 0.1

	multiMatchBonusThree = 0.25
	multiMatchBonusTwo   = 0.15

	// Query tokens must be longer than this to count for word overlap.
	minTokenLength = 3
)

// keyPhrases are curated domain phrases that identify a topic even when the
// rest of the query shares no vocabulary with the record.
var keyPhrases = []string{
	"low milk supply", "milk supply", "pump at work", "pumping at work",
	"postpartum bleeding", "hair loss", "c-section", "exercise after birth",
	"breastfeeding", "stitches", "period return", "diastasis recti",
	"night sweats", "hemorrhoids", "constipation", "perineal pain",
}

// importantWords get a larger increment when found in the record question.
var importantWords = map[string]struct{}{
	"supply":   {},
	"milk":     {},
	"pump":     {},
	"work":     {},
	"bleeding": {},
	"exercise": {},
	"pain":     {},
	"stitches": {},
}

// Score computes the lexical relevance of a record for a query. Pure
// function, no side effects. Zero means the record matched nothing and must
// be excluded from results.
func Score(query string, rec models.Record) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || rec.Question == "" {
		return 0
	}

	question := strings.ToLower(rec.Question)
	keywords := strings.ToLower(rec.Keywords)
	shortAnswer := strings.ToLower(rec.ShortAnswer)
	longAnswer := strings.ToLower(rec.LongAnswer)
	category := strings.ToLower(rec.Category)

	switch {
	case q == question:
		return ScoreExactMatch
	case strings.Contains(question, q):
		return ScoreQueryInQuestion
	case strings.Contains(q, question):
		return ScoreQuestionInQuery
	case strings.Contains(q, "low milk supply") && strings.Contains(keywords, "low supply"):
		return scoreKeywordAlias
	}

	var score float64

	// Key-phrase tier: the best placement across all matching phrases.
	for _, phrase := range keyPhrases {
		if !strings.Contains(q, phrase) {
			continue
		}
		switch {
		case strings.Contains(question, phrase):
			score = math.Max(score, phraseInQuestion)
		case strings.Contains(keywords, phrase):
			score = math.Max(score, phraseInKeywords)
		case strings.Contains(shortAnswer, phrase):
			score = math.Max(score, phraseInShortAnswer)
		case strings.Contains(longAnswer, phrase):
			score = math.Max(score, phraseInLongAnswer)
		}
	}

	// Word overlap adds on top of the phrase tier. Long-answer hits do not
	// count toward the multi-match bonus.
	tokens := queryTokens(q)
	matches := 0
	for _, word := range tokens {
		switch {
		case strings.Contains(question, word):
			if _, ok := importantWords[word]; ok {
				score += importantWordInQuestion
			} else {
				score += wordInQuestion
			}
			matches++
		case strings.Contains(keywords, word):
			score += wordInKeywords
			matches++
		case strings.Contains(shortAnswer, word):
			score += wordInShortAnswer
			matches++
		case strings.Contains(longAnswer, word):
			score += wordInLongAnswer
		}
	}

	switch {
	case matches >= 3:
		score += multiMatchBonusThree
	case matches >= 2:
		score += multiMatchBonusTwo
	}

	for _, word := range tokens {
		if strings.Contains(category, word) {
			score += categoryOverlap
			break
		}
	}

	return score
}

func queryTokens(q string) []string {
	var tokens []string
	for _, word := range strings.Fields(q) {
		if len(word) > minTokenLength {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
