package search

import (
	"sort"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"
)

// Candidate pairs a record with its relevance score.
type Candidate struct {
	Record models.Record
	Score  float64
}

// Rank scores every record against the query and returns at most topK
// candidates, sorted by score descending. Records that match nothing are
// excluded. Ties keep the original record order.
func Rank(query string, records []models.Record, topK int) []Candidate {
	if topK <= 0 {
		return nil
	}

	var candidates []Candidate
	for _, rec := range records {
		if score := Score(query, rec); score > 0 {
			candidates = append(candidates, Candidate{Record: rec, Score: score})
		}
	}

	sortByScore(candidates)
	return truncate(candidates, topK)
}

// Merge reconciles locally ranked candidates with an externally sourced
// list. Candidates are deduplicated by exact question text; when the same
// record appears in both lists the higher score wins. Local candidates keep
// positional priority over remote ones at equal scores.
func Merge(local, remote []Candidate, topK int) []Candidate {
	if topK <= 0 {
		return nil
	}

	index := make(map[string]int, len(local)+len(remote))
	merged := make([]Candidate, 0, len(local)+len(remote))

	for _, list := range [][]Candidate{local, remote} {
		for _, c := range list {
			if at, ok := index[c.Record.Question]; ok {
				if c.Score > merged[at].Score {
					merged[at].Score = c.Score
				}
				continue
			}
			index[c.Record.Question] = len(merged)
			merged = append(merged, c)
		}
	}

	sortByScore(merged)
	return truncate(merged, topK)
}

func sortByScore(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

func truncate(candidates []Candidate, topK int) []Candidate {
	if len(candidates) > topK {
		return candidates[:topK]
	}
	return candidates
}
