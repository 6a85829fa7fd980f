package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"

	"go.uber.org/zap"
)

var (
	// ErrSourceNotFound indicates the record source file does not exist.
	ErrSourceNotFound = errors.New("knowledge source file not found")
	// ErrSourceMalformed indicates the record source is not a valid JSON array of records.
	ErrSourceMalformed = errors.New("knowledge source is not valid JSON")
)

// Store holds the fixed set of Q&A records. It is populated once at startup
// and never mutated afterwards.
type Store struct {
	records []models.Record
}

// NewStore builds a store from an already loaded record set. Records with an
// empty question cannot be matched and are skipped.
func NewStore(records []models.Record, logger *zap.Logger) *Store {
	kept := make([]models.Record, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Question) == "" {
			logger.Warn("Skipping record with empty question", zap.Int("position", i))
			continue
		}
		kept = append(kept, rec)
	}
	return &Store{records: kept}
}

// LoadFile reads the knowledge base from a JSON document on disk.
func LoadFile(path string, logger *zap.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to read knowledge source %s: %w", path, err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceMalformed, err)
	}

	store := NewStore(records, logger)
	logger.Info("Knowledge base loaded",
		zap.String("path", path),
		zap.Int("records", store.Len()),
	)
	return store, nil
}

// Records returns the record set in load order. Callers must not modify it.
func (s *Store) Records() []models.Record {
	return s.records
}

func (s *Store) Len() int {
	return len(s.records)
}

// Categories returns the sorted set of distinct category names.
func (s *Store) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, rec := range s.records {
		if rec.Category == "" {
			continue
		}
		if _, ok := seen[rec.Category]; ok {
			continue
		}
		seen[rec.Category] = struct{}{}
		categories = append(categories, rec.Category)
	}
	sort.Strings(categories)
	return categories
}

// QuestionsByCategory returns all records whose category matches name,
// case-insensitively, in load order.
func (s *Store) QuestionsByCategory(name string) []models.Record {
	var out []models.Record
	for _, rec := range s.records {
		if strings.EqualFold(rec.Category, name) {
			out = append(out, rec)
		}
	}
	return out
}
