package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ChaandiniV/PeriCareAIBot/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const recordsTable = "postpartum_records"

// RecordRepository is the Postgres-backed record source. Deployments that
// keep the knowledge base in the database seed it once with cmd/seed and
// load the full set into the immutable in-memory store at startup.
type RecordRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecordRepository(db *pgxpool.Pool, logger *zap.Logger) *RecordRepository {
	return &RecordRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the records table if it does not exist yet.
func (r *RecordRepository) EnsureSchema(ctx context.Context) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id UUID PRIMARY KEY,
		position INTEGER NOT NULL,
		question TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		keywords TEXT NOT NULL DEFAULT '',
		short_answer TEXT NOT NULL DEFAULT '',
		long_answer TEXT NOT NULL DEFAULT '',
		when_to_seek_help TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		related_questions TEXT NOT NULL DEFAULT '',
		tone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`, recordsTable)

	if _, err := r.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure records schema: %w", err)
	}
	return nil
}

// Insert stores one record at the given position. Position preserves the
// source-document order, which ranking relies on for stable ties.
func (r *RecordRepository) Insert(ctx context.Context, rec *models.Record, position int) error {
	query := squirrel.Insert(recordsTable).
		Columns("id", "position", "question", "category", "keywords", "short_answer",
			"long_answer", "when_to_seek_help", "source", "related_questions", "tone", "created_at").
		Values(uuid.New(), position, rec.Question, rec.Category, rec.Keywords, rec.ShortAnswer,
			rec.LongAnswer, rec.WhenToSeekHelp, rec.Source, rec.RelatedQuestions, rec.Tone,
			time.Now().UTC()).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// Truncate clears the table, used before reseeding.
func (r *RecordRepository) Truncate(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "TRUNCATE TABLE "+recordsTable)
	return err
}

// ListAll returns every record in source-document order.
func (r *RecordRepository) ListAll(ctx context.Context) ([]models.Record, error) {
	query := squirrel.Select("question", "category", "keywords", "short_answer",
		"long_answer", "when_to_seek_help", "source", "related_questions", "tone").
		From(recordsTable).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(
			&rec.Question, &rec.Category, &rec.Keywords, &rec.ShortAnswer,
			&rec.LongAnswer, &rec.WhenToSeekHelp, &rec.Source, &rec.RelatedQuestions, &rec.Tone,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.logger.Info("Records loaded from database", zap.Int("count", len(records)))
	return records, nil
}
