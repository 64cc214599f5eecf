package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"theorie-engine/internal/domain"
)

// SectionLoader loads question-section JSONB from Postgres.
type SectionLoader struct {
	pool *pgxpool.Pool
}

func NewSectionLoader(pool *pgxpool.Pool) *SectionLoader {
	return &SectionLoader{pool: pool}
}

func (l *SectionLoader) LoadSection(ctx context.Context, sectionID string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_sections WHERE id=$1`, sectionID).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("load section: %w", err)
	}
	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("unmarshal section: %w", err)
	}
	return questions, nil
}
