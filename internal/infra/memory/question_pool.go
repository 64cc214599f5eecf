package memory

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"theorie-engine/internal/app"
	"theorie-engine/internal/domain"
)

// SectionLoader fetches question content from a backing store (e.g., a
// document DB).
type SectionLoader interface {
	LoadSection(ctx context.Context, sectionID string) ([]domain.Question, error)
}

// QuestionPool caches question sections in memory. Loading the same section
// twice is a no-op; concurrent loads of one section collapse via singleflight.
type QuestionPool struct {
	loader SectionLoader
	sf     singleflight.Group

	mu       sync.RWMutex
	sections map[string][]domain.Question
}

func NewQuestionPool(loader SectionLoader) *QuestionPool {
	return &QuestionPool{
		loader:   loader,
		sections: make(map[string][]domain.Question),
	}
}

// LoadQuestionsForSection populates the cache for a section. Idempotent:
// already-loaded sections are never re-fetched or duplicated.
func (p *QuestionPool) LoadQuestionsForSection(ctx context.Context, sectionID string) error {
	p.mu.RLock()
	_, loaded := p.sections[sectionID]
	p.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := p.sf.Do(sectionID, func() (interface{}, error) {
		p.mu.RLock()
		_, loaded := p.sections[sectionID]
		p.mu.RUnlock()
		if loaded {
			return nil, nil
		}

		questions, err := p.loader.LoadSection(ctx, sectionID)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.sections[sectionID] = questions
		p.mu.Unlock()
		return nil, nil
	})
	return err
}

// GetQuestions returns cached questions matching the filter.
func (p *QuestionPool) GetQuestions(_ context.Context, filter app.PoolFilter) ([]domain.Question, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []domain.Question
	for sectionID, questions := range p.sections {
		if filter.SectionID != "" && filter.SectionID != sectionID {
			continue
		}
		for _, q := range questions {
			if filter.Kind != "" && q.Kind != filter.Kind {
				continue
			}
			if filter.TopicID != "" && q.TopicID != filter.TopicID {
				continue
			}
			if filter.Difficulty != nil && q.Difficulty != *filter.Difficulty {
				continue
			}
			out = append(out, q)
		}
	}
	return out, nil
}

// StaticSectionLoader is a loader backed by an in-memory map (useful for
// tests/demos).
type StaticSectionLoader struct {
	sections map[string][]domain.Question
}

func NewStaticSectionLoader(sections map[string][]domain.Question) *StaticSectionLoader {
	return &StaticSectionLoader{sections: sections}
}

func (l *StaticSectionLoader) LoadSection(_ context.Context, sectionID string) ([]domain.Question, error) {
	if questions, ok := l.sections[sectionID]; ok {
		return questions, nil
	}
	return nil, domain.ErrSectionNotFound
}
