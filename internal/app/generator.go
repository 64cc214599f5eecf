package app

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"theorie-engine/internal/domain"
)

// PoolFilter narrows question pool queries. Nil/zero fields match everything.
type PoolFilter struct {
	Kind       domain.QuestionKind
	SectionID  string
	TopicID    string
	Difficulty *int
}

// QuestionPool is the external question source. LoadQuestionsForSection is
// idempotent; GetQuestions is a read-only oracle.
type QuestionPool interface {
	LoadQuestionsForSection(ctx context.Context, sectionID string) error
	GetQuestions(ctx context.Context, filter PoolFilter) ([]domain.Question, error)
}

// TypeFill records requested vs actual counts for one question kind, so
// callers can observe best-effort under-fill.
type TypeFill struct {
	Kind      domain.QuestionKind `json:"kind"`
	Requested int                 `json:"requested"`
	Actual    int                 `json:"actual"`
}

// GenerationReport describes how well the generated quiz satisfied the
// template. Under-fill and uncovered concepts degrade silently; the report
// is how they surface.
type GenerationReport struct {
	Fills             []TypeFill `json:"fills"`
	UncoveredConcepts []string   `json:"uncoveredConcepts,omitempty"`
}

// Generator selects questions for a template. The jitter source is seedable
// for deterministic tests.
type Generator struct {
	pool QuestionPool
	rnd  *rand.Rand
}

func NewGenerator(pool QuestionPool, seed int64) *Generator {
	return &Generator{
		pool: pool,
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// Generate produces an ordered question list for the template. The template
// is validated before any selection work; an invalid template fails with
// domain.ErrInvalidTemplate. Selection is topic-weighted, difficulty-aware,
// and concept-coverage-complete on a best-effort basis.
func (g *Generator) Generate(ctx context.Context, template domain.QuizTemplate) ([]domain.Question, GenerationReport, error) {
	if err := template.Validate(); err != nil {
		return nil, GenerationReport{}, err
	}
	if template.SectionID != "" {
		if err := g.pool.LoadQuestionsForSection(ctx, template.SectionID); err != nil {
			return nil, GenerationReport{}, err
		}
	}

	var selected []domain.Question
	used := make(map[string]bool)
	covered := make(map[string]bool)
	report := GenerationReport{}

	kinds := make([]domain.QuestionKind, 0, len(template.Distribution))
	for kind := range template.Distribution {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		count := template.Distribution[kind]
		if count <= 0 {
			continue
		}
		candidates, err := g.pool.GetQuestions(ctx, PoolFilter{Kind: kind, SectionID: template.SectionID})
		if err != nil {
			return nil, GenerationReport{}, err
		}

		picked := g.pickTop(candidates, template, used, covered, count)

		// Best-effort backstop: fill remaining slots with any unused question
		// of the kind, difficulty notwithstanding.
		if len(picked) < count {
			for _, q := range candidates {
				if len(picked) >= count {
					break
				}
				if !used[q.ID] {
					picked = append(picked, q)
					markUsed(q, used, covered)
				}
			}
		}

		selected = append(selected, picked...)
		report.Fills = append(report.Fills, TypeFill{Kind: kind, Requested: count, Actual: len(picked)})
	}

	missing := missingConcepts(template.RequiredConcepts, covered)
	if len(missing) > 0 {
		pool, err := g.allCandidates(ctx, kinds, template.SectionID)
		if err != nil {
			return nil, GenerationReport{}, err
		}
		selected, missing = backfillConcepts(selected, missing, pool, template, used)
	}
	report.UncoveredConcepts = missing

	return selected, report, nil
}

// pickTop scores difficulty-matching candidates and takes the best count.
func (g *Generator) pickTop(candidates []domain.Question, template domain.QuizTemplate, used, covered map[string]bool, count int) []domain.Question {
	required := make(map[string]bool, len(template.RequiredConcepts))
	for _, c := range template.RequiredConcepts {
		required[c] = true
	}

	type scored struct {
		q     domain.Question
		score float64
	}
	var pool []scored
	for _, q := range candidates {
		if used[q.ID] || !template.Difficulty.Contains(q.Difficulty) {
			continue
		}
		pool = append(pool, scored{q: q, score: g.scoreCandidate(q, template, required, covered)})
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })

	var picked []domain.Question
	for _, entry := range pool {
		if len(picked) >= count {
			break
		}
		picked = append(picked, entry.q)
		markUsed(entry.q, used, covered)
	}
	return picked
}

// scoreCandidate ranks a question: topic weight dominates, then closeness to
// the difficulty midpoints, new-concept coverage, required-concept coverage,
// and a small uniform jitter for variety.
func (g *Generator) scoreCandidate(q domain.Question, template domain.QuizTemplate, required, covered map[string]bool) float64 {
	score := 100 * template.TopicWeights[q.TopicID]
	score += 50 * difficultyWeight(q.Difficulty, template.Difficulty)

	newConcepts := 0
	coversRequired := false
	for _, c := range q.ConceptIDs {
		if !covered[c] {
			newConcepts++
		}
		if required[c] && !covered[c] {
			coversRequired = true
		}
	}
	score += 20 * float64(newConcepts)
	if coversRequired {
		score += 100
	}
	score += g.rnd.Float64() * 10
	return score
}

// difficultyWeight is 1 at the range midpoint falling off linearly to 0 at
// the edges (1 for a degenerate single-value range).
func difficultyWeight(d int, r domain.DifficultyRange) float64 {
	span := float64(r.Max-r.Min) / 2
	if span <= 0 {
		return 1
	}
	w := 1 - math.Abs(float64(d)-r.Midpoint())/span
	if w < 0 {
		return 0
	}
	return w
}

func (g *Generator) allCandidates(ctx context.Context, kinds []domain.QuestionKind, sectionID string) ([]domain.Question, error) {
	var all []domain.Question
	for _, kind := range kinds {
		qs, err := g.pool.GetQuestions(ctx, PoolFilter{Kind: kind, SectionID: sectionID})
		if err != nil {
			return nil, err
		}
		all = append(all, qs...)
	}
	return all, nil
}

// backfillConcepts is the concept-coverage pass: for each uncovered concept
// it tries to swap one already-selected question for a same-kind, in-range
// replacement covering the most missing concepts. Computed as a pure
// scan over inputs; no mutation while iterating the selection. Best effort:
// leftover concepts are returned, never an error.
func backfillConcepts(selected []domain.Question, missing []string, pool []domain.Question, template domain.QuizTemplate, used map[string]bool) ([]domain.Question, []string) {
	result := make([]domain.Question, len(selected))
	copy(result, selected)

	stillMissing := make(map[string]bool, len(missing))
	for _, c := range missing {
		stillMissing[c] = true
	}

	for len(stillMissing) > 0 {
		swapIndex, replacement, gain := -1, domain.Question{}, 0
		for i, current := range result {
			for _, candidate := range pool {
				if used[candidate.ID] || candidate.Kind != current.Kind || !template.Difficulty.Contains(candidate.Difficulty) {
					continue
				}
				covers := 0
				for _, c := range candidate.ConceptIDs {
					if stillMissing[c] {
						covers++
					}
				}
				if covers > gain {
					swapIndex, replacement, gain = i, candidate, covers
				}
			}
			if gain > 0 {
				// Swap the first selected question with a viable replacement.
				break
			}
		}
		if swapIndex < 0 {
			break
		}
		used[replacement.ID] = true
		result[swapIndex] = replacement
		for _, c := range replacement.ConceptIDs {
			delete(stillMissing, c)
		}
	}

	leftover := make([]string, 0, len(stillMissing))
	for c := range stillMissing {
		leftover = append(leftover, c)
	}
	sort.Strings(leftover)
	if len(leftover) == 0 {
		leftover = nil
	}
	return result, leftover
}

func markUsed(q domain.Question, used, covered map[string]bool) {
	used[q.ID] = true
	for _, c := range q.ConceptIDs {
		covered[c] = true
	}
}

func missingConcepts(required []string, covered map[string]bool) []string {
	var missing []string
	for _, c := range required {
		if !covered[c] {
			missing = append(missing, c)
		}
	}
	return missing
}
