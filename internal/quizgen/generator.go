package quizgen

import (
	"context"
	"math/rand/v2"

	"github.com/abhisek/gramiz/internal/catalog"
	"github.com/abhisek/gramiz/internal/stats"
)

// Weighting for adaptive section selection. A section the learner gets
// everything wrong in is weighted 1+3=4x against 1x for a perfect one;
// unseen sections sit in the middle with a neutral 0.5 success rate.
const (
	baseWeight   = 1.0
	errorBoost   = 3.0
	neutralPrior = 0.5
)

// StatsProvider is the slice of the stats service the generator needs:
// the mastered set and the per-section accuracy snapshot.
type StatsProvider interface {
	MasteredQuestionIDs(ctx context.Context) (map[string]bool, error)
	SectionStats(ctx context.Context) ([]stats.SectionStat, error)
}

// Generator builds quizzes biased toward the learner's weakest sections
// while skipping questions already answered correctly.
type Generator struct {
	stats StatsProvider
	rng   *rand.Rand
}

// New creates a Generator. src may be nil, in which case a
// randomly seeded source is used; tests inject a fixed source.
func New(statsSvc StatsProvider, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{
		stats: statsSvc,
		rng:   rand.New(src),
	}
}

// GenerateQuiz selects up to size questions from allQuestions.
//
// Mastered questions (one correct attempt, ever) are excluded. The
// remaining candidates are drawn section by section: a weighted pick of
// a section with questions left, then a uniform pick inside it, with no
// duplicates in one quiz. If every question is already mastered, the
// quiz falls back to a uniform review sample over the full input. The
// result is shuffled so topics are interleaved.
//
// Mastery and weights are fetched once, up front; the draw operates on
// that single snapshot.
func (g *Generator) GenerateQuiz(ctx context.Context, allQuestions []catalog.Question, size int) ([]catalog.Question, error) {
	if len(allQuestions) == 0 || size <= 0 {
		return nil, nil
	}

	mastered, err := g.stats.MasteredQuestionIDs(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []catalog.Question
	for _, q := range allQuestions {
		if !mastered[q.ID] {
			candidates = append(candidates, q)
		}
	}

	if len(candidates) == 0 {
		return g.reviewSample(allQuestions, size), nil
	}

	weights, err := g.sectionWeights(ctx)
	if err != nil {
		return nil, err
	}

	pools := make(map[catalog.Section][]catalog.Question)
	for _, q := range candidates {
		pools[q.Section] = append(pools[q.Section], q)
	}

	quiz := make([]catalog.Question, 0, min(size, len(candidates)))
	for len(quiz) < size {
		section, ok := g.pickSection(weights, pools)
		if !ok {
			break
		}
		pool := pools[section]
		i := g.rng.IntN(len(pool))
		quiz = append(quiz, pool[i])

		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		if len(pool) == 0 {
			delete(pools, section)
		} else {
			pools[section] = pool
		}
	}

	g.rng.Shuffle(len(quiz), func(i, j int) {
		quiz[i], quiz[j] = quiz[j], quiz[i]
	})
	return quiz, nil
}

// sectionWeights computes one weight per section from its historical
// success rate. Computed once per generation call, not per draw.
func (g *Generator) sectionWeights(ctx context.Context) (map[catalog.Section]float64, error) {
	sectionStats, err := g.stats.SectionStats(ctx)
	if err != nil {
		return nil, err
	}

	weights := make(map[catalog.Section]float64, len(sectionStats))
	for _, st := range sectionStats {
		successRate := neutralPrior
		if st.Total > 0 {
			successRate = st.Accuracy
		}
		weights[st.Section] = baseWeight + (1-successRate)*errorBoost
	}
	return weights, nil
}

// pickSection draws a section by cumulative weight, restricted to
// sections that still have questions in their pool. Float residue can
// leave the draw just past the last bucket, so the last active section
// is always selectable.
func (g *Generator) pickSection(weights map[catalog.Section]float64, pools map[catalog.Section][]catalog.Question) (catalog.Section, bool) {
	var active []catalog.Section
	for _, s := range catalog.AllSections() {
		if len(pools[s]) > 0 {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return "", false
	}

	total := 0.0
	for _, s := range active {
		total += weightOrBase(weights, s)
	}

	r := g.rng.Float64() * total
	for _, s := range active {
		r -= weightOrBase(weights, s)
		if r <= 0 {
			return s, true
		}
	}
	return active[len(active)-1], true
}

func weightOrBase(weights map[catalog.Section]float64, s catalog.Section) float64 {
	if w, ok := weights[s]; ok {
		return w
	}
	return baseWeight
}

// reviewSample returns size distinct questions drawn uniformly from the
// full set, for the everything-mastered case.
func (g *Generator) reviewSample(allQuestions []catalog.Question, size int) []catalog.Question {
	shuffled := make([]catalog.Question, len(allQuestions))
	copy(shuffled, allQuestions)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > size {
		shuffled = shuffled[:size]
	}
	return shuffled
}
